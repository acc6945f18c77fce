package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ian-hamlin/sure-petcare/cmd/loginui/ui"
	"github.com/ian-hamlin/sure-petcare/deviceid"
	"github.com/ian-hamlin/sure-petcare/internal/config"
	"github.com/ian-hamlin/sure-petcare/internal/logger"
	"github.com/ian-hamlin/sure-petcare/tokenstore"
)

func main() {
	var (
		cfgPath = flag.String("config", "", "Path to configuration file (default config/config.yaml)")
		outPath = flag.String("out", "", "File the login payload is written to")
	)
	flag.Parse()

	cfg := config.Init(*cfgPath)
	if err := logger.Init(cfg.LogPath); err != nil {
		fmt.Fprintf(os.Stderr, "cannot open log file: %v\n", err)
		os.Exit(1)
	}

	deviceID, err := deviceid.Ensure(cfg.DeviceIDPath)
	if err != nil {
		logger.Errorf("Cannot prepare device id: %v", err)
		os.Exit(1)
	}

	store, desc, err := openStore(cfg)
	if err != nil {
		logger.Errorf("Cannot open token store: %v", err)
		os.Exit(1)
	}

	out := *outPath
	if out == "" {
		out = filepath.Join(filepath.Dir(cfg.TokenPath), "login.json")
	}

	logger.Infof("Login UI starting, device %s, token store %s", deviceID, desc)

	m := ui.NewRootModel(ui.Options{
		ProfileEmail: cfg.ProfileEmail,
		DeviceID:     deviceID,
		OutPath:      out,
		Store:        store,
		StoreDesc:    desc,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())

	// With the file store, pick up token changes other processes make
	// while the UI is open.
	if fs, ok := store.(*tokenstore.FileStore); ok {
		w, events, werr := fs.Watch()
		if werr != nil {
			logger.Warnf("Token watcher unavailable: %v", werr)
		} else {
			defer w.Close()
			go func() {
				for token := range events {
					p.Send(ui.TokenChangedMsg{Token: token})
				}
			}()
		}
	}

	if _, err := p.Run(); err != nil {
		logger.Errorf("UI error: %v", err)
		os.Exit(1)
	}
}

func openStore(cfg config.AppConfig) (tokenstore.Store, string, error) {
	switch cfg.StoreDriver {
	case "", "file":
		store := tokenstore.NewFileStore(cfg.TokenPath)
		return store, store.Path(), nil
	case "sqlite", "mysql":
		store, err := tokenstore.OpenDB(cfg.StoreDriver, cfg.StoreDSN)
		if err != nil {
			return nil, "", err
		}
		return store, fmt.Sprintf("%s %s", cfg.StoreDriver, cfg.StoreDSN), nil
	case "redis":
		store, err := tokenstore.NewRedisStore(tokenstore.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Key:      cfg.RedisKey,
		})
		if err != nil {
			return nil, "", err
		}
		return store, "redis " + cfg.RedisAddr, nil
	default:
		return nil, "", fmt.Errorf("unknown token store driver %q", cfg.StoreDriver)
	}
}
