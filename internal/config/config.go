package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type AppConfig struct {
	ProfileEmail  string
	DeviceIDPath  string
	TokenPath     string
	LogPath       string
	StoreDriver   string
	StoreDSN      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string
}

var cfg AppConfig

// Init loads the config file at path, or config/config.yaml when path is
// empty. A missing file is fine; the defaults below cover every key.
func Init(path string) AppConfig {
	dataDir := filepath.Join(os.TempDir(), "sure-petcare")

	if path == "" {
		path = "config/config.yaml"
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// defaults
	v.SetDefault("kit.device_id_path", filepath.Join(dataDir, "device_id"))
	v.SetDefault("kit.token_path", filepath.Join(dataDir, "login.token"))
	v.SetDefault("kit.log_path", filepath.Join(dataDir, "loginui.log"))
	v.SetDefault("kit.token_store.driver", "file")
	v.SetDefault("kit.token_store.dsn", filepath.Join(dataDir, "tokens.db"))
	v.SetDefault("kit.token_store.redis.addr", "127.0.0.1:6379")
	v.SetDefault("kit.token_store.redis.db", 0)
	v.SetDefault("kit.token_store.redis.key", "sure-petcare:token")
	_ = v.ReadInConfig()

	cfg = AppConfig{
		ProfileEmail:  v.GetString("kit.profile.email_address"),
		DeviceIDPath:  v.GetString("kit.device_id_path"),
		TokenPath:     v.GetString("kit.token_path"),
		LogPath:       v.GetString("kit.log_path"),
		StoreDriver:   v.GetString("kit.token_store.driver"),
		StoreDSN:      v.GetString("kit.token_store.dsn"),
		RedisAddr:     v.GetString("kit.token_store.redis.addr"),
		RedisPassword: v.GetString("kit.token_store.redis.password"),
		RedisDB:       v.GetInt("kit.token_store.redis.db"),
		RedisKey:      v.GetString("kit.token_store.redis.key"),
	}
	return cfg
}

func Get() AppConfig { return cfg }

// TokenFilePath returns the configured token path, falling back to the
// default when Init has not run.
func TokenFilePath() string {
	if cfg.TokenPath == "" {
		return filepath.Join(os.TempDir(), "sure-petcare", "login.token")
	}
	return cfg.TokenPath
}

// DeviceIDFilePath returns the configured device id path, falling back to
// the default when Init has not run.
func DeviceIDFilePath() string {
	if cfg.DeviceIDPath == "" {
		return filepath.Join(os.TempDir(), "sure-petcare", "device_id")
	}
	return cfg.DeviceIDPath
}
