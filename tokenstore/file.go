package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/ian-hamlin/sure-petcare/internal/logger"
)

// FileStore keeps the token in a single file, written 0600.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

// Path reports the file the store reads and writes.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Save(_ context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir token dir: %w", err)
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

func (s *FileStore) Load(_ context.Context) (string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoToken
		}
		return "", err
	}
	token := strings.TrimSpace(string(b))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (s *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

const eventQueueSize = 16

// Watcher reports token changes made outside this process, such as
// another tool logging in and writing a fresh token.
type Watcher struct {
	store   *FileStore
	watcher *fsnotify.Watcher

	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// Watch starts watching the store's file. Every save or removal of the
// token turns into one value on the returned channel: the new token, or ""
// when the token is gone. Slow receivers lose updates rather than block
// the watcher. Close the Watcher to stop; the channel closes after the
// last event.
func (s *FileStore) Watch() (*Watcher, <-chan string, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	// The file itself may not exist yet, so watch its directory.
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		_ = fw.Close()
		return nil, nil, fmt.Errorf("mkdir token dir: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, nil, err
	}

	w := &Watcher{store: s, watcher: fw, stop: make(chan struct{})}
	out := make(chan string, eventQueueSize)

	w.wg.Add(1)
	go w.processEvents(out)

	go func() {
		w.wg.Wait()
		close(out)
	}()

	return w, out, nil
}

func (w *Watcher) processEvents(out chan<- string) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stop:
			return
		case evt, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(evt, out)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Errorf("Token watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(evt fsnotify.Event, out chan<- string) {
	if filepath.Clean(evt.Name) != filepath.Clean(w.store.path) {
		return
	}

	if evt.Op&(fsnotify.Create|fsnotify.Write) != 0 {
		token, err := w.store.Load(context.Background())
		if err != nil && !errors.Is(err, ErrNoToken) {
			logger.Errorf("Reload token after change failed: %v", err)
			return
		}
		w.emit(out, token)
	}

	if evt.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		w.emit(out, "")
	}
}

func (w *Watcher) emit(out chan<- string, token string) {
	select {
	case out <- token:
	default:
		logger.Warnf("Token watcher backpressure, dropping update")
	}
}

// Close stops the watcher and releases the underlying fsnotify resources.
func (w *Watcher) Close() error {
	var closeErr error
	w.once.Do(func() {
		close(w.stop)
		if err := w.watcher.Close(); err != nil {
			closeErr = err
		}
	})
	w.wg.Wait()
	return closeErr
}
