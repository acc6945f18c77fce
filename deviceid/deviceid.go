// Package deviceid mints and persists the per-installation device id that
// login requests carry.
package deviceid

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// New returns a fresh random device id.
func New() string {
	return uuid.NewString()
}

// Save writes the id to path, creating parent directories as needed. The
// file is written 0600 since the id names this installation.
func Save(path, id string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir device id dir: %w", err)
	}
	return os.WriteFile(path, []byte(id), 0o600)
}

// Load reads a previously saved id from path. Surrounding whitespace is
// trimmed so hand-edited files with a trailing newline still work.
func Load(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// Ensure loads the id stored at path, minting and saving a fresh one when
// no usable id is there yet. Repeated calls hand back the same id, which
// keeps one installation looking like one device to the service.
func Ensure(path string) (string, error) {
	id, err := Load(path)
	if err == nil && id != "" {
		return id, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return "", err
	}
	id = New()
	if err := Save(path, id); err != nil {
		return "", err
	}
	return id, nil
}
