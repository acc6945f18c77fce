// Package tokenstore persists the bearer token a login yields, so later
// runs can reuse it instead of asking for credentials again.
package tokenstore

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrNoToken reports that a store holds no token. Implementations map
// their native not-found conditions onto it so callers check one sentinel.
var ErrNoToken = errors.New("tokenstore: no token stored")

// Store saves and loads one bearer token. An empty string counts as no
// token: saving it reads back as ErrNoToken.
type Store interface {
	// Save replaces the stored token.
	Save(ctx context.Context, token string) error
	// Load returns the stored token, or ErrNoToken when none is there.
	Load(ctx context.Context) (string, error)
	// Clear removes the stored token. Clearing an empty store is fine.
	Clear(ctx context.Context) error
}

// Memory holds the token in process memory. The zero value is ready to
// use and safe for concurrent use.
type Memory struct {
	value atomic.Value // holds string
}

func (m *Memory) Save(_ context.Context, token string) error {
	m.value.Store(token)
	return nil
}

func (m *Memory) Load(_ context.Context) (string, error) {
	if v := m.value.Load(); v != nil {
		if s, ok := v.(string); ok && s != "" {
			return s, nil
		}
	}
	return "", ErrNoToken
}

func (m *Memory) Clear(_ context.Context) error {
	m.value.Store("")
	return nil
}
