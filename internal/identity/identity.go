// Package identity provides the anonymous visitor identity used to
// attribute blog likes and comments when no session exists. The identity is
// created once and persisted in a scoped local store, then injected where
// attribution is needed instead of being re-derived at call sites.
package identity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const fileName = "anonymous_identity.json"

// Identity is a stable anonymous visitor id.
type Identity struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists the identity under a scoped directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultStore scopes the identity under the user's config directory.
func DefaultStore() (*Store, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	return NewStore(filepath.Join(base, "site-gateway")), nil
}

// Ensure returns the persisted identity, creating and saving one on first
// use. Subsequent calls always return the same id.
func (s *Store) Ensure() (Identity, error) {
	path := filepath.Join(s.dir, fileName)

	raw, err := os.ReadFile(path)
	if err == nil {
		var ident Identity
		if jsonErr := json.Unmarshal(raw, &ident); jsonErr == nil && ident.ID != "" {
			return ident, nil
		}
		// Corrupt file: fall through and mint a fresh identity.
	} else if !os.IsNotExist(err) {
		return Identity{}, fmt.Errorf("read identity: %w", err)
	}

	ident := Identity{
		ID:        "anon_" + uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return Identity{}, fmt.Errorf("create identity dir: %w", err)
	}
	encoded, err := json.MarshalIndent(ident, "", "  ")
	if err != nil {
		return Identity{}, fmt.Errorf("encode identity: %w", err)
	}
	if err := os.WriteFile(path, encoded, 0o600); err != nil {
		return Identity{}, fmt.Errorf("write identity: %w", err)
	}

	return ident, nil
}
