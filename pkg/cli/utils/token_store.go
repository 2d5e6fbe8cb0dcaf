package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// TokenStore persists auth tokens as a JSON mapping under the per-user
// configuration directory. A missing or corrupt file degrades to an empty
// store; reads never fail, only writes can.
type TokenStore struct {
	fileMux  sync.Mutex
	filePath string
}

// NewTokenStore creates a store rooted at the user's config directory.
func NewTokenStore() (*TokenStore, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user config dir: %w", err)
	}

	dir := filepath.Join(base, "promptforge")
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to ensure %s exists: %w", dir, err)
	}

	return &TokenStore{filePath: filepath.Join(dir, "tokens.json")}, nil
}

// newTokenStoreAt is the test seam for the store location.
func newTokenStoreAt(path string) *TokenStore {
	return &TokenStore{filePath: path}
}

type tokens map[string]string

// load reads the mapping from disk. Unreadable or unparseable content means
// "no stored values", never an error.
func (ts *TokenStore) load() tokens {
	bytes, err := os.ReadFile(ts.filePath)
	if err != nil {
		return tokens{}
	}

	t := tokens{}
	if err := json.Unmarshal(bytes, &t); err != nil {
		return tokens{}
	}
	return t
}

func (ts *TokenStore) save(t tokens) error {
	bytes, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to serialize the token map: %w", err)
	}

	if err := os.WriteFile(ts.filePath, bytes, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", ts.filePath, err)
	}
	return nil
}

// Get returns the token stored under key, and whether one was present.
func (ts *TokenStore) Get(key string) (string, bool) {
	ts.fileMux.Lock()
	defer ts.fileMux.Unlock()

	value, ok := ts.load()[key]
	return value, ok
}

// Set stores a token under key, replacing any previous value.
func (ts *TokenStore) Set(key, value string) error {
	ts.fileMux.Lock()
	defer ts.fileMux.Unlock()

	t := ts.load()
	t[key] = value
	return ts.save(t)
}

// Remove deletes the token stored under key. Removing an absent key is not
// an error.
func (ts *TokenStore) Remove(key string) error {
	ts.fileMux.Lock()
	defer ts.fileMux.Unlock()

	t := ts.load()
	if _, ok := t[key]; !ok {
		return nil
	}
	delete(t, key)
	return ts.save(t)
}
