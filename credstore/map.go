// Package credstore provides Store implementations for storage account key retrieval.
package credstore

import "fmt"

// MapStore retrieves account keys from an in-memory map keyed by account name.
// Suitable for configuration file-based key storage.
type MapStore struct {
	keys map[string]string
}

// NewMapStore creates a new map-based store with the given account name to
// account key mapping.
func NewMapStore(keys map[string]string) *MapStore {
	return &MapStore{keys: keys}
}

// Lookup retrieves the shared key for the given storage account from the map.
func (s *MapStore) Lookup(account string) (string, error) {
	key, found := s.keys[account]
	if !found {
		return "", fmt.Errorf("lookup %q: %w", account, ErrNotFound)
	}
	return key, nil
}
