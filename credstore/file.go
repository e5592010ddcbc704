package credstore

import (
	"encoding/json"
	"fmt"
	"os"
)

// Credential represents a storage account name and its shared key.
type Credential struct {
	Account string `json:"account" mapstructure:"account"`
	Key     string `json:"key" mapstructure:"key"`
}

// LoadFromFile loads account credentials from a JSON file.
// The file should contain an array of credentials:
//
//	[
//	  {"account": "myaccount", "key": "bXlhY2NvdW50a2V5..."},
//	  {"account": "staging", "key": "c3RhZ2luZ2tleQ=="}
//	]
//
// Returns a map of account name to shared key.
func LoadFromFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is from trusted config file
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	var creds []Credential
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parse credentials file: %w", err)
	}

	keys := make(map[string]string, len(creds))
	for _, c := range creds {
		if c.Account != "" && c.Key != "" {
			keys[c.Account] = c.Key
		}
	}

	return keys, nil
}
