package credstore

// Store resolves the shared key for a storage account.
type Store interface {
	Lookup(account string) (string, error)
}

// Config holds configuration for loading account credentials.
type Config struct {
	Inline []Credential `mapstructure:"inline"` // Inline credentials from config
	File   string       `mapstructure:"file"`   // Path to JSON file containing credentials
}

// NewStore creates a Store from the given configuration.
// It loads credentials from both inline config and file (if specified),
// merging them into a single store. File entries take precedence over
// inline entries if there are duplicates.
func NewStore(cfg Config) (Store, error) {
	keys := make(map[string]string)

	// Load inline credentials
	for _, c := range cfg.Inline {
		if c.Account != "" && c.Key != "" {
			keys[c.Account] = c.Key
		}
	}

	// Load credentials from file if specified
	if cfg.File != "" {
		fileKeys, err := LoadFromFile(cfg.File)
		if err != nil {
			return nil, err
		}
		for k, v := range fileKeys {
			keys[k] = v
		}
	}

	return NewMapStore(keys), nil
}
