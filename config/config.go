package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/blobsas/blobsas/credstore"
)

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for blobsas.
type Config struct {
	Account     AccountConfig    `mapstructure:"account"`
	Credentials credstore.Config `mapstructure:"credentials"`
	Sign        SignConfig       `mapstructure:"sign"`
	Log         LogConfig        `mapstructure:"log"`
}

// AccountConfig holds the storage account selection.
type AccountConfig struct {
	Name string `mapstructure:"name"`
	Key  string `mapstructure:"key"`
}

// SignConfig holds signing defaults.
type SignConfig struct {
	TTL      int    `mapstructure:"ttl" validate:"min=1,max=604800"` // seconds
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// ResolveKey returns the shared key for the configured account: the inline
// account key if set, otherwise a lookup in the credentials store.
func (c *Config) ResolveKey() (string, error) {
	if c.Account.Key != "" {
		return c.Account.Key, nil
	}

	store, err := credstore.NewStore(c.Credentials)
	if err != nil {
		return "", fmt.Errorf("resolve key: %w", err)
	}

	key, err := store.Lookup(c.Account.Name)
	if err != nil {
		return "", fmt.Errorf("resolve key: %w", err)
	}
	return key, nil
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"account":   "account.name",
	"key":       "account.key",
	"keys-file": "credentials.file",
	"ttl":       "sign.ttl",
	"endpoint":  "sign.endpoint",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		// Use custom mapping if it exists, otherwise use flag name as-is
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// setDefaults configures default values on the viper instance.
// Every key is registered so that environment-only values survive Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("account.name", "")
	v.SetDefault("account.key", "")

	v.SetDefault("credentials.file", "")

	v.SetDefault("sign.ttl", 900) // seconds
	v.SetDefault("sign.endpoint", "")

	v.SetDefault("log.level", "info")
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Bind environment variables
	v.SetEnvPrefix("BLOBSAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 6. Validate using go-playground/validator
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
