package main

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blobsas/blobsas/client"
	"github.com/blobsas/blobsas/config"
)

var (
	version = "dev"

	cfgFiles    []string
	profileName string
	jsonOutput  bool
	quiet       bool
)

var rootCmd = &cobra.Command{
	Use:     "blobsas",
	Version: version,
	Short:   "Mint and dispatch SAS requests for Azure Blob Storage",
	Long: `blobsas - Shared Access Signature tool for Azure Blob Storage

Signs blob requests locally with the account key and either prints the
signed URL (url) or dispatches the request (get, put, rm). The account
key never leaves the machine; only the short-lived signature does.

Credentials are resolved in order of precedence:
  flags > environment (BLOBSAS_*) > config file > profile (~/.blobsas/config.yaml)`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(cfgFiles, cmd.Flags())
		if err != nil {
			return err
		}
		setupLogging(cfg.Log.Level)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSliceVarP(&cfgFiles, "config", "c", nil, "config file(s), later files override earlier ones")
	rootCmd.PersistentFlags().StringVarP(&profileName, "profile", "p", "", "profile name (env: BLOBSAS_PROFILE)")
	rootCmd.PersistentFlags().String("account", "", "storage account name (env: BLOBSAS_ACCOUNT_NAME)")
	rootCmd.PersistentFlags().String("key", "", "base64 account key (env: BLOBSAS_ACCOUNT_KEY)")
	rootCmd.PersistentFlags().String("keys-file", "", "JSON credentials file with per-account keys")
	rootCmd.PersistentFlags().String("endpoint", "", "storage endpoint override, e.g. for Azurite (env: BLOBSAS_ENDPOINT)")
	rootCmd.PersistentFlags().Int("ttl", 0, "signature lifetime in seconds (default: 900)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")

	rootCmd.AddCommand(urlCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(putCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(configureCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		os.Exit(1)
	}
}

// getProfilePath returns the path of the profile file.
func getProfilePath() string {
	if path := client.ConfigPathFromEnv(); path != "" {
		return path
	}
	return client.DefaultConfigPath()
}

// getProfileName returns the selected profile name (flag, then env).
func getProfileName() string {
	if profileName != "" {
		return profileName
	}
	return client.ProfileFromEnv()
}

// buildClientConfig assembles the client configuration. The profile file is
// the weakest source; the loaded config (defaults, config files, BLOBSAS_*
// environment, flags) overrides it field by field.
func buildClientConfig(cmd *cobra.Command) (*client.Config, error) {
	var configs []*client.Config

	// 1. Profile from ~/.blobsas/config.yaml (or BLOBSAS_CONFIG)
	if path := getProfilePath(); path != "" {
		if cf, err := client.LoadConfigFile(path); err == nil {
			if p, profileErr := cf.GetProfile(getProfileName()); profileErr == nil {
				configs = append(configs, client.ConfigFromProfile(p))
			} else if getProfileName() != "" {
				// An explicitly requested profile must exist.
				return nil, profileErr
			}
		} else if getProfileName() != "" {
			return nil, err
		}
	}

	// 2. Loaded config: account name, endpoint, and the key resolved either
	// inline or through the credentials store.
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return nil, err
	}

	loaded := &client.Config{
		Account:  cfg.Account.Name,
		Endpoint: cfg.Sign.Endpoint,
	}
	if key, keyErr := cfg.ResolveKey(); keyErr == nil {
		loaded.Key = key
	}
	configs = append(configs, loaded)

	return client.MergeConfig(configs...), nil
}

// getFormatter returns the appropriate formatter based on flags.
func getFormatter() client.Formatter {
	return client.NewFormatter(jsonOutput, quiet)
}

// getClient creates and returns a configured client.
func getClient(cmd *cobra.Command) (*client.Client, error) {
	cfg, err := buildClientConfig(cmd)
	if err != nil {
		return nil, err
	}

	return client.New(cfg)
}

// getTTL returns the configured signature lifetime.
func getTTL(cmd *cobra.Command) (time.Duration, error) {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return 0, err
	}
	return time.Duration(cfg.Sign.TTL) * time.Second, nil
}

// handleError prints the error through the formatter and passes it on.
func handleError(w io.Writer, err error) error {
	formatter := getFormatter()
	_ = formatter.FormatError(w, err)
	return err
}

// exitError is returned when we want to exit with a specific code
// but don't want cobra to print an error message.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return ""
}
