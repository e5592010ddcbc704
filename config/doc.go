// Package config provides configuration loading and validation for blobsas.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (BLOBSAS_ prefix)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Store in context for subcommands
//	ctx = config.WithContext(ctx, cfg)
//
//	// Retrieve later
//	cfg, err = config.FromContext(ctx)
//
// # Environment Variables
//
// All config keys map to environment variables with BLOBSAS_ prefix:
//   - account.name → BLOBSAS_ACCOUNT_NAME
//   - account.key → BLOBSAS_ACCOUNT_KEY
//   - sign.ttl → BLOBSAS_SIGN_TTL
//
// # Configuration Structure
//
// The Config struct contains:
//   - Account: storage account name and inline shared key
//   - Credentials: inline credential list and/or JSON credentials file
//   - Sign: default TTL in seconds and optional endpoint override
//   - Log: logging level
//
// # Validation
//
// Configuration is validated using struct tags:
//   - TTL must be 1-604800 seconds
//   - Endpoint, when set, must be a URL
//   - Log level must be debug, info, warn, or error
package config
