package client

import "errors"

// Errors for profile operations.
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrNoProfiles      = errors.New("no profiles configured")
	ErrProfileExists   = errors.New("profile already exists")
)

// Errors for configuration validation.
var (
	ErrAccountRequired = errors.New("account is required")
	ErrKeyRequired     = errors.New("account key is required")
	ErrConfigRequired  = errors.New("config is required")
)

// Errors for input validation.
var (
	ErrNoBlobs           = errors.New("no blobs provided")
	ErrBlobRequired      = errors.New("blob name is required")
	ErrEmptyLocal        = errors.New("local path is required")
	ErrContainerRequired = errors.New("container is required")
)
