package blobsas

import "errors"

var (
	// ErrInvalidInput is returned when a required argument is missing or malformed
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownSize is returned when a write is requested for a blob whose length cannot be resolved
	ErrUnknownSize = errors.New("unknown content length")
)
