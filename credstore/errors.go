package credstore

import "errors"

// ErrNotFound is returned when the storage account does not exist in the store.
var ErrNotFound = errors.New("account not found")
