package blobsas

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// SharedKeyLite signs canonical strings with the storage account's shared
// key: HMAC-SHA256 over the UTF-8 string-to-sign, keyed with the
// base64-decoded account key, base64-encoded output. Identical input
// strings always produce identical signatures for a fixed key.
type SharedKeyLite struct {
	key []byte
}

// NewSharedKeyLite creates an Authenticator from the base64-encoded account
// key as handed out by the storage service.
func NewSharedKeyLite(accountKey string) (*SharedKeyLite, error) {
	if accountKey == "" {
		return nil, fmt.Errorf("new shared key: %w: account key cannot be empty", ErrInvalidInput)
	}

	key, err := base64.StdEncoding.DecodeString(accountKey)
	if err != nil {
		return nil, fmt.Errorf("new shared key: decode account key: %w", err)
	}

	return &SharedKeyLite{key: key}, nil
}

// Sign computes the base64 HMAC-SHA256 signature of the string-to-sign.
func (a *SharedKeyLite) Sign(stringToSign string) (string, error) {
	mac := hmac.New(sha256.New, a.key)
	mac.Write([]byte(stringToSign))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}
