package blobsas_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blobsas/blobsas"
)

// testAccountKey is base64("0123456789abcdef0123456789abcdef").
const testAccountKey = "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY="

func TestSharedKeyLite_Sign(t *testing.T) {
	auth, err := blobsas.NewSharedKeyLite(testAccountKey)
	require.NoError(t, err)

	tests := []struct {
		name         string
		stringToSign string
		want         string
	}{
		{
			name:         "read string to sign",
			stringToSign: "r\n\n2020-01-01T00:15:00Z\n/blob/myaccount/mycontainer/myblob.txt\n\n\n\n2017-04-17\n\n\n\n\n",
			want:         "aRPOTX1E9xQA9IpzwuQdRfXgGff5paKlFH8d7E33NWc=",
		},
		{
			name:         "write string to sign",
			stringToSign: "w\n\n2020-01-01T00:15:00Z\n/blob/myaccount/mycontainer/myblob.txt\n\n\n\n2017-04-17\n\n\n\n\n",
			want:         "S6sfFgXhzDybFkNhteoqiMnD+BPT3b2t11C6//237eo=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig, signErr := auth.Sign(tt.stringToSign)
			require.NoError(t, signErr)
			assert.Equal(t, tt.want, sig)
		})
	}
}

func TestSharedKeyLite_Deterministic(t *testing.T) {
	auth, err := blobsas.NewSharedKeyLite(testAccountKey)
	require.NoError(t, err)

	first, err := auth.Sign("same input")
	require.NoError(t, err)
	second, err := auth.Sign("same input")
	require.NoError(t, err)
	other, err := auth.Sign("different input")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)

	// Signatures are valid base64 of a 32-byte MAC.
	raw, err := base64.StdEncoding.DecodeString(first)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}

func TestNewSharedKeyLite(t *testing.T) {
	t.Run("empty key", func(t *testing.T) {
		_, err := blobsas.NewSharedKeyLite("")
		assert.ErrorIs(t, err, blobsas.ErrInvalidInput)
	})

	t.Run("key is not base64", func(t *testing.T) {
		_, err := blobsas.NewSharedKeyLite("not-base64!!!")
		assert.Error(t, err)
	})
}
