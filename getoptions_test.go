package blobsas_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blobsas/blobsas"
)

func TestGetOptions_Headers(t *testing.T) {
	modified := time.Date(2019, 12, 31, 23, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		get     blobsas.GetOptions
		want    map[string]string
		wantErr bool
	}{
		{
			name: "bounded range",
			get:  blobsas.GetOptions{Range: &blobsas.ByteRange{Start: 100, End: 199}},
			want: map[string]string{"Range": "bytes=100-199"},
		},
		{
			name: "open ended range",
			get:  blobsas.GetOptions{Range: &blobsas.ByteRange{Start: 1024, End: -1}},
			want: map[string]string{"Range": "bytes=1024-"},
		},
		{
			name: "conditional headers",
			get: blobsas.GetOptions{
				IfModifiedSince:   modified,
				IfUnmodifiedSince: modified.Add(time.Hour),
				IfMatch:           `"abc"`,
			},
			want: map[string]string{
				"If-Modified-Since":   "Tue, 31 Dec 2019 23:00:00 GMT",
				"If-Unmodified-Since": "Wed, 01 Jan 2020 00:00:00 GMT",
				"If-Match":            `"abc"`,
			},
		},
		{
			name:    "negative range start",
			get:     blobsas.GetOptions{Range: &blobsas.ByteRange{Start: -1, End: 10}},
			wantErr: true,
		},
		{
			name:    "range end before start",
			get:     blobsas.GetOptions{Range: &blobsas.ByteRange{Start: 10, End: 5}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signer, _ := newTestSigner(t)

			req, err := signer.SignReadWith("mycontainer", "myblob.txt", &tt.get)
			if tt.wantErr {
				assert.ErrorIs(t, err, blobsas.ErrInvalidInput)
				return
			}
			require.NoError(t, err)

			for k, v := range tt.want {
				assert.Equal(t, v, req.Header.Get(k), "header %s", k)
			}
		})
	}
}
