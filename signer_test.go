package blobsas_test

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blobsas/blobsas"
)

// fixedClock returns the same RFC-1123 string on every read.
type fixedClock string

func (c fixedClock) Now() string { return string(c) }

// recordingAuth captures the string-to-sign and returns a canned signature.
type recordingAuth struct {
	last      string
	signature string
	err       error
}

func (a *recordingAuth) Sign(stringToSign string) (string, error) {
	a.last = stringToSign
	if a.err != nil {
		return "", a.err
	}
	return a.signature, nil
}

const testNow = "Wed, 01 Jan 2020 00:00:00 GMT"

func newTestSigner(t *testing.T) (*blobsas.Signer, *recordingAuth) {
	t.Helper()

	auth := &recordingAuth{signature: "mocked-signature"}
	signer, err := blobsas.NewSigner("myaccount", auth, blobsas.WithClock(fixedClock(testNow)))
	require.NoError(t, err)

	return signer, auth
}

func TestSigner_EndToEnd(t *testing.T) {
	signer, auth := newTestSigner(t)

	req, err := signer.SignReadFor("mycontainer", "myblob.txt", 900*time.Second)
	require.NoError(t, err)

	wantStringToSign := "r\n\n2020-01-01T00:15:00Z\n/blob/myaccount/mycontainer/myblob.txt\n\n\n\n2017-04-17\n\n\n\n\n"
	assert.Equal(t, wantStringToSign, auth.last)

	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "2017-04-17", req.Query.Get("sv"))
	assert.Equal(t, "2020-01-01T00:15:00Z", req.Query.Get("se"))
	assert.Equal(t, "b", req.Query.Get("sr"))
	assert.Equal(t, "r", req.Query.Get("sp"))
	assert.Equal(t, "mocked-signature", req.Query.Get("sig"))

	assert.Equal(t, testNow, req.Header.Get("Date"))
	assert.Empty(t, req.Header.Get("Content-Length"))

	assert.True(t, strings.HasPrefix(req.URL(), "https://myaccount.blob.core.windows.net/mycontainer/myblob.txt?"))
}

func TestSigner_Determinism(t *testing.T) {
	signer, auth := newTestSigner(t)

	first, err := signer.SignRead("mycontainer", "myblob.txt")
	require.NoError(t, err)
	firstStringToSign := auth.last

	second, err := signer.SignRead("mycontainer", "myblob.txt")
	require.NoError(t, err)

	assert.Equal(t, firstStringToSign, auth.last)
	assert.Equal(t, first.URL(), second.URL())
}

func TestSigner_TTL(t *testing.T) {
	tests := []struct {
		name string
		ttl  time.Duration
		want string
	}{
		{
			name: "default when zero",
			ttl:  0,
			want: "2020-01-01T00:15:00Z",
		},
		{
			name: "one hour",
			ttl:  time.Hour,
			want: "2020-01-01T01:00:00Z",
		},
		{
			name: "one second",
			ttl:  time.Second,
			want: "2020-01-01T00:00:01Z",
		},
		{
			name: "across midnight",
			ttl:  36 * time.Hour,
			want: "2020-01-02T12:00:00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signer, _ := newTestSigner(t)

			req, err := signer.Sign(blobsas.Read, "c", "n", blobsas.SignConfig{TTL: tt.ttl})
			require.NoError(t, err)

			assert.Equal(t, tt.want, req.Query.Get("se"))

			// The expiry must be exactly Date + TTL.
			now, parseErr := time.Parse(http.TimeFormat, req.Header.Get("Date"))
			require.NoError(t, parseErr)
			ttl := tt.ttl
			if ttl == 0 {
				ttl = blobsas.DefaultTTL
			}
			assert.Equal(t, now.Add(ttl).UTC().Format("2006-01-02T15:04:05Z"), req.Query.Get("se"))
		})
	}
}

func TestSigner_SignDelete(t *testing.T) {
	signer, auth := newTestSigner(t)

	req, err := signer.SignDelete("mycontainer", "myblob.txt")
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "d", req.Query.Get("sp"))
	assert.Equal(t, "b", req.Query.Get("sr"))
	assert.Empty(t, req.Header.Get("Content-Length"))

	fields := strings.Split(auth.last, "\n")
	require.Len(t, fields, 13)
	assert.Equal(t, "d", fields[0])
	assert.Equal(t, "/blob/myaccount/mycontainer/myblob.txt", fields[3])
}

func TestSigner_SignWrite(t *testing.T) {
	t.Run("sets block blob header and content length", func(t *testing.T) {
		signer, auth := newTestSigner(t)

		req, err := signer.SignWrite("mycontainer", blobsas.Blob{Name: "myblob.txt", Size: 1024})
		require.NoError(t, err)

		assert.Equal(t, http.MethodPut, req.Method)
		assert.Equal(t, "w", req.Query.Get("sp"))
		assert.Equal(t, "BlockBlob", req.Header.Get("x-ms-blob-type"))
		assert.Equal(t, "1024", req.Header.Get("Content-Length"))
		assert.Equal(t, "w", strings.Split(auth.last, "\n")[0])
	})

	t.Run("zero size is a valid length", func(t *testing.T) {
		signer, _ := newTestSigner(t)

		req, err := signer.SignWrite("mycontainer", blobsas.Blob{Name: "empty.txt", Size: 0})
		require.NoError(t, err)
		assert.Equal(t, "0", req.Header.Get("Content-Length"))
	})

	t.Run("unresolvable size fails before signing", func(t *testing.T) {
		signer, auth := newTestSigner(t)

		_, err := signer.SignWrite("mycontainer", blobsas.Blob{Name: "myblob.txt", Size: -1})
		assert.ErrorIs(t, err, blobsas.ErrUnknownSize)
		assert.Empty(t, auth.last)
	})

	t.Run("empty blob name fails", func(t *testing.T) {
		signer, _ := newTestSigner(t)

		_, err := signer.SignWrite("mycontainer", blobsas.Blob{Size: 10})
		assert.ErrorIs(t, err, blobsas.ErrInvalidInput)
	})
}

func TestSigner_SignReadWith(t *testing.T) {
	t.Run("nil options fail", func(t *testing.T) {
		signer, _ := newTestSigner(t)

		_, err := signer.SignReadWith("mycontainer", "myblob.txt", nil)
		assert.ErrorIs(t, err, blobsas.ErrInvalidInput)
	})

	t.Run("translated headers ride on the request", func(t *testing.T) {
		signer, _ := newTestSigner(t)

		get := &blobsas.GetOptions{
			Range:       &blobsas.ByteRange{Start: 0, End: 511},
			IfMatch:     `"etag-1"`,
			IfNoneMatch: `"etag-2"`,
		}

		req, err := signer.SignReadWith("mycontainer", "myblob.txt", get)
		require.NoError(t, err)

		assert.Equal(t, "bytes=0-511", req.Header.Get("Range"))
		assert.Equal(t, `"etag-1"`, req.Header.Get("If-Match"))
		assert.Equal(t, `"etag-2"`, req.Header.Get("If-None-Match"))
		assert.Equal(t, testNow, req.Header.Get("Date"))
		assert.Equal(t, "r", req.Query.Get("sp"))
	})

	t.Run("option headers are not signed", func(t *testing.T) {
		signer, auth := newTestSigner(t)

		_, err := signer.SignRead("mycontainer", "myblob.txt")
		require.NoError(t, err)
		plain := auth.last

		_, err = signer.SignReadWith("mycontainer", "myblob.txt", &blobsas.GetOptions{
			Range: &blobsas.ByteRange{Start: 10, End: 20},
		})
		require.NoError(t, err)

		assert.Equal(t, plain, auth.last)
	})
}

func TestSigner_InvalidInput(t *testing.T) {
	signer, _ := newTestSigner(t)

	tests := []struct {
		name      string
		op        blobsas.Operation
		container string
		blob      string
		cfg       blobsas.SignConfig
	}{
		{
			name:      "empty container",
			op:        blobsas.Read,
			container: "",
			blob:      "myblob.txt",
		},
		{
			name:      "empty name",
			op:        blobsas.Read,
			container: "mycontainer",
			blob:      "",
		},
		{
			name:      "unsupported operation",
			op:        blobsas.Operation(42),
			container: "mycontainer",
			blob:      "myblob.txt",
		},
		{
			name:      "negative ttl",
			op:        blobsas.Read,
			container: "mycontainer",
			blob:      "myblob.txt",
			cfg:       blobsas.SignConfig{TTL: -time.Second},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := signer.Sign(tt.op, tt.container, tt.blob, tt.cfg)
			assert.ErrorIs(t, err, blobsas.ErrInvalidInput)
		})
	}
}

func TestSigner_CollaboratorFailure(t *testing.T) {
	t.Run("authenticator error propagates", func(t *testing.T) {
		authErr := errors.New("key vault unavailable")
		auth := &recordingAuth{err: authErr}
		signer, err := blobsas.NewSigner("myaccount", auth, blobsas.WithClock(fixedClock(testNow)))
		require.NoError(t, err)

		_, err = signer.SignRead("mycontainer", "myblob.txt")
		assert.ErrorIs(t, err, authErr)
	})

	t.Run("malformed timestamp fails before signing", func(t *testing.T) {
		auth := &recordingAuth{signature: "sig"}
		signer, err := blobsas.NewSigner("myaccount", auth, blobsas.WithClock(fixedClock("not a date")))
		require.NoError(t, err)

		_, err = signer.SignRead("mycontainer", "myblob.txt")
		assert.Error(t, err)
		assert.Empty(t, auth.last)
	})
}

func TestNewSigner(t *testing.T) {
	auth := &recordingAuth{signature: "sig"}

	t.Run("empty account", func(t *testing.T) {
		_, err := blobsas.NewSigner("", auth)
		assert.ErrorIs(t, err, blobsas.ErrInvalidInput)
	})

	t.Run("nil authenticator", func(t *testing.T) {
		_, err := blobsas.NewSigner("myaccount", nil)
		assert.ErrorIs(t, err, blobsas.ErrInvalidInput)
	})

	t.Run("custom endpoint", func(t *testing.T) {
		endpoint, err := url.Parse("http://127.0.0.1:10000/devstoreaccount1/")
		require.NoError(t, err)

		signer, err := blobsas.NewSigner("devstoreaccount1", auth,
			blobsas.WithClock(fixedClock(testNow)),
			blobsas.WithEndpoint(endpoint),
		)
		require.NoError(t, err)

		req, err := signer.SignRead("c", "n")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(req.URL(), "http://127.0.0.1:10000/devstoreaccount1/c/n?"))
	})
}

func TestSignedRequest_HTTPRequest(t *testing.T) {
	signer, _ := newTestSigner(t)

	signed, err := signer.SignWrite("mycontainer", blobsas.Blob{Name: "myblob.txt", Size: 5})
	require.NoError(t, err)

	req, err := signed.HTTPRequest(context.Background(), strings.NewReader("hello"))
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, int64(5), req.ContentLength)
	assert.Equal(t, "BlockBlob", req.Header.Get("x-ms-blob-type"))
	assert.Equal(t, testNow, req.Header.Get("Date"))
	assert.Equal(t, "mocked-signature", req.URL.Query().Get("sig"))
}
