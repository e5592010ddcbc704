package blobsas

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// APIVersion is the storage service protocol version the signatures are
	// pinned to. It is embedded in the string-to-sign and sent as the "sv"
	// query parameter; the two must always agree.
	APIVersion = "2017-04-17"

	// DefaultTTL is the signature lifetime used when none is given (15 minutes).
	DefaultTTL = 15 * time.Minute

	// SignedResource is the "sr" query value. Only blob-level signatures
	// are supported, so it is always "b".
	SignedResource = "b"
)

// Operation is the action a signature authorizes against a blob.
type Operation int

const (
	Read Operation = iota
	Write
	Delete
)

// IsValid reports whether op is one of the three supported operations.
func (op Operation) IsValid() bool {
	switch op {
	case Read, Write, Delete:
		return true
	default:
		return false
	}
}

// Permission returns the single-letter signed permission for the operation.
func (op Operation) Permission() string {
	switch op {
	case Write:
		return "w"
	case Delete:
		return "d"
	default:
		return "r"
	}
}

// Method returns the HTTP verb the signed request will use.
func (op Operation) Method() string {
	switch op {
	case Write:
		return http.MethodPut
	case Delete:
		return http.MethodDelete
	default:
		return http.MethodGet
	}
}

func (op Operation) String() string {
	switch op {
	case Read:
		return "read"
	case Write:
		return "write"
	case Delete:
		return "delete"
	default:
		return fmt.Sprintf("operation(%d)", int(op))
	}
}

// ParseOperation converts a string to an Operation.
func ParseOperation(s string) (Operation, error) {
	switch s {
	case "read":
		return Read, nil
	case "write":
		return Write, nil
	case "delete":
		return Delete, nil
	default:
		return 0, fmt.Errorf("parse operation: %w: %s (valid operations: read, write, delete)", ErrInvalidInput, s)
	}
}

// Blob describes the target of a signed write. Size is the declared byte
// length of the content; a negative Size means the length could not be
// resolved and the write is refused before signing.
type Blob struct {
	Name string
	Size int64
}

// SignedRequest is a fully assembled, ready-to-dispatch description of one
// authorized HTTP request. It is built once per signing call and never
// mutated; it stops verifying service-side once the "se" expiry elapses or
// any signed field is altered in transit.
type SignedRequest struct {
	Method   string
	Endpoint *url.URL    // includes the SAS query parameters
	Header   http.Header // Date, Content-Length, x-ms-blob-type, get-option headers
	Query    url.Values  // sv, se, sr, sp, sig
}

// URL returns the signed URL as a string.
func (r *SignedRequest) URL() string {
	return r.Endpoint.String()
}

// HTTPRequest builds an *http.Request for the signed operation, suitable
// for dispatch by any HTTP client. The body is only meaningful for writes.
func (r *SignedRequest) HTTPRequest(ctx context.Context, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, r.Method, r.Endpoint.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}
	if cl := r.Header.Get("Content-Length"); cl != "" {
		// net/http ignores the header field; the struct field is authoritative.
		if n, parseErr := strconv.ParseInt(cl, 10, 64); parseErr == nil {
			req.ContentLength = n
		}
	}
	return req, nil
}
