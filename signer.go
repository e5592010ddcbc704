package blobsas

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Authenticator produces a signature for a canonical string-to-sign.
// Implementations must be deterministic for a fixed key and safe for
// concurrent use.
type Authenticator interface {
	Sign(stringToSign string) (string, error)
}

// HeaderTranslator maps caller-facing read options onto request headers.
type HeaderTranslator interface {
	Headers(get *GetOptions) (http.Header, error)
}

// Signer mints SAS requests for a single storage account. It is immutable
// after construction and safe for concurrent use: every call reads the
// clock once, signs once, and returns a fresh SignedRequest. There is no
// retry and no caching; callers wanting resilience wrap the call.
type Signer struct {
	account   string
	endpoint  *url.URL
	version   string
	clock     Clock
	auth      Authenticator
	translate HeaderTranslator
}

// SignerOption configures a Signer.
type SignerOption func(*Signer)

// WithClock sets a custom timestamp source. Used by tests to pin time.
func WithClock(c Clock) SignerOption {
	return func(s *Signer) {
		s.clock = c
	}
}

// WithEndpoint overrides the storage base URL, e.g. for an emulator or a
// sovereign-cloud suffix. The default is https://{account}.blob.core.windows.net/.
func WithEndpoint(endpoint *url.URL) SignerOption {
	return func(s *Signer) {
		s.endpoint = endpoint
	}
}

// WithTranslator sets a custom read-options translator.
func WithTranslator(t HeaderTranslator) SignerOption {
	return func(s *Signer) {
		s.translate = t
	}
}

// NewSigner creates a Signer for the given storage account. The account
// name is used both for the service endpoint and inside the canonical
// resource path, so it must match the account the Authenticator's key
// belongs to.
func NewSigner(account string, auth Authenticator, opts ...SignerOption) (*Signer, error) {
	if account == "" {
		return nil, fmt.Errorf("new signer: %w: account cannot be empty", ErrInvalidInput)
	}
	if auth == nil {
		return nil, fmt.Errorf("new signer: %w: authenticator cannot be nil", ErrInvalidInput)
	}

	s := &Signer{
		account:   account,
		endpoint:  &url.URL{Scheme: "https", Host: account + ".blob.core.windows.net", Path: "/"},
		version:   APIVersion,
		clock:     systemClock{},
		auth:      auth,
		translate: rangeTranslator{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Account returns the storage account name the signer was built for.
func (s *Signer) Account() string {
	return s.account
}

// SignConfig holds the optional parameters of a signing call. The zero
// value means: default TTL, no Content-Length header, no read options.
type SignConfig struct {
	TTL           time.Duration // 0 means DefaultTTL
	ContentLength *int64        // nil means no Content-Length header
	Get           *GetOptions   // nil means no extra read headers
}

// SignRead mints a GET request for the blob, valid for the default TTL.
func (s *Signer) SignRead(container, name string) (*SignedRequest, error) {
	return s.Sign(Read, container, name, SignConfig{})
}

// SignReadFor mints a GET request for the blob with an explicit TTL.
func (s *Signer) SignReadFor(container, name string, ttl time.Duration) (*SignedRequest, error) {
	return s.Sign(Read, container, name, SignConfig{TTL: ttl})
}

// SignReadWith mints a GET request carrying the translated read options
// (byte range, conditional headers). The options are required; passing nil
// fails with ErrInvalidInput.
func (s *Signer) SignReadWith(container, name string, get *GetOptions) (*SignedRequest, error) {
	if get == nil {
		return nil, fmt.Errorf("sign read: %w: get options are required", ErrInvalidInput)
	}
	return s.Sign(Read, container, name, SignConfig{Get: get})
}

// SignWrite mints a PUT request creating or overwriting the blob, valid for
// the default TTL. The blob must carry a resolvable byte length.
func (s *Signer) SignWrite(container string, blob Blob) (*SignedRequest, error) {
	return s.SignWriteFor(container, blob, 0)
}

// SignWriteFor mints a PUT request with an explicit TTL.
func (s *Signer) SignWriteFor(container string, blob Blob, ttl time.Duration) (*SignedRequest, error) {
	if blob.Name == "" {
		return nil, fmt.Errorf("sign write: %w: blob name cannot be empty", ErrInvalidInput)
	}
	if blob.Size < 0 {
		return nil, fmt.Errorf("sign write %s/%s: %w", container, blob.Name, ErrUnknownSize)
	}
	size := blob.Size
	return s.Sign(Write, container, blob.Name, SignConfig{TTL: ttl, ContentLength: &size})
}

// SignDelete mints a DELETE request for the blob, valid for the default TTL.
func (s *Signer) SignDelete(container, name string) (*SignedRequest, error) {
	return s.Sign(Delete, container, name, SignConfig{})
}

// Sign is the general entry point behind the convenience methods. It
// validates the inputs, computes the expiry, builds the canonical
// string-to-sign, obtains the signature, and assembles the request.
func (s *Signer) Sign(op Operation, container, name string, cfg SignConfig) (*SignedRequest, error) {
	if !op.IsValid() {
		return nil, fmt.Errorf("sign: %w: unsupported operation %d", ErrInvalidInput, int(op))
	}
	if container == "" {
		return nil, fmt.Errorf("sign: %w: container cannot be empty", ErrInvalidInput)
	}
	if name == "" {
		return nil, fmt.Errorf("sign: %w: name cannot be empty", ErrInvalidInput)
	}
	if cfg.TTL < 0 {
		return nil, fmt.Errorf("sign %s/%s: %w: ttl cannot be negative", container, name, ErrInvalidInput)
	}
	if cfg.ContentLength != nil && *cfg.ContentLength < 0 {
		return nil, fmt.Errorf("sign %s/%s: %w: content length cannot be negative", container, name, ErrInvalidInput)
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	// The Date header and the signed expiry must derive from the identical
	// textual timestamp the wire will carry, so the RFC-1123 string is
	// parsed back rather than the instant being read twice.
	nowString := s.clock.Now()
	now, err := time.Parse(http.TimeFormat, nowString)
	if err != nil {
		return nil, fmt.Errorf("sign %s/%s: parse timestamp %q: %w", container, name, nowString, err)
	}
	expiry := now.Add(ttl).UTC().Format(expiryFormat)

	resource := "/blob/" + s.account + "/" + container + "/" + name
	signature, err := s.auth.Sign(stringToSign(op.Permission(), expiry, resource, s.version))
	if err != nil {
		return nil, fmt.Errorf("sign %s/%s: %w", container, name, err)
	}

	header := http.Header{}
	header.Set("Date", nowString)

	if cfg.ContentLength != nil {
		header.Set("Content-Length", strconv.FormatInt(*cfg.ContentLength, 10))
	}

	// Read-option headers ride on the request but are not part of the
	// string-to-sign; the service does not verify them against the
	// signature on this code path.
	if cfg.Get != nil {
		optHeader, translateErr := s.translate.Headers(cfg.Get)
		if translateErr != nil {
			return nil, fmt.Errorf("sign %s/%s: %w", container, name, translateErr)
		}
		for k, vs := range optHeader {
			for _, v := range vs {
				header.Add(k, v)
			}
		}
	}

	if op == Write {
		// Only block blob creation is signed, not page or append blobs.
		header.Set("x-ms-blob-type", "BlockBlob")
	}

	query := url.Values{}
	query.Set("sv", s.version)
	query.Set("se", expiry)
	query.Set("sr", SignedResource)
	query.Set("sp", op.Permission())
	// sig last: it authenticates the fields fixed above.
	query.Set("sig", signature)

	endpoint := *s.endpoint
	endpoint.Path = strings.TrimSuffix(endpoint.Path, "/") + "/" + container + "/" + name
	endpoint.RawQuery = query.Encode()

	return &SignedRequest{
		Method:   op.Method(),
		Endpoint: &endpoint,
		Header:   header,
		Query:    query,
	}, nil
}

// stringToSign assembles the canonical string the service's verifier
// reconstructs independently. The field count and order are fixed by the
// protocol version; every field beyond permission, expiry, resource, and
// version stays empty here (no stored policies, IP, or protocol
// restrictions, no response-header overrides).
func stringToSign(permission, expiry, resource, version string) string {
	fields := []string{
		permission, // signedpermission
		"",         // signedstart
		expiry,     // signedexpiry
		resource,   // canonicalizedresource
		"",         // signedidentifier
		"",         // signedIP
		"",         // signedProtocol
		version,    // signedversion
		"",         // rscc
		"",         // rscd
		"",         // rsce
		"",         // rscl
		"",         // rsct
	}
	return strings.Join(fields, "\n")
}
