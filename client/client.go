package client

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/blobsas/blobsas"
)

// DefaultTimeout is the default HTTP client timeout.
const DefaultTimeout = 30 * time.Second

// requestIDHeader tags every outbound request so failures can be correlated
// with the service's own request log.
const requestIDHeader = "x-ms-client-request-id"

// Client performs blob operations against the storage service using
// SAS-signed requests. The account key never leaves the process; each
// operation mints a fresh short-lived signature.
type Client struct {
	config     *Config
	httpClient *http.Client
	signer     *blobsas.Signer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// New creates a new Client with the given config and options.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	auth, err := blobsas.NewSharedKeyLite(cfg.Key)
	if err != nil {
		return nil, fmt.Errorf("load account key: %w", err)
	}

	var signerOpts []blobsas.SignerOption
	if cfg.Endpoint != "" {
		endpoint, parseErr := url.Parse(strings.TrimSuffix(cfg.Endpoint, "/"))
		if parseErr != nil {
			return nil, fmt.Errorf("parse endpoint: %w", parseErr)
		}
		signerOpts = append(signerOpts, blobsas.WithEndpoint(endpoint))
	}

	signer, err := blobsas.NewSigner(cfg.Account, auth, signerOpts...)
	if err != nil {
		return nil, err
	}

	c := &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		signer:     signer,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Account returns the storage account the client operates against.
func (c *Client) Account() string {
	return c.signer.Account()
}

// SignURL mints a signed URL for the operation without dispatching it.
func (c *Client) SignURL(op blobsas.Operation, container, blob string, cfg blobsas.SignConfig) (*URLResult, error) {
	signed, err := c.signer.Sign(op, container, blob, cfg)
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string, len(signed.Header))
	for k := range signed.Header {
		headers[k] = signed.Header.Get(k)
	}

	return &URLResult{
		Container: container,
		Blob:      blob,
		Method:    signed.Method,
		URL:       signed.URL(),
		Expires:   signed.Query.Get("se"),
		Headers:   headers,
	}, nil
}

// Upload uploads a local file as a block blob.
func (c *Client) Upload(ctx context.Context, opts UploadOptions) (*UploadResult, error) {
	if opts.LocalPath == "" {
		return nil, fmt.Errorf("upload: %w", ErrEmptyLocal)
	}
	if opts.Container == "" {
		return nil, fmt.Errorf("upload: %w", ErrContainerRequired)
	}

	blobName := opts.Blob
	if blobName == "" {
		blobName = filepath.Base(opts.LocalPath)
	}

	file, err := os.Open(opts.LocalPath) //#nosec G304 -- localPath is user-provided input
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("upload %s: %w: is a directory", opts.LocalPath, blobsas.ErrInvalidInput)
	}

	contentType := opts.ContentType
	if contentType == "" {
		contentType = detectContentType(opts.LocalPath)
	}

	signed, err := c.signer.SignWriteFor(opts.Container, blobsas.Blob{Name: blobName, Size: info.Size()}, opts.TTL)
	if err != nil {
		return nil, err
	}

	req, err := signed.HTTPRequest(ctx, file)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(requestIDHeader, uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, parseServiceError(resp.StatusCode, body)
	}

	return &UploadResult{
		LocalPath:   opts.LocalPath,
		Container:   opts.Container,
		Blob:        blobName,
		ContentType: contentType,
		ETag:        strings.Trim(resp.Header.Get("ETag"), `"`),
		RequestID:   resp.Header.Get("x-ms-request-id"),
		Size:        info.Size(),
	}, nil
}

// Download downloads a blob.
// If opts.LocalPath is "-", the content is returned via the io.ReadCloser and must be closed by the caller.
// Otherwise, the content is written to the file and the io.ReadCloser is nil.
func (c *Client) Download(ctx context.Context, opts DownloadOptions) (*DownloadResult, io.ReadCloser, error) {
	if opts.Container == "" {
		return nil, nil, fmt.Errorf("download: %w", ErrContainerRequired)
	}
	if opts.Blob == "" {
		return nil, nil, fmt.Errorf("download: %w", ErrBlobRequired)
	}

	signed, err := c.signer.Sign(blobsas.Read, opts.Container, opts.Blob, blobsas.SignConfig{
		TTL: opts.TTL,
		Get: opts.Get,
	})
	if err != nil {
		return nil, nil, err
	}

	req, err := signed.HTTPRequest(ctx, http.NoBody)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set(requestIDHeader, uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("do request: %w", err)
	}

	// 206 is the expected status for ranged reads.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		return nil, nil, parseServiceError(resp.StatusCode, body)
	}

	result := &DownloadResult{
		Container:   opts.Container,
		Blob:        opts.Blob,
		ETag:        strings.Trim(resp.Header.Get("ETag"), `"`),
		ContentType: resp.Header.Get("Content-Type"),
		RequestID:   resp.Header.Get("x-ms-request-id"),
		Size:        resp.ContentLength,
	}

	// If stdout requested, return the body for the caller to handle
	if opts.LocalPath == "-" {
		result.LocalPath = "-"
		return result, resp.Body, nil
	}

	localPath := opts.LocalPath
	if localPath == "" {
		localPath = path.Base(opts.Blob)
	}
	result.LocalPath = localPath

	// Create parent directories if needed
	dir := filepath.Dir(localPath)
	if dir != "" && dir != "." {
		if mkdirErr := os.MkdirAll(dir, 0o750); mkdirErr != nil {
			_ = resp.Body.Close()
			return nil, nil, fmt.Errorf("create directory: %w", mkdirErr)
		}
	}

	file, createErr := os.Create(localPath) //#nosec G304 -- localPath is user-provided input
	if createErr != nil {
		_ = resp.Body.Close()
		return nil, nil, fmt.Errorf("create file: %w", createErr)
	}

	written, copyErr := io.Copy(file, resp.Body)
	_ = resp.Body.Close()
	if copyErr != nil {
		_ = file.Close()
		return nil, nil, fmt.Errorf("write file: %w", copyErr)
	}

	if closeErr := file.Close(); closeErr != nil {
		return nil, nil, fmt.Errorf("close file: %w", closeErr)
	}

	result.Size = written
	return result, nil, nil
}

// Remove deletes one or more blobs from a container.
// Continues on error, collecting results for all blobs.
func (c *Client) Remove(ctx context.Context, opts RemoveOptions) ([]RemoveResult, error) {
	if opts.Container == "" {
		return nil, fmt.Errorf("remove: %w", ErrContainerRequired)
	}
	if len(opts.Blobs) == 0 {
		return nil, ErrNoBlobs
	}

	results := make([]RemoveResult, 0, len(opts.Blobs))

	for _, blob := range opts.Blobs {
		// Check context cancellation
		if err := ctx.Err(); err != nil {
			return results, err
		}

		results = append(results, c.removeSingle(ctx, opts.Container, blob, opts.TTL))
	}

	return results, nil
}

// removeSingle deletes a single blob.
func (c *Client) removeSingle(ctx context.Context, container, blob string, ttl time.Duration) RemoveResult {
	signed, err := c.signer.Sign(blobsas.Delete, container, blob, blobsas.SignConfig{TTL: ttl})
	if err != nil {
		return RemoveResult{Container: container, Blob: blob, Err: err}
	}

	req, err := signed.HTTPRequest(ctx, http.NoBody)
	if err != nil {
		return RemoveResult{Container: container, Blob: blob, Err: err}
	}
	req.Header.Set(requestIDHeader, uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return RemoveResult{Container: container, Blob: blob, Err: fmt.Errorf("do request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	// The service answers 202 Accepted; the blob is garbage-collected later.
	switch resp.StatusCode {
	case http.StatusAccepted, http.StatusNoContent, http.StatusOK:
		return RemoveResult{
			Container: container,
			Blob:      blob,
			Deleted:   true,
			RequestID: resp.Header.Get("x-ms-request-id"),
		}
	}

	body, _ := io.ReadAll(resp.Body)
	return RemoveResult{
		Container: container,
		Blob:      blob,
		Err:       parseServiceError(resp.StatusCode, body),
	}
}

// HasRemoveErrors returns true if any remove operation failed.
func HasRemoveErrors(results []RemoveResult) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// detectContentType returns MIME type based on file extension.
func detectContentType(localPath string) string {
	ext := filepath.Ext(localPath)
	if ext == "" {
		return "application/octet-stream"
	}

	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		return "application/octet-stream"
	}

	return mimeType
}
