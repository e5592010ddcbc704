package client

import (
	"time"

	"github.com/blobsas/blobsas"
)

// UploadOptions configures an upload operation.
type UploadOptions struct {
	LocalPath   string
	Container   string
	Blob        string        // empty = derive from local path basename
	ContentType string        // optional, auto-detect if empty
	TTL         time.Duration // zero = client default
}

// UploadResult represents the result of uploading a single file.
type UploadResult struct {
	LocalPath   string `json:"local_path"`
	Container   string `json:"container"`
	Blob        string `json:"blob"`
	ContentType string `json:"content_type"`
	ETag        string `json:"etag"`
	RequestID   string `json:"request_id,omitempty"`
	Size        int64  `json:"size_bytes"`
}

// DownloadOptions configures a download operation.
type DownloadOptions struct {
	Container string
	Blob      string
	LocalPath string              // empty = derive from blob name, "-" = stdout
	TTL       time.Duration       // zero = client default
	Get       *blobsas.GetOptions // optional range and conditional headers
}

// DownloadResult represents the result of downloading a blob.
type DownloadResult struct {
	Container   string `json:"container"`
	Blob        string `json:"blob"`
	LocalPath   string `json:"local_path"`
	ETag        string `json:"etag"`
	ContentType string `json:"content_type"`
	RequestID   string `json:"request_id,omitempty"`
	Size        int64  `json:"size_bytes"`
}

// RemoveOptions configures a remove operation.
type RemoveOptions struct {
	Container string
	Blobs     []string
	TTL       time.Duration // zero = client default
}

// RemoveResult represents the result of removing a single blob.
type RemoveResult struct {
	Container string `json:"container"`
	Blob      string `json:"blob"`
	Deleted   bool   `json:"deleted"`
	RequestID string `json:"request_id,omitempty"`
	Err       error  `json:"-"` // nil on success
}

// URLResult represents a minted SAS URL without dispatching it.
type URLResult struct {
	Container string            `json:"container"`
	Blob      string            `json:"blob"`
	Method    string            `json:"method"`
	URL       string            `json:"url"`
	Expires   string            `json:"expires"`
	Headers   map[string]string `json:"headers,omitempty"`
}
