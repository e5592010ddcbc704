// Package client performs blob operations against Azure Blob Storage using
// SAS-signed requests minted by the blobsas package.
//
// The Client never sends the account key over the wire: every operation
// signs a fresh, short-lived request locally and dispatches it with a plain
// HTTP client. Each outbound request is tagged with an
// x-ms-client-request-id header for server-side correlation.
//
// The package also holds the profile configuration file format used by the
// CLI (~/.blobsas/config.yaml) and output formatting for human and JSON
// consumption.
package client
