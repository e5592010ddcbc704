package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/blobsas/blobsas"
)

var (
	urlSize              int64
	urlFile              string
	urlRange             string
	urlIfMatch           string
	urlIfNoneMatch       string
	urlIfModifiedSince   string
	urlIfUnmodifiedSince string
)

var urlCmd = &cobra.Command{
	Use:   "url <read|write|delete> <container> <blob>",
	Short: "Mint a signed URL without dispatching it",
	Long: `Mint a signed URL for the given operation and print it.

The URL carries the signature and expiry as query parameters and can be
handed to anyone; until it expires it authorizes exactly one operation on
exactly one blob. Write URLs must be used with the printed headers
(x-ms-blob-type, Content-Length).

Examples:
  blobsas url read mycontainer report.pdf
  blobsas url read mycontainer big.bin --range 0-1048575
  blobsas url write mycontainer upload.bin --size 2048
  blobsas url delete mycontainer stale.tmp --ttl 60
  blobsas url read mycontainer report.pdf -q | xargs curl -O`,
	Args: cobra.ExactArgs(3),
	RunE: runURL,
}

func init() {
	urlCmd.Flags().Int64Var(&urlSize, "size", -1, "content length in bytes (required for write unless --file is given)")
	urlCmd.Flags().StringVar(&urlFile, "file", "", "local file whose size to sign (alternative to --size)")
	urlCmd.Flags().StringVar(&urlRange, "range", "", `byte range for reads, e.g. "0-499" or "500-"`)
	urlCmd.Flags().StringVar(&urlIfMatch, "if-match", "", "only read when the blob's ETag matches")
	urlCmd.Flags().StringVar(&urlIfNoneMatch, "if-none-match", "", "only read when the blob's ETag differs")
	urlCmd.Flags().StringVar(&urlIfModifiedSince, "if-modified-since", "", "RFC-1123 timestamp condition")
	urlCmd.Flags().StringVar(&urlIfUnmodifiedSince, "if-unmodified-since", "", "RFC-1123 timestamp condition")
}

func runURL(cmd *cobra.Command, args []string) error {
	op, err := blobsas.ParseOperation(args[0])
	if err != nil {
		return handleError(os.Stderr, err)
	}
	container, blob := args[1], args[2]

	ttl, err := getTTL(cmd)
	if err != nil {
		return err
	}

	signCfg := blobsas.SignConfig{TTL: ttl}

	switch op {
	case blobsas.Write:
		size := urlSize
		if urlFile != "" {
			info, statErr := os.Stat(urlFile)
			if statErr != nil {
				return handleError(os.Stderr, fmt.Errorf("stat %s: %w", urlFile, statErr))
			}
			size = info.Size()
		}
		if size < 0 {
			return handleError(os.Stderr, fmt.Errorf("%w: write requires --size or --file", blobsas.ErrUnknownSize))
		}
		signCfg.ContentLength = &size
	case blobsas.Read:
		get, getErr := buildGetOptions(urlRange, urlIfMatch, urlIfNoneMatch, urlIfModifiedSince, urlIfUnmodifiedSince)
		if getErr != nil {
			return handleError(os.Stderr, getErr)
		}
		signCfg.Get = get
	case blobsas.Delete:
		// Nothing extra to carry.
	}

	c, err := getClient(cmd)
	if err != nil {
		return handleError(os.Stderr, err)
	}

	result, err := c.SignURL(op, container, blob, signCfg)
	if err != nil {
		return handleError(os.Stderr, err)
	}

	return getFormatter().FormatURL(os.Stdout, result)
}

// buildGetOptions assembles read options from flag values. Returns nil when
// no option is set so plain reads stay plain.
func buildGetOptions(rangeSpec, ifMatch, ifNoneMatch, ifModifiedSince, ifUnmodifiedSince string) (*blobsas.GetOptions, error) {
	if rangeSpec == "" && ifMatch == "" && ifNoneMatch == "" && ifModifiedSince == "" && ifUnmodifiedSince == "" {
		return nil, nil
	}

	get := &blobsas.GetOptions{
		IfMatch:     ifMatch,
		IfNoneMatch: ifNoneMatch,
	}

	if rangeSpec != "" {
		r, err := parseRange(rangeSpec)
		if err != nil {
			return nil, err
		}
		get.Range = r
	}

	if ifModifiedSince != "" {
		t, err := time.Parse(http.TimeFormat, ifModifiedSince)
		if err != nil {
			return nil, fmt.Errorf("parse --if-modified-since: %w", err)
		}
		get.IfModifiedSince = t
	}

	if ifUnmodifiedSince != "" {
		t, err := time.Parse(http.TimeFormat, ifUnmodifiedSince)
		if err != nil {
			return nil, fmt.Errorf("parse --if-unmodified-since: %w", err)
		}
		get.IfUnmodifiedSince = t
	}

	return get, nil
}

// parseRange parses "start-end" or the open-ended "start-" form.
func parseRange(spec string) (*blobsas.ByteRange, error) {
	start, end, ok := strings.Cut(spec, "-")
	if !ok {
		return nil, fmt.Errorf("%w: range must look like \"0-499\" or \"500-\"", blobsas.ErrInvalidInput)
	}

	startByte, err := strconv.ParseInt(start, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse range start: %w", err)
	}

	r := &blobsas.ByteRange{Start: startByte, End: -1}
	if end != "" {
		endByte, endErr := strconv.ParseInt(end, 10, 64)
		if endErr != nil {
			return nil, fmt.Errorf("parse range end: %w", endErr)
		}
		r.End = endByte
	}

	return r, nil
}
