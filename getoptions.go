package blobsas

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ByteRange selects a slice of the blob's content. End < 0 means open-ended
// (everything from Start on).
type ByteRange struct {
	Start int64
	End   int64
}

// GetOptions carries the caller-facing options of a signed read: an
// optional byte range and conditional headers. Zero-value fields are
// omitted from the request.
type GetOptions struct {
	Range             *ByteRange
	IfModifiedSince   time.Time
	IfUnmodifiedSince time.Time
	IfMatch           string
	IfNoneMatch       string
}

// rangeTranslator is the default HeaderTranslator: it renders the byte
// range and conditional fields as standard HTTP headers.
type rangeTranslator struct{}

func (rangeTranslator) Headers(get *GetOptions) (http.Header, error) {
	if get == nil {
		return nil, fmt.Errorf("translate get options: %w: options cannot be nil", ErrInvalidInput)
	}

	h := http.Header{}

	if r := get.Range; r != nil {
		if r.Start < 0 {
			return nil, fmt.Errorf("translate get options: %w: range start cannot be negative", ErrInvalidInput)
		}
		if r.End >= 0 && r.End < r.Start {
			return nil, fmt.Errorf("translate get options: %w: range end before start", ErrInvalidInput)
		}
		if r.End < 0 {
			h.Set("Range", "bytes="+strconv.FormatInt(r.Start, 10)+"-")
		} else {
			h.Set("Range", "bytes="+strconv.FormatInt(r.Start, 10)+"-"+strconv.FormatInt(r.End, 10))
		}
	}

	if !get.IfModifiedSince.IsZero() {
		h.Set("If-Modified-Since", get.IfModifiedSince.UTC().Format(http.TimeFormat))
	}
	if !get.IfUnmodifiedSince.IsZero() {
		h.Set("If-Unmodified-Since", get.IfUnmodifiedSince.UTC().Format(http.TimeFormat))
	}
	if get.IfMatch != "" {
		h.Set("If-Match", get.IfMatch)
	}
	if get.IfNoneMatch != "" {
		h.Set("If-None-Match", get.IfNoneMatch)
	}

	return h, nil
}
