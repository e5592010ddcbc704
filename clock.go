package blobsas

import (
	"net/http"
	"time"
)

// expiryFormat is the ISO-8601 seconds-precision layout used for the signed
// expiry ("se"). Values are always rendered in UTC.
const expiryFormat = "2006-01-02T15:04:05Z"

// Clock supplies the current instant as an RFC-1123 GMT string, the exact
// text sent in the Date header. Implementations must be safe for concurrent
// use.
type Clock interface {
	Now() string
}

// systemClock reads the wall clock.
type systemClock struct{}

func (systemClock) Now() string {
	return time.Now().UTC().Format(http.TimeFormat)
}
