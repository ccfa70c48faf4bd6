package stac

import (
	"time"

	"github.com/stacforge/gostac/pkg/errors"
)

// FormatDatetime renders t in the ISO-8601 form STAC requires: RFC 3339
// with a trailing "Z" for UTC instants and an explicit offset otherwise.
func FormatDatetime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// ParseDatetime parses an ISO-8601 datetime string.
func ParseDatetime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.Wrap(errors.ErrCodeInvalidDatetime, err, "parse datetime %q", s)
	}
	return t, nil
}
