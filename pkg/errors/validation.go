package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// stacIDRegex matches valid STAC object identifiers. This is the same
// conservative character set the STAC API transaction extension accepts.
var stacIDRegex = regexp.MustCompile(`^[a-zA-Z0-9\-_\.]+$`)

// ValidateID validates a STAC object identifier.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters
//   - Maximum length of 256 characters
//   - Only alphanumerics, dash, underscore, and dot
//
// IDs produced by other tools may be more permissive; this check is applied
// only where gostac creates objects itself (the CLI create command).
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidObject, "id cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidObject, "id too long (max 256 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidObject, "id contains control characters")
		}
	}
	if !stacIDRegex.MatchString(id) {
		return New(ErrCodeInvalidObject, `id must conform to format '^[a-zA-Z0-9\-_\.]+$': %q`, id)
	}
	return nil
}

// ValidateHref validates an href string for safety.
// It rejects null bytes and control characters but otherwise accepts both
// filesystem paths and http(s) URLs, which are the two schemes the default
// I/O collaborator supports.
func ValidateHref(href string) error {
	if href == "" {
		return New(ErrCodeInvalidHref, "href cannot be empty")
	}
	for _, r := range href {
		if r == '\x00' || (unicode.IsControl(r) && r != '\t') {
			return New(ErrCodeInvalidHref, "href contains invalid characters")
		}
	}
	if strings.Contains(href, "://") {
		if !strings.HasPrefix(href, "http://") && !strings.HasPrefix(href, "https://") {
			return New(ErrCodeInvalidHref, "href must be a path or an http(s) URL: %q", href)
		}
	}
	return nil
}
