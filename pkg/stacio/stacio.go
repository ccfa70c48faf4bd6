package stacio

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/stacforge/gostac/pkg/errors"
	"github.com/stacforge/gostac/pkg/httputil"
)

// Default reads and writes local files and fetches http(s) hrefs with
// retry. Writes to http(s) hrefs are rejected; publishing catalogs over
// HTTP needs a backend that knows how (see [Mongo] for one example).
type Default struct {
	client *http.Client
}

// NewDefault creates the standard collaborator with a 30 second HTTP
// timeout.
func NewDefault() *Default {
	return &Default{client: &http.Client{Timeout: 30 * time.Second}}
}

// NewDefaultWithClient creates the standard collaborator with a custom
// HTTP client.
func NewDefaultWithClient(client *http.Client) *Default {
	return &Default{client: client}
}

// ReadText returns the text behind href: an HTTP GET for http(s) hrefs,
// otherwise a local file read.
func (d *Default) ReadText(ctx context.Context, href string) (string, error) {
	if isHTTP(href) {
		var body []byte
		err := httputil.RetryWithBackoff(ctx, func() error {
			var ferr error
			body, ferr = httputil.Fetch(ctx, d.client, href)
			return ferr
		})
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeIO, err, "read %s", href)
		}
		return string(body), nil
	}

	data, err := os.ReadFile(href)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrap(errors.ErrCodeNotFound, err, "read %s", href)
		}
		return "", errors.Wrap(errors.ErrCodeIO, err, "read %s", href)
	}
	return string(data), nil
}

// WriteText writes text to a local href, creating parent directories as
// needed.
func (d *Default) WriteText(ctx context.Context, href string, text string) error {
	if isHTTP(href) {
		return errors.New(errors.ErrCodeIO, "cannot write to http href %s", href)
	}
	if err := os.MkdirAll(filepath.Dir(href), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", href)
	}
	if err := os.WriteFile(href, []byte(text), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", href)
	}
	return nil
}

func isHTTP(href string) bool {
	return strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://")
}
