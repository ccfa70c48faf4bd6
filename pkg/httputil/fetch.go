package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Fetch GETs url and returns the response body. Transient failures
// (connection errors, 5xx responses, 429 rate limits) come back wrapped in
// [RetryableError] so callers can hand them to [Retry]; other non-2xx
// statuses fail permanently.
func Fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &RetryableError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, &RetryableError{Err: fmt.Errorf("GET %s: %s", url, resp.Status)}
	default:
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RetryableError{Err: fmt.Errorf("GET %s: read body: %w", url, err)}
	}
	return body, nil
}
