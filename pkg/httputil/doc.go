// Package httputil provides the HTTP plumbing used when STAC documents are
// fetched over the network.
//
// # Overview
//
//   - [Fetch]: GET a document body with transient-failure classification
//   - [Retry]: Automatic retry with exponential backoff
//
// # Retry
//
// [Retry] re-attempts operations that fail with a [RetryableError]:
// network errors, 5xx server errors and 429 rate-limit responses. Other
// failures, such as a 404 for a catalog that does not exist, return
// immediately.
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    body, err = httputil.Fetch(ctx, client, href)
//	    return err
//	})
//
// Defaults: 3 attempts, 1 second base delay, doubling each retry.
package httputil
