// Package resilience provides retry with exponential backoff and jitter.
//
// The stream bridge delivers a failure exactly once and never retries on
// its own; when retrying is wanted it happens by re-running the operation —
// for streams, by re-subscribing (see stream.Resubscribe, which is built on
// Retry).
//
//	result, err := resilience.Retry(ctx, resilience.DefaultRetryConfig(), func() (int, error) {
//	    return fetch()
//	})
package resilience
