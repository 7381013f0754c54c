package stream

import (
	"context"
	"errors"

	"github.com/kbukum/streamkit/resilience"
)

// downstreamRejection marks an attempt failure that originated from the
// outer subscriber rejecting a value. Re-running the producer cannot help:
// the consumer side has shut down.
type downstreamRejection struct {
	err error
}

func (e *downstreamRejection) Error() string { return e.err.Error() }
func (e *downstreamRejection) Unwrap() error { return e.err }

// Resubscribe re-runs a failed stream by subscribing again, with backoff
// between attempts per cfg. The bridge itself never retries and forwards a
// failure exactly once; retry policy lives here, as downstream composition
// over the cold stream's re-subscribability.
//
// Values reported before a failure are forwarded again on the next attempt:
// resubscription re-runs the producer from scratch. Completion of any
// attempt completes the composed stream. An error returned by the outer
// subscriber's Next is never retried; it fails the composed stream
// immediately, since the rejection came from the consumer, not the producer.
func Resubscribe[T any](s *Stream[T], cfg resilience.RetryConfig) *Stream[T] {
	retryIf := cfg.RetryIf
	if retryIf == nil {
		retryIf = resilience.DefaultRetryIf
	}
	cfg.RetryIf = func(err error) bool {
		var rejection *downstreamRejection
		if errors.As(err, &rejection) {
			return false
		}
		return retryIf(err)
	}

	return FromContextProducer(func(ctx context.Context, r *Reporter[T]) error {
		_, err := resilience.Retry(ctx, cfg, func() (struct{}, error) {
			term := make(chan error, 1)
			var rejected error
			sub := s.Subscribe(Observer[T]{
				Next: func(v T) error {
					if err := r.Report(v); err != nil {
						rejected = err
						return err
					}
					return nil
				},
				Error: func(err error) {
					if rejected != nil {
						term <- &downstreamRejection{err: rejected}
						return
					}
					term <- err
				},
				Complete: func() { term <- nil },
			})
			select {
			case <-ctx.Done():
				sub.Unsubscribe()
				return struct{}{}, ctx.Err()
			case err := <-term:
				return struct{}{}, err
			}
		})
		var rejection *downstreamRejection
		if errors.As(err, &rejection) {
			return rejection.err
		}
		return err
	})
}
