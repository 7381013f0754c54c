package stream

import (
	"context"
	"sync"
	"time"
)

// Sample converts a high-frequency stream into a bounded-rate one: every
// period it forwards the most recent value observed since the previous
// boundary and drops all others. Quiet periods emit nothing. A value still
// pending when the upstream terminates is dropped; the terminal signal
// passes through unchanged.
//
// Sample relies on the bridge's pure-forwarding contract: it observes the
// values the Reporter already forwarded one at a time, without touching the
// producer.
func Sample[T any](s *Stream[T], period time.Duration) *Stream[T] {
	return FromContextProducer(func(ctx context.Context, r *Reporter[T]) error {
		var (
			mu     sync.Mutex
			latest T
			fresh  bool
		)
		term := make(chan error, 1)
		subc := make(chan *Subscription, 1)

		// Subscribe on a separate goroutine: a synchronous upstream runs
		// entirely inside Subscribe, and sampling has to tick while it does.
		go func() {
			subc <- s.Subscribe(Observer[T]{
				Next: func(v T) error {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					mu.Lock()
					latest = v
					fresh = true
					mu.Unlock()
					return nil
				},
				Error:    func(err error) { term <- err },
				Complete: func() { term <- nil },
			})
		}()
		defer func() {
			if sub := <-subc; sub != nil {
				sub.Unsubscribe()
			}
		}()

		ticker := time.NewTicker(period)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case err := <-term:
				return err
			case <-ticker.C:
				mu.Lock()
				if !fresh {
					mu.Unlock()
					continue
				}
				v := latest
				fresh = false
				mu.Unlock()
				if err := r.Report(v); err != nil {
					return err
				}
			}
		}
	})
}

// Throttle rate-limits a stream on the leading edge: the first value in each
// interval window is forwarded, later values within the same window are
// dropped. Unlike Sample it forwards values synchronously inside Report and
// needs no timer goroutine.
func Throttle[T any](s *Stream[T], interval time.Duration) *Stream[T] {
	return &Stream[T]{subscribe: func(obs Observer[T]) *Subscription {
		var lastEmit time.Time
		return s.Subscribe(Observer[T]{
			Next: func(v T) error {
				now := time.Now()
				if !lastEmit.IsZero() && now.Sub(lastEmit) < interval {
					return nil
				}
				lastEmit = now
				return obs.Next(v)
			},
			Error:    obs.Error,
			Complete: obs.Complete,
		})
	}}
}
