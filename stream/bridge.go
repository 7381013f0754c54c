package stream

import (
	"context"
	"errors"
)

// FromProducer bridges a synchronous producer into a cold Stream. On each
// Subscribe the producer runs to completion on the subscriber's goroutine;
// Subscribe returns only after the terminal signal was delivered.
//
// This bridge has no cancellation: once started the producer runs
// unconditionally, and the returned Subscription reports CanCancel()==false.
func FromProducer[T any](producer func(*Reporter[T]) error) *Stream[T] {
	return &Stream[T]{subscribe: func(obs Observer[T]) *Subscription {
		sub := newSubscription(nil)
		rep := &Reporter[T]{sub: sub, forward: obs.Next}
		sub.start()
		settle(sub, obs, producer(rep))
		return sub
	}}
}

// FromAsyncProducer bridges an asynchronous producer into a cold Stream. On
// each Subscribe the producer starts on its own goroutine and Subscribe
// returns immediately; values and the terminal signal arrive later. All
// Report calls happen strictly before the terminal signal.
//
// Unsubscribe silences further forwarding but cannot stop the producer
// (CanCancel()==false). Use FromContextProducer for cooperative cancellation.
func FromAsyncProducer[T any](producer func(*Reporter[T]) error) *Stream[T] {
	return &Stream[T]{subscribe: func(obs Observer[T]) *Subscription {
		sub := newSubscription(nil)
		rep := &Reporter[T]{sub: sub, forward: obs.Next}
		sub.start()
		go func() {
			settle(sub, obs, producer(rep))
		}()
		return sub
	}}
}

// FromContextProducer bridges an asynchronous, cancellation-aware producer
// into a cold Stream. Each subscription gets its own context; Unsubscribe
// cancels it, letting a cooperative producer observe the cancellation and
// stop. Producers that ignore the context simply have their further Report
// calls silenced.
//
// A producer returning its context's error after Unsubscribe ends in the
// cancelled terminal, not failure.
func FromContextProducer[T any](producer func(context.Context, *Reporter[T]) error) *Stream[T] {
	return &Stream[T]{subscribe: func(obs Observer[T]) *Subscription {
		ctx, cancel := context.WithCancel(context.Background())
		sub := newSubscription(cancel)
		rep := &Reporter[T]{sub: sub, forward: obs.Next}
		sub.start()
		go func() {
			defer cancel()
			settle(sub, obs, producer(ctx, rep))
		}()
		return sub
	}}
}

// FromSlice returns a Stream that reports each element of items in order and
// completes. Each subscription walks the slice from the start.
func FromSlice[T any](items []T) *Stream[T] {
	return FromProducer(func(r *Reporter[T]) error {
		for _, v := range items {
			if err := r.Report(v); err != nil {
				return err
			}
		}
		return nil
	})
}

// settle delivers the terminal signal for one subscription. The transition
// is attempted first, so a subscription that was unsubscribed ends silently;
// the callback runs under the forwarding lock, after any in-flight Report.
func settle[T any](sub *Subscription, obs Observer[T], err error) {
	if err == nil || errors.Is(err, ErrStop) {
		if sub.transition(StateCompleted, nil) {
			sub.mu.Lock()
			obs.Complete()
			sub.mu.Unlock()
		}
		return
	}
	if sub.transition(StateFailed, err) {
		sub.mu.Lock()
		obs.Error(err)
		sub.mu.Unlock()
	}
}
