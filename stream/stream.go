package stream

// Observer receives the values and the terminal signal of one subscription.
// Any field may be nil; nil callbacks are skipped.
type Observer[T any] struct {
	// Next is called once per reported value, in report order. Returning an
	// error propagates out of the producer's Report call; a producer that
	// returns it fails the stream with it.
	Next func(T) error

	// Error is called at most once, when the producer fails. Mutually
	// exclusive with Complete.
	Error func(error)

	// Complete is called at most once, when the producer returns normally.
	Complete func()
}

// normalize fills nil callbacks with no-ops so bridges and operators can
// invoke them unconditionally.
func (o Observer[T]) normalize() Observer[T] {
	if o.Next == nil {
		o.Next = func(T) error { return nil }
	}
	if o.Error == nil {
		o.Error = func(error) {}
	}
	if o.Complete == nil {
		o.Complete = func() {}
	}
	return o
}

// Stream is a cold sequence of values. The producing logic does not run
// until Subscribe is called, and each subscription runs it independently
// from scratch. A Stream holds no per-run state and is safe to share and
// re-subscribe from multiple goroutines.
type Stream[T any] struct {
	subscribe func(Observer[T]) *Subscription
}

// Subscribe starts one independent execution of the stream and returns its
// Subscription handle. For streams built with FromProducer the producer runs
// to completion on the calling goroutine before Subscribe returns; for the
// asynchronous bridges Subscribe returns immediately.
func (s *Stream[T]) Subscribe(obs Observer[T]) *Subscription {
	return s.subscribe(obs.normalize())
}
