package stream

import "errors"

// ErrStop is returned by a downstream Next callback to request early
// termination. A producer that propagates it out of Report ends the stream
// with completion, not failure.
var ErrStop = errors.New("stream: stop")

// Map transforms each value using fn. An error from fn propagates upstream
// through Report and fails the stream.
func Map[I, O any](s *Stream[I], fn func(I) (O, error)) *Stream[O] {
	return &Stream[O]{subscribe: func(obs Observer[O]) *Subscription {
		return s.Subscribe(Observer[I]{
			Next: func(v I) error {
				out, err := fn(v)
				if err != nil {
					return err
				}
				return obs.Next(out)
			},
			Error:    obs.Error,
			Complete: obs.Complete,
		})
	}}
}

// Filter keeps only values that satisfy the predicate.
func Filter[T any](s *Stream[T], fn func(T) bool) *Stream[T] {
	return &Stream[T]{subscribe: func(obs Observer[T]) *Subscription {
		return s.Subscribe(Observer[T]{
			Next: func(v T) error {
				if !fn(v) {
					return nil
				}
				return obs.Next(v)
			},
			Error:    obs.Error,
			Complete: obs.Complete,
		})
	}}
}

// Tap calls fn as a side-effect for each value, then passes the value
// through unchanged. Use for logging, metrics, or mid-stream publishing.
func Tap[T any](s *Stream[T], fn func(T)) *Stream[T] {
	return &Stream[T]{subscribe: func(obs Observer[T]) *Subscription {
		return s.Subscribe(Observer[T]{
			Next: func(v T) error {
				fn(v)
				return obs.Next(v)
			},
			Error:    obs.Error,
			Complete: obs.Complete,
		})
	}}
}

// Hooks are side-effect callbacks for Observe. Any field may be nil.
type Hooks[T any] struct {
	// OnSubscribe fires when a subscription is created, before the producer runs.
	OnSubscribe func()
	// OnNext fires for every forwarded value.
	OnNext func(T)
	// OnError fires when the stream fails.
	OnError func(error)
	// OnComplete fires when the stream completes.
	OnComplete func()
	// OnSettle fires once the subscription reaches any terminal state,
	// including cancellation, which the observer callbacks never see.
	OnSettle func(State, error)
}

// Observe attaches lifecycle hooks to a stream and passes it through
// unchanged. Used for metrics and logging around a stream without touching
// its consumers.
func Observe[T any](s *Stream[T], h Hooks[T]) *Stream[T] {
	return &Stream[T]{subscribe: func(obs Observer[T]) *Subscription {
		if h.OnSubscribe != nil {
			h.OnSubscribe()
		}
		sub := s.Subscribe(Observer[T]{
			Next: func(v T) error {
				if h.OnNext != nil {
					h.OnNext(v)
				}
				return obs.Next(v)
			},
			Error: func(err error) {
				if h.OnError != nil {
					h.OnError(err)
				}
				obs.Error(err)
			},
			Complete: func() {
				if h.OnComplete != nil {
					h.OnComplete()
				}
				obs.Complete()
			},
		})
		if h.OnSettle != nil {
			go func() {
				<-sub.Done()
				h.OnSettle(sub.State(), sub.Err())
			}()
		}
		return sub
	}}
}

// Take forwards at most n values, then asks the producer to stop by
// returning ErrStop from Report. Cooperative producers (anything that stops
// reporting on a Report error, including FromSlice) end with completion
// right after the nth value.
func Take[T any](s *Stream[T], n int) *Stream[T] {
	return &Stream[T]{subscribe: func(obs Observer[T]) *Subscription {
		remaining := n
		return s.Subscribe(Observer[T]{
			Next: func(v T) error {
				if remaining <= 0 {
					return ErrStop
				}
				remaining--
				if err := obs.Next(v); err != nil {
					return err
				}
				if remaining == 0 {
					return ErrStop
				}
				return nil
			},
			Error:    obs.Error,
			Complete: obs.Complete,
		})
	}}
}
