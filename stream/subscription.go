package stream

import (
	"context"
	"sync"
	"sync/atomic"
)

// State is the lifecycle state of one subscription.
// Transitions: Created → Running → {Completed | Failed | Cancelled}.
// Terminal states have no transitions out.
type State int32

const (
	StateCreated State = iota
	StateRunning
	StateCompleted
	StateFailed
	StateCancelled
)

// Terminal reports whether the state is one of the three terminal states.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed || s == StateCancelled
}

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Subscription represents one active execution of a Stream. It owns the
// cancellation signal for that execution and tracks its state machine.
type Subscription struct {
	state     atomic.Int32
	canCancel bool
	cancel    context.CancelFunc

	// err is written once, before done is closed.
	err  error
	done chan struct{}

	// mu serializes value forwarding and the terminal callback so observer
	// callbacks are never invoked concurrently and no Next lands after the
	// terminal callback.
	mu sync.Mutex
}

func newSubscription(cancel context.CancelFunc) *Subscription {
	return &Subscription{
		canCancel: cancel != nil,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
}

// State returns the current lifecycle state.
func (s *Subscription) State() State {
	return State(s.state.Load())
}

// CanCancel reports whether disposing this subscription can stop the
// producer. It is false for the synchronous and plain asynchronous bridges:
// there, Unsubscribe only silences further forwarding while the producer
// runs to completion on its own.
func (s *Subscription) CanCancel() bool {
	return s.canCancel
}

// Done returns a channel that is closed when the subscription reaches a
// terminal state.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Err returns the terminal error: nil after normal completion, the producer
// error after failure, or context.Canceled after Unsubscribe. It returns nil
// while the subscription is still running.
func (s *Subscription) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

// Wait blocks until the subscription reaches a terminal state and returns
// its terminal error.
func (s *Subscription) Wait() error {
	<-s.done
	return s.err
}

// Unsubscribe disposes the subscription. Further reported values are no
// longer forwarded, and if the subscription supports cancellation the
// producer's context is cancelled. Unsubscribe is idempotent and safe to
// call concurrently with an in-flight Report. It delivers no callback: the
// cancelled terminal is silent.
func (s *Subscription) Unsubscribe() {
	if !s.transition(StateCancelled, context.Canceled) {
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
}

// transition moves the subscription into a terminal state. It returns false
// when a terminal state was already reached, guaranteeing at most one
// terminal transition per subscription.
func (s *Subscription) transition(to State, err error) bool {
	for {
		cur := s.state.Load()
		if State(cur).Terminal() {
			return false
		}
		if s.state.CompareAndSwap(cur, int32(to)) {
			s.err = err
			close(s.done)
			return true
		}
	}
}

// start moves Created → Running.
func (s *Subscription) start() {
	s.state.CompareAndSwap(int32(StateCreated), int32(StateRunning))
}
