package observability

import (
	"context"

	"github.com/kbukum/streamkit/stream"
)

// Instrument wraps a stream so every subscription reports to the given
// StreamMetrics under the stream name: values as events, subscribe/settle as
// the active-subscription gauge, and the terminal state as a counter.
// Cancelled subscriptions are settled too, even though their observers see
// no terminal callback.
func Instrument[T any](name string, s *stream.Stream[T], m *StreamMetrics) *stream.Stream[T] {
	if m == nil {
		return s
	}
	ctx := context.Background()
	return stream.Observe(s, stream.Hooks[T]{
		OnSubscribe: func() {
			m.SubscriptionStarted(ctx, name)
		},
		OnNext: func(T) {
			m.RecordEvent(ctx, name)
		},
		OnSettle: func(state stream.State, err error) {
			m.SubscriptionSettled(ctx, name, state.String())
			if state == stream.StateFailed {
				m.RecordError(ctx, "producer_failure", name)
			}
		},
	})
}
