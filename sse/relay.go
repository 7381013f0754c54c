package sse

import (
	"encoding/json"
	"fmt"

	"github.com/kbukum/streamkit/logger"
	"github.com/kbukum/streamkit/stream"
)

// Relay connects a stream to a Broadcaster: every value the stream forwards
// is marshalled into an Envelope and broadcast to clients whose IDs match
// the relay's pattern. Terminal signals are broadcast as error/complete
// envelopes, so browsers can stop listening.
type Relay[T any] struct {
	broadcaster Broadcaster
	name        string
	pattern     string
	log         *logger.Logger
}

// NewRelay creates a relay for the named stream. By default values are
// broadcast to every connected client; use WithPattern to narrow delivery.
func NewRelay[T any](b Broadcaster, name string) *Relay[T] {
	return &Relay[T]{
		broadcaster: b,
		name:        name,
		pattern:     "*",
		log:         logger.Get("sse-relay").WithFields(map[string]interface{}{logger.FieldStream: name}),
	}
}

// WithPattern restricts the relay to clients matching the glob pattern.
func (r *Relay[T]) WithPattern(pattern string) *Relay[T] {
	r.pattern = pattern
	return r
}

// Run subscribes to the stream and broadcasts until it terminates. The
// returned subscription cancels the relay; for cancellation-aware sources
// that also stops the producer.
func (r *Relay[T]) Run(s *stream.Stream[T]) *stream.Subscription {
	return s.Subscribe(stream.Observer[T]{
		Next: func(v T) error {
			data, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("sse: marshalling %s value: %w", r.name, err)
			}
			r.publish(Envelope{Type: EventTypeMessage, Stream: r.name, Data: data})
			return nil
		},
		Error: func(err error) {
			r.log.Warn("relayed stream failed", logger.Fields(logger.FieldError, err.Error()))
			r.publish(Envelope{Type: EventTypeError, Stream: r.name, Error: err.Error()})
		},
		Complete: func() {
			r.log.Debug("relayed stream completed")
			r.publish(Envelope{Type: EventTypeComplete, Stream: r.name})
		},
	})
}

func (r *Relay[T]) publish(env Envelope) {
	payload, err := json.Marshal(env)
	if err != nil {
		r.log.Error("marshalling envelope", logger.Fields(logger.FieldError, err.Error()))
		return
	}
	r.broadcaster.BroadcastToPattern(r.pattern, payload)
}
