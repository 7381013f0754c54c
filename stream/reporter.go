package stream

// Reporter is the single-capability sink handed to a producer: it accepts a
// value and forwards it downstream, once per call, with no buffering and no
// backpressure. A Reporter is owned by exactly one subscription; it is usable
// from the moment the producer receives it until the subscription reaches a
// terminal state, after which Report becomes an inert no-op.
//
// Report is safe for concurrent use: the terminal gate is atomic and
// forwarding is serialized, so the downstream observer is never invoked
// concurrently. Relative ordering of concurrent Report calls is the
// producer's responsibility.
type Reporter[T any] struct {
	sub     *Subscription
	forward func(T) error
}

// Report forwards v to the subscriber. After the subscription completed,
// failed, or was unsubscribed, Report forwards nothing and returns nil, so
// producers unaware of consumer-side disposal stay harmless.
//
// An error returned by the downstream observer propagates out of Report to
// the producer, which should stop and return it; the bridge never swallows
// it on the producer's behalf.
func (r *Reporter[T]) Report(v T) error {
	if r == nil || r.sub.State().Terminal() {
		return nil
	}
	r.sub.mu.Lock()
	defer r.sub.mu.Unlock()
	if r.sub.State().Terminal() {
		return nil
	}
	return r.forward(v)
}
