// Package stream bridges callback-driven producers into cold, push-based
// streams.
//
// A producer is any function that accepts a Reporter and calls Report for
// each intermediate value before returning. The bridge constructors wrap a
// producer into a Stream: a cold, re-subscribable sequence. Nothing runs
// until Subscribe is called, and every subscription is an independent
// execution with its own Reporter and state.
//
// # Bridges
//
//   - FromProducer: synchronous producer, runs on the subscriber's goroutine
//   - FromAsyncProducer: asynchronous producer, Subscribe returns immediately
//   - FromContextProducer: asynchronous producer with cooperative cancellation
//
// # Operators
//
// Streams compose with push-based operators:
//
//   - Map, Filter, Tap, Take: per-value transforms
//   - Sample: forward the latest value per period, drop the rest
//   - Throttle: leading-edge rate limit
//   - Resubscribe: re-run the producer on failure with backoff
//
// # Usage
//
//	s := stream.FromContextProducer(func(ctx context.Context, r *stream.Reporter[int]) error {
//	    for i := 0; ctx.Err() == nil; i++ {
//	        if err := r.Report(i); err != nil {
//	            return err
//	        }
//	    }
//	    return ctx.Err()
//	})
//	sampled := stream.Sample(s, 250*time.Millisecond)
//	sub := sampled.Subscribe(stream.Observer[int]{
//	    Next:     func(v int) error { fmt.Println(v); return nil },
//	    Complete: func() { fmt.Println("done") },
//	})
//	defer sub.Unsubscribe()
package stream
