package stream

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// recorder collects everything one subscription delivers.
type recorder[T any] struct {
	mu        sync.Mutex
	values    []T
	errs      []error
	completes int
	nextErr   error // returned from Next when set
}

func (r *recorder[T]) observer() Observer[T] {
	return Observer[T]{
		Next: func(v T) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.values = append(r.values, v)
			return r.nextErr
		},
		Error: func(err error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.errs = append(r.errs, err)
		},
		Complete: func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.completes++
		},
	}
}

func (r *recorder[T]) snapshot() (values []T, errs []error, completes int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.values...), append([]error(nil), r.errs...), r.completes
}

func countingProducer(n int) func(*Reporter[int]) error {
	return func(r *Reporter[int]) error {
		for i := 0; i < n; i++ {
			if err := r.Report(i); err != nil {
				return err
			}
		}
		return nil
	}
}

func TestFromProducer_ValuesThenComplete(t *testing.T) {
	s := FromProducer(countingProducer(10))
	rec := &recorder[int]{}

	sub := s.Subscribe(rec.observer())

	values, errs, completes := rec.snapshot()
	if len(values) != 10 {
		t.Fatalf("expected 10 values, got %d", len(values))
	}
	for i, v := range values {
		if v != i {
			t.Errorf("value %d: expected %d, got %d", i, i, v)
		}
	}
	if completes != 1 {
		t.Errorf("expected 1 complete, got %d", completes)
	}
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
	if sub.State() != StateCompleted {
		t.Errorf("expected completed state, got %s", sub.State())
	}
	if sub.Err() != nil {
		t.Errorf("expected nil Err, got %v", sub.Err())
	}
}

func TestFromProducer_ColdResubscribe(t *testing.T) {
	runs := 0
	s := FromProducer(func(r *Reporter[int]) error {
		runs++
		return r.Report(runs)
	})

	first := &recorder[int]{}
	second := &recorder[int]{}
	s.Subscribe(first.observer())
	s.Subscribe(second.observer())

	if runs != 2 {
		t.Fatalf("expected producer to run twice, ran %d times", runs)
	}
	v1, _, _ := first.snapshot()
	v2, _, _ := second.snapshot()
	if len(v1) != 1 || v1[0] != 1 {
		t.Errorf("first subscription: expected [1], got %v", v1)
	}
	if len(v2) != 1 || v2[0] != 2 {
		t.Errorf("second subscription: expected [2], got %v", v2)
	}
}

func TestFromProducer_FailureAfterPrefix(t *testing.T) {
	wantErr := errors.New("producer blew up")
	s := FromProducer(func(r *Reporter[int]) error {
		for i := 0; i < 3; i++ {
			if err := r.Report(i); err != nil {
				return err
			}
		}
		return wantErr
	})
	rec := &recorder[int]{}

	sub := s.Subscribe(rec.observer())

	values, errs, completes := rec.snapshot()
	if len(values) != 3 {
		t.Errorf("expected 3 values before failure, got %d", len(values))
	}
	if len(errs) != 1 || !errors.Is(errs[0], wantErr) {
		t.Errorf("expected exactly the producer error, got %v", errs)
	}
	if completes != 0 {
		t.Errorf("expected no completion after failure, got %d", completes)
	}
	if sub.State() != StateFailed {
		t.Errorf("expected failed state, got %s", sub.State())
	}
	if !errors.Is(sub.Err(), wantErr) {
		t.Errorf("expected Err to be producer error, got %v", sub.Err())
	}
}

func TestFromProducer_DownstreamErrorReachesProducer(t *testing.T) {
	downErr := errors.New("consumer shut down")
	var seen error
	s := FromProducer(func(r *Reporter[int]) error {
		seen = r.Report(1)
		return seen
	})
	rec := &recorder[int]{nextErr: downErr}

	sub := s.Subscribe(rec.observer())

	if !errors.Is(seen, downErr) {
		t.Fatalf("expected Report to surface the downstream error, got %v", seen)
	}
	if sub.State() != StateFailed {
		t.Errorf("expected failed state, got %s", sub.State())
	}
	_, errs, _ := rec.snapshot()
	if len(errs) != 1 || !errors.Is(errs[0], downErr) {
		t.Errorf("expected the downstream error as terminal, got %v", errs)
	}
}

func TestFromProducer_NoCancellation(t *testing.T) {
	s := FromProducer(countingProducer(1))
	sub := s.Subscribe(Observer[int]{})
	if sub.CanCancel() {
		t.Error("synchronous bridge must report CanCancel()==false")
	}
}

func TestReporter_InertAfterTermination(t *testing.T) {
	var rep *Reporter[int]
	s := FromProducer(func(r *Reporter[int]) error {
		rep = r
		return nil
	})
	rec := &recorder[int]{}
	s.Subscribe(rec.observer())

	// Subscription completed; a straggling producer reference must be inert.
	if err := rep.Report(99); err != nil {
		t.Fatalf("expected inert no-op, got error %v", err)
	}
	values, _, completes := rec.snapshot()
	if len(values) != 0 {
		t.Errorf("expected no values forwarded after completion, got %v", values)
	}
	if completes != 1 {
		t.Errorf("expected exactly 1 complete, got %d", completes)
	}
}

func TestFromAsyncProducer_OrderAndTerminal(t *testing.T) {
	s := FromAsyncProducer(countingProducer(100))
	rec := &recorder[int]{}

	sub := s.Subscribe(rec.observer())
	if err := sub.Wait(); err != nil {
		t.Fatalf("unexpected terminal error: %v", err)
	}

	values, errs, completes := rec.snapshot()
	if len(values) != 100 {
		t.Fatalf("expected 100 values, got %d", len(values))
	}
	for i, v := range values {
		if v != i {
			t.Fatalf("value %d out of order: got %d", i, v)
		}
	}
	if completes != 1 || len(errs) != 0 {
		t.Errorf("expected 1 complete and 0 errors, got %d/%d", completes, len(errs))
	}
}

func TestFromAsyncProducer_FailureDeliveredOnce(t *testing.T) {
	wantErr := errors.New("rejected")
	s := FromAsyncProducer(func(r *Reporter[int]) error {
		for i := 0; i < 3; i++ {
			if err := r.Report(i); err != nil {
				return err
			}
		}
		return wantErr
	})
	rec := &recorder[int]{}

	sub := s.Subscribe(rec.observer())
	if err := sub.Wait(); !errors.Is(err, wantErr) {
		t.Fatalf("expected producer error, got %v", err)
	}

	values, errs, completes := rec.snapshot()
	if len(values) != 3 {
		t.Errorf("expected 3 values, got %d", len(values))
	}
	if len(errs) != 1 || completes != 0 {
		t.Errorf("expected exactly one failure and no completion, got %d/%d", len(errs), completes)
	}
}

func TestUnsubscribe_SilencesForwarding(t *testing.T) {
	reported := make(chan struct{})
	gate := make(chan struct{})
	finished := make(chan struct{})

	s := FromAsyncProducer(func(r *Reporter[int]) error {
		defer close(finished)
		for i := 0; i < 3; i++ {
			_ = r.Report(i)
		}
		close(reported)
		<-gate
		// The subscription is disposed by now; these must go nowhere.
		for i := 100; i < 110; i++ {
			_ = r.Report(i)
		}
		return nil
	})
	rec := &recorder[int]{}

	sub := s.Subscribe(rec.observer())
	<-reported
	sub.Unsubscribe()
	close(gate)
	<-finished

	values, errs, completes := rec.snapshot()
	if len(values) != 3 {
		t.Errorf("expected 3 values before unsubscribe, got %v", values)
	}
	if len(errs) != 0 || completes != 0 {
		t.Errorf("cancelled terminal must be silent, got %d errors %d completes", len(errs), completes)
	}
	if sub.State() != StateCancelled {
		t.Errorf("expected cancelled state, got %s", sub.State())
	}
	if !errors.Is(sub.Err(), context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", sub.Err())
	}
}

func TestUnsubscribe_Idempotent(t *testing.T) {
	s := FromContextProducer(func(ctx context.Context, r *Reporter[int]) error {
		<-ctx.Done()
		return ctx.Err()
	})
	sub := s.Subscribe(Observer[int]{})
	sub.Unsubscribe()
	sub.Unsubscribe()
	sub.Unsubscribe()
	if sub.State() != StateCancelled {
		t.Errorf("expected cancelled state, got %s", sub.State())
	}
}

func TestFromContextProducer_CooperativeCancel(t *testing.T) {
	started := make(chan struct{})
	s := FromContextProducer(func(ctx context.Context, r *Reporter[int]) error {
		close(started)
		for i := 0; ; i++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if err := r.Report(i); err != nil {
				return err
			}
		}
	})
	rec := &recorder[int]{}

	sub := s.Subscribe(rec.observer())
	if !sub.CanCancel() {
		t.Fatal("context bridge must report CanCancel()==true")
	}
	<-started
	sub.Unsubscribe()

	select {
	case <-sub.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("cooperative producer did not stop after Unsubscribe")
	}

	if sub.State() != StateCancelled {
		t.Errorf("expected cancelled state, got %s", sub.State())
	}
	_, errs, completes := rec.snapshot()
	if len(errs) != 0 || completes != 0 {
		t.Errorf("cancellation must not surface as error or completion, got %d/%d", len(errs), completes)
	}
}

func TestFromContextProducer_OwnContextErrorIsFailure(t *testing.T) {
	s := FromContextProducer(func(ctx context.Context, r *Reporter[int]) error {
		inner, cancel := context.WithTimeout(ctx, time.Millisecond)
		defer cancel()
		<-inner.Done()
		return inner.Err()
	})
	sub := s.Subscribe(Observer[int]{})
	if err := sub.Wait(); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if sub.State() != StateFailed {
		t.Errorf("a producer failing on its own terms must end failed, got %s", sub.State())
	}
}

func TestFromSlice(t *testing.T) {
	s := FromSlice([]string{"a", "b", "c"})
	rec := &recorder[string]{}
	s.Subscribe(rec.observer())

	values, _, completes := rec.snapshot()
	if len(values) != 3 || values[0] != "a" || values[2] != "c" {
		t.Errorf("expected [a b c], got %v", values)
	}
	if completes != 1 {
		t.Errorf("expected 1 complete, got %d", completes)
	}
}

func TestSubscriptions_Independent(t *testing.T) {
	s := FromAsyncProducer(countingProducer(50))
	a := &recorder[int]{}
	b := &recorder[int]{}

	subA := s.Subscribe(a.observer())
	subB := s.Subscribe(b.observer())
	_ = subA.Wait()
	_ = subB.Wait()

	va, _, ca := a.snapshot()
	vb, _, cb := b.snapshot()
	if len(va) != 50 || len(vb) != 50 {
		t.Fatalf("expected 50 values on each subscription, got %d and %d", len(va), len(vb))
	}
	if ca != 1 || cb != 1 {
		t.Errorf("expected one completion each, got %d and %d", ca, cb)
	}
}

func TestConcurrentReport_Serialized(t *testing.T) {
	const goroutines = 8
	const perGoroutine = 100

	s := FromAsyncProducer(func(r *Reporter[int]) error {
		var wg sync.WaitGroup
		for g := 0; g < goroutines; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < perGoroutine; i++ {
					_ = r.Report(i)
				}
			}()
		}
		wg.Wait()
		return nil
	})

	inNext := false
	var values int
	sub := s.Subscribe(Observer[int]{
		Next: func(int) error {
			if inNext {
				t.Error("Next invoked concurrently")
			}
			inNext = true
			values++
			inNext = false
			return nil
		},
	})
	if err := sub.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if values != goroutines*perGoroutine {
		t.Errorf("expected %d values, got %d", goroutines*perGoroutine, values)
	}
}
