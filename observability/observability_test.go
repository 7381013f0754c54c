package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/streamkit/stream"
)

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to be true")
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestNewStreamMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	metrics, err := NewStreamMetrics(meter)
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}
	if metrics == nil {
		t.Fatal("expected non-nil metrics")
	}

	ctx := context.Background()
	metrics.SubscriptionStarted(ctx, "progress")
	metrics.RecordEvent(ctx, "progress")
	metrics.SubscriptionSettled(ctx, "progress", "completed")
	metrics.RecordError(ctx, "producer_failure", "progress")
}

func TestInstrumentPassesValuesThrough(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	metrics, err := NewStreamMetrics(meter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	src := stream.FromSlice([]int{1, 2, 3})
	instrumented := Instrument("numbers", src, metrics)

	var got []int
	completed := false
	sub := instrumented.Subscribe(stream.Observer[int]{
		Next:     func(v int) error { got = append(got, v); return nil },
		Complete: func() { completed = true },
	})

	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("expected [1 2 3], got %v", got)
	}
	if !completed {
		t.Error("expected completion to pass through")
	}
	if sub.State() != stream.StateCompleted {
		t.Errorf("expected completed state, got %s", sub.State())
	}
}

func TestInstrumentFailurePassesThrough(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	metrics, _ := NewStreamMetrics(meter)

	wantErr := errors.New("source failed")
	src := stream.FromAsyncProducer(func(r *stream.Reporter[int]) error {
		return wantErr
	})
	sub := Instrument("failing", src, metrics).Subscribe(stream.Observer[int]{})
	if err := sub.Wait(); !errors.Is(err, wantErr) {
		t.Fatalf("expected producer error, got %v", err)
	}
}

func TestInstrumentNilMetrics(t *testing.T) {
	src := stream.FromSlice([]string{"a"})
	if got := Instrument("noop", src, nil); got != src {
		t.Error("expected nil metrics to return the stream unchanged")
	}
}

func TestTracer(t *testing.T) {
	tr := Tracer("test")
	if tr == nil {
		t.Fatal("expected non-nil tracer")
	}
}

func TestMeter(t *testing.T) {
	m := Meter("test")
	if m == nil {
		t.Fatal("expected non-nil meter")
	}
}

func TestStartSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)
	otel.SetTracerProvider(tp)
	defer tp.Shutdown(context.Background())

	ctx, span := StartSpan(context.Background(), SpanSubscribe)
	if span == nil {
		t.Fatal("expected non-nil span")
	}
	SetSpanAttribute(ctx, AttrStreamName, "progress")
	SetSpanAttribute(ctx, "count", 42)
	SetSpanAttribute(ctx, "ratio", 0.5)
	SetSpanAttribute(ctx, "live", true)
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name != SpanSubscribe {
		t.Errorf("expected span name %q, got %q", SpanSubscribe, spans[0].Name)
	}
}

func TestSetSpanError(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	defer tp.Shutdown(context.Background())

	ctx, span := StartSpan(context.Background(), SpanProcessRun)
	SetSpanError(ctx, errors.New("exit status 1"))
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if len(spans[0].Events) == 0 {
		t.Error("expected error event on span")
	}
}

func TestSetSpanAttributeNoSpan(t *testing.T) {
	// Should not panic with no active span.
	SetSpanAttribute(context.Background(), "key", "value")
	SetSpanError(context.Background(), errors.New("ignored"))
}

func TestInitTracer(t *testing.T) {
	cfg := DefaultTracerConfig("test-service")
	tp, err := InitTracer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("InitTracer failed: %v", err)
	}
	defer tp.Shutdown(context.Background())
	if tp == nil {
		t.Fatal("expected non-nil tracer provider")
	}
}

func TestInitTracerSamplingRates(t *testing.T) {
	for _, rate := range []float64{0.0, 0.5, 1.0} {
		cfg := DefaultTracerConfig("test-service")
		cfg.SampleRate = rate
		tp, err := InitTracer(context.Background(), cfg)
		if err != nil {
			t.Fatalf("InitTracer with rate %f failed: %v", rate, err)
		}
		tp.Shutdown(context.Background())
	}
}

func TestInitMeter(t *testing.T) {
	cfg := DefaultMeterConfig("test-service")
	mp, err := InitMeter(context.Background(), &cfg)
	if err != nil {
		t.Fatalf("InitMeter failed: %v", err)
	}
	defer mp.Shutdown(context.Background())
	if mp == nil {
		t.Fatal("expected non-nil meter provider")
	}
}
