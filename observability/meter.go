package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/streamkit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// StreamMetrics holds OpenTelemetry instruments for stream observability.
type StreamMetrics struct {
	eventTotal          metric.Int64Counter
	terminalTotal       metric.Int64Counter
	subscriptionsActive metric.Int64UpDownCounter
	errorTotal          metric.Int64Counter
}

// NewStreamMetrics creates stream metric instruments on the given meter.
func NewStreamMetrics(meter metric.Meter) (*StreamMetrics, error) {
	eventTotal, err := meter.Int64Counter("stream.event.total",
		metric.WithDescription("Total values forwarded to subscribers"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.event.total counter: %w", err)
	}

	terminalTotal, err := meter.Int64Counter("stream.terminal.total",
		metric.WithDescription("Terminal signals by final subscription state"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.terminal.total counter: %w", err)
	}

	subscriptionsActive, err := meter.Int64UpDownCounter("stream.subscriptions.active",
		metric.WithDescription("Number of currently active subscriptions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.subscriptions.active gauge: %w", err)
	}

	errorTotal, err := meter.Int64Counter("error.total",
		metric.WithDescription("Total errors by type and component"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating error.total counter: %w", err)
	}

	return &StreamMetrics{
		eventTotal:          eventTotal,
		terminalTotal:       terminalTotal,
		subscriptionsActive: subscriptionsActive,
		errorTotal:          errorTotal,
	}, nil
}

// RecordEvent records one value forwarded on the named stream.
func (m *StreamMetrics) RecordEvent(ctx context.Context, stream string) {
	m.eventTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("stream", stream),
	))
}

// SubscriptionStarted increments the active subscription count.
func (m *StreamMetrics) SubscriptionStarted(ctx context.Context, stream string) {
	m.subscriptionsActive.Add(ctx, 1, metric.WithAttributes(
		attribute.String("stream", stream),
	))
}

// SubscriptionSettled decrements active subscriptions and records the
// terminal state (completed, failed, or cancelled).
func (m *StreamMetrics) SubscriptionSettled(ctx context.Context, stream, state string) {
	attrs := metric.WithAttributes(
		attribute.String("stream", stream),
		attribute.String("state", state),
	)
	m.subscriptionsActive.Add(ctx, -1, metric.WithAttributes(
		attribute.String("stream", stream),
	))
	m.terminalTotal.Add(ctx, 1, attrs)
}

// RecordError records an error by type and component.
func (m *StreamMetrics) RecordError(ctx context.Context, errType, component string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", errType),
		attribute.String("component", component),
	))
}
