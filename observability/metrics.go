package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// StreamMetrics holds the instruments recorded for instrumented streams.
type StreamMetrics struct {
	signals       metric.Int64Counter
	subscriptions metric.Int64Counter
	active        metric.Int64UpDownCounter
	errors        metric.Int64Counter
	duration      metric.Float64Histogram
}

// NewStreamMetrics creates the stream instruments on meter.
func NewStreamMetrics(meter metric.Meter) (*StreamMetrics, error) {
	signals, err := meter.Int64Counter("stream.signals",
		metric.WithDescription("Signals delivered, by stream and kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.signals counter: %w", err)
	}

	subscriptions, err := meter.Int64Counter("stream.subscriptions",
		metric.WithDescription("Subscriptions started, by stream"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.subscriptions counter: %w", err)
	}

	active, err := meter.Int64UpDownCounter("stream.subscriptions.active",
		metric.WithDescription("Subscriptions not yet released"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.subscriptions.active gauge: %w", err)
	}

	errs, err := meter.Int64Counter("stream.errors",
		metric.WithDescription("Streams terminated by an error, by code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.errors counter: %w", err)
	}

	duration, err := meter.Float64Histogram("stream.subscription.duration",
		metric.WithDescription("Lifetime of subscriptions in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.subscription.duration histogram: %w", err)
	}

	return &StreamMetrics{
		signals:       signals,
		subscriptions: subscriptions,
		active:        active,
		errors:        errs,
		duration:      duration,
	}, nil
}

// SubscriptionStarted counts a new subscription and marks it active.
func (m *StreamMetrics) SubscriptionStarted(ctx context.Context, stream string) {
	attrs := metric.WithAttributes(attribute.String(AttrStream, stream))
	m.subscriptions.Add(ctx, 1, attrs)
	m.active.Add(ctx, 1, attrs)
}

// RecordSignal counts one delivered signal of the given kind.
func (m *StreamMetrics) RecordSignal(ctx context.Context, stream, kind string) {
	m.signals.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrStream, stream),
		attribute.String(AttrKind, kind),
	))
}

// RecordError counts a stream terminated by an error with the given code.
func (m *StreamMetrics) RecordError(ctx context.Context, stream, code string) {
	m.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrStream, stream),
		attribute.String(AttrErrorCode, code),
	))
}

// SubscriptionEnded releases the active slot and records the lifetime.
func (m *StreamMetrics) SubscriptionEnded(ctx context.Context, stream, status string, d time.Duration) {
	m.active.Add(ctx, -1, metric.WithAttributes(attribute.String(AttrStream, stream)))
	m.duration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String(AttrStream, stream),
		attribute.String(AttrStatus, status),
	))
}
