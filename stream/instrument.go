package stream

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/rxkit/errors"
	"github.com/kbukum/rxkit/logger"
	"github.com/kbukum/rxkit/observability"
)

// Telemetry carries the sinks Instrument records into. A nil Logger falls
// back to the "stream" component logger and nil Metrics to instruments on
// the global meter provider.
type Telemetry struct {
	Logger  *logger.Logger
	Metrics *observability.StreamMetrics
}

// Instrument applies the instrumentation enabled in cfg to a stream named
// "<cfg.Name>.<name>".
func Instrument[T any](cfg Config, name string, tel Telemetry) Operator[T, T] {
	if cfg.Name != "" {
		name = cfg.Name + "." + name
	}
	var ops []Operator[T, T]
	if cfg.Tracing {
		ops = append(ops, WithTracing[T](name))
	}
	if cfg.Metrics {
		m := tel.Metrics
		if m == nil {
			var err error
			if m, err = observability.NewStreamMetrics(observability.Meter(observability.TracerName)); err != nil {
				logger.Get("stream").WithError(err).Warn("stream metrics disabled", logger.Fields(logger.FieldStream, name))
			}
		}
		if m != nil {
			ops = append(ops, WithMetrics[T](m, name))
		}
	}
	if cfg.LogSignals {
		log := tel.Logger
		if log == nil {
			log = logger.Get("stream")
		}
		ops = append(ops, WithLogging[T](log, name))
	}
	return func(source *Producer[T]) *Producer[T] {
		return Pipe(source, ops...)
	}
}

// WithLogging logs the lifecycle of every subscription at debug level,
// tagged with the stream name and a per-subscription ID. Values are logged
// only at trace level.
func WithLogging[T any](log *logger.Logger, name string) Operator[T, T] {
	return func(source *Producer[T]) *Producer[T] {
		return instrumented(source, func(context.Context) probe[T] {
			l := log.WithFields(logger.Fields(
				logger.FieldStream, name,
				logger.FieldSubscriptionID, uuid.NewString(),
			))
			l.Debug("stream subscribed")
			return &logProbe[T]{log: l, verbose: l.Enabled(zerolog.TraceLevel)}
		})
	}
}

// WithMetrics records signal counts, errors and subscription lifetimes.
func WithMetrics[T any](m *observability.StreamMetrics, name string) Operator[T, T] {
	return func(source *Producer[T]) *Producer[T] {
		return instrumented(source, func(ctx context.Context) probe[T] {
			ctx = context.WithoutCancel(ctx)
			m.SubscriptionStarted(ctx, name)
			return &metricsProbe[T]{ctx: ctx, metrics: m, name: name}
		})
	}
}

// WithTracing opens one span per subscription as a child of the span in the
// subscription's context. The span ends when the subscription is released
// and records the outcome, the number of values emitted and any error.
func WithTracing[T any](name string) Operator[T, T] {
	return func(source *Producer[T]) *Producer[T] {
		return instrumented(source, func(ctx context.Context) probe[T] {
			_, span := observability.StartSpan(ctx, name, trace.WithAttributes(
				attribute.String(observability.AttrStream, name),
				attribute.String(observability.AttrSubscriptionID, uuid.NewString()),
			))
			return &traceProbe[T]{span: span}
		})
	}
}

// probe observes one instrumented subscription.
type probe[T any] interface {
	next(v T)
	failed(err error)
	completed()
	released(status string, emitted int64, elapsed time.Duration)
}

func instrumented[T any](source *Producer[T], start func(ctx context.Context) probe[T]) *Producer[T] {
	return Create(func(down Subscriber[T]) {
		o := &probeObserver[T]{down: down, probe: start(down.Context())}
		began := time.Now()
		down.Add(func() {
			status, _ := o.outcome.Load().(string)
			if status == "" {
				status = observability.StatusCancelled
			}
			o.probe.released(status, o.emitted.Load(), time.Since(began))
		})
		source.subscribe(o, down)
	})
}

type probeObserver[T any] struct {
	down    Subscriber[T]
	probe   probe[T]
	emitted atomic.Int64
	outcome atomic.Value
}

func (o *probeObserver[T]) OnNext(v T) {
	o.emitted.Add(1)
	o.probe.next(v)
	o.down.Next(v)
}

func (o *probeObserver[T]) OnError(err error) {
	o.outcome.Store(observability.StatusError)
	o.probe.failed(err)
	o.down.Error(err)
}

func (o *probeObserver[T]) OnComplete() {
	o.outcome.Store(observability.StatusCompleted)
	o.probe.completed()
	o.down.Complete()
}

type logProbe[T any] struct {
	log     *logger.Logger
	verbose bool
}

func (p *logProbe[T]) next(v T) {
	if p.verbose {
		p.log.Trace("stream next", logger.Fields(logger.FieldValue, fmt.Sprint(v)))
	}
}

func (p *logProbe[T]) failed(err error) {
	p.log.WithError(err).Debug("stream failed", logger.Fields(logger.FieldKind, KindError.String()))
}

func (p *logProbe[T]) completed() {
	p.log.Debug("stream completed", logger.Fields(logger.FieldKind, KindComplete.String()))
}

func (p *logProbe[T]) released(status string, emitted int64, elapsed time.Duration) {
	p.log.Debug("stream released", logger.Fields(
		"status", status,
		logger.FieldCount, emitted,
		logger.FieldDuration, elapsed.Milliseconds(),
	))
}

type metricsProbe[T any] struct {
	ctx     context.Context
	metrics *observability.StreamMetrics
	name    string
}

func (p *metricsProbe[T]) next(T) {
	p.metrics.RecordSignal(p.ctx, p.name, KindNext.String())
}

func (p *metricsProbe[T]) failed(err error) {
	p.metrics.RecordSignal(p.ctx, p.name, KindError.String())
	p.metrics.RecordError(p.ctx, p.name, errorCode(err))
}

func (p *metricsProbe[T]) completed() {
	p.metrics.RecordSignal(p.ctx, p.name, KindComplete.String())
}

func (p *metricsProbe[T]) released(status string, _ int64, elapsed time.Duration) {
	p.metrics.SubscriptionEnded(p.ctx, p.name, status, elapsed)
}

type traceProbe[T any] struct {
	span trace.Span
}

func (p *traceProbe[T]) next(T) {}

func (p *traceProbe[T]) failed(err error) {
	p.span.RecordError(err)
	p.span.SetStatus(codes.Error, err.Error())
	p.span.SetAttributes(attribute.String(observability.AttrErrorCode, errorCode(err)))
}

func (p *traceProbe[T]) completed() {
	p.span.SetStatus(codes.Ok, "")
}

func (p *traceProbe[T]) released(status string, emitted int64, _ time.Duration) {
	p.span.SetAttributes(
		attribute.String(observability.AttrStatus, status),
		attribute.Int64(observability.AttrEmitted, emitted),
	)
	p.span.End()
}

func errorCode(err error) string {
	if appErr, ok := errors.AsAppError(err); ok {
		return string(appErr.Code)
	}
	return string(errors.ErrCodeInternal)
}
