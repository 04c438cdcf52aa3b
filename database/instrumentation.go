package database

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const instrumentationName = "github.com/krishkalaria12/blogly/database"

const (
	startKey = "blogly:start"
	spanKey  = "blogly:span"
)

// Metrics holds the OpenTelemetry instruments fed by every statement.
type Metrics struct {
	QueryCount    metric.Int64Counter
	QueryDuration metric.Float64Histogram
	QueryErrors   metric.Int64Counter
}

// Instrumentation is a gorm.Plugin that traces, measures and logs statements.
type Instrumentation struct {
	logger        *slog.Logger
	tracer        trace.Tracer
	meter         metric.Meter
	metrics       *Metrics
	slowThreshold time.Duration
}

type Option func(*Instrumentation)

func WithLogger(logger *slog.Logger) Option {
	return func(i *Instrumentation) {
		i.logger = logger
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(i *Instrumentation) {
		i.tracer = tracer
	}
}

func WithMeter(meter metric.Meter) Option {
	return func(i *Instrumentation) {
		i.meter = meter
	}
}

func WithSlowThreshold(d time.Duration) Option {
	return func(i *Instrumentation) {
		if d > 0 {
			i.slowThreshold = d
		}
	}
}

// NewInstrumentation uses the global tracer and meter providers unless
// overridden by options.
func NewInstrumentation(opts ...Option) *Instrumentation {
	i := &Instrumentation{
		tracer:        otel.Tracer(instrumentationName),
		meter:         otel.Meter(instrumentationName),
		slowThreshold: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(i)
	}
	i.metrics = initMetrics(i.meter)
	return i
}

func initMetrics(meter metric.Meter) *Metrics {
	queryCount, _ := meter.Int64Counter("blogly.db.query.count",
		metric.WithDescription("Total number of SQL statements executed"),
		metric.WithUnit("{query}"),
	)

	queryDuration, _ := meter.Float64Histogram("blogly.db.query.duration",
		metric.WithDescription("Statement execution duration in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000),
	)

	queryErrors, _ := meter.Int64Counter("blogly.db.query.errors",
		metric.WithDescription("Total number of failed SQL statements"),
		metric.WithUnit("{error}"),
	)

	return &Metrics{
		QueryCount:    queryCount,
		QueryDuration: queryDuration,
		QueryErrors:   queryErrors,
	}
}

func (i *Instrumentation) Name() string { return "blogly:instrumentation" }

func (i *Instrumentation) Initialize(db *gorm.DB) error {
	cb := db.Callback()

	hooks := []struct {
		op     string
		before func(string, func(*gorm.DB)) error
		after  func(string, func(*gorm.DB)) error
	}{
		{"create", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"query", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}

	for _, h := range hooks {
		if err := h.before("blogly:before_"+h.op, i.before(h.op)); err != nil {
			return err
		}
		if err := h.after("blogly:after_"+h.op, i.after(h.op)); err != nil {
			return err
		}
	}

	return nil
}

func (i *Instrumentation) before(op string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}

		ctx, span := i.tracer.Start(ctx, "db."+op, trace.WithSpanKind(trace.SpanKindClient))
		db.Statement.Context = ctx
		db.InstanceSet(spanKey, span)
		db.InstanceSet(startKey, time.Now())
	}
}

func (i *Instrumentation) after(op string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}

		var duration time.Duration
		if v, ok := db.InstanceGet(startKey); ok {
			if start, ok := v.(time.Time); ok {
				duration = time.Since(start)
			}
		}

		// a miss is an answer, not a failure
		err := db.Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = nil
		}

		attrs := []attribute.KeyValue{
			attribute.String("db.operation", op),
			attribute.String("db.system", db.Dialector.Name()),
			attribute.String("db.sql.table", db.Statement.Table),
		}

		if v, ok := db.InstanceGet(spanKey); ok {
			if span, ok := v.(trace.Span); ok {
				span.SetAttributes(attrs...)
				span.SetAttributes(attribute.Int64("db.rows_affected", db.RowsAffected))
				if err != nil {
					span.RecordError(err)
					span.SetStatus(codes.Error, err.Error())
				}
				span.End()
			}
		}

		i.recordMetrics(ctx, attrs, duration, err)
		i.logStatement(ctx, db, op, duration, err)
	}
}

func (i *Instrumentation) recordMetrics(ctx context.Context, attrs []attribute.KeyValue, duration time.Duration, err error) {
	if i.metrics == nil {
		return
	}

	set := metric.WithAttributes(attrs...)
	i.metrics.QueryCount.Add(ctx, 1, set)
	i.metrics.QueryDuration.Record(ctx, float64(duration)/float64(time.Millisecond), set)
	if err != nil {
		i.metrics.QueryErrors.Add(ctx, 1, set)
	}
}

func (i *Instrumentation) logStatement(ctx context.Context, db *gorm.DB, op string, duration time.Duration, err error) {
	if i.logger == nil {
		return
	}

	attrs := []slog.Attr{
		slog.String("operation", op),
		slog.String("table", db.Statement.Table),
		slog.Duration("duration", duration),
	}

	if err != nil {
		i.logger.LogAttrs(ctx, slog.LevelError, "query failed", append(attrs, slog.String("error", err.Error()))...)
		return
	}

	if duration > i.slowThreshold {
		i.logger.LogAttrs(ctx, slog.LevelWarn, "slow query", append(attrs, slog.String("sql", db.Statement.SQL.String()))...)
	}
}
