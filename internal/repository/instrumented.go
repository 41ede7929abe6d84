package repository

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	appErrors "elevate-backend/internal/errors"
)

const tracerName = "elevate-backend/repository"

// OperationRecorder receives one observation per remote call.
type OperationRecorder interface {
	RecordRemoteOperation(operation, table string, err error, duration time.Duration)
}

// InstrumentedStore records metrics and a trace span for every remote call,
// and optionally bounds each call with a timeout.
type InstrumentedStore struct {
	next     RemoteStore
	recorder OperationRecorder
	tracer   trace.Tracer
	timeout  time.Duration
}

// InstrumentOption configures an InstrumentedStore.
type InstrumentOption func(*InstrumentedStore)

// WithRecorder sends call observations to r.
func WithRecorder(r OperationRecorder) InstrumentOption {
	return func(s *InstrumentedStore) { s.recorder = r }
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) InstrumentOption {
	return func(s *InstrumentedStore) { s.tracer = t }
}

// WithCallTimeout bounds each remote call. Zero disables the bound. A call
// still running when the bound or the caller's ctx ends is abandoned and
// reported as failed.
func WithCallTimeout(d time.Duration) InstrumentOption {
	return func(s *InstrumentedStore) { s.timeout = d }
}

// NewInstrumentedStore wraps next.
func NewInstrumentedStore(next RemoteStore, opts ...InstrumentOption) *InstrumentedStore {
	s := &InstrumentedStore{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InstrumentedStore) observe(ctx context.Context, operation, table string, fn func(context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, "remote."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.operation", operation),
			attribute.String("db.sql.table", table),
		),
	)
	defer span.End()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// Some drivers only check ctx before sending the request, so the call is
	// abandoned when ctx ends instead of waiting for it to return.
	start := time.Now()
	done := make(chan error, 1)
	go func() { done <- fn(ctx) }()
	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}
	if err != nil && ctx.Err() == context.DeadlineExceeded {
		err = appErrors.Timeout(appErrors.CodeRemoteTimeout, "remote call timed out").
			WithOperation(operation).
			WithResource(table).
			WithCause(err).
			Build()
	}
	if s.recorder != nil {
		s.recorder.RecordRemoteOperation(operation, table, err, time.Since(start))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (s *InstrumentedStore) Select(ctx context.Context, table string, opts SelectOptions) ([]Row, error) {
	var rows []Row
	err := s.observe(ctx, "select", table, func(ctx context.Context) error {
		var err error
		rows, err = s.next.Select(ctx, table, opts)
		return err
	})
	if err != nil {
		// rows may still be written by an abandoned call.
		return nil, err
	}
	return rows, nil
}

func (s *InstrumentedStore) Insert(ctx context.Context, table string, rows ...Row) error {
	return s.observe(ctx, "insert", table, func(ctx context.Context) error {
		return s.next.Insert(ctx, table, rows...)
	})
}

func (s *InstrumentedStore) Update(ctx context.Context, table, id string, patch Row) error {
	return s.observe(ctx, "update", table, func(ctx context.Context) error {
		return s.next.Update(ctx, table, id, patch)
	})
}

func (s *InstrumentedStore) Delete(ctx context.Context, table, id string) error {
	return s.observe(ctx, "delete", table, func(ctx context.Context) error {
		return s.next.Delete(ctx, table, id)
	})
}

func (s *InstrumentedStore) DeleteWhere(ctx context.Context, table, column, value string) error {
	return s.observe(ctx, "delete_where", table, func(ctx context.Context) error {
		return s.next.DeleteWhere(ctx, table, column, value)
	})
}
