package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	appErrors "elevate-backend/internal/errors"
)

// CircuitBreakerConfig holds configuration for the remote store breaker.
type CircuitBreakerConfig struct {
	Name        string
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	// FailureThreshold is the failure ratio that trips the breaker once
	// MinRequests calls have been observed in the current interval.
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultCircuitBreakerConfig returns the breaker settings used in production.
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// CircuitBreakerStore fails remote calls fast while the remote store keeps
// erroring. A rejected call surfaces as a CIRCUIT_OPEN error, which the
// Content Store treats like any other mutation failure.
type CircuitBreakerStore struct {
	next   RemoteStore
	cb     *gobreaker.CircuitBreaker
	logger *zap.Logger
}

// NewCircuitBreakerStore wraps next with a gobreaker circuit breaker.
func NewCircuitBreakerStore(next RemoteStore, config CircuitBreakerConfig, logger *zap.Logger) *CircuitBreakerStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &CircuitBreakerStore{next: next, logger: logger}
	s.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < config.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= config.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("remote store circuit breaker changed state",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		// Caller mistakes must not count against the remote store.
		IsSuccessful: func(err error) bool {
			return err == nil || appErrors.IsValidation(err) || appErrors.IsNotFound(err)
		},
	})
	return s
}

// State exposes the breaker state for readiness reporting.
func (s *CircuitBreakerStore) State() gobreaker.State {
	return s.cb.State()
}

func (s *CircuitBreakerStore) execute(operation, table string, fn func() error) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return appErrors.CircuitOpen(appErrors.CodeBreakerOpen, "remote store temporarily unavailable").
			WithOperation(operation).
			WithResource(table).
			WithCause(err).
			Build()
	}
	return err
}

func (s *CircuitBreakerStore) Select(ctx context.Context, table string, opts SelectOptions) ([]Row, error) {
	var rows []Row
	err := s.execute("select", table, func() error {
		var err error
		rows, err = s.next.Select(ctx, table, opts)
		return err
	})
	return rows, err
}

func (s *CircuitBreakerStore) Insert(ctx context.Context, table string, rows ...Row) error {
	return s.execute("insert", table, func() error {
		return s.next.Insert(ctx, table, rows...)
	})
}

func (s *CircuitBreakerStore) Update(ctx context.Context, table, id string, patch Row) error {
	return s.execute("update", table, func() error {
		return s.next.Update(ctx, table, id, patch)
	})
}

func (s *CircuitBreakerStore) Delete(ctx context.Context, table, id string) error {
	return s.execute("delete", table, func() error {
		return s.next.Delete(ctx, table, id)
	})
}

func (s *CircuitBreakerStore) DeleteWhere(ctx context.Context, table, column, value string) error {
	return s.execute("delete_where", table, func() error {
		return s.next.DeleteWhere(ctx, table, column, value)
	})
}
