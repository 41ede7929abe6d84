package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	appErrors "elevate-backend/internal/errors"
	"elevate-backend/internal/repository"
	"elevate-backend/internal/repository/mocks"
)

// stuckStore ignores ctx and returns only once release is closed.
type stuckStore struct {
	repository.RemoteStore
	release chan struct{}
}

func (s stuckStore) Select(context.Context, string, repository.SelectOptions) ([]repository.Row, error) {
	<-s.release
	return []repository.Row{{"id": "late"}}, nil
}

func (s stuckStore) Insert(context.Context, string, ...repository.Row) error {
	<-s.release
	return nil
}

type observation struct {
	operation string
	table     string
	err       error
}

type fakeOperationRecorder struct {
	mu  sync.Mutex
	obs []observation
}

func (f *fakeOperationRecorder) RecordRemoteOperation(operation, table string, err error, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.obs = append(f.obs, observation{operation, table, err})
}

func (f *fakeOperationRecorder) observations() []observation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]observation(nil), f.obs...)
}

func TestInstrumentedStore(t *testing.T) {
	ctx := context.Background()

	newStore := func(remote repository.RemoteStore, opts ...repository.InstrumentOption) (*repository.InstrumentedStore, *fakeOperationRecorder, *tracetest.SpanRecorder) {
		recorder := &fakeOperationRecorder{}
		spans := tracetest.NewSpanRecorder()
		tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
		opts = append(opts,
			repository.WithRecorder(recorder),
			repository.WithTracer(tp.Tracer("test")),
		)
		return repository.NewInstrumentedStore(remote, opts...), recorder, spans
	}

	t.Run("records every call", func(t *testing.T) {
		remote := mocks.NewRemoteStore()
		store, recorder, spans := newStore(remote)

		require.NoError(t, store.Insert(ctx, repository.TableTestimonials, repository.Row{"id": "1"}))
		_, err := store.Select(ctx, repository.TableTestimonials, repository.LoadOptions())
		require.NoError(t, err)
		require.NoError(t, store.Update(ctx, repository.TableTestimonials, "1", repository.Row{"quote": "q"}))
		require.NoError(t, store.Delete(ctx, repository.TableTestimonials, "1"))

		assert.Equal(t, []observation{
			{"insert", repository.TableTestimonials, nil},
			{"select", repository.TableTestimonials, nil},
			{"update", repository.TableTestimonials, nil},
			{"delete", repository.TableTestimonials, nil},
		}, recorder.observations())

		ended := spans.Ended()
		require.Len(t, ended, 4)
		assert.Equal(t, "remote.insert", ended[0].Name())
		assert.Equal(t, codes.Unset, ended[0].Status().Code)
	})

	t.Run("failed call marks the span", func(t *testing.T) {
		remote := mocks.NewRemoteStore()
		boom := errors.New("boom")
		remote.SetError("DeleteWhere", "", boom)
		store, recorder, spans := newStore(remote)

		err := store.DeleteWhere(ctx, repository.TableProductFeatures, repository.ColumnProductID, "p")
		assert.ErrorIs(t, err, boom)

		obs := recorder.observations()
		require.Len(t, obs, 1)
		assert.Equal(t, "delete_where", obs[0].operation)
		assert.ErrorIs(t, obs[0].err, boom)

		ended := spans.Ended()
		require.Len(t, ended, 1)
		assert.Equal(t, codes.Error, ended[0].Status().Code)
	})

	t.Run("call timeout", func(t *testing.T) {
		remote := mocks.NewRemoteStore()
		remote.Hold()
		t.Cleanup(remote.Release)
		store, recorder, _ := newStore(remote, repository.WithCallTimeout(20*time.Millisecond))

		err := store.Insert(ctx, repository.TablePartners, repository.Row{"id": "1"})
		require.Error(t, err)
		assert.True(t, appErrors.IsType(err, appErrors.ErrorTypeTimeout))
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		var unified *appErrors.UnifiedError
		require.True(t, appErrors.As(err, &unified))
		assert.Equal(t, appErrors.CodeRemoteTimeout, unified.Code)
		assert.Len(t, recorder.observations(), 1)
	})

	t.Run("call timeout interrupts a driver that ignores ctx", func(t *testing.T) {
		release := make(chan struct{})
		t.Cleanup(func() { close(release) })
		store, recorder, spans := newStore(stuckStore{release: release}, repository.WithCallTimeout(20*time.Millisecond))

		start := time.Now()
		err := store.Insert(ctx, repository.TablePartners, repository.Row{"id": "1"})
		assert.True(t, appErrors.IsType(err, appErrors.ErrorTypeTimeout))
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		rows, err := store.Select(ctx, repository.TablePartners, repository.LoadOptions())
		assert.True(t, appErrors.IsType(err, appErrors.ErrorTypeTimeout))
		assert.Nil(t, rows)

		assert.Less(t, time.Since(start), time.Second)
		assert.Len(t, recorder.observations(), 2)
		assert.Len(t, spans.Ended(), 2)
	})

	t.Run("bootstrap deadline interrupts a driver that ignores ctx", func(t *testing.T) {
		release := make(chan struct{})
		t.Cleanup(func() { close(release) })
		store, _, _ := newStore(stuckStore{release: release})

		dctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		_, err := store.Select(dctx, repository.TableIndustries, repository.LoadOptions())
		assert.True(t, appErrors.IsType(err, appErrors.ErrorTypeTimeout))
	})

	t.Run("caller cancellation is not a timeout", func(t *testing.T) {
		remote := mocks.NewRemoteStore()
		remote.Hold()
		t.Cleanup(remote.Release)
		store, _, _ := newStore(remote, repository.WithCallTimeout(time.Minute))

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := store.Delete(cctx, repository.TablePartners, "1")
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, appErrors.IsType(err, appErrors.ErrorTypeTimeout))
	})
}
