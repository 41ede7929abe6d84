package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "elevate-backend/internal/errors"
	"elevate-backend/internal/repository"
	"elevate-backend/internal/repository/mocks"
)

func testBreakerConfig() repository.CircuitBreakerConfig {
	return repository.CircuitBreakerConfig{
		Name:             "test",
		MaxRequests:      1,
		Timeout:          time.Minute,
		FailureThreshold: 0.5,
		MinRequests:      2,
	}
}

func TestCircuitBreakerStore(t *testing.T) {
	ctx := context.Background()

	t.Run("opens after repeated remote failures", func(t *testing.T) {
		remote := mocks.NewRemoteStore()
		remote.SetError("Insert", repository.TablePartners, errors.New("connection refused"))
		store := repository.NewCircuitBreakerStore(remote, testBreakerConfig(), zap.NewNop())

		for i := 0; i < 2; i++ {
			err := store.Insert(ctx, repository.TablePartners, repository.Row{"id": "1"})
			require.Error(t, err)
			assert.False(t, appErrors.IsCircuitOpen(err))
		}
		assert.Equal(t, gobreaker.StateOpen, store.State())

		err := store.Insert(ctx, repository.TablePartners, repository.Row{"id": "1"})
		require.Error(t, err)
		assert.True(t, appErrors.IsCircuitOpen(err))
		assert.Equal(t, 2, remote.CallCount("Insert", repository.TablePartners))

		var unified *appErrors.UnifiedError
		require.True(t, appErrors.As(err, &unified))
		assert.Equal(t, appErrors.CodeBreakerOpen, unified.Code)
		assert.Equal(t, "insert", unified.Operation)
		assert.Equal(t, repository.TablePartners, unified.Resource)
	})

	t.Run("caller mistakes do not trip", func(t *testing.T) {
		remote := mocks.NewRemoteStore()
		remote.SetError("Update", "", appErrors.Validation(appErrors.CodeInvalidEntity, "bad row").Build())
		store := repository.NewCircuitBreakerStore(remote, testBreakerConfig(), zap.NewNop())

		for i := 0; i < 5; i++ {
			err := store.Update(ctx, repository.TableProducts, "p", repository.Row{"title": "x"})
			assert.True(t, appErrors.IsValidation(err))
		}
		assert.Equal(t, gobreaker.StateClosed, store.State())
	})

	t.Run("passes results through", func(t *testing.T) {
		remote := mocks.NewRemoteStore()
		remote.Put(repository.TableIndustries, repository.Row{"id": "1", "name": "Banca"})
		store := repository.NewCircuitBreakerStore(remote, repository.DefaultCircuitBreakerConfig("remote"), nil)

		rows, err := store.Select(ctx, repository.TableIndustries, repository.SelectOptions{})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Banca", rows[0].String("name"))

		require.NoError(t, store.Delete(ctx, repository.TableIndustries, "1"))
		require.NoError(t, store.DeleteWhere(ctx, repository.TableProductFeatures, repository.ColumnProductID, "p"))
		assert.Empty(t, remote.Rows(repository.TableIndustries))
	})
}
