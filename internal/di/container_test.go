package di

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"elevate-backend/internal/config"
	"elevate-backend/internal/domain"
	"elevate-backend/internal/middleware"
	"elevate-backend/internal/repository"
)

func newTestContainer(t *testing.T, mutate func(*config.Config)) *Container {
	t.Helper()
	cfg := config.Default()
	cfg.Metrics.Namespace = "di_test"
	if mutate != nil {
		mutate(cfg)
	}
	require.NoError(t, cfg.Validate())

	container, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = container.Shutdown(ctx)
	})
	return container
}

func serve(container *Container, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	container.GetRouter().ServeHTTP(rr, req)
	return rr
}

func TestInitializeContainerIntegration(t *testing.T) {
	container := newTestContainer(t, func(cfg *config.Config) {
		cfg.Remote.Driver = config.DriverSQLite
		cfg.Remote.DatabaseURL = filepath.Join(t.TempDir(), "content.db")
		cfg.Media.Driver = config.DriverMemory
		cfg.Admin.Password = "let-me-in"
	})
	require.NotNil(t, container.Remote)
	require.NotNil(t, container.Metrics)

	t.Run("health", func(t *testing.T) {
		rr := serve(container, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status":"healthy"}`, rr.Body.String())
	})

	t.Run("ready after bootstrap", func(t *testing.T) {
		rr := serve(container, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

		require.NoError(t, container.Bootstrap(context.Background()))

		rr = serve(container, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"mediaDriver":"memory"`)
		assert.Contains(t, rr.Body.String(), `"remoteAvailable":true`)
	})

	t.Run("empty tables fall back to seed content", func(t *testing.T) {
		rr := serve(container, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		var products []domain.Product
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &products))
		assert.Len(t, products, 3)
	})

	t.Run("admin create reaches the database", func(t *testing.T) {
		raw, err := json.Marshal(map[string]any{
			"id":          "wired",
			"title":       "Wired product",
			"description": "Persisted through the container",
			"price":       "Consultar",
			"features":    []string{"One", "Two"},
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/products", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.AdminPasswordHeader, "let-me-in")
		rr := serve(container, req)
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		rows, err := container.Remote.Select(context.Background(), repository.TableProducts, repository.SelectOptions{})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "wired", rows[0].String(repository.ColumnID))

		features, err := container.Remote.Select(context.Background(), repository.TableProductFeatures, repository.SelectOptions{
			Filters: repository.Where(repository.ColumnProductID, "wired"),
		})
		require.NoError(t, err)
		assert.Len(t, features, 2)
	})

	t.Run("metrics exposed", func(t *testing.T) {
		rr := serve(container, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "di_test_")
	})
}

func TestInitializeContainerWithoutRemote(t *testing.T) {
	container := newTestContainer(t, func(cfg *config.Config) {
		cfg.Remote.Driver = config.DriverNone
		cfg.Media.Driver = config.DriverNone
		cfg.Metrics.Enabled = false
	})

	assert.Nil(t, container.Remote)
	assert.Nil(t, container.Metrics)
	assert.False(t, container.Store.RemoteAvailable())
	assert.False(t, container.Media.Available())

	require.NoError(t, container.Bootstrap(context.Background()))
	assert.True(t, container.Store.Ready())

	t.Run("admin disabled without password", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/products/1", nil)
		req.Header.Set(middleware.AdminPasswordHeader, "anything")
		rr := serve(container, req)
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})

	t.Run("no metrics route", func(t *testing.T) {
		rr := serve(container, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestShutdownIsIdempotent(t *testing.T) {
	container := newTestContainer(t, func(cfg *config.Config) {
		cfg.Remote.Driver = config.DriverSQLite
		cfg.Remote.DatabaseURL = filepath.Join(t.TempDir(), "content.db")
	})

	ctx := context.Background()
	require.NoError(t, container.Shutdown(ctx))
	require.NoError(t, container.Shutdown(ctx))
}

func TestInitializeContainerBadDatabase(t *testing.T) {
	cfg := config.Default()
	cfg.Remote.Driver = config.DriverSQLite
	cfg.Remote.DatabaseURL = filepath.Join(t.TempDir(), "missing", "dir", "content.db")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := New(ctx, cfg, zap.NewNop())
	assert.Error(t, err)
}
