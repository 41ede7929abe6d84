// Package di wires the service together with google/wire.
// wire.go holds the injector declaration; wire_gen.go is its generated form.
package di

import (
	"context"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"elevate-backend/internal/api"
	"elevate-backend/internal/config"
	"elevate-backend/internal/content"
	"elevate-backend/internal/media"
	"elevate-backend/internal/observability"
	"elevate-backend/internal/repository"
)

// Container holds all application dependencies with lifecycle management.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	// Metrics is nil when metrics are disabled.
	Metrics *observability.Collector
	// Remote is nil when no remote store is configured.
	Remote repository.RemoteStore
	Store  *content.Store
	Media  *media.Service

	AdminSecret *api.AdminSecret
	Router      http.Handler

	cleanup     func()
	cleanupOnce sync.Once
}

// GetRouter returns the HTTP handler.
func (c *Container) GetRouter() http.Handler {
	return c.Router
}

// Bootstrap loads every content kind from the remote store.
func (c *Container) Bootstrap(ctx context.Context) error {
	return c.Store.Bootstrap(ctx)
}

// Shutdown drains queued mutations and releases driver resources. The
// resources are released even when draining runs out of time.
func (c *Container) Shutdown(ctx context.Context) error {
	err := c.Store.Close(ctx)
	if err != nil {
		c.Logger.Warn("Content store closed with pending mutations",
			zap.Error(err))
	}
	c.cleanupOnce.Do(func() {
		if c.cleanup != nil {
			c.cleanup()
		}
	})
	return err
}
