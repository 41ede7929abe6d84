package main

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"elevate-backend/internal/api"
	"elevate-backend/internal/content"
	"elevate-backend/internal/domain"
	"elevate-backend/internal/middleware"
	"elevate-backend/internal/repository"
	"elevate-backend/internal/repository/mocks"
)

const testPassword = "let-me-in"

func newTestHandler(t *testing.T) (*handler, *mocks.RemoteStore, *content.Store) {
	t.Helper()
	remote := mocks.NewRemoteStore()
	store := content.New(remote, content.WithLogger(zap.NewNop()))
	require.NoError(t, store.Bootstrap(context.Background()))
	t.Cleanup(func() {
		remote.Release()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = store.Close(ctx)
	})

	router := api.NewRouter(store, nil, api.NewAdminSecret(testPassword), nil, zap.NewNop(), api.Options{}).Setup()
	return newHandler(router, store, zap.NewNop(), time.Now()), remote, store
}

func asyncCreatePartner(id, name string) events.APIGatewayV2HTTPRequest {
	return events.APIGatewayV2HTTPRequest{
		RawPath:        "/api/v1/admin/partners",
		RawQueryString: "async=true",
		Headers: map[string]string{
			"Content-Type":                 "application/json",
			middleware.AdminPasswordHeader: testPassword,
		},
		Body: `{"id":"` + id + `","name":"` + name + `"}`,
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			DomainName: "api.example.test",
			RequestID:  "req-" + id,
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method: "POST",
				Path:   "/api/v1/admin/partners",
			},
		},
	}
}

func partnerIDs(rows []repository.Row) []string {
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.String(repository.ColumnID))
	}
	return ids
}

func TestHandlerSettlesQueuedMutations(t *testing.T) {
	t.Run("async write reaches the remote before returning", func(t *testing.T) {
		h, remote, store := newTestHandler(t)
		remote.Hold()
		go func() {
			time.Sleep(50 * time.Millisecond)
			remote.Release()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		resp, err := h.Handle(ctx, asyncCreatePartner("99", "TEST CORP"))
		require.NoError(t, err)
		assert.Equal(t, 202, resp.StatusCode, resp.Body)
		assert.Equal(t, "req-99", resp.Headers["X-Lambda-Request-ID"])

		assert.Equal(t, []string{"99"}, partnerIDs(remote.Rows(repository.TablePartners)))
		assert.Equal(t, 0, store.Pending(domain.KindPartner))
	})

	t.Run("deadline bounds the drain", func(t *testing.T) {
		h, remote, store := newTestHandler(t)
		remote.Hold()

		ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
		defer cancel()
		start := time.Now()
		resp, err := h.Handle(ctx, asyncCreatePartner("77", "STUCK"))
		require.NoError(t, err)
		assert.Equal(t, 202, resp.StatusCode, resp.Body)
		assert.Less(t, time.Since(start), 2*time.Second)

		assert.Empty(t, remote.Rows(repository.TablePartners))
		assert.Equal(t, 1, store.Pending(domain.KindPartner))
	})

	t.Run("cold start header only on the first invocation", func(t *testing.T) {
		h, _, _ := newTestHandler(t)
		ctx := context.Background()

		first, err := h.Handle(ctx, asyncCreatePartner("1a", "FIRST"))
		require.NoError(t, err)
		assert.Equal(t, "true", first.Headers["X-Cold-Start"])
		assert.NotEmpty(t, first.Headers["X-Cold-Start-Duration"])

		second, err := h.Handle(ctx, asyncCreatePartner("1b", "SECOND"))
		require.NoError(t, err)
		assert.Equal(t, "false", second.Headers["X-Cold-Start"])
	})
}
