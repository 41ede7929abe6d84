package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "elevate-backend/internal/errors"
)

func ok(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("Should generate request ID when not provided", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()

		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NotEmpty(t, GetRequestID(r.Context()))
			w.WriteHeader(http.StatusOK)
		}))
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	})

	t.Run("Should use provided request ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, "test-request-id")
		w := httptest.NewRecorder()

		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "test-request-id", GetRequestID(r.Context()))
		}))
		handler.ServeHTTP(w, req)

		assert.Equal(t, "test-request-id", w.Header().Get(RequestIDHeader))
	})

	t.Run("Should return empty string when no request ID in context", func(t *testing.T) {
		assert.Empty(t, GetRequestID(context.Background()))
	})
}

func TestRecoveryMiddleware(t *testing.T) {
	t.Run("Should handle panic gracefully", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()

		handler := Recovery(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("test panic")
		}))
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var body appErrors.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, appErrors.ErrorTypeInternal, body.Type)
		assert.Equal(t, appErrors.CodePanic, body.Code)
		assert.Empty(t, body.Details)
	})

	t.Run("Should pass through normal requests", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()

		Recovery(zap.NewNop())(http.HandlerFunc(ok)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

type httpObservation struct {
	method, route string
	status        int
}

type fakeHTTPRecorder struct {
	mu   sync.Mutex
	seen []httpObservation
}

func (f *fakeHTTPRecorder) RecordHTTPRequest(method, route string, status int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, httpObservation{method, route, status})
}

func TestLoggerMiddleware(t *testing.T) {
	rec := &fakeHTTPRecorder{}
	router := chi.NewRouter()
	router.Use(Logger(zap.NewNop(), rec))
	router.Get("/items/{id}", ok)
	router.Delete("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/items/1", nil),
		httptest.NewRequest(http.MethodDelete, "/items/2", nil),
	} {
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, []httpObservation{
		{http.MethodGet, "/items/{id}", http.StatusOK},
		{http.MethodDelete, "/items/{id}", http.StatusNoContent},
	}, rec.seen)
}

func TestAdminAuth(t *testing.T) {
	secret := "s3cret"
	handler := AdminAuth(func() string { return secret }, zap.NewNop())(http.HandlerFunc(ok))

	tests := []struct {
		name   string
		header string
		value  string
		want   int
	}{
		{"password header", AdminPasswordHeader, "s3cret", http.StatusOK},
		{"bearer token", "Authorization", "Bearer s3cret", http.StatusOK},
		{"lower case bearer", "Authorization", "bearer s3cret", http.StatusOK},
		{"wrong password", AdminPasswordHeader, "nope", http.StatusUnauthorized},
		{"prefix of password", AdminPasswordHeader, "s3cre", http.StatusUnauthorized},
		{"basic scheme", "Authorization", "Basic s3cret", http.StatusUnauthorized},
		{"missing", "", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/admin", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}

	t.Run("empty secret disables admin", func(t *testing.T) {
		disabled := AdminAuth(func() string { return "" }, zap.NewNop())(http.HandlerFunc(ok))
		req := httptest.NewRequest(http.MethodPost, "/admin", nil)
		req.Header.Set(AdminPasswordHeader, "")
		w := httptest.NewRecorder()
		disabled.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		var body appErrors.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, appErrors.CodeAdminDisabled, body.Code)
	})

	t.Run("secret is read per request", func(t *testing.T) {
		current := "old"
		rotating := AdminAuth(func() string { return current }, zap.NewNop())(http.HandlerFunc(ok))

		req := httptest.NewRequest(http.MethodPost, "/admin", nil)
		req.Header.Set(AdminPasswordHeader, "old")
		w := httptest.NewRecorder()
		rotating.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		current = "new"
		w = httptest.NewRecorder()
		rotating.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestTimeoutMiddleware(t *testing.T) {
	t.Run("Should set a deadline", func(t *testing.T) {
		handler := Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, has := r.Context().Deadline()
			assert.True(t, has)
			w.WriteHeader(http.StatusOK)
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})

	t.Run("Zero leaves the request untouched", func(t *testing.T) {
		handler := Timeout(0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, has := r.Context().Deadline()
			assert.False(t, has)
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
