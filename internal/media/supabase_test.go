package media

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "elevate-backend/internal/errors"
)

type storedUpload struct {
	body         []byte
	contentType  string
	cacheControl string
	upsert       string
}

// fakeStorageAPI serves the subset of the Supabase Storage API the driver uses.
type fakeStorageAPI struct {
	mu      sync.Mutex
	objects map[string]storedUpload
	auth    []string
}

func newFakeStorageAPI(t *testing.T) (*fakeStorageAPI, *httptest.Server) {
	t.Helper()
	api := &fakeStorageAPI{objects: make(map[string]storedUpload)}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return api, srv
}

func (f *fakeStorageAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.auth = append(f.auth, r.Header.Get("Authorization"))

	const prefix = "/storage/v1/object/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		http.NotFound(w, r)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, prefix)

	switch r.Method {
	case http.MethodPost:
		if _, exists := f.objects[path]; exists {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"statusCode":"409","error":"Duplicate","message":"The resource already exists"}`))
			return
		}
		body, _ := io.ReadAll(r.Body)
		f.objects[path] = storedUpload{
			body:         body,
			contentType:  r.Header.Get("Content-Type"),
			cacheControl: r.Header.Get("Cache-Control"),
			upsert:       r.Header.Get("X-Upsert"),
		}
		_, _ = w.Write([]byte(`{"Key":"` + path + `"}`))
	case http.MethodDelete:
		var req struct {
			Prefixes []string `json:"prefixes"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		for _, p := range req.Prefixes {
			delete(f.objects, path+"/"+p)
		}
		_, _ = w.Write([]byte(`[]`))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeStorageAPI) object(path string) (storedUpload, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	obj, ok := f.objects[path]
	return obj, ok
}

func (f *fakeStorageAPI) authHeaders() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.auth...)
}

func TestSupabaseStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("upload without upsert", func(t *testing.T) {
		api, srv := newFakeStorageAPI(t)
		storage := NewSupabaseStorage(srv.URL+"/", "anon-key", "")
		assert.Equal(t, DriverSupabase, storage.Driver())

		err := storage.Put(ctx, "products/1-abc.png", bytes.NewReader([]byte("png-bytes")), 9, PutOptions{
			ContentType:  "image/png",
			CacheControl: "3600",
		})
		require.NoError(t, err)

		obj, ok := api.object("images/products/1-abc.png")
		require.True(t, ok)
		assert.Equal(t, "png-bytes", string(obj.body))
		assert.Equal(t, "image/png", obj.contentType)
		assert.Equal(t, "3600", obj.cacheControl)
		assert.Equal(t, "false", obj.upsert)
		assert.Contains(t, api.authHeaders(), "Bearer anon-key")
	})

	t.Run("duplicate key is a remote error", func(t *testing.T) {
		_, srv := newFakeStorageAPI(t)
		storage := NewSupabaseStorage(srv.URL, "anon-key", "images")

		require.NoError(t, storage.Put(ctx, "blog/a.png", strings.NewReader("one"), 3, PutOptions{ContentType: "image/png"}))
		err := storage.Put(ctx, "blog/a.png", strings.NewReader("two"), 3, PutOptions{ContentType: "image/png"})
		require.Error(t, err)
		assert.True(t, appErrors.IsRemote(err))

		var ue *appErrors.UnifiedError
		require.True(t, appErrors.As(err, &ue))
		assert.Equal(t, "The resource already exists", ue.Details)
	})

	t.Run("public url", func(t *testing.T) {
		_, srv := newFakeStorageAPI(t)
		storage := NewSupabaseStorage(srv.URL, "anon-key", "images")
		assert.Equal(t, srv.URL+"/storage/v1/object/public/images/team/x.jpg", storage.PublicURL("team/x.jpg"))
	})

	t.Run("delete after upload", func(t *testing.T) {
		api, srv := newFakeStorageAPI(t)
		storage := NewSupabaseStorage(srv.URL, "anon-key", "images")

		require.NoError(t, storage.Put(ctx, "partners/logo.png", strings.NewReader("x"), 1, PutOptions{ContentType: "image/png"}))
		require.NoError(t, storage.Delete(ctx, "partners/logo.png"))

		_, ok := api.object("images/partners/logo.png")
		assert.False(t, ok)
	})

	t.Run("through the service", func(t *testing.T) {
		api, srv := newFakeStorageAPI(t)
		svc := newTestService(NewSupabaseStorage(srv.URL, "anon-key", "images"))

		obj, err := svc.Upload(ctx, "products", "hero.png", bytes.NewReader(pad(pngHeader, 32)))
		require.NoError(t, err)
		assert.Equal(t, srv.URL+"/storage/v1/object/public/images/products/1700000000000-abc1234.png", obj.URL)

		_, ok := api.object("images/" + obj.Key)
		assert.True(t, ok)
	})

	t.Run("cancelled context", func(t *testing.T) {
		_, srv := newFakeStorageAPI(t)
		storage := NewSupabaseStorage(srv.URL, "anon-key", "images")

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		assert.ErrorIs(t, storage.Put(cctx, "a/b.png", strings.NewReader("x"), 1, PutOptions{}), context.Canceled)
	})
}
