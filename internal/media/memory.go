package media

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
)

// MemoryStorage keeps objects in process memory. Used in development and tests.
type MemoryStorage struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]MemoryObject
}

// MemoryObject is a stored object.
type MemoryObject struct {
	Body         []byte
	ContentType  string
	CacheControl string
}

// NewMemoryStorage returns an empty store whose public URLs start with baseURL.
func NewMemoryStorage(baseURL string) *MemoryStorage {
	if baseURL == "" {
		baseURL = "memory://media"
	}
	return &MemoryStorage{
		baseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]MemoryObject),
	}
}

func (m *MemoryStorage) Driver() string { return DriverMemory }

func (m *MemoryStorage) Put(ctx context.Context, key string, body io.Reader, _ int64, opts PutOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return uploadError("put", key, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.objects[key]; exists {
		return errObjectExists(key)
	}
	m.objects[key] = MemoryObject{Body: buf.Bytes(), ContentType: opts.ContentType, CacheControl: opts.CacheControl}
	return nil
}

func (m *MemoryStorage) PublicURL(key string) string {
	return m.baseURL + "/" + key
}

func (m *MemoryStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

// Object returns the object stored under key.
func (m *MemoryStorage) Object(key string) (MemoryObject, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	return obj, ok
}

// Keys lists the stored keys in no particular order.
func (m *MemoryStorage) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	return keys
}
