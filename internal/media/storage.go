// Package media uploads images and videos for the admin editor and returns
// the public URL the content entities reference.
package media

import (
	"context"
	"io"

	appErrors "elevate-backend/internal/errors"
)

// Driver names, matching the media.driver config values.
const (
	DriverSupabase = "supabase"
	DriverS3       = "s3"
	DriverMemory   = "memory"
)

// PutOptions carries the object metadata written alongside the body.
type PutOptions struct {
	ContentType string
	// CacheControl is the max-age in seconds, e.g. "3600".
	CacheControl string
}

// Storage is a create-only object store that serves objects publicly.
type Storage interface {
	// Put writes body under key. It fails when the key already exists.
	Put(ctx context.Context, key string, body io.Reader, size int64, opts PutOptions) error
	// PublicURL returns the URL an anonymous visitor can fetch key from.
	PublicURL(key string) string
	Delete(ctx context.Context, key string) error
	Driver() string
}

func errObjectExists(key string) error {
	return appErrors.Remote(appErrors.CodeMediaUpload, "object already exists").
		WithResource(key).
		WithOperation("put").
		Build()
}

func uploadError(op, key string, err error) error {
	return appErrors.Remote(appErrors.CodeMediaUpload, "media storage request failed").
		WithOperation(op).
		WithResource(key).
		WithDetails(err.Error()).
		WithCause(err).
		Build()
}
