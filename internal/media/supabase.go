package media

import (
	"context"
	"errors"
	"io"
	"strings"

	storage_go "github.com/supabase-community/storage-go"
)

// DefaultBucket is the public bucket the site stores uploads in.
const DefaultBucket = "images"

const storagePath = "/storage/v1"

// SupabaseStorage stores objects in a Supabase Storage bucket.
//
// storage-go keeps per-upload options as client-wide headers, so every call
// gets its own client.
type SupabaseStorage struct {
	endpoint string
	key      string
	bucket   string
}

// NewSupabaseStorage targets the project at projectURL with the anon key.
func NewSupabaseStorage(projectURL, key, bucket string) *SupabaseStorage {
	if bucket == "" {
		bucket = DefaultBucket
	}
	return &SupabaseStorage{
		endpoint: strings.TrimRight(projectURL, "/") + storagePath,
		key:      key,
		bucket:   bucket,
	}
}

func (s *SupabaseStorage) client() *storage_go.Client {
	return storage_go.NewClient(s.endpoint, s.key, map[string]string{"apikey": s.key})
}

func (s *SupabaseStorage) Driver() string { return DriverSupabase }

func (s *SupabaseStorage) Put(ctx context.Context, key string, body io.Reader, _ int64, opts PutOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	upsert := false
	fileOpts := storage_go.FileOptions{Upsert: &upsert}
	if opts.ContentType != "" {
		fileOpts.ContentType = &opts.ContentType
	}
	if opts.CacheControl != "" {
		fileOpts.CacheControl = &opts.CacheControl
	}

	if _, err := s.client().UploadFile(s.bucket, key, body, fileOpts); err != nil {
		return storageError("put", key, err)
	}
	return nil
}

func (s *SupabaseStorage) PublicURL(key string) string {
	return s.client().GetPublicUrl(s.bucket, key).SignedURL
}

func (s *SupabaseStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.client().RemoveFile(s.bucket, []string{key}); err != nil {
		return storageError("delete", key, err)
	}
	return nil
}

func storageError(op, key string, err error) error {
	var se *storage_go.StorageError
	if errors.As(err, &se) && se.Message == "" {
		err = errors.New("storage request rejected")
	}
	return uploadError(op, key, err)
}
