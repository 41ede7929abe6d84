package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "elevate-backend/internal/errors"
)

const (
	DefaultMaxImageBytes = 5 << 20
	DefaultMaxVideoBytes = 50 << 20
	DefaultCacheControl  = "3600"

	suffixLength = 7
)

var folderPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*(/[a-z0-9][a-z0-9_-]*)*$`)

// Recorder receives one observation per upload attempt.
type Recorder interface {
	RecordUpload(folder string, err error)
}

// Object describes a stored upload.
type Object struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecorder reports every upload to r.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithLimits overrides the per class size limits. Zero keeps the default.
func WithLimits(maxImage, maxVideo int64) Option {
	return func(s *Service) {
		if maxImage > 0 {
			s.maxImage = maxImage
		}
		if maxVideo > 0 {
			s.maxVideo = maxVideo
		}
	}
}

// WithCacheControl sets the max-age in seconds stored with each object.
func WithCacheControl(seconds string) Option {
	return func(s *Service) {
		if seconds != "" {
			s.cacheControl = seconds
		}
	}
}

// Service validates uploads and writes them to a Storage.
type Service struct {
	storage      Storage
	logger       *zap.Logger
	recorder     Recorder
	maxImage     int64
	maxVideo     int64
	cacheControl string
	now          func() time.Time
	suffix       func() string
}

// NewService builds a Service. A nil storage makes every upload fail with an
// unavailable error.
func NewService(storage Storage, opts ...Option) *Service {
	s := &Service{
		storage:      storage,
		logger:       zap.NewNop(),
		maxImage:     DefaultMaxImageBytes,
		maxVideo:     DefaultMaxVideoBytes,
		cacheControl: DefaultCacheControl,
		now:          time.Now,
		suffix:       randomSuffix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Available reports whether uploads can be stored.
func (s *Service) Available() bool {
	return s.storage != nil
}

// Driver names the storage backend, or "none".
func (s *Service) Driver() string {
	if s.storage == nil {
		return "none"
	}
	return s.storage.Driver()
}

// Upload stores body under folder and returns its public URL. Only images and
// videos are accepted; the type is sniffed from the content, not the name.
func (s *Service) Upload(ctx context.Context, folder, filename string, body io.Reader) (obj Object, err error) {
	defer func() {
		if s.recorder != nil {
			s.recorder.RecordUpload(folder, err)
		}
	}()

	if s.storage == nil {
		return Object{}, appErrors.Unavailable(appErrors.CodeMediaMissing, "media storage is not configured").Build()
	}
	folder = strings.Trim(folder, "/")
	if !folderPattern.MatchString(folder) {
		return Object{}, appErrors.Validation(appErrors.CodeMediaRejected, "invalid upload folder").
			WithDetails(folder).
			Build()
	}

	data, err := io.ReadAll(io.LimitReader(body, s.maxVideo+1))
	if err != nil {
		return Object{}, appErrors.Validation(appErrors.CodeMediaRejected, "cannot read upload").WithCause(err).Build()
	}
	if len(data) == 0 {
		return Object{}, appErrors.Validation(appErrors.CodeMediaRejected, "empty upload").Build()
	}

	mt := mimetype.Detect(data)
	contentType := mt.String()
	var limit int64
	switch {
	case strings.HasPrefix(contentType, "image/"):
		limit = s.maxImage
	case strings.HasPrefix(contentType, "video/"):
		limit = s.maxVideo
	default:
		return Object{}, appErrors.Validation(appErrors.CodeMediaRejected, "only images and videos can be uploaded").
			WithDetails(contentType).
			Build()
	}
	if int64(len(data)) > limit {
		return Object{}, appErrors.Validation(appErrors.CodeMediaTooLarge, "upload exceeds the size limit").
			WithDetails(fmt.Sprintf("%s limit is %d bytes", contentType, limit)).
			Build()
	}

	key := s.objectKey(folder, extension(filename, mt))
	if err := s.storage.Put(ctx, key, bytes.NewReader(data), int64(len(data)), PutOptions{
		ContentType:  contentType,
		CacheControl: s.cacheControl,
	}); err != nil {
		s.logger.Error("Media upload failed",
			zap.String("driver", s.storage.Driver()),
			zap.String("key", key),
			zap.Error(err))
		return Object{}, err
	}

	obj = Object{Key: key, URL: s.storage.PublicURL(key), ContentType: contentType, Size: int64(len(data))}
	s.logger.Info("Media uploaded",
		zap.String("driver", s.storage.Driver()),
		zap.String("key", key),
		zap.String("content_type", contentType),
		zap.Int64("size", obj.Size))
	return obj, nil
}

// Delete removes a previously uploaded object.
func (s *Service) Delete(ctx context.Context, key string) error {
	if s.storage == nil {
		return appErrors.Unavailable(appErrors.CodeMediaMissing, "media storage is not configured").Build()
	}
	return s.storage.Delete(ctx, key)
}

func (s *Service) objectKey(folder, ext string) string {
	return fmt.Sprintf("%s/%d-%s%s", folder, s.now().UnixMilli(), s.suffix(), ext)
}

// extension prefers the uploaded file's own extension and falls back to the
// sniffed type's canonical one.
func extension(filename string, mt *mimetype.MIME) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext != "" && len(ext) <= 6 && !strings.ContainsAny(ext, "/\\ ") {
		return ext
	}
	return mt.Extension()
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:suffixLength]
}
