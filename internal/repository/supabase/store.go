// Package supabase implements the remote store on top of Supabase's
// PostgREST API.
package supabase

import (
	"context"

	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"
	"go.uber.org/zap"

	appErrors "elevate-backend/internal/errors"
	"elevate-backend/internal/repository"
)

// Store is a repository.RemoteStore backed by a Supabase project.
//
// The PostgREST client does not accept a context, so cancellation is only
// honoured between calls. repository.InstrumentedStore abandons a call whose
// ctx ends, which is how timeouts reach a hung request.
type Store struct {
	client *supa.Client
	logger *zap.Logger
}

// New connects to the Supabase project at url using the anon key.
func New(url, key string, logger *zap.Logger) (*Store, error) {
	if url == "" || key == "" {
		return nil, repository.ErrUnavailable()
	}
	client, err := supa.NewClient(url, key, nil)
	if err != nil {
		return nil, appErrors.Unavailable(appErrors.CodeRemoteMissing, "cannot create supabase client").
			WithCause(err).
			Build()
	}
	return NewFromClient(client, logger), nil
}

// NewFromClient wraps an existing client.
func NewFromClient(client *supa.Client, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{client: client, logger: logger}
}

// Client exposes the underlying client so the media uploader can share it.
func (s *Store) Client() *supa.Client {
	return s.client
}

func (s *Store) Select(ctx context.Context, table string, opts repository.SelectOptions) ([]repository.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := s.client.From(table).Select("*", "", false)
	for _, f := range opts.Filters {
		query = query.Eq(f.Column, f.Value)
	}
	if opts.OrderBy != "" {
		query = query.Order(opts.OrderBy, &postgrest.OrderOpts{Ascending: !opts.Descending})
	}

	var rows []repository.Row
	if _, err := query.ExecuteTo(&rows); err != nil {
		return nil, remoteError(appErrors.CodeRemoteSelect, "select", table, err)
	}
	s.logger.Debug("supabase select", zap.String("table", table), zap.Int("rows", len(rows)))
	return rows, nil
}

func (s *Store) Insert(ctx context.Context, table string, rows ...repository.Row) error {
	if len(rows) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var value interface{} = rows
	if len(rows) == 1 {
		value = rows[0]
	}
	if _, _, err := s.client.From(table).Insert(value, false, "", "minimal", "").Execute(); err != nil {
		return remoteError(appErrors.CodeRemoteInsert, "insert", table, err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, table, id string, patch repository.Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, _, err := s.client.From(table).Update(patch, "minimal", "").Eq(repository.ColumnID, id).Execute(); err != nil {
		return remoteError(appErrors.CodeRemoteUpdate, "update", table, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, table, id string) error {
	return s.DeleteWhere(ctx, table, repository.ColumnID, id)
}

func (s *Store) DeleteWhere(ctx context.Context, table, column, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, _, err := s.client.From(table).Delete("minimal", "").Eq(column, value).Execute(); err != nil {
		return remoteError(appErrors.CodeRemoteDelete, "delete", table, err)
	}
	return nil
}

func remoteError(code, operation, table string, err error) error {
	return appErrors.Remote(code, "supabase request failed").
		WithOperation(operation).
		WithResource(table).
		WithDetails(err.Error()).
		WithCause(err).
		Build()
}

var _ repository.RemoteStore = (*Store)(nil)
