// Package sqlstore implements the remote store directly against a SQL
// database. It serves local development (SQLite) and self-hosted Postgres
// deployments that do not run PostgREST in front of the database.
package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // pure go sqlite driver

	appErrors "elevate-backend/internal/errors"
	"elevate-backend/internal/repository"
)

// Dialect selects the SQL flavour and driver.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

func (d Dialect) driver() string {
	if d == Postgres {
		return "pgx"
	}
	return "sqlite"
}

//go:embed schema/*.sql
var schemas embed.FS

// sqlOpen is swapped in tests.
var sqlOpen = sql.Open

// Store is a repository.RemoteStore over database/sql.
type Store struct {
	db      *sql.DB
	dialect Dialect
	logger  *zap.Logger

	// clock stamps created_at so selects return rows in insertion order.
	clock atomic.Int64
}

// Open connects to dsn, waits for the database to answer and applies the
// schema.
func Open(ctx context.Context, dialect Dialect, dsn string, logger *zap.Logger) (*Store, error) {
	if dialect != Postgres && dialect != SQLite {
		return nil, appErrors.Validation(appErrors.CodeConfigInvalid, "unknown sql dialect").
			WithDetails(string(dialect)).
			Build()
	}
	if dialect == SQLite && !strings.Contains(dsn, "foreign_keys") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=foreign_keys(1)"
	}

	db, err := sqlOpen(dialect.driver(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	if dialect == SQLite {
		// A single connection keeps the pragma and avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	}

	err = repository.RetryWithBackoff(ctx, repository.DefaultRetryConfig(), func(ctx context.Context) error {
		return db.PingContext(ctx)
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}

	s, err := New(ctx, db, dialect, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open database and applies the schema.
func New(ctx context.Context, db *sql.DB, dialect Dialect, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{db: db, dialect: dialect, logger: logger}
	if err := s.migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	ddl, err := schemas.ReadFile("schema/" + string(s.dialect) + ".sql")
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	for _, stmt := range strings.Split(string(ddl), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	s.logger.Debug("sql schema applied", zap.String("dialect", string(s.dialect)))
	return nil
}

// placeholder returns the n-th (1-based) bind marker.
func (s *Store) placeholder(n int) string {
	if s.dialect == Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// nextStamp returns a strictly increasing created_at value.
func (s *Store) nextStamp() int64 {
	for {
		now := time.Now().UnixNano()
		last := s.clock.Load()
		if now <= last {
			now = last + 1
		}
		if s.clock.CompareAndSwap(last, now) {
			return now
		}
	}
}

func (s *Store) Select(ctx context.Context, table string, opts repository.SelectOptions) ([]repository.Row, error) {
	columns, err := columnsOf(table)
	if err != nil {
		return nil, err
	}
	columns = append(columns, repository.ColumnCreatedAt)

	var (
		query strings.Builder
		args  []any
	)
	fmt.Fprintf(&query, "SELECT %s FROM %s", strings.Join(columns, ", "), table)
	for i, f := range opts.Filters {
		if err := checkColumn(table, f.Column); err != nil {
			return nil, err
		}
		keyword := " WHERE "
		if i > 0 {
			keyword = " AND "
		}
		args = append(args, f.Value)
		fmt.Fprintf(&query, "%s%s = %s", keyword, f.Column, s.placeholder(len(args)))
	}
	if opts.OrderBy != "" {
		if err := checkColumn(table, opts.OrderBy); err != nil {
			return nil, err
		}
		direction := "ASC"
		if opts.Descending {
			direction = "DESC"
		}
		fmt.Fprintf(&query, " ORDER BY %s %s", opts.OrderBy, direction)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, remoteError(appErrors.CodeRemoteSelect, "select", table, err)
	}
	defer func() { _ = rows.Close() }()

	var out []repository.Row
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, remoteError(appErrors.CodeRemoteSelect, "select", table, err)
		}
		row := make(repository.Row, len(columns))
		for i, c := range columns {
			if b, ok := values[i].([]byte); ok {
				row[c] = string(b)
				continue
			}
			row[c] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, remoteError(appErrors.CodeRemoteSelect, "select", table, err)
	}
	return out, nil
}

// Insert writes all rows in one transaction.
func (s *Store) Insert(ctx context.Context, table string, rows ...repository.Row) (retErr error) {
	if len(rows) == 0 {
		return nil
	}
	if _, err := columnsOf(table); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return remoteError(appErrors.CodeRemoteInsert, "insert", table, err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	for _, row := range rows {
		keys, err := sortedKeys(table, row)
		if err != nil {
			return err
		}
		marks := make([]string, 0, len(keys)+1)
		args := make([]any, 0, len(keys)+1)
		for _, k := range keys {
			args = append(args, row[k])
			marks = append(marks, s.placeholder(len(args)))
		}
		args = append(args, s.nextStamp())
		marks = append(marks, s.placeholder(len(args)))

		stmt := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES (%s)",
			table, strings.Join(keys, ", "), repository.ColumnCreatedAt, strings.Join(marks, ", "))
		if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
			return remoteError(appErrors.CodeRemoteInsert, "insert", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return remoteError(appErrors.CodeRemoteInsert, "insert", table, err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, table, id string, patch repository.Row) error {
	keys, err := sortedKeys(table, patch)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	sets := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys)+1)
	for _, k := range keys {
		args = append(args, patch[k])
		sets = append(sets, fmt.Sprintf("%s = %s", k, s.placeholder(len(args))))
	}
	args = append(args, id)

	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s",
		table, strings.Join(sets, ", "), repository.ColumnID, s.placeholder(len(args)))
	if _, err := s.db.ExecContext(ctx, stmt, args...); err != nil {
		return remoteError(appErrors.CodeRemoteUpdate, "update", table, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, table, id string) error {
	return s.DeleteWhere(ctx, table, repository.ColumnID, id)
}

func (s *Store) DeleteWhere(ctx context.Context, table, column, value string) error {
	if err := checkColumn(table, column); err != nil {
		return err
	}
	stmt := fmt.Sprintf("DELETE FROM %s WHERE %s = %s", table, column, s.placeholder(1))
	if _, err := s.db.ExecContext(ctx, stmt, value); err != nil {
		return remoteError(appErrors.CodeRemoteDelete, "delete", table, err)
	}
	return nil
}

// ============================================================================
// IDENTIFIER VALIDATION
// ============================================================================

// Table and column names are interpolated into SQL, so only names from the
// known layout are accepted.

func columnsOf(table string) ([]string, error) {
	columns, ok := repository.Columns[table]
	if !ok {
		return nil, appErrors.Validation(appErrors.CodeInvalidRequest, "unknown table").
			WithResource(table).
			Build()
	}
	out := make([]string, len(columns))
	copy(out, columns)
	return out, nil
}

func checkColumn(table, column string) error {
	if column == repository.ColumnCreatedAt {
		return nil
	}
	columns, err := columnsOf(table)
	if err != nil {
		return err
	}
	for _, c := range columns {
		if c == column {
			return nil
		}
	}
	return appErrors.Validation(appErrors.CodeInvalidRequest, "unknown column").
		WithResource(table).
		WithDetails(column).
		Build()
}

func sortedKeys(table string, row repository.Row) ([]string, error) {
	keys := make([]string, 0, len(row))
	for k := range row {
		if k == repository.ColumnCreatedAt {
			continue
		}
		if err := checkColumn(table, k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func remoteError(code, operation, table string, err error) error {
	return appErrors.Remote(code, "sql statement failed").
		WithOperation(operation).
		WithResource(table).
		WithDetails(err.Error()).
		WithCause(err).
		Build()
}

var _ repository.RemoteStore = (*Store)(nil)
