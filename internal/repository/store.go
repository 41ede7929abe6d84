// Package repository defines the contract the Content Store uses to reach the
// remote relational store, the table layout behind each content kind, and the
// pure mappings between remote rows and domain entities.
package repository

import (
	"context"

	appErrors "elevate-backend/internal/errors"
)

// Row is one remote record keyed by column name.
type Row map[string]any

// Filter restricts a select to rows whose column equals value.
type Filter struct {
	Column string
	Value  string
}

// SelectOptions shapes a select-all call.
type SelectOptions struct {
	OrderBy    string
	Descending bool
	Filters    []Filter
}

// RemoteStore is the CRUD surface of the remote relational store. Every
// method is a single round trip; nothing here is transactional across calls.
type RemoteStore interface {
	// Select returns every row of table matching opts.
	Select(ctx context.Context, table string, opts SelectOptions) ([]Row, error)
	// Insert writes one or more rows. Bulk inserts keep the given order.
	Insert(ctx context.Context, table string, rows ...Row) error
	// Update overwrites the columns in patch on the row whose id matches.
	Update(ctx context.Context, table, id string, patch Row) error
	// Delete removes the row whose id matches.
	Delete(ctx context.Context, table, id string) error
	// DeleteWhere removes every row whose column equals value.
	DeleteWhere(ctx context.Context, table, column, value string) error
}

// Where builds a single-column equality filter list.
func Where(column, value string) []Filter {
	return []Filter{{Column: column, Value: value}}
}

// ErrUnavailable is returned when no remote store is configured.
func ErrUnavailable() error {
	return appErrors.Unavailable(appErrors.CodeRemoteMissing, "remote store is not configured").Build()
}

// Available reports whether store can be used. A nil store means the
// collaborator is unavailable, which is distinct from a failing request.
func Available(store RemoteStore) bool {
	return store != nil
}

// ============================================================================
// ROW ACCESSORS
// ============================================================================

// String reads a text column, returning "" for missing or null values.
func (r Row) String(column string) string {
	switch v := r[column].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	}
	return ""
}

// Bool reads a boolean column. Drivers report booleans as bool, integers or
// text depending on the backend.
func (r Row) Bool(column string) bool {
	switch v := r[column].(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case int:
		return v != 0
	case float64:
		return v != 0
	case string:
		return v == "true" || v == "t" || v == "1"
	case []byte:
		s := string(v)
		return s == "true" || s == "t" || s == "1"
	}
	return false
}

// Int reads an integer column. JSON decoding yields float64.
func (r Row) Int(column string) int {
	switch v := r[column].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
