// Package mocks provides an in-memory RemoteStore for exercising the Content
// Store and the HTTP layer without a database.
package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"elevate-backend/internal/repository"
)

// Call records one invocation against the mock.
type Call struct {
	Method string
	Table  string
	ID     string
	Rows   int
}

type cascade struct {
	child  string
	column string
}

// RemoteStore keeps tables as ordered row slices. Deleting a product removes
// its feature rows, mirroring the ON DELETE CASCADE of the real schema.
type RemoteStore struct {
	mu sync.Mutex

	tables   map[string][]repository.Row
	cascades map[string][]cascade
	seq      int64
	calls    []Call

	// For testing error scenarios: "Method" or "Method:table" -> error
	shouldFailOn map[string]error

	gate chan struct{}
}

// NewRemoteStore creates an empty mock with the products -> product_features
// cascade configured.
func NewRemoteStore() *RemoteStore {
	return &RemoteStore{
		tables: make(map[string][]repository.Row),
		cascades: map[string][]cascade{
			repository.TableProducts: {{child: repository.TableProductFeatures, column: repository.ColumnProductID}},
		},
		shouldFailOn: make(map[string]error),
	}
}

// SetError makes method fail with err. An empty table applies to every table.
func (m *RemoteStore) SetError(method, table string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFailOn[errorKey(method, table)] = err
}

// ClearErrors removes all configured errors.
func (m *RemoteStore) ClearErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFailOn = make(map[string]error)
}

// Hold blocks every subsequent call until Release is called or the call's
// context ends. It lets tests observe state while a remote call is in flight.
func (m *RemoteStore) Hold() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gate == nil {
		m.gate = make(chan struct{})
	}
}

// Release unblocks every held call.
func (m *RemoteStore) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gate != nil {
		close(m.gate)
		m.gate = nil
	}
}

// Put loads rows directly, bypassing errors, the gate and the call log.
func (m *RemoteStore) Put(table string, rows ...repository.Row) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range rows {
		m.appendLocked(table, r)
	}
}

// Rows returns a copy of table's rows in storage order.
func (m *RemoteStore) Rows(table string) []repository.Row {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyRows(m.tables[table])
}

// Calls returns the recorded calls.
func (m *RemoteStore) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount counts recorded calls of method, optionally for one table.
func (m *RemoteStore) CallCount(method, table string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c.Method == method && (table == "" || c.Table == table) {
			n++
		}
	}
	return n
}

// enter logs the call, waits on the gate and returns the configured error.
func (m *RemoteStore) enter(ctx context.Context, call Call) error {
	m.mu.Lock()
	m.calls = append(m.calls, call)
	gate := m.gate
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.shouldFailOn[errorKey(call.Method, call.Table)]; ok {
		return err
	}
	if err, ok := m.shouldFailOn[errorKey(call.Method, "")]; ok {
		return err
	}
	return nil
}

func (m *RemoteStore) Select(ctx context.Context, table string, opts repository.SelectOptions) ([]repository.Row, error) {
	if err := m.enter(ctx, Call{Method: "Select", Table: table}); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var out []repository.Row
	for _, r := range m.tables[table] {
		if matches(r, opts.Filters) {
			out = append(out, copyRow(r))
		}
	}
	if opts.OrderBy != "" {
		sort.SliceStable(out, func(i, j int) bool {
			c := compare(out[i][opts.OrderBy], out[j][opts.OrderBy])
			if opts.Descending {
				return c > 0
			}
			return c < 0
		})
	}
	return out, nil
}

func (m *RemoteStore) Insert(ctx context.Context, table string, rows ...repository.Row) error {
	if err := m.enter(ctx, Call{Method: "Insert", Table: table, Rows: len(rows)}); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range rows {
		if id, ok := r[repository.ColumnID].(string); ok && m.indexLocked(table, id) >= 0 {
			return fmt.Errorf("duplicate key value violates unique constraint %q", table+"_pkey")
		}
	}
	for _, r := range rows {
		m.appendLocked(table, r)
	}
	return nil
}

func (m *RemoteStore) Update(ctx context.Context, table, id string, patch repository.Row) error {
	if err := m.enter(ctx, Call{Method: "Update", Table: table, ID: id}); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexLocked(table, id)
	if i < 0 {
		return nil
	}
	for k, v := range patch {
		m.tables[table][i][k] = v
	}
	return nil
}

func (m *RemoteStore) Delete(ctx context.Context, table, id string) error {
	if err := m.enter(ctx, Call{Method: "Delete", Table: table, ID: id}); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteWhereLocked(table, repository.ColumnID, id)
	for _, c := range m.cascades[table] {
		m.deleteWhereLocked(c.child, c.column, id)
	}
	return nil
}

func (m *RemoteStore) DeleteWhere(ctx context.Context, table, column, value string) error {
	if err := m.enter(ctx, Call{Method: "DeleteWhere", Table: table, ID: value}); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteWhereLocked(table, column, value)
	return nil
}

func (m *RemoteStore) appendLocked(table string, r repository.Row) {
	row := copyRow(r)
	if _, ok := row[repository.ColumnCreatedAt]; !ok {
		m.seq++
		row[repository.ColumnCreatedAt] = m.seq
	}
	m.tables[table] = append(m.tables[table], row)
}

func (m *RemoteStore) indexLocked(table, id string) int {
	for i, r := range m.tables[table] {
		if r.String(repository.ColumnID) == id {
			return i
		}
	}
	return -1
}

func (m *RemoteStore) deleteWhereLocked(table, column, value string) {
	kept := m.tables[table][:0]
	for _, r := range m.tables[table] {
		if fmt.Sprint(r[column]) != value {
			kept = append(kept, r)
		}
	}
	m.tables[table] = kept
}

func errorKey(method, table string) string {
	if table == "" {
		return method
	}
	return method + ":" + table
}

func matches(r repository.Row, filters []repository.Filter) bool {
	for _, f := range filters {
		if fmt.Sprint(r[f.Column]) != f.Value {
			return false
		}
	}
	return true
}

// compare orders numbers numerically and everything else by text.
func compare(a, b any) int {
	fa, aNum := number(a)
	fb, bNum := number(b)
	if aNum && bNum {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	}
	sa, sb := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	}
	return 0
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func copyRow(r repository.Row) repository.Row {
	out := make(repository.Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func copyRows(rows []repository.Row) []repository.Row {
	out := make([]repository.Row, len(rows))
	for i, r := range rows {
		out[i] = copyRow(r)
	}
	return out
}

var _ repository.RemoteStore = (*RemoteStore)(nil)
