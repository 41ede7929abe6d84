package content

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"elevate-backend/internal/domain"
)

// mutation is one queued change to a kind. apply is pure: it returns a new
// slice and never modifies its input, so it can be replayed on top of the
// confirmed state after a rollback.
type mutation[T any] struct {
	op      string
	id      string
	apply   func([]T) []T
	persist func(context.Context) error
	ctx     context.Context
	result  *Result
	queued  time.Time
}

// collection holds one kind. confirmed is what the remote store is known to
// hold; visible is confirmed with every pending mutation applied in order.
// At most one pending mutation is being persisted at a time.
type collection[T any] struct {
	kind  domain.Kind
	idOf  func(T) string
	clone func(T) T

	logger     *zap.Logger
	workers    *sync.WaitGroup
	onRollback func(domain.Kind)

	mu        sync.RWMutex
	confirmed []T
	visible   []T
	pending   []*mutation[T]
	running   bool
}

func newCollection[T any](kind domain.Kind, items []T, idOf func(T) string, clone func(T) T) *collection[T] {
	c := &collection[T]{kind: kind, idOf: idOf, clone: clone}
	c.confirmed = items
	c.visible = items
	return c
}

// reset replaces both views. Only used while loading, before any mutation.
func (c *collection[T]) reset(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.confirmed = items
	c.visible = items
}

// list returns a deep copy of the visible collection.
func (c *collection[T]) list() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.visible))
	for i, item := range c.visible {
		out[i] = c.clone(item)
	}
	return out
}

func (c *collection[T]) find(match func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.visible {
		if match(item) {
			return c.clone(item), true
		}
	}
	var zero T
	return zero, false
}

// idAt resolves a position in the visible collection.
func (c *collection[T]) idAt(index int) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if index < 0 || index >= len(c.visible) {
		return "", false
	}
	return c.idOf(c.visible[index]), true
}

// tail returns the Result of the last queued mutation, if any.
func (c *collection[T]) tail() *Result {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.pending) == 0 {
		return nil
	}
	return c.pending[len(c.pending)-1].result
}

func (c *collection[T]) inFlight() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pending)
}

// commit applies m to both views at once. Used when there is no remote store.
func (c *collection[T]) commit(m *mutation[T], check func([]T) error) *Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if check != nil {
		if err := check(c.visible); err != nil {
			return settled(err)
		}
	}
	c.confirmed = m.apply(c.confirmed)
	c.visible = m.apply(c.visible)
	return settled(nil)
}

// enqueue applies m optimistically and schedules its persistence. check runs
// against the visible collection under the same lock as the apply.
func (c *collection[T]) enqueue(m *mutation[T], check func([]T) error) *Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if check != nil {
		if err := check(c.visible); err != nil {
			return settled(err)
		}
	}

	m.result = newResult()
	m.queued = time.Now()
	c.visible = m.apply(c.visible)
	c.pending = append(c.pending, m)

	if !c.running {
		c.running = true
		c.workers.Add(1)
		go c.run()
	}
	return m.result
}

// run persists pending mutations one at a time until the queue drains.
func (c *collection[T]) run() {
	defer c.workers.Done()

	for {
		c.mu.Lock()
		if len(c.pending) == 0 {
			c.running = false
			c.mu.Unlock()
			return
		}
		m := c.pending[0]
		c.mu.Unlock()

		err := m.persist(context.WithoutCancel(m.ctx))

		c.mu.Lock()
		c.pending = c.pending[1:]
		if err == nil {
			c.confirmed = m.apply(c.confirmed)
		} else {
			// Rebuild from the confirmed state, keeping the mutations still
			// waiting behind the failed one.
			visible := c.confirmed
			for _, p := range c.pending {
				visible = p.apply(visible)
			}
			c.visible = visible
		}
		c.mu.Unlock()

		if err != nil {
			c.logger.Error("content mutation failed, rolled back",
				zap.String("kind", c.kind.String()),
				zap.String("operation", m.op),
				zap.String("id", m.id),
				zap.Duration("elapsed", time.Since(m.queued)),
				zap.Error(err))
			if c.onRollback != nil {
				c.onRollback(c.kind)
			}
		} else {
			c.logger.Debug("content mutation persisted",
				zap.String("kind", c.kind.String()),
				zap.String("operation", m.op),
				zap.String("id", m.id),
				zap.Duration("elapsed", time.Since(m.queued)))
		}
		m.result.settle(err)
	}
}

// ============================================================================
// PURE APPLIERS
// ============================================================================

func appendItem[T any](item T) func([]T) []T {
	return func(items []T) []T {
		out := make([]T, 0, len(items)+1)
		out = append(out, items...)
		return append(out, item)
	}
}

func replaceByID[T any](idOf func(T) string, id string, item T) func([]T) []T {
	return func(items []T) []T {
		out := make([]T, len(items))
		for i, existing := range items {
			if idOf(existing) == id {
				out[i] = item
				continue
			}
			out[i] = existing
		}
		return out
	}
}

func removeByID[T any](idOf func(T) string, id string) func([]T) []T {
	return func(items []T) []T {
		out := make([]T, 0, len(items))
		for _, existing := range items {
			if idOf(existing) != id {
				out = append(out, existing)
			}
		}
		return out
	}
}
