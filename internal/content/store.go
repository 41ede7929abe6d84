// Package content holds the authoritative in-memory copy of the site's
// content collections. Mutations are applied optimistically, persisted to
// the remote store on a per-kind worker, and rolled back when persistence
// fails.
package content

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"elevate-backend/internal/domain"
	appErrors "elevate-backend/internal/errors"
	"elevate-backend/internal/repository"
	"elevate-backend/internal/seed"
)

// Load sources reported to the Recorder.
const (
	LoadSourceRemote = "remote"
	LoadSourceSeed   = "seed"
)

// Recorder receives store events for metrics.
type Recorder interface {
	RecordLoad(kind domain.Kind, source string)
	RecordRollback(kind domain.Kind)
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecorder sends load and rollback events to r.
func WithRecorder(r Recorder) Option {
	return func(s *Store) { s.recorder = r }
}

// WithEmptyMeansEmpty makes an empty remote table authoritative instead of
// falling back to the seed content for that kind.
func WithEmptyMeansEmpty() Option {
	return func(s *Store) { s.emptyMeansEmpty = true }
}

// Store is the Content Store. It starts with the seed content, becomes ready
// after Bootstrap, and is safe for concurrent use.
type Store struct {
	remote          repository.RemoteStore
	logger          *zap.Logger
	recorder        Recorder
	emptyMeansEmpty bool

	products     *collection[domain.Product]
	blogPosts    *collection[domain.BlogPost]
	partners     *collection[domain.Partner]
	testimonials *collection[domain.Testimonial]
	industries   *collection[domain.Industry]
	teamMembers  *collection[domain.TeamMember]

	bootOnce sync.Once
	bootErr  error
	ready    chan struct{}
	isReady  atomic.Bool

	// mu orders mutations against Close.
	mu      sync.RWMutex
	closed  bool
	workers sync.WaitGroup
}

// New creates a Store over remote. A nil remote means the collaborator is
// unavailable: the store keeps the seed content and mutations only change
// local state.
func New(remote repository.RemoteStore, opts ...Option) *Store {
	s := &Store{
		remote: remote,
		logger: zap.NewNop(),
		ready:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.products = newCollection(domain.KindProduct, seed.Products(),
		func(p domain.Product) string { return p.ID }, domain.Product.Clone)
	s.blogPosts = newCollection(domain.KindBlogPost, seed.BlogPosts(),
		func(b domain.BlogPost) string { return b.ID }, same[domain.BlogPost])
	s.partners = newCollection(domain.KindPartner, seed.Partners(),
		func(p domain.Partner) string { return p.ID }, same[domain.Partner])
	s.testimonials = newCollection(domain.KindTestimonial, seed.Testimonials(),
		func(t domain.Testimonial) string { return t.ID }, same[domain.Testimonial])
	s.industries = newCollection(domain.KindIndustry, seed.Industries(),
		func(i domain.Industry) string { return i.ID }, same[domain.Industry])
	s.teamMembers = newCollection(domain.KindTeamMember, seed.TeamMembers(),
		func(m domain.TeamMember) string { return m.ID }, same[domain.TeamMember])

	attach(s, s.products)
	attach(s, s.blogPosts)
	attach(s, s.partners)
	attach(s, s.testimonials)
	attach(s, s.industries)
	attach(s, s.teamMembers)
	return s
}

// same is the clone function for entities without reference fields.
func same[T any](v T) T { return v }

func attach[T any](s *Store, c *collection[T]) {
	c.logger = s.logger
	c.workers = &s.workers
	c.onRollback = func(kind domain.Kind) {
		if s.recorder != nil {
			s.recorder.RecordRollback(kind)
		}
	}
}

// RemoteAvailable reports whether mutations are persisted anywhere.
func (s *Store) RemoteAvailable() bool {
	return repository.Available(s.remote)
}

// Ready reports whether Bootstrap has finished.
func (s *Store) Ready() bool {
	return s.isReady.Load()
}

// WaitReady blocks until Bootstrap has finished or ctx ends.
func (s *Store) WaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending returns the number of mutations of kind not yet settled.
func (s *Store) Pending(kind domain.Kind) int {
	switch kind {
	case domain.KindProduct:
		return s.products.inFlight()
	case domain.KindBlogPost:
		return s.blogPosts.inFlight()
	case domain.KindPartner:
		return s.partners.inFlight()
	case domain.KindTestimonial:
		return s.testimonials.inFlight()
	case domain.KindIndustry:
		return s.industries.inFlight()
	case domain.KindTeamMember:
		return s.teamMembers.inFlight()
	}
	return 0
}

// Settle waits until every mutation queued so far has settled.
func (s *Store) Settle(ctx context.Context) error {
	for {
		var tails []*Result
		for _, r := range []*Result{
			s.products.tail(),
			s.blogPosts.tail(),
			s.partners.tail(),
			s.testimonials.tail(),
			s.industries.tail(),
			s.teamMembers.tail(),
		} {
			if r != nil {
				tails = append(tails, r)
			}
		}
		if len(tails) == 0 {
			return nil
		}
		for _, r := range tails {
			select {
			case <-r.Done():
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// Close stops accepting mutations and waits for queued ones to settle.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.workers.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns a copy of all six collections.
func (s *Store) Snapshot() domain.Content {
	return domain.Content{
		Products:     s.products.list(),
		BlogPosts:    s.blogPosts.list(),
		Partners:     s.partners.list(),
		Testimonials: s.testimonials.list(),
		Industries:   s.industries.list(),
		TeamMembers:  s.teamMembers.list(),
	}
}

// ============================================================================
// MUTATION PLUMBING
// ============================================================================

func mutate[T any](s *Store, ctx context.Context, c *collection[T], m *mutation[T], check func([]T) error) *Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return settled(appErrors.Unavailable(appErrors.CodeStoreClosed, "content store is closed").
			WithOperation(m.op).
			WithResource(c.kind.String()).
			Build())
	}
	if !s.Ready() {
		return settled(appErrors.Unavailable(appErrors.CodeStoreNotReady, "content store is still loading").
			WithOperation(m.op).
			WithResource(c.kind.String()).
			Build())
	}

	m.ctx = ctx
	if !s.RemoteAvailable() {
		return c.commit(m, check)
	}
	return c.enqueue(m, check)
}

func addItem[T any](s *Store, ctx context.Context, c *collection[T], item T, validate func() error, persist func(context.Context) error) *Result {
	if err := validate(); err != nil {
		return settled(invalid(c.kind, "add", err))
	}
	id := c.idOf(item)
	m := &mutation[T]{op: "add", id: id, apply: appendItem(item), persist: persist}
	return mutate(s, ctx, c, m, func(visible []T) error {
		for _, existing := range visible {
			if c.idOf(existing) == id {
				return appErrors.Validation(appErrors.CodeInvalidEntity, "id already exists").
					WithOperation("add").
					WithResource(c.kind.String()).
					WithDetails(id).
					Build()
			}
		}
		return nil
	})
}

func updateItem[T any](s *Store, ctx context.Context, c *collection[T], id string, item T, validate func() error, persist func(context.Context) error) *Result {
	if err := validate(); err != nil {
		return settled(invalid(c.kind, "update", err))
	}
	m := &mutation[T]{op: "update", id: id, apply: replaceByID(c.idOf, id, item), persist: persist}
	return mutate(s, ctx, c, m, existsCheck(c, "update", id))
}

func deleteItem[T any](s *Store, ctx context.Context, c *collection[T], id string, persist func(context.Context) error) *Result {
	if id == "" {
		return settled(invalid(c.kind, "delete", domain.ErrEmptyID))
	}
	m := &mutation[T]{op: "delete", id: id, apply: removeByID(c.idOf, id), persist: persist}
	return mutate(s, ctx, c, m, existsCheck(c, "delete", id))
}

func existsCheck[T any](c *collection[T], op, id string) func([]T) error {
	return func(visible []T) error {
		for _, existing := range visible {
			if c.idOf(existing) == id {
				return nil
			}
		}
		return appErrors.NotFound(appErrors.CodeEntityNotFound, "entity not found").
			WithOperation(op).
			WithResource(c.kind.String()).
			WithDetails(id).
			Build()
	}
}

func invalid(kind domain.Kind, op string, err error) error {
	return appErrors.Validation(appErrors.CodeInvalidEntity, "invalid "+kind.String()+" entity").
		WithOperation(op).
		WithResource(kind.String()).
		WithDetails(err.Error()).
		WithCause(err).
		Build()
}

// remoteFailure classifies an error returned by the remote store. Driver
// errors keep their classification; anything else is reported as REMOTE.
func remoteFailure(err error, op, table string) error {
	if err == nil {
		return nil
	}
	var unified *appErrors.UnifiedError
	if appErrors.As(err, &unified) {
		return err
	}
	code := appErrors.CodeRemoteInsert
	switch op {
	case "update":
		code = appErrors.CodeRemoteUpdate
	case "delete":
		code = appErrors.CodeRemoteDelete
	}
	return appErrors.Remote(code, "remote store rejected the change").
		WithOperation(op).
		WithResource(table).
		WithDetails(err.Error()).
		WithCause(err).
		Build()
}
