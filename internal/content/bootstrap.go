package content

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"elevate-backend/internal/domain"
	"elevate-backend/internal/repository"
)

// featureFetchLimit bounds concurrent product_features selects.
const featureFetchLimit = 4

// Bootstrap loads every kind from the remote store. Kinds load
// independently: a kind whose select fails, or returns no rows, keeps its
// seed content. The store is ready once all six attempts have finished,
// whatever their outcome. Only the first call does any work; it returns
// ctx.Err() if the context ended before loading completed.
func (s *Store) Bootstrap(ctx context.Context) error {
	s.bootOnce.Do(func() {
		defer func() {
			s.isReady.Store(true)
			close(s.ready)
		}()

		if !s.RemoteAvailable() {
			s.logger.Warn("remote store unavailable, serving seed content; changes will not persist")
			for _, kind := range domain.Kinds() {
				s.recordLoad(kind, LoadSourceSeed)
			}
			return
		}

		var g errgroup.Group
		g.Go(func() error {
			loadKind(ctx, s, s.products, repository.ProductFromRow, s.attachFeatures)
			return nil
		})
		g.Go(func() error {
			loadKind(ctx, s, s.blogPosts, repository.BlogPostFromRow, nil)
			return nil
		})
		g.Go(func() error {
			loadKind(ctx, s, s.partners, repository.PartnerFromRow, nil)
			return nil
		})
		g.Go(func() error {
			loadKind(ctx, s, s.testimonials, repository.TestimonialFromRow, nil)
			return nil
		})
		g.Go(func() error {
			loadKind(ctx, s, s.industries, repository.IndustryFromRow, nil)
			return nil
		})
		g.Go(func() error {
			loadKind(ctx, s, s.teamMembers, repository.TeamMemberFromRow, nil)
			return nil
		})
		_ = g.Wait()

		s.bootErr = ctx.Err()
		s.logger.Info("content store ready")
	})
	return s.bootErr
}

func loadKind[T any](ctx context.Context, s *Store, c *collection[T], fromRow func(repository.Row) T, enrich func(context.Context, []T) error) {
	table := repository.TableFor(c.kind)
	logger := s.logger.With(zap.String("kind", c.kind.String()), zap.String("table", table))

	rows, err := s.remote.Select(ctx, table, repository.LoadOptions())
	if err != nil {
		logger.Warn("content load failed, keeping seed", zap.Error(err))
		s.recordLoad(c.kind, LoadSourceSeed)
		return
	}
	if len(rows) == 0 && !s.emptyMeansEmpty {
		logger.Warn("remote table empty, keeping seed")
		s.recordLoad(c.kind, LoadSourceSeed)
		return
	}

	items := make([]T, len(rows))
	for i, row := range rows {
		items[i] = fromRow(row)
	}
	if enrich != nil {
		if err := enrich(ctx, items); err != nil {
			logger.Warn("content load failed, keeping seed", zap.Error(err))
			s.recordLoad(c.kind, LoadSourceSeed)
			return
		}
	}

	c.reset(items)
	s.recordLoad(c.kind, LoadSourceRemote)
	logger.Info("content loaded", zap.Int("count", len(items)))
}

// attachFeatures fills each product's Features from product_features.
func (s *Store) attachFeatures(ctx context.Context, products []domain.Product) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(featureFetchLimit)
	for i := range products {
		g.Go(func() error {
			id := products[i].ID
			rows, err := s.remote.Select(ctx, repository.TableProductFeatures, repository.FeatureOptions(id))
			if err != nil {
				return fmt.Errorf("features of product %q: %w", id, err)
			}
			products[i].Features = repository.FeaturesFromRows(rows)
			return nil
		})
	}
	return g.Wait()
}

func (s *Store) recordLoad(kind domain.Kind, source string) {
	if s.recorder != nil {
		s.recorder.RecordLoad(kind, source)
	}
}
