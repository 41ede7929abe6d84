package content

import (
	"context"

	"elevate-backend/internal/domain"
	"elevate-backend/internal/repository"
)

// Remote write sequences. Each returns the closure a worker runs; none of
// them is transactional across calls.

func (s *Store) insertRow(table string, row repository.Row) func(context.Context) error {
	return func(ctx context.Context) error {
		return remoteFailure(s.remote.Insert(ctx, table, row), "add", table)
	}
}

func (s *Store) updateRow(table, id string, patch repository.Row) func(context.Context) error {
	return func(ctx context.Context) error {
		return remoteFailure(s.remote.Update(ctx, table, id, patch), "update", table)
	}
}

func (s *Store) deleteRow(table, id string) func(context.Context) error {
	return func(ctx context.Context) error {
		return remoteFailure(s.remote.Delete(ctx, table, id), "delete", table)
	}
}

// insertProduct writes the product row, then its features in order. A
// feature failure leaves the product row behind; the mutation still fails.
func (s *Store) insertProduct(p domain.Product) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := s.remote.Insert(ctx, repository.TableProducts, repository.ProductToRow(p)); err != nil {
			return remoteFailure(err, "add", repository.TableProducts)
		}
		return s.writeFeatures(ctx, "add", p)
	}
}

// updateProduct overwrites the product row and replaces its feature rows.
func (s *Store) updateProduct(p domain.Product) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := s.remote.Update(ctx, repository.TableProducts, p.ID, repository.ProductToRow(p)); err != nil {
			return remoteFailure(err, "update", repository.TableProducts)
		}
		err := s.remote.DeleteWhere(ctx, repository.TableProductFeatures, repository.ColumnProductID, p.ID)
		if err != nil {
			return remoteFailure(err, "update", repository.TableProductFeatures)
		}
		return s.writeFeatures(ctx, "update", p)
	}
}

func (s *Store) writeFeatures(ctx context.Context, op string, p domain.Product) error {
	if len(p.Features) == 0 {
		return nil
	}
	rows := repository.FeatureRows(p.ID, p.Features)
	return remoteFailure(s.remote.Insert(ctx, repository.TableProductFeatures, rows...), op, repository.TableProductFeatures)
}
