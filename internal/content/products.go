package content

import (
	"context"

	"elevate-backend/internal/domain"
	"elevate-backend/internal/repository"
)

// Products returns a copy of the visible products.
func (s *Store) Products() []domain.Product {
	return s.products.list()
}

// Product returns the product with id.
func (s *Store) Product(id string) (domain.Product, bool) {
	return s.products.find(func(p domain.Product) bool { return p.ID == id })
}

// AddProduct appends p and persists it with its features.
func (s *Store) AddProduct(ctx context.Context, p domain.Product) *Result {
	p = withFeatures(p)
	return addItem(s, ctx, s.products, p, p.Validate, s.insertProduct(p))
}

// UpdateProduct replaces the product with id by p, features included.
func (s *Store) UpdateProduct(ctx context.Context, id string, p domain.Product) *Result {
	p = withFeatures(p)
	p.ID = id
	return updateItem(s, ctx, s.products, id, p, p.Validate, s.updateProduct(p))
}

// DeleteProduct removes the product with id. Its features are removed by
// the remote store's cascade.
func (s *Store) DeleteProduct(ctx context.Context, id string) *Result {
	return deleteItem(s, ctx, s.products, id, s.deleteRow(repository.TableProducts, id))
}

// withFeatures detaches p from the caller and matches the shape of a loaded
// product, whose Features is never nil.
func withFeatures(p domain.Product) domain.Product {
	p = p.Clone()
	if p.Features == nil {
		p.Features = []string{}
	}
	return p
}
