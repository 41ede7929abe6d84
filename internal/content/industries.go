package content

import (
	"context"
	"strconv"

	"elevate-backend/internal/domain"
	appErrors "elevate-backend/internal/errors"
	"elevate-backend/internal/repository"
)

func (s *Store) Industries() []domain.Industry {
	return s.industries.list()
}

// IndustryNames returns the visible industry labels in order.
func (s *Store) IndustryNames() []string {
	return domain.IndustryNames(s.industries.list())
}

// AddIndustry appends a new industry under a generated id.
func (s *Store) AddIndustry(ctx context.Context, name string) (domain.Industry, *Result) {
	ind := domain.Industry{ID: domain.NewIndustryID(), Name: name}
	return ind, addItem(s, ctx, s.industries, ind, ind.Validate,
		s.insertRow(repository.TableIndustries, repository.IndustryToRow(ind)))
}

func (s *Store) UpdateIndustry(ctx context.Context, id, name string) *Result {
	ind := domain.Industry{ID: id, Name: name}
	return updateItem(s, ctx, s.industries, id, ind, ind.Validate,
		s.updateRow(repository.TableIndustries, id, repository.Row{"name": name}))
}

func (s *Store) DeleteIndustry(ctx context.Context, id string) *Result {
	return deleteItem(s, ctx, s.industries, id, s.deleteRow(repository.TableIndustries, id))
}

// UpdateIndustryAt renames the industry at a position in the visible list.
// The position is resolved to an id when the call is made.
func (s *Store) UpdateIndustryAt(ctx context.Context, index int, name string) *Result {
	id, ok := s.industries.idAt(index)
	if !ok {
		return settled(invalidIndex("update", index))
	}
	return s.UpdateIndustry(ctx, id, name)
}

// DeleteIndustryAt removes the industry at a position in the visible list.
func (s *Store) DeleteIndustryAt(ctx context.Context, index int) *Result {
	id, ok := s.industries.idAt(index)
	if !ok {
		return settled(invalidIndex("delete", index))
	}
	return s.DeleteIndustry(ctx, id)
}

func invalidIndex(op string, index int) error {
	return appErrors.Validation(appErrors.CodeInvalidIndex, "industry index out of range").
		WithOperation(op).
		WithResource(domain.KindIndustry.String()).
		WithDetails(strconv.Itoa(index)).
		Build()
}
