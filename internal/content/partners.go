package content

import (
	"context"

	"elevate-backend/internal/domain"
	"elevate-backend/internal/repository"
)

func (s *Store) Partners() []domain.Partner {
	return s.partners.list()
}

func (s *Store) AddPartner(ctx context.Context, p domain.Partner) *Result {
	return addItem(s, ctx, s.partners, p, p.Validate,
		s.insertRow(repository.TablePartners, repository.PartnerToRow(p)))
}

func (s *Store) UpdatePartner(ctx context.Context, id string, p domain.Partner) *Result {
	p.ID = id
	return updateItem(s, ctx, s.partners, id, p, p.Validate,
		s.updateRow(repository.TablePartners, id, repository.PartnerToRow(p)))
}

func (s *Store) DeletePartner(ctx context.Context, id string) *Result {
	return deleteItem(s, ctx, s.partners, id, s.deleteRow(repository.TablePartners, id))
}
