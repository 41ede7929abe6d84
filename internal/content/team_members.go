package content

import (
	"context"

	"elevate-backend/internal/domain"
	"elevate-backend/internal/repository"
)

func (s *Store) TeamMembers() []domain.TeamMember {
	return s.teamMembers.list()
}

func (s *Store) AddTeamMember(ctx context.Context, m domain.TeamMember) *Result {
	return addItem(s, ctx, s.teamMembers, m, m.Validate,
		s.insertRow(repository.TableTeamMembers, repository.TeamMemberToRow(m)))
}

func (s *Store) UpdateTeamMember(ctx context.Context, id string, m domain.TeamMember) *Result {
	m.ID = id
	return updateItem(s, ctx, s.teamMembers, id, m, m.Validate,
		s.updateRow(repository.TableTeamMembers, id, repository.TeamMemberToRow(m)))
}

func (s *Store) DeleteTeamMember(ctx context.Context, id string) *Result {
	return deleteItem(s, ctx, s.teamMembers, id, s.deleteRow(repository.TableTeamMembers, id))
}
