package content

import (
	"context"

	"elevate-backend/internal/domain"
	"elevate-backend/internal/repository"
)

func (s *Store) Testimonials() []domain.Testimonial {
	return s.testimonials.list()
}

func (s *Store) AddTestimonial(ctx context.Context, t domain.Testimonial) *Result {
	return addItem(s, ctx, s.testimonials, t, t.Validate,
		s.insertRow(repository.TableTestimonials, repository.TestimonialToRow(t)))
}

func (s *Store) UpdateTestimonial(ctx context.Context, id string, t domain.Testimonial) *Result {
	t.ID = id
	return updateItem(s, ctx, s.testimonials, id, t, t.Validate,
		s.updateRow(repository.TableTestimonials, id, repository.TestimonialToRow(t)))
}

func (s *Store) DeleteTestimonial(ctx context.Context, id string) *Result {
	return deleteItem(s, ctx, s.testimonials, id, s.deleteRow(repository.TableTestimonials, id))
}
