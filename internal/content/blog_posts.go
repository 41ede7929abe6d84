package content

import (
	"context"

	"elevate-backend/internal/domain"
	"elevate-backend/internal/repository"
)

func (s *Store) BlogPosts() []domain.BlogPost {
	return s.blogPosts.list()
}

// BlogPostBySlug finds the post a narrative page is addressed by.
func (s *Store) BlogPostBySlug(slug string) (domain.BlogPost, bool) {
	return s.blogPosts.find(func(b domain.BlogPost) bool { return b.Slug == slug })
}

func (s *Store) AddBlogPost(ctx context.Context, b domain.BlogPost) *Result {
	return addItem(s, ctx, s.blogPosts, b, b.Validate,
		s.insertRow(repository.TableBlogPosts, repository.BlogPostToRow(b)))
}

func (s *Store) UpdateBlogPost(ctx context.Context, id string, b domain.BlogPost) *Result {
	b.ID = id
	return updateItem(s, ctx, s.blogPosts, id, b, b.Validate,
		s.updateRow(repository.TableBlogPosts, id, repository.BlogPostToRow(b)))
}

func (s *Store) DeleteBlogPost(ctx context.Context, id string) *Result {
	return deleteItem(s, ctx, s.blogPosts, id, s.deleteRow(repository.TableBlogPosts, id))
}
