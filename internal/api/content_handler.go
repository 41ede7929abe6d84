package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"elevate-backend/internal/content"
	appErrors "elevate-backend/internal/errors"
	"elevate-backend/internal/middleware"
)

// ContentHandler serves the public, read-only views of the content store.
// Reads never touch the remote store.
type ContentHandler struct {
	store  *content.Store
	logger *zap.Logger
}

func NewContentHandler(store *content.Store, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{store: store, logger: logger}
}

// GetContent handles GET /content
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, h.store.Snapshot())
}

func (h *ContentHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, h.store.Products())
}

// GetProduct handles GET /products/{id}
func (h *ContentHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, ok := h.store.Product(id)
	if !ok {
		middleware.WriteError(w, notFound("product", id))
		return
	}
	middleware.WriteJSON(w, http.StatusOK, p)
}

func (h *ContentHandler) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, h.store.BlogPosts())
}

// GetBlogPost handles GET /blog-posts/{slug}
func (h *ContentHandler) GetBlogPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	b, ok := h.store.BlogPostBySlug(slug)
	if !ok {
		middleware.WriteError(w, notFound("blog post", slug))
		return
	}
	middleware.WriteJSON(w, http.StatusOK, b)
}

func (h *ContentHandler) ListPartners(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, h.store.Partners())
}

func (h *ContentHandler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, h.store.Testimonials())
}

// ListIndustries handles GET /industries. ?names=true returns the plain label
// list the landing page renders.
func (h *ContentHandler) ListIndustries(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("names") == "true" {
		middleware.WriteJSON(w, http.StatusOK, h.store.IndustryNames())
		return
	}
	middleware.WriteJSON(w, http.StatusOK, h.store.Industries())
}

func (h *ContentHandler) ListTeamMembers(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, h.store.TeamMembers())
}

func notFound(what, id string) error {
	return appErrors.NotFound(appErrors.CodeEntityNotFound, what+" not found").
		WithResource(id).
		WithDetails(id).
		Build()
}
