package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"elevate-backend/internal/content"
	"elevate-backend/internal/domain"
	appErrors "elevate-backend/internal/errors"
	"elevate-backend/internal/middleware"
)

// AdminHandler applies editor mutations to the content store.
//
// By default a mutation answers once the remote store confirmed it, or with
// the remote error after the store rolled back. With ?async=true it answers
// 202 right after the optimistic apply. A request whose deadline passes
// while the mutation is still queued also gets 202: the mutation keeps going.
type AdminHandler struct {
	store  *content.Store
	logger *zap.Logger
}

func NewAdminHandler(store *content.Store, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{store: store, logger: logger}
}

// PendingResponse is returned with 202 Accepted.
type PendingResponse struct {
	Status string      `json:"status"`
	Kind   domain.Kind `json:"kind"`
	ID     string      `json:"id"`
	Data   any         `json:"data,omitempty"`
}

// ============================================================================
// PRODUCTS
// ============================================================================

// CreateProduct handles POST /admin/products
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest[ProductRequest](w, r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	p := req.toDomain(idOr(req.ID, domain.NewID))
	h.respond(w, r, domain.KindProduct, p.ID, h.store.AddProduct(r.Context(), p), http.StatusCreated, p)
}

// UpdateProduct handles PUT /admin/products/{id}
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest[ProductRequest](w, r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	p := req.toDomain(id)
	h.respond(w, r, domain.KindProduct, id, h.store.UpdateProduct(r.Context(), id, p), http.StatusOK, p)
}

// DeleteProduct handles DELETE /admin/products/{id}
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.respond(w, r, domain.KindProduct, id, h.store.DeleteProduct(r.Context(), id), http.StatusNoContent, nil)
}

// ============================================================================
// BLOG POSTS
// ============================================================================

func (h *AdminHandler) CreateBlogPost(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest[BlogPostRequest](w, r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	b := req.toDomain(idOr(req.ID, domain.NewID))
	h.respond(w, r, domain.KindBlogPost, b.ID, h.store.AddBlogPost(r.Context(), b), http.StatusCreated, b)
}

func (h *AdminHandler) UpdateBlogPost(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest[BlogPostRequest](w, r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	b := req.toDomain(id)
	h.respond(w, r, domain.KindBlogPost, id, h.store.UpdateBlogPost(r.Context(), id, b), http.StatusOK, b)
}

func (h *AdminHandler) DeleteBlogPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.respond(w, r, domain.KindBlogPost, id, h.store.DeleteBlogPost(r.Context(), id), http.StatusNoContent, nil)
}

// ============================================================================
// PARTNERS
// ============================================================================

func (h *AdminHandler) CreatePartner(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest[PartnerRequest](w, r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	p := req.toDomain(idOr(req.ID, domain.NewID))
	h.respond(w, r, domain.KindPartner, p.ID, h.store.AddPartner(r.Context(), p), http.StatusCreated, p)
}

func (h *AdminHandler) UpdatePartner(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest[PartnerRequest](w, r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	p := req.toDomain(id)
	h.respond(w, r, domain.KindPartner, id, h.store.UpdatePartner(r.Context(), id, p), http.StatusOK, p)
}

func (h *AdminHandler) DeletePartner(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.respond(w, r, domain.KindPartner, id, h.store.DeletePartner(r.Context(), id), http.StatusNoContent, nil)
}

// ============================================================================
// TESTIMONIALS
// ============================================================================

func (h *AdminHandler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest[TestimonialRequest](w, r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	t := req.toDomain(idOr(req.ID, domain.NewID))
	h.respond(w, r, domain.KindTestimonial, t.ID, h.store.AddTestimonial(r.Context(), t), http.StatusCreated, t)
}

func (h *AdminHandler) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest[TestimonialRequest](w, r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	t := req.toDomain(id)
	h.respond(w, r, domain.KindTestimonial, id, h.store.UpdateTestimonial(r.Context(), id, t), http.StatusOK, t)
}

func (h *AdminHandler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.respond(w, r, domain.KindTestimonial, id, h.store.DeleteTestimonial(r.Context(), id), http.StatusNoContent, nil)
}

// ============================================================================
// INDUSTRIES
// ============================================================================

func (h *AdminHandler) CreateIndustry(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest[IndustryRequest](w, r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	ind, result := h.store.AddIndustry(r.Context(), req.Name)
	h.respond(w, r, domain.KindIndustry, ind.ID, result, http.StatusCreated, ind)
}

func (h *AdminHandler) UpdateIndustry(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest[IndustryRequest](w, r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	ind := domain.Industry{ID: id, Name: req.Name}
	h.respond(w, r, domain.KindIndustry, id, h.store.UpdateIndustry(r.Context(), id, req.Name), http.StatusOK, ind)
}

func (h *AdminHandler) DeleteIndustry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.respond(w, r, domain.KindIndustry, id, h.store.DeleteIndustry(r.Context(), id), http.StatusNoContent, nil)
}

// UpdateIndustryAt handles PUT /admin/industries/at/{index}, addressing the
// industry by its position in the list.
func (h *AdminHandler) UpdateIndustryAt(w http.ResponseWriter, r *http.Request) {
	index, err := indexParam(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	req, err := decodeRequest[IndustryRequest](w, r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	industries := h.store.Industries()
	if index < 0 || index >= len(industries) {
		h.respond(w, r, domain.KindIndustry, strconv.Itoa(index), h.store.UpdateIndustryAt(r.Context(), index, req.Name), http.StatusOK, nil)
		return
	}
	// Answer like UpdateIndustry, with the renamed industry.
	ind := domain.Industry{ID: industries[index].ID, Name: req.Name}
	h.respond(w, r, domain.KindIndustry, ind.ID, h.store.UpdateIndustry(r.Context(), ind.ID, req.Name), http.StatusOK, ind)
}

func (h *AdminHandler) DeleteIndustryAt(w http.ResponseWriter, r *http.Request) {
	index, err := indexParam(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	h.respond(w, r, domain.KindIndustry, strconv.Itoa(index), h.store.DeleteIndustryAt(r.Context(), index), http.StatusNoContent, nil)
}

func indexParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, appErrors.Validation(appErrors.CodeInvalidIndex, "index must be an integer").
			WithDetails(raw).
			Build()
	}
	return index, nil
}

// ============================================================================
// TEAM MEMBERS
// ============================================================================

func (h *AdminHandler) CreateTeamMember(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest[TeamMemberRequest](w, r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	m := req.toDomain(idOr(req.ID, domain.NewTeamMemberID))
	h.respond(w, r, domain.KindTeamMember, m.ID, h.store.AddTeamMember(r.Context(), m), http.StatusCreated, m)
}

func (h *AdminHandler) UpdateTeamMember(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest[TeamMemberRequest](w, r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	m := req.toDomain(id)
	h.respond(w, r, domain.KindTeamMember, id, h.store.UpdateTeamMember(r.Context(), id, m), http.StatusOK, m)
}

func (h *AdminHandler) DeleteTeamMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.respond(w, r, domain.KindTeamMember, id, h.store.DeleteTeamMember(r.Context(), id), http.StatusNoContent, nil)
}

// ============================================================================
// SETTLEMENT
// ============================================================================

func (h *AdminHandler) respond(w http.ResponseWriter, r *http.Request, kind domain.Kind, id string, result *content.Result, status int, body any) {
	pending := PendingResponse{Status: "pending", Kind: kind, ID: id, Data: body}

	if r.URL.Query().Get("async") == "true" {
		// Rejected before anything was applied.
		if err := result.Err(); err != nil {
			middleware.WriteError(w, err)
			return
		}
		middleware.WriteJSON(w, http.StatusAccepted, pending)
		return
	}

	err := result.Wait(r.Context())
	switch {
	case err == nil:
		if status == http.StatusNoContent || body == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		middleware.WriteJSON(w, status, body)
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		if settledErr := result.Err(); settledErr != nil {
			middleware.WriteError(w, settledErr)
			return
		}
		h.logger.Info("Mutation still reconciling when request ended",
			middleware.RequestIDField(r),
			zap.String("kind", kind.String()),
			zap.String("id", id))
		middleware.WriteJSON(w, http.StatusAccepted, pending)
	default:
		h.logger.Warn("Mutation failed",
			middleware.RequestIDField(r),
			zap.String("kind", kind.String()),
			zap.String("id", id),
			zap.Error(err))
		middleware.WriteError(w, err)
	}
}
