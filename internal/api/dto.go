package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"elevate-backend/internal/domain"
	appErrors "elevate-backend/internal/errors"
)

var validate = validator.New()

const maxJSONBody = 1 << 20

// ProductRequest is the body of product create and update calls.
type ProductRequest struct {
	ID          string   `json:"id,omitempty" validate:"omitempty,max=64"`
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"required"`
	Price       string   `json:"price" validate:"required,max=100"`
	Features    []string `json:"features" validate:"omitempty,max=50,dive,max=500"`
	Type        string   `json:"type,omitempty" validate:"omitempty,oneof=timeline development"`
	ImageURL    string   `json:"image_url,omitempty" validate:"omitempty,max=2048"`
	CalendlyURL string   `json:"calendly_url,omitempty" validate:"omitempty,max=2048"`
	MediaURL    string   `json:"media_url,omitempty" validate:"omitempty,max=2048"`
	MediaType   string   `json:"media_type,omitempty" validate:"omitempty,oneof=image video"`
}

func (r ProductRequest) toDomain(id string) domain.Product {
	return domain.NormalizeProduct(domain.Product{
		ID:          id,
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Features:    r.Features,
		Type:        domain.ProductType(r.Type),
		ImageURL:    r.ImageURL,
		CalendlyURL: r.CalendlyURL,
		MediaURL:    r.MediaURL,
		MediaType:   domain.MediaType(r.MediaType),
	})
}

type BlogPostRequest struct {
	ID       string `json:"id,omitempty" validate:"omitempty,max=64"`
	Title    string `json:"title" validate:"required,max=300"`
	Excerpt  string `json:"excerpt"`
	Image    string `json:"image" validate:"omitempty,max=2048"`
	Date     string `json:"date" validate:"omitempty,max=50"`
	ReadTime string `json:"readTime" validate:"omitempty,max=50"`
	Category string `json:"category" validate:"omitempty,max=100"`
	Slug     string `json:"slug" validate:"omitempty,max=300"`
}

func (r BlogPostRequest) toDomain(id string) domain.BlogPost {
	return domain.NormalizeBlogPost(domain.BlogPost{
		ID:       id,
		Title:    r.Title,
		Excerpt:  r.Excerpt,
		Image:    r.Image,
		Date:     r.Date,
		ReadTime: r.ReadTime,
		Category: r.Category,
		Slug:     r.Slug,
	})
}

type PartnerRequest struct {
	ID      string `json:"id,omitempty" validate:"omitempty,max=64"`
	Name    string `json:"name" validate:"required,max=200"`
	LogoURL string `json:"logo_url,omitempty" validate:"omitempty,max=2048"`
}

func (r PartnerRequest) toDomain(id string) domain.Partner {
	return domain.Partner{ID: id, Name: r.Name, LogoURL: r.LogoURL}
}

type TestimonialRequest struct {
	ID       string `json:"id,omitempty" validate:"omitempty,max=64"`
	Quote    string `json:"quote" validate:"required"`
	Author   string `json:"author" validate:"required,max=200"`
	Role     string `json:"role" validate:"omitempty,max=200"`
	Company  string `json:"company" validate:"omitempty,max=200"`
	Industry string `json:"industry" validate:"omitempty,max=200"`
}

func (r TestimonialRequest) toDomain(id string) domain.Testimonial {
	return domain.Testimonial{
		ID:       id,
		Quote:    r.Quote,
		Author:   r.Author,
		Role:     r.Role,
		Company:  r.Company,
		Industry: r.Industry,
	}
}

type IndustryRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

type TeamMemberRequest struct {
	ID        string `json:"id,omitempty" validate:"omitempty,max=64"`
	Name      string `json:"name" validate:"required,max=200"`
	Role      string `json:"role" validate:"omitempty,max=200"`
	Bio       string `json:"bio"`
	IsFounder bool   `json:"isFounder"`
	ImageURL  string `json:"image_url,omitempty" validate:"omitempty,max=2048"`
}

func (r TeamMemberRequest) toDomain(id string) domain.TeamMember {
	return domain.TeamMember{
		ID:        id,
		Name:      r.Name,
		Role:      r.Role,
		Bio:       r.Bio,
		IsFounder: r.IsFounder,
		ImageURL:  r.ImageURL,
	}
}

// decodeRequest reads a JSON body into T and validates its struct tags.
func decodeRequest[T any](w http.ResponseWriter, r *http.Request) (T, error) {
	var req T
	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return req, appErrors.Validation(appErrors.CodeInvalidRequest, "request body is empty").Build()
		}
		return req, appErrors.Validation(appErrors.CodeInvalidRequest, "invalid request body").
			WithDetails(err.Error()).
			Build()
	}
	if err := validate.Struct(req); err != nil {
		return req, appErrors.Validation(appErrors.CodeInvalidRequest, "validation failed").
			WithDetails(describe(err)).
			Build()
	}
	return req, nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fe.Namespace()+" failed "+fe.Tag())
	}
	return strings.Join(parts, "; ")
}

// idOr returns id, or a fresh one from gen when the caller left it empty.
func idOr(id string, gen func() string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return gen()
}
