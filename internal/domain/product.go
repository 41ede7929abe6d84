package domain

import "slices"

// ProductType controls how a product card is rendered.
type ProductType string

const (
	ProductTypeTimeline    ProductType = "timeline"
	ProductTypeDevelopment ProductType = "development"
)

// MediaType describes the optional hero media attached to a product.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// Product is a service offering. Features are stored remotely as ordered child
// rows keyed by (product_id, display_order).
type Product struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Price       string      `json:"price"`
	Features    []string    `json:"features"`
	Type        ProductType `json:"type,omitempty"`
	ImageURL    string      `json:"image_url,omitempty"`
	CalendlyURL string      `json:"calendly_url,omitempty"`
	MediaURL    string      `json:"media_url,omitempty"`
	MediaType   MediaType   `json:"media_type,omitempty"`
}

// Clone returns a copy that shares no memory with p.
func (p Product) Clone() Product {
	p.Features = slices.Clone(p.Features)
	return p
}

// Validate checks the fields the admin editor refuses to save without.
func (p Product) Validate() error {
	switch {
	case p.ID == "":
		return ErrEmptyID
	case p.Title == "":
		return ErrMissingTitle
	case p.Description == "":
		return ErrMissingDesc
	case p.Price == "":
		return ErrMissingPrice
	}
	if p.Type != "" && p.Type != ProductTypeTimeline && p.Type != ProductTypeDevelopment {
		return ErrInvalidType
	}
	if p.MediaType != "" && p.MediaType != MediaTypeImage && p.MediaType != MediaTypeVideo {
		return ErrInvalidMediaType
	}
	return nil
}

// NormalizeProduct fills the defaults the editor applies before saving: the
// timeline layout and a media type inferred from the media URL.
func NormalizeProduct(p Product) Product {
	if p.Type == "" {
		p.Type = ProductTypeTimeline
	}
	if p.MediaURL != "" && p.MediaType == "" {
		p.MediaType = DetectMediaType(p.MediaURL)
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	return p
}
