package repository

import (
	"sort"

	"elevate-backend/internal/domain"
)

// The mappers below are pure and total: any row maps to an entity, missing
// optional columns become empty values, and optional empty values are written
// back as NULL.

func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// ============================================================================
// PRODUCTS
// ============================================================================

// ProductFromRow maps a products row. Features are attached separately from
// the product_features child table.
func ProductFromRow(r Row) domain.Product {
	p := domain.Product{
		ID:          r.String("id"),
		Title:       r.String("title"),
		Description: r.String("description"),
		Price:       r.String("price"),
		Features:    []string{},
		Type:        domain.ProductType(r.String("type")),
		ImageURL:    r.String("image_url"),
		CalendlyURL: r.String("calendly_url"),
		MediaURL:    r.String("media_url"),
		MediaType:   domain.MediaType(r.String("media_type")),
	}
	if p.Type == "" {
		p.Type = domain.ProductTypeTimeline
	}
	return p
}

// ProductToRow maps a product to its products row, without features.
func ProductToRow(p domain.Product) Row {
	productType := p.Type
	if productType == "" {
		productType = domain.ProductTypeTimeline
	}
	return Row{
		"id":           p.ID,
		"title":        p.Title,
		"description":  p.Description,
		"price":        p.Price,
		"type":         string(productType),
		"image_url":    optional(p.ImageURL),
		"calendly_url": optional(p.CalendlyURL),
		"media_url":    optional(p.MediaURL),
		"media_type":   optional(string(p.MediaType)),
	}
}

// FeatureRows expands features into child rows numbered 0..N-1.
func FeatureRows(productID string, features []string) []Row {
	rows := make([]Row, len(features))
	for i, text := range features {
		rows[i] = Row{
			ColumnProductID:    productID,
			ColumnFeatureText:  text,
			ColumnDisplayOrder: i,
		}
	}
	return rows
}

// FeaturesFromRows sorts child rows by display_order and projects their text.
// The sort is stable so rows sharing an order keep the store's order.
func FeaturesFromRows(rows []Row) []string {
	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Int(ColumnDisplayOrder) < sorted[j].Int(ColumnDisplayOrder)
	})

	features := make([]string, len(sorted))
	for i, r := range sorted {
		features[i] = r.String(ColumnFeatureText)
	}
	return features
}

// ============================================================================
// BLOG POSTS
// ============================================================================

func BlogPostFromRow(r Row) domain.BlogPost {
	return domain.BlogPost{
		ID:       r.String("id"),
		Title:    r.String("title"),
		Excerpt:  r.String("excerpt"),
		Image:    r.String("image"),
		Date:     r.String("date"),
		ReadTime: r.String("read_time"),
		Category: r.String("category"),
		Slug:     r.String("slug"),
	}
}

func BlogPostToRow(b domain.BlogPost) Row {
	return Row{
		"id":        b.ID,
		"title":     b.Title,
		"excerpt":   b.Excerpt,
		"image":     b.Image,
		"date":      b.Date,
		"read_time": b.ReadTime,
		"category":  b.Category,
		"slug":      b.Slug,
	}
}

// ============================================================================
// PARTNERS, TESTIMONIALS, INDUSTRIES, TEAM
// ============================================================================

func PartnerFromRow(r Row) domain.Partner {
	return domain.Partner{
		ID:      r.String("id"),
		Name:    r.String("name"),
		LogoURL: r.String("logo_url"),
	}
}

func PartnerToRow(p domain.Partner) Row {
	return Row{
		"id":       p.ID,
		"name":     p.Name,
		"logo_url": optional(p.LogoURL),
	}
}

func TestimonialFromRow(r Row) domain.Testimonial {
	return domain.Testimonial{
		ID:       r.String("id"),
		Quote:    r.String("quote"),
		Author:   r.String("author"),
		Role:     r.String("role"),
		Company:  r.String("company"),
		Industry: r.String("industry"),
	}
}

func TestimonialToRow(t domain.Testimonial) Row {
	return Row{
		"id":       t.ID,
		"quote":    t.Quote,
		"author":   t.Author,
		"role":     t.Role,
		"company":  t.Company,
		"industry": t.Industry,
	}
}

func IndustryFromRow(r Row) domain.Industry {
	return domain.Industry{
		ID:   r.String("id"),
		Name: r.String("name"),
	}
}

func IndustryToRow(i domain.Industry) Row {
	return Row{
		"id":   i.ID,
		"name": i.Name,
	}
}

func TeamMemberFromRow(r Row) domain.TeamMember {
	return domain.TeamMember{
		ID:        r.String("id"),
		Name:      r.String("name"),
		Role:      r.String("role"),
		Bio:       r.String("bio"),
		IsFounder: r.Bool("is_founder"),
		ImageURL:  r.String("image_url"),
	}
}

func TeamMemberToRow(m domain.TeamMember) Row {
	return Row{
		"id":         m.ID,
		"name":       m.Name,
		"role":       m.Role,
		"bio":        m.Bio,
		"is_founder": m.IsFounder,
		"image_url":  optional(m.ImageURL),
	}
}
