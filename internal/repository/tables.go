package repository

import "elevate-backend/internal/domain"

// Remote table names.
const (
	TableProducts        = "products"
	TableProductFeatures = "product_features"
	TableBlogPosts       = "blog_posts"
	TablePartners        = "partners"
	TableTestimonials    = "testimonials"
	TableIndustries      = "industries"
	TableTeamMembers     = "team_members"
)

// Shared columns.
const (
	ColumnID        = "id"
	ColumnCreatedAt = "created_at"
)

// Product feature columns.
const (
	ColumnProductID    = "product_id"
	ColumnFeatureText  = "feature_text"
	ColumnDisplayOrder = "display_order"
)

// TableFor returns the remote table backing kind.
func TableFor(kind domain.Kind) string {
	switch kind {
	case domain.KindProduct:
		return TableProducts
	case domain.KindBlogPost:
		return TableBlogPosts
	case domain.KindPartner:
		return TablePartners
	case domain.KindTestimonial:
		return TableTestimonials
	case domain.KindIndustry:
		return TableIndustries
	case domain.KindTeamMember:
		return TableTeamMembers
	}
	return string(kind)
}

// LoadOptions returns the select options used to bulk-load a content table.
// Rows come back in insertion order.
func LoadOptions() SelectOptions {
	return SelectOptions{OrderBy: ColumnCreatedAt}
}

// FeatureOptions selects the ordered feature rows of one product.
func FeatureOptions(productID string) SelectOptions {
	return SelectOptions{
		OrderBy: ColumnDisplayOrder,
		Filters: Where(ColumnProductID, productID),
	}
}

// Columns lists the columns each table carries besides created_at. Drivers
// that manage their own schema use it; mappers emit exactly these keys.
var Columns = map[string][]string{
	TableProducts:        {"id", "title", "description", "price", "type", "image_url", "calendly_url", "media_url", "media_type"},
	TableProductFeatures: {ColumnProductID, ColumnFeatureText, ColumnDisplayOrder},
	TableBlogPosts:       {"id", "title", "excerpt", "image", "date", "read_time", "category", "slug"},
	TablePartners:        {"id", "name", "logo_url"},
	TableTestimonials:    {"id", "quote", "author", "role", "company", "industry"},
	TableIndustries:      {"id", "name"},
	TableTeamMembers:     {"id", "name", "role", "bio", "is_founder", "image_url"},
}
