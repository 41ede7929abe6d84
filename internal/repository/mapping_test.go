package repository_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elevate-backend/internal/domain"
	appErrors "elevate-backend/internal/errors"
	"elevate-backend/internal/repository"
)

func keys(r repository.Row) []string {
	out := make([]string, 0, len(r))
	for k := range r {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sorted(cols []string) []string {
	out := append([]string(nil), cols...)
	sort.Strings(out)
	return out
}

func TestMappersEmitTableColumns(t *testing.T) {
	tests := []struct {
		table string
		row   repository.Row
	}{
		{repository.TableProducts, repository.ProductToRow(domain.Product{ID: "p"})},
		{repository.TableBlogPosts, repository.BlogPostToRow(domain.BlogPost{ID: "b"})},
		{repository.TablePartners, repository.PartnerToRow(domain.Partner{ID: "pa"})},
		{repository.TableTestimonials, repository.TestimonialToRow(domain.Testimonial{ID: "t"})},
		{repository.TableIndustries, repository.IndustryToRow(domain.Industry{ID: "i"})},
		{repository.TableTeamMembers, repository.TeamMemberToRow(domain.TeamMember{ID: "m"})},
		{repository.TableProductFeatures, repository.FeatureRows("p", []string{"x"})[0]},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			assert.Equal(t, sorted(repository.Columns[tt.table]), keys(tt.row))
		})
	}
}

func TestMappersRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		entity  any
		row     repository.Row
		toRow   func(any) repository.Row
		fromRow func(repository.Row) any
	}{
		{
			name: "product",
			entity: domain.Product{
				ID: "audit", Title: "Auditoría", Description: "Revisión", Price: "Consultar",
				Features: []string{}, Type: domain.ProductTypeDevelopment,
				ImageURL: "https://cdn.test/a.png", MediaURL: "https://cdn.test/a.mp4", MediaType: domain.MediaTypeVideo,
			},
			row: repository.Row{
				"id": "audit", "title": "Auditoría", "description": "Revisión", "price": "Consultar",
				"type": "timeline", "image_url": nil, "calendly_url": "https://calendly.test/x",
				"media_url": nil, "media_type": nil,
			},
			toRow:   func(e any) repository.Row { return repository.ProductToRow(e.(domain.Product)) },
			fromRow: func(r repository.Row) any { return repository.ProductFromRow(r) },
		},
		{
			name: "blog post",
			entity: domain.BlogPost{
				ID: "1", Title: "Liderazgo", Excerpt: "Resumen", Image: "https://cdn.test/b.jpg",
				Date: "2024-03-01", ReadTime: "5 min", Category: "Cultura", Slug: "liderazgo",
			},
			row: repository.Row{
				"id": "2", "title": "Equipos", "excerpt": "", "image": "", "date": "2024-04-02",
				"read_time": "12 min", "category": "Gestión", "slug": "equipos",
			},
			toRow:   func(e any) repository.Row { return repository.BlogPostToRow(e.(domain.BlogPost)) },
			fromRow: func(r repository.Row) any { return repository.BlogPostFromRow(r) },
		},
		{
			name:    "partner with logo",
			entity:  domain.Partner{ID: "1", Name: "ACME", LogoURL: "https://cdn.test/acme.svg"},
			row:     repository.Row{"id": "1", "name": "ACME", "logo_url": "https://cdn.test/acme.svg"},
			toRow:   func(e any) repository.Row { return repository.PartnerToRow(e.(domain.Partner)) },
			fromRow: func(r repository.Row) any { return repository.PartnerFromRow(r) },
		},
		{
			name:    "partner without logo",
			entity:  domain.Partner{ID: "2", Name: "GLOBEX"},
			row:     repository.Row{"id": "2", "name": "GLOBEX", "logo_url": nil},
			toRow:   func(e any) repository.Row { return repository.PartnerToRow(e.(domain.Partner)) },
			fromRow: func(r repository.Row) any { return repository.PartnerFromRow(r) },
		},
		{
			name: "testimonial",
			entity: domain.Testimonial{
				ID: "1", Quote: "Excelente", Author: "Ana", Role: "CEO", Company: "ACME", Industry: "RETAIL",
			},
			row: repository.Row{
				"id": "2", "quote": "Muy útil", "author": "Luis", "role": "", "company": "", "industry": "BANCA",
			},
			toRow:   func(e any) repository.Row { return repository.TestimonialToRow(e.(domain.Testimonial)) },
			fromRow: func(r repository.Row) any { return repository.TestimonialFromRow(r) },
		},
		{
			name:    "industry",
			entity:  domain.Industry{ID: "1", Name: "RETAIL"},
			row:     repository.Row{"id": "2", "name": "BANCA"},
			toRow:   func(e any) repository.Row { return repository.IndustryToRow(e.(domain.Industry)) },
			fromRow: func(r repository.Row) any { return repository.IndustryFromRow(r) },
		},
		{
			name: "team member",
			entity: domain.TeamMember{
				ID: "1", Name: "Marta", Role: "Fundadora", Bio: "Bio", IsFounder: true, ImageURL: "https://cdn.test/m.jpg",
			},
			row: repository.Row{
				"id": "2", "name": "Jorge", "role": "Consultor", "bio": "", "is_founder": false, "image_url": nil,
			},
			toRow:   func(e any) repository.Row { return repository.TeamMemberToRow(e.(domain.TeamMember)) },
			fromRow: func(r repository.Row) any { return repository.TeamMemberFromRow(r) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.entity, tt.fromRow(tt.toRow(tt.entity)), "entity -> row -> entity")
			assert.Equal(t, tt.row, tt.toRow(tt.fromRow(tt.row)), "row -> entity -> row")
		})
	}
}

func TestProductMapping(t *testing.T) {
	t.Run("defaults on read", func(t *testing.T) {
		p := repository.ProductFromRow(repository.Row{
			"id":    "audit",
			"title": "Auditoría",
			"price": nil,
		})
		assert.Equal(t, "audit", p.ID)
		assert.Equal(t, "", p.Price)
		assert.Equal(t, domain.ProductTypeTimeline, p.Type)
		assert.NotNil(t, p.Features)
		assert.Empty(t, p.Features)
	})

	t.Run("empty optionals written as null", func(t *testing.T) {
		row := repository.ProductToRow(domain.Product{ID: "p", Title: "T"})
		assert.Nil(t, row["image_url"])
		assert.Nil(t, row["calendly_url"])
		assert.Nil(t, row["media_url"])
		assert.Nil(t, row["media_type"])
		assert.Equal(t, string(domain.ProductTypeTimeline), row["type"])
	})

	t.Run("round trip without features", func(t *testing.T) {
		in := domain.Product{
			ID:          "dev",
			Title:       "Desarrollo",
			Description: "Software a medida",
			Price:       "Consultar",
			Features:    []string{},
			Type:        domain.ProductTypeDevelopment,
			ImageURL:    "https://cdn.test/a.png",
			MediaURL:    "https://cdn.test/v.mp4",
			MediaType:   domain.MediaTypeVideo,
		}
		assert.Equal(t, in, repository.ProductFromRow(repository.ProductToRow(in)))
	})
}

func TestFeatureRows(t *testing.T) {
	rows := repository.FeatureRows("audit", []string{"A", "B", "C"})
	require.Len(t, rows, 3)
	for i, r := range rows {
		assert.Equal(t, "audit", r.String(repository.ColumnProductID))
		assert.Equal(t, i, r.Int(repository.ColumnDisplayOrder))
	}

	t.Run("sorted by display order", func(t *testing.T) {
		shuffled := []repository.Row{rows[2], rows[0], rows[1]}
		assert.Equal(t, []string{"A", "B", "C"}, repository.FeaturesFromRows(shuffled))
	})

	t.Run("json numbers", func(t *testing.T) {
		got := repository.FeaturesFromRows([]repository.Row{
			{repository.ColumnFeatureText: "second", repository.ColumnDisplayOrder: float64(1)},
			{repository.ColumnFeatureText: "first", repository.ColumnDisplayOrder: float64(0)},
		})
		assert.Equal(t, []string{"first", "second"}, got)
	})

	t.Run("ties keep store order", func(t *testing.T) {
		got := repository.FeaturesFromRows([]repository.Row{
			{repository.ColumnFeatureText: "x", repository.ColumnDisplayOrder: 0},
			{repository.ColumnFeatureText: "y", repository.ColumnDisplayOrder: 0},
		})
		assert.Equal(t, []string{"x", "y"}, got)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, repository.FeatureRows("p", nil))
		assert.Equal(t, []string{}, repository.FeaturesFromRows(nil))
	})
}

func TestTeamMemberMapping(t *testing.T) {
	in := domain.TeamMember{ID: "team-1", Name: "Ana", Role: "CEO", Bio: "Bio", IsFounder: true}
	row := repository.TeamMemberToRow(in)
	assert.Nil(t, row["image_url"])
	assert.Equal(t, in, repository.TeamMemberFromRow(row))
}

func TestRowAccessors(t *testing.T) {
	t.Run("bool", func(t *testing.T) {
		tests := []struct {
			value any
			want  bool
		}{
			{true, true},
			{false, false},
			{int64(1), true},
			{int64(0), false},
			{1, true},
			{float64(1), true},
			{"true", true},
			{"t", true},
			{"1", true},
			{"false", false},
			{[]byte("t"), true},
			{nil, false},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.want, repository.Row{"v": tt.value}.Bool("v"), "%#v", tt.value)
		}
	})

	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "x", repository.Row{"v": "x"}.String("v"))
		assert.Equal(t, "x", repository.Row{"v": []byte("x")}.String("v"))
		assert.Equal(t, "", repository.Row{"v": nil}.String("v"))
		assert.Equal(t, "", repository.Row{}.String("v"))
		assert.Equal(t, "", repository.Row{"v": 3}.String("v"))
	})

	t.Run("int", func(t *testing.T) {
		assert.Equal(t, 3, repository.Row{"v": 3}.Int("v"))
		assert.Equal(t, 3, repository.Row{"v": int32(3)}.Int("v"))
		assert.Equal(t, 3, repository.Row{"v": int64(3)}.Int("v"))
		assert.Equal(t, 3, repository.Row{"v": float64(3)}.Int("v"))
		assert.Equal(t, 0, repository.Row{"v": "3"}.Int("v"))
	})
}

func TestTableFor(t *testing.T) {
	assert.Equal(t, repository.TableProducts, repository.TableFor(domain.KindProduct))
	assert.Equal(t, repository.TableBlogPosts, repository.TableFor(domain.KindBlogPost))
	assert.Equal(t, repository.TablePartners, repository.TableFor(domain.KindPartner))
	assert.Equal(t, repository.TableTestimonials, repository.TableFor(domain.KindTestimonial))
	assert.Equal(t, repository.TableIndustries, repository.TableFor(domain.KindIndustry))
	assert.Equal(t, repository.TableTeamMembers, repository.TableFor(domain.KindTeamMember))
}

func TestAvailable(t *testing.T) {
	assert.False(t, repository.Available(nil))
	assert.True(t, appErrors.IsUnavailable(repository.ErrUnavailable()))
}
