package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elevate-backend/internal/domain"
)

func TestSeedCollectionSizes(t *testing.T) {
	c := Content()

	assert.Len(t, c.Products, 3)
	assert.Len(t, c.BlogPosts, 4)
	assert.Len(t, c.Partners, 8)
	assert.Len(t, c.Testimonials, 3)
	assert.Len(t, c.Industries, 8)
	assert.Len(t, c.TeamMembers, 2)
}

func TestSeedEntitiesAreValid(t *testing.T) {
	c := Content()

	for _, p := range c.Products {
		require.NoError(t, p.Validate(), p.ID)
		assert.Len(t, p.Features, 4, p.ID)
		assert.Equal(t, domain.ProductTypeTimeline, p.Type)
	}
	for _, b := range c.BlogPosts {
		require.NoError(t, b.Validate(), b.ID)
		assert.NotEmpty(t, b.Slug)
	}
	for _, p := range c.Partners {
		require.NoError(t, p.Validate())
	}
	for _, i := range c.Industries {
		require.NoError(t, i.Validate())
	}
	for _, m := range c.TeamMembers {
		require.NoError(t, m.Validate())
		assert.True(t, m.IsFounder)
	}
}

func TestSeedReturnsFreshCopies(t *testing.T) {
	first := Products()
	first[0].Features[0] = "mutated"
	first[0].Title = "mutated"

	second := Products()
	assert.Equal(t, "Mapeo de Procesos", second[0].Features[0])
	assert.Equal(t, "Auditoría Estratégica", second[0].Title)
}

func TestIndustryNames(t *testing.T) {
	assert.Equal(t, IndustryNames(), domain.IndustryNames(Industries()))
	assert.Equal(t, "Finanzas", Industries()[0].Name)
	assert.Equal(t, "1", Industries()[0].ID)
}
