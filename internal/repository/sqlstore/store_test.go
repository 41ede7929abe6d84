package sqlstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"elevate-backend/internal/domain"
	appErrors "elevate-backend/internal/errors"
	"elevate-backend/internal/repository"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "content.db")
	store, err := Open(context.Background(), SQLite, dsn, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenRejectsUnknownDialect(t *testing.T) {
	_, err := Open(context.Background(), Dialect("oracle"), "x", zap.NewNop())
	assert.True(t, appErrors.IsValidation(err))
}

func TestInsertAndSelect(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	t.Run("rows come back in insertion order", func(t *testing.T) {
		for _, name := range []string{"Zeta", "Alpha", "Mid"} {
			require.NoError(t, store.Insert(ctx, repository.TablePartners,
				repository.PartnerToRow(domain.Partner{ID: name, Name: name})))
		}

		rows, err := store.Select(ctx, repository.TablePartners, repository.LoadOptions())
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "Zeta", rows[0].String("name"))
		assert.Equal(t, "Alpha", rows[1].String("name"))
		assert.Equal(t, "Mid", rows[2].String("name"))
		assert.Equal(t, "", rows[0].String("logo_url"))
	})

	t.Run("booleans round trip", func(t *testing.T) {
		require.NoError(t, store.Insert(ctx, repository.TableTeamMembers,
			repository.TeamMemberToRow(domain.TeamMember{ID: "team-1", Name: "Ana", IsFounder: true})))

		rows, err := store.Select(ctx, repository.TableTeamMembers, repository.LoadOptions())
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.True(t, repository.TeamMemberFromRow(rows[0]).IsFounder)
	})

	t.Run("duplicate id fails the whole batch", func(t *testing.T) {
		err := store.Insert(ctx, repository.TableIndustries,
			repository.Row{"id": "i1", "name": "Retail"},
			repository.Row{"id": "i1", "name": "Retail again"},
		)
		assert.True(t, appErrors.IsRemote(err))

		rows, err := store.Select(ctx, repository.TableIndustries, repository.LoadOptions())
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestProductFeatures(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	product := domain.Product{ID: "audit", Title: "Audit", Description: "d", Price: "1", Features: []string{"A", "B", "C"}}
	require.NoError(t, store.Insert(ctx, repository.TableProducts, repository.ProductToRow(product)))
	require.NoError(t, store.Insert(ctx, repository.TableProductFeatures, repository.FeatureRows(product.ID, product.Features)...))

	rows, err := store.Select(ctx, repository.TableProductFeatures, repository.FeatureOptions("audit"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, repository.FeaturesFromRows(rows))

	t.Run("replace features", func(t *testing.T) {
		require.NoError(t, store.DeleteWhere(ctx, repository.TableProductFeatures, repository.ColumnProductID, "audit"))
		require.NoError(t, store.Insert(ctx, repository.TableProductFeatures, repository.FeatureRows("audit", []string{"X"})...))

		rows, err := store.Select(ctx, repository.TableProductFeatures, repository.FeatureOptions("audit"))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "X", rows[0].String(repository.ColumnFeatureText))
		assert.Equal(t, 0, rows[0].Int(repository.ColumnDisplayOrder))
	})

	t.Run("deleting the product cascades", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, repository.TableProducts, "audit"))

		rows, err := store.Select(ctx, repository.TableProductFeatures, repository.FeatureOptions("audit"))
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Insert(ctx, repository.TableIndustries, repository.Row{"id": "i1", "name": "Retail"}))
	require.NoError(t, store.Update(ctx, repository.TableIndustries, "i1", repository.Row{"name": "Fintech"}))

	rows, err := store.Select(ctx, repository.TableIndustries, repository.SelectOptions{Filters: repository.Where("id", "i1")})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Fintech", rows[0].String("name"))

	t.Run("missing id is not an error", func(t *testing.T) {
		assert.NoError(t, store.Update(ctx, repository.TableIndustries, "nope", repository.Row{"name": "x"}))
	})
}

func TestIdentifierWhitelist(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Select(ctx, "users; DROP TABLE products", repository.SelectOptions{})
	assert.True(t, appErrors.IsValidation(err))

	err = store.Insert(ctx, repository.TablePartners, repository.Row{"id": "p", "name": "n", "admin": true})
	assert.True(t, appErrors.IsValidation(err))

	err = store.DeleteWhere(ctx, repository.TablePartners, "1=1 OR id", "x")
	assert.True(t, appErrors.IsValidation(err))
}
