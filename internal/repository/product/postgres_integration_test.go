//go:build integration

package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-storefront/internal/domain"
	"pizza-storefront/internal/testdb"
)

func TestPostgres_UpsertListGet(t *testing.T) {
	ctx := context.Background()
	repo := NewPostgres(testdb.Pool(t), nil)

	created, err := repo.Upsert(ctx, domain.Product{Name: "Margherita Classic", Price: decimal.RequireFromString("12.99"), Category: "Veg"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	updated, err := repo.Upsert(ctx, domain.Product{Name: "Margherita Classic", Price: decimal.RequireFromString("13.49"), Category: "Veg", Image: "m.jpg"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "13.49", list[0].Price.StringFixed(2))
	assert.Equal(t, "m.jpg", list[0].Image)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Margherita Classic", got.Name)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
