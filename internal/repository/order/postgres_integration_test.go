//go:build integration

package order

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-storefront/internal/domain"
	"pizza-storefront/internal/testdb"
)

func create(t *testing.T, repo Repository, userID int64, token string) *domain.OrderRecord {
	t.Helper()
	rec, err := repo.Create(context.Background(), CreateOrderInput{
		UserID:        userID,
		TotalAmount:   decimal.NewFromInt(349),
		Items:         []byte(`[{"productId":1,"name":"Margherita","basePrice":349,"size":"Large","crust":"Thin","extras":[],"totalPrice":349}]`),
		CreatedAt:     time.Date(2024, 5, 1, 18, 30, 0, 0, time.UTC),
		CheckoutToken: token,
	})
	require.NoError(t, err)
	return rec
}

func TestPostgres_CreateAndList(t *testing.T) {
	ctx := context.Background()
	pool := testdb.Pool(t)
	repo := NewPostgres(pool, nil)
	alice := testdb.User(t, pool, "alice", "user")
	bob := testdb.User(t, pool, "bob", "user")

	first := create(t, repo, alice, "t1")
	create(t, repo, bob, "t2")
	third := create(t, repo, alice, "t3")

	assert.Equal(t, domain.StatusPending, first.Status)
	assert.Equal(t, "349", first.TotalAmount.String())

	mine, err := repo.ListByUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, third.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)
	assert.JSONEq(t, string(first.Items), string(mine[1].Items))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "alice", all[0].Username)
	assert.Equal(t, "bob", all[1].Username)

	none, err := repo.ListByUser(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPostgres_DuplicateCheckoutToken(t *testing.T) {
	ctx := context.Background()
	pool := testdb.Pool(t)
	repo := NewPostgres(pool, nil)
	alice := testdb.User(t, pool, "alice", "user")

	create(t, repo, alice, "same")
	_, err := repo.Create(ctx, CreateOrderInput{UserID: alice, TotalAmount: decimal.NewFromInt(1), Items: []byte(`[]`), CreatedAt: time.Now(), CheckoutToken: "same"})
	assert.ErrorIs(t, err, domain.ErrDuplicateCheckout)

	orders, err := repo.ListByUser(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestPostgres_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	pool := testdb.Pool(t)
	repo := NewPostgres(pool, nil)
	alice := testdb.User(t, pool, "alice", "user")
	rec := create(t, repo, alice, "t1")

	err := repo.UpdateStatus(ctx, rec.ID, domain.StatusDelivered, domain.StatusDelivered.Predecessors())
	require.NoError(t, err)

	err = repo.UpdateStatus(ctx, rec.ID, domain.StatusPending, domain.StatusPending.Predecessors())
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	err = repo.UpdateStatus(ctx, 999, domain.StatusDelivered, domain.StatusDelivered.Predecessors())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	orders, err := repo.ListByUser(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, orders[0].Status)
}

func TestPostgres_NullItemsStillListed(t *testing.T) {
	ctx := context.Background()
	pool := testdb.Pool(t)
	repo := NewPostgres(pool, nil)
	alice := testdb.User(t, pool, "alice", "user")

	_, err := pool.Exec(ctx, `INSERT INTO orders (user_id, total_amount, created_at) VALUES ($1, 10, now())`, alice)
	require.NoError(t, err)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Nil(t, all[0].Items)
}
