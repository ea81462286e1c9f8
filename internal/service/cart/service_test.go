package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-storefront/internal/domain"
	"pizza-storefront/internal/pricing"
	cartrepo "pizza-storefront/internal/repository/cart"
)

type stubCatalog struct {
	products map[int64]domain.Product
}

func (s stubCatalog) Get(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

type failingStore struct {
	cartrepo.Store
	err error
}

func (f failingStore) Append(context.Context, string, domain.LineItem) (int, error) {
	return 0, f.err
}

func (f failingStore) Get(context.Context, string) (domain.Cart, error) {
	return domain.Cart{}, f.err
}

func newService() *Service {
	catalog := stubCatalog{products: map[int64]domain.Product{
		1: {ID: 1, Name: "Margherita Classic", Price: decimal.RequireFromString("12.99")},
		2: {ID: 2, Name: "Pepperoni Feast", Price: decimal.RequireFromString("15.99")},
	}}
	return New(cartrepo.NewMemory(time.Hour), catalog, pricing.DefaultTable(), nil)
}

func TestAddItem_RequiresSession(t *testing.T) {
	_, err := newService().AddItem(context.Background(), "", AddItemInput{ProductID: 1})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAddItem_RepricesFromCatalog(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	n, err := svc.AddItem(ctx, "7", AddItemInput{
		ProductID:  1,
		Name:       "Free Pizza",
		Price:      decimal.Zero,
		Size:       "Large",
		Crust:      "thin",
		Extras:     []string{"Olives"},
		TotalPrice: decimal.RequireFromString("0.01"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	c, err := svc.Get(ctx, "7")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	got := c.Items[0]
	assert.Equal(t, "Margherita Classic", got.Name)
	assert.Equal(t, "Thin", got.Crust)
	assert.Equal(t, "12.99", got.BasePrice.StringFixed(2))
	assert.Equal(t, "17.99", got.TotalPrice.StringFixed(2))
}

func TestAddItem_Rejects(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "7", AddItemInput{ProductID: 99})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.AddItem(ctx, "7", AddItemInput{ProductID: 1, Size: "Gigantic"})
	assert.ErrorIs(t, err, domain.ErrInvalidOption)

	c, err := svc.Get(ctx, "7")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestAddThenRemove(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "7", AddItemInput{ProductID: 1, Size: "Small"})
	require.NoError(t, err)
	n, err := svc.AddItem(ctx, "7", AddItemInput{ProductID: 2, Size: "Medium"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, svc.RemoveItem(ctx, "7", 0))
	require.NoError(t, svc.RemoveItem(ctx, "7", 3))

	c, err := svc.Get(ctx, "7")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "Pepperoni Feast", c.Items[0].Name)

	assert.ErrorIs(t, svc.RemoveItem(ctx, "", 0), domain.ErrUnauthenticated)
}

func TestGetAndClear_NoSession(t *testing.T) {
	svc := newService()
	c, err := svc.Get(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
	assert.NoError(t, svc.Clear(context.Background(), ""))
}

func TestStoreErrorsPropagate(t *testing.T) {
	boom := errors.New("redis down")
	svc := New(failingStore{err: boom}, stubCatalog{products: map[int64]domain.Product{1: {ID: 1, Price: decimal.NewFromInt(5)}}}, pricing.DefaultTable(), nil)

	_, err := svc.AddItem(context.Background(), "7", AddItemInput{ProductID: 1})
	assert.ErrorIs(t, err, boom)

	_, err = svc.Get(context.Background(), "7")
	assert.ErrorIs(t, err, boom)
}
