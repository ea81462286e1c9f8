package cart

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-storefront/internal/domain"
)

func setupRedisStore(t *testing.T) (Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client, time.Hour, nil), mr
}

// stores runs fn against every Store implementation.
func stores(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Run("memory", func(t *testing.T) { fn(t, NewMemory(time.Hour)) })
	t.Run("redis", func(t *testing.T) {
		s, _ := setupRedisStore(t)
		fn(t, s)
	})
}

func item(id int64, name string) domain.LineItem {
	return domain.LineItem{
		ProductID:  id,
		Name:       name,
		BasePrice:  decimal.NewFromInt(10),
		Size:       "Large",
		Crust:      "Thin",
		Extras:     []string{"Olives"},
		TotalPrice: decimal.NewFromInt(11),
	}
}

func names(c domain.Cart) []string {
	out := make([]string, 0, len(c.Items))
	for _, it := range c.Items {
		out = append(out, it.Name)
	}
	return out
}

func TestStore_AppendKeepsOrder(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		for i, name := range []string{"a", "b", "c"} {
			n, err := s.Append(ctx, "u1", item(int64(i+1), name))
			require.NoError(t, err)
			assert.Equal(t, i+1, n)
		}

		c, err := s.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, names(c))
		assert.Equal(t, []string{"Olives"}, c.Items[0].Extras)
		assert.True(t, c.Items[0].TotalPrice.Equal(decimal.NewFromInt(11)))
		assert.NotEmpty(t, c.Token)
	})
}

func TestStore_GetAbsentIsEmpty(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		c, err := s.Get(context.Background(), "nobody")
		require.NoError(t, err)
		assert.Empty(t, c.Items)
		assert.Empty(t, c.Token)
	})
}

func TestStore_RemoveAt(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		_, err := s.Append(ctx, "u1", item(1, "first"))
		require.NoError(t, err)
		_, err = s.Append(ctx, "u1", item(2, "second"))
		require.NoError(t, err)

		require.NoError(t, s.RemoveAt(ctx, "u1", 0))

		c, err := s.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, []string{"second"}, names(c))
	})
}

func TestStore_RemoveOutOfRangeIsNoop(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		_, err := s.Append(ctx, "u1", item(1, "only"))
		require.NoError(t, err)
		before, err := s.Get(ctx, "u1")
		require.NoError(t, err)

		require.NoError(t, s.RemoveAt(ctx, "u1", 5))
		require.NoError(t, s.RemoveAt(ctx, "u1", -1))
		require.NoError(t, s.RemoveAt(ctx, "absent", 0))

		after, err := s.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, names(before), names(after))
		assert.Equal(t, before.Token, after.Token)
	})
}

func TestStore_TokenChangesOnMutation(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		_, err := s.Append(ctx, "u1", item(1, "a"))
		require.NoError(t, err)
		c1, _ := s.Get(ctx, "u1")

		_, err = s.Append(ctx, "u1", item(2, "b"))
		require.NoError(t, err)
		c2, _ := s.Get(ctx, "u1")

		require.NoError(t, s.RemoveAt(ctx, "u1", 1))
		c3, _ := s.Get(ctx, "u1")

		assert.NotEqual(t, c1.Token, c2.Token)
		assert.NotEqual(t, c2.Token, c3.Token)
	})
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		_, err := s.Append(ctx, "u1", item(1, "a"))
		require.NoError(t, err)
		_, err = s.Append(ctx, "u2", item(2, "b"))
		require.NoError(t, err)

		require.NoError(t, s.Clear(ctx, "u1"))
		require.NoError(t, s.Clear(ctx, "u1"))

		c, err := s.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, c.Items)

		other, err := s.Get(ctx, "u2")
		require.NoError(t, err)
		assert.Len(t, other.Items, 1)
	})
}

func TestStore_ReturnedItemsAreDetached(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		_, err := s.Append(ctx, "u1", item(1, "a"))
		require.NoError(t, err)

		c, err := s.Get(ctx, "u1")
		require.NoError(t, err)
		c.Items[0].Extras[0] = "Chicken"

		again, err := s.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, []string{"Olives"}, again.Items[0].Extras)
	})
}

func TestRedisStore_Expires(t *testing.T) {
	s, mr := setupRedisStore(t)
	ctx := context.Background()
	_, err := s.Append(ctx, "u1", item(1, "a"))
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	c, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestRedisStore_CorruptItem(t *testing.T) {
	s, mr := setupRedisStore(t)
	_, err := mr.Push(itemsKey("u1"), "{not json")
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "u1")
	assert.Error(t, err)
}

func TestMemoryStore_Expires(t *testing.T) {
	s := NewMemory(time.Minute).(*memoryStore)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	ctx := context.Background()
	_, err := s.Append(ctx, "u1", item(1, "a"))
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	c, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestRedisStore_Ping(t *testing.T) {
	s, mr := setupRedisStore(t)
	require.NoError(t, s.Ping(context.Background()))

	mr.Close()
	assert.Error(t, s.Ping(context.Background()))
}
