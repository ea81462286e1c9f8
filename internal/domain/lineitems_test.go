package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems() []LineItem {
	return []LineItem{
		{ProductID: 1, Name: "Margherita Classic", BasePrice: decimal.RequireFromString("12.99"), Size: "Large", Crust: "Thin", Extras: []string{}, TotalPrice: decimal.RequireFromString("15.99")},
		{ProductID: 2, Name: "Pepperoni Feast", BasePrice: decimal.RequireFromString("15.99"), Size: "Medium", Crust: "Classic", Extras: []string{"Olives"}, TotalPrice: decimal.RequireFromString("17.49")},
	}
}

func TestEncodeDecodeLineItems(t *testing.T) {
	raw, err := EncodeLineItems(sampleItems())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"productId":1`)
	assert.Contains(t, string(raw), `"totalPrice":15.99`)

	items, err := DecodeLineItems(7, raw)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Pepperoni Feast", items[1].Name)
	assert.Equal(t, []string{"Olives"}, items[1].Extras)
	assert.True(t, items[0].TotalPrice.Equal(decimal.RequireFromString("15.99")))
}

func TestEncodeLineItems_NilIsEmptyArray(t *testing.T) {
	raw, err := EncodeLineItems(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestDecodeLineItems_Malformed(t *testing.T) {
	for name, raw := range map[string][]byte{
		"absent":    nil,
		"null":      []byte("null"),
		"truncated": []byte(`[{"productId":1,`),
		"object":    []byte(`{"productId":1}`),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeLineItems(3, raw)
			var decodeErr *ItemsDecodeError
			require.True(t, errors.As(err, &decodeErr))
			assert.Equal(t, int64(3), decodeErr.OrderID)
		})
	}
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "Large Margherita Classic, Medium Pepperoni Feast", Summary(sampleItems()))
	assert.Equal(t, "", Summary(nil))
}

func TestCart_SnapshotIsDetached(t *testing.T) {
	c := Cart{Items: sampleItems()}
	snap := c.Snapshot()

	c.Items[1].Extras[0] = "Jalapeno"
	c.Items[0].Name = "Changed"
	c.Items = append(c.Items, LineItem{Name: "Extra"})

	require.Len(t, snap, 2)
	assert.Equal(t, "Margherita Classic", snap[0].Name)
	assert.Equal(t, []string{"Olives"}, snap[1].Extras)
}

func TestCart_Total(t *testing.T) {
	c := Cart{Items: sampleItems()}
	assert.True(t, c.Total().Equal(decimal.RequireFromString("33.48")))
	assert.True(t, Cart{}.Total().IsZero())
}
