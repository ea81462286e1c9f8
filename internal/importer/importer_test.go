package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-storefront/internal/domain"
)

type stubProductRepo struct {
	items []domain.Product
}

func (s *stubProductRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.items = append(s.items, p)
	return &p, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `name,price,category,image
Margherita Classic,12.99,Veg,p1.jpg
,,,
"Mexican Green Wave", 15.50 ,Veg (Spicy)
Cheese Burst,13.99,Veg,p8.jpg`

	repo := &stubProductRepo{}
	count, err := NewCSVImporter(strings.NewReader(csvData), repo).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	require.Len(t, repo.items, 3)

	assert.Equal(t, "Margherita Classic", repo.items[0].Name)
	assert.Equal(t, "12.99", repo.items[0].Price.StringFixed(2))
	assert.Equal(t, "p1.jpg", repo.items[0].Image)

	assert.Equal(t, "Veg (Spicy)", repo.items[1].Category)
	assert.Equal(t, "15.50", repo.items[1].Price.StringFixed(2))
	assert.Empty(t, repo.items[1].Image)
}

func TestCSVImporter_InvalidRows(t *testing.T) {
	cases := map[string]string{
		"missing price column": "name,category\nMargherita,Veg",
		"bad price":            "name,price\nMargherita,cheap",
		"negative price":       "name,price\nMargherita,-1",
		"missing name":         "name,price\n,12.99",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			repo := &stubProductRepo{}
			_, err := NewCSVImporter(strings.NewReader(data), repo).Run(context.Background())
			assert.Error(t, err)
			assert.Empty(t, repo.items)
		})
	}
}

func TestCSVImporter_StopsAtFirstBadRow(t *testing.T) {
	data := "name,price\nMargherita,12.99\nPepperoni,oops\nCheese Burst,13.99"
	repo := &stubProductRepo{}
	count, err := NewCSVImporter(strings.NewReader(data), repo).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
	assert.Equal(t, 1, count)
}
