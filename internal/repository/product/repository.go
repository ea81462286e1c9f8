package product

import (
	"context"

	"pizza-storefront/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	// Upsert inserts a product or updates the one with the same name.
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
	Count(ctx context.Context) (int, error)
}
