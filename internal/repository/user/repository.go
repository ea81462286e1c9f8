package user

import (
	"context"

	"pizza-storefront/internal/domain"
)

type Repository interface {
	// Create inserts an account; a taken username yields domain.ErrDuplicateUsername.
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
