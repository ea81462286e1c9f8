package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"pizza-storefront/internal/domain"
)

type CreateOrderInput struct {
	UserID        int64
	TotalAmount   decimal.Decimal
	Items         []byte
	CreatedAt     time.Time
	CheckoutToken string
}

type Repository interface {
	// Create inserts a Pending order. A reused checkout token yields domain.ErrDuplicateCheckout.
	Create(ctx context.Context, in CreateOrderInput) (*domain.OrderRecord, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.OrderRecord, error)
	// ListAll joins every order with its owner's username.
	ListAll(ctx context.Context) ([]domain.OrderRecord, error)
	// UpdateStatus sets status only when the current one is in from. It returns
	// domain.ErrNotFound for a missing order and domain.ErrInvalidTransition
	// when the order exists in some other state.
	UpdateStatus(ctx context.Context, id int64, status domain.Status, from []domain.Status) error
}
