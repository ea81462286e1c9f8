package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the minute-precision form orders are displayed with.
const DateLayout = "2006-01-02 15:04"

// Order is a completed checkout. Items is a frozen copy of the cart.
type Order struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"userId"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Status        Status          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	Items         []LineItem      `json:"items"`
	CheckoutToken string          `json:"-"`
}

// Date renders CreatedAt at minute precision.
func (o Order) Date() string {
	return o.CreatedAt.UTC().Format(DateLayout)
}

// AdminOrder is the cross-user view of an order.
type AdminOrder struct {
	Order
	Username string `json:"username"`
	Summary  string `json:"summary"`
}

// OrderRecord is an order as stored, with its line items still encoded.
type OrderRecord struct {
	ID          int64
	UserID      int64
	Username    string
	TotalAmount decimal.Decimal
	Status      Status
	CreatedAt   time.Time
	Items       []byte
}
