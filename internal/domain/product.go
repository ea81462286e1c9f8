package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a menu entry. Prices are authoritative and used to reprice cart lines.
type Product struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	Image     string          `json:"image,omitempty"`
	CreatedAt time.Time       `json:"-"`
}
