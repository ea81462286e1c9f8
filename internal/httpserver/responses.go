package httpserver

import (
	"time"

	"github.com/shopspring/decimal"

	"pizza-storefront/internal/domain"
)

type orderResponse struct {
	ID          int64             `json:"id"`
	UserID      int64             `json:"userId"`
	TotalAmount decimal.Decimal   `json:"totalAmount"`
	Status      domain.Status     `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	Date        string            `json:"date"`
	Items       []domain.LineItem `json:"items"`
}

type adminOrderResponse struct {
	orderResponse
	Username string `json:"username"`
	Summary  string `json:"summary"`
}

type cartResponse struct {
	Items         []domain.LineItem `json:"items"`
	Count         int               `json:"count"`
	Total         decimal.Decimal   `json:"total"`
	CheckoutToken string            `json:"checkoutToken,omitempty"`
}

type userResponse struct {
	ID       int64       `json:"id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

func toOrderResponse(o domain.Order) orderResponse {
	items := o.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	return orderResponse{
		ID:          o.ID,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount,
		Status:      o.Status,
		CreatedAt:   o.CreatedAt,
		Date:        o.Date(),
		Items:       items,
	}
}

func toAdminOrderResponse(o domain.AdminOrder) adminOrderResponse {
	return adminOrderResponse{
		orderResponse: toOrderResponse(o.Order),
		Username:      o.Username,
		Summary:       o.Summary,
	}
}

func toCartResponse(c domain.Cart) cartResponse {
	items := c.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	return cartResponse{
		Items:         items,
		Count:         len(items),
		Total:         c.Total(),
		CheckoutToken: c.Token,
	}
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Role: u.Role}
}
