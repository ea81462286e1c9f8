package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	ordersvc "pizza-storefront/internal/service/order"
)

type checkoutRequest struct {
	Total         *decimal.Decimal `json:"total"`
	CheckoutToken string           `json:"checkoutToken"`
}

type setStatusRequest struct {
	OrderID int64  `json:"orderId" binding:"required"`
	Status  string `json:"status" binding:"required"`
}

func (h *handlers) checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Total == nil {
		badRequest(c, "total is required")
		return
	}
	ctx := c.Request.Context()
	id := identity(c)

	cart, err := h.deps.CartSvc.Get(ctx, id.SessionID())
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	order, err := h.deps.OrderSvc.Checkout(ctx, ordersvc.CheckoutInput{
		UserID:       id.UserID,
		SessionID:    id.SessionID(),
		Cart:         cart,
		ClaimedTotal: *req.Total,
		Token:        req.CheckoutToken,
	})
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"orderId":  order.ID,
		"status":   order.Status,
		"message":  "Order placed successfully!",
		"redirect": "/orders/mine",
	})
}

func (h *handlers) myOrders(c *gin.Context) {
	orders, err := h.deps.OrderSvc.ListForUser(c.Request.Context(), identity(c).UserID)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	resp := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, gin.H{"orders": resp})
}

func (h *handlers) allOrders(c *gin.Context) {
	orders, err := h.deps.OrderSvc.ListAll(c.Request.Context())
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	resp := make([]adminOrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toAdminOrderResponse(o))
	}
	c.JSON(http.StatusOK, gin.H{"orders": resp})
}

func (h *handlers) setOrderStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "orderId and status are required")
		return
	}
	if err := h.deps.OrderSvc.SetStatus(c.Request.Context(), req.OrderID, req.Status); err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated", "message": "Order status updated!"})
}
