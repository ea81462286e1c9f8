package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	cartsvc "pizza-storefront/internal/service/cart"
)

type addItemRequest struct {
	ProductID  int64           `json:"productId" binding:"required"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Size       string          `json:"size"`
	Crust      string          `json:"crust"`
	Extras     []string        `json:"extras"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid cart item")
		return
	}
	n, err := h.deps.CartSvc.AddItem(c.Request.Context(), identity(c).SessionID(), cartsvc.AddItemInput{
		ProductID:  req.ProductID,
		Name:       req.Name,
		Price:      req.Price,
		Size:       req.Size,
		Crust:      req.Crust,
		Extras:     req.Extras,
		TotalPrice: req.TotalPrice,
	})
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "cartCount": n})
}

func (h *handlers) getCart(c *gin.Context) {
	cart, err := h.deps.CartSvc.Get(c.Request.Context(), identity(c).SessionID())
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

func (h *handlers) removeCartItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		badRequest(c, "invalid item index")
		return
	}
	session := identity(c).SessionID()
	if err := h.deps.CartSvc.RemoveItem(c.Request.Context(), session, index); err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	cart, err := h.deps.CartSvc.Get(c.Request.Context(), session)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}
