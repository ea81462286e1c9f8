package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *handlers) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "username and password are required")
		return
	}
	u, err := h.deps.AccountSvc.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"user":     toUserResponse(*u),
		"message":  "Account created! Login to order.",
		"redirect": "/login",
	})
}

func (h *handlers) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "username and password are required")
		return
	}
	u, token, err := h.deps.AccountSvc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	redirect := "/menu"
	if u.IsAdmin() {
		redirect = "/admin/orders"
	}
	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"user":     toUserResponse(*u),
		"redirect": redirect,
	})
}

// logout ends the session; tokens are stateless so only the cart is dropped.
func (h *handlers) logout(c *gin.Context) {
	if err := h.deps.CartSvc.Clear(c.Request.Context(), identity(c).SessionID()); err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out", "redirect": "/login"})
}
