package httpserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pizza-storefront/internal/domain"
	accountsvc "pizza-storefront/internal/service/account"
)

type errorResponse struct {
	Error    string `json:"error"`
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

type errorMapping struct {
	target   error
	status   int
	code     string
	message  string
	redirect string
}

var errorMappings = []errorMapping{
	{domain.ErrUnauthenticated, http.StatusUnauthorized, "Unauthenticated", "Please log in to continue", "/login"},
	{domain.ErrForbidden, http.StatusForbidden, "Forbidden", "Admin access required", "/login"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "InvalidCredentials", "Invalid Credentials", ""},
	{domain.ErrDuplicateUsername, http.StatusConflict, "DuplicateUsername", "Username already exists", ""},
	{domain.ErrEmptyCart, http.StatusBadRequest, "EmptyCart", "Your cart is empty", "/menu"},
	{domain.ErrDuplicateCheckout, http.StatusConflict, "DuplicateCheckout", "This order has already been placed", "/orders/mine"},
	{domain.ErrStaleCart, http.StatusConflict, "StaleCart", "Your cart changed, please review it", "/cart"},
	{domain.ErrTotalMismatch, http.StatusUnprocessableEntity, "TotalMismatch", "Cart total has changed, please review your cart", "/cart"},
	{domain.ErrInvalidOption, http.StatusBadRequest, "InvalidOption", "That option is not on the menu", ""},
	{domain.ErrInvalidStatus, http.StatusBadRequest, "InvalidStatus", "Unknown order status", ""},
	{domain.ErrInvalidTransition, http.StatusConflict, "InvalidTransition", "Order cannot move to that status", ""},
	{domain.ErrNotFound, http.StatusNotFound, "NotFound", "Not found", ""},
	{accountsvc.ErrInvalidInput, http.StatusBadRequest, "InvalidInput", "", ""},
}

func errorFor(err error) (int, errorResponse) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			msg := m.message
			if msg == "" {
				msg = err.Error()
			}
			return m.status, errorResponse{Error: m.code, Message: msg, Redirect: m.redirect}
		}
	}
	return http.StatusInternalServerError, errorResponse{Error: "Internal", Message: "Something went wrong, please try again"}
}

func abortWithError(c *gin.Context, logger *log.Logger, err error) {
	status, body := errorFor(err)
	if status == http.StatusInternalServerError {
		logger.Printf("http: %s %s error=%v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, body)
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "BadRequest", Message: message})
}
