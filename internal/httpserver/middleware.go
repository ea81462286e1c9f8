package httpserver

import (
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"pizza-storefront/internal/auth"
	"pizza-storefront/internal/domain"
)

// authenticate establishes the caller's identity from a bearer token. Requests
// without a valid token continue anonymously.
func authenticate(tokens tokenParser, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.Next()
			return
		}
		id, err := tokens.Parse(strings.TrimSpace(raw))
		if err != nil {
			logger.Printf("auth: rejected token path=%s err=%v", c.Request.URL.Path, err)
			c.Next()
			return
		}
		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

func requireUser(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := auth.FromContext(c.Request.Context()); !ok {
			abortWithError(c, logger, domain.ErrUnauthenticated)
			return
		}
		c.Next()
	}
}

func requireAdmin(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := auth.FromContext(c.Request.Context())
		if !ok {
			abortWithError(c, logger, domain.ErrUnauthenticated)
			return
		}
		if !id.IsAdmin() {
			abortWithError(c, logger, domain.ErrForbidden)
			return
		}
		c.Next()
	}
}

// identity returns the caller established by authenticate. Only call it
// behind requireUser or requireAdmin.
func identity(c *gin.Context) auth.Identity {
	id, _ := auth.FromContext(c.Request.Context())
	return id
}
