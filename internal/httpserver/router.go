package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"pizza-storefront/internal/auth"
	"pizza-storefront/internal/domain"
	"pizza-storefront/internal/metrics"
	cartsvc "pizza-storefront/internal/service/cart"
	ordersvc "pizza-storefront/internal/service/order"
)

type catalogService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
}

type cartService interface {
	AddItem(ctx context.Context, sessionID string, in cartsvc.AddItemInput) (int, error)
	RemoveItem(ctx context.Context, sessionID string, index int) error
	Get(ctx context.Context, sessionID string) (domain.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type orderService interface {
	Checkout(ctx context.Context, in ordersvc.CheckoutInput) (*domain.Order, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.AdminOrder, error)
	SetStatus(ctx context.Context, orderID int64, status string) error
}

type accountService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
}

type tokenParser interface {
	Parse(raw string) (auth.Identity, error)
}

// Deps holds the services the router dispatches to.
type Deps struct {
	CatalogSvc  catalogService
	CartSvc     cartService
	OrderSvc    orderService
	AccountSvc  accountService
	Tokens      tokenParser
	Metrics     *metrics.Metrics
	CORSOrigins []string
	// CartStore is probed by /readyz.
	CartStore   pinger
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.CatalogSvc == nil || deps.CartSvc == nil || deps.OrderSvc == nil || deps.AccountSvc == nil || deps.Tokens == nil {
		return nil, errors.New("httpserver: missing service dependency")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
	}
	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	router.Use(authenticate(deps.Tokens, logger))

	h := &handlers{deps: deps, logger: logger}

	router.GET("/healthz", healthHandler)
	var dbCheck pinger
	if db != nil {
		dbCheck = db
	}
	router.GET("/readyz", readyHandler(logger,
		readinessCheck{name: "db", dep: dbCheck},
		readinessCheck{name: "carts", dep: deps.CartStore},
	))
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	authGroup := router.Group("/auth")
	authGroup.POST("/register", h.register)
	authGroup.POST("/login", h.login)
	authGroup.POST("/logout", requireUser(logger), h.logout)

	router.GET("/menu", h.listMenu)
	router.GET("/menu/:id", h.getMenuItem)

	customer := router.Group("/", requireUser(logger))
	customer.POST("/cart/items", h.addCartItem)
	customer.GET("/cart", h.getCart)
	customer.DELETE("/cart/items/:index", h.removeCartItem)
	customer.POST("/checkout", h.checkout)
	customer.GET("/orders/mine", h.myOrders)

	admin := router.Group("/admin", requireAdmin(logger))
	admin.GET("/orders", h.allOrders)
	admin.POST("/orders/status", h.setOrderStatus)

	return router, nil
}

type handlers struct {
	deps   Deps
	logger *log.Logger
}
