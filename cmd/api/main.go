package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"pizza-storefront/internal/auth"
	"pizza-storefront/internal/config"
	"pizza-storefront/internal/db"
	"pizza-storefront/internal/httpserver"
	"pizza-storefront/internal/metrics"
	"pizza-storefront/internal/pricing"
	cartrepo "pizza-storefront/internal/repository/cart"
	orderrepo "pizza-storefront/internal/repository/order"
	productrepo "pizza-storefront/internal/repository/product"
	userrepo "pizza-storefront/internal/repository/user"
	accountsvc "pizza-storefront/internal/service/account"
	cartsvc "pizza-storefront/internal/service/cart"
	catalogsvc "pizza-storefront/internal/service/catalog"
	ordersvc "pizza-storefront/internal/service/order"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, db.Options{MaxConns: int32(cfg.DBMaxConns)}, logger)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	cartStore, closeCarts, err := newCartStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("init cart store: %v", err)
	}
	defer closeCarts()

	m := metrics.New()
	tokens := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)

	catalogService := catalogsvc.New(productrepo.NewPostgres(dbpool, logger), logger)
	cartService := cartsvc.New(cartStore, catalogService, pricing.DefaultTable(), logger)
	orderService := ordersvc.New(orderrepo.NewPostgres(dbpool, logger), cartStore, m, logger)
	accountService := accountsvc.New(userrepo.NewPostgres(dbpool, logger), tokens, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CatalogSvc:  catalogService,
		CartSvc:     cartService,
		OrderSvc:    orderService,
		AccountSvc:  accountService,
		Tokens:      tokens,
		Metrics:     m,
		CORSOrigins: cfg.CORSOrigins,
		CartStore:   cartStore,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s cart_backend=%s", cfg.HTTPAddr, cfg.CartBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

func newCartStore(ctx context.Context, cfg config.Config, logger *log.Logger) (cartrepo.Store, func(), error) {
	switch cfg.CartBackend {
	case config.CartBackendMemory:
		return cartrepo.NewMemory(cfg.CartTTL), func() {}, nil
	case config.CartBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				logger.Printf("close redis: %v", err)
			}
		}
		return cartrepo.NewRedis(client, cfg.CartTTL, logger), closeFn, nil
	default:
		return nil, nil, errors.New("unknown CART_BACKEND " + cfg.CartBackend)
	}
}
