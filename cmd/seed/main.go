package main

import (
	"context"
	"log"
	"os"

	"pizza-storefront/internal/auth"
	"pizza-storefront/internal/config"
	"pizza-storefront/internal/db"
	productrepo "pizza-storefront/internal/repository/product"
	userrepo "pizza-storefront/internal/repository/user"
	"pizza-storefront/internal/seed"
	accountsvc "pizza-storefront/internal/service/account"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, db.Options{MaxConns: 2}, logger)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	accounts := accountsvc.New(userrepo.NewPostgres(pool, logger), auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL), logger)
	admin := seed.Admin{Username: cfg.AdminUsername, Password: cfg.AdminPassword}

	if err := seed.Apply(ctx, productrepo.NewPostgres(pool, logger), accounts, admin, logger); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Println("seed applied")
}
