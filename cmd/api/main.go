package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"electroshop/internal/config"
	"electroshop/internal/db"
	"electroshop/internal/httpserver"
	addressrepo "electroshop/internal/repository/address"
	cartrepo "electroshop/internal/repository/cart"
	orderrepo "electroshop/internal/repository/order"
	productrepo "electroshop/internal/repository/product"
	sessionrepo "electroshop/internal/repository/session"
	cartsvc "electroshop/internal/service/cart"
	ordersvc "electroshop/internal/service/order"
	productsvc "electroshop/internal/service/product"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	productRepo := productrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	addressRepo := addressrepo.NewPostgres(dbpool)
	sessionRepo := sessionrepo.NewPostgres(dbpool)

	cartService := cartsvc.New(cartRepo, productRepo)
	orderService := ordersvc.New(orderRepo, cartRepo, addressRepo)
	productService := productsvc.New(productRepo, cartRepo, cartService, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Sessions:   sessionRepo,
		CartSvc:    cartService,
		OrderSvc:   orderService,
		ProductSvc: productService,
		AddressSvc: addressRepo,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
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
