package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"github.com/fjod/go_storefront/internal/cache"
	"github.com/fjod/go_storefront/internal/cart"
	"github.com/fjod/go_storefront/internal/catalog"
	"github.com/fjod/go_storefront/internal/checkout"
	"github.com/fjod/go_storefront/internal/payment"
	h "github.com/fjod/go_storefront/internal/http"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/config.toml", "path to config file")
	flag.Parse()

	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Sprintf("read config failed: %v", err))
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	requestTimeout := 30 * time.Second
	shutdownTimeout := 10 * time.Second

	// The payment client refuses to start without a publishable key. There
	// is no degraded mode for payments.
	paymentClient, err := payment.NewClient(payment.Config{
		BaseURL:        viper.GetString("payment.base_url"),
		PublishableKey: viper.GetString("payment.publishable_key"),
		Timeout:        requestTimeout,
	})
	if err != nil {
		slog.Error("payment client init failed", "error", err)
		os.Exit(1)
	}

	catalogClient := catalog.NewClient(
		viper.GetString("graphql.endpoint"),
		viper.GetInt("graphql.page_size"),
		requestTimeout,
	)

	// Redis is optional; without it the catalog is fetched on every request.
	var catalogCache cache.CatalogCache = cache.Noop{}
	if addr := viper.GetString("redis.addr"); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			slog.Warn("redis unavailable, catalog caching disabled", "addr", addr, "error", err)
		} else {
			catalogCache = cache.NewRedisCache(rdb)
		}
	}

	catalogService := catalog.NewService(catalogClient, catalogCache)

	cartStore := cart.NewStore()
	checkoutFlow := checkout.NewService(cartStore, paymentClient)

	catalogHandler := h.NewCatalogHandler(catalogService, requestTimeout)
	cartHandler := h.NewCartHandler(cartStore, checkoutFlow)
	checkoutHandler := h.NewCheckoutHandler(checkoutFlow)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", catalogHandler.Get)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
			r.Delete("/items/{index}", cartHandler.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", checkoutHandler.Status)
			r.Post("/", checkoutHandler.Proceed)
			r.Post("/payment", checkoutHandler.Submit)
		})
	})

	port := viper.GetString("http.port")
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("storefront starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited")
}
