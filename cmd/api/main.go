package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/minimart/shop-api/internal/catalog"
	"github.com/minimart/shop-api/internal/config"
	"github.com/minimart/shop-api/internal/httpx"
	"github.com/minimart/shop-api/internal/postgres"
	"github.com/minimart/shop-api/internal/web"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("db connect")
	}
	defer db.Close()

	// schema must exist before the first request
	if err := postgres.CreateSchema(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("create schema")
	}

	pages, err := web.New(cfg.TemplatesDir, cfg.StaticDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("load templates")
	}

	router := httpx.NewRouter(logger)
	ph := &httpx.ProductsHandler{Store: &catalog.ProductRepo{DB: db}, Logger: logger}
	ph.Register(router)
	ch := &httpx.CartHandler{Store: &catalog.CartRepo{DB: db}, Logger: logger}
	ch.Register(router)
	pages.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("HTTP listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info().Msg("shutting down")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
}
