package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/logger"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/remote"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/nikolayk812/storefront/internal/web"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	log, err := logger.New(logger.Options{Service: "storefront", Env: cfg.AppEnv, Level: cfg.LogLevel})
	if err != nil {
		return fmt.Errorf("logger.New: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := web.NewServer(
		remote.NewProductClient(cfg.ProductsURL, cfg.HTTPClientTimeout),
		remote.NewRateClient(cfg.RatesURL, cfg.HTTPClientTimeout),
		store,
		log,
	)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http starting", zap.String("addr", httpServer.Addr), zap.String("cart_store", cfg.CartStore))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer.ListenAndServe: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")

		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(stopCtx); err != nil {
			log.Warn("graceful stop timeout, forcing close", zap.Error(err))
			return httpServer.Close()
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped", zap.Error(err))
		return err
	}

	log.Info("bye")
	return nil
}

// openStore builds the cart backend named by CART_STORE and returns its cleanup.
func openStore(ctx context.Context, cfg config.Config, log *zap.Logger) (port.CartStore, func(), error) {
	switch cfg.CartStore {
	case config.StorePostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("pgxpool.New: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("pool.Ping: %w", err)
		}
		return repository.NewCart(pool, log), pool.Close, nil

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("client.Ping: %w", err)
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				log.Warn("redis close", zap.Error(err))
			}
		}
		return repository.NewRedisCart(client, cfg.CartTTL, log), closeFn, nil

	default:
		return repository.NewMemoryCart(log), func() {}, nil
	}
}
