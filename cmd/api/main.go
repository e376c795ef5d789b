package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yusufhadi/smartpos-backend/api/routes"
	"github.com/yusufhadi/smartpos-backend/internal/resolver"
	"github.com/yusufhadi/smartpos-backend/internal/terminal"
	"github.com/yusufhadi/smartpos-backend/pkg/config"
	"github.com/yusufhadi/smartpos-backend/pkg/gemini"
	"github.com/yusufhadi/smartpos-backend/pkg/logger"
	"github.com/yusufhadi/smartpos-backend/pkg/metrics"
	"github.com/yusufhadi/smartpos-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, checkout replay guard disabled")
	}

	geminiClient, err := gemini.NewClient(
		context.Background(),
		cfg.Gemini.APIKey,
		cfg.Gemini.Retailer,
		cfg.Receipt.Currency,
		gemini.WithModel(cfg.Gemini.Model),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap gemini client", err)
		os.Exit(1)
	}

	resolverService, err := resolver.NewService(geminiClient, cfg.Receipt.Currency, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create resolver", err)
		os.Exit(1)
	}

	registry, err := terminal.NewRegistry(terminal.Params{
		Resolver:   resolverService,
		TaxRate:    cfg.Receipt.TaxRate,
		Currency:   cfg.Receipt.Currency,
		Timeout:    cfg.Gemini.Timeout,
		SessionTTL: cfg.Terminal.SessionTTL,
		Metrics:    metrics.NewResolutionMetrics(prometheus.DefaultRegisterer),
		Logger:     logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create terminal registry", err)
		os.Exit(1)
	}
	registry.StartJanitor(cfg.Terminal.JanitorInterval)
	defer registry.Shutdown()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, redisClient, registry),
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-stopCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "server shutdown failed", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
}
