package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/servicedesk-proxy/internal/api/http"
	"github.com/spec-kit/servicedesk-proxy/internal/api/http/handlers"
	"github.com/spec-kit/servicedesk-proxy/internal/config"
	"github.com/spec-kit/servicedesk-proxy/internal/observability"
	"github.com/spec-kit/servicedesk-proxy/internal/service"
	"github.com/spec-kit/servicedesk-proxy/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()
	connectClient := upstream.NewClient(cfg.Upstream, logger, metrics)
	dashboardService := service.NewDashboardService(connectClient, cfg.Upstream.PageLimit, logger)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.CORS, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(connectClient),
		Analytics: handlers.NewAnalyticsHandler(dashboardService),
		Tickets:   handlers.NewTicketsHandler(dashboardService),
		Metrics:   handlers.NewMetricsHandler(dashboardService),
		Proxy:     handlers.NewProxyHandler(dashboardService),
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
