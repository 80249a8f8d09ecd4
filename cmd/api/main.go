package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/mcp-cau/glpi-gateway/internal/api/http"
	"github.com/mcp-cau/glpi-gateway/internal/api/http/handlers"
	"github.com/mcp-cau/glpi-gateway/internal/config"
	"github.com/mcp-cau/glpi-gateway/internal/domain"
	"github.com/mcp-cau/glpi-gateway/internal/glpi"
	"github.com/mcp-cau/glpi-gateway/internal/observability"
	"github.com/mcp-cau/glpi-gateway/internal/service"
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

	if !cfg.GLPI.Configured() {
		logger.Warn("GLPI não configurado; operações falharão até GLPI_URL/GLPI_APP_TOKEN/GLPI_USER_TOKEN serem definidos")
	}

	metrics := observability.NewMetrics()
	client := glpi.NewClient(cfg.GLPI, logger, metrics)
	mapper := domain.NewMapper(logger)

	ticketService := service.NewTicketService(client, mapper, logger)
	authService := service.NewAuthService(client, logger)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, cfg.GLPI, ticketService),
		Users:   handlers.NewUsersHandler(ticketService),
		Tickets: handlers.NewTicketsHandler(ticketService),
		Auth:    handlers.NewAuthHandler(authService),
	})

	go func() {
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
