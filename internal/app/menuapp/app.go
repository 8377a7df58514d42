package menuapp

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/allo/restaurant/internal/dal/postgres"
	menuitemrepo "github.com/allo/restaurant/internal/dal/repositories/menuitem/postgres"
	"github.com/allo/restaurant/internal/otel"
	"github.com/allo/restaurant/internal/service/services/menusvc"
	"github.com/allo/restaurant/internal/transport/menuhttp"
)

// App represents the menu service application.
type App struct {
	menuSvc        *menusvc.MenuItemService
	transport      *menuhttp.HTTPTransport
	postgresClient *postgres.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel("menu-svc")
	postgresClient := postgres.MustNewClient()

	menuSvc := menusvc.MustNewMenuItemService(
		menusvc.WithMenuItemRepository(
			menuitemrepo.NewPostgresMenuItemRepository(postgresClient.Pool()),
		),
	)

	transport := menuhttp.NewHTTPTransport(menuSvc)
	transport.RegisterRoutes()

	return &App{
		menuSvc:        menuSvc,
		transport:      transport,
		postgresClient: postgresClient,
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Otel trace provider close error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
