package notificationapp

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/allo/restaurant/internal/dal/rabbitmq"
	"github.com/allo/restaurant/internal/otel"
	"github.com/allo/restaurant/internal/service/services/notificationsvc"
	"github.com/allo/restaurant/internal/transport/consumer"
)

// App represents the notification service application.
type App struct {
	notificationSvc *notificationsvc.NotificationService
	consumerTransp  *consumer.Consumer
	rabbitMqClient  *rabbitmq.Client
	otelController  *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel("notification-svc")
	rabbitMqClient := rabbitmq.MustNewClient()

	notificationSvc := notificationsvc.MustNewNotificationService()
	consumerTransp := consumer.NewConsumer(rabbitMqClient, notificationSvc)

	return &App{
		notificationSvc: notificationSvc,
		consumerTransp:  consumerTransp,
		rabbitMqClient:  rabbitMqClient,
		otelController:  otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		slog.Info("Starting consumer")
		if err := a.consumerTransp.Run(ctx); err != nil {
			slog.Error("Consumer error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")
	cancel()

	if err := a.consumerTransp.Shutdown(); err != nil {
		slog.Error("Consumer shutdown error", "error", err)
	}

	if err := a.rabbitMqClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Otel trace provider close error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
