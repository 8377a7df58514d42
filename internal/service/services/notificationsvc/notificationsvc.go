package notificationsvc

import (
	"context"
	"log/slog"

	"github.com/allo/restaurant/internal/service/models/notification"
)

// NotificationService delivers customer notifications for order status
// changes. Actual delivery is simulated with a log line.
type NotificationService struct{}

// MustNewNotificationService creates a new NotificationService.
func MustNewNotificationService() *NotificationService {
	return &NotificationService{}
}

// ProcessStatusChange handles one consumed status change notification.
func (s *NotificationService) ProcessStatusChange(
	_ context.Context,
	msg notification.OrderStatusNotification,
) error {
	slog.Info("Order status notification received",
		"order_id", msg.OrderID,
		"customer", msg.FullName,
		"address", msg.Address,
		"email", msg.Email,
		"status", msg.Status,
	)
	slog.Info("Simulating notification sent to customer", "customer", msg.FullName, "email", msg.Email)

	return nil
}
