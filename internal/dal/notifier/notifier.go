package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/allo/restaurant/internal/dal/rabbitmq"
	"github.com/allo/restaurant/internal/service/models/notification"
	"github.com/spf13/viper"
)

// Notifier publishes order status notifications to RabbitMQ. Delivery is
// best-effort: at most once, not coupled to the status write.
type Notifier struct {
	client     *rabbitmq.Client
	exchange   string
	routingKey string
}

// MustNewNotifier creates a Notifier and declares the exchange, queue and
// binding it publishes through.
func MustNewNotifier(client *rabbitmq.Client) *Notifier {
	exchange := viper.GetString("rabbitmq.exchange")
	routingKey := viper.GetString("rabbitmq.routing_key")
	queueName := viper.GetString("rabbitmq.queue")
	if exchange == "" || routingKey == "" || queueName == "" {
		panic("rabbitmq.exchange, rabbitmq.routing_key and rabbitmq.queue must be set in config")
	}

	if err := client.DeclareExchange(rabbitmq.DeclareExchangeConfig{
		Name:    exchange,
		Kind:    "topic",
		Durable: true,
	}); err != nil {
		panic(err)
	}

	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    queueName,
		Durable: true,
	})
	if err != nil {
		panic(err)
	}

	if err := client.BindQueue(queue.Name, routingKey, exchange); err != nil {
		panic(err)
	}

	return &Notifier{
		client:     client,
		exchange:   exchange,
		routingKey: routingKey,
	}
}

// PublishStatusChange sends one notification per successful status transition.
func (n *Notifier) PublishStatusChange(
	_ context.Context,
	msg notification.OrderStatusNotification,
) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	slog.Info("Publishing order status change", "order_id", msg.OrderID, "status", msg.Status)

	if err := n.client.Publish(n.exchange, n.routingKey, "application/json", payload); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	return nil
}
