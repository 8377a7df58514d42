package iorderitemrepo

import (
	"context"

	"github.com/allo/restaurant/internal/service/models/orderitem"
)

// IOrderItemRepository is an interface for the order item store adapter.
type IOrderItemRepository interface {
	// BulkInsert inserts the items of one order
	BulkInsert(ctx context.Context, orderID string, items []orderitem.OrderItem) error

	// QueryByOrderIDs retrieves items of the given orders keyed by order id
	QueryByOrderIDs(ctx context.Context, orderIDs []string) (map[string][]orderitem.OrderItem, error)
}
