package iorderrepo

import (
	"context"

	"github.com/allo/restaurant/internal/service/models/order"
)

// IOrderRepository is an interface for the order store adapter.
type IOrderRepository interface {
	// Insert persists a new order and returns it with the assigned id
	Insert(ctx context.Context, o order.Order) (order.Order, error)

	// FindByID retrieves an order by id without its items
	FindByID(ctx context.Context, id string) (*order.Order, error)

	// UpdateStatus overwrites the status and updated_at of an existing order
	UpdateStatus(ctx context.Context, o order.Order) error

	// FindPage retrieves one zero-based page of orders plus the total record count
	FindPage(ctx context.Context, pageNumber, pageSize int) ([]order.Order, int64, error)
}
