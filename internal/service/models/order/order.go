package order

import (
	"errors"
	"time"

	"github.com/allo/restaurant/internal/service/models/customer"
	"github.com/allo/restaurant/internal/service/models/orderitem"
	"github.com/allo/restaurant/internal/service/models/orderstatus"
	"github.com/shopspring/decimal"
)

// Order is the aggregate root: an order with its items is saved and loaded as
// a unit. TotalAmount is derived at creation and never recomputed on status
// updates.
type Order struct {
	ID          string                `json:"id"`
	Customer    customer.Customer     `json:"customer"`
	OrderItems  []orderitem.OrderItem `json:"orderItems"`
	TotalAmount decimal.Decimal       `json:"totalAmount"`
	Status      orderstatus.Status    `json:"status"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   *time.Time            `json:"updatedAt,omitempty"`
}

var ErrNotFound = errors.New("order not found")
