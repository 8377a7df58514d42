package menuitem

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem is a dish in the catalog. The menu service owns it; the order
// service only reads it through the menu gateway.
type MenuItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
}

var (
	// ErrNotFound means the catalog definitively reports the id as unknown.
	// It is a business outcome, never an availability fault.
	ErrNotFound = errors.New("menu item not found")

	// ErrUnavailable means the menu service could not be reached: retries
	// exhausted or the circuit breaker is open.
	ErrUnavailable = errors.New("menu service is currently unavailable")
)
