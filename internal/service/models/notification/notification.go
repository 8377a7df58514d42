package notification

import (
	"github.com/allo/restaurant/internal/service/models/orderstatus"
)

// OrderStatusNotification is the event published once per successful status
// transition. It carries the customer snapshot so consumers need no lookup.
type OrderStatusNotification struct {
	OrderID  string             `json:"orderId"`
	FullName string             `json:"fullName"`
	Address  string             `json:"address"`
	Email    string             `json:"email"`
	Status   orderstatus.Status `json:"status"`
}
