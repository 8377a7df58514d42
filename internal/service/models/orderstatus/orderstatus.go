package orderstatus

import (
	"database/sql/driver"
	"errors"
)

type Status string

const (
	StatusCreated        Status = "CREATED"
	StatusConfirmed      Status = "CONFIRMED"
	StatusPreparing      Status = "PREPARING"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusDelivered      Status = "DELIVERED"
	StatusCancelled      Status = "CANCELLED"
)

var ErrInvalidStatus = errors.New("invalid order status")

func (s Status) String() string {
	return string(s)
}

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

// ParseStatus validates a raw status value. Any valid status may follow any
// other: the transition graph is deliberately not enforced here.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusCreated, StatusConfirmed, StatusPreparing,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
