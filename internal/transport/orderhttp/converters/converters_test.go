package converters

import (
	"errors"
	"net/http"
	"testing"

	"github.com/allo/restaurant/internal/service/models/menuitem"
	"github.com/allo/restaurant/internal/service/models/order"
	"github.com/allo/restaurant/internal/service/models/orderstatus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() *CreateOrderRequest {
	return &CreateOrderRequest{
		Customer: CustomerRequest{
			FullName: "Jamie Fox",
			Address:  "12 Baker Street",
			Email:    "jamie@example.com",
		},
		OrderItems: []OrderItemRequest{
			{ProductID: "pizza-1", Quantity: 2},
		},
	}
}

func TestCreateOrderRequestToModels(t *testing.T) {
	cust, lines, err := CreateOrderRequestToModels(validCreateRequest())

	require.NoError(t, err)
	assert.Equal(t, "Jamie Fox", cust.FullName)
	require.Len(t, lines, 1)
	assert.Equal(t, "pizza-1", lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestCreateOrderRequestToModels_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateOrderRequest)
	}{
		{"missing email", func(r *CreateOrderRequest) { r.Customer.Email = "" }},
		{"malformed email", func(r *CreateOrderRequest) { r.Customer.Email = "not-an-email" }},
		{"no items", func(r *CreateOrderRequest) { r.OrderItems = nil }},
		{"zero quantity", func(r *CreateOrderRequest) { r.OrderItems[0].Quantity = 0 }},
		{"negative quantity", func(r *CreateOrderRequest) { r.OrderItems[0].Quantity = -1 }},
		{"empty product id", func(r *CreateOrderRequest) { r.OrderItems[0].ProductID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)

			_, _, err := CreateOrderRequestToModels(req)
			assert.Error(t, err)
		})
	}
}

func TestUpdateOrderStatusRequestToModel(t *testing.T) {
	status, err := UpdateOrderStatusRequestToModel(&UpdateOrderStatusRequest{Status: "CONFIRMED"})

	require.NoError(t, err)
	assert.Equal(t, orderstatus.StatusConfirmed, status)

	_, err = UpdateOrderStatusRequestToModel(&UpdateOrderStatusRequest{Status: "SHIPPED"})
	assert.ErrorIs(t, err, orderstatus.ErrInvalidStatus)
}

func TestErrorStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, ErrorStatus(order.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, ErrorStatus(menuitem.ErrNotFound))
	assert.Equal(t, http.StatusServiceUnavailable, ErrorStatus(menuitem.ErrUnavailable))
	assert.Equal(t, http.StatusBadRequest, ErrorStatus(orderstatus.ErrInvalidStatus))
	assert.Equal(t, http.StatusInternalServerError, ErrorStatus(errors.New("boom")))
}
