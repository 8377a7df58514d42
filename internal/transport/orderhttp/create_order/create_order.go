package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/allo/restaurant/internal/service/models/customer"
	"github.com/allo/restaurant/internal/service/models/order"
	"github.com/allo/restaurant/internal/service/services/ordersvc"
	"github.com/allo/restaurant/internal/transport/orderhttp/converters"
)

// service is an interface for the service layer.
type service interface {
	CreateOrder(ctx context.Context, cust customer.Customer, lines []ordersvc.LineItemRequest) (order.Order, error)
}

// CreateOrder handles the create order request.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	var req converters.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for create order", "error", err)

		return
	}

	cust, lines, err := converters.CreateOrderRequestToModels(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Invalid create order request", "error", err)

		return
	}

	created, err := service.CreateOrder(r.Context(), cust, lines)
	if err != nil {
		http.Error(w, err.Error(), converters.ErrorStatus(err))
		slog.Error("Error creating order", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(converters.OrderToResponse(created)); err != nil {
		slog.Error("Error writing response for create order", "error", err)
	}
}
