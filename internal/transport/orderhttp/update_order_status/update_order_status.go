package updateorderstatus

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/allo/restaurant/internal/service/models/order"
	"github.com/allo/restaurant/internal/service/models/orderstatus"
	"github.com/allo/restaurant/internal/transport/orderhttp/converters"
	"github.com/go-chi/chi/v5"
)

// service is an interface for the service layer.
type service interface {
	UpdateOrderStatus(ctx context.Context, orderID string, newStatus orderstatus.Status) (order.Order, error)
}

// UpdateOrderStatus handles the patch order status request.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, service service) {
	orderID := chi.URLParam(r, "orderId")

	var req converters.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for update order status", "error", err)

		return
	}

	newStatus, err := converters.UpdateOrderStatusRequestToModel(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Invalid update order status request", "error", err)

		return
	}

	updated, err := service.UpdateOrderStatus(r.Context(), orderID, newStatus)
	if err != nil {
		http.Error(w, err.Error(), converters.ErrorStatus(err))
		slog.Error("Error updating order status", "order_id", orderID, "error", err)

		return
	}

	response := converters.UpdateOrderStatusResponse{
		ID:        updated.ID,
		Status:    updated.Status.String(),
		UpdatedAt: updated.UpdatedAt,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("Error writing response for update order status", "error", err)
	}
}
