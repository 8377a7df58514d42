package getorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/allo/restaurant/internal/service/models/order"
	"github.com/allo/restaurant/internal/transport/orderhttp/converters"
	"github.com/go-chi/chi/v5"
)

// service is an interface for the service layer.
type service interface {
	GetOrderByID(ctx context.Context, orderID string) (order.Order, error)
}

// GetOrder handles the get order by id request.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	orderID := chi.URLParam(r, "orderId")

	found, err := service.GetOrderByID(r.Context(), orderID)
	if err != nil {
		http.Error(w, err.Error(), converters.ErrorStatus(err))
		slog.Error("Error getting order", "order_id", orderID, "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(converters.OrderToResponse(found)); err != nil {
		slog.Error("Error writing response for get order", "error", err)
	}
}
