package listorders

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/allo/restaurant/internal/service/models/order"
	"github.com/allo/restaurant/internal/transport/orderhttp/converters"
)

const (
	defaultLimit  = 10
	defaultOffset = 0
)

// service is an interface for the service layer.
type service interface {
	GetOrderHistory(ctx context.Context, limit, offset int) ([]order.Order, int64, error)
}

// ListOrders handles the paginated order history request.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	query := r.URL.Query()

	limit := defaultLimit
	if limitStr := query.Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)

			return
		}
		limit = parsed
	}

	offset := defaultOffset
	if offsetStr := query.Get("offset"); offsetStr != "" {
		parsed, err := strconv.Atoi(offsetStr)
		if err != nil || parsed < 0 {
			http.Error(w, "offset must be a non-negative integer", http.StatusBadRequest)

			return
		}
		offset = parsed
	}

	orders, total, err := service.GetOrderHistory(r.Context(), limit, offset)
	if err != nil {
		http.Error(w, err.Error(), converters.ErrorStatus(err))
		slog.Error("Error getting order history", "error", err)

		return
	}

	response := converters.OrderHistoryToResponse(orders, limit, offset, total)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("Error writing response for list orders", "error", err)
	}
}
