package menuhttp

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const (
	defaultLimit  = 10
	defaultOffset = 0
)

func (h *HTTPTransport) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var req createMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)

		return
	}

	item, err := req.toModel()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	created, err := h.service.CreateMenuItem(r.Context(), item)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		slog.Error("Error creating menu item", "error", err)

		return
	}

	writeJSON(w, http.StatusCreated, toResponse(created))
}

func (h *HTTPTransport) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)

		return
	}

	item, err := req.toModel(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	updated, err := h.service.UpdateMenuItem(r.Context(), item)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		slog.Error("Error updating menu item", "menu_item_id", id, "error", err)

		return
	}

	writeJSON(w, http.StatusOK, toResponse(updated))
}

func (h *HTTPTransport) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteMenuItem(r.Context(), id); err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		slog.Error("Error deleting menu item", "menu_item_id", id, "error", err)

		return
	}

	writeJSON(w, http.StatusOK, deleteMenuItemResponse{
		Message: "Menu item deleted successfully",
		ID:      id,
	})
}

func (h *HTTPTransport) getMenuItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, err := h.service.GetMenuItemByID(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))

		return
	}

	writeJSON(w, http.StatusOK, toResponse(item))
}

func (h *HTTPTransport) listMenuItems(w http.ResponseWriter, r *http.Request) {
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

	items, total, err := h.service.GetMenuItems(r.Context(), limit, offset)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		slog.Error("Error listing menu items", "error", err)

		return
	}

	responses := make([]menuItemResponse, len(items))
	for i, item := range items {
		responses[i] = toResponse(item)
	}

	writeJSON(w, http.StatusOK, menuItemListResponse{
		Items:        responses,
		TotalRecords: total,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Error writing response", "error", err)
	}
}
