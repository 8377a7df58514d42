package converters

import (
	"errors"
	"net/http"
	"time"

	"github.com/allo/restaurant/internal/service/models/customer"
	"github.com/allo/restaurant/internal/service/models/menuitem"
	"github.com/allo/restaurant/internal/service/models/order"
	"github.com/allo/restaurant/internal/service/models/orderstatus"
	"github.com/allo/restaurant/internal/service/services/ordersvc"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// CustomerRequest carries customer contact fields of a create request.
type CustomerRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Address  string `json:"address" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// OrderItemRequest is one requested line of a create request.
type OrderItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderRequest is the create order payload.
type CreateOrderRequest struct {
	Customer   CustomerRequest    `json:"customer" validate:"required"`
	OrderItems []OrderItemRequest `json:"orderItems" validate:"required,min=1,dive"`
}

// UpdateOrderStatusRequest is the patch status payload.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderItemResponse mirrors one order line in responses.
type OrderItemResponse struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderResponse mirrors a full order aggregate in responses.
type OrderResponse struct {
	ID          string              `json:"id"`
	Customer    CustomerRequest     `json:"customer"`
	OrderItems  []OrderItemResponse `json:"orderItems"`
	TotalAmount decimal.Decimal     `json:"totalAmount"`
	Status      string              `json:"status"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   *time.Time          `json:"updatedAt,omitempty"`
}

// UpdateOrderStatusResponse is the patch status reply.
type UpdateOrderStatusResponse struct {
	ID        string     `json:"id"`
	Status    string     `json:"status"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// OrderHistoryResponse is the paginated list reply with the requested window
// echoed back.
type OrderHistoryResponse struct {
	Orders       []OrderResponse `json:"orders"`
	Limit        int             `json:"limit"`
	Offset       int             `json:"offset"`
	TotalRecords int64           `json:"totalRecords"`
}

// CreateOrderRequestToModels validates the payload and converts it to service
// layer models.
func CreateOrderRequestToModels(req *CreateOrderRequest) (customer.Customer, []ordersvc.LineItemRequest, error) {
	if err := validate.Struct(req); err != nil {
		return customer.Customer{}, nil, err
	}

	cust := customer.Customer{
		FullName: req.Customer.FullName,
		Address:  req.Customer.Address,
		Email:    req.Customer.Email,
	}

	lines := make([]ordersvc.LineItemRequest, len(req.OrderItems))
	for i, item := range req.OrderItems {
		lines[i] = ordersvc.LineItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	return cust, lines, nil
}

// UpdateOrderStatusRequestToModel validates the payload and parses the status.
func UpdateOrderStatusRequestToModel(req *UpdateOrderStatusRequest) (orderstatus.Status, error) {
	if err := validate.Struct(req); err != nil {
		return "", err
	}

	return orderstatus.ParseStatus(req.Status)
}

// OrderToResponse converts the internal Order model to its response shape.
func OrderToResponse(o order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.OrderItems))
	for i, item := range o.OrderItems {
		items[i] = OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	return OrderResponse{
		ID: o.ID,
		Customer: CustomerRequest{
			FullName: o.Customer.FullName,
			Address:  o.Customer.Address,
			Email:    o.Customer.Email,
		},
		OrderItems:  items,
		TotalAmount: o.TotalAmount,
		Status:      o.Status.String(),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// OrderHistoryToResponse assembles the list reply.
func OrderHistoryToResponse(orders []order.Order, limit, offset int, total int64) OrderHistoryResponse {
	responses := make([]OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = OrderToResponse(o)
	}

	return OrderHistoryResponse{
		Orders:       responses,
		Limit:        limit,
		Offset:       offset,
		TotalRecords: total,
	}
}

// ErrorStatus maps service errors to HTTP status codes: a definitive
// not-found and a degraded dependency must be distinguishable by callers.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, order.ErrNotFound), errors.Is(err, menuitem.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, menuitem.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, orderstatus.ErrInvalidStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
