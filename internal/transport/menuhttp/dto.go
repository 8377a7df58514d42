package menuhttp

import (
	"errors"
	"net/http"
	"time"

	"github.com/allo/restaurant/internal/service/models/menuitem"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

type createMenuItemRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

type updateMenuItemRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

type menuItemResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
}

type menuItemListResponse struct {
	Items        []menuItemResponse `json:"items"`
	TotalRecords int64              `json:"totalRecords"`
}

type deleteMenuItemResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

var errInvalidPrice = errors.New("price must be greater than zero")

func (req *createMenuItemRequest) toModel() (menuitem.MenuItem, error) {
	if err := validate.Struct(req); err != nil {
		return menuitem.MenuItem{}, err
	}
	if !req.Price.IsPositive() {
		return menuitem.MenuItem{}, errInvalidPrice
	}

	return menuitem.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}, nil
}

func (req *updateMenuItemRequest) toModel(id string) (menuitem.MenuItem, error) {
	if err := validate.Struct(req); err != nil {
		return menuitem.MenuItem{}, err
	}
	if !req.Price.IsPositive() {
		return menuitem.MenuItem{}, errInvalidPrice
	}

	return menuitem.MenuItem{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}, nil
}

func toResponse(item menuitem.MenuItem) menuItemResponse {
	return menuItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func errorStatus(err error) int {
	if errors.Is(err, menuitem.ErrNotFound) {
		return http.StatusNotFound
	}

	return http.StatusInternalServerError
}
