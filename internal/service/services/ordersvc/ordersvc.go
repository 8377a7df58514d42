package ordersvc

import (
	"context"
	"log/slog"
	"time"

	"github.com/allo/restaurant/internal/dal/interfaces/iorderitemrepo"
	"github.com/allo/restaurant/internal/dal/interfaces/iorderrepo"
	"github.com/allo/restaurant/internal/dal/postgres"
	"github.com/allo/restaurant/internal/dal/uow"
	"github.com/allo/restaurant/internal/service/models/customer"
	"github.com/allo/restaurant/internal/service/models/menuitem"
	"github.com/allo/restaurant/internal/service/models/notification"
	"github.com/allo/restaurant/internal/service/models/order"
	"github.com/allo/restaurant/internal/service/models/orderstatus"
	"github.com/allo/restaurant/internal/service/pagination"
	"go.opentelemetry.io/otel"
)

// OrderService composes the menu gateway, the store adapters and the status
// notifier into the order use cases.
type OrderService struct {
	newUOW      func() unitOfWork
	menuGateway menuGateway
	publisher   statusPublisher
}

// menuGateway resolves catalog items for order lines.
type menuGateway interface {
	GetMenuItemByID(ctx context.Context, id string) (menuitem.MenuItem, error)
}

// statusPublisher emits one event per successful status transition.
type statusPublisher interface {
	PublishStatusChange(ctx context.Context, msg notification.OrderStatusNotification) error
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
}

// LineItemRequest is one requested order line before catalog resolution.
type LineItemRequest struct {
	ProductID string
	Quantity  int
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

// WithMenuGateway sets the menu gateway for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithMenuGateway(gateway menuGateway) option {
	return func(s *OrderService) {
		s.menuGateway = gateway
	}
}

// WithStatusPublisher sets the status notifier for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithStatusPublisher(publisher statusPublisher) option {
	return func(s *OrderService) {
		s.publisher = publisher
	}
}

// CreateOrder resolves every requested line against the catalog, prices the
// aggregate and persists it atomically. The first resolution failure aborts
// the whole order; nothing is persisted.
func (s *OrderService) CreateOrder(
	ctx context.Context,
	cust customer.Customer,
	lines []LineItemRequest,
) (order.Order, error) {
	ctx, span := otel.Tracer("order-svc").Start(ctx, "OrderService.CreateOrder")
	defer span.End()

	o, err := s.buildOrder(ctx, cust, lines)
	if err != nil {
		return order.Order{}, err
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return order.Order{}, err
	}
	defer func() {
		_ = work.Rollback(ctx)
	}()

	saved, err := work.OrderRepository().Insert(ctx, o)
	if err != nil {
		return order.Order{}, err
	}

	if err := work.OrderItemRepository().BulkInsert(ctx, saved.ID, o.OrderItems); err != nil {
		return order.Order{}, err
	}

	if err := work.Commit(ctx); err != nil {
		return order.Order{}, err
	}

	saved.OrderItems = o.OrderItems

	return saved, nil
}

// UpdateOrderStatus applies a status transition and notifies subscribers.
// Any status may follow any status; no transition graph is enforced.
func (s *OrderService) UpdateOrderStatus(
	ctx context.Context,
	orderID string,
	newStatus orderstatus.Status,
) (order.Order, error) {
	ctx, span := otel.Tracer("order-svc").Start(ctx, "OrderService.UpdateOrderStatus")
	defer span.End()

	repo := s.newUOW().OrderRepository()

	o, err := repo.FindByID(ctx, orderID)
	if err != nil {
		return order.Order{}, err
	}

	now := time.Now()
	o.Status = newStatus
	o.UpdatedAt = &now

	if err := repo.UpdateStatus(ctx, *o); err != nil {
		return order.Order{}, err
	}

	// Best-effort publication: a failed send is logged but never rolls back
	// the persisted status change.
	msg := notification.OrderStatusNotification{
		OrderID:  o.ID,
		FullName: o.Customer.FullName,
		Address:  o.Customer.Address,
		Email:    o.Customer.Email,
		Status:   o.Status,
	}
	if err := s.publisher.PublishStatusChange(ctx, msg); err != nil {
		slog.Error("Failed to publish order status change", "order_id", o.ID, "error", err)
	}

	return *o, nil
}

// GetOrderHistory lists orders by (limit, offset) over the page-number store.
// Items are hydrated only for the returned slice.
func (s *OrderService) GetOrderHistory(
	ctx context.Context,
	limit, offset int,
) ([]order.Order, int64, error) {
	work := s.newUOW()

	orders, total, err := pagination.List(ctx, limit, offset, work.OrderRepository().FindPage)
	if err != nil {
		return nil, 0, err
	}

	if err := s.attachItems(ctx, work.OrderItemRepository(), orders); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// GetOrderByID retrieves a full order aggregate.
func (s *OrderService) GetOrderByID(ctx context.Context, orderID string) (order.Order, error) {
	work := s.newUOW()

	o, err := work.OrderRepository().FindByID(ctx, orderID)
	if err != nil {
		return order.Order{}, err
	}

	orders := []order.Order{*o}
	if err := s.attachItems(ctx, work.OrderItemRepository(), orders); err != nil {
		return order.Order{}, err
	}

	return orders[0], nil
}

func (s *OrderService) attachItems(
	ctx context.Context,
	itemRepo iorderitemrepo.IOrderItemRepository,
	orders []order.Order,
) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}

	itemsByOrder, err := itemRepo.QueryByOrderIDs(ctx, ids)
	if err != nil {
		return err
	}

	for i := range orders {
		orders[i].OrderItems = itemsByOrder[orders[i].ID]
	}

	return nil
}
