package ordersvc

import (
	"context"
	"errors"
	"testing"

	"github.com/allo/restaurant/internal/dal/interfaces/iorderitemrepo"
	"github.com/allo/restaurant/internal/dal/interfaces/iorderrepo"
	"github.com/allo/restaurant/internal/service/models/customer"
	"github.com/allo/restaurant/internal/service/models/menuitem"
	"github.com/allo/restaurant/internal/service/models/notification"
	"github.com/allo/restaurant/internal/service/models/order"
	"github.com/allo/restaurant/internal/service/models/orderitem"
	"github.com/allo/restaurant/internal/service/models/orderstatus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	args := m.Called(ctx, o)

	return args.Get(0).(order.Order), args.Error(1)
}

func (m *mockOrderRepo) FindByID(ctx context.Context, id string) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, o order.Order) error {
	args := m.Called(ctx, o)

	return args.Error(0)
}

func (m *mockOrderRepo) FindPage(ctx context.Context, pageNumber, pageSize int) ([]order.Order, int64, error) {
	args := m.Called(ctx, pageNumber, pageSize)

	return args.Get(0).([]order.Order), args.Get(1).(int64), args.Error(2)
}

type mockOrderItemRepo struct {
	mock.Mock
}

func (m *mockOrderItemRepo) BulkInsert(ctx context.Context, orderID string, items []orderitem.OrderItem) error {
	args := m.Called(ctx, orderID, items)

	return args.Error(0)
}

func (m *mockOrderItemRepo) QueryByOrderIDs(ctx context.Context, orderIDs []string) (map[string][]orderitem.OrderItem, error) {
	args := m.Called(ctx, orderIDs)

	return args.Get(0).(map[string][]orderitem.OrderItem), args.Error(1)
}

type fakeUOW struct {
	orderRepo     *mockOrderRepo
	orderItemRepo *mockOrderItemRepo

	begun      bool
	committed  bool
	rolledBack bool
}

func (u *fakeUOW) Begin(_ context.Context) error {
	u.begun = true

	return nil
}

func (u *fakeUOW) Commit(_ context.Context) error {
	u.committed = true

	return nil
}

func (u *fakeUOW) Rollback(_ context.Context) error {
	u.rolledBack = true

	return nil
}

func (u *fakeUOW) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *fakeUOW) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return u.orderItemRepo
}

type mockMenuGateway struct {
	mock.Mock
}

func (m *mockMenuGateway) GetMenuItemByID(ctx context.Context, id string) (menuitem.MenuItem, error) {
	args := m.Called(ctx, id)

	return args.Get(0).(menuitem.MenuItem), args.Error(1)
}

type mockStatusPublisher struct {
	mock.Mock
}

func (m *mockStatusPublisher) PublishStatusChange(ctx context.Context, msg notification.OrderStatusNotification) error {
	args := m.Called(ctx, msg)

	return args.Error(0)
}

func newTestService(u *fakeUOW, gateway menuGateway, publisher statusPublisher) *OrderService {
	s := MustNewOrderService(
		WithMenuGateway(gateway),
		WithStatusPublisher(publisher),
	)
	s.newUOW = func() unitOfWork { return u }

	return s
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var testCustomer = customer.Customer{
	FullName: "Jamie Fox",
	Address:  "12 Baker Street",
	Email:    "jamie@example.com",
}

func TestCreateOrder(t *testing.T) {
	u := &fakeUOW{orderRepo: &mockOrderRepo{}, orderItemRepo: &mockOrderItemRepo{}}
	gateway := &mockMenuGateway{}
	svc := newTestService(u, gateway, &mockStatusPublisher{})

	gateway.On("GetMenuItemByID", mock.Anything, "pizza-1").
		Return(menuitem.MenuItem{ID: "pizza-1", Name: "Margherita", Price: price("8.90")}, nil)
	gateway.On("GetMenuItemByID", mock.Anything, "cola-1").
		Return(menuitem.MenuItem{ID: "cola-1", Name: "Cola", Price: price("2.15")}, nil)

	u.orderRepo.On("Insert", mock.Anything, mock.MatchedBy(func(o order.Order) bool {
		return o.Status == orderstatus.StatusCreated &&
			o.TotalAmount.Equal(price("24.25")) && // 2 * 8.90 + 3 * 2.15
			len(o.OrderItems) == 2
	})).Return(order.Order{ID: "order-1", Customer: testCustomer, Status: orderstatus.StatusCreated, TotalAmount: price("24.25")}, nil)
	u.orderItemRepo.On("BulkInsert", mock.Anything, "order-1", mock.MatchedBy(func(items []orderitem.OrderItem) bool {
		return len(items) == 2 &&
			items[0].ProductID == "pizza-1" && items[0].Name == "Margherita" &&
			items[0].Quantity == 2 && items[0].Price.Equal(price("8.90")) &&
			items[1].ProductID == "cola-1" && items[1].Quantity == 3
	})).Return(nil)

	created, err := svc.CreateOrder(context.Background(), testCustomer, []LineItemRequest{
		{ProductID: "pizza-1", Quantity: 2},
		{ProductID: "cola-1", Quantity: 3},
	})

	require.NoError(t, err)
	assert.Equal(t, "order-1", created.ID)
	assert.True(t, created.TotalAmount.Equal(price("24.25")))
	assert.Len(t, created.OrderItems, 2)
	assert.True(t, u.committed)
	u.orderRepo.AssertExpectations(t)
	u.orderItemRepo.AssertExpectations(t)
}

func TestCreateOrder_UnknownMenuItemAbortsOrder(t *testing.T) {
	u := &fakeUOW{orderRepo: &mockOrderRepo{}, orderItemRepo: &mockOrderItemRepo{}}
	gateway := &mockMenuGateway{}
	svc := newTestService(u, gateway, &mockStatusPublisher{})

	gateway.On("GetMenuItemByID", mock.Anything, "pizza-1").
		Return(menuitem.MenuItem{ID: "pizza-1", Name: "Margherita", Price: price("8.90")}, nil)
	gateway.On("GetMenuItemByID", mock.Anything, "ghost-item").
		Return(menuitem.MenuItem{}, menuitem.ErrNotFound)

	_, err := svc.CreateOrder(context.Background(), testCustomer, []LineItemRequest{
		{ProductID: "pizza-1", Quantity: 1},
		{ProductID: "ghost-item", Quantity: 1},
	})

	require.ErrorIs(t, err, menuitem.ErrNotFound)
	assert.False(t, u.begun)
	u.orderRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	u.orderItemRepo.AssertNotCalled(t, "BulkInsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrder_MenuServiceDownAbortsOrder(t *testing.T) {
	u := &fakeUOW{orderRepo: &mockOrderRepo{}, orderItemRepo: &mockOrderItemRepo{}}
	gateway := &mockMenuGateway{}
	svc := newTestService(u, gateway, &mockStatusPublisher{})

	gateway.On("GetMenuItemByID", mock.Anything, "pizza-1").
		Return(menuitem.MenuItem{}, menuitem.ErrUnavailable)

	_, err := svc.CreateOrder(context.Background(), testCustomer, []LineItemRequest{
		{ProductID: "pizza-1", Quantity: 1},
	})

	require.ErrorIs(t, err, menuitem.ErrUnavailable)
	assert.False(t, u.begun)
	u.orderRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateOrder_InsertFailureRollsBack(t *testing.T) {
	u := &fakeUOW{orderRepo: &mockOrderRepo{}, orderItemRepo: &mockOrderItemRepo{}}
	gateway := &mockMenuGateway{}
	svc := newTestService(u, gateway, &mockStatusPublisher{})

	gateway.On("GetMenuItemByID", mock.Anything, "pizza-1").
		Return(menuitem.MenuItem{ID: "pizza-1", Name: "Margherita", Price: price("8.90")}, nil)
	u.orderRepo.On("Insert", mock.Anything, mock.Anything).
		Return(order.Order{}, errors.New("connection reset"))

	_, err := svc.CreateOrder(context.Background(), testCustomer, []LineItemRequest{
		{ProductID: "pizza-1", Quantity: 1},
	})

	require.Error(t, err)
	assert.True(t, u.rolledBack)
	assert.False(t, u.committed)
}

func TestUpdateOrderStatus(t *testing.T) {
	u := &fakeUOW{orderRepo: &mockOrderRepo{}, orderItemRepo: &mockOrderItemRepo{}}
	publisher := &mockStatusPublisher{}
	svc := newTestService(u, &mockMenuGateway{}, publisher)

	stored := &order.Order{
		ID:       "order-1",
		Customer: testCustomer,
		Status:   orderstatus.StatusCreated,
	}
	u.orderRepo.On("FindByID", mock.Anything, "order-1").Return(stored, nil)
	u.orderRepo.On("UpdateStatus", mock.Anything, mock.MatchedBy(func(o order.Order) bool {
		return o.ID == "order-1" && o.Status == orderstatus.StatusConfirmed && o.UpdatedAt != nil
	})).Return(nil)
	publisher.On("PublishStatusChange", mock.Anything, notification.OrderStatusNotification{
		OrderID:  "order-1",
		FullName: testCustomer.FullName,
		Address:  testCustomer.Address,
		Email:    testCustomer.Email,
		Status:   orderstatus.StatusConfirmed,
	}).Return(nil).Once()

	updated, err := svc.UpdateOrderStatus(context.Background(), "order-1", orderstatus.StatusConfirmed)

	require.NoError(t, err)
	assert.Equal(t, orderstatus.StatusConfirmed, updated.Status)
	require.NotNil(t, updated.UpdatedAt)
	publisher.AssertExpectations(t)
	u.orderRepo.AssertExpectations(t)
}

func TestUpdateOrderStatus_UnknownOrder(t *testing.T) {
	u := &fakeUOW{orderRepo: &mockOrderRepo{}, orderItemRepo: &mockOrderItemRepo{}}
	publisher := &mockStatusPublisher{}
	svc := newTestService(u, &mockMenuGateway{}, publisher)

	u.orderRepo.On("FindByID", mock.Anything, "missing").Return(nil, order.ErrNotFound)

	_, err := svc.UpdateOrderStatus(context.Background(), "missing", orderstatus.StatusDelivered)

	require.ErrorIs(t, err, order.ErrNotFound)
	u.orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "PublishStatusChange", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatus_PublishFailureDoesNotFailUpdate(t *testing.T) {
	u := &fakeUOW{orderRepo: &mockOrderRepo{}, orderItemRepo: &mockOrderItemRepo{}}
	publisher := &mockStatusPublisher{}
	svc := newTestService(u, &mockMenuGateway{}, publisher)

	stored := &order.Order{ID: "order-1", Customer: testCustomer, Status: orderstatus.StatusPreparing}
	u.orderRepo.On("FindByID", mock.Anything, "order-1").Return(stored, nil)
	u.orderRepo.On("UpdateStatus", mock.Anything, mock.Anything).Return(nil)
	publisher.On("PublishStatusChange", mock.Anything, mock.Anything).
		Return(errors.New("broker unreachable"))

	updated, err := svc.UpdateOrderStatus(context.Background(), "order-1", orderstatus.StatusOutForDelivery)

	require.NoError(t, err)
	assert.Equal(t, orderstatus.StatusOutForDelivery, updated.Status)
}

func TestGetOrderByID(t *testing.T) {
	u := &fakeUOW{orderRepo: &mockOrderRepo{}, orderItemRepo: &mockOrderItemRepo{}}
	svc := newTestService(u, &mockMenuGateway{}, &mockStatusPublisher{})

	stored := &order.Order{ID: "order-1", Customer: testCustomer, Status: orderstatus.StatusCreated}
	items := []orderitem.OrderItem{
		{ProductID: "pizza-1", Name: "Margherita", Quantity: 2, Price: price("8.90")},
	}
	u.orderRepo.On("FindByID", mock.Anything, "order-1").Return(stored, nil)
	u.orderItemRepo.On("QueryByOrderIDs", mock.Anything, []string{"order-1"}).
		Return(map[string][]orderitem.OrderItem{"order-1": items}, nil)

	got, err := svc.GetOrderByID(context.Background(), "order-1")

	require.NoError(t, err)
	assert.Equal(t, items, got.OrderItems)
}

func TestGetOrderHistory(t *testing.T) {
	u := &fakeUOW{orderRepo: &mockOrderRepo{}, orderItemRepo: &mockOrderItemRepo{}}
	svc := newTestService(u, &mockMenuGateway{}, &mockStatusPublisher{})

	page := []order.Order{
		{ID: "order-1", Status: orderstatus.StatusCreated},
		{ID: "order-2", Status: orderstatus.StatusDelivered},
	}
	u.orderRepo.On("FindPage", mock.Anything, 0, 10).Return(page, int64(2), nil)
	u.orderItemRepo.On("QueryByOrderIDs", mock.Anything, []string{"order-1", "order-2"}).
		Return(map[string][]orderitem.OrderItem{
			"order-1": {{ProductID: "pizza-1", Name: "Margherita", Quantity: 1, Price: price("8.90")}},
		}, nil)

	orders, total, err := svc.GetOrderHistory(context.Background(), 10, 0)

	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, orders, 2)
	assert.Len(t, orders[0].OrderItems, 1)
	assert.Empty(t, orders[1].OrderItems)
}
