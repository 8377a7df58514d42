package ordersvc

import (
	"context"
	"time"

	"github.com/allo/restaurant/internal/service/models/customer"
	"github.com/allo/restaurant/internal/service/models/order"
	"github.com/allo/restaurant/internal/service/models/orderitem"
	"github.com/allo/restaurant/internal/service/models/orderstatus"
	"github.com/shopspring/decimal"
)

// buildOrder turns a create request plus resolved catalog items into a priced
// aggregate. Each line snapshots {id, name, price} from the catalog at order
// time, so later menu changes never affect placed orders. The total is the
// exact decimal sum of price * quantity over all lines.
func (s *OrderService) buildOrder(
	ctx context.Context,
	cust customer.Customer,
	lines []LineItemRequest,
) (order.Order, error) {
	items := make([]orderitem.OrderItem, 0, len(lines))
	total := decimal.Zero

	for _, line := range lines {
		menuItem, err := s.menuGateway.GetMenuItemByID(ctx, line.ProductID)
		if err != nil {
			return order.Order{}, err
		}

		item := orderitem.OrderItem{
			ProductID: menuItem.ID,
			Name:      menuItem.Name,
			Quantity:  line.Quantity,
			Price:     menuItem.Price,
		}
		items = append(items, item)
		total = total.Add(item.Subtotal())
	}

	return order.Order{
		Customer:    cust,
		OrderItems:  items,
		TotalAmount: total,
		Status:      orderstatus.StatusCreated,
		CreatedAt:   time.Now(),
	}, nil
}
