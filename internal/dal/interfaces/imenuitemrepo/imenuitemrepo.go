package imenuitemrepo

import (
	"context"

	"github.com/allo/restaurant/internal/service/models/menuitem"
)

// IMenuItemRepository is an interface for the menu item store adapter.
type IMenuItemRepository interface {
	Insert(ctx context.Context, item menuitem.MenuItem) (menuitem.MenuItem, error)
	Update(ctx context.Context, item menuitem.MenuItem) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*menuitem.MenuItem, error)
	FindPage(ctx context.Context, pageNumber, pageSize int) ([]menuitem.MenuItem, int64, error)
}
