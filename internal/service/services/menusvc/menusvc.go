package menusvc

import (
	"context"
	"time"

	"github.com/allo/restaurant/internal/dal/interfaces/imenuitemrepo"
	"github.com/allo/restaurant/internal/service/models/menuitem"
	"github.com/allo/restaurant/internal/service/pagination"
)

// MenuItemService is a service for managing the menu catalog.
type MenuItemService struct {
	repo imenuitemrepo.IMenuItemRepository
}

// option is a function that configures the MenuItemService.
type option func(*MenuItemService)

// MustNewMenuItemService creates a new MenuItemService.
func MustNewMenuItemService(opts ...option) *MenuItemService {
	s := &MenuItemService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithMenuItemRepository sets the menu item repository for the MenuItemService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithMenuItemRepository(repo imenuitemrepo.IMenuItemRepository) option {
	return func(s *MenuItemService) {
		s.repo = repo
	}
}

// CreateMenuItem adds a new dish to the catalog.
func (s *MenuItemService) CreateMenuItem(
	ctx context.Context,
	item menuitem.MenuItem,
) (menuitem.MenuItem, error) {
	item.CreatedAt = time.Now()
	item.UpdatedAt = nil

	return s.repo.Insert(ctx, item)
}

// UpdateMenuItem overwrites an existing dish, failing if the id is unknown.
func (s *MenuItemService) UpdateMenuItem(
	ctx context.Context,
	item menuitem.MenuItem,
) (menuitem.MenuItem, error) {
	existing, err := s.repo.FindByID(ctx, item.ID)
	if err != nil {
		return menuitem.MenuItem{}, err
	}

	now := time.Now()
	existing.Name = item.Name
	existing.Description = item.Description
	existing.Price = item.Price
	existing.UpdatedAt = &now

	if err := s.repo.Update(ctx, *existing); err != nil {
		return menuitem.MenuItem{}, err
	}

	return *existing, nil
}

// DeleteMenuItem removes a dish, failing if the id is unknown.
func (s *MenuItemService) DeleteMenuItem(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// GetMenuItemByID retrieves a single dish.
func (s *MenuItemService) GetMenuItemByID(ctx context.Context, id string) (menuitem.MenuItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return menuitem.MenuItem{}, err
	}

	return *item, nil
}

// GetMenuItems lists dishes by (limit, offset) over the page-number store.
func (s *MenuItemService) GetMenuItems(
	ctx context.Context,
	limit, offset int,
) ([]menuitem.MenuItem, int64, error) {
	return pagination.List(ctx, limit, offset, s.repo.FindPage)
}
