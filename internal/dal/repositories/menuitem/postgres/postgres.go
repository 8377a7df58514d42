package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/allo/restaurant/internal/service/models/menuitem"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// MenuItemDal represents the menu item data access layer model.
type MenuItemDal struct {
	Id          string          `db:"id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   *time.Time      `db:"updated_at"`
}

// ToModel converts MenuItemDal to the service layer MenuItem model.
func (m *MenuItemDal) ToModel() *menuitem.MenuItem {
	return &menuitem.MenuItem{
		ID:          m.Id,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// GenericConn is an interface that works with both pgxpool.Pool and pgx.Tx.
type GenericConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresMenuItemRepository represents a Postgres menu item repository.
type PostgresMenuItemRepository struct {
	conn GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresMenuItemRepository creates a new Postgres menu item repository.
func NewPostgresMenuItemRepository(conn GenericConn) *PostgresMenuItemRepository {
	return &PostgresMenuItemRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var menuItemColumns = []string{
	"id",
	"name",
	"description",
	"price",
	"created_at",
	"updated_at",
}

// Insert persists a new menu item and returns it with the assigned id.
func (r *PostgresMenuItemRepository) Insert(
	ctx context.Context,
	item menuitem.MenuItem,
) (menuitem.MenuItem, error) {
	item.ID = uuid.NewString()

	query, args, err := r.sb.Insert("menu_items").
		Columns(menuItemColumns...).
		Values(item.ID, item.Name, item.Description, item.Price, item.CreatedAt, item.UpdatedAt).
		ToSql()
	if err != nil {
		return menuitem.MenuItem{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return menuitem.MenuItem{}, fmt.Errorf("failed to insert menu item: %w", err)
	}

	return item, nil
}

// Update overwrites an existing menu item.
func (r *PostgresMenuItemRepository) Update(ctx context.Context, item menuitem.MenuItem) error {
	query, args, err := r.sb.Update("menu_items").
		Set("name", item.Name).
		Set("description", item.Description).
		Set("price", item.Price).
		Set("updated_at", item.UpdatedAt).
		Where(sq.Eq{"id": item.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return menuitem.ErrNotFound
	}

	return nil
}

// Delete removes a menu item by id.
func (r *PostgresMenuItemRepository) Delete(ctx context.Context, id string) error {
	query, args, err := r.sb.Delete("menu_items").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return menuitem.ErrNotFound
	}

	return nil
}

// FindByID retrieves a single menu item by id.
func (r *PostgresMenuItemRepository) FindByID(ctx context.Context, id string) (*menuitem.MenuItem, error) {
	query, args, err := r.sb.Select(menuItemColumns...).
		From("menu_items").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var dal MenuItemDal
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&dal.Id,
		&dal.Name,
		&dal.Description,
		&dal.Price,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, menuitem.ErrNotFound
		}

		return nil, fmt.Errorf("failed to query menu item: %w", err)
	}

	return dal.ToModel(), nil
}

// FindPage retrieves one zero-based page of menu items plus the total record count.
func (r *PostgresMenuItemRepository) FindPage(
	ctx context.Context,
	pageNumber, pageSize int,
) ([]menuitem.MenuItem, int64, error) {
	countQuery, countArgs, err := r.sb.Select("count(*)").From("menu_items").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.conn.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count menu items: %w", err)
	}

	query, args, err := r.sb.Select(menuItemColumns...).
		From("menu_items").
		OrderBy("created_at", "id").
		Limit(uint64(pageSize)).
		Offset(uint64(pageNumber) * uint64(pageSize)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	result := []menuitem.MenuItem{}
	for rows.Next() {
		var dal MenuItemDal
		err := rows.Scan(
			&dal.Id,
			&dal.Name,
			&dal.Description,
			&dal.Price,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan menu item: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, total, nil
}
