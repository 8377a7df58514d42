package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/allo/restaurant/internal/service/models/customer"
	"github.com/allo/restaurant/internal/service/models/order"
	"github.com/allo/restaurant/internal/service/models/orderitem"
	"github.com/allo/restaurant/internal/service/models/orderstatus"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// OrderDal represents the order data access layer model.
type OrderDal struct {
	Id               string          `db:"id"`
	CustomerFullName string          `db:"customer_full_name"`
	CustomerAddress  string          `db:"customer_address"`
	CustomerEmail    string          `db:"customer_email"`
	TotalAmount      decimal.Decimal `db:"total_amount"`
	Status           string          `db:"status"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        *time.Time      `db:"updated_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	st, err := orderstatus.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}

	return &order.Order{
		ID: o.Id,
		Customer: customer.Customer{
			FullName: o.CustomerFullName,
			Address:  o.CustomerAddress,
			Email:    o.CustomerEmail,
		},
		TotalAmount: o.TotalAmount,
		Status:      st,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		OrderItems:  []orderitem.OrderItem{}, // Will be populated separately
	}, nil
}

// OrderDalFromModel converts the service layer Order model to OrderDal.
func OrderDalFromModel(o *order.Order) *OrderDal {
	return &OrderDal{
		Id:               o.ID,
		CustomerFullName: o.Customer.FullName,
		CustomerAddress:  o.Customer.Address,
		CustomerEmail:    o.Customer.Email,
		TotalAmount:      o.TotalAmount,
		Status:           o.Status.String(),
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

// GenericConn is an interface that works with both pgxpool.Pool and pgx.Tx.
type GenericConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn GenericConn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var orderColumns = []string{
	"id",
	"customer_full_name",
	"customer_address",
	"customer_email",
	"total_amount",
	"status",
	"created_at",
	"updated_at",
}

// Insert persists a new order and returns it with the assigned id.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	o.ID = uuid.NewString()
	dal := OrderDalFromModel(&o)

	query, args, err := r.sb.Insert("orders").
		Columns(orderColumns...).
		Values(
			dal.Id,
			dal.CustomerFullName,
			dal.CustomerAddress,
			dal.CustomerEmail,
			dal.TotalAmount,
			dal.Status,
			dal.CreatedAt,
			dal.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	return o, nil
}

// FindByID retrieves a single order by id without its items.
func (r *PostgresOrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	query, args, err := r.sb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var dal OrderDal
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&dal.Id,
		&dal.CustomerFullName,
		&dal.CustomerAddress,
		&dal.CustomerEmail,
		&dal.TotalAmount,
		&dal.Status,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}

		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return dal.ToModel()
}

// UpdateStatus overwrites the status and updated_at of an existing order.
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, o order.Order) error {
	query, args, err := r.sb.Update("orders").
		Set("status", o.Status.String()).
		Set("updated_at", o.UpdatedAt).
		Where(sq.Eq{"id": o.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}

	return nil
}

// FindPage retrieves one zero-based page of orders plus the total record
// count of the whole collection. The page is ordered by creation time so
// repeated fetches see a stable sequence.
func (r *PostgresOrderRepository) FindPage(
	ctx context.Context,
	pageNumber, pageSize int,
) ([]order.Order, int64, error) {
	countQuery, countArgs, err := r.sb.Select("count(*)").From("orders").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.conn.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query, args, err := r.sb.Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC", "id").
		Limit(uint64(pageSize)).
		Offset(uint64(pageNumber) * uint64(pageSize)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	result := []order.Order{}
	for rows.Next() {
		var dal OrderDal
		err := rows.Scan(
			&dal.Id,
			&dal.CustomerFullName,
			&dal.CustomerAddress,
			&dal.CustomerEmail,
			&dal.TotalAmount,
			&dal.Status,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, 0, fmt.Errorf("failed to convert order dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, total, nil
}
