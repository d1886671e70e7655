package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/portal-api/internal/models"
	"github.com/noah-isme/portal-api/internal/workflow"
)

const orderColumns = `id, user_id, user_name, user_email, items, shipping_info, payment_info, total, status, created_at, updated_at`

// reserveStockQuery decrements stock only when enough remains, so concurrent
// orders can never drive it negative.
const reserveStockQuery = `UPDATE products SET stock = stock - $2, updated_at = $3 WHERE id = $1 AND stock >= $2 RETURNING name, price, image`

// OrderRepository persists storefront orders and their stock side effects.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository constructs the repository.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateOrderParams carries a new order and the lines to reserve for it.
type CreateOrderParams struct {
	Order         *models.Order
	Lines         []models.OrderLine
	ExpectedTotal *decimal.Decimal
}

type reservedProduct struct {
	Name  string          `db:"name"`
	Price decimal.Decimal `db:"price"`
	Image string          `db:"image"`
}

// Create reserves stock for every line and inserts the order in one
// transaction. Line names and prices are taken from the locked product rows.
func (r *OrderRepository) Create(ctx context.Context, params CreateOrderParams) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin order transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	items := make(models.OrderItems, 0, len(params.Lines))
	for _, line := range params.Lines {
		var reserved reservedProduct
		err = tx.GetContext(ctx, &reserved, reserveStockQuery, line.ProductID, line.Quantity, now)
		if errors.Is(err, sql.ErrNoRows) {
			err = r.stockError(ctx, tx, line.ProductID)
			return err
		}
		if err != nil {
			return fmt.Errorf("reserve stock: %w", err)
		}
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Name:      reserved.Name,
			Price:     reserved.Price,
			Quantity:  line.Quantity,
			Image:     reserved.Image,
		})
	}

	order := params.Order
	order.Items = items
	order.Total = items.Total()
	if params.ExpectedTotal != nil && !params.ExpectedTotal.Equal(order.Total) {
		err = ErrTotalMismatch
		return err
	}
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	order.Status = workflow.OrderPending
	order.CreatedAt = now
	order.UpdatedAt = now

	const insert = `INSERT INTO orders (` + orderColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	if _, err = tx.ExecContext(ctx, insert,
		order.ID, order.UserID, order.UserName, order.UserEmail,
		order.Items, order.ShippingInfo, order.PaymentInfo, order.Total,
		order.Status, order.CreatedAt, order.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit order: %w", err)
	}
	return nil
}

func (r *OrderRepository) stockError(ctx context.Context, tx *sqlx.Tx, productID string) error {
	var name string
	err := tx.GetContext(ctx, &name, `SELECT name FROM products WHERE id = $1`, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return &StockError{ProductID: productID, Err: ErrProductNotFound}
	}
	if err != nil {
		return fmt.Errorf("inspect product stock: %w", err)
	}
	return &StockError{ProductID: productID, ProductName: name, Err: ErrInsufficientStock}
}

// FindByID returns a single order.
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	var order models.Order
	if err := r.db.GetContext(ctx, &order, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &order, nil
}

// List returns orders newest first.
func (r *OrderRepository) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	var conditions []string
	var args []interface{}
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	orders := []models.Order{}
	if err := r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// Transition moves an order from → to only if it is still in from. Entering
// cancelled returns every line's quantity to stock in the same transaction.
func (r *OrderRepository) Transition(ctx context.Context, id string, from, to workflow.OrderStatus) (order *models.Order, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin order status transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	var updated models.Order
	const update = `UPDATE orders SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2 RETURNING ` + orderColumns
	err = tx.GetContext(ctx, &updated, update, id, from, to, now)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrStatusConflict
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	if to.RestocksOnEntry() {
		const restock = `UPDATE products SET stock = stock + $2, updated_at = $3 WHERE id = $1`
		for _, item := range updated.Items {
			if _, err = tx.ExecContext(ctx, restock, item.ProductID, item.Quantity, now); err != nil {
				return nil, fmt.Errorf("restock product: %w", err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit order status: %w", err)
	}
	return &updated, nil
}

// StatusTotal is the order count and revenue for one status.
type StatusTotal struct {
	Status  workflow.OrderStatus `db:"status"`
	Count   int                  `db:"count"`
	Revenue decimal.Decimal      `db:"revenue"`
}

// TotalsByStatus groups order counts and revenue by status.
func (r *OrderRepository) TotalsByStatus(ctx context.Context) ([]StatusTotal, error) {
	const query = `SELECT status, COUNT(*) AS count, COALESCE(SUM(total), 0) AS revenue FROM orders GROUP BY status`
	totals := []StatusTotal{}
	if err := r.db.SelectContext(ctx, &totals, query); err != nil {
		return nil, fmt.Errorf("order totals by status: %w", err)
	}
	return totals, nil
}
