// AngelaMos | 2026
// repository.go

package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/petshop-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, order *Order) error
	List(ctx context.Context, userID *int64) ([]Order, error)
	GetByID(ctx context.Context, id int64) (*Order, error)
	Count(ctx context.Context) (int, error)
	Revenue(ctx context.Context) (decimal.Decimal, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create writes the order row and every item in one transaction. Either all
// rows become visible or none do.
func (r *repository) Create(ctx context.Context, order *Order) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, `
			INSERT INTO orders (user_id, customer_name, total, status)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at`,
			order.UserID,
			order.CustomerName,
			order.Total,
			order.Status,
		).Scan(&order.ID, &order.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for i := range order.Items {
			item := &order.Items[i]
			item.OrderID = order.ID

			err := tx.QueryRowxContext(ctx, `
				INSERT INTO order_items
					(order_id, product_id, product_name, quantity, price)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id`,
				item.OrderID,
				item.ProductID,
				item.ProductName,
				item.Quantity,
				item.Price,
			).Scan(&item.ID)
			if err != nil {
				return fmt.Errorf("insert order item %d: %w", i, err)
			}
		}

		return nil
	})
}

const orderColumns = `id, user_id, customer_name, total, status, created_at`

// List returns orders newest first. A nil userID lists every order.
func (r *repository) List(ctx context.Context, userID *int64) ([]Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var args []any

	if userID != nil {
		query += ` WHERE user_id = $1`
		args = append(args, *userID)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	orders := []Order{}
	if err := r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return orders, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Order, error) {
	var order Order
	err := r.db.GetContext(
		ctx,
		&order,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`,
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get order %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}

	order.Items = []Item{}
	err = r.db.SelectContext(ctx, &order.Items, `
		SELECT id, order_id, product_id, product_name, quantity, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("get order %d items: %w", id, err)
	}

	return &order, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM orders`); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

func (r *repository) Revenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.GetContext(
		ctx,
		&total,
		`SELECT COALESCE(SUM(total), 0) FROM orders`,
	)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum order totals: %w", err)
	}
	return total, nil
}
