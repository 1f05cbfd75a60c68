// AngelaMos | 2026
// entity.go

package order

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Order is append-only. UserID is nil for guest checkouts.
type Order struct {
	ID           int64           `db:"id"`
	UserID       *int64          `db:"user_id"`
	CustomerName string          `db:"customer_name"`
	Total        decimal.Decimal `db:"total"`
	Status       string          `db:"status"`
	CreatedAt    time.Time       `db:"created_at"`
	Items        []Item          `db:"-"`
}

// Item copies the product name and price at checkout time, so later
// catalog edits or deletions never change a placed order.
type Item struct {
	ID          int64           `db:"id"`
	OrderID     int64           `db:"order_id"`
	ProductID   int64           `db:"product_id"`
	ProductName string          `db:"product_name"`
	Quantity    int             `db:"quantity"`
	Price       decimal.Decimal `db:"price"`
}

func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
