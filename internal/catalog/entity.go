// AngelaMos | 2026
// entity.go

package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64           `db:"id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Category    string          `db:"category"`
	Image       string          `db:"image"`
	Stock       int             `db:"stock"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// PetService is a bookable service such as grooming or a vet consultation.
// Duration is in minutes.
type PetService struct {
	ID          int64           `db:"id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Duration    int             `db:"duration"`
	Image       string          `db:"image"`
}

// ProductPatch carries a partial update. Nil fields are left unchanged.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *string
	Image       *string
	Stock       *int
}

func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.Category == nil && p.Image == nil && p.Stock == nil
}

const pricePlaces = 2

// RoundPrice rounds half away from zero to cents.
func RoundPrice(d decimal.Decimal) decimal.Decimal {
	return d.Round(pricePlaces)
}
