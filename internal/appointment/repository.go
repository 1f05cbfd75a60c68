// AngelaMos | 2026
// repository.go

package appointment

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/petshop-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	List(ctx context.Context) ([]Appointment, error)
	CountByStatus(ctx context.Context, status string) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Appointment) error {
	query := `
		INSERT INTO appointments (
			user_id, customer_name, customer_phone, pet_name,
			service_id, service_name, date, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		a.UserID,
		a.CustomerName,
		a.CustomerPhone,
		a.PetName,
		a.ServiceID,
		a.ServiceName,
		a.Date,
		a.Status,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}

	return nil
}

func (r *repository) List(ctx context.Context) ([]Appointment, error) {
	query := `
		SELECT id, user_id, customer_name, customer_phone, pet_name,
		       service_id, service_name, date, status, created_at
		FROM appointments
		ORDER BY date DESC, id DESC`

	list := []Appointment{}
	if err := r.db.SelectContext(ctx, &list, query); err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	return list, nil
}

func (r *repository) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	err := r.db.GetContext(
		ctx,
		&n,
		`SELECT COUNT(*) FROM appointments WHERE status = $1`,
		status,
	)
	if err != nil {
		return 0, fmt.Errorf("count appointments: %w", err)
	}
	return n, nil
}
