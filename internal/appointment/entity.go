// AngelaMos | 2026
// entity.go

package appointment

import (
	"time"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Appointment is a booking for one pet service. ServiceName is copied from
// the catalog when the booking is made. UserID is nil for guests.
type Appointment struct {
	ID            int64     `db:"id"`
	UserID        *int64    `db:"user_id"`
	CustomerName  string    `db:"customer_name"`
	CustomerPhone string    `db:"customer_phone"`
	PetName       string    `db:"pet_name"`
	ServiceID     int64     `db:"service_id"`
	ServiceName   string    `db:"service_name"`
	Date          time.Time `db:"date"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
}
