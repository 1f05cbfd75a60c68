// AngelaMos | 2026
// dto.go

package appointment

import (
	"time"
)

// BookRequest accepts serviceName for client compatibility; the stored name
// always comes from the catalog.
type BookRequest struct {
	CustomerName  string    `json:"customerName"  validate:"required,min=1,max=200"`
	CustomerPhone string    `json:"customerPhone" validate:"required,min=8,max=30"`
	PetName       string    `json:"petName"       validate:"required,min=1,max=100"`
	ServiceID     int64     `json:"serviceId"     validate:"required,gt=0"`
	ServiceName   string    `json:"serviceName"   validate:"max=200"`
	Date          time.Time `json:"date"          validate:"required"`
}

type AppointmentResponse struct {
	ID            int64     `json:"id"`
	UserID        *int64    `json:"userId"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone"`
	PetName       string    `json:"petName"`
	ServiceID     int64     `json:"serviceId"`
	ServiceName   string    `json:"serviceName"`
	Date          time.Time `json:"date"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

func ToAppointmentResponse(a *Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:            a.ID,
		UserID:        a.UserID,
		CustomerName:  a.CustomerName,
		CustomerPhone: a.CustomerPhone,
		PetName:       a.PetName,
		ServiceID:     a.ServiceID,
		ServiceName:   a.ServiceName,
		Date:          a.Date,
		Status:        a.Status,
		CreatedAt:     a.CreatedAt,
	}
}

func ToAppointmentResponseList(list []Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(list))
	for i := range list {
		out = append(out, ToAppointmentResponse(&list[i]))
	}
	return out
}
