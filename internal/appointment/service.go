// AngelaMos | 2026
// service.go

package appointment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/carterperez-dev/petshop-backend/internal/catalog"
	"github.com/carterperez-dev/petshop-backend/internal/core"
	"github.com/carterperez-dev/petshop-backend/internal/middleware"
)

var ErrUnknownService = errors.New("unknown service")

type ServiceLookup interface {
	GetService(ctx context.Context, id int64) (*catalog.PetService, error)
}

type Service struct {
	repo     Repository
	services ServiceLookup
	metrics  *core.Metrics
}

func NewService(
	repo Repository,
	services ServiceLookup,
	metrics *core.Metrics,
) *Service {
	return &Service{repo: repo, services: services, metrics: metrics}
}

// Book records a pending appointment for the requested service. Guests
// (nil identity) are allowed.
func (s *Service) Book(
	ctx context.Context,
	identity *middleware.Identity,
	req BookRequest,
) (*Appointment, error) {
	svc, err := s.services.GetService(ctx, req.ServiceID)
	if errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("service %d: %w", req.ServiceID, ErrUnknownService)
	}
	if err != nil {
		return nil, err
	}

	a := &Appointment{
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		PetName:       strings.TrimSpace(req.PetName),
		ServiceID:     svc.ID,
		ServiceName:   svc.Name,
		Date:          req.Date.UTC(),
		Status:        StatusPending,
	}
	if identity != nil {
		userID := identity.UserID
		a.UserID = &userID
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.metrics.IncAppointmentsBooked()
	slog.InfoContext(ctx, "appointment booked",
		"appointment_id", a.ID,
		"service_id", a.ServiceID,
		"guest", a.UserID == nil,
	)

	return a, nil
}

func (s *Service) List(ctx context.Context) ([]Appointment, error) {
	return s.repo.List(ctx)
}

func (s *Service) CountPending(ctx context.Context) (int, error) {
	return s.repo.CountByStatus(ctx, StatusPending)
}
