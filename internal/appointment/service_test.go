// AngelaMos | 2026
// service_test.go

package appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/petshop-backend/internal/catalog"
	"github.com/carterperez-dev/petshop-backend/internal/core"
	"github.com/carterperez-dev/petshop-backend/internal/middleware"
)

type fakeServices map[int64]catalog.PetService

func (f fakeServices) GetService(_ context.Context, id int64) (*catalog.PetService, error) {
	s, ok := f[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &s, nil
}

func defaultServices() fakeServices {
	return fakeServices{
		1: {ID: 1, Name: "Banho Completo", Price: decimal.RequireFromString("50"), Duration: 60},
		3: {ID: 3, Name: "Consulta Veterinária", Price: decimal.RequireFromString("150"), Duration: 30},
	}
}

type memAppointments struct {
	mu   sync.Mutex
	rows []Appointment
	err  error
}

func (m *memAppointments) Create(_ context.Context, a *Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	a.ID = int64(len(m.rows) + 1)
	a.CreatedAt = time.Now()
	m.rows = append(m.rows, *a)
	return nil
}

func (m *memAppointments) List(context.Context) ([]Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Appointment{}, m.rows...), nil
}

func (m *memAppointments) CountByStatus(_ context.Context, status string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, a := range m.rows {
		if a.Status == status {
			n++
		}
	}
	return n, nil
}

func booking(serviceID int64) BookRequest {
	return BookRequest{
		CustomerName:  "Ana",
		CustomerPhone: "+55 11 91234-5678",
		PetName:       "Rex",
		ServiceID:     serviceID,
		ServiceName:   "whatever the client sent",
		Date:          time.Date(2026, 11, 3, 14, 30, 0, 0, time.UTC),
	}
}

func TestBookSnapshotsServiceName(t *testing.T) {
	repo := &memAppointments{}
	svc := NewService(repo, defaultServices(), nil)

	a, err := svc.Book(context.Background(), nil, booking(3))
	require.NoError(t, err)

	assert.Equal(t, "Consulta Veterinária", a.ServiceName)
	assert.Equal(t, StatusPending, a.Status)
	assert.Nil(t, a.UserID)

	pending, err := svc.CountPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, pending)
}

func TestBookAttachesIdentity(t *testing.T) {
	svc := NewService(&memAppointments{}, defaultServices(), core.NewMetrics())

	a, err := svc.Book(
		context.Background(),
		&middleware.Identity{UserID: 12, Role: "user"},
		booking(1),
	)
	require.NoError(t, err)
	require.NotNil(t, a.UserID)
	assert.Equal(t, int64(12), *a.UserID)
}

func TestBookUnknownService(t *testing.T) {
	repo := &memAppointments{}
	svc := NewService(repo, defaultServices(), nil)

	_, err := svc.Book(context.Background(), nil, booking(2))
	assert.ErrorIs(t, err, ErrUnknownService)
	assert.Empty(t, repo.rows)
}

func TestBookRepositoryError(t *testing.T) {
	repo := &memAppointments{err: errors.New("connection refused")}
	svc := NewService(repo, defaultServices(), nil)

	_, err := svc.Book(context.Background(), nil, booking(1))
	assert.ErrorContains(t, err, "connection refused")
	assert.NotErrorIs(t, err, ErrUnknownService)
}
