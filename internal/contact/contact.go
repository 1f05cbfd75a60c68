// AngelaMos | 2026
// contact.go

package contact

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/carterperez-dev/petshop-backend/internal/core"
)

// Message is an append-only contact form submission.
type Message struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}

type SubmitRequest struct {
	Name    string `json:"name"    validate:"required,min=1,max=200"`
	Email   string `json:"email"   validate:"required,email,max=255"`
	Message string `json:"message" validate:"required,min=1,max=5000"`
}

type MessageResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToMessageResponse(m *Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
}

type Repository interface {
	Create(ctx context.Context, m *Message) error
	List(ctx context.Context) ([]Message, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, m *Message) error {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO contacts (name, email, message)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		m.Name,
		m.Email,
		m.Message,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create contact: %w", err)
	}
	return nil
}

func (r *repository) List(ctx context.Context) ([]Message, error) {
	list := []Message{}
	err := r.db.SelectContext(ctx, &list, `
		SELECT id, name, email, message, created_at
		FROM contacts
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return list, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM contacts`); err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return n, nil
}

type Service struct {
	repo    Repository
	metrics *core.Metrics
}

func NewService(repo Repository, metrics *core.Metrics) *Service {
	return &Service{repo: repo, metrics: metrics}
}

func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*Message, error) {
	m := &Message{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Message: req.Message,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	s.metrics.IncContactMessages()
	slog.InfoContext(ctx, "contact message received", "contact_id", m.ID)

	return m, nil
}

func (s *Service) List(ctx context.Context) ([]Message, error) {
	return s.repo.List(ctx)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
