// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/petshop-backend/internal/core"
	"github.com/carterperez-dev/petshop-backend/internal/middleware"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
	ErrPasswordMismatch   = errors.New("passwords don't match")
)

type UserInfo struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id int64) (*UserInfo, error)
	Create(
		ctx context.Context,
		email, passwordHash, name string,
	) (*UserInfo, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

type Service struct {
	repo         Repository
	userProvider UserProvider
	hasher       *core.PasswordHasher
	cookies      *CookieJar
	metrics      *core.Metrics
	ttl          time.Duration
}

func NewService(
	repo Repository,
	userProvider UserProvider,
	hasher *core.PasswordHasher,
	cookies *CookieJar,
	ttl time.Duration,
	metrics *core.Metrics,
) *Service {
	if hasher == nil {
		hasher = core.NewPasswordHasher(core.DefaultArgonParams)
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Service{
		repo:         repo,
		userProvider: userProvider,
		hasher:       hasher,
		cookies:      cookies,
		metrics:      metrics,
		ttl:          ttl,
	}
}

// Login checks the credentials and opens a new session. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
	userAgent, ipAddress string,
) (*UserInfo, string, error) {
	user, err := s.userProvider.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // equalise timing with the known-user path
			_, _, _ = s.hasher.VerifyTimingSafe(req.Password, nil)
			s.metrics.ObserveLogin("unknown_user")
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := s.hasher.VerifyTimingSafe(
		req.Password,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, "", fmt.Errorf("verify password for user %d: %w", user.ID, err)
	}

	if !valid {
		s.metrics.ObserveLogin("bad_password")
		return nil, "", ErrInvalidCredentials
	}

	if newHash != "" {
		if err := s.userProvider.UpdatePassword(ctx, user.ID, newHash); err != nil {
			slog.WarnContext(ctx, "password rehash failed",
				"user_id", user.ID,
				"error", err,
			)
		}
	}

	token, err := s.openSession(ctx, user.ID, userAgent, ipAddress)
	if err != nil {
		return nil, "", err
	}

	s.metrics.ObserveLogin("success")
	return user, token, nil
}

// Register creates a regular user and logs it in. The confirmation check
// runs before anything touches the store.
func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
	userAgent, ipAddress string,
) (*UserInfo, string, error) {
	if req.Password != req.ConfirmPassword {
		return nil, "", ErrPasswordMismatch
	}

	exists, err := s.userProvider.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, "", fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, "", ErrEmailExists
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userProvider.Create(ctx, req.Email, passwordHash, req.Name)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, "", ErrEmailExists
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.openSession(ctx, user.ID, userAgent, ipAddress)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Logout revokes the session behind token. Unknown or already revoked
// tokens are not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if _, err := s.repo.RevokeByHash(ctx, core.HashToken(token)); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	return nil
}

// Resolve maps a session token to the caller's identity using the current
// user row, so role changes apply on the next request.
func (s *Service) Resolve(
	ctx context.Context,
	token string,
) (*middleware.Identity, error) {
	session, err := s.repo.FindActiveByHash(ctx, core.HashToken(token))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("resolve: %w", core.ErrSessionInvalid)
		}
		return nil, fmt.Errorf("resolve: %w", err)
	}

	user, err := s.userProvider.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("resolve: %w", core.ErrSessionInvalid)
		}
		return nil, fmt.Errorf("resolve: %w", err)
	}

	return &middleware.Identity{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		SessionID: session.ID,
	}, nil
}

// ResolveRequest implements middleware.IdentityResolver over the session
// cookie.
func (s *Service) ResolveRequest(r *http.Request) (*middleware.Identity, error) {
	token := s.cookies.Token(r)
	if token == "" {
		return nil, nil
	}

	identity, err := s.Resolve(r.Context(), token)
	if errors.Is(err, core.ErrSessionInvalid) {
		s.metrics.IncSessionsInvalidated()
	}
	return identity, err
}

func (s *Service) CurrentUser(ctx context.Context, userID int64) (*UserInfo, error) {
	return s.userProvider.GetByID(ctx, userID)
}

// RevokeAllForUser ends every live session of a user.
func (s *Service) RevokeAllForUser(ctx context.Context, userID int64) (int64, error) {
	return s.repo.RevokeAllForUser(ctx, userID)
}

// PruneExpired removes sessions that expired or were revoked before the
// retention window.
func (s *Service) PruneExpired(
	ctx context.Context,
	retention time.Duration,
) (int64, error) {
	return s.repo.DeleteExpired(ctx, time.Now().Add(-retention))
}

func (s *Service) openSession(
	ctx context.Context,
	userID int64,
	userAgent, ipAddress string,
) (string, error) {
	token, err := core.GenerateSessionToken()
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	session := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		TokenHash: core.HashToken(token),
		UserAgent: truncate(userAgent, 512),
		IPAddress: ipAddress,
		ExpiresAt: time.Now().Add(s.ttl),
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return token, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

var _ middleware.IdentityResolver = (*Service)(nil)
