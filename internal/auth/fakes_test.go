// AngelaMos | 2026
// fakes_test.go

package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/carterperez-dev/petshop-backend/internal/config"
	"github.com/carterperez-dev/petshop-backend/internal/core"
)

type memSessions struct {
	mu       sync.Mutex
	sessions map[string]*Session
	creates  int
}

func newMemSessions() *memSessions {
	return &memSessions{sessions: map[string]*Session{}}
}

func (m *memSessions) Create(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	s.CreatedAt = time.Now()
	cp := *s
	m.sessions[s.TokenHash] = &cp
	return nil
}

func (m *memSessions) FindActiveByHash(_ context.Context, hash string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[hash]
	if !ok || !s.IsValid(time.Now()) {
		return nil, core.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSessions) RevokeByHash(_ context.Context, hash string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[hash]
	if !ok || s.IsRevoked() {
		return false, nil
	}
	now := time.Now()
	s.RevokedAt = &now
	return true, nil
}

func (m *memSessions) RevokeAllForUser(_ context.Context, userID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	now := time.Now()
	for _, s := range m.sessions {
		if s.UserID == userID && !s.IsRevoked() {
			s.RevokedAt = &now
			n++
		}
	}
	return n, nil
}

func (m *memSessions) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k, s := range m.sessions {
		if s.ExpiresAt.Before(before) {
			delete(m.sessions, k)
			n++
		}
	}
	return n, nil
}

func (m *memSessions) expireAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		s.ExpiresAt = time.Now().Add(-time.Minute)
	}
}

type memUsers struct {
	mu      sync.Mutex
	byID    map[int64]*UserInfo
	nextID  int64
	creates int
	updates int
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[int64]*UserInfo{}, nextID: 1}
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == strings.ToLower(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) Create(_ context.Context, email, hash, name string) (*UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	for _, u := range m.byID {
		if u.Email == strings.ToLower(email) {
			return nil, core.ErrDuplicateKey
		}
	}
	u := &UserInfo{
		ID:           m.nextID,
		Email:        strings.ToLower(email),
		Name:         name,
		PasswordHash: hash,
		Role:         "user",
		CreatedAt:    time.Now(),
	}
	m.byID[u.ID] = u
	m.nextID++
	cp := *u
	return &cp, nil
}

func (m *memUsers) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

func (m *memUsers) UpdatePassword(_ context.Context, id int64, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return core.ErrNotFound
	}
	m.updates++
	u.PasswordHash = hash
	return nil
}

func (m *memUsers) setRole(id int64, role string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[id].Role = role
}

var testHasher = core.NewPasswordHasher(
	core.ArgonParams{Memory: 1024, Time: 1, Threads: 1, KeyLen: 32},
)

var testSessionConfig = config.SessionConfig{
	CookieName: "petshop_session",
	HashKey:    "0123456789abcdef0123456789abcdef",
	BlockKey:   "fedcba9876543210fedcba9876543210",
	TTL:        24 * time.Hour,
	SameSite:   "lax",
}

type fixture struct {
	sessions *memSessions
	users    *memUsers
	cookies  *CookieJar
	service  *Service
}

func newFixture() *fixture {
	f := &fixture{
		sessions: newMemSessions(),
		users:    newMemUsers(),
		cookies:  NewCookieJar(testSessionConfig),
	}
	f.service = NewService(
		f.sessions,
		f.users,
		testHasher,
		f.cookies,
		testSessionConfig.TTL,
		nil,
	)
	return f
}
