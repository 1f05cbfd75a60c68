// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/petshop-backend/internal/core"
)

func register(t *testing.T, f *fixture, email string) (*UserInfo, string) {
	t.Helper()

	user, token, err := f.service.Register(context.Background(), RegisterRequest{
		Name:            "Ana",
		Email:           email,
		Password:        "s3cret!",
		ConfirmPassword: "s3cret!",
	}, "test-agent", "127.0.0.1")
	require.NoError(t, err)
	return user, token
}

func TestRegisterPasswordMismatchWritesNothing(t *testing.T) {
	f := newFixture()

	_, _, err := f.service.Register(context.Background(), RegisterRequest{
		Name:            "Ana",
		Email:           "ana@example.com",
		Password:        "s3cret!",
		ConfirmPassword: "different",
	}, "", "")

	assert.ErrorIs(t, err, ErrPasswordMismatch)
	assert.Zero(t, f.users.creates)
	assert.Zero(t, f.sessions.creates)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture()
	register(t, f, "ana@example.com")

	_, _, err := f.service.Register(context.Background(), RegisterRequest{
		Name:            "Other",
		Email:           "ANA@example.com",
		Password:        "another1",
		ConfirmPassword: "another1",
	}, "", "")

	assert.ErrorIs(t, err, ErrEmailExists)
	assert.Equal(t, 1, f.users.creates)
}

func TestRegisterForcesUserRoleAndHashes(t *testing.T) {
	f := newFixture()
	user, token := register(t, f, "ana@example.com")

	assert.Equal(t, "user", user.Role)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "s3cret!", f.users.byID[user.ID].PasswordHash)
	assert.Equal(t, 1, f.sessions.creates)
}

func TestLogin(t *testing.T) {
	f := newFixture()
	register(t, f, "ana@example.com")

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid", "ana@example.com", "s3cret!", nil},
		{"email case insensitive", "Ana@Example.com", "s3cret!", nil},
		{"wrong password", "ana@example.com", "nope", ErrInvalidCredentials},
		{"unknown email", "bob@example.com", "s3cret!", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, token, err := f.service.Login(
				context.Background(),
				LoginRequest{Email: tt.email, Password: tt.password},
				"", "",
			)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ana@example.com", user.Email)
			assert.NotEmpty(t, token)
		})
	}
}

func TestLoginCorruptStoredHashIsInternal(t *testing.T) {
	f := newFixture()
	user, _ := register(t, f, "ana@example.com")
	f.users.byID[user.ID].PasswordHash = "not-a-hash"

	_, _, err := f.service.Login(
		context.Background(),
		LoginRequest{Email: "ana@example.com", Password: "s3cret!"},
		"", "",
	)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRehashesOutdatedParams(t *testing.T) {
	f := newFixture()
	user, _ := register(t, f, "ana@example.com")

	f.service.hasher = core.NewPasswordHasher(
		core.ArgonParams{Memory: 2048, Time: 1, Threads: 1, KeyLen: 32},
	)

	_, _, err := f.service.Login(
		context.Background(),
		LoginRequest{Email: "ana@example.com", Password: "s3cret!"},
		"", "",
	)
	require.NoError(t, err)

	assert.Equal(t, 1, f.users.updates)
	assert.Contains(t, f.users.byID[user.ID].PasswordHash, "m=2048")
}

func TestResolveReadsCurrentRole(t *testing.T) {
	f := newFixture()
	user, token := register(t, f, "ana@example.com")

	identity, err := f.service.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user", identity.Role)

	f.users.setRole(user.ID, "admin")

	identity, err = f.service.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "admin", identity.Role)
	assert.Equal(t, user.ID, identity.UserID)
}

func TestLogoutInvalidatesImmediately(t *testing.T) {
	f := newFixture()
	_, token := register(t, f, "ana@example.com")

	require.NoError(t, f.service.Logout(context.Background(), token))

	_, err := f.service.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, core.ErrSessionInvalid)

	require.NoError(t, f.service.Logout(context.Background(), token))
	require.NoError(t, f.service.Logout(context.Background(), ""))
}

func TestResolveExpiredSession(t *testing.T) {
	f := newFixture()
	_, token := register(t, f, "ana@example.com")

	f.sessions.expireAll()

	_, err := f.service.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, core.ErrSessionInvalid)
}

func TestResolveUnknownToken(t *testing.T) {
	f := newFixture()

	_, err := f.service.Resolve(context.Background(), "forged-token")
	assert.ErrorIs(t, err, core.ErrSessionInvalid)
}

func TestConcurrentResolveSameToken(t *testing.T) {
	f := newFixture()
	user, token := register(t, f, "ana@example.com")

	var wg sync.WaitGroup
	ids := make([]int64, 16)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			identity, err := f.service.Resolve(context.Background(), token)
			if err == nil {
				ids[i] = identity.UserID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, user.ID, id)
	}
}

func TestRevokeAllForUser(t *testing.T) {
	f := newFixture()
	_, first := register(t, f, "ana@example.com")
	_, second, err := f.service.Login(
		context.Background(),
		LoginRequest{Email: "ana@example.com", Password: "s3cret!"},
		"", "",
	)
	require.NoError(t, err)

	user, err := f.service.Resolve(context.Background(), first)
	require.NoError(t, err)

	n, err := f.service.RevokeAllForUser(context.Background(), user.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	for _, tok := range []string{first, second} {
		_, err := f.service.Resolve(context.Background(), tok)
		assert.ErrorIs(t, err, core.ErrSessionInvalid)
	}
}
