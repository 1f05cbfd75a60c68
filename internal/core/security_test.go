// AngelaMos | 2026
// security_test.go

package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cheapParams = ArgonParams{Memory: 1024, Time: 1, Threads: 1, KeyLen: 32}

func TestHashAndVerify(t *testing.T) {
	h := NewPasswordHasher(cheapParams)

	stored, err := h.Hash("correct horse battery")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored, "$argon2id$v=19$m=1024,t=1,p=1$"))

	ok, err := h.Verify("correct horse battery", stored)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong password", stored)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashUsesFreshSalt(t *testing.T) {
	h := NewPasswordHasher(cheapParams)

	a, err := h.Hash("same-password")
	require.NoError(t, err)
	b, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestVerifyRejectsEverySingleBitMutation(t *testing.T) {
	h := NewPasswordHasher(cheapParams)
	const password = "s3cret-pa55"

	stored, err := h.Hash(password)
	require.NoError(t, err)

	for i := 0; i < len(stored); i++ {
		for bit := 0; bit < 8; bit++ {
			mutated := []byte(stored)
			mutated[i] ^= 1 << bit

			ok, _ := h.Verify(password, string(mutated))
			if ok {
				t.Fatalf("mutation at byte %d bit %d still verifies: %q",
					i, bit, string(mutated))
			}
		}
	}
}

func TestVerifyMalformedStoredForm(t *testing.T) {
	h := NewPasswordHasher(cheapParams)

	tests := []string{
		"",
		"plainhash",
		"$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=0,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=1025,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=01,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$a2V5$extra",
	}

	for _, stored := range tests {
		ok, err := h.Verify("anything", stored)
		assert.False(t, ok, stored)
		assert.Error(t, err, stored)
	}
}

func TestVerifyWithRehashUpgradesParams(t *testing.T) {
	old := NewPasswordHasher(cheapParams)
	stored, err := old.Hash("upgrade-me")
	require.NoError(t, err)

	current := NewPasswordHasher(
		ArgonParams{Memory: 2048, Time: 1, Threads: 1, KeyLen: 32},
	)

	ok, newHash, err := current.VerifyWithRehash("upgrade-me", stored)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NotEmpty(t, newHash)
	assert.Contains(t, newHash, "m=2048")

	ok, newHash, err = current.VerifyWithRehash("upgrade-me", newHash)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, newHash)
}

func TestVerifyTimingSafeWithoutHash(t *testing.T) {
	h := NewPasswordHasher(cheapParams)

	ok, newHash, err := h.VerifyTimingSafe("whatever", nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, newHash)

	empty := ""
	ok, _, err = h.VerifyTimingSafe("whatever", &empty)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenHashing(t *testing.T) {
	token, err := GenerateSessionToken()
	require.NoError(t, err)
	assert.NotContains(t, token, "=")

	hash := HashToken(token)
	assert.Len(t, hash, 64)
	assert.Equal(t, hash, HashToken(token))
	assert.NotEqual(t, hash, HashToken(token+"x"))
}
