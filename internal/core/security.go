// AngelaMos | 2026
// security.go

package core

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	hashDelimiter = "$"
	saltLength    = 16

	maxArgonTime   = 16
	maxArgonMemory = 1024 * 1024
)

// b64 is strict so that a stored form has exactly one accepted spelling:
// flipping unused trailing bits must not decode to the same bytes.
var b64 = base64.RawStdEncoding.Strict()

// ArgonParams are the argon2id cost settings embedded in every stored hash.
type ArgonParams struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	KeyLen  uint32
}

var DefaultArgonParams = ArgonParams{
	Memory:  64 * 1024,
	Time:    1,
	Threads: 4,
	KeyLen:  32,
}

// PasswordHasher derives and verifies argon2id password hashes. The stored
// form is $argon2id$v=19$m=..,t=..,p=..$<salt>$<key>.
type PasswordHasher struct {
	params ArgonParams
}

func NewPasswordHasher(params ArgonParams) *PasswordHasher {
	return &PasswordHasher{params: params}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey(
		[]byte(password),
		salt,
		h.params.Time,
		h.params.Memory,
		h.params.Threads,
		h.params.KeyLen,
	)

	encoded := strings.Join([]string{
		"",
		"argon2id",
		fmt.Sprintf("v=%d", argon2.Version),
		fmt.Sprintf(
			"m=%d,t=%d,p=%d",
			h.params.Memory,
			h.params.Time,
			h.params.Threads,
		),
		b64.EncodeToString(salt),
		b64.EncodeToString(key),
	}, hashDelimiter)

	return encoded, nil
}

// Verify reports whether password matches encodedHash. A malformed stored
// form is returned as an error, never as a plain mismatch.
func (h *PasswordHasher) Verify(password, encodedHash string) (bool, error) {
	params, salt, key, err := decodeHash(encodedHash)
	if err != nil {
		return false, err
	}

	otherKey := argon2.IDKey(
		[]byte(password),
		salt,
		params.Time,
		params.Memory,
		params.Threads,
		params.KeyLen,
	)

	return subtle.ConstantTimeCompare(key, otherKey) == 1, nil
}

func (h *PasswordHasher) VerifyWithRehash(
	password, encodedHash string,
) (bool, string, error) {
	valid, err := h.Verify(password, encodedHash)
	if err != nil {
		return false, "", err
	}

	if !valid {
		return false, "", nil
	}

	if h.needsRehash(encodedHash) {
		newHash, hashErr := h.Hash(password)
		if hashErr != nil {
			//nolint:nilerr // password verified successfully; rehash failure is non-critical
			return true, "", nil
		}
		return true, newHash, nil
	}

	return true, "", nil
}

// VerifyTimingSafe always performs one derivation, against a dummy hash
// when encodedHash is empty, so unknown accounts cost the same as known
// ones.
func (h *PasswordHasher) VerifyTimingSafe(
	password string,
	encodedHash *string,
) (bool, string, error) {
	hashToVerify := dummyHash
	if encodedHash != nil && *encodedHash != "" {
		hashToVerify = *encodedHash
	}

	valid, newHash, err := h.VerifyWithRehash(password, hashToVerify)

	if encodedHash == nil || *encodedHash == "" {
		return false, "", nil
	}

	return valid, newHash, err
}

func (h *PasswordHasher) needsRehash(encodedHash string) bool {
	params, _, _, err := decodeHash(encodedHash)
	if err != nil {
		return true
	}

	return *params != h.params
}

var defaultHasher = NewPasswordHasher(DefaultArgonParams)

func HashPassword(password string) (string, error) {
	return defaultHasher.Hash(password)
}

var dummyHash string

func init() {
	hash, err := HashPassword("dummy_password_for_timing_attack_prevention")
	if err != nil {
		panic(fmt.Sprintf("security: failed to generate dummy hash: %v", err))
	}
	dummyHash = hash
}

func decodeHash(encodedHash string) (*ArgonParams, []byte, []byte, error) {
	parts := strings.Split(encodedHash, hashDelimiter)
	if len(parts) != 6 || parts[0] != "" {
		return nil, nil, nil, fmt.Errorf("invalid hash format")
	}

	if parts[1] != "argon2id" {
		return nil, nil, nil, fmt.Errorf("unsupported algorithm: %s", parts[1])
	}

	var version int
	if err := scanExact(parts[2], "v=%d", &version); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid version: %w", err)
	}

	if version != argon2.Version {
		return nil, nil, nil, fmt.Errorf("incompatible version: %d", version)
	}

	params := &ArgonParams{}
	err := scanExact(
		parts[3],
		"m=%d,t=%d,p=%d",
		&params.Memory,
		&params.Time,
		&params.Threads,
	)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid params: %w", err)
	}

	// argon2 clamps and rounds memory to a multiple of 4*threads; only the
	// canonical value is accepted so two spellings never derive one key.
	if params.Time < 1 || params.Time > maxArgonTime ||
		params.Threads < 1 ||
		params.Memory < 8*uint32(params.Threads) ||
		params.Memory%(4*uint32(params.Threads)) != 0 ||
		params.Memory > maxArgonMemory {
		return nil, nil, nil, fmt.Errorf("invalid params: out of range")
	}

	salt, err := b64.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("decode salt: %w", err)
	}

	key, err := b64.DecodeString(parts[5])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("decode hash: %w", err)
	}

	if len(salt) == 0 || len(key) == 0 {
		return nil, nil, nil, fmt.Errorf("invalid hash format")
	}

	//nolint:gosec // G115: key length is always small (32 bytes for Argon2id)
	params.KeyLen = uint32(len(key))

	return params, salt, key, nil
}

// scanExact parses s with format and requires the formatted values to
// round-trip, so "t=01" or "t=+1" are rejected rather than read as 1.
func scanExact(s, format string, args ...any) error {
	if _, err := fmt.Sscanf(s, format, args...); err != nil {
		return err
	}

	values := make([]any, len(args))
	for i, a := range args {
		switch p := a.(type) {
		case *int:
			values[i] = *p
		case *uint32:
			values[i] = *p
		case *uint8:
			values[i] = *p
		default:
			return fmt.Errorf("unsupported scan target %T", a)
		}
	}

	if fmt.Sprintf(format, values...) != s {
		return fmt.Errorf("non-canonical value %q", s)
	}

	return nil
}

func GenerateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

func GenerateSessionToken() (string, error) {
	return GenerateSecureToken(32)
}

func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
