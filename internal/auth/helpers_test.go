package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Passw0rd!")
	require.NoError(t, err)
	assert.NotEqual(t, "Passw0rd!", hash)
	assert.True(t, CheckPasswordHash("Passw0rd!", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestJWTRoundTrip(t *testing.T) {
	id := &Identity{
		ID:        "65a000000000000000000001",
		Name:      "Test Rider",
		Email:     "rider@pfw.edu",
		Role:      RoleUser,
		StudentID: "900123456",
	}
	token, err := GenerateJWT(id, time.Minute)
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.Identity())
}

func TestJWTExpired(t *testing.T) {
	id := &Identity{ID: "x", Email: "rider@pfw.edu", Role: RoleUser}
	token, err := GenerateJWT(id, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestJWTGarbage(t *testing.T) {
	_, err := ValidateJWT("not-a-token")
	assert.Error(t, err)
}

// the signing key must be read at call time, so a key loaded from .env after
// package init (or rotated at runtime) takes effect
func TestJWTKeyReadAtCallTime(t *testing.T) {
	t.Setenv("JWT_KEY", "first-key")
	id := &Identity{ID: "x", Email: "rider@pfw.edu", Role: RoleUser}
	token, err := GenerateJWT(id, time.Minute)
	require.NoError(t, err)

	_, err = ValidateJWT(token)
	require.NoError(t, err)

	t.Setenv("JWT_KEY", "rotated-key")
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestJWTWithoutExpiryRejected(t *testing.T) {
	claims := &JWTClaims{UserID: "x", Email: "rider@pfw.edu", Role: RoleUser}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(GetJWTKey())
	require.NoError(t, err)

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestResetTokenHashing(t *testing.T) {
	plain, hash, err := NewResetToken()
	require.NoError(t, err)
	assert.NotEmpty(t, plain)
	assert.NotEqual(t, plain, hash)
	assert.Equal(t, hash, HashResetToken(plain))

	plain2, hash2, err := NewResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, plain, plain2)
	assert.NotEqual(t, hash, hash2)
}
