package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/progress-tracker-api/internal/models"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, "secret123", hash)
	assert.True(t, CheckPassword("secret123", hash))
	assert.False(t, CheckPassword("wrong", hash))
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret")
	user := &models.User{ID: "u-1", Username: "alice", Role: models.RoleAdmin}

	raw, err := m.Issue(user)
	require.NoError(t, err)

	claims, err := m.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	raw, err := NewTokenManager("one").Issue(&models.User{ID: "u-1"})
	require.NoError(t, err)

	_, err = NewTokenManager("two").Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	m := NewTokenManager("test-secret")
	m.now = func() time.Time { return time.Now().Add(-31 * 24 * time.Hour) }
	raw, err := m.Issue(&models.User{ID: "u-1"})
	require.NoError(t, err)

	_, err = NewTokenManager("test-secret").Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsOtherAlgorithms(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{UserID: "u-1"})
	raw, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewTokenManager("test-secret").Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("test-secret").Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
