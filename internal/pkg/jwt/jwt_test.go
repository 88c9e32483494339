package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", "8h", "720h").(*JWTService)
	fixed := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	token, exp, err := svc.GenerateAccessToken(7, "hr@example.com", []user.Role{user.RoleHRAdmin}, false)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, fixed.Add(8*time.Hour), exp)

	_, remember, err := svc.GenerateAccessToken(7, "hr@example.com", nil, true)
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(720*time.Hour), remember)
}

func TestGenerateAccessToken_BadDuration(t *testing.T) {
	svc := NewJWTService("test-secret", "eight hours", "720h")
	_, _, err := svc.GenerateAccessToken(1, "a@b.c", nil, false)
	assert.Error(t, err)
}

func TestClaimsRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "1h", "720h")
	token, _, err := svc.GenerateAccessToken(42, "admin@example.com", []user.Role{user.RoleAdmin, user.RoleEmployee}, false)
	require.NoError(t, err)

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	ctx := jwtauth.NewContext(context.Background(), decoded, nil)
	claims, err := ClaimsFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, []user.Role{user.RoleAdmin, user.RoleEmployee}, claims.Roles)
}

func TestNewContext(t *testing.T) {
	ctx := NewContext(context.Background(), Claims{UserID: 3, Email: "m@example.com", Roles: []user.Role{user.RoleManager}})
	claims, err := ClaimsFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), claims.UserID)
	assert.Equal(t, []user.Role{user.RoleManager}, claims.Roles)
}

func TestClaimsFromContext_Missing(t *testing.T) {
	_, err := ClaimsFromContext(context.Background())
	assert.Error(t, err)
}

func TestRevokeAndPurge(t *testing.T) {
	svc := NewJWTService("test-secret", "1h", "720h").(*JWTService)
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	svc.RevokeToken("expired", now.Add(-time.Minute))
	svc.RevokeToken("live", now.Add(time.Hour))
	assert.True(t, svc.IsTokenRevoked("expired"))
	assert.False(t, svc.IsTokenRevoked("other"))

	require.NoError(t, svc.PurgeRevoked(context.Background()))
	assert.False(t, svc.IsTokenRevoked("expired"))
	assert.True(t, svc.IsTokenRevoked("live"))
}
