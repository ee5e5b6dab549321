package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartchakula/internal/model"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, 0)
	user := &model.User{UID: "u-1", Email: "o@d.com", Role: model.RoleOwner}

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, model.RoleOwner, claims.Role)
	assert.NotEmpty(t, claims.ID)

	id := claims.Identity()
	assert.Equal(t, "u-1", id.UID)
	assert.Equal(t, "o@d.com", id.Email)
	assert.Equal(t, claims.ID, id.TokenID)
	assert.True(t, id.HasRole(model.RoleAdmin, model.RoleOwner))
	assert.Equal(t, DefaultRefreshTokenExpiry, svc.RefreshExpiry())
}

func TestJWTService_RefreshTokenID(t *testing.T) {
	svc := NewJWTService("test-secret", 0, 0)
	user := &model.User{UID: "u-2", Email: "m@d.com", Role: model.RoleManager}

	tokenID, token, err := svc.GenerateRefreshToken(user)
	require.NoError(t, err)

	extracted, err := svc.ExtractTokenID(token)
	require.NoError(t, err)
	assert.Equal(t, tokenID, extracted)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, time.Hour)
	other := NewJWTService("other-secret", time.Hour, time.Hour)
	expired := NewJWTService("test-secret", time.Nanosecond, time.Hour)
	user := &model.User{UID: "u-3", Email: "x@y.com", Role: model.RoleUser}

	foreign, err := other.GenerateAccessToken(user)
	require.NoError(t, err)
	_, err = svc.ValidateToken(foreign)
	assert.Error(t, err)

	stale, err := expired.GenerateAccessToken(user)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = svc.ValidateToken(stale)
	assert.Error(t, err)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestJWTService_TokenTypes(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, time.Hour)
	user := &model.User{UID: "u-4", Email: "a@d.com", Role: model.RoleAdmin}

	access, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	_, refresh, err := svc.GenerateRefreshToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeAccess, claims.Type)

	claims, err = svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.Type)

	_, err = svc.ValidateAccessToken(refresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)
	_, err = svc.ValidateRefreshToken(access)
	assert.ErrorIs(t, err, ErrWrongTokenType)
	_, err = svc.ExtractTokenID(access)
	assert.Error(t, err)
}
