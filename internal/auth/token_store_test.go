package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenStore_WithoutRedis(t *testing.T) {
	store := NewTokenStore(nil)
	ctx := context.Background()

	assert.NoError(t, store.StoreRefreshToken(ctx, "jti-1", "u-1", time.Hour))
	_, err := store.GetRefreshToken(ctx, "jti-1")
	assert.Error(t, err, "a missing cache never yields refresh tokens")

	assert.NoError(t, store.BlacklistAccessToken(ctx, "jti-2", time.Hour))
	blacklisted, err := store.IsAccessTokenBlacklisted(ctx, "jti-2")
	assert.NoError(t, err)
	assert.False(t, blacklisted)
	assert.NoError(t, store.DeleteRefreshToken(ctx, "jti-1"))
}
