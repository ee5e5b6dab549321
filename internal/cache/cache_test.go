package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNilClientBehavesLikeEmptyCache(t *testing.T) {
	var c *Client
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "restaurant:1", []byte("x"), time.Minute))
	data, err := c.Get(ctx, "restaurant:1")
	assert.NoError(t, err)
	assert.Nil(t, data)

	var dst map[string]string
	assert.False(t, c.GetJSON(ctx, "restaurant:1", &dst))
	c.SetJSON(ctx, "restaurant:1", map[string]string{"a": "b"}, time.Minute)
	assert.NoError(t, c.Delete(ctx, "restaurant:1", "restaurant:2"))
	assert.NoError(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}

func TestUnreachableRedisFailsSafe(t *testing.T) {
	// nothing listens on port 1; every call degrades to a miss
	c := New("127.0.0.1:1", "", 0, "test:")
	defer c.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	data, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, data)
	assert.Error(t, c.Ping(ctx))
}
