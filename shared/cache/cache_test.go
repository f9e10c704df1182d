package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	User     string   `json:"user"`
	Messages []string `json:"messages"`
}

func TestNew_WithoutRedisUsesMemory(t *testing.T) {
	c := New(nil, nil)

	_, ok := c.(*memoryCache)
	assert.True(t, ok)
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("round trips structs", func(t *testing.T) {
		c := NewMemoryCache()
		require.NoError(t, c.Save(ctx, "session:1", payload{User: "admin", Messages: []string{"hi"}}, 0))

		var got payload
		require.NoError(t, c.Get(ctx, "session:1", &got))
		assert.Equal(t, payload{User: "admin", Messages: []string{"hi"}}, got)
	})

	t.Run("keeps strings raw", func(t *testing.T) {
		c := NewMemoryCache()
		require.NoError(t, c.Save(ctx, "k", "plain", 0))

		var got string
		require.NoError(t, c.Get(ctx, "k", &got))
		assert.Equal(t, "plain", got)
	})

	t.Run("miss after delete", func(t *testing.T) {
		c := NewMemoryCache()
		require.NoError(t, c.Save(ctx, "k", "v", 0))
		require.NoError(t, c.Delete(ctx, "k"))

		var got string
		assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrMiss)
	})

	t.Run("expires with ttl", func(t *testing.T) {
		now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		c := &memoryCache{entries: map[string]entry{}, now: func() time.Time { return now }}
		require.NoError(t, c.Save(ctx, "k", "v", time.Minute))

		var got string
		require.NoError(t, c.Get(ctx, "k", &got))

		now = now.Add(time.Minute)
		assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrMiss)
	})
}
