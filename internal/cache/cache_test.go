package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestCache(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return New(rdb), mr
}

func TestClient_JSONRoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, ProfileKey("alice"), entry{Name: "alice", Count: 2}, time.Minute))
	assert.True(t, mr.Exists("profile:alice"))

	var got entry
	require.True(t, c.GetJSON(ctx, ProfileKey("alice"), &got))
	assert.Equal(t, entry{Name: "alice", Count: 2}, got)

	require.NoError(t, c.Delete(ctx, ProfileKey("alice")))
	assert.False(t, c.GetJSON(ctx, ProfileKey("alice"), &got))
}

func TestClient_Expiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	mr.FastForward(2 * time.Minute)

	v, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, v)
}

func TestClient_FailSafe(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()
	ctx := context.Background()

	v, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, v)
	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	assert.NoError(t, c.Delete(ctx, "k"))

	var nilClient *Client
	assert.False(t, nilClient.GetJSON(ctx, "k", &entry{}))
	assert.NoError(t, nilClient.SetJSON(ctx, "k", entry{}, time.Minute))
}

func TestClient_CorruptEntryIsMiss(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("profile:bob", "{not json"))

	var got entry
	assert.False(t, c.GetJSON(context.Background(), ProfileKey("bob"), &got))
}
