package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *time.Time) {
	t.Helper()
	c := New(true)
	t.Cleanup(c.Close)
	now := time.Date(2025, 11, 2, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestSetGet(t *testing.T) {
	c, _ := newTestCache(t)

	etag := c.Set("k", []byte(`{"a":1}`), time.Minute)
	data, got, ok := c.Get("k")

	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(data))
	assert.Equal(t, etag, got)
	assert.Equal(t, ComputeETag([]byte(`{"a":1}`)), etag)
}

func TestExpiry(t *testing.T) {
	c, now := newTestCache(t)
	c.Set("k", []byte("x"), time.Minute)

	*now = now.Add(2 * time.Minute)
	_, _, ok := c.Get("k")
	assert.False(t, ok)

	c.evict()
	assert.Equal(t, 0, c.Stats()["total_keys"])
}

func TestDisabled(t *testing.T) {
	c := New(false)
	etag := c.Set("k", []byte("x"), time.Minute)

	_, _, ok := c.Get("k")
	assert.False(t, ok)
	assert.NotEmpty(t, etag)
	assert.Equal(t, false, c.Stats()["enabled"])
}

func TestPurge(t *testing.T) {
	c, _ := newTestCache(t)
	c.Set(LeagueKey("L1", "standings"), []byte("a"), time.Minute)
	c.Set(LeagueKey("L1", "luck"), []byte("b"), time.Minute)
	c.Set(LeagueKey("L2", "luck"), []byte("c"), time.Minute)

	assert.Equal(t, 2, c.Purge(LeaguePrefix("L1")))
	_, _, ok := c.Get(LeagueKey("L2", "luck"))
	assert.True(t, ok)
}

func TestCheckETagMatch(t *testing.T) {
	etag := ComputeETag([]byte("x"))

	assert.False(t, CheckETagMatch("", etag))
	assert.True(t, CheckETagMatch("*", etag))
	assert.True(t, CheckETagMatch(etag, etag))
	assert.True(t, CheckETagMatch(`W/"nope", `+etag, etag))
	assert.False(t, CheckETagMatch(`W/"nope"`, etag))
}
