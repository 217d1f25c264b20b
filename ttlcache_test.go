package aclhelper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLCacheExpiry(t *testing.T) {
	c := newTTLCache[string, int]()
	c.Set("a", 1, 10*time.Millisecond)

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	time.Sleep(20 * time.Millisecond)
	_, ok = c.Get("a")
	assert.False(t, ok)
}

func TestTTLCacheForeverNeverExpires(t *testing.T) {
	c := newTTLCache[string, int]()
	c.SetForever("a", 1)
	time.Sleep(5 * time.Millisecond)

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestTTLCacheMissingKey(t *testing.T) {
	c := newTTLCache[string, int]()
	_, ok := c.Get("missing")
	assert.False(t, ok)
}
