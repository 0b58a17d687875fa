package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNetworkCache_SetGetInvalidate(t *testing.T) {
	c := NewNetworkCache(time.Minute)

	_, ok := c.Get(KeyGrammarNetwork)
	assert.False(t, ok)

	gen := c.Generation()
	assert.True(t, c.SetIfCurrent(KeyGrammarNetwork, "grammar", gen))
	assert.True(t, c.SetIfCurrent(KeySimilarityNetwork, "similarity", gen))
	v, ok := c.Get(KeyGrammarNetwork)
	assert.True(t, ok)
	assert.Equal(t, "grammar", v)

	c.Invalidate()
	_, ok = c.Get(KeySimilarityNetwork)
	assert.False(t, ok)
	_, ok = c.Get(KeyGrammarNetwork)
	assert.False(t, ok)
}

func TestNetworkCache_RejectsBuildFromBeforeInvalidate(t *testing.T) {
	c := NewNetworkCache(time.Minute)

	gen := c.Generation()
	c.Invalidate()

	assert.False(t, c.SetIfCurrent(KeyGrammarNetwork, "stale", gen))
	_, ok := c.Get(KeyGrammarNetwork)
	assert.False(t, ok)

	assert.True(t, c.SetIfCurrent(KeyGrammarNetwork, "fresh", c.Generation()))
	v, ok := c.Get(KeyGrammarNetwork)
	assert.True(t, ok)
	assert.Equal(t, "fresh", v)
}

func TestNetworkCache_Expires(t *testing.T) {
	c := NewNetworkCache(20 * time.Millisecond)
	c.SetIfCurrent(KeyGrammarNetwork, 1, c.Generation())

	time.Sleep(40 * time.Millisecond)
	_, ok := c.Get(KeyGrammarNetwork)
	assert.False(t, ok)
}

func TestNetworkCache_Disabled(t *testing.T) {
	c := NewNetworkCache(0)
	assert.False(t, c.SetIfCurrent(KeyGrammarNetwork, 1, c.Generation()))

	_, ok := c.Get(KeyGrammarNetwork)
	assert.False(t, ok)

	var nilCache *NetworkCache
	assert.False(t, nilCache.SetIfCurrent(KeyGrammarNetwork, 1, nilCache.Generation()))
	nilCache.Invalidate()
	_, ok = nilCache.Get(KeyGrammarNetwork)
	assert.False(t, ok)
}
