package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time          { return f.now }
func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func TestContextCache_PutGet(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	cache := NewContextCache(time.Minute, clock.Now)

	hints := &Hints{SessionID: "s1", TechStack: []string{"go"}}
	cache.Put(hints)

	got := cache.Get("s1")
	require.NotNil(t, got)
	assert.Equal(t, hints, got)
	assert.Nil(t, cache.Get("other"))
}

func TestContextCache_Expiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	cache := NewContextCache(time.Minute, clock.Now)

	cache.Put(&Hints{SessionID: "s1"})

	clock.Advance(59 * time.Second)
	assert.NotNil(t, cache.Get("s1"))

	clock.Advance(2 * time.Second)
	assert.Nil(t, cache.Get("s1"))
	assert.Equal(t, 0, cache.Len())
}

func TestContextCache_Purge(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	cache := NewContextCache(time.Minute, clock.Now)

	cache.Put(&Hints{SessionID: "old"})
	clock.Advance(2 * time.Minute)
	cache.Put(&Hints{SessionID: "fresh"})

	assert.Equal(t, 1, cache.Purge())
	assert.Equal(t, 1, cache.Len())
	assert.NotNil(t, cache.Get("fresh"))
}

func TestContextCache_IgnoresAnonymousHints(t *testing.T) {
	cache := NewContextCache(0, nil)

	cache.Put(nil)
	cache.Put(&Hints{TechStack: []string{"go"}})

	assert.Equal(t, 0, cache.Len())
}

func TestHints_Richness(t *testing.T) {
	assert.Equal(t, 0.0, (*Hints)(nil).Richness())
	assert.Equal(t, 0.0, (&Hints{}).Richness())

	rich := &Hints{
		ProjectPath: "/work/app",
		TechStack:   []string{"go", "postgres", "redis", "extra"},
		RecentFiles: []string{"a.go", "b.go"},
	}
	assert.InDelta(t, 0.15+0.6+0.16, rich.Richness(), 1e-9)

	sparse := &Hints{TechStack: []string{"go"}}
	assert.Less(t, sparse.Richness(), rich.Richness())
}
