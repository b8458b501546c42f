package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/postguard/postguard/pkg/infra/cache"
)

func TestTTLMap_SetAndGet(t *testing.T) {
	m := cache.NewTTLMap(time.Minute)
	m.Set("key", "value")

	got, found := m.Get("key")
	assert.True(t, found)
	assert.Equal(t, "value", got)
	assert.Equal(t, 1, m.Len())
}

func TestTTLMap_ExpiredEntryDropped(t *testing.T) {
	m := cache.NewTTLMap(10 * time.Millisecond)
	m.Set("key", "value")

	time.Sleep(20 * time.Millisecond)

	_, found := m.Get("key")
	assert.False(t, found)
}

func TestTTLMap_Delete(t *testing.T) {
	m := cache.NewTTLMap(time.Minute)
	m.Set("key", "value")
	m.Delete("key")

	_, found := m.Get("key")
	assert.False(t, found)
}

func TestTTLMap_Clear(t *testing.T) {
	m := cache.NewTTLMap(time.Minute)
	m.Set("a", 1)
	m.Set("b", 2)
	m.Clear()

	assert.Equal(t, 0, m.Len())
}
