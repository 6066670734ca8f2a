package filter

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/selectmenu/internal/log"
)

const (
	defaultExpiration      = 10 * time.Minute
	defaultCleanupInterval = 30 * time.Minute
)

// memo is a typed view over a go-cache instance.
type memo[V any] struct {
	cache *gocache.Cache
}

func newMemo[V any](expiration, cleanup time.Duration) *memo[V] {
	return &memo[V]{cache: gocache.New(expiration, cleanup)}
}

func (m *memo[V]) get(key string) (V, bool) {
	var zero V

	value, found := m.cache.Get(key)
	if !found {
		return zero, false
	}
	v, ok := value.(V)
	if !ok {
		log.Error(log.CatFilter, "wrong type assertion when getting value", "key", key)
		return zero, false
	}
	return v, true
}

func (m *memo[V]) set(key string, value V) {
	m.cache.Set(key, value, gocache.DefaultExpiration)
}

func (m *memo[V]) len() int {
	return m.cache.ItemCount()
}

func (m *memo[V]) flush() {
	m.cache.Flush()
}
