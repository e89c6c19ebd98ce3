// Package usage serves the recorded request logs and token usage rollups.
package usage

import (
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/mandalnilabja/llmshim/internal/storage"
)

// Handlers holds the dependencies for usage HTTP handlers.
type Handlers struct {
	Storage storage.Storage
	Cache   *ristretto.Cache[string, any]
	TTL     time.Duration
}

// New creates usage handlers. A nil cache or zero ttl disables caching of
// usage statistics.
func New(store storage.Storage, cache *ristretto.Cache[string, any], ttl time.Duration) *Handlers {
	return &Handlers{
		Storage: store,
		Cache:   cache,
		TTL:     ttl,
	}
}

func statsCacheKey(filter storage.StatsFilter) string {
	return "usage:" + filter.CacheKey()
}

// cachedStats returns stats for filter, reading through the cache.
func (h *Handlers) cachedStats(filter storage.StatsFilter) (*storage.UsageStats, bool, error) {
	key := statsCacheKey(filter)
	if h.Cache != nil && h.TTL > 0 {
		if v, ok := h.Cache.Get(key); ok {
			if stats, ok := v.(*storage.UsageStats); ok {
				return stats, true, nil
			}
		}
	}

	stats, err := h.Storage.GetUsageStats(filter)
	if err != nil {
		return nil, false, err
	}

	if h.Cache != nil && h.TTL > 0 {
		h.Cache.SetWithTTL(key, stats, 1, h.TTL)
	}
	return stats, false, nil
}
