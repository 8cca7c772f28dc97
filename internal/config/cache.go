package config

import "time"

// CacheConfig controls the response cache middleware. Caching is disabled
// when Enabled is false or no Redis client is available. Entries are keyed
// by route and query string and expire after TTL, which also bounds how
// stale a cached seating list can be after a mutation.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig builds a CacheConfig from environment variables with
// defaults suited to short-lived read caching.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		Prefix:       envStr("CACHE_PREFIX", "cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}
