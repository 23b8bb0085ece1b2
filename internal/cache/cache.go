package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores evidence lookups so repeated claims do not re-hit the
// reference corpus
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from an evidence query
func Key(query string) string {
	hash := sha256.Sum256([]byte(query))
	return "hguard:v1:" + hex.EncodeToString(hash[:])
}
