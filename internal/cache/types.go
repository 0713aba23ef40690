package cache

import (
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// redis key for a cached session snapshot
	keySession = "session:%s"

	// pattern matching every cached session snapshot
	keySessionPattern = "session:*"
)

var (
	ErrCacheMiss        = errors.New("session not in cache")
	ErrCacheUnavailable = errors.New("session cache unavailable")
)

// Redis-backed cache of full session snapshots keyed by session id
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// summary of a cached entry for operator tooling
type Entry struct {
	Key       string
	SessionID string
	Size      int
	TTL       time.Duration
}
