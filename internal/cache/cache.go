package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"codeberg.org/algrv/playground/internal/logger"
	"codeberg.org/algrv/playground/playground/sessions"
)

// connects to redis and verifies the connection
func NewSessionCache(redisURL string, ttl time.Duration) (*SessionCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("connected to redis", "session_ttl", ttl.String())

	return NewSessionCacheFromClient(client, ttl), nil
}

// wraps an existing client, used with miniredis in tests
func NewSessionCacheFromClient(client *redis.Client, ttl time.Duration) *SessionCache {
	return &SessionCache{
		client: client,
		ttl:    ttl,
	}
}

// closes the Redis connection
func (c *SessionCache) Close() error {
	return c.client.Close()
}

// returns the underlying Redis client for shared use (rate limiting, readiness)
func (c *SessionCache) Client() *redis.Client {
	return c.client
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf(keySession, sessionID)
}

// stores the full session snapshot, replacing any previous entry
func (c *SessionCache) Set(ctx context.Context, session *sessions.Session) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("cannot cache session without id")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := c.client.Set(ctx, sessionKey(session.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %w", ErrCacheUnavailable, session.ID, err)
	}

	return nil
}

// returns the raw cached payload, ErrCacheMiss when absent
func (c *SessionCache) GetRaw(ctx context.Context, sessionID string) ([]byte, error) {
	data, err := c.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}

	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %w", ErrCacheUnavailable, sessionID, err)
	}

	return data, nil
}

// returns the cached session, ErrCacheMiss when absent
func (c *SessionCache) Get(ctx context.Context, sessionID string) (*sessions.Session, error) {
	data, err := c.GetRaw(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var session sessions.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode cached session %s: %w", sessionID, err)
	}

	return &session, nil
}

// removes a cached session; removing an absent key is not an error
func (c *SessionCache) Evict(ctx context.Context, sessionID string) error {
	if err := c.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: del %s: %w", ErrCacheUnavailable, sessionID, err)
	}

	return nil
}

// lists cached session entries using SCAN so large keyspaces are not blocked
func (c *SessionCache) List(ctx context.Context) ([]Entry, error) {
	var entries []Entry

	iter := c.client.Scan(ctx, 0, keySessionPattern, 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		pipe := c.client.Pipeline()
		strlen := pipe.StrLen(ctx, key)
		ttl := pipe.TTL(ctx, key)

		if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: inspect %s: %w", ErrCacheUnavailable, key, err)
		}

		entries = append(entries, Entry{
			Key:       key,
			SessionID: strings.TrimPrefix(key, "session:"),
			Size:      int(strlen.Val()),
			TTL:       ttl.Val(),
		})
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%w: scan: %w", ErrCacheUnavailable, err)
	}

	return entries, nil
}

// checks the connection, used by the readiness probe
func (c *SessionCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
