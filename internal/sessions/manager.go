package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codeberg.org/algrv/playground/internal/cache"
	"codeberg.org/algrv/playground/internal/logger"
	"codeberg.org/algrv/playground/internal/metrics"
	"codeberg.org/algrv/playground/playground/sessions"
)

// returns a new session manager
func NewManager(store Store, sessionCache Cache) *Manager {
	return &Manager{
		store: store,
		cache: sessionCache,
		now:   time.Now,
	}
}

// creates an empty session for the owner and caches it
func (m *Manager) Create(ctx context.Context, ownerID string) (*sessions.Session, error) {
	session, err := m.store.Create(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	m.writeThrough(ctx, session)

	return session, nil
}

// returns all of the owner's sessions, most recently updated first; never served from cache
func (m *Manager) List(ctx context.Context, ownerID string) ([]sessions.Session, error) {
	list, err := m.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	if list == nil {
		list = []sessions.Session{}
	}

	return list, nil
}

// returns the session if the owner holds it, preferring the cached snapshot
func (m *Manager) Get(ctx context.Context, sessionID, ownerID string) (*sessions.Session, error) {
	if cached, ok := m.lookup(ctx, sessionID); ok {
		// a cache hit never bypasses the ownership check the store enforces
		if cached.OwnerID != ownerID {
			metrics.RecordCacheLookup(metrics.CacheForeign)
			return nil, ErrSessionNotFound
		}

		metrics.RecordCacheLookup(metrics.CacheHit)
		return cached, nil
	}

	session, err := m.store.Get(ctx, sessionID, ownerID)
	if errors.Is(err, sessions.ErrSessionNotFound) {
		return nil, ErrSessionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	m.writeThrough(ctx, session)

	return session, nil
}

// applies a partial update and refreshes the cached snapshot with the result
func (m *Manager) Update(
	ctx context.Context,
	sessionID, ownerID string,
	req sessions.UpdateSessionRequest,
) (*sessions.Session, error) {
	if req.Chat != nil {
		req.Chat.StampMissing(m.now().UTC())
	}

	session, err := m.store.Update(ctx, sessionID, ownerID, req)
	if errors.Is(err, sessions.ErrSessionNotFound) {
		return nil, ErrSessionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	m.writeThrough(ctx, session)

	return session, nil
}

// reads the cache; every failure mode degrades to a miss
func (m *Manager) lookup(ctx context.Context, sessionID string) (*sessions.Session, bool) {
	cached, err := m.cache.Get(ctx, sessionID)

	switch {
	case err == nil:
		return cached, true
	case errors.Is(err, cache.ErrCacheMiss):
		metrics.RecordCacheLookup(metrics.CacheMiss)
	case errors.Is(err, cache.ErrCacheUnavailable):
		metrics.RecordCacheLookup(metrics.CacheError)
		logger.FromContext(ctx).Warn("session cache read failed, falling back to store",
			"session_id", sessionID,
			"error", err,
		)
	default:
		// undecodable entry, the write-through after the store read replaces it
		metrics.RecordCacheLookup(metrics.CacheCorrupt)
		logger.FromContext(ctx).Warn("discarding unreadable cached session",
			"session_id", sessionID,
			"error", err,
		)
	}

	return nil, false
}

// store already committed; a cache failure is logged and never fails the caller
func (m *Manager) writeThrough(ctx context.Context, session *sessions.Session) {
	if err := m.cache.Set(ctx, session); err != nil {
		metrics.RecordCacheWriteFailure()
		logger.FromContext(ctx).Warn("failed to refresh session cache",
			"session_id", session.ID,
			"error", err,
		)
	}
}
