package sessions

import (
	"context"
	"time"

	"codeberg.org/algrv/playground/playground/sessions"
)

// authoritative session persistence
type Store interface {
	Create(ctx context.Context, ownerID string) (*sessions.Session, error)
	ListByOwner(ctx context.Context, ownerID string) ([]sessions.Session, error)
	Get(ctx context.Context, sessionID, ownerID string) (*sessions.Session, error)
	Update(ctx context.Context, sessionID, ownerID string, req sessions.UpdateSessionRequest) (*sessions.Session, error)
}

// evictable snapshot cache keyed by session id
type Cache interface {
	Get(ctx context.Context, sessionID string) (*sessions.Session, error)
	Set(ctx context.Context, session *sessions.Session) error
}

// coordinates cache-aside reads and write-through updates across Store and Cache
type Manager struct {
	store Store
	cache Cache
	now   func() time.Time
}
