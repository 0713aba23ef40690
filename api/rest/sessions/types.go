package sessions

import (
	"context"

	"codeberg.org/algrv/playground/playground/sessions"
)

// session access layer consumed by the handlers
type SessionService interface {
	Create(ctx context.Context, ownerID string) (*sessions.Session, error)
	List(ctx context.Context, ownerID string) ([]sessions.Session, error)
	Get(ctx context.Context, sessionID, ownerID string) (*sessions.Session, error)
	Update(ctx context.Context, sessionID, ownerID string, req sessions.UpdateSessionRequest) (*sessions.Session, error)
}
