package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// creates the sessions table and index if they do not exist
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, querySchema); err != nil {
		return fmt.Errorf("failed to apply sessions schema: %w", err)
	}

	return nil
}

func (r *Repository) Create(ctx context.Context, ownerID string) (*Session, error) {
	session, err := scanSession(r.db.QueryRow(ctx, queryCreate, ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to insert session: %w", err)
	}

	return session, nil
}

// returns the owner's sessions, most recently updated first
func (r *Repository) ListByOwner(ctx context.Context, ownerID string) ([]Session, error) {
	rows, err := r.db.Query(ctx, queryListByOwner, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}

	defer rows.Close()
	sessions := []Session{}

	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}

		sessions = append(sessions, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return sessions, nil
}

func (r *Repository) Get(ctx context.Context, sessionID, ownerID string) (*Session, error) {
	session, err := scanSession(r.db.QueryRow(ctx, queryGet, sessionID, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

func (r *Repository) Update(
	ctx context.Context,
	sessionID, ownerID string,
	req UpdateSessionRequest,
) (*Session, error) {
	// nil arguments keep the current column value via COALESCE
	var chat, uiState any
	var jsx, css *string

	if req.Chat != nil {
		chat = req.Chat
	}

	if req.UIState != nil {
		uiState = req.UIState
	}

	if req.Code != nil {
		jsx = &req.Code.JSX
		css = &req.Code.CSS
	}

	session, err := scanSession(r.db.QueryRow(
		ctx,
		queryUpdate,
		chat,
		jsx,
		css,
		uiState,
		sessionID,
		ownerID,
	))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return session, nil
}

func scanSession(row pgx.Row) (*Session, error) {
	var s Session

	err := row.Scan(
		&s.ID,
		&s.OwnerID,
		&s.Chat,
		&s.Code.JSX,
		&s.Code.CSS,
		&s.UIState,
		&s.CreatedAt,
		&s.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	// cached copies round-trip through JSON, keep one canonical location
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()

	return &s, nil
}
