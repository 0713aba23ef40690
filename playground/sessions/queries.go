package sessions

const (
	querySchema = `
		CREATE TABLE IF NOT EXISTS playground_sessions (
			id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			owner_id   TEXT NOT NULL,
			chat       JSONB NOT NULL DEFAULT '[]'::jsonb,
			code_jsx   TEXT NOT NULL DEFAULT '',
			code_css   TEXT NOT NULL DEFAULT '',
			ui_state   JSONB NOT NULL DEFAULT '{}'::jsonb,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS playground_sessions_owner_updated_idx
			ON playground_sessions (owner_id, updated_at DESC);
	`

	queryCreate = `
		INSERT INTO playground_sessions (owner_id)
		VALUES ($1)
		RETURNING id, owner_id, chat, code_jsx, code_css, ui_state, created_at, updated_at
	`

	queryListByOwner = `
		SELECT id, owner_id, chat, code_jsx, code_css, ui_state, created_at, updated_at
		FROM playground_sessions
		WHERE owner_id = $1
		ORDER BY updated_at DESC
	`

	queryGet = `
		SELECT id, owner_id, chat, code_jsx, code_css, ui_state, created_at, updated_at
		FROM playground_sessions
		WHERE id = $1 AND owner_id = $2
	`

	queryUpdate = `
		UPDATE playground_sessions
		SET chat = COALESCE($1::jsonb, chat),
		    code_jsx = COALESCE($2, code_jsx),
		    code_css = COALESCE($3, code_css),
		    ui_state = COALESCE($4::jsonb, ui_state),
		    updated_at = NOW()
		WHERE id = $5 AND owner_id = $6
		RETURNING id, owner_id, chat, code_jsx, code_css, ui_state, created_at, updated_at
	`
)
