package sessions

import (
	"errors"

	"codeberg.org/algrv/playground/playground/sessions"
)

var (
	// session absent or owned by someone else
	ErrSessionNotFound = sessions.ErrSessionNotFound

	// durable store could not complete the operation
	ErrStoreUnavailable = errors.New("session store unavailable")
)
