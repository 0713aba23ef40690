package sessions

import (
	stderrors "errors"
	"net/http"
	"strings"

	"codeberg.org/algrv/playground/internal/auth"
	"codeberg.org/algrv/playground/internal/errors"
	"codeberg.org/algrv/playground/internal/sessions"
	playground "codeberg.org/algrv/playground/playground/sessions"
	"github.com/gin-gonic/gin"
)

// CreateSessionHandler creates an empty session for the authenticated user
func CreateSessionHandler(sessionService SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		session, err := sessionService.Create(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to create session", err)
			return
		}

		c.JSON(http.StatusCreated, session)
	}
}

// ListSessionsHandler lists the authenticated user's sessions, most recent first
func ListSessionsHandler(sessionService SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		list, err := sessionService.List(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to list sessions", err)
			return
		}

		c.JSON(http.StatusOK, list)
	}
}

// GetSessionHandler gets a single session owned by the authenticated user
func GetSessionHandler(sessionService SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		// cache keys use the canonical lowercase form
		sessionID := strings.ToLower(c.Param("id"))
		if !errors.IsValidUUID(sessionID) {
			errors.SessionNotFound(c)
			return
		}

		session, err := sessionService.Get(c.Request.Context(), sessionID, userID)
		if err != nil {
			respondSessionError(c, "failed to load session", err)
			return
		}

		c.JSON(http.StatusOK, session)
	}
}

// UpdateSessionHandler godoc
// @Summary Update a session
// @Description Replace any subset of chat, code and ui_state on a session owned by the caller
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body sessions.UpdateSessionRequest true "Fields to replace"
// @Success 200 {object} sessions.Session
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/sessions/{id} [put]
func UpdateSessionHandler(sessionService SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		// cache keys use the canonical lowercase form
		sessionID := strings.ToLower(c.Param("id"))
		if !errors.IsValidUUID(sessionID) {
			errors.SessionNotFound(c)
			return
		}

		var req playground.UpdateSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		// nothing to write, answer with the current record
		if req.IsEmpty() {
			session, err := sessionService.Get(c.Request.Context(), sessionID, userID)
			if err != nil {
				respondSessionError(c, "failed to load session", err)
				return
			}

			c.JSON(http.StatusOK, session)
			return
		}

		session, err := sessionService.Update(c.Request.Context(), sessionID, userID, req)
		if err != nil {
			respondSessionError(c, "failed to update session", err)
			return
		}

		c.JSON(http.StatusOK, session)
	}
}

func respondSessionError(c *gin.Context, message string, err error) {
	if stderrors.Is(err, sessions.ErrSessionNotFound) {
		errors.SessionNotFound(c)
		return
	}

	errors.InternalError(c, message, err)
}
