package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"codeberg.org/algrv/playground/internal/auth"
	"codeberg.org/algrv/playground/internal/errors"
	"codeberg.org/algrv/playground/internal/logger"
	"github.com/gin-gonic/gin"
)

const (
	serviceName  = "playground"
	readyTimeout = 2 * time.Second
)

// returns the server health status
func Handler(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Status:  "healthy",
		Service: serviceName,
		Version: "1.0.0",
	})
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}

// reports ready only when every dependency answers a ping
func ReadyHandler(pingers map[string]Pinger) gin.HandlerFunc {
	names := make([]string, 0, len(pingers))
	for name := range pingers {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()

		status := http.StatusOK
		resp := ReadyResponse{Status: "ready", Services: make(map[string]string, len(names))}

		for _, name := range names {
			if err := pingers[name].Ping(ctx); err != nil {
				logger.FromContext(ctx).Warn("readiness check failed", "service", name, "error", err)
				resp.Services[name] = "unavailable"
				resp.Status = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}

			resp.Services[name] = "ok"
		}

		c.JSON(status, resp)
	}
}

// returns the authenticated identity
func MeHandler(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		UserID: userID,
		Email:  auth.GetUserEmail(c),
	})
}
