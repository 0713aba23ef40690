package sessions

import (
	"codeberg.org/algrv/playground/internal/auth"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, sessionService SessionService) {
	sessionsGroup := router.Group("/sessions")
	sessionsGroup.Use(auth.AuthMiddleware())
	{
		sessionsGroup.POST("", CreateSessionHandler(sessionService))
		sessionsGroup.GET("", ListSessionsHandler(sessionService))
		sessionsGroup.GET("/:id", GetSessionHandler(sessionService))
		sessionsGroup.PUT("/:id", UpdateSessionHandler(sessionService))
	}
}
