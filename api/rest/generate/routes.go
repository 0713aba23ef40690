package generate

import (
	"codeberg.org/algrv/playground/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers component generation routes; rateLimit runs after authentication so it can key on the user
func RegisterRoutes(router *gin.RouterGroup, componentGenerator ComponentGenerator, rateLimit gin.HandlerFunc) {
	router.POST("/generate", auth.AuthMiddleware(), rateLimit, Handler(componentGenerator))
}
