package main

import (
	"time"

	"codeberg.org/algrv/playground/api/rest/generate"
	"codeberg.org/algrv/playground/api/rest/health"
	"codeberg.org/algrv/playground/api/rest/sessions"
	"codeberg.org/algrv/playground/internal/auth"
	"codeberg.org/algrv/playground/internal/logger"
	"codeberg.org/algrv/playground/internal/metrics"
	"codeberg.org/algrv/playground/internal/ratelimit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware(server.config.AllowedOrigins))
	router.Use(logger.Middleware())
	router.Use(metrics.Middleware())

	router.GET("/health", health.Handler)
	router.GET("/ready", health.ReadyHandler(map[string]health.Pinger{
		"postgres": server.db,
		"redis":    server.sessionCache,
	}))
	router.GET("/metrics", metrics.Handler())

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)
		v1.GET("/me", auth.AuthMiddleware(), health.MeHandler)

		sessions.RegisterRoutes(v1, server.sessionMgr)
		generate.RegisterRoutes(v1, server.services.Generator, ratelimit.Middleware(server.rateLimiter))
	}
}

// allows the configured frontend origins to call the API with bearer tokens
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
