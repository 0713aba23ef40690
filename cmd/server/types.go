package main

import (
	"codeberg.org/algrv/playground/internal/cache"
	"codeberg.org/algrv/playground/internal/config"
	"codeberg.org/algrv/playground/internal/generator"
	"codeberg.org/algrv/playground/internal/llm"
	sessionmgr "codeberg.org/algrv/playground/internal/sessions"
	"codeberg.org/algrv/playground/playground/sessions"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ulule/limiter/v3"
)

// holds all dependencies and state for the API server
type Server struct {
	db           *pgxpool.Pool
	config       *config.Config
	sessionRepo  *sessions.Repository
	sessionCache *cache.SessionCache
	sessionMgr   *sessionmgr.Manager
	services     *Services
	rateLimiter  *limiter.Limiter
	router       *gin.Engine
}

// holds the generation clients
type Services struct {
	LLM       *llm.OpenRouterClient
	Generator *generator.Generator
}
