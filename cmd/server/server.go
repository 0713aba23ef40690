package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/algrv/playground/internal/cache"
	"codeberg.org/algrv/playground/internal/config"
	"codeberg.org/algrv/playground/internal/logger"
	"codeberg.org/algrv/playground/internal/metrics"
	"codeberg.org/algrv/playground/internal/ratelimit"
	sessionmgr "codeberg.org/algrv/playground/internal/sessions"
	"codeberg.org/algrv/playground/playground/sessions"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// small pool, sized for a hosted pooler
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// pgBouncer in transaction mode doesn't support prepared statements
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	sessionRepo := sessions.NewRepository(db)
	if err := sessionRepo.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate sessions table: %w", err)
	}

	sessionCache, err := cache.NewSessionCache(cfg.RedisURL, cfg.SessionCacheTTL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize session cache: %w", err)
	}

	rateLimiter, err := ratelimit.NewGenerateLimiter(sessionCache.Client(), cfg.GenerateRateLimit)
	if err != nil {
		sessionCache.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		db.Close()
		return nil, fmt.Errorf("failed to initialize rate limiter: %w", err)
	}

	metrics.Init()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	server := &Server{
		db:           db,
		config:       cfg,
		sessionRepo:  sessionRepo,
		sessionCache: sessionCache,
		sessionMgr:   sessionmgr.NewManager(sessionRepo, sessionCache),
		services:     InitializeServices(cfg),
		rateLimiter:  rateLimiter,
		router:       router,
	}

	RegisterRoutes(router, server)

	logger.Info("server initialized",
		"environment", cfg.Environment,
		"cache_ttl", cfg.SessionCacheTTL.String(),
		"generate_rate_limit", cfg.GenerateRateLimit,
	)

	return server, nil
}

// releases the redis and postgres clients
func (s *Server) Close() {
	if err := s.sessionCache.Close(); err != nil {
		logger.Warn("failed to close session cache", "error", err)
	}

	s.db.Close()
}
