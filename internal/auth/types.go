package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// lifetime of issued tokens
const tokenTTL = 7 * 24 * time.Hour

// context keys set by AuthMiddleware
const (
	contextUserID    = "user_id"
	contextUserEmail = "user_email"
)

// represents JWT claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
