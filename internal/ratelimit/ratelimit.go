package ratelimit

import (
	"fmt"

	"codeberg.org/algrv/playground/internal/auth"
	"codeberg.org/algrv/playground/internal/errors"
	"codeberg.org/algrv/playground/internal/logger"
	"codeberg.org/algrv/playground/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const generatePrefix = "ratelimit:generate"

// builds a generate limiter backed by the shared redis client, so limits hold across instances
func NewGenerateLimiter(client *redis.Client, formatted string) (*limiter.Limiter, error) {
	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: generatePrefix})
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit store: %w", err)
	}

	return New(store, formatted)
}

// builds a limiter over any store; formatted uses the "<limit>-<period>" notation, e.g. "20-M"
func New(store limiter.Store, formatted string) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", formatted, err)
	}

	return limiter.New(store, rate), nil
}

// limits per authenticated user, falling back to client IP; must run after AuthMiddleware.
// an unreachable store lets the request through, the limit only holds while redis is up
func Middleware(l *limiter.Limiter) gin.HandlerFunc {
	return mgin.NewMiddleware(l,
		mgin.WithKeyGetter(keyForRequest),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			errors.TooManyRequests(c, "generation rate limit exceeded, try again later")
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			logger.FromContext(c.Request.Context()).Warn("rate limit store unavailable, allowing request",
				"key", keyForRequest(c),
				"error", err,
			)
			metrics.RecordRateLimitBypass()

			// the middleware aborts once this returns, run the rest of the chain first
			c.Next()
		}),
	)
}

func keyForRequest(c *gin.Context) string {
	if userID, ok := auth.GetUserID(c); ok {
		return "user:" + userID
	}

	return "ip:" + c.ClientIP()
}
