package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/blogify/blogify/common/config"
	"github.com/blogify/blogify/common/logger"
	"github.com/blogify/blogify/common/ratelimit"
	"github.com/labstack/echo/v4"
)

// WriteLimiter is the slice of the rate limiter the write middleware needs
type WriteLimiter interface {
	CheckGlobalLimit(ctx context.Context, limit int64) (*ratelimit.Result, error)
	CheckUserLimit(ctx context.Context, userID string, limit int64, windowSec int) (*ratelimit.Result, error)
}

// RateLimitWrites returns a middleware limiting post/comment creation.
// Every write first counts against the service-wide cap, then against the
// resolved identity's bucket. Anonymous requests skip the per-user check:
// they are rejected later by the ownership check, and counting them there
// would let one IP burn a shared bucket.
//
// Limiter failures fail open: a Redis outage must not take publishing
// down with it.
func RateLimitWrites(limiter WriteLimiter, cfg config.RateLimitConfig, log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Enabled || limiter == nil {
				return next(c)
			}

			if cfg.Global > 0 {
				result, err := limiter.CheckGlobalLimit(c.Request().Context(), cfg.Global)
				if err != nil {
					log.Warn("global rate limit check unavailable, allowing request", "error", err)
				} else if !result.Allowed {
					return tooManyRequests(c, result)
				}
			}

			user, ok := GetIdentity(c)
			if !ok {
				return next(c)
			}

			result, err := limiter.CheckUserLimit(c.Request().Context(), user.UserID.String(), cfg.PerUser, cfg.WindowSec)
			if err != nil {
				log.Warn("rate limit check unavailable, allowing request", "error", err)
				return next(c)
			}

			if !result.Allowed {
				return tooManyRequests(c, result)
			}

			return next(c)
		}
	}
}

func tooManyRequests(c echo.Context, result *ratelimit.Result) error {
	c.Response().Header().Set("Retry-After", fmt.Sprintf("%d", result.RetryAfterSeconds))
	return c.String(http.StatusTooManyRequests, "Too many submissions, slow down.")
}
