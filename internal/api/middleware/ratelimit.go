package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/opendev-studio/site-api/internal/api/metrics"
	"github.com/opendev-studio/site-api/internal/infrastructure/db/redis"
)

// NewRateLimitStore picks the backing store for a rate-limited route group:
// a shared Redis fixed window when a client is configured, an in-process
// token bucket otherwise.
func NewRateLimitStore(rdb *goredis.Client, route string, limit int, window time.Duration) echomiddleware.RateLimiterStore {
	if rdb != nil {
		return redis.NewRateLimitStore(rdb, route, limit, window)
	}
	return echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(limit) / window.Seconds()),
		Burst:     limit,
		ExpiresIn: window,
	})
}

// RateLimit throttles a route by client IP. Rejections are counted per
// route and answered with a French throttle message.
func RateLimit(store echomiddleware.RateLimiterStore, route string) echo.MiddlewareFunc {
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "could not identify client")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			metrics.RateLimitRejectionsTotal.WithLabelValues(route).Inc()
			return echo.NewHTTPError(http.StatusTooManyRequests, "Trop de tentatives. Réessayez plus tard.")
		},
	})
}
