package middleware

import (
	"net/http"

	"agriconnect/config"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// NewLoginRateLimiter throttles login attempts per client IP.
func NewLoginRateLimiter(cfg *config.Config) echo.MiddlewareFunc {
	limits := cfg.HTTP.RateLimit

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(limits.RPS),
			Burst:     limits.Burst,
			ExpiresIn: limits.ExpiresIn,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "Too many login attempts, try again later")
		},
	})
}
