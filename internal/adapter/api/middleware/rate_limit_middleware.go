package middleware

import (
	"log"
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"storefront/internal/infrastructure/ratelimit"
	"storefront/pkg/errors"
	"storefront/pkg/response"
)

// RateLimit throttles requests per client IP.
func RateLimit(limiter *ratelimit.RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			allowed, retryAfter := limiter.Allow(ip)
			if !allowed {
				log.Printf("RATE LIMIT: Blocked request from IP %s (retry in %v)", ip, retryAfter)

				seconds := int(math.Ceil(retryAfter.Seconds()))
				if seconds < 1 {
					seconds = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(seconds))
				return response.Error(c, errors.TooManyRequests("Too many requests. Please try again later."))
			}

			return next(c)
		}
	}
}
