package router

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/adapter/api/middleware"
	"storefront/internal/infrastructure/ratelimit"
)

// Setup mounts every /api route. Handlers must already be registered with
// handler.Setup.
func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	adminMiddleware *middleware.AdminMiddleware,
	authLimiter *ratelimit.RateLimiter,
	apiLimiter *ratelimit.RateLimiter,
) {
	api := e.Group("/api", middleware.RateLimit(apiLimiter))

	SetupAuthRouter(api, authLimiter)
	SetupProductRouter(api)
	SetupOrderRouter(api, authMiddleware)
	SetupReviewRouter(api, authMiddleware)
	SetupWishlistRouter(api, authMiddleware)
	SetupAdminRouter(api, authMiddleware, adminMiddleware)
}
