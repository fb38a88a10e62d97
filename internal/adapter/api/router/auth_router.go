package router

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/adapter/api/handler"
	"storefront/internal/adapter/api/middleware"
	"storefront/internal/infrastructure/ratelimit"
)

func SetupAuthRouter(api *echo.Group, authLimiter *ratelimit.RateLimiter) {
	authHandler := handler.GetAuthHandler()

	auth := api.Group("/auth", middleware.RateLimit(authLimiter))
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
}
