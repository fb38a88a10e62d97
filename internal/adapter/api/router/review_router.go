package router

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/adapter/api/handler"
	"storefront/internal/adapter/api/middleware"
)

func SetupReviewRouter(api *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	reviewHandler := handler.GetReviewHandler()

	reviews := api.Group("/reviews")
	reviews.GET("/product/:id", reviewHandler.GetProductReviews)
	reviews.POST("", reviewHandler.CreateReview, authMiddleware.Authenticate)
}
