package router

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/adapter/api/handler"
	"storefront/internal/adapter/api/middleware"
)

func SetupWishlistRouter(api *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	wishlistHandler := handler.GetWishlistHandler()

	wishlist := api.Group("/wishlist")
	wishlist.Use(authMiddleware.Authenticate)
	wishlist.POST("", wishlistHandler.AddToWishlist)
	wishlist.GET("/:userId", wishlistHandler.GetUserWishlist, authMiddleware.SameUser("userId"))
	wishlist.DELETE("/:userId/:productId", wishlistHandler.RemoveFromWishlist, authMiddleware.SameUser("userId"))
}
