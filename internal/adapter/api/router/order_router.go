package router

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/adapter/api/handler"
	"storefront/internal/adapter/api/middleware"
)

func SetupOrderRouter(api *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	orderHandler := handler.GetOrderHandler()

	orders := api.Group("/orders")
	orders.Use(authMiddleware.Authenticate)
	orders.POST("", orderHandler.CreateOrder)
	orders.GET("/user/:userId", orderHandler.GetUserOrders, authMiddleware.SameUser("userId"))
	orders.GET("/:id", orderHandler.GetOrder)
}
