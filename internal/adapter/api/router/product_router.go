package router

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/adapter/api/handler"
)

func SetupProductRouter(api *echo.Group) {
	productHandler := handler.GetProductHandler()

	products := api.Group("/products")
	products.GET("", productHandler.ListProducts)
	products.GET("/search/:query", productHandler.SearchProducts)
	products.GET("/:id", productHandler.GetProduct)

	api.GET("/categories", productHandler.ListCategories)
}
