package router

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/adapter/api/handler"
)

// SetupWebSocketRouter sets up the catalog event stream
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/api/ws/catalog", wsHandler.HandleCatalogStream)
}
