package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// CatalogHub reports how many clients are listening for catalog events.
type CatalogHub interface {
	ClientCount() int
}

type HealthHandler struct {
	hub     CatalogHub
	storage string
}

func NewHealthHandler(hub CatalogHub, storage string) *HealthHandler {
	return &HealthHandler{
		hub:     hub,
		storage: storage,
	}
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	body := map[string]interface{}{
		"status":  "ok",
		"storage": h.storage,
		"time":    time.Now().Format(time.RFC3339),
	}
	if h.hub != nil {
		body["subscribers"] = h.hub.ClientCount()
	}
	return c.JSON(http.StatusOK, body)
}
