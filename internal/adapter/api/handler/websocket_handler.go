package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	ws "storefront/internal/infrastructure/websocket"
	"storefront/pkg/errors"
	"storefront/pkg/response"
)

type WebSocketHandler struct {
	wsManager *ws.Manager
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func NewWebSocketHandler(wsManager *ws.Manager) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager: wsManager,
	}
}

// HandleCatalogStream upgrades the request and subscribes it to catalog
// events. The stream is public; events carry nothing user-specific.
func (h *WebSocketHandler) HandleCatalogStream(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the HTTP error when the handshake
		// was bad; only report failures it left unanswered.
		if c.Response().Committed {
			return nil
		}
		return response.Error(c, errors.Internal("Failed to upgrade connection", err))
	}

	client := ws.NewClient(conn)

	if !h.wsManager.Subscribe(client) {
		conn.Close()
		return nil
	}

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}
