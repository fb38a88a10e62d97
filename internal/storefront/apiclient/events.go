package apiclient

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"storefront/internal/domain/entity"
	"storefront/pkg/errors"
)

const pongWait = 60 * time.Second

// WatchCatalog streams catalog events to fn until ctx is done or the
// connection drops. fn runs on the reading goroutine.
func (c *Client) WatchCatalog(ctx context.Context, fn func(entity.CatalogEvent)) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}

	conn, _, err := dialer.DialContext(ctx, c.eventsURL(), nil)
	if err != nil {
		return errors.Remote("Could not subscribe to catalog updates", err)
	}
	defer conn.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			conn.Close()
		case <-stop:
		}
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPingHandler(func(data string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(time.Second))
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return errors.Remote("Catalog updates disconnected", err)
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))

		var event entity.CatalogEvent
		if err := json.Unmarshal(message, &event); err != nil {
			log.Printf("Ignoring malformed catalog event: %v", err)
			continue
		}
		fn(event)
	}
}

func (c *Client) eventsURL() string {
	base := c.baseURL
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + "/api/ws/catalog"
}
