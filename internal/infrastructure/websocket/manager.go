package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"storefront/internal/domain/entity"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Client is one websocket subscriber of the catalog event stream.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		ID:   uuid.New().String(),
		Conn: conn,
		Send: make(chan []byte, 64),
	}
}

// Manager fans catalog events out to every connected client.
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),
		done:       make(chan struct{}),
	}
}

// Start runs the manager's main loop in a goroutine until ctx is done.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client.ID] = client
				m.mutex.Unlock()
				log.Printf("Catalog subscriber registered: %s", client.ID)

			case client := <-m.Unregister:
				m.remove(client.ID)
				log.Printf("Catalog subscriber unregistered: %s", client.ID)

			case message := <-m.broadcast:
				m.mutex.RLock()
				var slow []string
				for id, client := range m.clients {
					select {
					case client.Send <- message:
					default:
						slow = append(slow, id)
					}
				}
				m.mutex.RUnlock()
				for _, id := range slow {
					m.remove(id)
				}

			case <-ctx.Done():
				close(m.done)
				m.mutex.Lock()
				for id, client := range m.clients {
					close(client.Send)
					delete(m.clients, id)
				}
				m.mutex.Unlock()
				return
			}
		}
	}()
}

// Subscribe hands client to the running manager. It reports false once the
// manager has stopped.
func (m *Manager) Subscribe(client *Client) bool {
	select {
	case m.Register <- client:
		return true
	case <-m.done:
		return false
	}
}

func (m *Manager) remove(id string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if client, ok := m.clients[id]; ok {
		delete(m.clients, id)
		close(client.Send)
	}
}

func (m *Manager) ClientCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}

// PublishStockChanged broadcasts new stock levels after an order.
func (m *Manager) PublishStockChanged(ctx context.Context, changes []entity.StockChange) error {
	return m.publish(ctx, entity.CatalogEvent{
		Type:    entity.CatalogEventStockChanged,
		Changes: changes,
	})
}

// PublishRatingChanged tells clients a product's rating moved after a review.
func (m *Manager) PublishRatingChanged(ctx context.Context, productID int64) error {
	return m.publish(ctx, entity.CatalogEvent{
		Type:    entity.CatalogEventRatingChanged,
		Changes: []entity.StockChange{{ProductID: productID}},
	})
}

func (m *Manager) publish(ctx context.Context, event entity.CatalogEvent) error {
	event.ID = uuid.New().String()
	event.SentAt = time.Now().UTC().Format(time.RFC3339)

	message, err := json.Marshal(event)
	if err != nil {
		return err
	}

	select {
	case m.broadcast <- message:
		return nil
	case <-m.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ReadPump drains the connection so pongs and close frames are processed.
// Subscribers don't send anything meaningful.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		select {
		case m.Unregister <- c:
		case <-m.done:
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error: %v", err)
			}
			return
		}
	}
}

// WritePump sends queued events and keeps the connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("error: %v", err)
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
