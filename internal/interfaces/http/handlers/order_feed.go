// internal/interfaces/http/handlers/order_feed.go
package handlers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/order"
)

// OrderFeed pushes order events to connected back-office clients over
// websocket, so the admin dashboard updates without polling.
type OrderFeed struct {
	upgrader websocket.Upgrader
	mu       sync.Mutex
	clients  map[*websocket.Conn]bool
	log      *logrus.Logger
}

// NewOrderFeed creates the order event feed
func NewOrderFeed(log *logrus.Logger) *OrderFeed {
	return &OrderFeed{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]bool),
		log:     log,
	}
}

// orderEvent is the wire format pushed to feed subscribers
type orderEvent struct {
	Type  string       `json:"type"`
	Order *order.Order `json:"order"`
}

// Serve handles GET /admin/orders/feed, upgrading to a websocket that
// stays open until the client disconnects.
func (f *OrderFeed) Serve(c *gin.Context) {
	conn, err := f.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		f.log.WithError(err).Warn("Order feed upgrade failed")
		return
	}
	defer conn.Close()

	f.mu.Lock()
	f.clients[conn] = true
	f.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			f.mu.Lock()
			delete(f.clients, conn)
			f.mu.Unlock()
			break
		}
	}
}

// OrderCreated broadcasts a new order to all subscribers
func (f *OrderFeed) OrderCreated(o *order.Order) {
	f.broadcast(orderEvent{Type: "order.created", Order: o})
}

// OrderUpdated broadcasts an order status change to all subscribers
func (f *OrderFeed) OrderUpdated(o *order.Order) {
	f.broadcast(orderEvent{Type: "order.updated", Order: o})
}

func (f *OrderFeed) broadcast(event orderEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for client := range f.clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			client.Close()
			delete(f.clients, client)
		}
	}
}
