package notifications

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"ripple/internal/observability"

	"github.com/gofiber/websocket/v2"
)

// Max total connections
const maxTotalConns = 10000

// Hub maps each userID to its single live connection. Registering a second
// connection for the same user displaces the first: last registered wins.
// The hub is injected into the server and owned by it; nothing here is
// process-global.
type Hub struct {
	mu sync.RWMutex
	// conns maps a userID to its bound connection; clients holds every
	// attached connection, bound or not.
	conns    map[uint]*Client
	clients  map[*Client]struct{}
	shutdown chan struct{}
	done     chan struct{}
}

// NewHub creates a new Hub instance for managing realtime event delivery.
func NewHub() *Hub {
	return &Hub{
		conns:    make(map[uint]*Client),
		clients:  make(map[*Client]struct{}),
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Attach admits a freshly accepted connection that has not identified its
// user yet. The client receives broadcasts right away; targeted events start
// once BindClient runs.
func (h *Hub) Attach(conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	if len(h.clients) >= maxTotalConns {
		h.mu.Unlock()
		return nil, errors.New("server connection limit reached")
	}
	client := NewClient(h, conn)
	h.clients[client] = struct{}{}
	h.mu.Unlock()

	observability.WebSocketConnectionsTotal.Inc()
	return client, nil
}

// Register binds the connection to userID. Any previous connection for the
// same user is closed and replaced.
func (h *Hub) Register(userID uint, conn *websocket.Conn) (*Client, error) {
	client, err := h.Attach(conn)
	if err != nil {
		return nil, err
	}
	h.BindClient(client, userID)
	return client, nil
}

// BindClient is Register for a connection the hub already handed out: the
// websocket handler accepts the socket first and learns the user id from the
// client's registerUser message afterwards.
func (h *Hub) BindClient(client *Client, userID uint) {
	h.mu.Lock()
	// Rebinding the same socket to a new user first releases the old slot.
	if client.UserID != 0 && h.conns[client.UserID] == client {
		delete(h.conns, client.UserID)
	}
	client.UserID = userID
	prev := h.conns[userID]
	h.conns[userID] = client
	h.mu.Unlock()

	if prev != nil && prev != client {
		prev.CloseDisplaced()
	}
}

// UnregisterClient removes the client's registration. A client that has been
// displaced by a newer registration does not evict its replacement.
func (h *Hub) UnregisterClient(client *Client) {
	h.mu.Lock()
	if current, ok := h.conns[client.UserID]; ok && current == client {
		delete(h.conns, client.UserID)
	}
	_, attached := h.clients[client]
	delete(h.clients, client)
	h.mu.Unlock()

	if attached {
		observability.WebSocketConnectionsTotal.Dec()
	}
}

// CloseDisplaced closes a connection that lost its registration to a newer one.
func (c *Client) CloseDisplaced() {
	if c.Conn == nil {
		return
	}
	_ = c.Conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "Replaced by a newer connection"))
	_ = c.Conn.Close()
}

// Broadcast sends message to userID's connection. A no-op when the user has
// no registered connection.
func (h *Hub) Broadcast(userID uint, message string) {
	h.mu.RLock()
	client, ok := h.conns[userID]
	h.mu.RUnlock()
	if ok {
		client.TrySend([]byte(message))
	}
}

// BroadcastAll sends message to every attached websocket client, whether or
// not it has identified its user yet.
func (h *Hub) BroadcastAll(message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	data := []byte(message)
	for c := range h.clients {
		c.TrySend(data)
	}
}

// IsOnline reports whether a user currently has a registered connection.
func (h *Hub) IsOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.conns[userID]
	return ok
}

// StartWiring connects the Notifier to this hub: it subscribes to the Redis
// event channels and forwards messages to matching userID connections, so
// every server instance delivers events regardless of which one published.
func (h *Hub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartPatternSubscriber(ctx, func(channel, payload string) {
		if channel == broadcastChannel {
			h.BroadcastAll(payload)
			return
		}
		if !strings.HasPrefix(channel, userChannelPrefix) {
			log.Printf("invalid event channel: %s", channel)
			return
		}
		var userID uint
		_, err := fmt.Sscanf(channel, userChannelPrefix+"%d", &userID)
		if err != nil {
			log.Printf("invalid event channel: %s", channel)
			return
		}
		h.Broadcast(userID, payload)
	})
}

// Shutdown gracefully closes all websocket connections
func (h *Hub) Shutdown(_ context.Context) error {
	close(h.shutdown)

	h.mu.Lock()
	for client := range h.clients {
		if client.Conn == nil {
			continue
		}
		if err := client.Conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "Server shutting down")); err != nil {
			log.Printf("failed to write close message for client %s: %v", client.ID, err)
		}
		if err := client.Conn.Close(); err != nil {
			log.Printf("failed to close websocket for client %s: %v", client.ID, err)
		}
	}
	h.conns = make(map[uint]*Client)
	h.clients = make(map[*Client]struct{})
	h.mu.Unlock()

	close(h.done)

	return nil
}
