package server

import (
	"encoding/json"
	"log"

	"ripple/internal/middleware"
	"ripple/internal/notifications"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebsocketHandler serves GET /ws. The socket is accepted anonymously and
// receives broadcast events right away; sending a registerUser message binds
// it to a user so targeted notifications reach it too.
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		middleware.ActiveWebSockets.Inc()
		defer middleware.ActiveWebSockets.Dec()

		if s.hub == nil {
			_ = conn.Close()
			return
		}

		client, err := s.hub.Attach(conn)
		if err != nil {
			log.Printf("WebSocket: rejecting connection: %v", err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}
		client.IncomingHandler = s.handleSocketMessage

		go client.WritePump()
		client.ReadPump()
	})
}

// handleSocketMessage dispatches one inbound frame from a connected socket.
// Only registerUser is understood; anything else is dropped.
func (s *Server) handleSocketMessage(client *notifications.Client, message []byte) {
	var incoming struct {
		Event  string `json:"event"`
		UserID uint   `json:"userId"`
	}
	if err := json.Unmarshal(message, &incoming); err != nil {
		log.Printf("WebSocket: invalid message from client %s", client.ID)
		return
	}

	switch incoming.Event {
	case "registerUser":
		if incoming.UserID == 0 {
			log.Printf("WebSocket: registerUser without userId from client %s", client.ID)
			return
		}
		s.hub.BindClient(client, incoming.UserID)
		log.Printf("WebSocket: user %d registered on client %s", incoming.UserID, client.ID)
	default:
		log.Printf("WebSocket: unknown event %q from client %s", incoming.Event, client.ID)
	}
}
