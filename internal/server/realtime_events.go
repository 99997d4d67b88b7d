package server

import (
	"context"
	"encoding/json"
	"log"

	"ripple/internal/models"
	"ripple/internal/observability"
)

// Event names on the wire. These are part of the client contract; renaming
// one breaks every connected frontend.
const (
	EventLikeUpdate    = "likeUpdate"
	EventCommentUpdate = "commentUpdate"
	EventNotification  = "notification"
	EventPostCreated   = "postCreated"
)

// Targeted notification kinds carried inside EventNotification payloads.
const (
	NotifyKindLike    = "like"
	NotifyKindComment = "comment"
)

// publishUserEvent delivers an event to a single user. With Redis wired, the
// event goes through pub/sub only: this instance's own pattern subscription
// brings it back to the local hub, so delivering on the hub fast path as well
// would hand a locally connected user every event twice. Without Redis the
// hub delivers directly.
func (s *Server) publishUserEvent(userID uint, event string, payload map[string]interface{}) {
	message, ok := marshalEvent(event, payload)
	if !ok {
		return
	}
	if s.notifier.Active() {
		if err := s.notifier.PublishUser(context.Background(), userID, message); err != nil {
			log.Printf("failed to publish %s event to user %d: %v", event, userID, err)
			// Redis is down; at least the local connection still gets it.
			if s.hub != nil {
				s.hub.Broadcast(userID, message)
			}
		}
	} else if s.hub != nil {
		s.hub.Broadcast(userID, message)
	}
	observability.EventsPublished.WithLabelValues(event, "user").Inc()
}

// publishBroadcastEvent delivers an event to every connected client, with the
// same single-path rule as publishUserEvent.
func (s *Server) publishBroadcastEvent(event string, payload map[string]interface{}) {
	message, ok := marshalEvent(event, payload)
	if !ok {
		return
	}
	if s.notifier.Active() {
		if err := s.notifier.PublishBroadcast(context.Background(), message); err != nil {
			log.Printf("failed to publish %s broadcast event: %v", event, err)
			if s.hub != nil {
				s.hub.BroadcastAll(message)
			}
		}
	} else if s.hub != nil {
		s.hub.BroadcastAll(message)
	}
	observability.EventsPublished.WithLabelValues(event, "broadcast").Inc()
}

func marshalEvent(event string, payload map[string]interface{}) (string, bool) {
	eventJSON, err := json.Marshal(map[string]interface{}{
		"event":   event,
		"payload": payload,
	})
	if err != nil {
		log.Printf("failed to marshal %s event: %v", event, err)
		return "", false
	}
	return string(eventJSON), true
}

// notificationPayload builds the payload of a targeted notification event.
func notificationPayload(kind string, from models.UserSummary, postID uint, message string) map[string]interface{} {
	return map[string]interface{}{
		"type":     kind,
		"fromUser": from,
		"postId":   postID,
		"message":  message,
	}
}
