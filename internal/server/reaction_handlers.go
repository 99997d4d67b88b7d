package server

import (
	"ripple/internal/middleware"
	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ReactToPost handles PATCH /post-reaction/:id. The response carries the
// post's full likedBy/unlikedBy sets; every connected client also gets a
// likeUpdate broadcast so feeds refresh without polling.
func (s *Server) ReactToPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		UserID uint   `json:"userId"`
		Action string `json:"action"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, err := s.reactionService.React(c.Context(), service.ReactInput{
		UserID: req.UserID,
		PostID: postID,
		Action: req.Action,
	})
	if err != nil {
		return respondError(c, err)
	}

	s.publishBroadcastEvent(EventLikeUpdate, map[string]interface{}{
		"postId":    result.PostID,
		"likedBy":   result.LikedBy,
		"unlikedBy": result.UnlikedBy,
	})

	// The author hears about new likes from others, never their own.
	if req.Action == service.ActionLikeAdd && result.AuthorID != req.UserID {
		if reactor, rerr := s.userRepo.GetByID(c.Context(), req.UserID); rerr == nil {
			s.publishUserEvent(result.AuthorID, EventNotification,
				notificationPayload(NotifyKindLike, reactor.Summary(), result.PostID,
					reactor.Name+" liked your post"))
		} else {
			middleware.Logger.WarnContext(c.Context(), "skipping like notification",
				"post_id", result.PostID, "error", rerr)
		}
	}

	return c.JSON(result)
}
