package server

import (
	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /comment/:postId. Besides storing the comment it
// broadcasts a commentUpdate so open feeds append it live, and sends the post
// author a targeted notification when someone else commented.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req struct {
		UserID uint   `json:"userId"`
		Text   string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, err := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		UserID:  req.UserID,
		PostID:  postID,
		Content: req.Text,
	})
	if err != nil {
		return respondError(c, err)
	}

	comment := result.Comment

	s.publishBroadcastEvent(EventCommentUpdate, map[string]interface{}{
		"postId":  postID,
		"comment": comment,
	})

	if result.PostAuthorID != req.UserID {
		s.publishUserEvent(result.PostAuthorID, EventNotification,
			notificationPayload(NotifyKindComment, comment.User.Summary(), postID,
				comment.User.Name+" commented on your post"))
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}
