package server

import (
	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ToggleConnection handles POST /connections. Following an already-followed
// user unfollows them, so the same request undoes itself.
func (s *Server) ToggleConnection(c *fiber.Ctx) error {
	var req struct {
		UserID   uint `json:"userId"`
		TargetID uint `json:"targetId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	followed, err := s.graphService.ToggleFollow(c.Context(), service.ToggleFollowInput{
		UserID:   req.UserID,
		TargetID: req.TargetID,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"followed": followed})
}

// GetSuggestedUsers handles GET /suggested-users/:userId
func (s *Server) GetSuggestedUsers(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	users, err := s.graphService.SuggestedUsers(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}
