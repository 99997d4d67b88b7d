package server

import (
	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /create-post
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		UserID uint   `json:"userId"`
		Text   string `json:"text"`
		Image  string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.feedService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:   req.UserID,
		Content:  req.Text,
		ImageURL: req.Image,
	})
	if err != nil {
		return respondError(c, err)
	}

	s.publishBroadcastEvent(EventPostCreated, map[string]interface{}{
		"post": post,
	})

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /posts, returning every post in the system.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.feedService.AllPosts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetFollowingPosts handles GET /following-posts/:userId. The feed covers the
// user's own posts plus posts from everyone they follow.
func (s *Server) GetFollowingPosts(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	posts, err := s.feedService.FollowingFeed(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetPopularPosts handles GET /popular-posts
func (s *Server) GetPopularPosts(c *fiber.Ctx) error {
	posts, err := s.feedService.PopularPosts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetOwnPosts handles GET /own-post/:userId
func (s *Server) GetOwnPosts(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	posts, err := s.feedService.OwnPosts(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}
