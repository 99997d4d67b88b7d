package server

import (
	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUserByEmail handles GET /user/:email, used by the password-reset flow to
// check whether an account exists before prompting for a new password.
func (s *Server) GetUserByEmail(c *fiber.Ctx) error {
	email := c.Params("email")
	if email == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email is required"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// ResetPassword handles PATCH /reset-password
func (s *Server) ResetPassword(c *fiber.Ctx) error {
	var req struct {
		Email       string `json:"email"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.userService.ResetPassword(c.Context(), service.ResetPasswordInput{
		Email:       req.Email,
		NewPassword: req.NewPassword,
	}); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Password updated"})
}

// UpdateProfile handles PATCH /user/:id. The update is partial: absent fields
// keep their current values.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name   *string `json:"name"`
		Avatar *string `json:"avatar"`
		Bio    *string `json:"bio"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID: userID,
		Name:   req.Name,
		Avatar: req.Avatar,
		Bio:    req.Bio,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(user)
}

// GetAllUsers handles GET /users
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	users, err := s.userRepo.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// DeleteUser handles DELETE /delete/:userId. The account, its posts (with
// those posts' comments and reactions) and its follow edges go away in one
// transaction; comments the account left on other posts stay.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.userService.DeleteAccount(c.Context(), userID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Account deleted"})
}

// RegisterPushToken handles POST /token, storing the device push token used
// for notifications while the app is backgrounded.
func (s *Server) RegisterPushToken(c *fiber.Ctx) error {
	var req struct {
		UserID uint   `json:"userId"`
		Token  string `json:"token"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.userService.RegisterPushToken(c.Context(), service.RegisterPushTokenInput{
		UserID: req.UserID,
		Token:  req.Token,
	}); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Token registered"})
}
