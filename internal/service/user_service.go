package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo repository.UserRepository
}

type UpdateProfileInput struct {
	UserID uint
	// Nil pointers leave the field untouched; the update is partial.
	Name   *string
	Avatar *string
	Bio    *string
}

type ResetPasswordInput struct {
	Email       string
	NewPassword string
}

type RegisterPushTokenInput struct {
	UserID uint
	Token  string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	updates := map[string]interface{}{}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, models.NewValidationError("Name cannot be empty")
		}
		updates["name"] = *in.Name
	}
	if in.Avatar != nil {
		updates["avatar"] = *in.Avatar
	}
	if in.Bio != nil {
		updates["bio"] = *in.Bio
	}
	return s.userRepo.UpdateProfile(ctx, in.UserID, updates)
}

func (s *UserService) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	if in.Email == "" || in.NewPassword == "" {
		return models.NewValidationError("Email and new password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	return s.userRepo.UpdatePassword(ctx, user.ID, string(hashed))
}

func (s *UserService) RegisterPushToken(ctx context.Context, in RegisterPushTokenInput) error {
	if in.UserID == 0 || in.Token == "" {
		return models.NewValidationError("userId and token are required")
	}
	return s.userRepo.SetPushToken(ctx, in.UserID, in.Token)
}

// DeleteAccount removes the user and their posts, reactions and follow edges.
// Comments the user left on other users' posts are kept.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	return s.userRepo.Delete(ctx, userID)
}
