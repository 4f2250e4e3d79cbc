package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/questlog/quest-service/crypto"
	"github.com/questlog/quest-service/data"
	"github.com/questlog/quest-service/ecode"
	"github.com/questlog/quest-service/logging/logger"
	"github.com/questlog/quest-service/structs"
)

const duplicateUserMsg = "User with this email or username already exists"

// UserService handles user registration.
type UserService struct {
	d      *data.Data
	logger *logger.Logger
}

// NewUserService creates a new user service.
func NewUserService(d *data.Data, logger *logger.Logger) *UserService {
	return &UserService{d: d, logger: logger}
}

// Register creates a new user with a bcrypt-hashed password. An email
// or username already in use yields a duplicate-entry error, whether
// caught by the pre-check or by the store's unique constraints.
func (s *UserService) Register(ctx context.Context, req *structs.CreateUserRequest) (*structs.User, error) {
	exists, err := s.d.UserRepo.ExistsByEmailOrUsername(ctx, req.Email, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ecode.Duplicate(duplicateUserMsg)
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		s.logger.Error(ctx, "failed to hash password", "error", err)
		return nil, err
	}

	now := time.Now().UTC()
	user := &structs.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Username:     req.Username,
		DisplayName:  req.DisplayName,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.d.UserRepo.Create(ctx, user); err != nil {
		if data.IsUniqueViolation(err) {
			return nil, ecode.Duplicate(duplicateUserMsg)
		}
		return nil, err
	}

	return user, nil
}
