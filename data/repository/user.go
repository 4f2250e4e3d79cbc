package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/questlog/quest-service/logging/logger"
	"github.com/questlog/quest-service/structs"
)

// UserRepository defines user data operations needed by this service:
// registration and ownership checks.
type UserRepository interface {
	Create(ctx context.Context, u *structs.User) error
	ExistsByID(ctx context.Context, id string) (bool, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
}

type userRepository struct {
	db     *sqlx.DB
	logger *logger.Logger
}

// NewUserRepository creates a new user repository instance.
func NewUserRepository(db *sqlx.DB, logger *logger.Logger) UserRepository {
	return &userRepository{db: db, logger: logger}
}

// Create inserts a new user. Unique constraints on email and username
// surface as a driver constraint error.
func (r *userRepository) Create(ctx context.Context, u *structs.User) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO users (id, email, username, display_name, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`),
		u.ID, u.Email, u.Username, u.DisplayName, u.PasswordHash, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	r.logger.Info(ctx, "user created", "id", u.ID)
	return nil
}

// ExistsByID reports whether a user with the given id exists.
func (r *userRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		r.db.Rebind("SELECT COUNT(*) FROM users WHERE id = ?"), id)
	if err != nil {
		r.logger.Error(ctx, "failed to check user", "id", id, "error", err)
		return false, fmt.Errorf("checking user %s: %w", id, err)
	}
	return count > 0, nil
}

// ExistsByEmailOrUsername reports whether any user already claims the
// given email or username.
func (r *userRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		r.db.Rebind("SELECT COUNT(*) FROM users WHERE email = ? OR username = ?"), email, username)
	if err != nil {
		r.logger.Error(ctx, "failed to check user uniqueness", "error", err)
		return false, fmt.Errorf("checking user uniqueness: %w", err)
	}
	return count > 0, nil
}
