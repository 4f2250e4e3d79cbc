package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/questlog/quest-service/logging/logger"
)

// CategoryRepository defines quest category data operations.
type CategoryRepository interface {
	ExistsForUser(ctx context.Context, id, userID string) (bool, error)
}

type categoryRepository struct {
	db     *sqlx.DB
	logger *logger.Logger
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *sqlx.DB, logger *logger.Logger) CategoryRepository {
	return &categoryRepository{db: db, logger: logger}
}

// ExistsForUser reports whether a category with the given id belongs to
// the given user.
func (r *categoryRepository) ExistsForUser(ctx context.Context, id, userID string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, r.db.Rebind(
		"SELECT COUNT(*) FROM quest_categories WHERE id = ? AND user_id = ?"), id, userID)
	if err != nil {
		r.logger.Error(ctx, "failed to check category", "id", id, "error", err)
		return false, fmt.Errorf("checking category %s: %w", id, err)
	}
	return count > 0, nil
}
