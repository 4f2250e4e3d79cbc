package service

import (
	"context"

	"github.com/questlog/quest-service/ecode"
)

// ensureUserExists fails with a not-found error when no user with the
// given id exists. Every write path calls this before touching quest
// data.
func (s *QuestService) ensureUserExists(ctx context.Context, userID string) error {
	ok, err := s.d.UserRepo.ExistsByID(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ecode.NotFound("User", userID)
	}
	return nil
}

// ensureCategoryOwned fails with a not-found error when no category
// with the given id belongs to the given user. A category owned by
// another user is indistinguishable from a missing one.
func (s *QuestService) ensureCategoryOwned(ctx context.Context, categoryID, userID string) error {
	ok, err := s.d.CategoryRepo.ExistsForUser(ctx, categoryID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ecode.NotFound("Category", categoryID)
	}
	return nil
}
