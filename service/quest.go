package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/questlog/quest-service/data"
	"github.com/questlog/quest-service/data/repository"
	"github.com/questlog/quest-service/ecode"
	"github.com/questlog/quest-service/logging/logger"
	"github.com/questlog/quest-service/paging"
	"github.com/questlog/quest-service/structs"
	"github.com/questlog/quest-service/validation"
)

// QuestService handles quest business logic: filter normalization,
// ownership enforcement, payload sanitization and tag reconciliation.
type QuestService struct {
	d      *data.Data
	logger *logger.Logger
}

// NewQuestService creates a new quest service.
func NewQuestService(d *data.Data, logger *logger.Logger) *QuestService {
	return &QuestService{d: d, logger: logger}
}

// List retrieves a page of the user's quests, newest first.
//
// Malformed pagination is silently normalized. A status, priority or
// difficulty filter value outside its enum means "no such category of
// quest exists": the result is an empty page, not an error.
func (s *QuestService) List(ctx context.Context, userID string, q *structs.ListQuestsQuery) ([]*structs.Quest, paging.Meta, error) {
	p := paging.Normalize(q.Page, q.Limit)

	filter, ok := normalizeFilter(q)
	if !ok {
		return []*structs.Quest{}, paging.NewMeta(p, 0), nil
	}

	filter.UserID = userID
	filter.Limit = p.Limit
	filter.Offset = p.Offset()

	quests, total, err := s.d.QuestRepo.List(ctx, filter)
	if err != nil {
		return nil, paging.Meta{}, err
	}
	if quests == nil {
		quests = []*structs.Quest{}
	}
	return quests, paging.NewMeta(p, total), nil
}

// Get retrieves a single quest scoped by id and owner.
func (s *QuestService) Get(ctx context.Context, userID, id string) (*structs.Quest, error) {
	quest, err := s.d.QuestRepo.FindByOwner(ctx, id, userID)
	if err != nil {
		if data.IsNotFound(err) {
			return nil, ecode.NotFound("Quest", id)
		}
		return nil, err
	}
	return quest, nil
}

// Create builds and persists a new quest for the user. New quests
// always start in DRAFT with no completion timestamp; priority
// defaults to MEDIUM.
func (s *QuestService) Create(ctx context.Context, userID string, req *structs.CreateQuestRequest) (*structs.Quest, error) {
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}
	if req.CategoryID != nil {
		if err := s.ensureCategoryOwned(ctx, *req.CategoryID, userID); err != nil {
			return nil, err
		}
	}

	priority := req.Priority
	if priority == "" {
		priority = structs.PriorityMedium
	}

	now := time.Now().UTC()
	quest := &structs.Quest{
		ID:                uuid.NewString(),
		Title:             validation.Sanitize(req.Title),
		Description:       sanitizeOptional(req.Description),
		Difficulty:        req.Difficulty,
		Status:            structs.StatusDraft,
		Priority:          priority,
		EstimatedDuration: req.EstimatedDuration,
		UserID:            userID,
		CategoryID:        req.CategoryID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.d.QuestRepo.Create(ctx, quest, sanitizeTags(req.Tags)); err != nil {
		if data.IsUniqueViolation(err) {
			return nil, ecode.Duplicate()
		}
		return nil, err
	}

	return s.Get(ctx, userID, quest.ID)
}

// Update applies a partial update to a quest the user owns. Fields
// absent from the request are left untouched. The first transition
// into COMPLETED stamps the completion time; repeating it does not
// move the stamp. A present tag set, including an empty one, replaces
// the stored set atomically.
func (s *QuestService) Update(ctx context.Context, userID, id string, req *structs.UpdateQuestRequest) (*structs.Quest, error) {
	quest, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if err := s.ensureCategoryOwned(ctx, *req.CategoryID, userID); err != nil {
			return nil, err
		}
		quest.CategoryID = req.CategoryID
	}

	if req.Title != nil {
		quest.Title = validation.Sanitize(*req.Title)
	}
	if req.Description != nil {
		quest.Description = sanitizeOptional(req.Description)
	}
	if req.Difficulty != nil {
		quest.Difficulty = *req.Difficulty
	}
	if req.EstimatedDuration != nil {
		quest.EstimatedDuration = *req.EstimatedDuration
	}
	if req.Priority != nil {
		quest.Priority = *req.Priority
	}
	if req.Status != nil {
		quest.Status = *req.Status
		if *req.Status == structs.StatusCompleted && quest.CompletedAt == nil {
			now := time.Now().UTC()
			quest.CompletedAt = &now
		}
	}
	quest.UpdatedAt = time.Now().UTC()

	var tags []string
	replaceTags := req.Tags != nil
	if replaceTags {
		tags = sanitizeTags(*req.Tags)
	}

	if err := s.d.QuestRepo.Update(ctx, quest, tags, replaceTags); err != nil {
		if data.IsNotFound(err) {
			return nil, ecode.NotFound("Quest", id)
		}
		if data.IsUniqueViolation(err) {
			return nil, ecode.Duplicate()
		}
		return nil, err
	}

	return s.Get(ctx, userID, id)
}

// Delete removes a quest the user owns. Tags and steps are removed by
// the store's cascading deletes.
func (s *QuestService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}

	if err := s.d.QuestRepo.Delete(ctx, id, userID); err != nil {
		if data.IsNotFound(err) {
			return ecode.NotFound("Quest", id)
		}
		return err
	}
	return nil
}

// normalizeFilter validates the optional enum filters. It reports
// ok=false when any supplied value is not a member of its enum.
func normalizeFilter(q *structs.ListQuestsQuery) (repository.QuestFilter, bool) {
	var f repository.QuestFilter

	if q.Status != "" {
		if !structs.QuestStatus(q.Status).Valid() {
			return f, false
		}
		f.Status = q.Status
	}
	if q.Priority != "" {
		if !structs.QuestPriority(q.Priority).Valid() {
			return f, false
		}
		f.Priority = q.Priority
	}
	if q.Difficulty != "" {
		if !structs.QuestDifficulty(q.Difficulty).Valid() {
			return f, false
		}
		f.Difficulty = q.Difficulty
	}
	return f, true
}

// sanitizeOptional sanitizes an optional free-text field, mapping
// empty results to null.
func sanitizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	clean := validation.Sanitize(*s)
	if clean == "" {
		return nil
	}
	return &clean
}

func sanitizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = validation.Sanitize(t)
	}
	return out
}
