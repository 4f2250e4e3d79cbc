// Package repository provides persistence for quests, categories and users.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/questlog/quest-service/logging/logger"
	"github.com/questlog/quest-service/structs"
)

const questColumns = `id, title, description, difficulty, status, priority,
	estimated_duration, user_id, category_id, created_at, updated_at, completed_at`

// QuestFilter narrows a quest listing. Empty filter values are ignored.
type QuestFilter struct {
	UserID     string
	Status     string
	Priority   string
	Difficulty string
	Limit      int
	Offset     int
}

// QuestRepository defines quest data operations. Every read and write is
// scoped by the owning user id, so a quest owned by another user is
// indistinguishable from a non-existent one.
type QuestRepository interface {
	Create(ctx context.Context, q *structs.Quest, tags []string) error
	FindByOwner(ctx context.Context, id, userID string) (*structs.Quest, error)
	List(ctx context.Context, f QuestFilter) ([]*structs.Quest, int, error)
	Update(ctx context.Context, q *structs.Quest, tags []string, replaceTags bool) error
	Delete(ctx context.Context, id, userID string) error
	TagsByQuest(ctx context.Context, questID string) ([]*structs.QuestTag, error)
}

type questRepository struct {
	db     *sqlx.DB
	logger *logger.Logger
}

// NewQuestRepository creates a new quest repository instance.
func NewQuestRepository(db *sqlx.DB, logger *logger.Logger) QuestRepository {
	return &questRepository{db: db, logger: logger}
}

// Create inserts a quest and one tag row per supplied tag name in a
// single transaction. Duplicate names in tags are preserved as
// separate rows.
func (r *questRepository) Create(ctx context.Context, q *structs.Quest, tags []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO quests (`+questColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		q.ID, q.Title, q.Description, q.Difficulty, q.Status, q.Priority,
		q.EstimatedDuration, q.UserID, q.CategoryID, q.CreatedAt, q.UpdatedAt, q.CompletedAt,
	)
	if err != nil {
		r.logger.Error(ctx, "failed to create quest", "error", err)
		return fmt.Errorf("creating quest: %w", err)
	}

	if err := insertTags(ctx, tx, r.db, q.ID, tags); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing quest create: %w", err)
	}

	r.logger.Info(ctx, "quest created", "id", q.ID)
	return nil
}

// FindByOwner retrieves a quest scoped by id and owning user, with
// category, tags and steps populated.
func (r *questRepository) FindByOwner(ctx context.Context, id, userID string) (*structs.Quest, error) {
	var q structs.Quest
	err := r.db.GetContext(ctx, &q, r.db.Rebind(`
		SELECT `+questColumns+` FROM quests WHERE id = ? AND user_id = ?`),
		id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("getting quest %s: %w", id, err)
	}

	if err := r.hydrate(ctx, []*structs.Quest{&q}); err != nil {
		return nil, err
	}
	return &q, nil
}

// List retrieves a page of quests matching the filter, ordered by
// creation time descending, plus the total match count.
func (r *questRepository) List(ctx context.Context, f QuestFilter) ([]*structs.Quest, int, error) {
	conditions := []string{"user_id = ?"}
	args := []any{f.UserID}

	if f.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, f.Status)
	}
	if f.Priority != "" {
		conditions = append(conditions, "priority = ?")
		args = append(args, f.Priority)
	}
	if f.Difficulty != "" {
		conditions = append(conditions, "difficulty = ?")
		args = append(args, f.Difficulty)
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	err := r.db.GetContext(ctx, &total,
		r.db.Rebind("SELECT COUNT(*) FROM quests"+where), args...)
	if err != nil {
		r.logger.Error(ctx, "failed to count quests", "error", err)
		return nil, 0, fmt.Errorf("counting quests: %w", err)
	}

	query := "SELECT " + questColumns + " FROM quests" + where +
		" ORDER BY created_at DESC" +
		fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)

	var quests []*structs.Quest
	if err := r.db.SelectContext(ctx, &quests, r.db.Rebind(query), args...); err != nil {
		r.logger.Error(ctx, "failed to list quests", "error", err)
		return nil, 0, fmt.Errorf("listing quests: %w", err)
	}

	if err := r.hydrate(ctx, quests); err != nil {
		return nil, 0, err
	}
	return quests, total, nil
}

// Update persists all quest columns and, when replaceTags is set,
// atomically replaces the full tag set in the same transaction.
func (r *questRepository) Update(ctx context.Context, q *structs.Quest, tags []string, replaceTags bool) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, r.db.Rebind(`
		UPDATE quests SET
			title = ?, description = ?, difficulty = ?, status = ?, priority = ?,
			estimated_duration = ?, category_id = ?, updated_at = ?, completed_at = ?
		WHERE id = ? AND user_id = ?`),
		q.Title, q.Description, q.Difficulty, q.Status, q.Priority,
		q.EstimatedDuration, q.CategoryID, q.UpdatedAt, q.CompletedAt,
		q.ID, q.UserID,
	)
	if err != nil {
		r.logger.Error(ctx, "failed to update quest", "id", q.ID, "error", err)
		return fmt.Errorf("updating quest %s: %w", q.ID, err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("updating quest %s: %w", q.ID, sql.ErrNoRows)
	}

	if replaceTags {
		if _, err := tx.ExecContext(ctx,
			r.db.Rebind("DELETE FROM quest_tags WHERE quest_id = ?"), q.ID); err != nil {
			return fmt.Errorf("clearing quest tags: %w", err)
		}
		if err := insertTags(ctx, tx, r.db, q.ID, tags); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing quest update: %w", err)
	}

	r.logger.Info(ctx, "quest updated", "id", q.ID)
	return nil
}

// Delete removes a quest scoped by id and owning user. Tags and steps
// go with it through cascading foreign keys.
func (r *questRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(ctx,
		r.db.Rebind("DELETE FROM quests WHERE id = ? AND user_id = ?"), id, userID)
	if err != nil {
		r.logger.Error(ctx, "failed to delete quest", "id", id, "error", err)
		return fmt.Errorf("deleting quest %s: %w", id, err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("deleting quest %s: %w", id, sql.ErrNoRows)
	}

	r.logger.Info(ctx, "quest deleted", "id", id)
	return nil
}

// TagsByQuest retrieves the tag rows of a single quest.
func (r *questRepository) TagsByQuest(ctx context.Context, questID string) ([]*structs.QuestTag, error) {
	tags := []*structs.QuestTag{}
	err := r.db.SelectContext(ctx, &tags, r.db.Rebind(
		"SELECT id, quest_id, tag_name FROM quest_tags WHERE quest_id = ?"), questID)
	if err != nil {
		return nil, fmt.Errorf("querying tags for quest %s: %w", questID, err)
	}
	return tags, nil
}

// hydrate attaches tags, steps and categories to the given quests with
// one batched query per relation. Steps come back ordered by their
// explicit order index.
func (r *questRepository) hydrate(ctx context.Context, quests []*structs.Quest) error {
	if len(quests) == 0 {
		return nil
	}

	byID := make(map[string]*structs.Quest, len(quests))
	ids := make([]string, 0, len(quests))
	for _, q := range quests {
		q.Tags = []*structs.QuestTag{}
		q.Steps = []*structs.QuestStep{}
		byID[q.ID] = q
		ids = append(ids, q.ID)
	}

	query, args, err := sqlx.In(
		"SELECT id, quest_id, tag_name FROM quest_tags WHERE quest_id IN (?)", ids)
	if err != nil {
		return fmt.Errorf("building tag query: %w", err)
	}
	var tags []*structs.QuestTag
	if err := r.db.SelectContext(ctx, &tags, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("querying quest tags: %w", err)
	}
	for _, t := range tags {
		if q, ok := byID[t.QuestID]; ok {
			q.Tags = append(q.Tags, t)
		}
	}

	query, args, err = sqlx.In(`
		SELECT id, quest_id, title, description, completed, order_index
		FROM quest_steps WHERE quest_id IN (?) ORDER BY order_index ASC`, ids)
	if err != nil {
		return fmt.Errorf("building step query: %w", err)
	}
	var steps []*structs.QuestStep
	if err := r.db.SelectContext(ctx, &steps, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("querying quest steps: %w", err)
	}
	for _, s := range steps {
		if q, ok := byID[s.QuestID]; ok {
			q.Steps = append(q.Steps, s)
		}
	}

	var categoryIDs []string
	seen := map[string]bool{}
	for _, q := range quests {
		if q.CategoryID != nil && !seen[*q.CategoryID] {
			seen[*q.CategoryID] = true
			categoryIDs = append(categoryIDs, *q.CategoryID)
		}
	}
	if len(categoryIDs) == 0 {
		return nil
	}

	query, args, err = sqlx.In(`
		SELECT id, name, color, user_id, created_at, updated_at
		FROM quest_categories WHERE id IN (?)`, categoryIDs)
	if err != nil {
		return fmt.Errorf("building category query: %w", err)
	}
	var categories []*structs.QuestCategory
	if err := r.db.SelectContext(ctx, &categories, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("querying quest categories: %w", err)
	}
	byCategory := make(map[string]*structs.QuestCategory, len(categories))
	for _, c := range categories {
		byCategory[c.ID] = c
	}
	for _, q := range quests {
		if q.CategoryID != nil {
			q.Category = byCategory[*q.CategoryID]
		}
	}

	return nil
}

// insertTags inserts one quest_tags row per tag name inside tx.
func insertTags(ctx context.Context, tx *sqlx.Tx, db *sqlx.DB, questID string, tags []string) error {
	if len(tags) == 0 {
		return nil
	}
	stmt, err := tx.PreparexContext(ctx, db.Rebind(
		"INSERT INTO quest_tags (id, quest_id, tag_name) VALUES (?, ?, ?)"))
	if err != nil {
		return fmt.Errorf("preparing tag insert: %w", err)
	}
	defer stmt.Close()

	for _, name := range tags {
		if _, err := stmt.ExecContext(ctx, uuid.NewString(), questID, name); err != nil {
			return fmt.Errorf("inserting tag %q on quest %s: %w", name, questID, err)
		}
	}
	return nil
}
