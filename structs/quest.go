// Package structs defines the quest domain models and request shapes.
package structs

import "time"

// QuestDifficulty classifies how hard a quest is.
type QuestDifficulty string

const (
	DifficultyEasy   QuestDifficulty = "EASY"
	DifficultyMedium QuestDifficulty = "MEDIUM"
	DifficultyHard   QuestDifficulty = "HARD"
	DifficultyEpic   QuestDifficulty = "EPIC"
)

// Valid reports whether d is a known difficulty.
func (d QuestDifficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyEpic:
		return true
	}
	return false
}

// QuestStatus tracks a quest through its lifecycle.
type QuestStatus string

const (
	StatusDraft      QuestStatus = "DRAFT"
	StatusActive     QuestStatus = "ACTIVE"
	StatusInProgress QuestStatus = "IN_PROGRESS"
	StatusCompleted  QuestStatus = "COMPLETED"
	StatusArchived   QuestStatus = "ARCHIVED"
)

// Valid reports whether s is a known status.
func (s QuestStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusInProgress, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

// QuestPriority ranks a quest's urgency.
type QuestPriority string

const (
	PriorityLow    QuestPriority = "LOW"
	PriorityMedium QuestPriority = "MEDIUM"
	PriorityHigh   QuestPriority = "HIGH"
	PriorityUrgent QuestPriority = "URGENT"
)

// Valid reports whether p is a known priority.
func (p QuestPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Quest is a user-owned task with difficulty, priority, status and
// optional steps and tags. A quest belongs to exactly one user and its
// owner never changes after creation.
type Quest struct {
	ID                string          `db:"id" json:"id"`
	Title             string          `db:"title" json:"title"`
	Description       *string         `db:"description" json:"description"`
	Difficulty        QuestDifficulty `db:"difficulty" json:"difficulty"`
	Status            QuestStatus     `db:"status" json:"status"`
	Priority          QuestPriority   `db:"priority" json:"priority"`
	EstimatedDuration int             `db:"estimated_duration" json:"estimatedDuration"`
	UserID            string          `db:"user_id" json:"userId"`
	CategoryID        *string         `db:"category_id" json:"categoryId"`
	CreatedAt         time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updatedAt"`
	CompletedAt       *time.Time      `db:"completed_at" json:"completedAt"`

	Category *QuestCategory `db:"-" json:"category"`
	Tags     []*QuestTag    `db:"-" json:"tags"`
	Steps    []*QuestStep   `db:"-" json:"steps"`
}

// QuestTag is a (quest, tag name) pair. Tags have no identity beyond
// the owning quest; the full set is replaced on update, never merged.
type QuestTag struct {
	ID      string `db:"id" json:"id"`
	QuestID string `db:"quest_id" json:"questId"`
	TagName string `db:"tag_name" json:"tagName"`
}

// QuestStep is an ordered sub-item of a quest.
type QuestStep struct {
	ID          string  `db:"id" json:"id"`
	QuestID     string  `db:"quest_id" json:"questId"`
	Title       string  `db:"title" json:"title"`
	Description *string `db:"description" json:"description"`
	Completed   bool    `db:"completed" json:"completed"`
	OrderIndex  int     `db:"order_index" json:"order"`
}

// QuestCategory groups quests and belongs to a single user.
type QuestCategory struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Color     string    `db:"color" json:"color"`
	UserID    string    `db:"user_id" json:"userId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// CreateQuestRequest is the body of POST /quests. Status is not
// accepted on create; new quests always start in DRAFT.
type CreateQuestRequest struct {
	Title             string          `json:"title" binding:"required,max=255"`
	Description       *string         `json:"description" binding:"omitempty,max=1000"`
	Difficulty        QuestDifficulty `json:"difficulty" binding:"required,oneof=EASY MEDIUM HARD EPIC"`
	EstimatedDuration int             `json:"estimatedDuration" binding:"required,min=1,max=1440"`
	Priority          QuestPriority   `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	CategoryID        *string         `json:"categoryId" binding:"omitempty,uuid"`
	Tags              []string        `json:"tags" binding:"omitempty,dive,max=50"`
}

// UpdateQuestRequest is the body of PUT /quests/:id. Every field is
// independently optional; absent fields leave the stored value
// untouched. A present Tags slice, including an empty one, replaces
// the whole tag set.
type UpdateQuestRequest struct {
	Title             *string          `json:"title" binding:"omitempty,min=1,max=255"`
	Description       *string          `json:"description" binding:"omitempty,max=1000"`
	Difficulty        *QuestDifficulty `json:"difficulty" binding:"omitempty,oneof=EASY MEDIUM HARD EPIC"`
	EstimatedDuration *int             `json:"estimatedDuration" binding:"omitempty,min=1,max=1440"`
	Status            *QuestStatus     `json:"status" binding:"omitempty,oneof=DRAFT ACTIVE IN_PROGRESS COMPLETED ARCHIVED"`
	Priority          *QuestPriority   `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	CategoryID        *string          `json:"categoryId" binding:"omitempty,uuid"`
	Tags              *[]string        `json:"tags" binding:"omitempty,dive,max=50"`
}

// ListQuestsQuery carries the raw, untyped query values of the list
// endpoint before normalization.
type ListQuestsQuery struct {
	Page       string
	Limit      string
	Status     string
	Priority   string
	Difficulty string
}
