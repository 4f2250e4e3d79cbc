package data_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/questlog/quest-service/data"
	"github.com/questlog/quest-service/data/repository"
	"github.com/questlog/quest-service/logging/logger"
	"github.com/questlog/quest-service/structs"
)

func openDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		t.Fatalf("enabling foreign keys: %v", err)
	}
	if err := data.Migrate(db); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	return db
}

func seedUser(t *testing.T, users repository.UserRepository) *structs.User {
	t.Helper()
	now := time.Now().UTC()
	u := &structs.User{
		ID:           uuid.NewString(),
		Email:        uuid.NewString() + "@example.com",
		Username:     "u" + uuid.NewString()[:8],
		PasswordHash: "x",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return u
}

func TestMigrateIdempotent(t *testing.T) {
	db := openDB(t)
	if err := data.Migrate(db); err != nil {
		t.Fatalf("second migrate must be a no-op, got %v", err)
	}

	var version int
	if err := db.Get(&version, "SELECT MAX(version) FROM schema_version"); err != nil {
		t.Fatalf("reading version: %v", err)
	}
	if version != 1 {
		t.Fatalf("unexpected schema version %d", version)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	db := openDB(t)
	users := repository.NewUserRepository(db, logger.Discard())
	u := seedUser(t, users)

	dup := *u
	dup.ID = uuid.NewString()
	err := users.Create(context.Background(), &dup)
	if err == nil {
		t.Fatal("expected a constraint error for duplicate email")
	}
	if !data.IsUniqueViolation(err) {
		t.Fatalf("constraint error not recognized: %v", err)
	}
	if data.IsUniqueViolation(context.Canceled) {
		t.Fatal("unrelated errors must not read as unique violations")
	}
}

func TestIsNotFound(t *testing.T) {
	db := openDB(t)
	quests := repository.NewQuestRepository(db, logger.Discard())

	_, err := quests.FindByOwner(context.Background(), uuid.NewString(), uuid.NewString())
	if err == nil {
		t.Fatal("expected an error for a missing quest")
	}
	if !data.IsNotFound(err) {
		t.Fatalf("missing row not recognized: %v", err)
	}
	if data.IsNotFound(context.Canceled) {
		t.Fatal("unrelated errors must not read as not-found")
	}
}

func TestDeleteCascadesTags(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	log := logger.Discard()
	users := repository.NewUserRepository(db, log)
	quests := repository.NewQuestRepository(db, log)

	u := seedUser(t, users)
	now := time.Now().UTC()
	q := &structs.Quest{
		ID:                uuid.NewString(),
		Title:             "Cascade",
		Difficulty:        structs.DifficultyEasy,
		Status:            structs.StatusDraft,
		Priority:          structs.PriorityMedium,
		EstimatedDuration: 10,
		UserID:            u.ID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := quests.Create(ctx, q, []string{"a", "b"}); err != nil {
		t.Fatalf("creating quest: %v", err)
	}

	if err := quests.Delete(ctx, q.ID, u.ID); err != nil {
		t.Fatalf("deleting quest: %v", err)
	}

	tags, err := quests.TagsByQuest(ctx, q.ID)
	if err != nil {
		t.Fatalf("querying tags: %v", err)
	}
	if len(tags) != 0 {
		t.Fatalf("tags must cascade with the quest, found %d", len(tags))
	}
}
