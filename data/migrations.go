package data

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	username      TEXT NOT NULL UNIQUE,
	display_name  TEXT,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMP NOT NULL,
	updated_at    TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS quest_categories (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	color      TEXT NOT NULL DEFAULT '',
	user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS quests (
	id                 TEXT PRIMARY KEY,
	title              TEXT NOT NULL,
	description        TEXT,
	difficulty         TEXT NOT NULL,
	status             TEXT NOT NULL DEFAULT 'DRAFT',
	priority           TEXT NOT NULL DEFAULT 'MEDIUM',
	estimated_duration INTEGER NOT NULL,
	user_id            TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	category_id        TEXT REFERENCES quest_categories(id) ON DELETE SET NULL,
	created_at         TIMESTAMP NOT NULL,
	updated_at         TIMESTAMP NOT NULL,
	completed_at       TIMESTAMP
);

CREATE TABLE IF NOT EXISTS quest_tags (
	id       TEXT PRIMARY KEY,
	quest_id TEXT NOT NULL REFERENCES quests(id) ON DELETE CASCADE,
	tag_name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS quest_steps (
	id          TEXT PRIMARY KEY,
	quest_id    TEXT NOT NULL REFERENCES quests(id) ON DELETE CASCADE,
	title       TEXT NOT NULL,
	description TEXT,
	completed   INTEGER NOT NULL DEFAULT 0,
	order_index INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_quests_user_id ON quests(user_id);
CREATE INDEX IF NOT EXISTS idx_quests_user_created ON quests(user_id, created_at);
CREATE INDEX IF NOT EXISTS idx_quest_tags_quest_id ON quest_tags(quest_id);
CREATE INDEX IF NOT EXISTS idx_quest_steps_quest_id ON quest_steps(quest_id);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}

// Migrate checks the current schema version and applies any outstanding
// migrations in order.
func Migrate(db *sqlx.DB) error {
	currentVersion := 0

	var tableCount int
	err := db.Get(
		&tableCount,
		`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'`,
	)
	if err != nil {
		// Not SQLite; fall back to probing the table directly.
		if verr := db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version"); verr == nil {
			tableCount = 1
		}
	} else if tableCount > 0 {
		if err := db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version"); err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}
