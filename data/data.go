// Package data wires the relational store and its repositories.
package data

import (
	"context"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/questlog/quest-service/config"
	"github.com/questlog/quest-service/data/repository"
	"github.com/questlog/quest-service/logging/logger"
)

// Data encapsulates all data layer dependencies.
type Data struct {
	db *sqlx.DB

	QuestRepo    repository.QuestRepository
	CategoryRepo repository.CategoryRepository
	UserRepo     repository.UserRepository
}

// New opens the configured database, runs migrations when enabled, and
// returns a Data instance with initialized repositories plus a cleanup
// function closing the connection.
func New(cfg *config.Data, log *logger.Logger) (*Data, func(), error) {
	node := masterNode(cfg)

	db, err := sqlx.Connect(node.Driver, node.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if node.MaxIdleConn > 0 {
		db.SetMaxIdleConns(node.MaxIdleConn)
	}
	if node.MaxOpenConn > 0 {
		db.SetMaxOpenConns(node.MaxOpenConn)
	}
	if node.ConnMaxLifeTime > 0 {
		db.SetConnMaxLifetime(node.ConnMaxLifeTime)
	}

	if node.Driver == "sqlite3" {
		// Cascading deletes depend on foreign keys being enforced.
		if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("enabling foreign keys: %w", err)
		}
	}

	if cfg == nil || cfg.Database == nil || cfg.Database.Migrate {
		if err := Migrate(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Info(context.Background(), "database schema up to date")
	}

	d := &Data{
		db:           db,
		QuestRepo:    repository.NewQuestRepository(db, log),
		CategoryRepo: repository.NewCategoryRepository(db, log),
		UserRepo:     repository.NewUserRepository(db, log),
	}

	cleanup := func() { _ = d.Close() }
	return d, cleanup, nil
}

// Close closes the database connection.
func (d *Data) Close() error {
	return d.db.Close()
}

// DB returns the underlying database handle for direct access if needed.
func (d *Data) DB() *sqlx.DB {
	return d.db
}

func masterNode(cfg *config.Data) *config.DBNode {
	if cfg != nil && cfg.Database != nil && cfg.Database.Master != nil {
		node := *cfg.Database.Master
		if node.Driver == "" {
			node.Driver = "sqlite3"
		}
		if node.Source == "" {
			node.Source = "questlog.db"
		}
		return &node
	}
	return &config.DBNode{Driver: "sqlite3", Source: "questlog.db"}
}
