package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Author and post references are intentionally not foreign keys. seq orders
// rows that share a created_at.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id              TEXT PRIMARY KEY,
		username        TEXT NOT NULL UNIQUE,
		hashed_password TEXT NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id         TEXT PRIMARY KEY,
		seq        BIGSERIAL,
		title      TEXT NOT NULL DEFAULT '',
		summary    TEXT NOT NULL DEFAULT '',
		content    TEXT NOT NULL DEFAULT '',
		cover      TEXT NOT NULL DEFAULT '',
		author_id  TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS posts_created_at_idx ON posts (created_at DESC, seq DESC)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id         TEXT PRIMARY KEY,
		seq        BIGSERIAL,
		message    TEXT NOT NULL DEFAULT '',
		author_id  TEXT NOT NULL,
		post_id    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS comments_post_id_created_at_idx ON comments (post_id, created_at DESC, seq DESC)`,
}

// EnsureSchema creates the tables the repositories expect when they are missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("database.EnsureSchema: %w", err)
		}
	}
	return nil
}
