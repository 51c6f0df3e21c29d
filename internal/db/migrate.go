package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and are
// re-run on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS plans (
		id             TEXT PRIMARY KEY,
		short_id       TEXT NOT NULL UNIQUE,
		title          TEXT NOT NULL,
		units          TEXT NOT NULL CHECK(units IN ('imperial','metric')),
		difficulty     TEXT NOT NULL CHECK(difficulty IN ('Beginner','Intermediate','Advanced')),
		wood_type      TEXT NOT NULL,
		source         TEXT NOT NULL CHECK(source IN ('ai','fallback')),
		failure_code   TEXT NOT NULL DEFAULT '',
		failure_reason TEXT NOT NULL DEFAULT '',
		model          TEXT NOT NULL DEFAULT '',
		mime_type      TEXT NOT NULL DEFAULT '',
		image_sha256   TEXT NOT NULL DEFAULT '',
		plan_json      TEXT NOT NULL,
		created_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plans_created ON plans(created_at)`,

	`CREATE INDEX IF NOT EXISTS idx_plans_image ON plans(image_sha256)`,

	`CREATE TABLE IF NOT EXISTS plan_sequence (
		name     TEXT PRIMARY KEY,
		next_seq INTEGER NOT NULL
	)`,
}
