package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER TABLE
// additions tolerate re-runs via the duplicate-column check.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Placement columns are shared by every item table: placement_kind selects the
// variant, day holds the D| date, window_kind/window_start hold the P| pair.
// order_key is dense and zero-based within a partition.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id             TEXT PRIMARY KEY,
		title          TEXT NOT NULL,
		note           TEXT NOT NULL DEFAULT '',
		done           INTEGER NOT NULL DEFAULT 0,
		completed_at   TEXT,
		placement_kind TEXT NOT NULL DEFAULT 'none'
		               CHECK(placement_kind IN ('none','day','window')),
		day            TEXT,
		window_kind    TEXT CHECK(window_kind IN ('workweek','weekend')),
		window_start   TEXT,
		order_key      INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_day ON tasks(day)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_window ON tasks(window_kind, window_start)`,

	`CREATE TABLE IF NOT EXISTS plans (
		id             TEXT PRIMARY KEY,
		title          TEXT NOT NULL,
		location       TEXT NOT NULL DEFAULT '',
		end_day        TEXT,
		start_time     TEXT,
		end_time       TEXT,
		placement_kind TEXT NOT NULL DEFAULT 'none'
		               CHECK(placement_kind IN ('none','day','window')),
		day            TEXT,
		window_kind    TEXT CHECK(window_kind IN ('workweek','weekend')),
		window_start   TEXT,
		order_key      INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plans_day ON plans(day)`,
	`CREATE INDEX IF NOT EXISTS idx_plans_end_day ON plans(end_day)`,
	`CREATE INDEX IF NOT EXISTS idx_plans_window ON plans(window_kind, window_start)`,

	`CREATE TABLE IF NOT EXISTS intentions (
		id             TEXT PRIMARY KEY,
		title          TEXT NOT NULL,
		done           INTEGER NOT NULL DEFAULT 0,
		placement_kind TEXT NOT NULL DEFAULT 'none'
		               CHECK(placement_kind IN ('none','day','window')),
		day            TEXT,
		window_kind    TEXT CHECK(window_kind IN ('workweek','weekend')),
		window_start   TEXT,
		order_key      INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_intentions_day ON intentions(day)`,
	`CREATE INDEX IF NOT EXISTS idx_intentions_window ON intentions(window_kind, window_start)`,

	`CREATE TABLE IF NOT EXISTS content_items (
		id             TEXT PRIMARY KEY,
		title          TEXT NOT NULL,
		medium         TEXT NOT NULL DEFAULT 'other'
		               CHECK(medium IN ('article','video','book','podcast','other')),
		link           TEXT NOT NULL DEFAULT '',
		done           INTEGER NOT NULL DEFAULT 0,
		placement_kind TEXT NOT NULL DEFAULT 'none'
		               CHECK(placement_kind IN ('none','day','window')),
		day            TEXT,
		window_kind    TEXT CHECK(window_kind IN ('workweek','weekend')),
		window_start   TEXT,
		order_key      INTEGER NOT NULL DEFAULT 0,
		day_sort_key   INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_content_items_day ON content_items(day)`,

	`CREATE TABLE IF NOT EXISTS content_sessions (
		id              TEXT PRIMARY KEY,
		content_item_id TEXT NOT NULL REFERENCES content_items(id) ON DELETE CASCADE,
		title           TEXT NOT NULL,
		note            TEXT NOT NULL DEFAULT '',
		completed_at    TEXT,
		placement_kind  TEXT NOT NULL DEFAULT 'day'
		                CHECK(placement_kind IN ('none','day','window')),
		day             TEXT,
		window_kind     TEXT CHECK(window_kind IN ('workweek','weekend')),
		window_start    TEXT,
		order_key       INTEGER NOT NULL DEFAULT 0,
		day_sort_key    INTEGER NOT NULL DEFAULT 0,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_content_sessions_day ON content_sessions(day)`,
	`CREATE INDEX IF NOT EXISTS idx_content_sessions_item ON content_sessions(content_item_id)`,

	`CREATE TABLE IF NOT EXISTS day_blocks (
		id         TEXT PRIMARY KEY,
		date       TEXT NOT NULL,
		title      TEXT NOT NULL,
		starts_at  TEXT NOT NULL,
		ends_at    TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_day_blocks_date ON day_blocks(date)`,
}
