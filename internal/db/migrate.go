package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS plans (
		id          INTEGER PRIMARY KEY,
		name        TEXT NOT NULL CHECK(trim(name) != ''),
		month       TEXT NOT NULL,
		year        INTEGER NOT NULL,
		month_index INTEGER NOT NULL CHECK(month_index BETWEEN 0 AND 11),
		deadline    TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_plans_year_month ON plans(year, month_index)`,

	`CREATE TABLE IF NOT EXISTS activities (
		id       INTEGER PRIMARY KEY,
		plan_id  INTEGER NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		name     TEXT NOT NULL CHECK(trim(name) != ''),
		position INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_plan ON activities(plan_id, position)`,

	`CREATE TABLE IF NOT EXISTS completions (
		activity_id   INTEGER NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
		worker_id     INTEGER NOT NULL,
		status        TEXT NOT NULL CHECK(status IN ('pending','completed')),
		evidence_file TEXT NOT NULL DEFAULT '',
		position      INTEGER NOT NULL,
		PRIMARY KEY (activity_id, worker_id),
		CHECK ((status = 'completed') = (evidence_file != ''))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_completions_worker ON completions(worker_id)`,
}
