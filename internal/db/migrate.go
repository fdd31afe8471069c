package db

import (
	"fmt"
)

// Migrate runs all schema migrations. Statements are written to run on both
// SQLite and PostgreSQL and are safe to re-run.
func Migrate(d *DB) error {
	for i, stmt := range migrations {
		if _, err := d.SQL.Exec(stmt); err != nil {
			// Tolerate duplicate column errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if isDuplicateColumn(err) {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Timestamps are stored as fixed-width UTC text (see repository.timeLayout)
// and civil dates as YYYY-MM-DD, so ordering by the text column is
// chronological on both backends. JSON payloads are stored as text.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS placements (
		id           TEXT PRIMARY KEY,
		title        TEXT NOT NULL,
		start_date   TEXT NOT NULL,
		end_date     TEXT,
		cadence      TEXT NOT NULL CHECK(cadence IN ('daily','weekly','monthly')),
		log_template TEXT NOT NULL DEFAULT 'custom',
		milestones   TEXT NOT NULL DEFAULT '[]',
		rubric       TEXT,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS enrollments (
		id            TEXT PRIMARY KEY,
		student_id    TEXT NOT NULL,
		placement_id  TEXT NOT NULL REFERENCES placements(id) ON DELETE CASCADE,
		status        TEXT NOT NULL DEFAULT 'pending'
		              CHECK(status IN ('pending','approved','rejected')),
		schedule_days TEXT NOT NULL DEFAULT '[]',
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL,
		UNIQUE (student_id, placement_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_enrollments_placement ON enrollments(placement_id)`,
	`CREATE TABLE IF NOT EXISTS log_entries (
		id                     TEXT PRIMARY KEY,
		student_id             TEXT NOT NULL,
		placement_id           TEXT NOT NULL REFERENCES placements(id) ON DELETE CASCADE,
		cadence                TEXT NOT NULL CHECK(cadence IN ('daily','weekly','monthly')),
		period_key             TEXT NOT NULL,
		period_number          INTEGER NOT NULL DEFAULT 0,
		log_date               TEXT NOT NULL,
		fields                 TEXT,
		days                   TEXT,
		reflection             TEXT NOT NULL DEFAULT '',
		submission_status      TEXT NOT NULL DEFAULT 'draft'
		                       CHECK(submission_status IN ('draft','submitted')),
		supervisor_status      TEXT NOT NULL DEFAULT 'pending'
		                       CHECK(supervisor_status IN ('pending','verified','rejected')),
		instructor_status      TEXT NOT NULL DEFAULT 'unread'
		                       CHECK(instructor_status IN ('unread','read')),
		supervisor_comment     TEXT NOT NULL DEFAULT '',
		supervisor_verified_at TEXT,
		verification_token     TEXT,
		created_at             TEXT NOT NULL,
		updated_at             TEXT NOT NULL,
		UNIQUE (student_id, placement_id, period_key)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_log_entries_token ON log_entries(verification_token)`,
	`CREATE INDEX IF NOT EXISTS idx_log_entries_placement ON log_entries(placement_id, submission_status)`,
	`CREATE TABLE IF NOT EXISTS view_cursors (
		user_id        TEXT NOT NULL,
		scope          TEXT NOT NULL,
		last_viewed_at TEXT NOT NULL,
		PRIMARY KEY (user_id, scope)
	)`,
	// Supervisor contact on enrollments
	`ALTER TABLE enrollments ADD COLUMN supervisor_name TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE enrollments ADD COLUMN supervisor_email TEXT NOT NULL DEFAULT ''`,
	// Submission timestamp for progress and inbox views
	`ALTER TABLE log_entries ADD COLUMN submitted_at TEXT`,
}
