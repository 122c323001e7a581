package sqlstore

import (
	"database/sql"
	"fmt"
)

// createSchema creates all tables needed by the store.
// Safe to call multiple times - uses IF NOT EXISTS.
func createSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Timestamps are stored as RFC 3339 / ISO 8601 TEXT and locked as 0/1 so the
// same schema works on both sqlite and postgres.
const schema = `
CREATE TABLE IF NOT EXISTS juror_account (
    juror_id TEXT PRIMARY KEY,
    pin TEXT NOT NULL DEFAULT '',
    secret TEXT NOT NULL DEFAULT '',
    failed_attempts INTEGER NOT NULL DEFAULT 0,
    locked INTEGER NOT NULL DEFAULT 0,
    reset_unlock_at TEXT NOT NULL DEFAULT '',
    display_name TEXT NOT NULL DEFAULT '',
    display_dept TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS evaluation_record (
    juror_id TEXT NOT NULL,
    group_id TEXT NOT NULL,
    juror_name TEXT NOT NULL DEFAULT '',
    juror_dept TEXT NOT NULL DEFAULT '',
    ts TEXT NOT NULL DEFAULT '',
    group_name TEXT NOT NULL DEFAULT '',
    score_planning INTEGER NOT NULL DEFAULT 0,
    score_execution INTEGER NOT NULL DEFAULT 0,
    score_creativity INTEGER NOT NULL DEFAULT 0,
    score_delivery INTEGER NOT NULL DEFAULT 0,
    score_total INTEGER NOT NULL DEFAULT 0,
    comments TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT '',
    editing_flag TEXT NOT NULL DEFAULT '',
    color TEXT NOT NULL DEFAULT '',
    secret TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (juror_id, group_id)
);

CREATE INDEX IF NOT EXISTS idx_evaluation_record_juror_id ON evaluation_record(juror_id);

CREATE TABLE IF NOT EXISTS draft (
    juror_id TEXT PRIMARY KEY,
    payload TEXT NOT NULL DEFAULT '',
    updated_at TEXT NOT NULL DEFAULT ''
);
`
