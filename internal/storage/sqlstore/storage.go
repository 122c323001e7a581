package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/openexpo/jurypanel/internal/model"
	"github.com/openexpo/jurypanel/internal/storage"
)

// Driver names accepted by Config
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds SQL store connection settings
type Config struct {
	// Driver selects the backend: "sqlite" or "postgres"
	Driver string

	// DSN is the driver-specific connection string
	// (a file path or ":memory:" for sqlite, a postgres URL for postgres)
	DSN string
}

// DefaultConfig returns an in-memory sqlite configuration
func DefaultConfig() Config {
	return Config{
		Driver: DriverSQLite,
		DSN:    ":memory:",
	}
}

// Storage is a database/sql-backed implementation of the storage interface
type Storage struct {
	db     *sql.DB
	driver string
}

// New opens a database connection and ensures the schema exists
func New(cfg Config) (*Storage, error) {
	switch cfg.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.Driver == DriverSQLite {
		// An in-memory sqlite database exists per connection; pin the
		// pool to one so every query sees the same database.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := createSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storage{db: db, driver: cfg.Driver}, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// rebind converts ? placeholders to $N for the postgres driver
func (s *Storage) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Juror account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.JurorAccount) error {
	var resetUnlockAt string
	if !account.ResetUnlockAt.IsZero() {
		resetUnlockAt = account.ResetUnlockAt.UTC().Format(time.RFC3339Nano)
	}

	locked := 0
	if account.Locked {
		locked = 1
	}

	query := s.rebind(`
		INSERT INTO juror_account
			(juror_id, pin, secret, failed_attempts, locked, reset_unlock_at, display_name, display_dept)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (juror_id) DO UPDATE SET
			pin = excluded.pin,
			secret = excluded.secret,
			failed_attempts = excluded.failed_attempts,
			locked = excluded.locked,
			reset_unlock_at = excluded.reset_unlock_at,
			display_name = excluded.display_name,
			display_dept = excluded.display_dept`)

	_, err := s.db.ExecContext(ctx, query,
		string(account.ID), account.PIN, account.Secret, account.FailedAttempts,
		locked, resetUnlockAt, account.DisplayName, account.DisplayDept)
	return err
}

func (s *Storage) GetAccount(ctx context.Context, id model.JurorID) (*model.JurorAccount, error) {
	query := s.rebind(`
		SELECT juror_id, pin, secret, failed_attempts, locked, reset_unlock_at, display_name, display_dept
		FROM juror_account WHERE juror_id = ?`)

	var (
		account       model.JurorAccount
		jurorID       string
		locked        int
		resetUnlockAt string
	)
	err := s.db.QueryRowContext(ctx, query, string(id)).Scan(
		&jurorID, &account.PIN, &account.Secret, &account.FailedAttempts,
		&locked, &resetUnlockAt, &account.DisplayName, &account.DisplayDept)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}

	account.ID = model.JurorID(jurorID)
	account.Locked = locked != 0
	if resetUnlockAt != "" {
		t, err := time.Parse(time.RFC3339Nano, resetUnlockAt)
		if err != nil {
			return nil, fmt.Errorf("invalid reset_unlock_at for %s: %w", jurorID, err)
		}
		account.ResetUnlockAt = t
	}
	return &account, nil
}

func (s *Storage) DeleteAccount(ctx context.Context, id model.JurorID) error {
	query := s.rebind(`DELETE FROM juror_account WHERE juror_id = ?`)
	_, err := s.db.ExecContext(ctx, query, string(id))
	return err
}

// Evaluation record operations

func (s *Storage) SaveRecord(ctx context.Context, record *model.EvaluationRecord) error {
	query := s.rebind(`
		INSERT INTO evaluation_record
			(juror_id, group_id, juror_name, juror_dept, ts, group_name,
			 score_planning, score_execution, score_creativity, score_delivery, score_total,
			 comments, status, editing_flag, color, secret)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (juror_id, group_id) DO UPDATE SET
			juror_name = excluded.juror_name,
			juror_dept = excluded.juror_dept,
			ts = excluded.ts,
			group_name = excluded.group_name,
			score_planning = excluded.score_planning,
			score_execution = excluded.score_execution,
			score_creativity = excluded.score_creativity,
			score_delivery = excluded.score_delivery,
			score_total = excluded.score_total,
			comments = excluded.comments,
			status = excluded.status,
			editing_flag = excluded.editing_flag,
			color = excluded.color,
			secret = excluded.secret`)

	_, err := s.db.ExecContext(ctx, query,
		string(record.JurorID), string(record.GroupID), record.JurorName, record.JurorDept,
		record.Timestamp, record.GroupName,
		record.ScorePlanning, record.ScoreExecution, record.ScoreCreativity,
		record.ScoreDelivery, record.ScoreTotal,
		record.Comments, string(record.Status), record.EditingFlag, record.Color, record.Secret)
	return err
}

const recordColumns = `juror_id, group_id, juror_name, juror_dept, ts, group_name,
	score_planning, score_execution, score_creativity, score_delivery, score_total,
	comments, status, editing_flag, color, secret`

func scanRecord(row interface{ Scan(...any) error }) (*model.EvaluationRecord, error) {
	var (
		record  model.EvaluationRecord
		jurorID string
		groupID string
		status  string
	)
	err := row.Scan(
		&jurorID, &groupID, &record.JurorName, &record.JurorDept,
		&record.Timestamp, &record.GroupName,
		&record.ScorePlanning, &record.ScoreExecution, &record.ScoreCreativity,
		&record.ScoreDelivery, &record.ScoreTotal,
		&record.Comments, &status, &record.EditingFlag, &record.Color, &record.Secret)
	if err != nil {
		return nil, err
	}
	record.JurorID = model.JurorID(jurorID)
	record.GroupID = model.GroupID(groupID)
	record.Status = model.Status(status)
	return &record, nil
}

func (s *Storage) GetRecord(ctx context.Context, jurorID model.JurorID, groupID model.GroupID) (*model.EvaluationRecord, error) {
	query := s.rebind(`SELECT ` + recordColumns + ` FROM evaluation_record WHERE juror_id = ? AND group_id = ?`)

	record, err := scanRecord(s.db.QueryRowContext(ctx, query, string(jurorID), string(groupID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrRecordNotFound
		}
		return nil, err
	}
	return record, nil
}

func (s *Storage) GetRecordsForJuror(ctx context.Context, jurorID model.JurorID) ([]*model.EvaluationRecord, error) {
	query := s.rebind(`SELECT ` + recordColumns + ` FROM evaluation_record WHERE juror_id = ?`)

	rows, err := s.db.QueryContext(ctx, query, string(jurorID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*model.EvaluationRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *Storage) DeleteRecordsForJuror(ctx context.Context, jurorID model.JurorID) (int, error) {
	query := s.rebind(`DELETE FROM evaluation_record WHERE juror_id = ?`)

	result, err := s.db.ExecContext(ctx, query, string(jurorID))
	if err != nil {
		return 0, err
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(deleted), nil
}

// Draft operations

func (s *Storage) SaveDraft(ctx context.Context, draft *model.Draft) error {
	payload, err := json.Marshal(draft.Payload)
	if err != nil {
		return err
	}

	query := s.rebind(`
		INSERT INTO draft (juror_id, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (juror_id) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at`)

	_, err = s.db.ExecContext(ctx, query,
		string(draft.JurorID), string(payload), draft.UpdatedAt.UTC().Format(time.RFC3339Nano))
	return err
}

func (s *Storage) GetDraft(ctx context.Context, jurorID model.JurorID) (*model.Draft, error) {
	query := s.rebind(`SELECT payload, updated_at FROM draft WHERE juror_id = ?`)

	var (
		payload   string
		updatedAt string
	)
	err := s.db.QueryRowContext(ctx, query, string(jurorID)).Scan(&payload, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrDraftNotFound
		}
		return nil, err
	}

	draft := &model.Draft{JurorID: jurorID}
	if err := json.Unmarshal([]byte(payload), &draft.Payload); err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrCorruptDraft, err)
	}
	if updatedAt != "" {
		t, err := time.Parse(time.RFC3339Nano, updatedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid updated_at for %s: %w", jurorID, err)
		}
		draft.UpdatedAt = t
	}
	return draft, nil
}

func (s *Storage) DeleteDraft(ctx context.Context, jurorID model.JurorID) error {
	query := s.rebind(`DELETE FROM draft WHERE juror_id = ?`)
	_, err := s.db.ExecContext(ctx, query, string(jurorID))
	return err
}
