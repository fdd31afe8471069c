package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/fieldlog/internal/db"
	"github.com/alexanderramin/fieldlog/internal/domain"
)

// SQLLogEntryRepo implements LogEntryRepo over SQLite or PostgreSQL.
type SQLLogEntryRepo struct {
	db db.DBTX
}

// NewSQLLogEntryRepo creates a new SQLLogEntryRepo.
func NewSQLLogEntryRepo(conn db.DBTX) *SQLLogEntryRepo {
	return &SQLLogEntryRepo{db: conn}
}

const logEntryColumns = `id, student_id, placement_id, cadence, period_number, log_date,
	fields, days, reflection, submission_status, supervisor_status, instructor_status,
	supervisor_comment, supervisor_verified_at, verification_token, submitted_at,
	created_at, updated_at`

// dayRow is the stored JSON shape of a day sub-entry.
type dayRow struct {
	Date   string         `json:"date"`
	Fields map[string]any `json:"fields"`
}

func encodePayload(e *domain.LogEntry) (fields, days any, err error) {
	if e.Fields != nil {
		s, err := marshalJSON(e.Fields)
		if err != nil {
			return nil, nil, fmt.Errorf("encoding fields: %w", err)
		}
		fields = s
	}
	if e.Days != nil {
		rows := make([]dayRow, 0, len(e.Days))
		for _, d := range e.Days {
			rows = append(rows, dayRow{Date: d.Date.Format(dateLayout), Fields: d.Fields})
		}
		s, err := marshalJSON(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("encoding days: %w", err)
		}
		days = s
	}
	return fields, days, nil
}

func (r *SQLLogEntryRepo) Create(ctx context.Context, e *domain.LogEntry) error {
	fields, days, err := encodePayload(e)
	if err != nil {
		return err
	}

	query := `INSERT INTO log_entries (` + logEntryColumns + `, period_key)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		e.ID,
		e.StudentID,
		e.PlacementID,
		string(e.Cadence),
		e.PeriodNumber,
		e.LogDate.Format(dateLayout),
		fields,
		days,
		e.Reflection,
		string(e.SubmissionStatus),
		string(e.SupervisorStatus),
		string(e.InstructorStatus),
		e.SupervisorComment,
		nullableTimeToString(e.SupervisorVerifiedAt, timeLayout),
		nullableString(e.VerificationToken),
		nullableTimeToString(e.SubmittedAt, timeLayout),
		formatTime(e.CreatedAt),
		formatTime(e.UpdatedAt),
		e.PeriodKey(),
	)
	if err != nil {
		return classifyWriteErr("inserting log entry", err)
	}
	return nil
}

func (r *SQLLogEntryRepo) GetByID(ctx context.Context, id string) (*domain.LogEntry, error) {
	query := `SELECT ` + logEntryColumns + ` FROM log_entries WHERE id = ?`
	return r.scanLogEntry(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLLogEntryRepo) GetByToken(ctx context.Context, token string) (*domain.LogEntry, error) {
	if token == "" {
		return nil, fmt.Errorf("log entry: %w", ErrNotFound)
	}
	query := `SELECT ` + logEntryColumns + ` FROM log_entries WHERE verification_token = ?`
	return r.scanLogEntry(r.db.QueryRowContext(ctx, query, token))
}

func (r *SQLLogEntryRepo) GetByPeriodKey(ctx context.Context, studentID, placementID, periodKey string) (*domain.LogEntry, error) {
	query := `SELECT ` + logEntryColumns + ` FROM log_entries
		WHERE student_id = ? AND placement_id = ? AND period_key = ?`
	return r.scanLogEntry(r.db.QueryRowContext(ctx, query, studentID, placementID, periodKey))
}

func (r *SQLLogEntryRepo) ListByStudentPlacement(ctx context.Context, studentID, placementID string) ([]*domain.LogEntry, error) {
	query := `SELECT ` + logEntryColumns + ` FROM log_entries
		WHERE student_id = ? AND placement_id = ?
		ORDER BY log_date, period_number`
	rows, err := r.db.QueryContext(ctx, query, studentID, placementID)
	if err != nil {
		return nil, fmt.Errorf("listing log entries: %w", err)
	}
	defer rows.Close()
	return r.scanLogEntries(rows)
}

func (r *SQLLogEntryRepo) ListSubmittedSince(ctx context.Context, placementID string, since time.Time) ([]*domain.LogEntry, error) {
	query := `SELECT ` + logEntryColumns + ` FROM log_entries
		WHERE placement_id = ? AND submission_status = 'submitted' AND updated_at > ?
		ORDER BY updated_at, id`
	rows, err := r.db.QueryContext(ctx, query, placementID, formatTime(since))
	if err != nil {
		return nil, fmt.Errorf("listing submitted log entries: %w", err)
	}
	defer rows.Close()
	return r.scanLogEntries(rows)
}

// Update writes every mutable column of the entry.
func (r *SQLLogEntryRepo) Update(ctx context.Context, e *domain.LogEntry) error {
	fields, days, err := encodePayload(e)
	if err != nil {
		return err
	}

	query := `UPDATE log_entries SET
		fields = ?, days = ?, reflection = ?,
		submission_status = ?, supervisor_status = ?, instructor_status = ?,
		supervisor_comment = ?, supervisor_verified_at = ?, verification_token = ?,
		submitted_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		fields,
		days,
		e.Reflection,
		string(e.SubmissionStatus),
		string(e.SupervisorStatus),
		string(e.InstructorStatus),
		e.SupervisorComment,
		nullableTimeToString(e.SupervisorVerifiedAt, timeLayout),
		nullableString(e.VerificationToken),
		nullableTimeToString(e.SubmittedAt, timeLayout),
		formatTime(e.UpdatedAt),
		e.ID,
	)
	if err != nil {
		return classifyWriteErr("updating log entry", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking log entry update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("log entry %s: %w", e.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLLogEntryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM log_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting log entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking log entry delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("log entry %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLLogEntryRepo) scanLogEntry(row rowScanner) (*domain.LogEntry, error) {
	var e domain.LogEntry
	var cadence, logDateStr, subStatus, supStatus, insStatus, createdStr, updatedStr string
	var fieldsStr, daysStr, verifiedAtStr, tokenStr, submittedAtStr sql.NullString

	err := row.Scan(
		&e.ID, &e.StudentID, &e.PlacementID, &cadence, &e.PeriodNumber, &logDateStr,
		&fieldsStr, &daysStr, &e.Reflection, &subStatus, &supStatus, &insStatus,
		&e.SupervisorComment, &verifiedAtStr, &tokenStr, &submittedAtStr,
		&createdStr, &updatedStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("log entry: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning log entry: %w", err)
	}

	e.Cadence = domain.Cadence(cadence)
	e.SubmissionStatus = domain.SubmissionStatus(subStatus)
	e.SupervisorStatus = domain.SupervisorStatus(supStatus)
	e.InstructorStatus = domain.InstructorStatus(insStatus)
	e.VerificationToken = tokenStr.String
	e.SupervisorVerifiedAt = parseNullableTime(verifiedAtStr, timeLayout)
	e.SubmittedAt = parseNullableTime(submittedAtStr, timeLayout)

	if e.LogDate, err = parseDate(logDateStr); err != nil {
		return nil, err
	}
	if fieldsStr.Valid {
		e.Fields = map[string]any{}
		if err := unmarshalJSON(fieldsStr, &e.Fields); err != nil {
			return nil, fmt.Errorf("decoding fields of log entry %s: %w", e.ID, err)
		}
	}
	if daysStr.Valid {
		var rows []dayRow
		if err := unmarshalJSON(daysStr, &rows); err != nil {
			return nil, fmt.Errorf("decoding days of log entry %s: %w", e.ID, err)
		}
		e.Days = make([]domain.DayEntry, 0, len(rows))
		for _, r := range rows {
			d, err := parseDate(r.Date)
			if err != nil {
				return nil, fmt.Errorf("day of log entry %s: %w", e.ID, err)
			}
			fields := r.Fields
			if fields == nil {
				fields = map[string]any{}
			}
			e.Days = append(e.Days, domain.DayEntry{Date: d, Fields: fields})
		}
	}
	if e.CreatedAt, err = parseTime(createdStr); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTime(updatedStr); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *SQLLogEntryRepo) scanLogEntries(rows *sql.Rows) ([]*domain.LogEntry, error) {
	var entries []*domain.LogEntry
	for rows.Next() {
		e, err := r.scanLogEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating log entries: %w", err)
	}
	return entries, nil
}
