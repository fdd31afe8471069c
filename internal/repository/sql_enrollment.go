package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/fieldlog/internal/db"
	"github.com/alexanderramin/fieldlog/internal/domain"
)

// SQLEnrollmentRepo implements EnrollmentRepo over SQLite or PostgreSQL.
type SQLEnrollmentRepo struct {
	db db.DBTX
}

// NewSQLEnrollmentRepo creates a new SQLEnrollmentRepo.
func NewSQLEnrollmentRepo(conn db.DBTX) *SQLEnrollmentRepo {
	return &SQLEnrollmentRepo{db: conn}
}

const enrollmentColumns = `id, student_id, placement_id, status, schedule_days,
	supervisor_name, supervisor_email, created_at, updated_at`

func (r *SQLEnrollmentRepo) Create(ctx context.Context, e *domain.Enrollment) error {
	days := e.ScheduleDays
	if days == nil {
		days = []string{}
	}
	daysJSON, err := marshalJSON(days)
	if err != nil {
		return fmt.Errorf("encoding schedule days: %w", err)
	}

	query := `INSERT INTO enrollments (` + enrollmentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		e.ID,
		e.StudentID,
		e.PlacementID,
		string(e.Status),
		daysJSON,
		e.Supervisor.Name,
		e.Supervisor.Email,
		formatTime(e.CreatedAt),
		formatTime(e.UpdatedAt),
	)
	if err != nil {
		return classifyWriteErr("inserting enrollment", err)
	}
	return nil
}

func (r *SQLEnrollmentRepo) Get(ctx context.Context, studentID, placementID string) (*domain.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE student_id = ? AND placement_id = ?`
	return r.scanEnrollment(r.db.QueryRowContext(ctx, query, studentID, placementID))
}

func (r *SQLEnrollmentRepo) ListByPlacement(ctx context.Context, placementID string) ([]*domain.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE placement_id = ? ORDER BY student_id`
	rows, err := r.db.QueryContext(ctx, query, placementID)
	if err != nil {
		return nil, fmt.Errorf("listing enrollments by placement: %w", err)
	}
	defer rows.Close()

	var out []*domain.Enrollment
	for rows.Next() {
		e, err := r.scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating enrollments: %w", err)
	}
	return out, nil
}

func (r *SQLEnrollmentRepo) UpdateStatus(ctx context.Context, id string, status domain.EnrollmentStatus, now time.Time) error {
	query := `UPDATE enrollments SET status = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, string(status), formatTime(now), id)
	if err != nil {
		return fmt.Errorf("updating enrollment status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking enrollment update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("enrollment %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLEnrollmentRepo) scanEnrollment(row rowScanner) (*domain.Enrollment, error) {
	var e domain.Enrollment
	var status, createdStr, updatedStr string
	var daysStr sql.NullString

	err := row.Scan(&e.ID, &e.StudentID, &e.PlacementID, &status, &daysStr,
		&e.Supervisor.Name, &e.Supervisor.Email, &createdStr, &updatedStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("enrollment: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning enrollment: %w", err)
	}
	e.Status = domain.EnrollmentStatus(status)
	if err := unmarshalJSON(daysStr, &e.ScheduleDays); err != nil {
		return nil, fmt.Errorf("decoding schedule days: %w", err)
	}
	if e.CreatedAt, err = parseTime(createdStr); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTime(updatedStr); err != nil {
		return nil, err
	}
	return &e, nil
}
