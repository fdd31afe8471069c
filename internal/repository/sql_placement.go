package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/fieldlog/internal/db"
	"github.com/alexanderramin/fieldlog/internal/domain"
)

// SQLPlacementRepo implements PlacementRepo over SQLite or PostgreSQL.
type SQLPlacementRepo struct {
	db db.DBTX
}

// NewSQLPlacementRepo creates a new SQLPlacementRepo.
func NewSQLPlacementRepo(conn db.DBTX) *SQLPlacementRepo {
	return &SQLPlacementRepo{db: conn}
}

const placementColumns = `id, title, start_date, end_date, cadence, log_template, milestones, rubric, created_at, updated_at`

func (r *SQLPlacementRepo) Create(ctx context.Context, p *domain.Placement) error {
	milestones, err := marshalJSON(milestoneRows(p.Milestones))
	if err != nil {
		return fmt.Errorf("encoding milestones: %w", err)
	}
	var rubric any
	if len(p.Rubric) > 0 {
		rubric = string(p.Rubric)
	}

	query := `INSERT INTO placements (` + placementColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.Title,
		p.StartDate.Format(dateLayout),
		nullableTimeToString(p.EndDate, dateLayout),
		string(p.Cadence),
		string(p.LogTemplate),
		milestones,
		rubric,
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return classifyWriteErr("inserting placement", err)
	}
	return nil
}

func (r *SQLPlacementRepo) GetByID(ctx context.Context, id string) (*domain.Placement, error) {
	query := `SELECT ` + placementColumns + ` FROM placements WHERE id = ?`
	return r.scanPlacement(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLPlacementRepo) List(ctx context.Context) ([]*domain.Placement, error) {
	query := `SELECT ` + placementColumns + ` FROM placements ORDER BY start_date, title`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing placements: %w", err)
	}
	defer rows.Close()

	var out []*domain.Placement
	for rows.Next() {
		p, err := r.scanPlacement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating placements: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLPlacementRepo) scanPlacement(row rowScanner) (*domain.Placement, error) {
	var p domain.Placement
	var startStr, createdStr, updatedStr, cadence, tmpl string
	var endStr, milestonesStr, rubricStr sql.NullString

	err := row.Scan(&p.ID, &p.Title, &startStr, &endStr, &cadence, &tmpl,
		&milestonesStr, &rubricStr, &createdStr, &updatedStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("placement: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning placement: %w", err)
	}

	p.Cadence = domain.Cadence(cadence)
	p.LogTemplate = domain.TemplateKind(tmpl)
	if p.StartDate, err = parseDate(startStr); err != nil {
		return nil, err
	}
	p.EndDate = parseNullableTime(endStr, dateLayout)

	var rows []milestoneRow
	if err := unmarshalJSON(milestonesStr, &rows); err != nil {
		return nil, fmt.Errorf("decoding milestones of placement %s: %w", p.ID, err)
	}
	if p.Milestones, err = milestonesFromRows(rows); err != nil {
		return nil, err
	}
	if rubricStr.Valid {
		p.Rubric = json.RawMessage(rubricStr.String)
	}
	if p.CreatedAt, err = parseTime(createdStr); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedStr); err != nil {
		return nil, err
	}
	return &p, nil
}

func parseDate(s string) (t time.Time, err error) {
	t, err = time.Parse(dateLayout, s)
	if err != nil {
		return t, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

// milestoneRow is the stored JSON shape; dates are civil date strings.
type milestoneRow struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	IsSystem    bool   `json:"is_system,omitempty"`
}

func milestoneRows(ms []domain.Milestone) []milestoneRow {
	out := make([]milestoneRow, 0, len(ms))
	for _, m := range ms {
		out = append(out, milestoneRow{
			ID:          m.ID,
			Date:        m.Date.Format(dateLayout),
			Title:       m.Title,
			Category:    string(m.Category),
			Description: m.Description,
			IsSystem:    m.IsSystem,
		})
	}
	return out
}

func milestonesFromRows(rows []milestoneRow) ([]domain.Milestone, error) {
	out := make([]domain.Milestone, 0, len(rows))
	for _, r := range rows {
		d, err := parseDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("milestone %s: %w", r.ID, err)
		}
		out = append(out, domain.Milestone{
			ID:          r.ID,
			Date:        d,
			Title:       r.Title,
			Category:    domain.EventCategory(r.Category),
			Description: r.Description,
			IsSystem:    r.IsSystem,
		})
	}
	return out, nil
}
