package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// PlacementImport is the top-level JSON structure of a placement definition.
type PlacementImport struct {
	Title       string             `json:"title" validate:"required"`
	StartDate   string             `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     *string            `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Cadence     string             `json:"cadence" validate:"required,oneof=daily weekly monthly"`
	LogTemplate string             `json:"log_template,omitempty" validate:"omitempty,oneof=teaching_practice industrial_attachment custom"`
	Milestones  []MilestoneImport  `json:"milestones,omitempty" validate:"dive"`
	Enrollments []EnrollmentImport `json:"enrollments,omitempty" validate:"dive"`
	Rubric      json.RawMessage    `json:"rubric,omitempty"`
}

// MilestoneImport defines one timeline milestone in the import file.
type MilestoneImport struct {
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Title       string `json:"title" validate:"required"`
	Category    string `json:"category,omitempty" validate:"omitempty,oneof=milestone deadline log meeting report other"`
	Description string `json:"description,omitempty"`
}

// EnrollmentImport enrolls one student of the cohort. Status defaults to
// pending.
type EnrollmentImport struct {
	StudentID       string   `json:"student_id" validate:"required"`
	Status          string   `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected"`
	ScheduleDays    []string `json:"schedule_days,omitempty" validate:"dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	SupervisorName  string   `json:"supervisor_name,omitempty"`
	SupervisorEmail string   `json:"supervisor_email,omitempty" validate:"omitempty,email"`
}

// LoadFile reads and parses a placement import JSON file.
func LoadFile(path string) (*PlacementImport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema PlacementImport
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
