package importer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

func TestConvert_MinimalPlacement(t *testing.T) {
	res, err := Convert(validMinimalSchema(), testNow)
	require.NoError(t, err)
	p := res.Placement

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Teaching Practice 2024", p.Title)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), p.StartDate)
	assert.Nil(t, p.EndDate)
	assert.Equal(t, domain.CadenceWeekly, p.Cadence)
	assert.Equal(t, domain.TemplateCustom, p.LogTemplate)
	assert.Empty(t, p.Milestones, "open-ended placements get no default milestones")
	assert.Equal(t, testNow, p.CreatedAt)
	assert.Empty(t, res.Enrollments)
}

func TestConvert_DefaultMilestonesWhenBounded(t *testing.T) {
	s := validMinimalSchema()
	s.EndDate = ptrStr("2024-01-24")

	res, err := Convert(s, testNow)
	require.NoError(t, err)
	p := res.Placement
	require.NotNil(t, p.EndDate)
	require.NotEmpty(t, p.Milestones)
	for _, m := range p.Milestones {
		assert.True(t, m.IsSystem)
	}
}

func TestConvert_ListedMilestones(t *testing.T) {
	s := validMinimalSchema()
	s.EndDate = ptrStr("2024-03-29")
	s.LogTemplate = "teaching_practice"
	s.Rubric = []byte(`{"criteria":[]}`)
	s.Milestones = []MilestoneImport{
		{Date: "2024-02-14", Title: "Visit", Category: "meeting", Description: "Tutor visit"},
		{Date: "2024-03-01", Title: "Portfolio"},
	}

	res, err := Convert(s, testNow)
	require.NoError(t, err)
	p := res.Placement
	require.Len(t, p.Milestones, 2)
	assert.Equal(t, domain.EventMeeting, p.Milestones[0].Category)
	assert.Equal(t, "Tutor visit", p.Milestones[0].Description)
	assert.Equal(t, domain.EventMilestone, p.Milestones[1].Category)
	assert.False(t, p.Milestones[1].IsSystem)
	assert.Equal(t, domain.TemplateTeachingPractice, p.LogTemplate)
	assert.JSONEq(t, `{"criteria":[]}`, string(p.Rubric))
}

func TestConvert_Enrollments(t *testing.T) {
	s := validMinimalSchema()
	s.Enrollments = []EnrollmentImport{
		{StudentID: "s1", Status: "approved", ScheduleDays: []string{"monday", "wednesday"},
			SupervisorName: "Ms. Wanjiru", SupervisorEmail: "wanjiru@school.example"},
		{StudentID: "s2"},
	}

	res, err := Convert(s, testNow)
	require.NoError(t, err)
	require.Len(t, res.Enrollments, 2)
	assert.Equal(t, res.Placement.ID, res.Enrollments[0].PlacementID)
	assert.Equal(t, domain.EnrollmentApproved, res.Enrollments[0].Status)
	assert.Equal(t, []string{"monday", "wednesday"}, res.Enrollments[0].ScheduleDays)
	assert.Equal(t, "wanjiru@school.example", res.Enrollments[0].Supervisor.Email)
	assert.Equal(t, domain.EnrollmentPending, res.Enrollments[1].Status)
	assert.NotEqual(t, res.Enrollments[0].ID, res.Enrollments[1].ID)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "placement.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"title": "Attachment",
		"start_date": "2024-01-01",
		"end_date": "2024-03-29",
		"cadence": "daily",
		"milestones": [{"date": "2024-02-01", "title": "Visit"}]
	}`), 0o644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Attachment", s.Title)
	require.NotNil(t, s.EndDate)
	assert.Equal(t, "2024-03-29", *s.EndDate)
	assert.Len(t, s.Milestones, 1)
	assert.Empty(t, ValidateImportSchema(s))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"title":`), 0o644))
	_, err = LoadFile(bad)
	assert.ErrorContains(t, err, "parsing import file")

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
