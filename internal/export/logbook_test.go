package export

import (
	"bytes"
	"testing"

	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/alexanderramin/fieldlog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func readBook(t *testing.T, buf *bytes.Buffer) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestWriteLogbook_Weekly(t *testing.T) {
	p := testutil.NewTestPlacement("Teaching Practice")
	week2 := testutil.NewTestWeeklyEntry("s1", p.ID, 2,
		testutil.WithDay(testutil.Date(2024, 1, 9), map[string]any{"lesson_topic": "Fractions", "class_taught": "3B"}),
		testutil.WithDay(testutil.Date(2024, 1, 10), map[string]any{"lesson_topic": "Decimals"}),
		testutil.WithReflection("Good week"),
		testutil.WithSubmitted(),
		testutil.WithSupervisorStatus(domain.SupervisorVerified),
	)
	week1 := testutil.NewTestWeeklyEntry("s1", p.ID, 1)

	var buf bytes.Buffer
	require.NoError(t, WriteLogbook(&buf, p, []*domain.LogEntry{week2, week1}))
	f := readBook(t, &buf)

	assert.Equal(t, []string{SheetLogbook, SheetDays}, f.GetSheetList())

	rows, err := f.GetRows(SheetLogbook)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, logbookHeader, rows[0])
	assert.Equal(t, []string{"Week 1", "2024-01-01", "2024-01-07", "draft"}, rows[1])
	assert.Equal(t, "Week 2", rows[2][0])
	assert.Equal(t, "verified", rows[2][3])
	assert.Equal(t, "Good week", rows[2][4])

	days, err := f.GetRows(SheetDays)
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, []string{"Week 2", "2024-01-09", "class_taught: 3B\nlesson_topic: Fractions"}, days[1])
	assert.Equal(t, "2024-01-10", days[2][1])
}

func TestWriteLogbook_Daily(t *testing.T) {
	p := testutil.NewTestPlacement("Attachment", testutil.WithCadence(domain.CadenceDaily))
	e := testutil.NewTestDailyEntry("s1", p.ID, testutil.Date(2024, 1, 3))
	e.Fields = map[string]any{"department": "IT"}

	var buf bytes.Buffer
	require.NoError(t, WriteLogbook(&buf, p, []*domain.LogEntry{e}))
	f := readBook(t, &buf)

	rows, err := f.GetRows(SheetLogbook)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2024-01-03", "2024-01-03", "2024-01-03", "draft"}, rows[1])

	days, err := f.GetRows(SheetDays)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, []string{"2024-01-03", "2024-01-03", "department: IT"}, days[1])
}

func TestWriteLogbook_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLogbook(&buf, testutil.NewTestPlacement("Empty"), nil))
	rows, err := readBook(t, &buf).GetRows(SheetLogbook)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
