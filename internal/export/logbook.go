// Package export writes a placement's log entries to an XLSX workbook.
package export

import (
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/alexanderramin/fieldlog/internal/scheduler"
	"github.com/xuri/excelize/v2"
)

const (
	SheetLogbook = "Logbook"
	SheetDays    = "Days"
)

var (
	logbookHeader = []string{"Period", "Start", "End", "Status", "Reflection", "Supervisor Comment", "Submitted At"}
	daysHeader    = []string{"Period", "Date", "Fields"}
)

// WriteLogbook writes one row per entry to the Logbook sheet and one row per
// day sub-entry (or daily entry) to the Days sheet. Entries are written in
// date order.
func WriteLogbook(w io.Writer, p *domain.Placement, entries []*domain.LogEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetLogbook); err != nil {
		return fmt.Errorf("naming logbook sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetDays); err != nil {
		return fmt.Errorf("creating days sheet: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{Title: p.Title, Creator: "fieldlog"}); err != nil {
		return fmt.Errorf("setting workbook properties: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := writeRow(f, SheetLogbook, 1, logbookHeader, headerStyle); err != nil {
		return err
	}
	if err := writeRow(f, SheetDays, 1, daysHeader, headerStyle); err != nil {
		return err
	}

	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b *domain.LogEntry) int {
		return a.LogDate.Compare(b.LogDate)
	})

	dayRow := 2
	for i, e := range sorted {
		label := periodLabel(e)
		win := e.Window()
		submitted := ""
		if e.SubmittedAt != nil {
			submitted = e.SubmittedAt.Format("2006-01-02 15:04")
		}
		row := []string{
			label,
			scheduler.FormatDate(win.Start),
			scheduler.FormatDate(win.End),
			string(e.DisplayStatus()),
			e.Reflection,
			e.SupervisorComment,
			submitted,
		}
		if err := writeRow(f, SheetLogbook, i+2, row, 0); err != nil {
			return err
		}

		if !e.Cadence.IsComposite() {
			if err := writeRow(f, SheetDays, dayRow, []string{label, scheduler.FormatDate(e.LogDate), formatFields(e.Fields)}, 0); err != nil {
				return err
			}
			dayRow++
			continue
		}
		for _, d := range e.Days {
			if err := writeRow(f, SheetDays, dayRow, []string{label, scheduler.FormatDate(d.Date), formatFields(d.Fields)}, 0); err != nil {
				return err
			}
			dayRow++
		}
	}

	f.SetColWidth(SheetLogbook, "A", "D", 14)
	f.SetColWidth(SheetLogbook, "E", "F", 40)
	f.SetColWidth(SheetLogbook, "G", "G", 18)
	f.SetColWidth(SheetDays, "A", "B", 14)
	f.SetColWidth(SheetDays, "C", "C", 60)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func periodLabel(e *domain.LogEntry) string {
	if e.Cadence.IsComposite() {
		return scheduler.WindowLabel(e.Cadence, e.PeriodNumber)
	}
	return scheduler.FormatDate(e.LogDate)
}

func writeRow(f *excelize.File, sheet string, row int, values []string, style int) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("writing %s!%s: %w", sheet, cell, err)
		}
		if style != 0 {
			if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
				return fmt.Errorf("styling %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}

// formatFields renders a payload as "key: value" lines sorted by key.
func formatFields(fields map[string]any) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %v", k, fields[k]))
	}
	return strings.Join(lines, "\n")
}
