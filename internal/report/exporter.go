package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"shareware/internal/license"
)

const (
	summarySheet = "Summary"
	eventsSheet  = "Events"
)

// WriteWorkbook exports a registry snapshot as an Excel workbook with a
// summary sheet and a full event log sheet.
func WriteWorkbook(path string, snapshot map[string]license.Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, snapshot); err != nil {
		return err
	}
	if err := writeEventsSheet(f, snapshot); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, snapshot map[string]license.Entry) error {
	// excelize names the default sheet "Sheet1"; rename instead of adding.
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, summarySheet); err != nil {
		return fmt.Errorf("failed to rename summary sheet: %w", err)
	}

	s := Summarize(snapshot)
	rows := [][]interface{}{
		{"State", "Namespace"},
	}
	for _, name := range s.Activated {
		rows = append(rows, []interface{}{string(license.StateActivated), name})
	}
	for _, name := range s.Unactivated {
		rows = append(rows, []interface{}{string(license.StateUnactivated), name})
	}
	for _, name := range s.Invalid {
		rows = append(rows, []interface{}{string(license.StateInvalid), name})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}
	return nil
}

func writeEventsSheet(f *excelize.File, snapshot map[string]license.Entry) error {
	if _, err := f.NewSheet(eventsSheet); err != nil {
		return fmt.Errorf("failed to create events sheet: %w", err)
	}

	names := make([]string, 0, len(snapshot))
	for name := range snapshot {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := [][]interface{}{
		{"Event ID", "Namespace", "State", "Key Present", "Observed At"},
	}
	for _, name := range names {
		entry := snapshot[name]
		for _, ev := range entry.Events {
			rows = append(rows, []interface{}{
				ev.ID,
				ev.Library,
				string(ev.State),
				ev.RawKey != "",
				ev.ObservedAt.Format(time.RFC3339),
			})
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(eventsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write event row: %w", err)
		}
	}
	return nil
}
