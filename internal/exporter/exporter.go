// Package exporter writes the completed audit result to disk. Both
// writers stage the artifact in a temp file and rename it into place, so
// an existing file is overwritten atomically and a failed run never
// leaves a partially written artifact.
package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ryanng9672/CVOfflineCheck-CompositeView-Offline-PDF-Checker/internal/audit"
)

// resultColumns is the audit artifact's header, fixed by the consumers
// of the output table.
var resultColumns = []string{"Equipment Name", "Equipment Type", "PDF Status", "PDF Path"}

// Write picks the writer by the destination's extension: .xlsx gets the
// workbook form, everything else the CSV form.
func Write(res *audit.Result, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return WriteXLSX(res, path)
	}
	return WriteCSV(res, path)
}

// WriteCSV writes the audit table as CSV, one row per entry in run order.
func WriteCSV(res *audit.Result, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".cvcheck-*")
	if err != nil {
		return fmt.Errorf("stage output: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(resultColumns); err != nil {
		tmp.Close()
		return err
	}
	for _, e := range res.Entries {
		if err := w.Write([]string{e.Name, e.Type, string(e.Status), e.Path}); err != nil {
			tmp.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// WriteXLSX writes the audit table to an "Audit" sheet plus a "Summary"
// sheet carrying the run metadata and counts.
func WriteXLSX(res *audit.Result, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	auditSheet := "Audit"
	f.SetSheetName("Sheet1", auditSheet)

	for i, h := range resultColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(auditSheet, cell, h)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	f.SetRowStyle(auditSheet, 1, 1, headerStyle)

	for i, e := range res.Entries {
		row := i + 2
		f.SetCellValue(auditSheet, fmt.Sprintf("A%d", row), e.Name)
		f.SetCellValue(auditSheet, fmt.Sprintf("B%d", row), e.Type)
		f.SetCellValue(auditSheet, fmt.Sprintf("C%d", row), string(e.Status))
		f.SetCellValue(auditSheet, fmt.Sprintf("D%d", row), e.Path)
	}

	summarySheet := "Summary"
	f.NewSheet(summarySheet)

	summaryData := [][]interface{}{
		{"Run ID", res.RunID},
		{"Accepted Dates", strings.Join(res.Window.Dates(), ", ")},
	}
	for _, rep := range res.Reports {
		summaryData = append(summaryData, []interface{}{
			fmt.Sprintf("%s Report", rep.Category),
			fmt.Sprintf("%s (date %s)", rep.Filename, rep.Date),
		})
	}
	summaryData = append(summaryData,
		[]interface{}{"Total Equipment", res.Summary.Total},
		[]interface{}{"PDFs Found", fmt.Sprintf("%d (%.1f%%)", res.Summary.Exists, res.Summary.ExistsPct)},
		[]interface{}{"PDFs Missing", fmt.Sprintf("%d (%.1f%%)", res.Summary.Missing, res.Summary.MissingPct)},
	)
	for i, row := range summaryData {
		for j, val := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			f.SetCellValue(summarySheet, cell, val)
		}
	}

	f.SetColWidth(auditSheet, "A", "B", 30)
	f.SetColWidth(auditSheet, "C", "C", 12)
	f.SetColWidth(auditSheet, "D", "D", 60)
	f.SetActiveSheet(0)

	tmp, err := os.CreateTemp(filepath.Dir(path), ".cvcheck-*")
	if err != nil {
		return fmt.Errorf("stage output: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
