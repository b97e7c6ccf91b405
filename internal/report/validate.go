package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/ryanng9672/CVOfflineCheck-CompositeView-Offline-PDF-Checker/internal/table"
)

// dateLayouts are the cell formats accepted in a report's date column.
// Filenames and embedded formats drift between report generators, so the
// validator is deliberately lenient here.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"2006-1-2",
}

// Validate checks that t is a plausible, fresh diff report: non-empty,
// carrying a date column, whose maximum date is one of accepted (ISO
// strings). On success it returns that maximum date as an ISO string.
//
// The date column is the first whose name contains "date"
// case-insensitively. This is a heuristic, not a strict schema; it is
// kept as-is because tightening it would reject previously accepted
// inputs.
func Validate(t *table.Table, accepted []string) (string, error) {
	if len(t.Rows) == 0 {
		return "", &ValidationError{Reason: EmptyTable}
	}

	col := t.FindColumn("date")
	if col < 0 {
		return "", &ValidationError{
			Reason: NoDateColumn,
			Detail: fmt.Sprintf("columns: %s", strings.Join(t.Columns, ", ")),
		}
	}

	var max time.Time
	parsed := 0
	for _, row := range t.Rows {
		cell := strings.TrimSpace(table.Cell(row, col))
		if cell == "" {
			continue
		}
		d, err := parseDate(cell)
		if err != nil {
			return "", &ValidationError{
				Reason: DateParseError,
				Detail: fmt.Sprintf("column %q value %q", t.Columns[col], cell),
			}
		}
		if d.After(max) {
			max = d
		}
		parsed++
	}
	if parsed == 0 {
		return "", &ValidationError{
			Reason: DateParseError,
			Detail: fmt.Sprintf("column %q has no values", t.Columns[col]),
		}
	}

	actual := max.Format("2006-01-02")
	for _, want := range accepted {
		if actual == want {
			return actual, nil
		}
	}
	return "", &ValidationError{
		Reason: DateOutOfWindow,
		Detail: fmt.Sprintf("report date %s not in accepted set", actual),
	}
}

// parseDate tries each accepted layout in order.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
