package audit

import (
	"fmt"
	"strings"

	"github.com/ryanng9672/CVOfflineCheck-CompositeView-Offline-PDF-Checker/internal/calendar"
)

// Status records whether an equipment's PDF was found.
type Status string

const (
	StatusExists  Status = "Exists"
	StatusMissing Status = "Missing"
)

// Entry is one equipment record's presence/absence verdict.
type Entry struct {
	Name   string
	Type   string
	Status Status
	Path   string // empty when Missing
}

// ReportMeta describes which file backed a category in this run.
type ReportMeta struct {
	Category string
	Filename string
	Date     string
}

// Summary aggregates the audit verdicts.
type Summary struct {
	Total      int
	Exists     int
	Missing    int
	ExistsPct  float64
	MissingPct float64
}

// Result is the completed audit: one entry per filtered equipment row,
// in the merged reports' row order.
type Result struct {
	RunID   string
	Window  calendar.Window
	Reports []ReportMeta
	Entries []Entry
	Summary Summary
}

// MissingEntries returns the entries whose PDF was not found, in order.
func (r *Result) MissingEntries() []Entry {
	var missing []Entry
	for _, e := range r.Entries {
		if e.Status == StatusMissing {
			missing = append(missing, e)
		}
	}
	return missing
}

// Reason identifies why an audit run aborted before producing a result.
type Reason string

const (
	MissingReports      Reason = "missing_reports"
	MissingColumns      Reason = "missing_columns"
	NoMatchingEquipment Reason = "no_matching_equipment"
)

// AbortError is the pipeline's terminal failure. No output artifact
// exists when it is returned, not even a partial one.
type AbortError struct {
	Reason    Reason
	Missing   []string // failed categories, or absent columns
	Available []string // columns present, for MissingColumns
}

func (e *AbortError) Error() string {
	switch e.Reason {
	case MissingReports:
		return fmt.Sprintf("no usable diff report for: %s", strings.Join(e.Missing, ", "))
	case MissingColumns:
		return fmt.Sprintf("merged report lacks required columns %s (available: %s)",
			strings.Join(e.Missing, ", "), strings.Join(e.Available, ", "))
	case NoMatchingEquipment:
		return "no Circuit Breaker or Switch equipment in the reports"
	default:
		return string(e.Reason)
	}
}
