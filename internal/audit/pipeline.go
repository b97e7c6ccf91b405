package audit

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ryanng9672/CVOfflineCheck-CompositeView-Offline-PDF-Checker/internal/calendar"
	"github.com/ryanng9672/CVOfflineCheck-CompositeView-Offline-PDF-Checker/internal/locator"
	"github.com/ryanng9672/CVOfflineCheck-CompositeView-Offline-PDF-Checker/internal/report"
	"github.com/ryanng9672/CVOfflineCheck-CompositeView-Offline-PDF-Checker/internal/table"
)

// Required columns of the merged diff reports.
var requiredColumns = []string{"Equipment Name", "Equipment Type"}

// Equipment categories the audit covers.
var acceptedTypes = map[string]struct{}{
	"Circuit Breaker": {},
	"Switch":          {},
}

// EventType classifies pipeline progress events.
type EventType string

const (
	EventStart  EventType = "start"
	EventReport EventType = "report"
	EventCheck  EventType = "check"
	EventDone   EventType = "done"
)

// Event is a synchronous progress notification. The pipeline is
// single-threaded; events fire inline from Run.
type Event struct {
	Type    EventType
	Message string
	Index   int // 1-based position for check events
	Total   int
}

// Options configures a single audit run. ReferenceDate is explicit so
// runs are deterministic for a fixed date and filesystem state.
type Options struct {
	ReportsDir    string
	SearchRoot    string
	ReferenceDate time.Time
	Progress      func(Event)
}

// Pipeline validates the two diff reports, merges and filters them, and
// cross-references every surviving equipment row against the PDF tree.
// Each run is independent and idempotent given identical inputs.
type Pipeline struct {
	opts Options
	log  *zap.Logger
}

// New creates a pipeline for one run.
func New(opts Options, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{opts: opts, log: log}
}

// Run executes the audit. It returns a complete Result, or an
// *AbortError when the run cannot proceed; it never writes output itself,
// so an abort leaves no artifact behind.
func (p *Pipeline) Run() (*Result, error) {
	w := calendar.Compute(p.opts.ReferenceDate)
	p.progress(Event{Type: EventStart, Message: fmt.Sprintf(
		"accepted report dates: %s", joinDates(w))})
	p.log.Info("audit run starting",
		zap.String("reports_dir", p.opts.ReportsDir),
		zap.String("search_root", p.opts.SearchRoot),
		zap.Strings("accepted_dates", w.Dates()))

	records, failed := p.selectReports(w)
	if len(failed) > 0 {
		return nil, &AbortError{Reason: MissingReports, Missing: failed}
	}

	merged := table.Concat(records[0].Table, records[1].Table)
	p.log.Info("reports merged", zap.Int("rows", len(merged.Rows)))

	if missing := absentColumns(merged); len(missing) > 0 {
		return nil, &AbortError{
			Reason:    MissingColumns,
			Missing:   missing,
			Available: merged.Columns,
		}
	}

	nameCol := merged.ColumnIndex("Equipment Name")
	typeCol := merged.ColumnIndex("Equipment Type")

	filtered := merged.Filter(func(row []string) bool {
		_, ok := acceptedTypes[table.Cell(row, typeCol)]
		return ok
	})
	p.log.Info("equipment filtered",
		zap.Int("total", len(merged.Rows)), zap.Int("kept", len(filtered.Rows)))
	if len(filtered.Rows) == 0 {
		return nil, &AbortError{Reason: NoMatchingEquipment}
	}

	entries := p.checkDocuments(filtered, nameCol, typeCol)

	result := &Result{
		RunID:   uuid.NewString(),
		Window:  w,
		Entries: entries,
		Summary: summarize(entries),
	}
	for _, rec := range records {
		result.Reports = append(result.Reports, ReportMeta{
			Category: string(rec.Category),
			Filename: rec.Filename,
			Date:     rec.Date,
		})
	}

	p.progress(Event{Type: EventDone, Message: fmt.Sprintf(
		"%d equipment checked, %d PDFs found, %d missing",
		result.Summary.Total, result.Summary.Exists, result.Summary.Missing)})
	p.log.Info("audit run completed",
		zap.String("run_id", result.RunID),
		zap.Int("total", result.Summary.Total),
		zap.Int("exists", result.Summary.Exists),
		zap.Int("missing", result.Summary.Missing))
	return result, nil
}

// selectReports runs the selector for every category independently so an
// abort can name each one that failed.
func (p *Pipeline) selectReports(w calendar.Window) (records []*report.Record, failed []string) {
	sel := report.NewSelector(p.opts.ReportsDir, p.log)

	for _, cat := range report.Categories {
		if names := sel.ListCandidates(cat); len(names) > 0 {
			p.log.Debug("candidate files present",
				zap.String("category", string(cat)), zap.Strings("files", names))
		} else {
			p.log.Warn("no files with category prefix",
				zap.String("category", string(cat)))
		}

		rec, err := sel.Select(cat, w)
		if err != nil {
			p.log.Warn("report selection failed",
				zap.String("category", string(cat)), zap.Error(err))
			failed = append(failed, string(cat))
			continue
		}
		records = append(records, rec)
		p.progress(Event{Type: EventReport, Message: fmt.Sprintf(
			"%s: using %s (date %s)", rec.Category, rec.Filename, rec.Date)})
	}
	return records, failed
}

// checkDocuments resolves a PDF per filtered row, preserving row order.
func (p *Pipeline) checkDocuments(filtered *table.Table, nameCol, typeCol int) []Entry {
	entries := make([]Entry, 0, len(filtered.Rows))
	total := len(filtered.Rows)

	for i, row := range filtered.Rows {
		name := table.Cell(row, nameCol)
		entry := Entry{
			Name:   name,
			Type:   table.Cell(row, typeCol),
			Status: StatusMissing,
		}
		if path, ok := locator.Locate(p.opts.SearchRoot, name); ok {
			entry.Status = StatusExists
			entry.Path = path
		}
		entries = append(entries, entry)

		p.progress(Event{
			Type:    EventCheck,
			Message: fmt.Sprintf("%s ... %s", name, entry.Status),
			Index:   i + 1,
			Total:   total,
		})
	}
	return entries
}

func (p *Pipeline) progress(e Event) {
	if p.opts.Progress != nil {
		p.opts.Progress(e)
	}
}

// absentColumns lists the required columns t lacks.
func absentColumns(t *table.Table) []string {
	var missing []string
	for _, col := range requiredColumns {
		if t.ColumnIndex(col) < 0 {
			missing = append(missing, col)
		}
	}
	return missing
}

// summarize computes the audit counts and percentages.
func summarize(entries []Entry) Summary {
	s := Summary{Total: len(entries)}
	for _, e := range entries {
		if e.Status == StatusExists {
			s.Exists++
		} else {
			s.Missing++
		}
	}
	if s.Total > 0 {
		s.ExistsPct = float64(s.Exists) / float64(s.Total) * 100
		s.MissingPct = float64(s.Missing) / float64(s.Total) * 100
	}
	return s
}

func joinDates(w calendar.Window) string {
	out := ""
	for i, e := range w.Entries() {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s %s", e.Label, e.ISO())
	}
	return out
}
