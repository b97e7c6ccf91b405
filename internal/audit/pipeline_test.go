package audit

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

// refMonday is 2024-06-10; the window accepts 2024-06-04..2024-06-10 weekdays.
var refMonday = time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

// fixture builds a reports dir with both categories and a PDF tree with
// documents for BRK-101 and SW-7 (but not SW-9).
func fixture(t *testing.T) (reportsDir, pdfRoot string) {
	t.Helper()
	reportsDir = t.TempDir()
	pdfRoot = t.TempDir()

	writeFile(t, filepath.Join(reportsDir, "CompositeView_Diff_Mon.csv"),
		"Equipment Name,Equipment Type,Change Date\n"+
			"BRK-101,Circuit Breaker,2024-06-10\n"+
			"TX-3,Transformer,2024-06-10\n"+
			"SW-7,Switch,2024-06-10\n")
	writeFile(t, filepath.Join(reportsDir, "Substation_Diff_Mon.csv"),
		"Equipment Name,Equipment Type,Change Date\n"+
			"SW-9,Switch,2024-06-10\n")

	writeFile(t, filepath.Join(pdfRoot, "breakers", "brk-101.pdf"), "%PDF-1.4")
	writeFile(t, filepath.Join(pdfRoot, "switches", "Sub_SW-7_diagram.pdf"), "%PDF-1.4")
	return reportsDir, pdfRoot
}

func run(t *testing.T, reportsDir, pdfRoot string) (*Result, error) {
	t.Helper()
	p := New(Options{
		ReportsDir:    reportsDir,
		SearchRoot:    pdfRoot,
		ReferenceDate: refMonday,
	}, nil)
	return p.Run()
}

func TestRun_Completed(t *testing.T) {
	t.Parallel()

	reportsDir, pdfRoot := fixture(t)
	res, err := run(t, reportsDir, pdfRoot)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	// Transformer filtered out; CompositeView rows precede Substation rows.
	wantNames := []string{"BRK-101", "SW-7", "SW-9"}
	if len(res.Entries) != len(wantNames) {
		t.Fatalf("unexpected entries: %+v", res.Entries)
	}
	for i, name := range wantNames {
		if res.Entries[i].Name != name {
			t.Fatalf("entry %d: got %s want %s", i, res.Entries[i].Name, name)
		}
	}

	if res.Entries[0].Status != StatusExists || res.Entries[1].Status != StatusExists {
		t.Fatalf("expected BRK-101 and SW-7 found: %+v", res.Entries)
	}
	if res.Entries[2].Status != StatusMissing || res.Entries[2].Path != "" {
		t.Fatalf("expected SW-9 missing with empty path: %+v", res.Entries[2])
	}

	if res.Summary.Total != 3 || res.Summary.Exists != 2 || res.Summary.Missing != 1 {
		t.Fatalf("unexpected summary: %+v", res.Summary)
	}
	if res.Summary.MissingPct < 33.2 || res.Summary.MissingPct > 33.4 {
		t.Fatalf("unexpected missing pct: %f", res.Summary.MissingPct)
	}
	if res.RunID == "" {
		t.Fatalf("missing run id")
	}
	if len(res.Reports) != 2 || res.Reports[0].Category != "CompositeView" {
		t.Fatalf("unexpected report meta: %+v", res.Reports)
	}
}

func TestRun_Idempotent(t *testing.T) {
	t.Parallel()

	reportsDir, pdfRoot := fixture(t)
	first, err := run(t, reportsDir, pdfRoot)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := run(t, reportsDir, pdfRoot)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !reflect.DeepEqual(first.Entries, second.Entries) {
		t.Fatalf("entries differ between runs:\n%+v\n%+v", first.Entries, second.Entries)
	}
}

func TestRun_AbortMissingReports(t *testing.T) {
	t.Parallel()

	reportsDir := t.TempDir()
	writeFile(t, filepath.Join(reportsDir, "CompositeView_Diff_Mon.csv"),
		"Equipment Name,Equipment Type,Date\nBRK-101,Circuit Breaker,2024-06-10\n")
	// No Substation file at all.

	_, err := run(t, reportsDir, t.TempDir())

	var abort *AbortError
	if !errors.As(err, &abort) {
		t.Fatalf("want AbortError, got %v", err)
	}
	if abort.Reason != MissingReports {
		t.Fatalf("want MissingReports, got %s", abort.Reason)
	}
	if len(abort.Missing) != 1 || abort.Missing[0] != "Substation" {
		t.Fatalf("abort must name Substation: %+v", abort.Missing)
	}
}

func TestRun_AbortMissingBoth(t *testing.T) {
	t.Parallel()

	_, err := run(t, t.TempDir(), t.TempDir())

	var abort *AbortError
	if !errors.As(err, &abort) {
		t.Fatalf("want AbortError, got %v", err)
	}
	if len(abort.Missing) != 2 {
		t.Fatalf("abort must name both categories: %+v", abort.Missing)
	}
}

func TestRun_AbortMissingColumns(t *testing.T) {
	t.Parallel()

	reportsDir := t.TempDir()
	writeFile(t, filepath.Join(reportsDir, "CompositeView_Diff_Mon.csv"),
		"Device,Kind,Date\nBRK-101,Circuit Breaker,2024-06-10\n")
	writeFile(t, filepath.Join(reportsDir, "Substation_Diff_Mon.csv"),
		"Device,Kind,Date\nSW-9,Switch,2024-06-10\n")

	_, err := run(t, reportsDir, t.TempDir())

	var abort *AbortError
	if !errors.As(err, &abort) {
		t.Fatalf("want AbortError, got %v", err)
	}
	if abort.Reason != MissingColumns {
		t.Fatalf("want MissingColumns, got %s", abort.Reason)
	}
	if len(abort.Missing) != 2 {
		t.Fatalf("both required columns should be reported: %+v", abort.Missing)
	}
	if len(abort.Available) == 0 {
		t.Fatalf("abort must list available columns")
	}
}

func TestRun_AbortNoMatchingEquipment(t *testing.T) {
	t.Parallel()

	reportsDir := t.TempDir()
	writeFile(t, filepath.Join(reportsDir, "CompositeView_Diff_Mon.csv"),
		"Equipment Name,Equipment Type,Date\nTX-3,Transformer,2024-06-10\n")
	writeFile(t, filepath.Join(reportsDir, "Substation_Diff_Mon.csv"),
		"Equipment Name,Equipment Type,Date\nTX-4,Transformer,2024-06-10\n")

	_, err := run(t, reportsDir, t.TempDir())

	var abort *AbortError
	if !errors.As(err, &abort) {
		t.Fatalf("want AbortError, got %v", err)
	}
	if abort.Reason != NoMatchingEquipment {
		t.Fatalf("want NoMatchingEquipment, got %s", abort.Reason)
	}
}

func TestRun_ProgressEvents(t *testing.T) {
	t.Parallel()

	reportsDir, pdfRoot := fixture(t)

	var types []EventType
	var checks int
	p := New(Options{
		ReportsDir:    reportsDir,
		SearchRoot:    pdfRoot,
		ReferenceDate: refMonday,
		Progress: func(e Event) {
			types = append(types, e.Type)
			if e.Type == EventCheck {
				checks++
				if e.Total != 3 {
					t.Errorf("check event total: %d", e.Total)
				}
			}
		},
	}, nil)

	if _, err := p.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if types[0] != EventStart || types[len(types)-1] != EventDone {
		t.Fatalf("unexpected event framing: %v", types)
	}
	if checks != 3 {
		t.Fatalf("want 3 check events, got %d", checks)
	}
}

func TestRun_SubstationOnlyFallbackFile(t *testing.T) {
	t.Parallel()

	// The Substation report named for an older weekday is still accepted
	// when it is the freshest usable candidate.
	reportsDir := t.TempDir()
	writeFile(t, filepath.Join(reportsDir, "CompositeView_Diff_Mon.csv"),
		"Equipment Name,Equipment Type,Date\nBRK-101,Circuit Breaker,2024-06-10\n")
	writeFile(t, filepath.Join(reportsDir, "Substation_Diff_Wed.csv"),
		"Equipment Name,Equipment Type,Date\nSW-9,Switch,2024-06-05\n")

	res, err := run(t, reportsDir, t.TempDir())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Reports[1].Filename != "Substation_Diff_Wed.csv" {
		t.Fatalf("unexpected substation source: %+v", res.Reports[1])
	}
}
