package calendar

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCompute_MondayScenario(t *testing.T) {
	t.Parallel()

	w := Compute(date(2024, time.June, 10)) // a Monday

	want := []struct {
		label string
		iso   string
	}{
		{"Mon", "2024-06-10"},
		{"Fri", "2024-06-07"},
		{"Thu", "2024-06-06"},
		{"Wed", "2024-06-05"},
		{"Tue", "2024-06-04"},
	}

	entries := w.Entries()
	if len(entries) != len(want) {
		t.Fatalf("unexpected entry count: %d", len(entries))
	}
	for i, e := range entries {
		if e.Label != want[i].label || e.ISO() != want[i].iso {
			t.Fatalf("entry %d: got (%s, %s) want (%s, %s)",
				i, e.Label, e.ISO(), want[i].label, want[i].iso)
		}
	}
}

func TestCompute_SundayStartsAtFriday(t *testing.T) {
	t.Parallel()

	w := Compute(date(2024, time.June, 9)) // a Sunday

	entries := w.Entries()
	if entries[0].Label != "Fri" || entries[0].ISO() != "2024-06-07" {
		t.Fatalf("unexpected first entry: (%s, %s)", entries[0].Label, entries[0].ISO())
	}
}

func TestCompute_Properties(t *testing.T) {
	t.Parallel()

	// Every window over two consecutive weeks: five entries, weekdays
	// only, strictly decreasing, no duplicate dates.
	start := date(2024, time.June, 1)
	for day := 0; day < 14; day++ {
		ref := start.AddDate(0, 0, day)
		w := Compute(ref)

		entries := w.Entries()
		if len(entries) != 5 {
			t.Fatalf("ref %s: %d entries", ref.Format("2006-01-02"), len(entries))
		}
		seen := map[string]bool{}
		for i, e := range entries {
			if wd := e.Date.Weekday(); wd == time.Saturday || wd == time.Sunday {
				t.Fatalf("ref %s: weekend entry %s", ref.Format("2006-01-02"), e.ISO())
			}
			if seen[e.ISO()] {
				t.Fatalf("ref %s: duplicate date %s", ref.Format("2006-01-02"), e.ISO())
			}
			seen[e.ISO()] = true
			if i > 0 && !e.Date.Before(entries[i-1].Date) {
				t.Fatalf("ref %s: dates not strictly decreasing at %d", ref.Format("2006-01-02"), i)
			}
		}
	}
}

func TestCompute_TimeOfDayIrrelevant(t *testing.T) {
	t.Parallel()

	morning := Compute(time.Date(2024, time.June, 10, 0, 1, 0, 0, time.UTC))
	evening := Compute(time.Date(2024, time.June, 10, 23, 59, 59, 0, time.UTC))

	md, ed := morning.Dates(), evening.Dates()
	for i := range md {
		if md[i] != ed[i] {
			t.Fatalf("dates differ at %d: %s vs %s", i, md[i], ed[i])
		}
	}
}

func TestWindow_Contains(t *testing.T) {
	t.Parallel()

	w := Compute(date(2024, time.June, 10))

	if !w.Contains("2024-06-04") {
		t.Fatalf("expected 2024-06-04 inside window")
	}
	if w.Contains("2024-06-03") {
		t.Fatalf("2024-06-03 must be outside window")
	}
	if w.Contains("2024-06-08") { // Saturday
		t.Fatalf("Saturday must be outside window")
	}
}
