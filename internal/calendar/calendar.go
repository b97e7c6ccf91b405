package calendar

import "time"

// windowSize is the number of accepted weekdays in a freshness window.
const windowSize = 5

// isoDate is the date format embedded in reports and used for comparisons.
const isoDate = "2006-01-02"

var weekdayLabels = map[time.Weekday]string{
	time.Monday:    "Mon",
	time.Tuesday:   "Tue",
	time.Wednesday: "Wed",
	time.Thursday:  "Thu",
	time.Friday:    "Fri",
}

// Entry is one accepted (weekday label, calendar date) pair.
type Entry struct {
	Label string
	Date  time.Time
}

// ISO returns the entry date as an ISO date string.
func (e Entry) ISO() string {
	return e.Date.Format(isoDate)
}

// Window is the ordered set of dates a report is allowed to carry,
// most recent first. Always exactly five weekdays, never Sat/Sun.
type Window struct {
	entries []Entry
}

// Compute walks backward from ref (inclusive), skipping weekends, until
// five weekdays are collected. The time-of-day of ref is ignored.
func Compute(ref time.Time) Window {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)

	entries := make([]Entry, 0, windowSize)
	for len(entries) < windowSize {
		if label, ok := weekdayLabels[day.Weekday()]; ok {
			entries = append(entries, Entry{Label: label, Date: day})
		}
		day = day.AddDate(0, 0, -1)
	}

	return Window{entries: entries}
}

// Entries returns the window entries, most recent first.
func (w Window) Entries() []Entry {
	return w.entries
}

// Labels returns the weekday labels in window order.
func (w Window) Labels() []string {
	labels := make([]string, len(w.entries))
	for i, e := range w.entries {
		labels[i] = e.Label
	}
	return labels
}

// Dates returns the ISO date strings in window order.
func (w Window) Dates() []string {
	dates := make([]string, len(w.entries))
	for i, e := range w.entries {
		dates[i] = e.ISO()
	}
	return dates
}

// Contains reports whether the ISO date string is inside the window.
func (w Window) Contains(iso string) bool {
	for _, e := range w.entries {
		if e.ISO() == iso {
			return true
		}
	}
	return false
}
