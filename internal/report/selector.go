package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/ryanng9672/CVOfflineCheck-CompositeView-Offline-PDF-Checker/internal/calendar"
	"github.com/ryanng9672/CVOfflineCheck-CompositeView-Offline-PDF-Checker/internal/table"
)

// ErrNotFound reports that no candidate file inside the window exists
// and validates for a category.
var ErrNotFound = errors.New("no usable report found")

// Selector picks the freshest valid diff report for a category out of
// the reports directory.
type Selector struct {
	dir string
	log *zap.Logger
}

// NewSelector creates a selector over the given reports directory.
func NewSelector(dir string, log *zap.Logger) *Selector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Selector{dir: dir, log: log}
}

// ListCandidates enumerates the filenames in the reports directory that
// carry the category prefix, sorted by name. Diagnostic only: it has no
// effect on which file Select picks.
func (s *Selector) ListCandidates(cat Category) []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.log.Warn("cannot list reports directory",
			zap.String("dir", s.dir), zap.Error(err))
		return nil
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), string(cat)) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// Select walks the window freshest-first and returns the first candidate
// file that exists and validates against the full window's date set. A
// file named for one weekday may legitimately carry any date in the
// window, so validation never checks the single filename date alone.
// Validation failures make the candidate unusable and selection moves on
// to the next older weekday; a failing file is never retried.
func (s *Selector) Select(cat Category, w calendar.Window) (*Record, error) {
	accepted := w.Dates()

	for _, entry := range w.Entries() {
		filename := fmt.Sprintf("%s_Diff_%s.csv", cat, entry.Label)
		path := filepath.Join(s.dir, filename)

		if _, err := os.Stat(path); err != nil {
			s.log.Debug("candidate absent",
				zap.String("category", string(cat)), zap.String("file", filename))
			continue
		}

		t, err := table.LoadCSV(path)
		if err != nil {
			s.log.Warn("candidate unreadable",
				zap.String("category", string(cat)),
				zap.String("file", filename), zap.Error(err))
			continue
		}

		date, err := Validate(t, accepted)
		if err != nil {
			s.log.Warn("candidate rejected",
				zap.String("category", string(cat)),
				zap.String("file", filename), zap.Error(err))
			continue
		}

		s.log.Info("report selected",
			zap.String("category", string(cat)),
			zap.String("file", filename), zap.String("date", date))
		return &Record{
			Category: cat,
			Filename: filename,
			Label:    entry.Label,
			Date:     date,
			Table:    t,
		}, nil
	}

	return nil, fmt.Errorf("%s: %w for weekdays %s",
		cat, ErrNotFound, strings.Join(w.Labels(), ", "))
}
