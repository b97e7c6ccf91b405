package report

import (
	"fmt"

	"github.com/ryanng9672/CVOfflineCheck-CompositeView-Offline-PDF-Checker/internal/table"
)

// Category identifies which diff report a file belongs to.
type Category string

const (
	CompositeView Category = "CompositeView"
	Substation    Category = "Substation"
)

// Categories lists every report category an audit run requires.
var Categories = []Category{CompositeView, Substation}

// Reason identifies why a candidate report table failed validation.
type Reason string

const (
	EmptyTable      Reason = "empty_table"
	NoDateColumn    Reason = "no_date_column"
	DateParseError  Reason = "date_parse_error"
	DateOutOfWindow Reason = "date_out_of_window"
)

// ValidationError marks a candidate file as unusable. The selector
// recovers from it by moving on to the next older weekday candidate;
// it never propagates past report selection.
type ValidationError struct {
	Reason Reason
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
}

// Record is a validated diff report ready for merging.
type Record struct {
	Category Category
	Filename string
	Label    string // weekday label the file was named for
	Date     string // validated max date, ISO
	Table    *table.Table
}
