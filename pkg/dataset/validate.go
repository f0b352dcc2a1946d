package dataset

import (
	"strings"
)

// ValidationReport summarizes data-quality findings for one table.
// Purely diagnostic: nothing downstream gates on it.
type ValidationReport struct {
	File          string
	TotalRows     int
	NullCounts    map[string]int // column name -> empty cell count
	DuplicateRows int            // rows identical to an earlier row
}

// Clean reports whether the table had no missing values and no duplicates.
func (r *ValidationReport) Clean() bool {
	for _, n := range r.NullCounts {
		if n > 0 {
			return false
		}
	}
	return r.DuplicateRows == 0
}

// Validate scans a raw table for missing values and fully duplicate rows.
// The table is not mutated.
func Validate(t *Table) ValidationReport {
	report := ValidationReport{
		File:       t.File,
		TotalRows:  len(t.Rows),
		NullCounts: make(map[string]int, len(t.Columns)),
	}
	for _, col := range t.Columns {
		report.NullCounts[col] = 0
	}

	seen := make(map[string]struct{}, len(t.Rows))
	for _, row := range t.Rows {
		for i, cell := range row {
			if cell == "" {
				report.NullCounts[t.Columns[i]]++
			}
		}

		key := strings.Join(row, "\x1f")
		if _, dup := seen[key]; dup {
			report.DuplicateRows++
		} else {
			seen[key] = struct{}{}
		}
	}

	return report
}
