package importer

import (
	"github.com/amasdatadriven/backend/pkg/models"
)

// Skipped is a CSV row that was not imported.
type Skipped struct {
	Line   int    `json:"line" example:"4"`                                   // Line of the row in the CSV file
	Reason string `json:"reason" example:"the amount must be positive, is 0"` // Why the row was skipped
}

// Report is the result of a bulk import.
type Report struct {
	Imported int       `json:"imported" example:"12"` // Number of imported rows
	Skipped  []Skipped `json:"skipped"`               // Rows that were not imported
}

// Skip records a skipped row.
func (r *Report) Skip(line int, reason string) {
	r.Skipped = append(r.Skipped, Skipped{Line: line, Reason: reason})
}

// TransactionRow is a parsed row of a transaction CSV file.
type TransactionRow struct {
	Line        int
	TaskRef     string // ID or name of the task
	Transaction models.TransactionCreate
	Problem     string // Why the row cannot be imported. Empty for valid rows.
}

// TaskRow is a parsed row of a task CSV file.
type TaskRow struct {
	Line    int
	Task    models.TaskCreate
	Problem string // Why the row cannot be imported. Empty for valid rows.
}
