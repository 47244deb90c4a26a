// Package transactions parses transaction CSV files.
//
// Columns are matched case-insensitively and may use any of several
// names, see the Column variables. Task, date and amount are required.
package transactions

import (
	"fmt"
	"io"
	"strings"

	"github.com/amasdatadriven/backend/internal/types"
	"github.com/amasdatadriven/backend/pkg/importer"
	"github.com/amasdatadriven/backend/pkg/importer/helpers"
	"github.com/amasdatadriven/backend/pkg/models"
)

// Accepted names per column
var (
	TaskColumn        = []string{"budget_id", "Budget", "task_id", "Task"}
	DateColumn        = []string{"transaction_date", "date"}
	DescriptionColumn = []string{"description", "details"}
	AmountColumn      = []string{"amount_usd", "usd", "amount"}
	NotesColumn       = []string{"notes", "method"}
)

var ErrEmptyFile = fmt.Errorf("%w: the file is empty", models.ErrValidation)

// Parse parses a transaction CSV file.
//
// Rows that cannot be imported are returned with the reason in Problem so
// that the caller can report them. Only an unreadable file or a missing
// required column fail the whole file.
func Parse(f io.Reader, delimiter rune) ([]importer.TransactionRow, error) {
	reader := importer.NewReader(f, delimiter)

	header, err := importer.ReadHeader(reader)
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("%w: could not read the header: %w", models.ErrValidation, err)
	}

	columns := map[string][]string{
		"task":   TaskColumn,
		"date":   DateColumn,
		"amount": AmountColumn,
	}

	index := make(map[string]int, 5)
	var missing []string
	for _, name := range []string{"task", "date", "amount"} {
		i, ok := header.LookupFold(columns[name]...)
		if !ok {
			missing = append(missing, strings.Join(columns[name], "|"))
			continue
		}
		index[name] = i
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: the CSV header is missing the columns %s", models.ErrValidation, strings.Join(missing, ", "))
	}

	// Optional columns
	description, ok := header.LookupFold(DescriptionColumn...)
	if !ok {
		description = -1
	}

	notes, ok := header.LookupFold(NotesColumn...)
	if !ok {
		notes = -1
	}

	rows := make([]importer.TransactionRow, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: could not read line in CSV: %w", models.ErrValidation, err)
		}

		row := importer.TransactionRow{
			Line:    importer.Line(reader),
			TaskRef: importer.Value(record, index["task"]),
			Transaction: models.TransactionCreate{
				Description: importer.Value(record, description),
				Notes:       importer.Value(record, notes),
				ImportHash:  helpers.RecordHash(record),
			},
		}

		row.Problem = parseRow(&row, record, index)
		rows = append(rows, row)
	}

	return rows, nil
}

// parseRow parses the required fields into the row and returns the
// problem with the row, if any.
func parseRow(row *importer.TransactionRow, record []string, index map[string]int) string {
	if row.TaskRef == "" {
		return "no task is set"
	}

	date, err := types.ParseDate(importer.Value(record, index["date"]))
	if err != nil {
		return err.Error()
	}
	row.Transaction.Date = date

	amount, err := importer.ParseAmount(importer.Value(record, index["amount"]))
	if err != nil {
		return fmt.Sprintf("amount %s", err)
	}
	row.Transaction.Amount = amount

	err = row.Transaction.Validate()
	if err != nil {
		return err.Error()
	}

	return ""
}
