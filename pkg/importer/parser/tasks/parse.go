// Package tasks parses task definition CSV files.
package tasks

import (
	"fmt"
	"io"
	"strings"

	"github.com/amasdatadriven/backend/internal/types"
	"github.com/amasdatadriven/backend/pkg/importer"
	"github.com/amasdatadriven/backend/pkg/models"
	"github.com/shopspring/decimal"
)

// Column names. Only Name is required.
const (
	Category         = "Category"
	Aspect           = "Aspect"
	CurrentSituation = "Current Situation"
	Name             = "Name"
	Detail           = "Detail"
	StartTime        = "Start Time"
	Outcome          = "Outcome"
	PersonInvolved   = "Person Involved"
	Budget           = "Budget"
	Deadline         = "Deadline"
	Progress         = "Progress (%)"
)

var ErrEmptyFile = fmt.Errorf("%w: the file is empty", models.ErrValidation)

// Parse parses a task CSV file. Rows that cannot be imported are
// returned with the reason in Problem.
func Parse(f io.Reader, delimiter rune) ([]importer.TaskRow, error) {
	reader := importer.NewReader(f, delimiter)

	header, err := importer.ReadHeader(reader)
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("%w: could not read the header: %w", models.ErrValidation, err)
	}

	if _, ok := header.LookupFold(Name); !ok {
		return nil, fmt.Errorf("%w: the CSV header is missing the columns %s", models.ErrValidation, Name)
	}

	column := func(record []string, name string) string {
		i, ok := header.LookupFold(name)
		if !ok {
			return ""
		}
		return importer.Value(record, i)
	}

	rows := make([]importer.TaskRow, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: could not read line in CSV: %w", models.ErrValidation, err)
		}

		row := importer.TaskRow{
			Line: importer.Line(reader),
			Task: models.TaskCreate{
				Name:             column(record, Name),
				Category:         column(record, Category),
				Aspect:           column(record, Aspect),
				CurrentSituation: column(record, CurrentSituation),
				Detail:           column(record, Detail),
				Outcome:          column(record, Outcome),
				PersonInvolved:   column(record, PersonInvolved),
			},
		}

		row.Problem = parseRow(&row.Task, func(name string) string { return column(record, name) })
		rows = append(rows, row)
	}

	return rows, nil
}

func parseRow(task *models.TaskCreate, column func(string) string) string {
	var err error

	if s := column(StartTime); s != "" {
		task.StartDate, err = types.ParseDate(s)
		if err != nil {
			return fmt.Sprintf("start time: %s", err)
		}
	}

	if s := column(Deadline); s != "" {
		task.Deadline, err = types.ParseDate(s)
		if err != nil {
			return fmt.Sprintf("deadline: %s", err)
		}
	}

	if s := column(Budget); s != "" {
		task.Budget, err = importer.ParseAmount(s)
		if err != nil {
			return fmt.Sprintf("budget %s", err)
		}
	}

	if s := strings.TrimSpace(strings.TrimSuffix(column(Progress), "%")); s != "" {
		progress, err := decimal.NewFromString(s)
		if err != nil {
			return fmt.Sprintf("progress '%s' is not a number", s)
		}

		if progress.IsNegative() || progress.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Sprintf("progress must be between 0 and 100, is %s", progress)
		}
		task.Progress = uint8(progress.Round(0).IntPart())
	}

	err = task.Validate()
	if err != nil {
		return err.Error()
	}

	return ""
}
