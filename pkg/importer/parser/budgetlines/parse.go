// Package budgetlines parses budget line CSV files.
//
// The header must consist of exactly the columns
// Item, Detail, Unit, Quantity, Unit Cost, Total Cost and Notes.
// The Total Cost column is read but ignored, it is always recomputed.
package budgetlines

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/amasdatadriven/backend/pkg/importer"
	"github.com/amasdatadriven/backend/pkg/models"
	"golang.org/x/exp/slices"
)

// Columns are the columns of a budget line CSV file.
var Columns = []string{"Item", "Detail", "Unit", "Quantity", "Unit Cost", "Total Cost", "Notes"}

var ErrEmptyFile = fmt.Errorf("%w: the file is empty", models.ErrValidation)

// Parse parses a budget line CSV file.
//
// Any invalid row rejects the whole file. The error contains the line
// of the row.
func Parse(f io.Reader, delimiter rune) ([]models.BudgetLineCreate, error) {
	reader := importer.NewReader(f, delimiter)

	// We can reuse the array in the background to improve performance
	reader.ReuseRecord = true

	header, err := importer.ReadHeader(reader)
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("%w: could not read the header: %w", models.ErrValidation, err)
	}

	err = checkHeader(header)
	if err != nil {
		return nil, err
	}

	lines := make([]models.BudgetLineCreate, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: could not read line in CSV: %w", models.ErrValidation, err)
		}

		quantity, err := importer.ParseAmount(importer.Value(record, header["Quantity"]))
		if err != nil {
			return csvReadError(reader, fmt.Errorf("quantity %w", err))
		}

		unitCost, err := importer.ParseAmount(importer.Value(record, header["Unit Cost"]))
		if err != nil {
			return csvReadError(reader, fmt.Errorf("unit cost %w", err))
		}

		line := models.BudgetLineCreate{
			Item:     importer.Value(record, header["Item"]),
			Detail:   importer.Value(record, header["Detail"]),
			Unit:     importer.Value(record, header["Unit"]),
			Quantity: quantity,
			UnitCost: unitCost,
			Notes:    importer.Value(record, header["Notes"]),
		}

		err = line.Validate()
		if err != nil {
			return csvReadError(reader, err)
		}

		lines = append(lines, line)
	}

	return lines, nil
}

// checkHeader verifies that the header has exactly the expected columns.
func checkHeader(header importer.Header) error {
	var missing, unexpected []string
	for _, column := range Columns {
		if _, ok := header[column]; !ok {
			missing = append(missing, column)
		}
	}

	for column := range header {
		if column != "" && !slices.Contains(Columns, column) {
			unexpected = append(unexpected, column)
		}
	}
	slices.Sort(unexpected)

	if len(missing) > 0 {
		return fmt.Errorf("%w: the CSV header is missing the columns %s", models.ErrValidation, strings.Join(missing, ", "))
	}

	if len(unexpected) > 0 {
		return fmt.Errorf("%w: the CSV header contains unexpected columns %s", models.ErrValidation, strings.Join(unexpected, ", "))
	}

	return nil
}

// csvReadError returns the an error with the format string, including the line of the input
// the error occurred in in the message.
func csvReadError(r *csv.Reader, err error) ([]models.BudgetLineCreate, error) {
	if !errors.Is(err, models.ErrValidation) {
		err = fmt.Errorf("%w: %w", models.ErrValidation, err)
	}

	return nil, fmt.Errorf("error in line %d of the CSV: %w", importer.Line(r), err)
}
