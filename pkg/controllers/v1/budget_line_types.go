package v1

import (
	"fmt"

	"github.com/amasdatadriven/backend/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// BudgetLineEditable is a budget line as sent by clients. Quantity and unit
// cost are nullable so that omitted and null values can be told apart from 0.
type BudgetLineEditable struct {
	Item     string              `json:"item" example:"Enumerator fees" default:""`
	Detail   string              `json:"detail" example:"Two enumerators per district" default:""`
	Unit     string              `json:"unit" example:"day" default:""`
	Quantity decimal.NullDecimal `json:"quantity" swaggertype:"string" example:"2"`
	UnitCost decimal.NullDecimal `json:"unitCost" swaggertype:"string" example:"50"`
	Notes    string              `json:"notes" example:"Rate agreed with partner" default:""`
}

// model converts the editable to a create. Quantity and unit cost must be set.
func (e BudgetLineEditable) model() (models.BudgetLineCreate, error) {
	if !e.Quantity.Valid {
		return models.BudgetLineCreate{}, models.ErrQuantityMissing
	}

	if !e.UnitCost.Valid {
		return models.BudgetLineCreate{}, models.ErrUnitCostMissing
	}

	return models.BudgetLineCreate{
		Item:     e.Item,
		Detail:   e.Detail,
		Unit:     e.Unit,
		Quantity: e.Quantity.Decimal,
		UnitCost: e.UnitCost.Decimal,
		Notes:    e.Notes,
	}, nil
}

type BudgetLineLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/tasks/7/lines/12"` // The budget line itself
	Task string `json:"task" example:"https://example.com/api/v1/tasks/7"`          // The task the budget line belongs to
}

// BudgetLine is the API representation of a budget line.
type BudgetLine struct {
	models.BudgetLine
	Links BudgetLineLinks `json:"links"`
}

func newBudgetLine(c *gin.Context, model models.BudgetLine) BudgetLine {
	task := fmt.Sprintf("%s/v1/tasks/%d", c.GetString(string(models.DBContextURL)), model.TaskID)

	return BudgetLine{
		BudgetLine: model,
		Links: BudgetLineLinks{
			Self: fmt.Sprintf("%s/lines/%d", task, model.ID),
			Task: task,
		},
	}
}

func newBudgetLines(c *gin.Context, lines []models.BudgetLine) []BudgetLine {
	data := make([]BudgetLine, 0, len(lines))
	for _, line := range lines {
		data = append(data, newBudgetLine(c, line))
	}

	return data
}

type BudgetLineListResponse struct {
	Data []BudgetLine `json:"data"` // Budget lines of the task in insertion order
}

type BudgetLineBatchResponse struct {
	Data []BudgetLine `json:"data"` // The created budget lines
	Task Task         `json:"task"` // The task with its reconciled budget
}

type BudgetLineResponse struct {
	Data BudgetLine `json:"data"` // Data for the budget line
}

// lineUpdate converts the fields that are set in the request body to an update.
// Quantity and unit cost can be changed, but not unset.
func lineUpdate(data BudgetLineEditable, fields []any) (models.BudgetLineUpdate, error) {
	var update models.BudgetLineUpdate

	if slices.Contains(fields, any("Item")) {
		update.Item = &data.Item
	}
	if slices.Contains(fields, any("Detail")) {
		update.Detail = &data.Detail
	}
	if slices.Contains(fields, any("Unit")) {
		update.Unit = &data.Unit
	}
	if slices.Contains(fields, any("Quantity")) {
		if !data.Quantity.Valid {
			return models.BudgetLineUpdate{}, models.ErrQuantityMissing
		}
		update.Quantity = &data.Quantity.Decimal
	}
	if slices.Contains(fields, any("UnitCost")) {
		if !data.UnitCost.Valid {
			return models.BudgetLineUpdate{}, models.ErrUnitCostMissing
		}
		update.UnitCost = &data.UnitCost.Decimal
	}
	if slices.Contains(fields, any("Notes")) {
		update.Notes = &data.Notes
	}

	return update, nil
}
