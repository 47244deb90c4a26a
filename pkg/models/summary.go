package models

import (
	"github.com/amasdatadriven/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TotalPhase is the name of the synthetic row that PhaseSummary appends.
const TotalPhase = "Total"

// SpendSummary compares the budget of a task with the money spent on it.
type SpendSummary struct {
	TaskID    uint            `json:"taskId" example:"7"`     // ID of the task
	Budget    decimal.Decimal `json:"budget" example:"90"`    // Budget of the task
	Spent     decimal.Decimal `json:"spent" example:"40"`     // Sum of all transaction amounts
	Remaining decimal.Decimal `json:"remaining" example:"50"` // Budget minus spent. Negative when over budget.
}

// PhaseRow aggregates budget and spending over all tasks of a phase.
type PhaseRow struct {
	Phase     string          `json:"phase" example:"Phase 1"`        // Name of the phase, the category of its tasks
	Tasks     int64           `json:"tasks" example:"4"`              // Number of tasks in the phase
	StartDate types.Date      `json:"startDate" example:"2025-01-06"` // Earliest start date of the tasks
	EndDate   types.Date      `json:"endDate" example:"2025-06-30"`   // Latest deadline of the tasks
	Budget    decimal.Decimal `json:"budget" example:"1200"`          // Sum of the task budgets
	Spent     decimal.Decimal `json:"spent" example:"450.5"`          // Sum of the transaction amounts
	Remaining decimal.Decimal `json:"remaining" example:"749.5"`      // Budget minus spent
	Total     bool            `json:"total" example:"false"`          // Whether this is the synthetic row over all phases
}

// Totals are the overall sums of all task budgets and transactions.
type Totals struct {
	Budget    decimal.Decimal `json:"budget" example:"5400"`
	Spent     decimal.Decimal `json:"spent" example:"1234.56"`
	Remaining decimal.Decimal `json:"remaining" example:"4165.44"`
}

// Spent returns the sum of all transaction amounts for the task.
func (t Task) Spent(db *gorm.DB) (decimal.Decimal, error) {
	var spent decimal.NullDecimal

	err := db.
		Select("SUM(amount)").
		Where("task_id = ?", t.ID).
		Table("transactions").
		Find(&spent).
		Error
	if err != nil {
		return decimal.Zero, err
	}

	return nullSum(spent), nil
}

// GetSpendSummary returns budget, spent and remaining for a task. The
// values are always computed from the current state of the database.
func GetSpendSummary(db *gorm.DB, taskID uint) (SpendSummary, error) {
	var summary SpendSummary
	err := transaction(db, func(tx *gorm.DB) error {
		var task Task
		err := tx.First(&task, taskID).Error
		if err != nil {
			return err
		}

		spent, err := task.Spent(tx)
		if err != nil {
			return err
		}

		summary = SpendSummary{
			TaskID:    task.ID,
			Budget:    task.Budget,
			Spent:     spent,
			Remaining: task.Budget.Sub(spent),
		}
		return nil
	})
	if err != nil {
		return SpendSummary{}, err
	}

	return summary, nil
}

// PhaseSummary groups all tasks by phase and returns one row per phase,
// ordered by name, followed by a row with the totals over all phases.
//
// Phases without transactions have spent zero.
func PhaseSummary(db *gorm.DB) ([]PhaseRow, error) {
	var budgets []struct {
		Phase     string
		Tasks     int64
		Budget    decimal.NullDecimal
		StartDate types.Date
		EndDate   types.Date
	}

	var spending []struct {
		Phase string
		Spent decimal.NullDecimal
	}

	err := transaction(db, func(tx *gorm.DB) error {
		err := tx.
			Model(&Task{}).
			Select("category AS phase, COUNT(*) AS tasks, SUM(budget) AS budget, MIN(start_date) AS start_date, MAX(deadline) AS end_date").
			Group("category").
			Order("category ASC").
			Scan(&budgets).Error
		if err != nil {
			return err
		}

		return tx.
			Model(&Transaction{}).
			Select("tasks.category AS phase, SUM(transactions.amount) AS spent").
			Joins("JOIN tasks ON tasks.id = transactions.task_id").
			Group("tasks.category").
			Scan(&spending).Error
	})
	if err != nil {
		return nil, err
	}

	spent := make(map[string]decimal.Decimal, len(spending))
	for _, s := range spending {
		spent[s.Phase] = nullSum(s.Spent)
	}

	total := PhaseRow{
		Phase:  TotalPhase,
		Budget: decimal.Zero,
		Spent:  decimal.Zero,
		Total:  true,
	}

	rows := make([]PhaseRow, 0, len(budgets)+1)
	for _, b := range budgets {
		row := PhaseRow{
			Phase:     b.Phase,
			Tasks:     b.Tasks,
			StartDate: b.StartDate,
			EndDate:   b.EndDate,
			Budget:    nullSum(b.Budget),
			Spent:     decimal.Zero,
		}

		if s, ok := spent[b.Phase]; ok {
			row.Spent = s
		}
		row.Remaining = row.Budget.Sub(row.Spent)
		rows = append(rows, row)

		total.Tasks += row.Tasks
		total.Budget = total.Budget.Add(row.Budget)
		total.Spent = total.Spent.Add(row.Spent)

		if !row.StartDate.IsZero() && (total.StartDate.IsZero() || row.StartDate.Before(total.StartDate)) {
			total.StartDate = row.StartDate
		}

		if row.EndDate.After(total.EndDate) {
			total.EndDate = row.EndDate
		}
	}

	total.Remaining = total.Budget.Sub(total.Spent)
	rows = append(rows, total)

	return rows, nil
}

// PhaseTotals computes the overall budget and spending directly from
// tasks and transactions, independent of any grouping.
func PhaseTotals(db *gorm.DB) (Totals, error) {
	var budget, spent decimal.NullDecimal

	err := transaction(db, func(tx *gorm.DB) error {
		err := tx.Select("SUM(budget)").Table("tasks").Find(&budget).Error
		if err != nil {
			return err
		}

		return tx.Select("SUM(amount)").Table("transactions").Find(&spent).Error
	})
	if err != nil {
		return Totals{}, err
	}

	totals := Totals{
		Budget: nullSum(budget),
		Spent:  nullSum(spent),
	}
	totals.Remaining = totals.Budget.Sub(totals.Spent)

	return totals, nil
}
