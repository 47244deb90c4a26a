package models_test

import (
	"github.com/amasdatadriven/backend/internal/types"
	"github.com/amasdatadriven/backend/pkg/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestSpendSummaryOverBudget() {
	task := suite.createTestTask(models.TaskCreate{Budget: decimal.NewFromInt(50)})
	suite.createTestTransaction(models.TransactionCreate{TaskID: task.ID, Amount: decimal.NewFromInt(30)})
	suite.createTestTransaction(models.TransactionCreate{TaskID: task.ID, Amount: decimal.RequireFromString("30.5")})

	summary, err := models.GetSpendSummary(models.DB, task.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal(task.ID, summary.TaskID)
	suite.assertDecimal("50", summary.Budget)
	suite.assertDecimal("60.5", summary.Spent)
	suite.assertDecimal("-10.5", summary.Remaining)
}

func (suite *TestSuiteStandard) TestSpendSummaryNoTransactions() {
	task := suite.createTestTask(models.TaskCreate{Budget: decimal.NewFromInt(80)})

	summary, err := models.GetSpendSummary(models.DB, task.ID)
	suite.Require().Nil(err)
	suite.assertDecimal("0", summary.Spent)
	suite.assertDecimal("80", summary.Remaining)
}

func (suite *TestSuiteStandard) TestSpendSummaryIsLive() {
	task := suite.createTestTask(models.TaskCreate{})
	suite.createTestLines(task.ID, line("1", "100"))
	suite.createTestTransaction(models.TransactionCreate{TaskID: task.ID, Amount: decimal.NewFromInt(25)})

	summary, err := models.GetSpendSummary(models.DB, task.ID)
	suite.Require().Nil(err)
	suite.assertDecimal("75", summary.Remaining)

	suite.createTestLines(task.ID, line("1", "50"))
	suite.createTestTransaction(models.TransactionCreate{TaskID: task.ID, Amount: decimal.NewFromInt(5)})

	summary, err = models.GetSpendSummary(models.DB, task.ID)
	suite.Require().Nil(err)
	suite.assertDecimal("150", summary.Budget)
	suite.assertDecimal("30", summary.Spent)
	suite.assertDecimal("120", summary.Remaining)
}

func (suite *TestSuiteStandard) TestSpendSummaryPrecision() {
	task := suite.createTestTask(models.TaskCreate{Budget: decimal.NewFromInt(1)})
	suite.createTestTransaction(models.TransactionCreate{TaskID: task.ID, Amount: decimal.RequireFromString("0.1")})
	suite.createTestTransaction(models.TransactionCreate{TaskID: task.ID, Amount: decimal.RequireFromString("0.2")})

	summary, err := models.GetSpendSummary(models.DB, task.ID)
	suite.Require().Nil(err)
	suite.assertDecimal("0.3", summary.Spent)
	suite.assertDecimal("0.7", summary.Remaining)
}

func (suite *TestSuiteStandard) TestSpendSummaryNotFound() {
	_, err := models.GetSpendSummary(models.DB, 9)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestPhaseSummary() {
	suite.createTestTask(models.TaskCreate{
		Category:  "Phase 2",
		Budget:    decimal.NewFromInt(100),
		StartDate: types.NewDate(2025, 4, 1),
		Deadline:  types.NewDate(2025, 5, 31),
	})
	b := suite.createTestTask(models.TaskCreate{
		Category:  "Phase 1",
		Budget:    decimal.NewFromInt(200),
		StartDate: types.NewDate(2025, 1, 6),
		Deadline:  types.NewDate(2025, 2, 28),
	})
	suite.createTestTask(models.TaskCreate{
		Category:  "Phase 1",
		Budget:    decimal.NewFromInt(50),
		StartDate: types.NewDate(2025, 2, 1),
		Deadline:  types.NewDate(2025, 3, 31),
	})

	suite.createTestTransaction(models.TransactionCreate{TaskID: b.ID, Amount: decimal.NewFromInt(80)})
	suite.createTestTransaction(models.TransactionCreate{TaskID: b.ID, Amount: decimal.RequireFromString("19.99")})

	rows, err := models.PhaseSummary(models.DB)
	suite.Require().Nil(err)
	suite.Require().Len(rows, 3)

	phase1, phase2, total := rows[0], rows[1], rows[2]

	suite.Assert().Equal("Phase 1", phase1.Phase)
	suite.Assert().Equal(int64(2), phase1.Tasks)
	suite.assertDecimal("250", phase1.Budget)
	suite.assertDecimal("99.99", phase1.Spent)
	suite.assertDecimal("150.01", phase1.Remaining)
	suite.Assert().Equal("2025-01-06", phase1.StartDate.String())
	suite.Assert().Equal("2025-03-31", phase1.EndDate.String())
	suite.Assert().False(phase1.Total)

	suite.Assert().Equal("Phase 2", phase2.Phase)
	suite.assertDecimal("0", phase2.Spent, "Phases without transactions have spent zero")
	suite.assertDecimal("100", phase2.Remaining)

	suite.Assert().Equal(models.TotalPhase, total.Phase)
	suite.Assert().True(total.Total)
	suite.Assert().Equal(int64(3), total.Tasks)
	suite.assertDecimal("350", total.Budget)
	suite.assertDecimal("99.99", total.Spent)
	suite.assertDecimal("250.01", total.Remaining)
	suite.Assert().Equal("2025-01-06", total.StartDate.String())
	suite.Assert().Equal("2025-05-31", total.EndDate.String())
}

// TestPhaseSummaryMatchesTotals verifies that the synthetic total row equals
// the totals computed without grouping.
func (suite *TestSuiteStandard) TestPhaseSummaryMatchesTotals() {
	phases := []string{"Preparation", "Fieldwork", "Reporting", ""}
	for i := 0; i < 8; i++ {
		task := suite.createTestTask(models.TaskCreate{Category: phases[i%len(phases)]})
		suite.createTestLines(task.ID, line("1.5", decimal.NewFromInt(int64(10*(i+1))).String()))

		if i%3 != 0 {
			suite.createTestTransaction(models.TransactionCreate{TaskID: task.ID, Amount: decimal.New(int64(733*(i+1)), -2)})
		}
	}

	rows, err := models.PhaseSummary(models.DB)
	suite.Require().Nil(err)
	suite.Require().Len(rows, len(phases)+1)

	totals, err := models.PhaseTotals(models.DB)
	suite.Require().Nil(err)

	total := rows[len(rows)-1]
	suite.Assert().True(totals.Budget.Equal(total.Budget), "budget: totals %s, summary %s", totals.Budget, total.Budget)
	suite.Assert().True(totals.Spent.Equal(total.Spent), "spent: totals %s, summary %s", totals.Spent, total.Spent)
	suite.Assert().True(totals.Remaining.Equal(total.Remaining), "remaining: totals %s, summary %s", totals.Remaining, total.Remaining)
}

func (suite *TestSuiteStandard) TestPhaseSummaryEmpty() {
	rows, err := models.PhaseSummary(models.DB)
	suite.Require().Nil(err)
	suite.Require().Len(rows, 1)
	suite.Assert().True(rows[0].Total)
	suite.assertDecimal("0", rows[0].Budget)
	suite.assertDecimal("0", rows[0].Remaining)
	suite.Assert().True(rows[0].StartDate.IsZero())
}

func (suite *TestSuiteStandard) TestPhaseSummaryDBClosed() {
	suite.CloseDB()

	_, err := models.PhaseSummary(models.DB)
	suite.Assert().ErrorIs(err, models.ErrStorage)

	_, err = models.PhaseTotals(models.DB)
	suite.Assert().ErrorIs(err, models.ErrStorage)
}
