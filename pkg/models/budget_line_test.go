package models_test

import (
	"github.com/amasdatadriven/backend/pkg/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestInsertLinesTotalCost() {
	task := suite.createTestTask(models.TaskCreate{})

	lines := suite.createTestLines(task.ID,
		models.BudgetLineCreate{
			Item:     "  Enumerator fees ",
			Quantity: decimal.NewFromInt(2),
			UnitCost: decimal.NewFromInt(50),
		},
		line("0.5", "0.3"),
	)

	suite.Require().Len(lines, 2)
	suite.Assert().Equal("Enumerator fees", lines[0].Item)
	suite.assertDecimal("100", lines[0].TotalCost)
	suite.assertDecimal("0.15", lines[1].TotalCost)
	suite.Assert().NotZero(lines[0].ID)

	// Stored values survive a round trip
	stored, err := models.ListLines(models.DB, task.ID)
	suite.Require().Nil(err)
	suite.Require().Len(stored, 2)
	suite.assertDecimal("100", stored[0].TotalCost)
	suite.assertDecimal("0.15", stored[1].TotalCost)

	task = suite.reloadTask(task.ID)
	suite.True(task.Itemized)
	suite.assertDecimal("100.15", task.Budget)
}

func (suite *TestSuiteStandard) TestTotalCostInputIgnored() {
	task := suite.createTestTask(models.TaskCreate{})

	l := models.BudgetLine{
		TaskID:           task.ID,
		BudgetLineCreate: line("3", "7"),
		TotalCost:        decimal.NewFromInt(1000),
	}
	err := models.DB.Omit("Task").Create(&l).Error
	suite.Require().Nil(err)
	suite.assertDecimal("21", l.TotalCost)

	stored, err := models.ListLines(models.DB, task.ID)
	suite.Require().Nil(err)
	suite.Require().Len(stored, 1)
	suite.assertDecimal("21", stored[0].TotalCost)
}

func (suite *TestSuiteStandard) TestInsertLinesAllOrNothing() {
	task := suite.createTestTask(models.TaskCreate{Budget: decimal.NewFromInt(500)})
	suite.createTestLines(task.ID, line("1", "20"))

	_, err := models.InsertLines(models.DB, task.ID, []models.BudgetLineCreate{
		line("1", "30"),
		line("-1", "30"),
		line("1", "40"),
	})
	suite.Assert().ErrorIs(err, models.ErrQuantityNegative)
	suite.Assert().Contains(err.Error(), "line 2")

	lines, err := models.ListLines(models.DB, task.ID)
	suite.Require().Nil(err)
	suite.Assert().Len(lines, 1, "No line of a rejected batch must be stored")
	suite.assertDecimal("20", suite.reloadTask(task.ID).Budget)
}

func (suite *TestSuiteStandard) TestInsertLinesNegativeUnitCost() {
	task := suite.createTestTask(models.TaskCreate{})

	_, err := models.InsertLines(models.DB, task.ID, []models.BudgetLineCreate{line("1", "-0.01")})
	suite.Assert().ErrorIs(err, models.ErrUnitCostNegative)
	suite.Assert().ErrorIs(err, models.ErrValidation)
}

func (suite *TestSuiteStandard) TestInsertLinesEmptyBatch() {
	task := suite.createTestTask(models.TaskCreate{Budget: decimal.NewFromInt(500)})

	for _, creates := range [][]models.BudgetLineCreate{nil, {}} {
		_, err := models.InsertLines(models.DB, task.ID, creates)
		suite.Assert().ErrorIs(err, models.ErrNoLines)
		suite.Assert().ErrorIs(err, models.ErrValidation)
	}

	reloaded := suite.reloadTask(task.ID)
	suite.assertDecimal("500", reloaded.Budget)
	suite.Assert().False(reloaded.Itemized)
}

func (suite *TestSuiteStandard) TestInsertLinesUnknownTask() {
	_, err := models.InsertLines(models.DB, 404, []models.BudgetLineCreate{line("1", "1")})
	suite.Assert().ErrorIs(err, models.ErrReferential)
}

func (suite *TestSuiteStandard) TestInsertLinesDBClosed() {
	task := suite.createTestTask(models.TaskCreate{})
	suite.CloseDB()

	_, err := models.InsertLines(models.DB, task.ID, []models.BudgetLineCreate{line("1", "1")})
	suite.Assert().ErrorIs(err, models.ErrStorage)
}

func (suite *TestSuiteStandard) TestListLinesEmpty() {
	task := suite.createTestTask(models.TaskCreate{})

	lines, err := models.ListLines(models.DB, task.ID)
	suite.Require().Nil(err)
	suite.Assert().NotNil(lines)
	suite.Assert().Len(lines, 0)
}

func (suite *TestSuiteStandard) TestListLinesOrdered() {
	task := suite.createTestTask(models.TaskCreate{})
	other := suite.createTestTask(models.TaskCreate{})

	suite.createTestLines(task.ID, line("1", "1"), line("2", "2"))
	suite.createTestLines(other.ID, line("3", "3"))
	suite.createTestLines(task.ID, line("4", "4"))

	lines, err := models.ListLines(models.DB, task.ID)
	suite.Require().Nil(err)
	suite.Require().Len(lines, 3)

	for i := 1; i < len(lines); i++ {
		suite.Assert().Less(lines[i-1].ID, lines[i].ID)
		suite.Assert().Equal(task.ID, lines[i].TaskID)
	}
}

func (suite *TestSuiteStandard) TestUpdateLine() {
	task := suite.createTestTask(models.TaskCreate{})
	lines := suite.createTestLines(task.ID, line("2", "50"), line("1", "30"))

	quantity := decimal.NewFromInt(3)
	notes := "Third enumerator"
	updated, err := models.UpdateLine(models.DB, task.ID, lines[0].ID, models.BudgetLineUpdate{
		Quantity: &quantity,
		Notes:    &notes,
	})
	suite.Require().Nil(err)

	suite.assertDecimal("150", updated.TotalCost)
	suite.assertDecimal("50", updated.UnitCost)
	suite.Assert().Equal(notes, updated.Notes)
	suite.Assert().Equal("Item", updated.Item, "Fields not set in the update must be unchanged")
	suite.assertDecimal("180", suite.reloadTask(task.ID).Budget)
}

func (suite *TestSuiteStandard) TestUpdateLineInvalid() {
	task := suite.createTestTask(models.TaskCreate{})
	lines := suite.createTestLines(task.ID, line("2", "50"))

	unitCost := decimal.NewFromInt(-5)
	_, err := models.UpdateLine(models.DB, task.ID, lines[0].ID, models.BudgetLineUpdate{UnitCost: &unitCost})
	suite.Assert().ErrorIs(err, models.ErrUnitCostNegative)

	stored, err := models.ListLines(models.DB, task.ID)
	suite.Require().Nil(err)
	suite.assertDecimal("50", stored[0].UnitCost)
	suite.assertDecimal("100", suite.reloadTask(task.ID).Budget)
}

func (suite *TestSuiteStandard) TestUpdateLineOfOtherTask() {
	task := suite.createTestTask(models.TaskCreate{})
	other := suite.createTestTask(models.TaskCreate{})
	lines := suite.createTestLines(other.ID, line("1", "1"))

	_, err := models.UpdateLine(models.DB, task.ID, lines[0].ID, models.BudgetLineUpdate{})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestDeleteLine() {
	task := suite.createTestTask(models.TaskCreate{})
	lines := suite.createTestLines(task.ID, line("2", "50"), line("1", "30"))

	err := models.DeleteLine(models.DB, task.ID, lines[0].ID)
	suite.Require().Nil(err)

	stored, err := models.ListLines(models.DB, task.ID)
	suite.Require().Nil(err)
	suite.Require().Len(stored, 1)
	suite.Assert().Equal(lines[1].ID, stored[0].ID)
	suite.assertDecimal("30", suite.reloadTask(task.ID).Budget)
}

func (suite *TestSuiteStandard) TestDeleteLineNotFound() {
	task := suite.createTestTask(models.TaskCreate{})

	err := models.DeleteLine(models.DB, task.ID, 31)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	err = models.DeleteLine(models.DB, 1000, 31)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}
