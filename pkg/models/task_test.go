package models_test

import (
	"strings"
	"testing"

	"github.com/amasdatadriven/backend/internal/types"
	"github.com/amasdatadriven/backend/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestTaskTrimWhitespace() {
	name := "\t Baseline survey  \n"
	category := "  Phase 1 "

	task := suite.createTestTask(models.TaskCreate{
		Name:     name,
		Category: category,
	})

	suite.Assert().Equal(strings.TrimSpace(name), task.Name)
	suite.Assert().Equal(strings.TrimSpace(category), task.Category)
}

func (suite *TestSuiteStandard) TestTaskValidation() {
	tests := []struct {
		name   string
		create models.TaskCreate
		err    error
	}{
		{"Empty name", models.TaskCreate{Name: "   "}, models.ErrTaskNameEmpty},
		{"Progress too high", models.TaskCreate{Name: "T", Progress: 101}, models.ErrProgressOutOfRange},
		{"Negative budget", models.TaskCreate{Name: "T", Budget: decimal.NewFromInt(-1)}, models.ErrBudgetNegative},
		{
			"Deadline before start",
			models.TaskCreate{Name: "T", StartDate: types.NewDate(2025, 3, 1), Deadline: types.NewDate(2025, 2, 1)},
			models.ErrDeadlineBeforeStart,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			task := models.Task{TaskCreate: tt.create}
			err := models.DB.Create(&task).Error
			assert.ErrorIs(t, err, tt.err)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func (suite *TestSuiteStandard) TestTaskDates() {
	task := suite.createTestTask(models.TaskCreate{
		StartDate: types.NewDate(2025, 1, 6),
		Deadline:  types.NewDate(2025, 3, 31),
	})

	reloaded := suite.reloadTask(task.ID)
	suite.Assert().Equal("2025-01-06", reloaded.StartDate.String())
	suite.Assert().Equal("2025-03-31", reloaded.Deadline.String())
}

func (suite *TestSuiteStandard) TestTaskDelete() {
	task := suite.createTestTask(models.TaskCreate{})

	err := models.DeleteTask(models.DB, task.ID)
	suite.Require().Nil(err)

	err = models.DB.First(&models.Task{}, task.ID).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestTaskDeleteNotFound() {
	err := models.DeleteTask(models.DB, 17)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestTaskDeleteInUse() {
	withLines := suite.createTestTask(models.TaskCreate{})
	suite.createTestLines(withLines.ID, line("1", "10"))

	withTransactions := suite.createTestTask(models.TaskCreate{})
	suite.createTestTransaction(models.TransactionCreate{TaskID: withTransactions.ID, Amount: decimal.NewFromInt(5)})

	for _, id := range []uint{withLines.ID, withTransactions.ID} {
		err := models.DeleteTask(models.DB, id)
		suite.Assert().ErrorIs(err, models.ErrTaskInUse)
	}

	// Lines and transactions are untouched
	lines, err := models.ListLines(models.DB, withLines.ID)
	suite.Require().Nil(err)
	suite.Assert().Len(lines, 1)
}

func (suite *TestSuiteStandard) TestCreateLineTable() {
	task := suite.createTestTask(models.TaskCreate{Budget: decimal.NewFromInt(300)})
	suite.Assert().False(task.Itemized)

	task, err := models.CreateLineTable(models.DB, task.ID)
	suite.Require().Nil(err)
	suite.Assert().True(task.Itemized)

	// Idempotent, existing data is untouched
	suite.createTestLines(task.ID, line("2", "5"))
	task, err = models.CreateLineTable(models.DB, task.ID)
	suite.Require().Nil(err)
	suite.Assert().True(task.Itemized)
	suite.assertDecimal("10", task.Budget)

	lines, err := models.ListLines(models.DB, task.ID)
	suite.Require().Nil(err)
	suite.Assert().Len(lines, 1)
}

func (suite *TestSuiteStandard) TestCreateLineTableNotFound() {
	_, err := models.CreateLineTable(models.DB, 42)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestCreateLineTableDBClosed() {
	task := suite.createTestTask(models.TaskCreate{})
	suite.CloseDB()

	_, err := models.CreateLineTable(models.DB, task.ID)
	suite.Assert().ErrorIs(err, models.ErrStorage)
}
