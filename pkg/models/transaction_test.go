package models_test

import (
	"github.com/amasdatadriven/backend/internal/types"
	"github.com/amasdatadriven/backend/pkg/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestRecordTransaction() {
	task := suite.createTestTask(models.TaskCreate{})

	transaction, err := models.RecordTransaction(models.DB, models.TransactionCreate{
		TaskID:      task.ID,
		Date:        types.NewDate(2025, 2, 14),
		Description: " Fuel for field visit ",
		Amount:      decimal.RequireFromString("40.25"),
	})
	suite.Require().Nil(err)
	suite.Assert().NotZero(transaction.ID)
	suite.Assert().Equal("Fuel for field visit", transaction.Description)

	var stored models.Transaction
	err = models.DB.First(&stored, transaction.ID).Error
	suite.Require().Nil(err)
	suite.Assert().Equal("2025-02-14", stored.Date.String())
	suite.assertDecimal("40.25", stored.Amount)
}

func (suite *TestSuiteStandard) TestRecordTransactionInvalid() {
	task := suite.createTestTask(models.TaskCreate{})

	tests := []struct {
		name   string
		create models.TransactionCreate
		err    error
	}{
		{"Zero amount", models.TransactionCreate{TaskID: task.ID, Date: types.NewDate(2025, 1, 1)}, models.ErrAmountNotPositive},
		{"Negative amount", models.TransactionCreate{TaskID: task.ID, Date: types.NewDate(2025, 1, 1), Amount: decimal.NewFromInt(-3)}, models.ErrAmountNotPositive},
		{"No date", models.TransactionCreate{TaskID: task.ID, Amount: decimal.NewFromInt(3)}, models.ErrDateMissing},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := models.RecordTransaction(models.DB, tt.create)
			suite.Assert().ErrorIs(err, tt.err)
			suite.Assert().ErrorIs(err, models.ErrValidation)
		})
	}

	var count int64
	suite.Require().Nil(models.DB.Model(&models.Transaction{}).Count(&count).Error)
	suite.Assert().Zero(count)
}

func (suite *TestSuiteStandard) TestRecordTransactionUnknownTask() {
	_, err := models.RecordTransaction(models.DB, models.TransactionCreate{
		TaskID: 12,
		Date:   types.NewDate(2025, 1, 1),
		Amount: decimal.NewFromInt(10),
	})

	suite.Assert().ErrorIs(err, models.ErrValidation)
	suite.Assert().ErrorIs(err, models.ErrReferential)
}

func (suite *TestSuiteStandard) TestRecordTransactionDBClosed() {
	suite.CloseDB()

	_, err := models.RecordTransaction(models.DB, models.TransactionCreate{
		TaskID: 1,
		Date:   types.NewDate(2025, 1, 1),
		Amount: decimal.NewFromInt(10),
	})
	suite.Assert().ErrorIs(err, models.ErrStorage)
}

func (suite *TestSuiteStandard) TestImportHashExists() {
	task := suite.createTestTask(models.TaskCreate{})
	suite.createTestTransaction(models.TransactionCreate{TaskID: task.ID, Amount: decimal.NewFromInt(1), ImportHash: "abc"})

	exists, err := models.ImportHashExists(models.DB, "abc")
	suite.Require().Nil(err)
	suite.Assert().True(exists)

	exists, err = models.ImportHashExists(models.DB, "def")
	suite.Require().Nil(err)
	suite.Assert().False(exists)
}

func (suite *TestSuiteStandard) TestListTransactionsFilter() {
	survey := suite.createTestTask(models.TaskCreate{Category: "Phase 1: Preparation"})
	training := suite.createTestTask(models.TaskCreate{Category: "Phase 1: Preparation"})
	report := suite.createTestTask(models.TaskCreate{Category: "Phase 2: Reporting"})

	suite.createTestTransaction(models.TransactionCreate{TaskID: survey.ID, Date: types.NewDate(2025, 1, 10), Amount: decimal.NewFromInt(1)})
	suite.createTestTransaction(models.TransactionCreate{TaskID: training.ID, Date: types.NewDate(2025, 1, 31), Amount: decimal.NewFromInt(2)})
	suite.createTestTransaction(models.TransactionCreate{TaskID: report.ID, Date: types.NewDate(2025, 2, 1), Amount: decimal.NewFromInt(3)})
	suite.createTestTransaction(models.TransactionCreate{TaskID: survey.ID, Date: types.NewDate(2025, 3, 5), Amount: decimal.NewFromInt(4)})

	tests := []struct {
		name    string
		filter  models.TransactionFilter
		amounts []int64
	}{
		{"No filter", models.TransactionFilter{}, []int64{1, 2, 3, 4}},
		{"Task", models.TransactionFilter{TaskID: survey.ID}, []int64{1, 4}},
		{"Date range is inclusive", models.TransactionFilter{From: types.NewDate(2025, 1, 31), Until: types.NewDate(2025, 2, 1)}, []int64{2, 3}},
		{"Until only", models.TransactionFilter{Until: types.NewDate(2025, 1, 31)}, []int64{1, 2}},
		{"Phase exact", models.TransactionFilter{Phase: "Phase 2: Reporting"}, []int64{3}},
		{"Phase glob", models.TransactionFilter{Phase: "Phase 1*"}, []int64{1, 2, 4}},
		{"Phase and date", models.TransactionFilter{Phase: "Phase 1*", From: types.NewDate(2025, 2, 1)}, []int64{4}},
		{"Unknown phase", models.TransactionFilter{Phase: "Phase 3*"}, []int64{}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			transactions, count, err := models.ListTransactions(models.DB, tt.filter)
			suite.Require().Nil(err)
			suite.Assert().Equal(int64(len(tt.amounts)), count)
			suite.Require().Len(transactions, len(tt.amounts))

			for i, amount := range tt.amounts {
				suite.Assert().True(decimal.NewFromInt(amount).Equal(transactions[i].Amount), "transaction %d has amount %s, expected %d", i, transactions[i].Amount, amount)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestListTransactionsPagination() {
	task := suite.createTestTask(models.TaskCreate{})
	for i := 1; i <= 5; i++ {
		suite.createTestTransaction(models.TransactionCreate{TaskID: task.ID, Date: types.NewDate(2025, 4, i), Amount: decimal.NewFromInt(int64(i))})
	}

	transactions, count, err := models.ListTransactions(models.DB, models.TransactionFilter{Offset: 1, Limit: 2})
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(5), count)
	suite.Require().Len(transactions, 2)
	suite.assertDecimal("2", transactions[0].Amount)
	suite.assertDecimal("3", transactions[1].Amount)
}
