package models

import (
	"fmt"
	"strings"

	"github.com/amasdatadriven/backend/internal/types"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Transaction is an actual expenditure recorded against a task.
//
// Transactions are append-only. They are never edited or deleted once recorded.
type Transaction struct {
	DefaultModel
	TransactionCreate
	Task Task `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

type TransactionCreate struct {
	TaskID      uint            `json:"taskId" gorm:"index;not null" example:"7"`                           // ID of the task the money was spent on
	Date        types.Date      `json:"date" gorm:"index;not null" example:"2025-02-14"`                    // Date of the expenditure
	Description string          `json:"description" example:"Fuel for field visit" default:""`              // What the money was spent on
	Notes       string          `json:"notes" example:"Paid in cash" default:""`                            // Free text notes, e.g. the payment method
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"40" minimum:"0.00000001"` // Amount spent. Must be positive.
	ImportHash  string          `json:"-" gorm:"index"`                                                     // SHA256 hash of the CSV row, only set by imports
}

// Validate checks the amount and the date of the transaction.
func (t TransactionCreate) Validate() error {
	if !t.Amount.IsPositive() {
		return fmt.Errorf("%w, is %s", ErrAmountNotPositive, t.Amount)
	}

	if t.Date.IsZero() {
		return ErrDateMissing
	}

	return nil
}

// BeforeSave trims whitespace from string fields and validates the transaction.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Description = strings.TrimSpace(t.Description)
	t.Notes = strings.TrimSpace(t.Notes)
	t.ImportHash = strings.TrimSpace(t.ImportHash)

	return t.TransactionCreate.Validate()
}

// RecordTransaction validates and stores a transaction.
//
// A transaction for a task that does not exist fails with an error that
// is both a validation and a referential error.
func RecordTransaction(db *gorm.DB, create TransactionCreate) (Transaction, error) {
	err := create.Validate()
	if err != nil {
		return Transaction{}, err
	}

	record := Transaction{TransactionCreate: create}
	err = transaction(db, func(tx *gorm.DB) error {
		_, err := requireTask(tx, create.TaskID)
		if err != nil {
			return err
		}

		return tx.Omit(clause.Associations).Create(&record).Error
	})
	if err != nil {
		return Transaction{}, err
	}

	return record, nil
}

// ImportHashExists reports whether a transaction with the given import
// hash has already been recorded.
func ImportHashExists(db *gorm.DB, hash string) (bool, error) {
	var count int64
	err := db.Model(&Transaction{}).Where("import_hash = ?", hash).Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// TransactionFilter restricts the transactions returned by ListTransactions.
// Zero values do not filter.
type TransactionFilter struct {
	TaskID uint
	Phase  string // Glob pattern matched against the category of the task
	From   types.Date
	Until  types.Date
	Offset int
	Limit  int // Negative or zero returns all transactions
}

// ListTransactions returns the transactions matching the filter ordered
// by date, together with the number of matching transactions before
// offset and limit are applied.
func ListTransactions(db *gorm.DB, filter TransactionFilter) ([]Transaction, int64, error) {
	transactions := make([]Transaction, 0)

	q := db.Model(&Transaction{})
	if filter.TaskID != 0 {
		q = q.Where("transactions.task_id = ?", filter.TaskID)
	}

	if !filter.From.IsZero() {
		q = q.Where("transactions.date >= ?", filter.From)
	}

	if !filter.Until.IsZero() {
		q = q.Where("transactions.date <= ?", filter.Until)
	}

	if filter.Phase != "" {
		phases, err := matchPhases(db, filter.Phase)
		if err != nil {
			return nil, 0, err
		}

		if len(phases) == 0 {
			return transactions, 0, nil
		}

		q = q.Joins("JOIN tasks ON tasks.id = transactions.task_id").Where("tasks.category IN ?", phases)
	}

	q = q.Order("transactions.date ASC, transactions.id ASC").Offset(filter.Offset)
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	err := q.Find(&transactions).Error
	if err != nil {
		return nil, 0, err
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		return nil, 0, err
	}

	return transactions, count, nil
}

// matchPhases returns all phases whose name matches the glob pattern.
func matchPhases(db *gorm.DB, pattern string) ([]string, error) {
	var phases []string
	err := db.Model(&Task{}).Distinct("category").Order("category ASC").Pluck("category", &phases).Error
	if err != nil {
		return nil, err
	}

	matched := make([]string, 0, len(phases))
	for _, phase := range phases {
		if glob.Glob(pattern, phase) {
			matched = append(matched, phase)
		}
	}

	return matched, nil
}
