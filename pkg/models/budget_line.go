package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BudgetLine is one itemized cost entry of a task.
//
// The total cost is always quantity × unit cost and is never taken from input.
type BudgetLine struct {
	DefaultModel
	TaskID uint `json:"taskId" gorm:"index;not null" example:"7"` // ID of the task the line belongs to
	Task   Task `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	BudgetLineCreate
	TotalCost decimal.Decimal `json:"totalCost" gorm:"type:DECIMAL(20,8)" example:"100"` // Quantity × unit cost
}

type BudgetLineCreate struct {
	Item     string          `json:"item" example:"Enumerator fees" default:""`                // Name of the item
	Detail   string          `json:"detail" example:"Two enumerators per district" default:""` // Description of the item
	Unit     string          `json:"unit" example:"day" default:""`                            // Unit the quantity is measured in
	Quantity decimal.Decimal `json:"quantity" gorm:"type:DECIMAL(20,8)" example:"2"`           // Number of units
	UnitCost decimal.Decimal `json:"unitCost" gorm:"type:DECIMAL(20,8)" example:"50"`          // Cost per unit
	Notes    string          `json:"notes" example:"Rate agreed with partner" default:""`      // Free text notes
}

// BudgetLineUpdate contains the fields of a budget line to update. Nil
// fields are left unchanged.
type BudgetLineUpdate struct {
	Item     *string
	Detail   *string
	Unit     *string
	Quantity *decimal.Decimal
	UnitCost *decimal.Decimal
	Notes    *string
}

// Validate checks that quantity and unit cost are not negative.
func (l BudgetLineCreate) Validate() error {
	if l.Quantity.IsNegative() {
		return fmt.Errorf("%w, is %s", ErrQuantityNegative, l.Quantity)
	}

	if l.UnitCost.IsNegative() {
		return fmt.Errorf("%w, is %s", ErrUnitCostNegative, l.UnitCost)
	}

	return nil
}

// BeforeSave trims whitespace, validates the line and derives the total cost.
func (l *BudgetLine) BeforeSave(_ *gorm.DB) error {
	l.Item = strings.TrimSpace(l.Item)
	l.Detail = strings.TrimSpace(l.Detail)
	l.Unit = strings.TrimSpace(l.Unit)
	l.Notes = strings.TrimSpace(l.Notes)

	err := l.BudgetLineCreate.Validate()
	if err != nil {
		return err
	}

	l.TotalCost = l.Quantity.Mul(l.UnitCost)
	return nil
}

func (u BudgetLineUpdate) apply(l *BudgetLine) {
	if u.Item != nil {
		l.Item = *u.Item
	}
	if u.Detail != nil {
		l.Detail = *u.Detail
	}
	if u.Unit != nil {
		l.Unit = *u.Unit
	}
	if u.Quantity != nil {
		l.Quantity = *u.Quantity
	}
	if u.UnitCost != nil {
		l.UnitCost = *u.UnitCost
	}
	if u.Notes != nil {
		l.Notes = *u.Notes
	}
}

// ListLines returns the budget lines of a task ordered by ID. A task
// without lines yields an empty slice.
func ListLines(db *gorm.DB, taskID uint) ([]BudgetLine, error) {
	lines := make([]BudgetLine, 0)
	err := db.Where("task_id = ?", taskID).Order("id ASC").Find(&lines).Error
	if err != nil {
		return nil, err
	}

	return lines, nil
}

// InsertLines adds budget lines to a task and reconciles the task budget.
//
// All lines are validated before anything is written. Either all lines
// are stored and the budget is updated, or nothing changes. An empty
// batch is rejected so that it cannot reset a manually set budget.
func InsertLines(db *gorm.DB, taskID uint, creates []BudgetLineCreate) ([]BudgetLine, error) {
	if len(creates) == 0 {
		return nil, ErrNoLines
	}

	for i, c := range creates {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}

	lines := make([]BudgetLine, 0, len(creates))
	for _, c := range creates {
		lines = append(lines, BudgetLine{TaskID: taskID, BudgetLineCreate: c})
	}

	err := transaction(db, func(tx *gorm.DB) error {
		task, err := requireTask(tx, taskID)
		if err != nil {
			return err
		}

		err = markItemized(tx, &task)
		if err != nil {
			return err
		}

		err = tx.Omit(clause.Associations).Create(&lines).Error
		if err != nil {
			return err
		}

		_, err = reconcile(tx, taskID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return lines, nil
}

// UpdateLine changes a budget line of a task and reconciles the task budget
// in the same transaction.
func UpdateLine(db *gorm.DB, taskID, lineID uint, update BudgetLineUpdate) (BudgetLine, error) {
	var line BudgetLine
	err := transaction(db, func(tx *gorm.DB) error {
		_, err := lockTask(tx, taskID)
		if err != nil {
			return err
		}

		err = tx.Where("task_id = ?", taskID).First(&line, lineID).Error
		if err != nil {
			return err
		}

		update.apply(&line)
		err = tx.Omit(clause.Associations).Save(&line).Error
		if err != nil {
			return err
		}

		_, err = reconcile(tx, taskID)
		return err
	})
	if err != nil {
		return BudgetLine{}, err
	}

	return line, nil
}

// DeleteLine removes a budget line from a task and reconciles the task
// budget in the same transaction.
func DeleteLine(db *gorm.DB, taskID, lineID uint) error {
	return transaction(db, func(tx *gorm.DB) error {
		_, err := lockTask(tx, taskID)
		if err != nil {
			return err
		}

		var line BudgetLine
		err = tx.Where("task_id = ?", taskID).First(&line, lineID).Error
		if err != nil {
			return err
		}

		err = tx.Delete(&line).Error
		if err != nil {
			return err
		}

		_, err = reconcile(tx, taskID)
		return err
	})
}
