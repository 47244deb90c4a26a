package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amasdatadriven/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Task is a unit of planned work. Its budget is the authoritative
// estimate of its cost and is kept in sync with its budget lines.
type Task struct {
	DefaultModel
	TaskCreate
	Itemized bool `json:"itemized" example:"true"` // Whether the task has had its budget line table created
}

type TaskCreate struct {
	Name             string          `json:"name" example:"Baseline survey" default:""`                   // Name of the task
	Category         string          `json:"category" example:"Phase 1" default:""`                       // Phase the task belongs to
	Aspect           string          `json:"aspect" example:"Data collection" default:""`                 // Aspect of the project
	CurrentSituation string          `json:"currentSituation" example:"No baseline data" default:""`      // Situation before the task
	Detail           string          `json:"detail" example:"Household survey in 3 districts" default:""` // Longer description
	Outcome          string          `json:"outcome" example:"Baseline report" default:""`                // Expected outcome
	PersonInvolved   string          `json:"personInvolved" example:"Field team" default:""`              // People working on the task
	StartDate        types.Date      `json:"startDate" example:"2025-01-06"`                              // Planned start
	Deadline         types.Date      `json:"deadline" example:"2025-03-31"`                               // Planned end
	Progress         uint8           `json:"progress" example:"40" default:"0" minimum:"0" maximum:"100"` // Progress in percent
	Budget           decimal.Decimal `json:"budget" gorm:"type:DECIMAL(20,8)" example:"130" default:"0"`  // Budget of the task. Overwritten by reconciliation once itemized.
}

// Validate checks the task attributes that the database cannot enforce.
func (t TaskCreate) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrTaskNameEmpty
	}

	if t.Progress > 100 {
		return fmt.Errorf("%w, is %d", ErrProgressOutOfRange, t.Progress)
	}

	if t.Budget.IsNegative() {
		return fmt.Errorf("%w, is %s", ErrBudgetNegative, t.Budget)
	}

	if !t.StartDate.IsZero() && !t.Deadline.IsZero() && t.Deadline.Before(t.StartDate) {
		return fmt.Errorf("%w, start date %s, deadline %s", ErrDeadlineBeforeStart, t.StartDate, t.Deadline)
	}

	return nil
}

// BeforeSave trims whitespace from string fields and validates the task.
func (t *Task) BeforeSave(_ *gorm.DB) error {
	t.Name = strings.TrimSpace(t.Name)
	t.Category = strings.TrimSpace(t.Category)
	t.Aspect = strings.TrimSpace(t.Aspect)
	t.CurrentSituation = strings.TrimSpace(t.CurrentSituation)
	t.Detail = strings.TrimSpace(t.Detail)
	t.Outcome = strings.TrimSpace(t.Outcome)
	t.PersonInvolved = strings.TrimSpace(t.PersonInvolved)

	return t.TaskCreate.Validate()
}

// lockTask loads a task inside a transaction. On databases that support
// it, the row is locked until the transaction ends so that concurrent
// reconciliations of the same task are serialized. SQLite serializes
// all writers anyway.
func lockTask(tx *gorm.DB, id uint) (Task, error) {
	q := tx
	if tx.Dialector.Name() != DriverSQLite {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var task Task
	err := q.First(&task, id).Error
	if err != nil {
		return Task{}, err
	}

	return task, nil
}

// requireTask loads a task for an operation that references it. A
// missing task is reported as a referential error.
func requireTask(tx *gorm.DB, id uint) (Task, error) {
	task, err := lockTask(tx, id)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return Task{}, fmt.Errorf("%w: %w: there is no task with ID %d", ErrValidation, ErrReferential, id)
		}
		return Task{}, err
	}

	return task, nil
}

// DeleteTask deletes a task. Tasks that still have budget lines or
// transactions cannot be deleted.
func DeleteTask(db *gorm.DB, id uint) error {
	return transaction(db, func(tx *gorm.DB) error {
		task, err := lockTask(tx, id)
		if err != nil {
			return err
		}

		var lines, transactions int64
		err = tx.Model(&BudgetLine{}).Where("task_id = ?", id).Count(&lines).Error
		if err != nil {
			return err
		}

		err = tx.Model(&Transaction{}).Where("task_id = ?", id).Count(&transactions).Error
		if err != nil {
			return err
		}

		if lines > 0 || transactions > 0 {
			return fmt.Errorf("%w: task %d has %d budget lines and %d transactions", ErrTaskInUse, id, lines, transactions)
		}

		return tx.Delete(&task).Error
	})
}

// CreateLineTable marks a task as itemized so that budget lines can be
// attached to it. Calling it for a task that is already itemized is a no-op.
func CreateLineTable(db *gorm.DB, taskID uint) (Task, error) {
	var task Task
	err := transaction(db, func(tx *gorm.DB) error {
		var err error
		task, err = lockTask(tx, taskID)
		if err != nil {
			return err
		}

		return markItemized(tx, &task)
	})

	return task, err
}

func markItemized(tx *gorm.DB, task *Task) error {
	if task.Itemized {
		return nil
	}

	err := tx.Model(task).UpdateColumn("itemized", true).Error
	if err != nil {
		return err
	}
	task.Itemized = true

	return nil
}
