package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Reconcile sets the budget of a task to the sum of the total costs of
// its budget lines and returns the updated task.
//
// A task without budget lines gets a budget of zero. Reconciling twice
// without changes in between yields the same result.
func Reconcile(db *gorm.DB, taskID uint) (Task, error) {
	var task Task
	err := transaction(db, func(tx *gorm.DB) error {
		var err error
		task, err = reconcile(tx, taskID)
		return err
	})
	if err != nil {
		return Task{}, err
	}

	return task, nil
}

// ReconcileAll reconciles every itemized task and returns the number of
// reconciled tasks.
func ReconcileAll(db *gorm.DB) (int, error) {
	var ids []uint
	err := db.Model(&Task{}).Where("itemized = ?", true).Order("id ASC").Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}

	for _, id := range ids {
		if _, err := Reconcile(db, id); err != nil {
			return 0, err
		}
	}

	return len(ids), nil
}

// reconcile must be called inside a transaction.
//
// The sum is computed from the individual line totals at full precision.
func reconcile(tx *gorm.DB, taskID uint) (Task, error) {
	task, err := lockTask(tx, taskID)
	if err != nil {
		return Task{}, err
	}

	var totals []decimal.Decimal
	err = tx.Model(&BudgetLine{}).Where("task_id = ?", taskID).Pluck("total_cost", &totals).Error
	if err != nil {
		return Task{}, err
	}

	sum := decimal.Zero
	for _, total := range totals {
		sum = sum.Add(total)
	}

	err = tx.Model(&task).UpdateColumns(map[string]interface{}{
		"budget":     sum,
		"updated_at": tx.NowFunc(),
	}).Error
	if err != nil {
		return Task{}, err
	}
	task.Budget = sum

	return task, nil
}
