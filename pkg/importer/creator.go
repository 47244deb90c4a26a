package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/amasdatadriven/backend/pkg/models"
	"gorm.io/gorm"
)

// taskResolver resolves the task reference of an imported row.
type taskResolver struct {
	ids   map[uint]bool
	names map[string][]uint
}

func newTaskResolver(db *gorm.DB) (taskResolver, error) {
	var tasks []models.Task
	err := db.Select("id", "name").Find(&tasks).Error
	if err != nil {
		return taskResolver{}, err
	}

	r := taskResolver{
		ids:   make(map[uint]bool, len(tasks)),
		names: make(map[string][]uint, len(tasks)),
	}

	for _, task := range tasks {
		r.ids[task.ID] = true
		name := strings.ToLower(task.Name)
		r.names[name] = append(r.names[name], task.ID)
	}

	return r, nil
}

// resolve returns the ID of the task. A reference is tried as an ID first,
// then as a task name, ignoring case.
func (r taskResolver) resolve(ref string) (uint, error) {
	if id, err := strconv.ParseUint(ref, 10, 0); err == nil {
		if r.ids[uint(id)] {
			return uint(id), nil
		}
	}

	ids := r.names[strings.ToLower(ref)]
	switch len(ids) {
	case 0:
		return 0, fmt.Errorf("there is no task with ID or name '%s'", ref)
	case 1:
		return ids[0], nil
	default:
		return 0, fmt.Errorf("the task name '%s' is ambiguous, use the task ID", ref)
	}
}

// CreateTransactions records the parsed transactions.
//
// Rows with problems, unknown tasks and duplicates of already recorded
// transactions are skipped and reported. Identical rows within the file
// are separate purchases and are all recorded. All other rows are
// recorded in one database transaction.
func CreateTransactions(db *gorm.DB, rows []TransactionRow) (Report, error) {
	report := Report{Skipped: make([]Skipped, 0)}

	resolver, err := newTaskResolver(db)
	if err != nil {
		return Report{}, err
	}

	valid := make([]models.TransactionCreate, 0, len(rows))
	for _, row := range rows {
		if row.Problem != "" {
			report.Skip(row.Line, row.Problem)
			continue
		}

		taskID, err := resolver.resolve(row.TaskRef)
		if err != nil {
			report.Skip(row.Line, err.Error())
			continue
		}
		row.Transaction.TaskID = taskID

		exists, err := models.ImportHashExists(db, row.Transaction.ImportHash)
		if err != nil {
			return Report{}, err
		}

		if exists {
			report.Skip(row.Line, "the transaction has already been imported")
			continue
		}

		valid = append(valid, row.Transaction)
	}

	if len(valid) > 0 {
		err = db.Transaction(func(tx *gorm.DB) error {
			for _, create := range valid {
				if _, err := models.RecordTransaction(tx, create); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return Report{}, err
		}
	}

	report.Imported = len(valid)
	return report, nil
}

// CreateTasks creates the parsed tasks. Rows with problems are skipped
// and reported, all other rows are created in one database transaction.
func CreateTasks(db *gorm.DB, rows []TaskRow) (Report, []models.Task, error) {
	report := Report{Skipped: make([]Skipped, 0)}

	tasks := make([]models.Task, 0, len(rows))
	for _, row := range rows {
		if row.Problem != "" {
			report.Skip(row.Line, row.Problem)
			continue
		}

		tasks = append(tasks, models.Task{TaskCreate: row.Task})
	}

	if len(tasks) > 0 {
		err := db.Create(&tasks).Error
		if err != nil {
			return Report{}, nil, err
		}
	}

	report.Imported = len(tasks)
	return report, tasks, nil
}
