package v1

import (
	"fmt"

	"github.com/amasdatadriven/backend/pkg/httperrors"
	"github.com/amasdatadriven/backend/pkg/models"
	"github.com/gin-gonic/gin"
)

type TaskLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/tasks/7"`                     // The task itself
	Lines        string `json:"lines" example:"https://example.com/api/v1/tasks/7/lines"`              // Budget lines of the task
	Reconcile    string `json:"reconcile" example:"https://example.com/api/v1/tasks/7/reconcile"`      // Recomputes the budget from the budget lines
	Summary      string `json:"summary" example:"https://example.com/api/v1/tasks/7/summary"`          // Budget compared to money spent
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?task=7"` // Transactions recorded for the task
}

// Task is the API representation of a Task.
type Task struct {
	models.Task
	Links TaskLinks `json:"links"`
}

func newTask(c *gin.Context, model models.Task) Task {
	url := fmt.Sprintf("%s/v1/tasks/%d", c.GetString(string(models.DBContextURL)), model.ID)

	return Task{
		Task: model,
		Links: TaskLinks{
			Self:         url,
			Lines:        url + "/lines",
			Reconcile:    url + "/reconcile",
			Summary:      url + "/summary",
			Transactions: fmt.Sprintf("%s/v1/transactions?task=%d", c.GetString(string(models.DBContextURL)), model.ID),
		},
	}
}

type TaskListResponse struct {
	Data       []Task     `json:"data"`       // List of tasks
	Pagination Pagination `json:"pagination"` // Pagination information
}

type TaskResponse struct {
	Data Task `json:"data"` // Data for the task
}

type TaskCreateResponse struct {
	Data []TaskCreatedResponse `json:"data"` // List of created tasks
}

type TaskCreatedResponse struct {
	Error *string `json:"error" example:"invalid input: the task name must not be empty"` // The error, if any occurred for this task
	Data  *Task   `json:"data"`                                                           // The task data, if creation was successful
}

func (r *TaskCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, TaskCreatedResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := httperrors.Status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

// TaskQueryFilter contains the fields that tasks can be filtered with.
type TaskQueryFilter struct {
	Name     string `form:"name"`                       // By name
	Category string `form:"category"`                   // By category, the phase of the task
	Aspect   string `form:"aspect"`                     // By aspect
	Itemized bool   `form:"itemized"`                   // By whether budget lines exist for the task
	Search   string `form:"search" filterField:"false"` // By string in name, detail or outcome
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first task returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of tasks to return. Defaults to 50.
}

func (f TaskQueryFilter) model() models.Task {
	return models.Task{
		TaskCreate: models.TaskCreate{
			Name:     f.Name,
			Category: f.Category,
			Aspect:   f.Aspect,
		},
		Itemized: f.Itemized,
	}
}
