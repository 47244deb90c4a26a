package v1

import (
	"fmt"
	"net/http"

	"github.com/amasdatadriven/backend/pkg/httperrors"
	"github.com/amasdatadriven/backend/pkg/httputil"
	"github.com/amasdatadriven/backend/pkg/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterTaskRoutes registers the routes for tasks and their
// budget lines with the RouterGroup that is passed.
func RegisterTaskRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTaskList)
		r.GET("", GetTasks)
		r.POST("", CreateTasks)
		r.OPTIONS("/import", OptionsImport)
		r.POST("/import", ImportTasks)
	}

	// Task with ID
	{
		r.OPTIONS("/:id", OptionsTaskDetail)
		r.GET("/:id", GetTask)
		r.PATCH("/:id", UpdateTask)
		r.DELETE("/:id", DeleteTask)
		r.OPTIONS("/:id/reconcile", OptionsTaskReconcile)
		r.POST("/:id/reconcile", ReconcileTask)
		r.OPTIONS("/:id/summary", OptionsTaskSummary)
		r.GET("/:id/summary", GetTaskSummary)
	}

	RegisterBudgetLineRoutes(r.Group("/:id/lines"))
}

// getTask returns the task with the ID from the path.
func getTask(c *gin.Context) (models.Task, error) {
	id, err := httputil.IDFromParam(c, "id")
	if err != nil {
		return models.Task{}, err
	}

	var task models.Task
	err = models.DB.First(&task, id).Error
	if err != nil {
		return models.Task{}, err
	}

	return task, nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Tasks
// @Success		204
// @Router			/v1/tasks [options]
func OptionsTaskList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Tasks
// @Success		204
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		uint	true	"ID of the task"
// @Router			/v1/tasks/{id} [options]
func OptionsTaskDetail(c *gin.Context) {
	_, err := getTask(c)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Tasks
// @Success		204
// @Param			id	path	uint	true	"ID of the task"
// @Router			/v1/tasks/{id}/summary [options]
func OptionsTaskSummary(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Tasks
// @Success		204
// @Param			id	path	uint	true	"ID of the task"
// @Router			/v1/tasks/{id}/reconcile [options]
func OptionsTaskReconcile(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Create tasks
// @Description	Creates tasks from the list of submitted task data. The response code is the highest response code number that a single task creation would have caused. If it is not equal to 201, at least one task has an error.
// @Tags			Tasks
// @Accept			json
// @Produce		json
// @Success		201		{object}	TaskCreateResponse
// @Failure		400		{object}	TaskCreateResponse
// @Failure		500		{object}	TaskCreateResponse
// @Param			tasks	body		[]models.TaskCreate	true	"Tasks"
// @Router			/v1/tasks [post]
func CreateTasks(c *gin.Context) {
	var creates []models.TaskCreate

	err := httputil.BindData(c, &creates)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := TaskCreateResponse{Data: make([]TaskCreatedResponse, 0, len(creates))}

	for _, create := range creates {
		task := models.Task{TaskCreate: create}

		err := models.DB.Create(&task).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newTask(c, task)
		r.Data = append(r.Data, TaskCreatedResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get tasks
// @Description	Returns a list of tasks ordered by category and name
// @Tags			Tasks
// @Produce		json
// @Success		200			{object}	TaskListResponse
// @Failure		400			{object}	httperrors.HTTPError
// @Failure		500			{object}	httperrors.HTTPError
// @Param			name		query		string	false	"Filter by name"
// @Param			category	query		string	false	"Filter by category"
// @Param			aspect		query		string	false	"Filter by aspect"
// @Param			itemized	query		bool	false	"Filter by whether the task has budget lines"
// @Param			search		query		string	false	"Search for this text in name, detail and outcome"
// @Param			offset		query		uint	false	"The offset of the first task returned. Defaults to 0."
// @Param			limit		query		int		false	"Maximum number of tasks to return. Defaults to 50."
// @Router			/v1/tasks [get]
func GetTasks(c *gin.Context) {
	var filter TaskQueryFilter
	if err := c.ShouldBind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httperrors.New(httperrors.ErrInvalidQueryString))
		return
	}

	// Get the parameters set in the query string
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("category ASC, name ASC, id ASC").
		Where(filter.model(), queryFields...)

	if filter.Search != "" {
		search := fmt.Sprintf("%%%s%%", filter.Search)
		q = q.Where("name LIKE ? OR detail LIKE ? OR outcome LIKE ?", search, search, search)
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	limit := defaultLimit
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var tasks []models.Task
	err := q.Find(&tasks).Error
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	data := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		data = append(data, newTask(c, task))
	}

	c.JSON(http.StatusOK, TaskListResponse{
		Data: data,
		Pagination: Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get task
// @Description	Returns a specific task
// @Tags			Tasks
// @Produce		json
// @Success		200	{object}	TaskResponse
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		uint	true	"ID of the task"
// @Router			/v1/tasks/{id} [get]
func GetTask(c *gin.Context) {
	task, err := getTask(c)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	c.JSON(http.StatusOK, TaskResponse{Data: newTask(c, task)})
}

// @Summary		Update task
// @Description	Updates a task. Only values to be updated need to be specified. Setting the budget of an itemized task overrides it until the next change of its budget lines.
// @Tags			Tasks
// @Accept			json
// @Produce		json
// @Success		200		{object}	TaskResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		404		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Param			id		path		uint				true	"ID of the task"
// @Param			task	body		models.TaskCreate	true	"Task"
// @Router			/v1/tasks/{id} [patch]
func UpdateTask(c *gin.Context) {
	task, err := getTask(c)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	updateFields, err := httputil.GetBodyFields(c, models.TaskCreate{})
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	// Fields not in the body keep their current values
	data := task.TaskCreate
	err = httputil.BindData(c, &data)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}
	task.TaskCreate = data

	err = models.DB.Select("", append(updateFields, "UpdatedAt")...).Save(&task).Error
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	c.JSON(http.StatusOK, TaskResponse{Data: newTask(c, task)})
}

// @Summary		Delete task
// @Description	Deletes a task. Tasks with budget lines or transactions cannot be deleted.
// @Tags			Tasks
// @Success		204
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		409	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		uint	true	"ID of the task"
// @Router			/v1/tasks/{id} [delete]
func DeleteTask(c *gin.Context) {
	id, err := httputil.IDFromParam(c, "id")
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	err = models.DeleteTask(models.DB, id)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Reconcile task
// @Description	Recomputes the budget of the task as the sum of the total costs of its budget lines
// @Tags			Tasks
// @Produce		json
// @Success		200	{object}	TaskResponse
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		uint	true	"ID of the task"
// @Router			/v1/tasks/{id}/reconcile [post]
func ReconcileTask(c *gin.Context) {
	id, err := httputil.IDFromParam(c, "id")
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	task, err := models.Reconcile(models.DB, id)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	c.JSON(http.StatusOK, TaskResponse{Data: newTask(c, task)})
}

type SpendSummaryResponse struct {
	Data models.SpendSummary `json:"data"` // Budget and spending of the task
}

// @Summary		Get spend summary
// @Description	Returns the budget of the task, the sum of its transactions and the remaining budget
// @Tags			Tasks
// @Produce		json
// @Success		200	{object}	SpendSummaryResponse
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		uint	true	"ID of the task"
// @Router			/v1/tasks/{id}/summary [get]
func GetTaskSummary(c *gin.Context) {
	id, err := httputil.IDFromParam(c, "id")
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	summary, err := models.GetSpendSummary(models.DB, id)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	c.JSON(http.StatusOK, SpendSummaryResponse{Data: summary})
}
