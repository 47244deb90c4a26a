package v1

import (
	"fmt"
	"net/http"

	"github.com/amasdatadriven/backend/pkg/httperrors"
	"github.com/amasdatadriven/backend/pkg/httputil"
	"github.com/amasdatadriven/backend/pkg/importer/parser/budgetlines"
	"github.com/amasdatadriven/backend/pkg/models"
	"github.com/gin-gonic/gin"
)

// RegisterBudgetLineRoutes registers the routes for the budget lines
// of a task with the RouterGroup that is passed.
func RegisterBudgetLineRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBudgetLineList)
		r.GET("", GetBudgetLines)
		r.POST("", CreateBudgetLines)
		r.PUT("", CreateLineTable)
		r.OPTIONS("/import", OptionsImport)
		r.POST("/import", ImportBudgetLines)
	}

	// Budget line with ID
	{
		r.OPTIONS("/:lineId", OptionsBudgetLineDetail)
		r.PATCH("/:lineId", UpdateBudgetLine)
		r.DELETE("/:lineId", DeleteBudgetLine)
	}
}

// lineIDs returns the task ID and the budget line ID from the path.
func lineIDs(c *gin.Context) (uint, uint, error) {
	taskID, err := httputil.IDFromParam(c, "id")
	if err != nil {
		return 0, 0, err
	}

	lineID, err := httputil.IDFromParam(c, "lineId")
	if err != nil {
		return 0, 0, err
	}

	return taskID, lineID, nil
}

// batchResponse loads the task after a batch of budget lines has been created.
func batchResponse(c *gin.Context, taskID uint, lines []models.BudgetLine) (BudgetLineBatchResponse, error) {
	var task models.Task
	err := models.DB.First(&task, taskID).Error
	if err != nil {
		return BudgetLineBatchResponse{}, err
	}

	return BudgetLineBatchResponse{
		Data: newBudgetLines(c, lines),
		Task: newTask(c, task),
	}, nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budget Lines
// @Success		204
// @Param			id	path	uint	true	"ID of the task"
// @Router			/v1/tasks/{id}/lines [options]
func OptionsBudgetLineList(c *gin.Context) {
	httputil.OptionsGetPostPut(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budget Lines
// @Success		204
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		404		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Param			id		path		uint	true	"ID of the task"
// @Param			lineId	path		uint	true	"ID of the budget line"
// @Router			/v1/tasks/{id}/lines/{lineId} [options]
func OptionsBudgetLineDetail(c *gin.Context) {
	taskID, lineID, err := lineIDs(c)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	err = models.DB.Where("task_id = ?", taskID).First(&models.BudgetLine{}, lineID).Error
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	httputil.OptionsPatchDelete(c)
}

// @Summary		Get budget lines
// @Description	Returns all budget lines of a task in the order they were created
// @Tags			Budget Lines
// @Produce		json
// @Success		200	{object}	BudgetLineListResponse
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		uint	true	"ID of the task"
// @Router			/v1/tasks/{id}/lines [get]
func GetBudgetLines(c *gin.Context) {
	task, err := getTask(c)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	lines, err := models.ListLines(models.DB, task.ID)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	c.JSON(http.StatusOK, BudgetLineListResponse{Data: newBudgetLines(c, lines)})
}

// @Summary		Create budget line table
// @Description	Marks the task as itemized so that its budget is computed from budget lines. Calling this for an itemized task does nothing.
// @Tags			Budget Lines
// @Produce		json
// @Success		200	{object}	TaskResponse
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		uint	true	"ID of the task"
// @Router			/v1/tasks/{id}/lines [put]
func CreateLineTable(c *gin.Context) {
	id, err := httputil.IDFromParam(c, "id")
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	task, err := models.CreateLineTable(models.DB, id)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	c.JSON(http.StatusOK, TaskResponse{Data: newTask(c, task)})
}

// @Summary		Create budget lines
// @Description	Creates budget lines for a task and recomputes its budget. Quantity and unit cost are required for every line. Either all lines are created or none. The total cost is always computed from quantity and unit cost.
// @Tags			Budget Lines
// @Accept			json
// @Produce		json
// @Success		201		{object}	BudgetLineBatchResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Param			id		path		uint						true	"ID of the task"
// @Param			lines	body		[]BudgetLineEditable	true	"Budget lines"
// @Router			/v1/tasks/{id}/lines [post]
func CreateBudgetLines(c *gin.Context) {
	id, err := httputil.IDFromParam(c, "id")
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	var editables []BudgetLineEditable
	err = httputil.BindData(c, &editables)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	creates := make([]models.BudgetLineCreate, 0, len(editables))
	for i, editable := range editables {
		var create models.BudgetLineCreate
		create, err = editable.model()
		if err != nil {
			err = fmt.Errorf("line %d: %w", i+1, err)
			c.JSON(httperrors.Status(err), httperrors.New(err))
			return
		}
		creates = append(creates, create)
	}

	lines, err := models.InsertLines(models.DB, id, creates)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	r, err := batchResponse(c, id, lines)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	c.JSON(http.StatusCreated, r)
}

// @Summary		Update budget line
// @Description	Updates a budget line and recomputes the budget of its task. Only values to be updated need to be specified.
// @Tags			Budget Lines
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetLineResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		404		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Param			id		path		uint					true	"ID of the task"
// @Param			lineId	path		uint					true	"ID of the budget line"
// @Param			line	body		BudgetLineEditable		true	"Budget line"
// @Router			/v1/tasks/{id}/lines/{lineId} [patch]
func UpdateBudgetLine(c *gin.Context) {
	taskID, lineID, err := lineIDs(c)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	updateFields, err := httputil.GetBodyFields(c, BudgetLineEditable{})
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	var data BudgetLineEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	update, err := lineUpdate(data, updateFields)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	line, err := models.UpdateLine(models.DB, taskID, lineID, update)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	c.JSON(http.StatusOK, BudgetLineResponse{Data: newBudgetLine(c, line)})
}

// @Summary		Delete budget line
// @Description	Deletes a budget line and recomputes the budget of its task
// @Tags			Budget Lines
// @Success		204
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		404		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Param			id		path		uint	true	"ID of the task"
// @Param			lineId	path		uint	true	"ID of the budget line"
// @Router			/v1/tasks/{id}/lines/{lineId} [delete]
func DeleteBudgetLine(c *gin.Context) {
	taskID, lineID, err := lineIDs(c)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	err = models.DeleteLine(models.DB, taskID, lineID)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Import budget lines
// @Description	Imports budget lines for a task from a CSV file with the columns Item, Detail, Unit, Quantity, Unit Cost, Total Cost and Notes. Any invalid row rejects the whole file.
// @Tags			Budget Lines
// @Accept			multipart/form-data
// @Produce		json
// @Success		201			{object}	BudgetLineBatchResponse
// @Failure		400			{object}	httperrors.HTTPError
// @Failure		500			{object}	httperrors.HTTPError
// @Param			id			path		uint	true	"ID of the task"
// @Param			file		formData	file	true	"File to import"
// @Param			delimiter	query		string	false	"Delimiter of the CSV file. Detected if not set."
// @Router			/v1/tasks/{id}/lines/import [post]
func ImportBudgetLines(c *gin.Context) {
	id, err := httputil.IDFromParam(c, "id")
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	f, delimiter, err := uploadedCSV(c)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}
	defer f.Close()

	creates, err := budgetlines.Parse(f, delimiter)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	lines, err := models.InsertLines(models.DB, id, creates)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	r, err := batchResponse(c, id, lines)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	c.JSON(http.StatusCreated, r)
}
