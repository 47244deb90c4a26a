package v1

import (
	"mime/multipart"
	"net/http"

	"github.com/amasdatadriven/backend/pkg/httperrors"
	"github.com/amasdatadriven/backend/pkg/httputil"
	"github.com/amasdatadriven/backend/pkg/importer"
	"github.com/amasdatadriven/backend/pkg/importer/parser/tasks"
	"github.com/amasdatadriven/backend/pkg/importer/parser/transactions"
	"github.com/amasdatadriven/backend/pkg/models"
	"github.com/gin-gonic/gin"
)

type ImportResponse struct {
	Data importer.Report `json:"data"` // Number of imported rows and the rows that were skipped
}

// uploadedCSV returns the uploaded file and the delimiter from the query
// string. A delimiter of 0 means that it is detected from the file.
func uploadedCSV(c *gin.Context) (multipart.File, rune, error) {
	var query ImportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		return nil, 0, httperrors.ErrInvalidQueryString
	}

	delimiter, err := importer.ParseDelimiter(query.Delimiter)
	if err != nil {
		return nil, 0, err
	}

	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, 0, httperrors.ErrNoFilePost
	}

	if err != nil {
		return nil, 0, err
	}

	f, err := formFile.Open()
	if err != nil {
		return nil, 0, err
	}

	return f, delimiter, nil
}

// importStatus is 201 if at least one row was imported.
func importStatus(report importer.Report) int {
	if report.Imported > 0 {
		return http.StatusCreated
	}

	return http.StatusOK
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Import
// @Success		204
// @Router			/v1/tasks/import [options]
// @Router			/v1/transactions/import [options]
func OptionsImport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Import tasks
// @Description	Imports tasks from a CSV file. Only the Name column is required. Rows that cannot be imported are skipped and reported with their line number.
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		200			{object}	ImportResponse
// @Success		201			{object}	ImportResponse
// @Failure		400			{object}	httperrors.HTTPError
// @Failure		500			{object}	httperrors.HTTPError
// @Param			file		formData	file	true	"File to import"
// @Param			delimiter	query		string	false	"Delimiter of the CSV file. Detected if not set."
// @Router			/v1/tasks/import [post]
func ImportTasks(c *gin.Context) {
	f, delimiter, err := uploadedCSV(c)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}
	defer f.Close()

	rows, err := tasks.Parse(f, delimiter)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	report, _, err := importer.CreateTasks(models.DB, rows)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	c.JSON(importStatus(report), ImportResponse{Data: report})
}

// @Summary		Import transactions
// @Description	Imports transactions from a CSV file. The task is referenced by ID or name. Rows with an unknown task, a missing date, a non-positive amount or that have already been imported are skipped and reported with their line number.
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		200			{object}	ImportResponse
// @Success		201			{object}	ImportResponse
// @Failure		400			{object}	httperrors.HTTPError
// @Failure		500			{object}	httperrors.HTTPError
// @Param			file		formData	file	true	"File to import"
// @Param			delimiter	query		string	false	"Delimiter of the CSV file. Detected if not set."
// @Router			/v1/transactions/import [post]
func ImportTransactions(c *gin.Context) {
	f, delimiter, err := uploadedCSV(c)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}
	defer f.Close()

	rows, err := transactions.Parse(f, delimiter)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	report, err := importer.CreateTransactions(models.DB, rows)
	if err != nil {
		c.JSON(httperrors.Status(err), httperrors.New(err))
		return
	}

	c.JSON(importStatus(report), ImportResponse{Data: report})
}
