package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rowcast-simple/dto"
	"github.com/rowcast-simple/services"
	"github.com/rowcast-simple/utils"
)

var dataRowService = services.NewDataRowService()

// validateDataRowFields runs every (fieldId, value) entry of the request
// through the field validator and aggregates all failures, indexed by the
// entry's position, into one list of messages. An empty result means the
// request may proceed to the composer.
func validateDataRowFields(req dto.DataRowRequest) []string {
	var validationErrors []string
	for index, entry := range req.Fields {
		if err := fieldService.Validate(entry.FieldID, entry.Value); err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("fields.%d.value %s", index, err.Error()))
		}
	}
	return validationErrors
}

// ListDataRows godoc
// @Summary List the data rows of a project
// @Tags data-rows
// @Produce json
// @Param projectId path string true "Project ID"
// @Success 200 {array} models.DataRow
// @Router /projects/{projectId}/data-rows [get]
func ListDataRows(c *gin.Context) {
	ownerID, ok := currentOwner(c)
	if !ok {
		return
	}

	rows, err := dataRowService.FindAll(c.Param("projectId"), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve data rows: " + err.Error(),
		})
		return
	}
	if rows == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Project not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   rows,
	})
}

// GetDataRow godoc
// @Summary Get a data row with its field values
// @Tags data-rows
// @Produce json
// @Param projectId path string true "Project ID"
// @Param id path string true "Data row ID"
// @Success 200 {object} models.DataRow
// @Router /projects/{projectId}/data-rows/{id} [get]
func GetDataRow(c *gin.Context) {
	ownerID, ok := currentOwner(c)
	if !ok {
		return
	}

	row, err := dataRowService.FindOne(c.Param("projectId"), ownerID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve data row: " + err.Error(),
		})
		return
	}
	if row == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Data row not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   row,
	})
}

// CreateDataRow godoc
// @Summary Create a data row from (field, value) pairs
// @Description Every value is validated against its field's type before composition
// @Tags data-rows
// @Accept json
// @Produce json
// @Param projectId path string true "Project ID"
// @Param body body dto.DataRowRequest true "Field values"
// @Success 201 {object} models.DataRow
// @Router /projects/{projectId}/data-rows [post]
func CreateDataRow(c *gin.Context) {
	ownerID, ok := currentOwner(c)
	if !ok {
		return
	}

	var req dto.DataRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	if validationErrors := validateDataRowFields(req); len(validationErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": validationErrors,
		})
		return
	}

	row, err := dataRowService.Create(c.Param("projectId"), ownerID, req)
	if err != nil {
		status := http.StatusInternalServerError
		if utils.IsBadRequest(err) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}
	if row == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Project not found",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   row,
	})
}

// UpdateDataRow godoc
// @Summary Update the field values of a data row
// @Description Existing (dataRowId, fieldId) pairs are overwritten in place, new pairs inserted
// @Tags data-rows
// @Accept json
// @Produce json
// @Param projectId path string true "Project ID"
// @Param id path string true "Data row ID"
// @Param body body dto.DataRowRequest true "Field values"
// @Success 200 {object} models.DataRow
// @Router /projects/{projectId}/data-rows/{id} [patch]
func UpdateDataRow(c *gin.Context) {
	ownerID, ok := currentOwner(c)
	if !ok {
		return
	}

	var req dto.DataRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	if validationErrors := validateDataRowFields(req); len(validationErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": validationErrors,
		})
		return
	}

	row, err := dataRowService.Update(c.Param("projectId"), ownerID, c.Param("id"), req)
	if err != nil {
		status := http.StatusInternalServerError
		if utils.IsBadRequest(err) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}
	if row == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Data row not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   row,
	})
}

// DeleteDataRow godoc
// @Summary Delete a data row
// @Tags data-rows
// @Produce json
// @Param projectId path string true "Project ID"
// @Param id path string true "Data row ID"
// @Success 200 {object} map[string]string
// @Router /projects/{projectId}/data-rows/{id} [delete]
func DeleteDataRow(c *gin.Context) {
	ownerID, ok := currentOwner(c)
	if !ok {
		return
	}

	deleted, err := dataRowService.Remove(c.Param("projectId"), ownerID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete data row: " + err.Error(),
		})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Data row not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Data row deleted",
	})
}
