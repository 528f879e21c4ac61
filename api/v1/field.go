package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rowcast-simple/dto"
	"github.com/rowcast-simple/models"
	"github.com/rowcast-simple/services"
)

var fieldService = services.NewFieldService()

// ListFields godoc
// @Summary List the fields of the authenticated user
// @Tags fields
// @Produce json
// @Success 200 {array} models.Field
// @Router /fields [get]
func ListFields(c *gin.Context) {
	ownerID, ok := currentOwner(c)
	if !ok {
		return
	}

	fields, err := fieldService.ListFields(ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve fields: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   fields,
	})
}

// GetField godoc
// @Summary Get a field by ID
// @Tags fields
// @Produce json
// @Param id path string true "Field ID"
// @Success 200 {object} models.Field
// @Router /fields/{id} [get]
func GetField(c *gin.Context) {
	if _, ok := currentOwner(c); !ok {
		return
	}

	field, err := fieldService.GetField(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve field: " + err.Error(),
		})
		return
	}
	if field == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Field not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   field,
	})
}

// CreateField godoc
// @Summary Create a field
// @Tags fields
// @Accept json
// @Produce json
// @Param body body dto.CreateFieldRequest true "Field definition"
// @Success 201 {object} models.Field
// @Router /fields [post]
func CreateField(c *gin.Context) {
	ownerID, ok := currentOwner(c)
	if !ok {
		return
	}

	var req dto.CreateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	// A list field without permitted values could never validate anything
	if req.Type == models.FieldTypeList && len(req.Values) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "You must add at least one value for type 'list' field",
		})
		return
	}

	field, err := fieldService.CreateField(ownerID, req.Name, req.Type, req.Values)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create field: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   field,
	})
}

// UpdateField godoc
// @Summary Update a field
// @Tags fields
// @Accept json
// @Produce json
// @Param id path string true "Field ID"
// @Param body body dto.UpdateFieldRequest true "Field definition"
// @Success 200 {object} models.Field
// @Router /fields/{id} [patch]
func UpdateField(c *gin.Context) {
	ownerID, ok := currentOwner(c)
	if !ok {
		return
	}

	var req dto.UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	if req.Type == models.FieldTypeList && len(req.Values) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "You must add at least one value for type 'list' field",
		})
		return
	}

	field, err := fieldService.UpdateField(c.Param("id"), ownerID, req.Name, req.Type, req.Values)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update field: " + err.Error(),
		})
		return
	}
	if field == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Field not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   field,
	})
}

// DeleteField godoc
// @Summary Delete a field
// @Tags fields
// @Produce json
// @Param id path string true "Field ID"
// @Success 200 {object} map[string]string
// @Router /fields/{id} [delete]
func DeleteField(c *gin.Context) {
	ownerID, ok := currentOwner(c)
	if !ok {
		return
	}

	deleted, err := fieldService.DeleteField(c.Param("id"), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete field: " + err.Error(),
		})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Field not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Field deleted",
	})
}
