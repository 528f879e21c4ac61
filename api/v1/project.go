package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rowcast-simple/dto"
	"github.com/rowcast-simple/services"
	"github.com/rowcast-simple/utils"
)

var projectService = services.NewProjectService()

// ListProjects godoc
// @Summary List the projects of the authenticated user
// @Tags projects
// @Produce json
// @Success 200 {array} models.Project
// @Router /projects [get]
func ListProjects(c *gin.Context) {
	ownerID, ok := currentOwner(c)
	if !ok {
		return
	}

	projects, err := projectService.ListProjects(ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve projects: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   projects,
	})
}

// GetProject godoc
// @Summary Get a project by ID
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} models.Project
// @Router /projects/{id} [get]
func GetProject(c *gin.Context) {
	ownerID, ok := currentOwner(c)
	if !ok {
		return
	}

	project, err := projectService.GetProject(c.Param("projectId"), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve project: " + err.Error(),
		})
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Project not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   project,
	})
}

// CreateProject godoc
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Param body body dto.CreateProjectRequest true "Project definition"
// @Success 201 {object} models.Project
// @Router /projects [post]
func CreateProject(c *gin.Context) {
	ownerID, ok := currentOwner(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	project, err := projectService.CreateProject(ownerID, req)
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

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   project,
	})
}

// UpdateProject godoc
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param body body dto.UpdateProjectRequest true "Project definition"
// @Success 200 {object} models.Project
// @Router /projects/{id} [patch]
func UpdateProject(c *gin.Context) {
	ownerID, ok := currentOwner(c)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	project, err := projectService.UpdateProject(c.Param("projectId"), ownerID, req)
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
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Project not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   project,
	})
}

// DeleteProject godoc
// @Summary Delete a project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} map[string]string
// @Router /projects/{id} [delete]
func DeleteProject(c *gin.Context) {
	ownerID, ok := currentOwner(c)
	if !ok {
		return
	}

	deleted, err := projectService.DeleteProject(c.Param("projectId"), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete project: " + err.Error(),
		})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Project not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Project deleted",
	})
}

// AddProjectField godoc
// @Summary Attach a field to a project
// @Tags projects
// @Accept json
// @Produce json
// @Param projectId path string true "Project ID"
// @Param body body dto.AddProjectFieldRequest true "Field reference"
// @Success 200 {object} models.Project
// @Router /projects/{projectId}/fields [post]
func AddProjectField(c *gin.Context) {
	ownerID, ok := currentOwner(c)
	if !ok {
		return
	}

	var req dto.AddProjectFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	project, err := projectService.AddField(c.Param("projectId"), ownerID, req.FieldID)
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

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   project,
	})
}

// ListProjectFields godoc
// @Summary List the fields attached to a project
// @Tags projects
// @Produce json
// @Param projectId path string true "Project ID"
// @Success 200 {array} models.Field
// @Router /projects/{projectId}/fields [get]
func ListProjectFields(c *gin.Context) {
	ownerID, ok := currentOwner(c)
	if !ok {
		return
	}

	fields, err := projectService.ListFields(c.Param("projectId"), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve project fields: " + err.Error(),
		})
		return
	}
	if fields == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Project not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   fields,
	})
}

// RemoveProjectField godoc
// @Summary Detach a field from a project
// @Tags projects
// @Produce json
// @Param projectId path string true "Project ID"
// @Param fieldId path string true "Field ID"
// @Success 200 {object} models.Project
// @Router /projects/{projectId}/fields/{fieldId} [delete]
func RemoveProjectField(c *gin.Context) {
	ownerID, ok := currentOwner(c)
	if !ok {
		return
	}

	project, err := projectService.RemoveField(c.Param("projectId"), ownerID, c.Param("fieldId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to detach field: " + err.Error(),
		})
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Project not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   project,
	})
}

// SendMessages godoc
// @Summary Dispatch one message per data row of a project
// @Description Validates dispatch readiness and enqueues an asynchronous job; returns before delivery
// @Tags projects
// @Produce json
// @Param projectId path string true "Project ID"
// @Success 200 {object} dto.SendMessagesResponse
// @Router /projects/{projectId}/send-messages [post]
func SendMessages(c *gin.Context) {
	ownerID, ok := currentOwner(c)
	if !ok {
		return
	}

	result, err := projectService.SendMessages(c.Param("projectId"), ownerID)
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
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Project not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   result,
	})
}
