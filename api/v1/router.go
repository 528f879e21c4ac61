package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rowcast-simple/middleware"
)

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// Auth endpoints
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", Register)
		authGroup.POST("/login", Login)
		// Use auth middleware here only for the /me endpoint
		authGroup.GET("/me", middleware.AuthMiddleware(), GetCurrentUser)
	}

	// Field endpoints - protected by AuthMiddleware
	fieldGroup := router.Group("/fields")
	fieldGroup.Use(middleware.AuthMiddleware())
	{
		fieldGroup.GET("", ListFields)
		fieldGroup.POST("", CreateField)
		fieldGroup.GET("/:id", GetField)
		fieldGroup.PATCH("/:id", UpdateField)
		fieldGroup.DELETE("/:id", DeleteField)
	}

	// Device endpoints - protected by AuthMiddleware
	deviceGroup := router.Group("/devices")
	deviceGroup.Use(middleware.AuthMiddleware())
	{
		deviceGroup.GET("", ListDevices)
		deviceGroup.POST("", CreateDevice)
		deviceGroup.GET("/:id", GetDevice)
		deviceGroup.PATCH("/:id", UpdateDevice)
		deviceGroup.DELETE("/:id", DeleteDevice)
	}

	// Project endpoints - protected by AuthMiddleware
	projectGroup := router.Group("/projects")
	projectGroup.Use(middleware.AuthMiddleware())
	{
		projectGroup.GET("", ListProjects)
		projectGroup.POST("", CreateProject)
		projectGroup.GET("/:projectId", GetProject)
		projectGroup.PATCH("/:projectId", UpdateProject)
		projectGroup.DELETE("/:projectId", DeleteProject)

		// Project fields
		projectGroup.POST("/:projectId/fields", AddProjectField)
		projectGroup.GET("/:projectId/fields", ListProjectFields)
		projectGroup.DELETE("/:projectId/fields/:fieldId", RemoveProjectField)

		// Data rows
		projectGroup.GET("/:projectId/data-rows", ListDataRows)
		projectGroup.POST("/:projectId/data-rows", CreateDataRow)
		projectGroup.GET("/:projectId/data-rows/:id", GetDataRow)
		projectGroup.PATCH("/:projectId/data-rows/:id", UpdateDataRow)
		projectGroup.DELETE("/:projectId/data-rows/:id", DeleteDataRow)

		// Message dispatch
		projectGroup.POST("/:projectId/send-messages", SendMessages)
	}
}
