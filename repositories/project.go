package repositories

import (
	"github.com/rowcast-simple/database"
	"github.com/rowcast-simple/models"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct{}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{}
}

// FindByOwnerID retrieves all projects belonging to an owner
func (r *ProjectRepository) FindByOwnerID(ownerID string) ([]models.Project, error) {
	var projects []models.Project
	result := database.DB.Where("owner_id = ?", ownerID).Find(&projects)
	return projects, result.Error
}

// FindByID retrieves a project by its ID with its fields, scoped to an owner
func (r *ProjectRepository) FindByID(id string, ownerID string) (models.Project, error) {
	var project models.Project
	result := database.DB.
		Preload("Fields").
		First(&project, "id = ? AND owner_id = ?", id, ownerID)
	return project, result.Error
}

// FindSnapshot retrieves a project with everything a dispatch job needs:
// fields, device and data rows with their values
func (r *ProjectRepository) FindSnapshot(id string, ownerID string) (models.Project, error) {
	var project models.Project
	result := database.DB.
		Preload("Fields").
		Preload("Device").
		Preload("DataRows.Fields").
		First(&project, "id = ? AND owner_id = ?", id, ownerID)
	return project, result.Error
}

// Create inserts a new project into the database
func (r *ProjectRepository) Create(project models.Project) (models.Project, error) {
	result := database.DB.Create(&project)
	return project, result.Error
}

// Update modifies an existing project
func (r *ProjectRepository) Update(project models.Project) error {
	result := database.DB.Save(&project)
	return result.Error
}

// Delete removes a project belonging to an owner, returning the number of
// deleted records
func (r *ProjectRepository) Delete(id string, ownerID string) (int64, error) {
	result := database.DB.Where("owner_id = ?", ownerID).Delete(&models.Project{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

// AddField attaches a field to a project
func (r *ProjectRepository) AddField(project *models.Project, field models.Field) error {
	return database.DB.Model(project).Association("Fields").Append(&field)
}

// RemoveField detaches a field from a project without deleting the field
func (r *ProjectRepository) RemoveField(project *models.Project, fieldID string) error {
	return database.DB.Model(project).Association("Fields").Delete(&models.Field{ID: fieldID})
}
