package repositories

import (
	"github.com/rowcast-simple/database"
	"github.com/rowcast-simple/models"
	"gorm.io/gorm"
)

// DataRowRepository handles database operations for data rows
type DataRowRepository struct{}

// NewDataRowRepository creates a new data row repository instance
func NewDataRowRepository() *DataRowRepository {
	return &DataRowRepository{}
}

// FindByProjectID retrieves all data rows of a project
func (r *DataRowRepository) FindByProjectID(projectID string) ([]models.DataRow, error) {
	var rows []models.DataRow
	result := database.DB.Where("project_id = ?", projectID).Find(&rows)
	return rows, result.Error
}

// FindByID retrieves a data row with its field values, scoped to a project
func (r *DataRowRepository) FindByID(projectID string, id string) (models.DataRow, error) {
	var row models.DataRow
	result := database.DB.
		Preload("Fields.Field").
		First(&row, "id = ? AND project_id = ?", id, projectID)
	return row, result.Error
}

// Create inserts a data row together with all its field values as one
// transaction
func (r *DataRowRepository) Create(row models.DataRow) (models.DataRow, error) {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
	return row, err
}

// Delete removes a data row of a project, returning the number of deleted
// records
func (r *DataRowRepository) Delete(projectID string, id string) (int64, error) {
	result := database.DB.Where("project_id = ?", projectID).Delete(&models.DataRow{}, "id = ?", id)
	return result.RowsAffected, result.Error
}
