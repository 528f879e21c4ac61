package repositories

import (
	"github.com/rowcast-simple/database"
	"github.com/rowcast-simple/models"
)

// FieldRepository handles database operations for fields
type FieldRepository struct{}

// NewFieldRepository creates a new field repository instance
func NewFieldRepository() *FieldRepository {
	return &FieldRepository{}
}

// FindByOwnerID retrieves all fields belonging to an owner
func (r *FieldRepository) FindByOwnerID(ownerID string) ([]models.Field, error) {
	var fields []models.Field
	result := database.DB.Where("owner_id = ?", ownerID).Find(&fields)
	return fields, result.Error
}

// FindByID retrieves a field by its ID
func (r *FieldRepository) FindByID(id string) (models.Field, error) {
	var field models.Field
	result := database.DB.First(&field, "id = ?", id)
	return field, result.Error
}

// Create inserts a new field into the database
func (r *FieldRepository) Create(field models.Field) (models.Field, error) {
	result := database.DB.Create(&field)
	return field, result.Error
}

// Update modifies an existing field
func (r *FieldRepository) Update(field models.Field) error {
	result := database.DB.Save(&field)
	return result.Error
}

// Delete removes a field belonging to an owner, returning the number of
// deleted records
func (r *FieldRepository) Delete(id string, ownerID string) (int64, error) {
	result := database.DB.Where("owner_id = ?", ownerID).Delete(&models.Field{}, "id = ?", id)
	return result.RowsAffected, result.Error
}
