package repositories

import (
	"github.com/rowcast-simple/database"
	"github.com/rowcast-simple/models"
)

// DataRowFieldRepository handles database operations for data row field
// values. Records are always addressed by the (dataRowID, fieldID)
// composite key; there is no surrogate id.
type DataRowFieldRepository struct{}

// NewDataRowFieldRepository creates a new data row field repository instance
func NewDataRowFieldRepository() *DataRowFieldRepository {
	return &DataRowFieldRepository{}
}

// FindByKey retrieves the value record for one field of one data row
func (r *DataRowFieldRepository) FindByKey(dataRowID string, fieldID string) (models.DataRowField, error) {
	var drf models.DataRowField
	result := database.DB.First(&drf, "data_row_id = ? AND field_id = ?", dataRowID, fieldID)
	return drf, result.Error
}

// Create inserts a new value record
func (r *DataRowFieldRepository) Create(drf models.DataRowField) (models.DataRowField, error) {
	result := database.DB.Create(&drf)
	return drf, result.Error
}

// UpdateValue overwrites the value of an existing record in place
func (r *DataRowFieldRepository) UpdateValue(dataRowID string, fieldID string, value string) error {
	result := database.DB.Model(&models.DataRowField{}).
		Where("data_row_id = ? AND field_id = ?", dataRowID, fieldID).
		Update("value", value)
	return result.Error
}

// Delete removes the value record for one field of one data row, returning
// the number of deleted records
func (r *DataRowFieldRepository) Delete(dataRowID string, fieldID string) (int64, error) {
	result := database.DB.
		Where("data_row_id = ? AND field_id = ?", dataRowID, fieldID).
		Delete(&models.DataRowField{})
	return result.RowsAffected, result.Error
}
