package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DataRow represents one record of field values within a project
type DataRow struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	ProjectID string    `json:"projectId" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Fields []DataRowField `json:"fields,omitempty" gorm:"foreignKey:DataRowID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns a UUID primary key when none was provided
func (r *DataRow) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// DataRowField represents the value of one field within one data row.
// Its identity is the (DataRowID, FieldID) composite key, so a row holds
// at most one value per field; deleting either parent cascades.
type DataRowField struct {
	DataRowID string `json:"dataRowId" gorm:"primaryKey;type:uuid"`
	FieldID   string `json:"fieldId" gorm:"primaryKey;type:uuid"`
	Value     string `json:"value"`

	// Relations
	Field *Field `json:"field,omitempty" gorm:"foreignKey:FieldID;constraint:OnDelete:CASCADE"`
}
