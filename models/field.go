package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FieldType represents the semantic type of a field
type FieldType string

const (
	FieldTypeText  FieldType = "text"
	FieldTypePhone FieldType = "phone"
	FieldTypeDate  FieldType = "date"
	FieldTypeList  FieldType = "list"
)

// Field represents a typed, named attribute definable by a user
type Field struct {
	ID        string                      `json:"id" gorm:"primaryKey;type:uuid"`
	Name      string                      `json:"name" gorm:"not null"`
	Type      FieldType                   `json:"type" gorm:"type:varchar(10);default:'text'"`
	Values    datatypes.JSONSlice[string] `json:"values"` // permitted values, only meaningful when Type is list
	OwnerID   string                      `json:"ownerId" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time                   `json:"createdAt"`
	UpdatedAt time.Time                   `json:"updatedAt"`

	// Relations
	Owner User `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns a UUID primary key when none was provided
func (f *Field) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
