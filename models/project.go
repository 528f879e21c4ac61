package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project represents the owning container of fields, data rows, a target
// device and a message template
type Project struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid"`
	Name            string    `json:"name" gorm:"not null"`
	MessageTemplate *string   `json:"messageTemplate" gorm:"default:null"`
	DeviceID        *string   `json:"deviceId" gorm:"type:uuid;default:null"`
	OwnerID         string    `json:"ownerId" gorm:"type:uuid;not null;index"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	// Relations
	Owner    User      `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Device   *Device   `json:"device,omitempty" gorm:"foreignKey:DeviceID;references:ID"`
	Fields   []Field   `json:"fields,omitempty" gorm:"many2many:project_fields"`
	DataRows []DataRow `json:"dataRows,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns a UUID primary key when none was provided
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
