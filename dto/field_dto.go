package dto

import "github.com/rowcast-simple/models"

// CreateFieldRequest represents the body for creating a field
type CreateFieldRequest struct {
	Name   string           `json:"name" binding:"required"`
	Type   models.FieldType `json:"type" binding:"required,oneof=text phone date list"`
	Values []string         `json:"values"`
}

// UpdateFieldRequest represents the body for updating a field
type UpdateFieldRequest struct {
	Name   string           `json:"name" binding:"required"`
	Type   models.FieldType `json:"type" binding:"required,oneof=text phone date list"`
	Values []string         `json:"values"`
}
