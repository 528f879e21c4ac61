package dto

// DataRowFieldEntry is one (field, value) pair of a data row request. The
// value is typed loosely so the field validator can report non-string
// values for text fields instead of a generic binding failure.
type DataRowFieldEntry struct {
	FieldID string      `json:"fieldId"`
	Value   interface{} `json:"value"`
}

// DataRowRequest represents the body for creating or updating a data row
type DataRowRequest struct {
	Fields []DataRowFieldEntry `json:"fields" binding:"required"`
}
