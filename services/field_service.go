package services

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/rowcast-simple/models"
	"github.com/rowcast-simple/repositories"
	"github.com/rowcast-simple/utils"
	"gorm.io/gorm"
)

// Permissive national/international phone shape: optional leading +,
// digits grouped flexibly with -, ., space or parentheses. Digit count is
// checked separately.
var phonePattern = regexp.MustCompile(`^\+?[0-9(][0-9().\- ]*$`)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FieldService handles business logic for fields, including the
// type-directed value validation used by the data row endpoints
type FieldService struct {
	fieldRepo *repositories.FieldRepository
}

// NewFieldService creates a new field service instance
func NewFieldService() *FieldService {
	return &FieldService{
		fieldRepo: repositories.NewFieldRepository(),
	}
}

// ListFields retrieves all fields of an owner
func (s *FieldService) ListFields(ownerID string) ([]models.Field, error) {
	return s.fieldRepo.FindByOwnerID(ownerID)
}

// GetField retrieves a field by ID. Returns nil when the field does not exist.
func (s *FieldService) GetField(id string) (*models.Field, error) {
	field, err := s.fieldRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &field, nil
}

// CreateField creates a new field for an owner
func (s *FieldService) CreateField(ownerID string, name string, fieldType models.FieldType, values []string) (models.Field, error) {
	field := models.Field{
		Name:    name,
		Type:    fieldType,
		Values:  values,
		OwnerID: ownerID,
	}
	return s.fieldRepo.Create(field)
}

// UpdateField replaces a field's name, type and values. Returns nil when
// the field does not exist. Validation always re-reads the current
// definition, so changing the type changes future validation semantics for
// every row referencing the field.
func (s *FieldService) UpdateField(id string, ownerID string, name string, fieldType models.FieldType, values []string) (*models.Field, error) {
	field, err := s.fieldRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if field.OwnerID != ownerID {
		return nil, nil
	}

	field.Name = name
	field.Type = fieldType
	field.Values = values

	if err := s.fieldRepo.Update(field); err != nil {
		return nil, err
	}
	return &field, nil
}

// DeleteField removes a field of an owner, reporting whether anything was
// deleted
func (s *FieldService) DeleteField(id string, ownerID string) (bool, error) {
	affected, err := s.fieldRepo.Delete(id, ownerID)
	return affected > 0, err
}

// Validate checks a candidate value against the type contract of the
// field. The field definition is read fresh on every call.
func (s *FieldService) Validate(fieldID string, value interface{}) error {
	field, err := s.fieldRepo.FindByID(fieldID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NewBadRequest("Field does not exist for field with id %s", fieldID)
	}
	if err != nil {
		return err
	}

	switch field.Type {
	case models.FieldTypePhone:
		str, ok := value.(string)
		if !ok || !isValidPhone(str) {
			return utils.NewBadFieldValue("should be a valid phone number")
		}
	case models.FieldTypeText:
		if _, ok := value.(string); !ok {
			return utils.NewBadFieldValue("should be a string")
		}
	case models.FieldTypeList:
		str, ok := value.(string)
		if !ok || !contains(field.Values, str) {
			return utils.NewBadFieldValue("should be listed in %s (%s)", field.Name, strings.Join(field.Values, ", "))
		}
	case models.FieldTypeDate:
		if !isValidDate(value) {
			return utils.NewBadFieldValue("should be a date")
		}
	default:
		return utils.NewBadFieldValue("has an unsupported type %q", field.Type)
	}

	return nil
}

// isValidPhone accepts 7 to 14 digits in a permissive phone shape
func isValidPhone(value string) bool {
	if !phonePattern.MatchString(value) {
		return false
	}
	digits := 0
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7 && digits <= 14
}

// isValidDate accepts a native time value or an ISO-8601 string
func isValidDate(value interface{}) bool {
	switch v := value.(type) {
	case time.Time:
		return true
	case string:
		for _, layout := range dateLayouts {
			if _, err := time.Parse(layout, v); err == nil {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func contains(values []string, candidate string) bool {
	for _, v := range values {
		if v == candidate {
			return true
		}
	}
	return false
}
