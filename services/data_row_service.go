package services

import (
	"errors"
	"fmt"

	"github.com/rowcast-simple/dto"
	"github.com/rowcast-simple/models"
	"github.com/rowcast-simple/repositories"
	"github.com/rowcast-simple/utils"
	"gorm.io/gorm"
)

// DataRowService composes data rows from (field, value) pairs for a
// project. Value validation happens at the request layer before this
// service runs, keeping composition and validation orthogonal.
type DataRowService struct {
	dataRowRepo      *repositories.DataRowRepository
	dataRowFieldRepo *repositories.DataRowFieldRepository
	fieldRepo        *repositories.FieldRepository
	projectRepo      *repositories.ProjectRepository
}

// NewDataRowService creates a new data row service instance
func NewDataRowService() *DataRowService {
	return &DataRowService{
		dataRowRepo:      repositories.NewDataRowRepository(),
		dataRowFieldRepo: repositories.NewDataRowFieldRepository(),
		fieldRepo:        repositories.NewFieldRepository(),
		projectRepo:      repositories.NewProjectRepository(),
	}
}

// Create assembles and persists a data row from the request entries.
// Returns nil when the project does not exist for the owner. Every entry
// must carry a field id referencing an existing field.
func (s *DataRowService) Create(projectID string, ownerID string, req dto.DataRowRequest) (*models.DataRow, error) {
	project, err := s.resolveProject(projectID, ownerID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}

	rowFields := make([]models.DataRowField, 0, len(req.Fields))
	for _, entry := range req.Fields {
		if entry.FieldID == "" {
			return nil, utils.NewBadRequest("Field id can't be null")
		}
		if _, err := s.fieldRepo.FindByID(entry.FieldID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, utils.NewBadRequest("Field does not exist for field with id %s", entry.FieldID)
			}
			return nil, err
		}
		rowFields = append(rowFields, models.DataRowField{
			FieldID: entry.FieldID,
			Value:   valueToString(entry.Value),
		})
	}

	row := models.DataRow{
		ProjectID: project.ID,
		Fields:    rowFields,
	}

	created, err := s.dataRowRepo.Create(row)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// FindAll lists the data rows of a project. Returns nil when the project
// does not exist for the owner.
func (s *DataRowService) FindAll(projectID string, ownerID string) ([]models.DataRow, error) {
	project, err := s.resolveProject(projectID, ownerID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}

	rows, err := s.dataRowRepo.FindByProjectID(project.ID)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.DataRow{}
	}
	return rows, nil
}

// FindOne retrieves a data row with its field values. Returns nil when
// either the project or the row does not exist.
func (s *DataRowService) FindOne(projectID string, ownerID string, id string) (*models.DataRow, error) {
	project, err := s.resolveProject(projectID, ownerID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}

	row, err := s.dataRowRepo.FindByID(project.ID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Update overwrites the value of every entry that already has a record for
// its (dataRowID, fieldID) pair and inserts a record otherwise. Returns
// nil when the row does not exist for the project.
func (s *DataRowService) Update(projectID string, ownerID string, id string, req dto.DataRowRequest) (*models.DataRow, error) {
	project, err := s.resolveProject(projectID, ownerID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}

	row, err := s.dataRowRepo.FindByID(project.ID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	for _, entry := range req.Fields {
		value := valueToString(entry.Value)
		if hasFieldValue(row.Fields, entry.FieldID) {
			if err := s.dataRowFieldRepo.UpdateValue(row.ID, entry.FieldID, value); err != nil {
				return nil, err
			}
			continue
		}

		// A reference to a non-existent field must surface as a bad
		// request naming the id, not as a raw foreign key violation.
		if _, err := s.fieldRepo.FindByID(entry.FieldID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, utils.NewBadRequest("Field with id %s does not exist", entry.FieldID)
			}
			return nil, err
		}
		if _, err := s.dataRowFieldRepo.Create(models.DataRowField{
			DataRowID: row.ID,
			FieldID:   entry.FieldID,
			Value:     value,
		}); err != nil {
			return nil, utils.NewBadRequest("Field with id %s does not exist", entry.FieldID)
		}
	}

	updated, err := s.dataRowRepo.FindByID(project.ID, id)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Remove deletes a data row of a project, reporting whether anything was
// deleted
func (s *DataRowService) Remove(projectID string, ownerID string, id string) (bool, error) {
	project, err := s.resolveProject(projectID, ownerID)
	if err != nil {
		return false, err
	}
	if project == nil {
		return false, nil
	}

	affected, err := s.dataRowRepo.Delete(project.ID, id)
	return affected > 0, err
}

func (s *DataRowService) resolveProject(projectID string, ownerID string) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID, ownerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func hasFieldValue(fields []models.DataRowField, fieldID string) bool {
	for _, drf := range fields {
		if drf.FieldID == fieldID {
			return true
		}
	}
	return false
}

func valueToString(value interface{}) string {
	if str, ok := value.(string); ok {
		return str
	}
	return fmt.Sprintf("%v", value)
}
