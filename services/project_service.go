package services

import (
	"errors"

	"github.com/rowcast-simple/dto"
	"github.com/rowcast-simple/models"
	"github.com/rowcast-simple/queue"
	"github.com/rowcast-simple/repositories"
	"github.com/rowcast-simple/utils"
	"gorm.io/gorm"
)

// PhoneFieldName is the field a project must carry before messages can be
// dispatched: without it no row can address a recipient.
const PhoneFieldName = "phone"

// Enqueuer abstracts the job queue the scheduler hands dispatch jobs to
type Enqueuer interface {
	Enqueue(jobName string, payload interface{}) error
}

// ProjectService handles business logic for projects, including the
// message dispatch scheduling
type ProjectService struct {
	projectRepo *repositories.ProjectRepository
	fieldRepo   *repositories.FieldRepository
	deviceRepo  *repositories.DeviceRepository
	queue       Enqueuer
}

// NewProjectService creates a new project service instance
func NewProjectService() *ProjectService {
	return &ProjectService{
		projectRepo: repositories.NewProjectRepository(),
		fieldRepo:   repositories.NewFieldRepository(),
		deviceRepo:  repositories.NewDeviceRepository(),
	}
}

// enqueuer resolves the dispatch queue. The global queue is initialized in
// main, after the package-level services were constructed, so it is read
// lazily here.
func (s *ProjectService) enqueuer() Enqueuer {
	if s.queue != nil {
		return s.queue
	}
	return queue.Messages
}

// ListProjects retrieves all projects of an owner
func (s *ProjectService) ListProjects(ownerID string) ([]models.Project, error) {
	return s.projectRepo.FindByOwnerID(ownerID)
}

// GetProject retrieves a project with its fields. Returns nil when the
// project does not exist for the owner.
func (s *ProjectService) GetProject(id string, ownerID string) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id, ownerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProject creates a project for an owner, resolving the optional
// target device by id
func (s *ProjectService) CreateProject(ownerID string, req dto.CreateProjectRequest) (models.Project, error) {
	project := models.Project{
		Name:            req.Name,
		MessageTemplate: req.MessageTemplate,
		OwnerID:         ownerID,
	}

	if err := s.attachDevice(req.DeviceID, ownerID, &project); err != nil {
		return models.Project{}, err
	}

	return s.projectRepo.Create(project)
}

// UpdateProject replaces a project's name, template and device. Returns
// nil when the project does not exist for the owner.
func (s *ProjectService) UpdateProject(id string, ownerID string, req dto.UpdateProjectRequest) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id, ownerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	project.Name = req.Name
	project.MessageTemplate = req.MessageTemplate

	if err := s.attachDevice(req.DeviceID, ownerID, &project); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject removes a project of an owner, reporting whether anything
// was deleted
func (s *ProjectService) DeleteProject(id string, ownerID string) (bool, error) {
	affected, err := s.projectRepo.Delete(id, ownerID)
	return affected > 0, err
}

// AddField attaches an existing field to a project. Attaching a field
// that is already part of the project is a no-op.
func (s *ProjectService) AddField(projectID string, ownerID string, fieldID string) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID, ownerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewBadRequest("Project with id %s not found", projectID)
	}
	if err != nil {
		return nil, err
	}

	field, err := s.fieldRepo.FindByID(fieldID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewBadRequest("Field with id %s not found", fieldID)
	}
	if err != nil {
		return nil, err
	}

	for _, attached := range project.Fields {
		if attached.ID == field.ID {
			return &project, nil
		}
	}

	if err := s.projectRepo.AddField(&project, field); err != nil {
		return nil, err
	}
	return &project, nil
}

// ListFields retrieves the fields attached to a project. Returns nil when
// the project does not exist for the owner.
func (s *ProjectService) ListFields(projectID string, ownerID string) ([]models.Field, error) {
	project, err := s.GetProject(projectID, ownerID)
	if err != nil || project == nil {
		return nil, err
	}
	if project.Fields == nil {
		return []models.Field{}, nil
	}
	return project.Fields, nil
}

// RemoveField detaches a field from a project without deleting the field
// itself. Returns nil when the project does not exist for the owner.
func (s *ProjectService) RemoveField(projectID string, ownerID string, fieldID string) (*models.Project, error) {
	project, err := s.GetProject(projectID, ownerID)
	if err != nil || project == nil {
		return nil, err
	}
	if len(project.Fields) == 0 {
		return project, nil
	}

	if err := s.projectRepo.RemoveField(project, fieldID); err != nil {
		return nil, err
	}

	kept := project.Fields[:0]
	for _, field := range project.Fields {
		if field.ID != fieldID {
			kept = append(kept, field)
		}
	}
	project.Fields = kept
	return project, nil
}

// SendMessages validates that a project is dispatch-ready and enqueues one
// job carrying its full snapshot. It returns before any message is sent;
// delivery happens asynchronously in the message worker. Returns nil when
// the project does not exist for the owner.
func (s *ProjectService) SendMessages(projectID string, ownerID string) (*dto.SendMessagesResponse, error) {
	project, err := s.projectRepo.FindSnapshot(projectID, ownerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// Readiness checks, first failing one reported
	if project.MessageTemplate == nil || *project.MessageTemplate == "" {
		return nil, utils.NewBadRequest("Message template cannot be null")
	}
	if project.Device == nil {
		return nil, utils.NewBadRequest("No device configured")
	}
	if len(project.DataRows) == 0 {
		return nil, utils.NewBadRequest("No data to send")
	}
	if !hasFieldNamed(project.Fields, PhoneFieldName) {
		return nil, utils.NewBadRequest("Missing required field 'phone'")
	}

	if err := s.enqueuer().Enqueue(queue.JobSendMessages, project); err != nil {
		return nil, err
	}

	return &dto.SendMessagesResponse{Status: "sent"}, nil
}

// attachDevice resolves a device by id and sets it on the project. An
// empty device id leaves the project's device untouched.
func (s *ProjectService) attachDevice(deviceID string, ownerID string, project *models.Project) error {
	if deviceID == "" {
		return nil
	}

	device, err := s.deviceRepo.FindByID(deviceID, ownerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NewBadRequest("No device found with id %s", deviceID)
	}
	if err != nil {
		return err
	}

	project.DeviceID = &device.ID
	project.Device = &device
	return nil
}

func hasFieldNamed(fields []models.Field, name string) bool {
	for _, field := range fields {
		if field.Name == name {
			return true
		}
	}
	return false
}
