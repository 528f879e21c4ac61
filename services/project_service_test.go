package services

import (
	"testing"

	"github.com/rowcast-simple/database"
	"github.com/rowcast-simple/dto"
	"github.com/rowcast-simple/models"
	"github.com/rowcast-simple/queue"
	"github.com/rowcast-simple/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueue struct {
	jobs []queue.Job
}

func (q *fakeQueue) Enqueue(jobName string, payload interface{}) error {
	q.jobs = append(q.jobs, queue.Job{Name: jobName, Payload: payload})
	return nil
}

func newProjectServiceWithQueue(q Enqueuer) *ProjectService {
	service := NewProjectService()
	service.queue = q
	return service
}

func attachField(t *testing.T, project *models.Project, field models.Field) {
	t.Helper()
	require.NoError(t, database.DB.Model(project).Association("Fields").Append(&field))
}

func createRowWithValues(t *testing.T, projectID string, values map[string]string) models.DataRow {
	t.Helper()
	row := models.DataRow{ProjectID: projectID}
	for fieldID, value := range values {
		row.Fields = append(row.Fields, models.DataRowField{FieldID: fieldID, Value: value})
	}
	require.NoError(t, database.DB.Create(&row).Error)
	return row
}

func TestCreateProject_UnknownDevice(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "projects@example.com")
	service := newProjectServiceWithQueue(&fakeQueue{})

	deviceID := "44444444-4444-4444-4444-444444444444"
	_, err := service.CreateProject(owner.ID, dto.CreateProjectRequest{
		Name:     "campaign",
		DeviceID: deviceID,
	})
	require.Error(t, err)
	assert.True(t, utils.IsBadRequest(err))
	assert.EqualError(t, err, "No device found with id "+deviceID)
}

func TestAddField_Idempotent(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "projects@example.com")
	project := createTestProject(t, owner.ID)
	field := createTestField(t, owner.ID, "phone", models.FieldTypePhone)
	service := newProjectServiceWithQueue(&fakeQueue{})

	for i := 0; i < 2; i++ {
		_, err := service.AddField(project.ID, owner.ID, field.ID)
		require.NoError(t, err)
	}

	fields, err := service.ListFields(project.ID, owner.ID)
	require.NoError(t, err)
	assert.Len(t, fields, 1)
}

func TestAddField_UnknownField(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "projects@example.com")
	project := createTestProject(t, owner.ID)
	service := newProjectServiceWithQueue(&fakeQueue{})

	fieldID := "55555555-5555-5555-5555-555555555555"
	_, err := service.AddField(project.ID, owner.ID, fieldID)
	require.Error(t, err)
	assert.True(t, utils.IsBadRequest(err))
	assert.EqualError(t, err, "Field with id "+fieldID+" not found")
}

func TestRemoveField_Detaches(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "projects@example.com")
	project := createTestProject(t, owner.ID)
	field := createTestField(t, owner.ID, "phone", models.FieldTypePhone)
	attachField(t, &project, field)
	service := newProjectServiceWithQueue(&fakeQueue{})

	updated, err := service.RemoveField(project.ID, owner.ID, field.ID)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Empty(t, updated.Fields)

	// The field itself survives detachment
	var count int64
	require.NoError(t, database.DB.Model(&models.Field{}).Where("id = ?", field.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSendMessages_SnapshotResolvesLinkedDevice(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "projects@example.com")
	q := &fakeQueue{}
	service := newProjectServiceWithQueue(q)

	// Two devices exist; the snapshot must carry the one the project
	// points at through its device_id column
	other := models.Device{Name: "other", Token: "other-token", AccessToken: "other-access", OwnerID: owner.ID}
	require.NoError(t, database.DB.Create(&other).Error)
	device := createTestDevice(t, owner.ID)

	template := "Hello"
	project := models.Project{
		Name:            "campaign",
		MessageTemplate: &template,
		DeviceID:        &device.ID,
		OwnerID:         owner.ID,
	}
	require.NoError(t, database.DB.Create(&project).Error)
	phone := createTestField(t, owner.ID, "phone", models.FieldTypePhone)
	attachField(t, &project, phone)
	createRowWithValues(t, project.ID, map[string]string{phone.ID: "0612345678"})

	_, err := service.SendMessages(project.ID, owner.ID)
	require.NoError(t, err)

	require.Len(t, q.jobs, 1)
	snapshot := q.jobs[0].Payload.(models.Project)
	require.NotNil(t, snapshot.Device)
	assert.Equal(t, device.ID, snapshot.Device.ID)
	assert.Equal(t, "device-token", snapshot.Device.Token)
}

func TestSendMessages_MissingProject(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "projects@example.com")
	service := newProjectServiceWithQueue(&fakeQueue{})

	result, err := service.SendMessages("66666666-6666-6666-6666-666666666666", owner.ID)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestSendMessages_ReadinessOrder(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "projects@example.com")
	service := newProjectServiceWithQueue(&fakeQueue{})

	// Nothing configured: the template violation is reported first
	project := createTestProject(t, owner.ID)
	_, err := service.SendMessages(project.ID, owner.ID)
	require.Error(t, err)
	assert.EqualError(t, err, "Message template cannot be null")

	// Template set, no device
	template := "Hello {firstname}"
	project.MessageTemplate = &template
	require.NoError(t, database.DB.Save(&project).Error)
	_, err = service.SendMessages(project.ID, owner.ID)
	require.Error(t, err)
	assert.EqualError(t, err, "No device configured")

	// Device set, no data
	device := createTestDevice(t, owner.ID)
	project.DeviceID = &device.ID
	require.NoError(t, database.DB.Save(&project).Error)
	_, err = service.SendMessages(project.ID, owner.ID)
	require.Error(t, err)
	assert.EqualError(t, err, "No data to send")

	// Data present, no phone field
	field := createTestField(t, owner.ID, "firstname", models.FieldTypeText)
	attachField(t, &project, field)
	createRowWithValues(t, project.ID, map[string]string{field.ID: "Eric"})
	_, err = service.SendMessages(project.ID, owner.ID)
	require.Error(t, err)
	assert.EqualError(t, err, "Missing required field 'phone'")
}

func TestSendMessages_EnqueuesSnapshot(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "projects@example.com")
	q := &fakeQueue{}
	service := newProjectServiceWithQueue(q)

	template := "Hello {firstname}"
	device := createTestDevice(t, owner.ID)
	project := models.Project{
		Name:            "campaign",
		MessageTemplate: &template,
		DeviceID:        &device.ID,
		OwnerID:         owner.ID,
	}
	require.NoError(t, database.DB.Create(&project).Error)

	phone := createTestField(t, owner.ID, "phone", models.FieldTypePhone)
	firstname := createTestField(t, owner.ID, "firstname", models.FieldTypeText)
	attachField(t, &project, phone)
	attachField(t, &project, firstname)
	createRowWithValues(t, project.ID, map[string]string{
		phone.ID:     "0612345678",
		firstname.ID: "Eric",
	})

	result, err := service.SendMessages(project.ID, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "sent", result.Status)

	require.Len(t, q.jobs, 1)
	assert.Equal(t, queue.JobSendMessages, q.jobs[0].Name)

	snapshot, ok := q.jobs[0].Payload.(models.Project)
	require.True(t, ok)
	assert.Equal(t, project.ID, snapshot.ID)
	require.NotNil(t, snapshot.Device)
	assert.Equal(t, device.ID, snapshot.Device.ID)
	assert.Equal(t, device.Token, snapshot.Device.Token)
	assert.Len(t, snapshot.Fields, 2)
	require.Len(t, snapshot.DataRows, 1)
	assert.Len(t, snapshot.DataRows[0].Fields, 2)
}
