package services

import (
	"testing"

	"github.com/rowcast-simple/database"
	"github.com/rowcast-simple/dto"
	"github.com/rowcast-simple/models"
	"github.com/rowcast-simple/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProject(t *testing.T, ownerID string) models.Project {
	t.Helper()
	project := models.Project{Name: "test project", OwnerID: ownerID}
	require.NoError(t, database.DB.Create(&project).Error)
	return project
}

func TestDataRowFindAll_EmptyProject(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "rows@example.com")
	project := createTestProject(t, owner.ID)
	service := NewDataRowService()

	rows, err := service.FindAll(project.ID, owner.ID)
	require.NoError(t, err)
	// An existing project without rows yields an empty list, not the
	// missing-project nil sentinel
	require.NotNil(t, rows)
	assert.Empty(t, rows)

	rows, err = service.FindAll("11111111-1111-1111-1111-111111111111", owner.ID)
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestDataRowCreate(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "rows@example.com")
	project := createTestProject(t, owner.ID)
	firstname := createTestField(t, owner.ID, "firstname", models.FieldTypeText)
	lastname := createTestField(t, owner.ID, "lastname", models.FieldTypeText)
	service := NewDataRowService()

	row, err := service.Create(project.ID, owner.ID, dto.DataRowRequest{
		Fields: []dto.DataRowFieldEntry{
			{FieldID: firstname.ID, Value: "Eric"},
			{FieldID: lastname.ID, Value: "Moth"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Len(t, row.Fields, 2)
	assert.Equal(t, project.ID, row.ProjectID)
}

func TestDataRowCreate_MissingProject(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "rows@example.com")
	service := NewDataRowService()

	row, err := service.Create("00000000-0000-0000-0000-000000000000", owner.ID, dto.DataRowRequest{})
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestDataRowCreate_OtherOwnersProject(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "rows@example.com")
	other := createTestUser(t, "other@example.com")
	project := createTestProject(t, other.ID)
	service := NewDataRowService()

	row, err := service.Create(project.ID, owner.ID, dto.DataRowRequest{})
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestDataRowCreate_EmptyFieldID(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "rows@example.com")
	project := createTestProject(t, owner.ID)
	service := NewDataRowService()

	_, err := service.Create(project.ID, owner.ID, dto.DataRowRequest{
		Fields: []dto.DataRowFieldEntry{{FieldID: "", Value: "x"}},
	})
	require.Error(t, err)
	assert.True(t, utils.IsBadRequest(err))
	assert.EqualError(t, err, "Field id can't be null")
}

func TestDataRowCreate_UnknownField(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "rows@example.com")
	project := createTestProject(t, owner.ID)
	service := NewDataRowService()

	fieldID := "11111111-1111-1111-1111-111111111111"
	_, err := service.Create(project.ID, owner.ID, dto.DataRowRequest{
		Fields: []dto.DataRowFieldEntry{{FieldID: fieldID, Value: "x"}},
	})
	require.Error(t, err)
	assert.True(t, utils.IsBadRequest(err))
	assert.Contains(t, err.Error(), fieldID)
}

func TestDataRowUpdate_OverwritesInPlace(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "rows@example.com")
	project := createTestProject(t, owner.ID)
	field := createTestField(t, owner.ID, "firstname", models.FieldTypeText)
	service := NewDataRowService()

	row, err := service.Create(project.ID, owner.ID, dto.DataRowRequest{
		Fields: []dto.DataRowFieldEntry{{FieldID: field.ID, Value: "Eric"}},
	})
	require.NoError(t, err)

	update := dto.DataRowRequest{
		Fields: []dto.DataRowFieldEntry{{FieldID: field.ID, Value: "Erica"}},
	}

	// Applying the same update twice must leave exactly one record for
	// the (dataRowID, fieldID) pair, holding the final value
	for i := 0; i < 2; i++ {
		updated, err := service.Update(project.ID, owner.ID, row.ID, update)
		require.NoError(t, err)
		require.NotNil(t, updated)
	}

	var count int64
	require.NoError(t, database.DB.Model(&models.DataRowField{}).
		Where("data_row_id = ? AND field_id = ?", row.ID, field.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var drf models.DataRowField
	require.NoError(t, database.DB.
		First(&drf, "data_row_id = ? AND field_id = ?", row.ID, field.ID).Error)
	assert.Equal(t, "Erica", drf.Value)
}

func TestDataRowUpdate_InsertsNewPair(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "rows@example.com")
	project := createTestProject(t, owner.ID)
	firstname := createTestField(t, owner.ID, "firstname", models.FieldTypeText)
	lastname := createTestField(t, owner.ID, "lastname", models.FieldTypeText)
	service := NewDataRowService()

	row, err := service.Create(project.ID, owner.ID, dto.DataRowRequest{
		Fields: []dto.DataRowFieldEntry{{FieldID: firstname.ID, Value: "Eric"}},
	})
	require.NoError(t, err)

	updated, err := service.Update(project.ID, owner.ID, row.ID, dto.DataRowRequest{
		Fields: []dto.DataRowFieldEntry{{FieldID: lastname.ID, Value: "Moth"}},
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Len(t, updated.Fields, 2)
}

func TestDataRowUpdate_UnknownField(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "rows@example.com")
	project := createTestProject(t, owner.ID)
	field := createTestField(t, owner.ID, "firstname", models.FieldTypeText)
	service := NewDataRowService()

	row, err := service.Create(project.ID, owner.ID, dto.DataRowRequest{
		Fields: []dto.DataRowFieldEntry{{FieldID: field.ID, Value: "Eric"}},
	})
	require.NoError(t, err)

	missingID := "22222222-2222-2222-2222-222222222222"
	_, err = service.Update(project.ID, owner.ID, row.ID, dto.DataRowRequest{
		Fields: []dto.DataRowFieldEntry{{FieldID: missingID, Value: "x"}},
	})
	require.Error(t, err)
	assert.True(t, utils.IsBadRequest(err))
	assert.EqualError(t, err, "Field with id "+missingID+" does not exist")
}

func TestDataRowUpdate_MissingRow(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "rows@example.com")
	project := createTestProject(t, owner.ID)
	service := NewDataRowService()

	row, err := service.Update(project.ID, owner.ID, "33333333-3333-3333-3333-333333333333", dto.DataRowRequest{})
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestDataRowRoundTrip(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "rows@example.com")
	project := createTestProject(t, owner.ID)
	service := NewDataRowService()

	fields := []models.Field{
		createTestField(t, owner.ID, "firstname", models.FieldTypeText),
		createTestField(t, owner.ID, "lastname", models.FieldTypeText),
		createTestField(t, owner.ID, "phone", models.FieldTypePhone),
	}
	entries := []dto.DataRowFieldEntry{
		{FieldID: fields[2].ID, Value: "0612345678"},
		{FieldID: fields[0].ID, Value: "Eric"},
		{FieldID: fields[1].ID, Value: "Moth"},
	}

	row, err := service.Create(project.ID, owner.ID, dto.DataRowRequest{Fields: entries})
	require.NoError(t, err)

	// Reading the row back yields the same set of (fieldId, value)
	// pairs regardless of insertion order
	read, err := service.FindOne(project.ID, owner.ID, row.ID)
	require.NoError(t, err)
	require.NotNil(t, read)

	got := map[string]string{}
	for _, drf := range read.Fields {
		got[drf.FieldID] = drf.Value
	}
	want := map[string]string{}
	for _, entry := range entries {
		want[entry.FieldID] = entry.Value.(string)
	}
	assert.Equal(t, want, got)
}

func TestDataRowRemove(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "rows@example.com")
	project := createTestProject(t, owner.ID)
	field := createTestField(t, owner.ID, "firstname", models.FieldTypeText)
	service := NewDataRowService()

	row, err := service.Create(project.ID, owner.ID, dto.DataRowRequest{
		Fields: []dto.DataRowFieldEntry{{FieldID: field.ID, Value: "Eric"}},
	})
	require.NoError(t, err)

	deleted, err := service.Remove(project.ID, owner.ID, row.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = service.Remove(project.ID, owner.ID, row.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
