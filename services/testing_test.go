package services

import (
	"testing"

	"github.com/rowcast-simple/database"
	"github.com/rowcast-simple/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the global database handle at a fresh in-memory
// sqlite instance. A single pooled connection keeps the in-memory
// database alive for the whole test.
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	database.DB = db
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
}

func strPtr(s string) *string {
	return &s
}

func createTestUser(t *testing.T, email string) models.User {
	t.Helper()
	user := models.User{Email: email, Password: "hashed"}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func createTestField(t *testing.T, ownerID string, name string, fieldType models.FieldType, values ...string) models.Field {
	t.Helper()
	field := models.Field{Name: name, Type: fieldType, Values: values, OwnerID: ownerID}
	require.NoError(t, database.DB.Create(&field).Error)
	return field
}

func createTestDevice(t *testing.T, ownerID string) models.Device {
	t.Helper()
	device := models.Device{
		Name:        "test device",
		Token:       "device-token",
		AccessToken: "access-token",
		OwnerID:     ownerID,
	}
	require.NoError(t, database.DB.Create(&device).Error)
	return device
}
