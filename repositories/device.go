package repositories

import (
	"github.com/rowcast-simple/database"
	"github.com/rowcast-simple/models"
)

// DeviceRepository handles database operations for devices
type DeviceRepository struct{}

// NewDeviceRepository creates a new device repository instance
func NewDeviceRepository() *DeviceRepository {
	return &DeviceRepository{}
}

// FindByOwnerID retrieves all devices belonging to an owner
func (r *DeviceRepository) FindByOwnerID(ownerID string) ([]models.Device, error) {
	var devices []models.Device
	result := database.DB.Where("owner_id = ?", ownerID).Find(&devices)
	return devices, result.Error
}

// FindByID retrieves a device by its ID, scoped to an owner
func (r *DeviceRepository) FindByID(id string, ownerID string) (models.Device, error) {
	var device models.Device
	result := database.DB.First(&device, "id = ? AND owner_id = ?", id, ownerID)
	return device, result.Error
}

// Create inserts a new device into the database
func (r *DeviceRepository) Create(device models.Device) (models.Device, error) {
	result := database.DB.Create(&device)
	return device, result.Error
}

// Update modifies an existing device
func (r *DeviceRepository) Update(device models.Device) error {
	result := database.DB.Save(&device)
	return result.Error
}

// Delete removes a device belonging to an owner, returning the number of
// deleted records
func (r *DeviceRepository) Delete(id string, ownerID string) (int64, error) {
	result := database.DB.Where("owner_id = ?", ownerID).Delete(&models.Device{}, "id = ?", id)
	return result.RowsAffected, result.Error
}
