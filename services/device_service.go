package services

import (
	"errors"

	"github.com/rowcast-simple/models"
	"github.com/rowcast-simple/repositories"
	"gorm.io/gorm"
)

// DeviceService handles business logic for devices
type DeviceService struct {
	deviceRepo *repositories.DeviceRepository
}

// NewDeviceService creates a new device service instance
func NewDeviceService() *DeviceService {
	return &DeviceService{
		deviceRepo: repositories.NewDeviceRepository(),
	}
}

// ListDevices retrieves all devices of an owner
func (s *DeviceService) ListDevices(ownerID string) ([]models.Device, error) {
	return s.deviceRepo.FindByOwnerID(ownerID)
}

// GetDevice retrieves a device of an owner. Returns nil when the device
// does not exist.
func (s *DeviceService) GetDevice(id string, ownerID string) (*models.Device, error) {
	device, err := s.deviceRepo.FindByID(id, ownerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &device, nil
}

// CreateDevice registers a new notification endpoint for an owner
func (s *DeviceService) CreateDevice(ownerID string, name string, deviceID string, accessToken string) (models.Device, error) {
	device := models.Device{
		Name:        name,
		Token:       deviceID,
		AccessToken: accessToken,
		OwnerID:     ownerID,
	}
	return s.deviceRepo.Create(device)
}

// UpdateDevice replaces a device's name, recipient token and credential.
// Returns nil when the device does not exist.
func (s *DeviceService) UpdateDevice(id string, ownerID string, name string, deviceID string, accessToken string) (*models.Device, error) {
	device, err := s.deviceRepo.FindByID(id, ownerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	device.Name = name
	device.Token = deviceID
	device.AccessToken = accessToken

	if err := s.deviceRepo.Update(device); err != nil {
		return nil, err
	}
	return &device, nil
}

// DeleteDevice removes a device of an owner, reporting whether anything
// was deleted
func (s *DeviceService) DeleteDevice(id string, ownerID string) (bool, error) {
	affected, err := s.deviceRepo.Delete(id, ownerID)
	return affected > 0, err
}
