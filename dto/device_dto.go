package dto

// CreateDeviceRequest represents the body for registering a device
type CreateDeviceRequest struct {
	Name        string `json:"name" binding:"required"`
	DeviceID    string `json:"deviceId" binding:"required"`
	AccessToken string `json:"accessToken" binding:"required"`
}

// UpdateDeviceRequest represents the body for updating a device
type UpdateDeviceRequest struct {
	Name        string `json:"name" binding:"required"`
	DeviceID    string `json:"deviceId" binding:"required"`
	AccessToken string `json:"accessToken" binding:"required"`
}
