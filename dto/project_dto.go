package dto

// CreateProjectRequest represents the body for creating a project
type CreateProjectRequest struct {
	Name            string  `json:"name" binding:"required"`
	MessageTemplate *string `json:"messageTemplate"`
	DeviceID        string  `json:"deviceId"`
}

// UpdateProjectRequest represents the body for updating a project
type UpdateProjectRequest struct {
	Name            string  `json:"name" binding:"required"`
	MessageTemplate *string `json:"messageTemplate"`
	DeviceID        string  `json:"deviceId"`
}

// AddProjectFieldRequest represents the body for attaching a field to a
// project
type AddProjectFieldRequest struct {
	FieldID string `json:"fieldId" binding:"required"`
}

// SendMessagesResponse acknowledges that a dispatch job was enqueued.
// Delivery happens asynchronously; this status does not imply delivery.
type SendMessagesResponse struct {
	Status string `json:"status"`
}
