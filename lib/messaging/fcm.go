package messaging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const fcmEndpoint = "https://fcm.googleapis.com/v1/projects/%s/messages:send"

// FCMClient sends data messages through the Firebase Cloud Messaging HTTP
// v1 API. The device's RecipientToken is the FCM registration token.
type FCMClient struct {
	ProjectID   string
	AccessToken string
	HTTPClient  *http.Client
}

// NewFCMClient creates an FCM client for the given Firebase project
func NewFCMClient(projectID string, accessToken string) *FCMClient {
	return &FCMClient{
		ProjectID:   projectID,
		AccessToken: accessToken,
		HTTPClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Name returns the provider name
func (c *FCMClient) Name() string {
	return "fcm"
}

type fcmMessage struct {
	Token string            `json:"token"`
	Data  map[string]string `json:"data"`
}

type fcmRequest struct {
	Message fcmMessage `json:"message"`
}

type fcmResponse struct {
	Name  string `json:"name"`
	Error *struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// Send delivers the payload as an FCM data message and returns the message
// name assigned by Firebase
func (c *FCMClient) Send(payload Payload) (string, error) {
	body, err := json.Marshal(fcmRequest{
		Message: fcmMessage{
			Token: payload.RecipientToken,
			Data: map[string]string{
				"phone": payload.Phone,
				"body":  payload.Body,
			},
		},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf(fcmEndpoint, c.ProjectID)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fcm request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed fcmResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("fcm returned unparsable response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		provErr := &ProviderError{
			Provider: c.Name(),
			Code:     fmt.Sprintf("%d", resp.StatusCode),
			Message:  string(respBody),
		}
		if parsed.Error != nil {
			provErr.Code = parsed.Error.Status
			provErr.Message = parsed.Error.Message
		}
		return "", provErr
	}

	return parsed.Name, nil
}
