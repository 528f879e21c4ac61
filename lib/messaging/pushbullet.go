package messaging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const pushBulletURL = "https://api.pushbullet.com/v2/texts"

// PushBulletClient sends SMS texts through the PushBullet texts API. This
// is the legacy provider; the device's RecipientToken is the target device
// iden and its AccessToken authenticates the request.
type PushBulletClient struct {
	HTTPClient *http.Client
}

// NewPushBulletClient creates a PushBullet client
func NewPushBulletClient() *PushBulletClient {
	return &PushBulletClient{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Name returns the provider name
func (c *PushBulletClient) Name() string {
	return "pushbullet"
}

type pushBulletText struct {
	Addresses        []string `json:"addresses"`
	Message          string   `json:"message"`
	TargetDeviceIden string   `json:"target_device_iden"`
}

type pushBulletRequest struct {
	Data pushBulletText `json:"data"`
}

// Send delivers the payload as a PushBullet text and returns the response
// body
func (c *PushBulletClient) Send(payload Payload) (string, error) {
	body, err := json.Marshal(pushBulletRequest{
		Data: pushBulletText{
			Addresses:        []string{payload.Phone},
			Message:          payload.Body,
			TargetDeviceIden: payload.RecipientToken,
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, pushBulletURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Access-Token", payload.AccessToken)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("pushbullet request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ProviderError{
			Provider: c.Name(),
			Code:     fmt.Sprintf("%d", resp.StatusCode),
			Message:  string(respBody),
		}
	}

	return string(respBody), nil
}
