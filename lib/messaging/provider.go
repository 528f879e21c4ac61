// Package messaging contains the notification provider clients used by the
// message worker to deliver interpolated messages to a device.
package messaging

import (
	"errors"
	"fmt"
)

// Payload binds one message to its recipient device
type Payload struct {
	// RecipientToken is the provider-specific device token
	RecipientToken string `json:"recipientToken"`
	// AccessToken is the provider credential attached to the device
	AccessToken string `json:"accessToken"`
	// Phone is the phone value of the data row the message was built from
	Phone string `json:"phone"`
	// Body is the interpolated message text
	Body string `json:"body"`
}

// Provider delivers a payload to a device and returns a provider-specific
// delivery reference
type Provider interface {
	Name() string
	Send(payload Payload) (string, error)
}

// ProviderError is the distinguished error type returned when the provider
// itself rejected a payload, as opposed to a transport failure
type ProviderError struct {
	Provider string
	Code     string
	Message  string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Provider, e.Message, e.Code)
}

// AsProviderError extracts a ProviderError from err if there is one
func AsProviderError(err error) (*ProviderError, bool) {
	var target *ProviderError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
