package notification

import (
	"errors"
	"time"
)

// Domain errors
var ErrInvalidToken = errors.New("device token is required")

// DeviceToken is a registered push target for reminders
type DeviceToken struct {
	ID        int64     `json:"id"`
	Token     string    `json:"token"`
	Platform  string    `json:"platform"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateDeviceTokenParams contains parameters for registering a device token
type CreateDeviceTokenParams struct {
	Token    string
	Platform string
}

// Validate validates the device token parameters
func (p CreateDeviceTokenParams) Validate() error {
	if p.Token == "" {
		return ErrInvalidToken
	}
	return nil
}

// Message is a push payload handed to the messenger
type Message struct {
	Title string
	Body  string
	Data  map[string]string
}
