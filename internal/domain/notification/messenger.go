package notification

import "context"

// Messenger delivers a push message to a device token. Implemented by the
// Firebase Cloud Messaging client in infrastructure.
type Messenger interface {
	Send(ctx context.Context, token string, msg Message) error
}

// NopMessenger drops every message. Used when no push backend is configured.
type NopMessenger struct{}

func (NopMessenger) Send(ctx context.Context, token string, msg Message) error {
	return nil
}
