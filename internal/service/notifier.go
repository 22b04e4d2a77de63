package service

import (
	"context"
	"errors"
)

// ErrDeliveryFailed is returned by Notifier implementations when the
// provider rejects a message. Callers of Close never see it; delivery
// failures are logged and swallowed.
var ErrDeliveryFailed = errors.New("notification delivery failed")

// Notifier is the outbound messaging collaborator. The production
// implementation sends WhatsApp messages through Twilio.
type Notifier interface {
	Send(ctx context.Context, toPhoneE164, body string) (messageID string, err error)
}
