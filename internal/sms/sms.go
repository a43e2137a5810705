package sms

import (
	"context"
	"errors"
)

// Gateway-level failures the handlers translate into distinct status codes.
var (
	ErrAuthFailed    = errors.New("sms gateway authentication failed")
	ErrInvalidNumber = errors.New("invalid phone number format")
)

// Sender delivers a text message to a mobile number.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}
