package sms

import (
	"context"
	"errors"
	"fmt"

	"github.com/twilio/twilio-go"
	twclient "github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"yummiz/internal/config"
)

// Twilio error codes worth distinguishing for the client.
const (
	twilioCodeAuthFailed    = 20003
	twilioCodeInvalidNumber = 21211
)

type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender(cfg config.TwilioConfig) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &TwilioSender{client: client, from: cfg.FromNumber}
}

func (s *TwilioSender) Send(_ context.Context, to, body string) error {
	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		var restErr *twclient.TwilioRestError
		if errors.As(err, &restErr) {
			switch restErr.Code {
			case twilioCodeAuthFailed:
				return ErrAuthFailed
			case twilioCodeInvalidNumber:
				return ErrInvalidNumber
			}
		}
		return fmt.Errorf("twilio send failed: %w", err)
	}
	return nil
}
