package services

import (
	"context"
	"errors"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Notifier sends a short out-of-band alert.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioNotifier texts alerts to one fixed number.
type TwilioNotifier struct {
	api  messageCreator
	from string
	to   string
}

// NewTwilioNotifier returns nil when any Twilio setting is missing.
func NewTwilioNotifier(accountSID, authToken, from, to string) *TwilioNotifier {
	if accountSID == "" || authToken == "" || from == "" || to == "" {
		return nil
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioNotifier{api: client.Api, from: from, to: to}
}

// Notify sends text, truncated to a single SMS segment.
func (n *TwilioNotifier) Notify(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return errs.NewSMSDeliveryError("twilio", err)
	}
	text = truncateRunes(text, smsMaxRunes)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(n.to)
	params.SetFrom(n.from)
	params.SetBody(text)

	msg, err := n.api.CreateMessage(params)
	if err != nil {
		return errs.NewSMSDeliveryError("twilio", err)
	}
	if msg != nil && msg.ErrorMessage != nil {
		return errs.NewSMSDeliveryError("twilio", errors.New(*msg.ErrorMessage))
	}
	return nil
}

const smsMaxRunes = 160

// truncateRunes shortens text to at most limit runes, marking the cut with an ellipsis.
func truncateRunes(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-3]) + "..."
}
