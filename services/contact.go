package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog/log"
)

// ContactService mails contact-form submissions to the site owner.
type ContactService struct {
	mailer    Mailer
	notifier  Notifier
	recipient string
	policy    *bluemonday.Policy
}

// NewContactService wires the mailer and an optional SMS notifier, which may be nil.
func NewContactService(mailer Mailer, notifier Notifier, recipient string) *ContactService {
	return &ContactService{
		mailer:    mailer,
		notifier:  notifier,
		recipient: recipient,
		policy:    bluemonday.StrictPolicy(),
	}
}

// Deliver validates msg and sends it. Nothing is sent when a field is missing.
func (s *ContactService) Deliver(ctx context.Context, msg models.ContactMessage) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Message = strings.TrimSpace(msg.Message)

	if err := msg.Validate(); err != nil {
		return errs.NewValidationError("payload", "All fields required")
	}

	if err := s.mailer.Send(ctx, s.compose(msg)); err != nil {
		return err
	}

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, fmt.Sprintf("Portfolio contact from %s <%s>: %s", msg.Name, msg.Email, msg.Message)); err != nil {
			log.Warn().Err(err).Msg("contact SMS notification failed")
		}
	}
	return nil
}

func (s *ContactService) compose(msg models.ContactMessage) Message {
	name := s.policy.Sanitize(msg.Name)
	email := s.policy.Sanitize(msg.Email)
	body := strings.ReplaceAll(s.policy.Sanitize(msg.Message), "\n", "<br/>")

	html := fmt.Sprintf(`<div style="font-family:Arial,Helvetica,sans-serif;max-width:600px;margin:0 auto;">
  <h2 style="margin:0 0 12px;">New Contact Message</h2>
  <p><b>Name:</b> %s</p>
  <p><b>Email:</b> %s</p>
  <div style="border:1px solid #1e293b;border-radius:10px;padding:16px;">%s</div>
  <p style="color:#94a3b8;font-size:12px;">Sent from your portfolio contact form. Reply directly to respond.</p>
</div>`, name, email, body)

	return Message{
		To:      []string{s.recipient},
		ReplyTo: msg.Email,
		Subject: "Portfolio Contact - " + msg.Name,
		HTML:    html,
		Text:    msg.Message,
	}
}
