package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	sent []Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeNotifier struct {
	texts []string
	err   error
}

func (f *fakeNotifier) Notify(_ context.Context, text string) error {
	f.texts = append(f.texts, text)
	return f.err
}

func TestContactService_Deliver(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewContactService(mailer, nil, "owner@example.com")

	err := svc.Deliver(context.Background(), models.ContactMessage{
		Name:    "Ada",
		Email:   "ada@example.com",
		Message: "<script>alert(1)</script>Hello\nthere",
	})
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)

	msg := mailer.sent[0]
	assert.Equal(t, []string{"owner@example.com"}, msg.To)
	assert.Equal(t, "ada@example.com", msg.ReplyTo)
	assert.Equal(t, "Portfolio Contact - Ada", msg.Subject)
	assert.NotContains(t, msg.HTML, "<script>")
	assert.Contains(t, msg.HTML, "Hello<br/>there")
}

func TestContactService_MissingFieldSendsNothing(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewContactService(mailer, nil, "owner@example.com")

	err := svc.Deliver(context.Background(), models.ContactMessage{Name: "Ada", Email: "  ", Message: "hi"})
	require.Error(t, err)
	assert.True(t, errs.IsValidationError(err))
	assert.Empty(t, mailer.sent)
}

func TestContactService_MailFailure(t *testing.T) {
	mailer := &fakeMailer{err: errs.NewMailDeliveryError("resend", errors.New("boom"))}
	notifier := &fakeNotifier{}
	svc := NewContactService(mailer, notifier, "owner@example.com")

	err := svc.Deliver(context.Background(), models.ContactMessage{Name: "Ada", Email: "a@b.c", Message: "hi"})
	assert.True(t, errs.IsMailDeliveryError(err))
	assert.Empty(t, notifier.texts)
}

func TestContactService_SMSFailureIsIgnored(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("twilio down")}
	svc := NewContactService(&fakeMailer{}, notifier, "owner@example.com")

	err := svc.Deliver(context.Background(), models.ContactMessage{Name: "Ada", Email: "a@b.c", Message: "hi"})
	require.NoError(t, err)
	require.Len(t, notifier.texts, 1)
	assert.Contains(t, notifier.texts[0], "Ada")
}

type fakeCreator struct {
	params *twilioApi.CreateMessageParams
}

func (f *fakeCreator) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.params = params
	return &twilioApi.ApiV2010Message{}, nil
}

func TestTwilioNotifier(t *testing.T) {
	assert.Nil(t, NewTwilioNotifier("", "token", "+1", "+2"))

	creator := &fakeCreator{}
	n := &TwilioNotifier{api: creator, from: "+15550001", to: "+15550002"}

	long := make([]byte, 200)
	for i := range long {
		long[i] = 'a'
	}
	require.NoError(t, n.Notify(context.Background(), string(long)))
	require.NotNil(t, creator.params)
	assert.Equal(t, "+15550002", *creator.params.To)
	assert.Equal(t, "+15550001", *creator.params.From)
	assert.Len(t, *creator.params.Body, 160)
}

func TestTwilioNotifier_TruncatesByRune(t *testing.T) {
	creator := &fakeCreator{}
	n := &TwilioNotifier{api: creator, from: "+15550001", to: "+15550002"}

	text := strings.Repeat("é", 200)
	require.NoError(t, n.Notify(context.Background(), text))

	body := *creator.params.Body
	assert.True(t, utf8.ValidString(body))
	assert.Equal(t, smsMaxRunes, utf8.RuneCountInString(body))
	assert.True(t, strings.HasSuffix(body, "..."))

	assert.Equal(t, "short", truncateRunes("short", smsMaxRunes))
}
