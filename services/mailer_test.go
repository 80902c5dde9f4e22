package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResend(t *testing.T, handler http.HandlerFunc) *ResendMailer {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	m := NewResendMailer("re_test", "Portfolio <site@example.com>")
	m.endpoint = srv.URL
	m.client = srv.Client()
	return m
}

func TestResendMailer_Send(t *testing.T) {
	var got ResendEmailRequest
	m := newTestResend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"email_1"}`))
	})

	err := m.Send(context.Background(), Message{
		To:      []string{"owner@example.com"},
		ReplyTo: "visitor@example.com",
		Subject: "Portfolio Contact - Ada",
		HTML:    "<p>hi</p>",
		Text:    "hi",
	})
	require.NoError(t, err)
	assert.Equal(t, "Portfolio <site@example.com>", got.From)
	assert.Equal(t, []string{"owner@example.com"}, got.To)
	assert.Equal(t, "visitor@example.com", got.ReplyTo)
	assert.Equal(t, "Portfolio Contact - Ada", got.Subject)
}

func TestResendMailer_APIError(t *testing.T) {
	m := newTestResend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from address"}`))
	})

	err := m.Send(context.Background(), Message{To: []string{"owner@example.com"}})
	require.Error(t, err)
	assert.True(t, errs.IsMailDeliveryError(err))

	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.GetFullError(), "invalid from address")
}

func TestResendMailer_NotConfigured(t *testing.T) {
	m := NewResendMailer("", "")
	assert.False(t, m.Configured())
	assert.True(t, errs.IsMailDeliveryError(m.Send(context.Background(), Message{To: []string{"x@example.com"}})))
}
