package mail_test

import (
	"bytes"
	"conference/config"
	"conference/infras/mail"
	otelMocks "conference/infras/otel/mocks"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_Build(t *testing.T) {
	msg := mail.Message{
		To:      []string{"a@example.com", "b@example.com"},
		Subject: "Booking Confirmed",
		Body:    "<p>hello</p>",
		HTML:    true,
	}

	built, err := msg.Build("noreply@example.com")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = built.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "noreply@example.com")
	assert.Contains(t, raw, "a@example.com")
	assert.Contains(t, raw, "b@example.com")
	assert.Contains(t, raw, "Subject: Booking Confirmed")
	assert.Contains(t, raw, "text/html")
	assert.Contains(t, raw, "<p>hello</p>")
}

func TestMessage_BuildRejects(t *testing.T) {
	_, err := mail.Message{}.Build("noreply@example.com")
	assert.ErrorIs(t, err, mail.ErrNoRecipients)

	_, err = mail.Message{To: []string{"a@example.com"}}.Build("not an address")
	assert.Error(t, err)
}

func TestSmtpMailer_NotConfigured(t *testing.T) {
	mailer := mail.New(&config.Config{}, otelMocks.NewOtel())

	err := mailer.Send(context.Background(), mail.Message{To: []string{"a@example.com"}})
	assert.ErrorIs(t, err, mail.ErrNotConfigured)
}

func TestSmtpMailer_InvalidPort(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.SMTP.Host = "127.0.0.1"
	cfg.External.SMTP.Port = "smtp"
	cfg.External.SMTP.Username = "user"

	err := mail.New(cfg, otelMocks.NewOtel()).Send(context.Background(), mail.Message{To: []string{"a@example.com"}})
	assert.ErrorContains(t, err, "invalid smtp port")
}

func TestSmtpMailer_UnreachableServer(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.SMTP.Host = "127.0.0.1"
	cfg.External.SMTP.Port = "1"
	cfg.External.SMTP.Username = "user"

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := mail.New(cfg, otelMocks.NewOtel()).Send(ctx, mail.Message{To: []string{"a@example.com"}})
	assert.Error(t, err)
}
