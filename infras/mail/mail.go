package mail

//go:generate go run go.uber.org/mock/mockgen -source=./mail.go -destination=./mocks/mail_mock.go -package=mocks

import (
	"conference/config"
	"conference/infras/otel"
	"conference/shared/constant"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	gomail "github.com/wneessen/go-mail"
)

const (
	otelAttrRecipients = "recipients"
	otelAttrSubject    = "subject"

	defaultPort = 587
)

var (
	ErrNotConfigured = errors.New("smtp is not configured")
	ErrNoRecipients  = errors.New("mail has no recipients")
)

type Message struct {
	To      []string
	Subject string
	Body    string
	HTML    bool
}

// Build turns the message into a go-mail message sent from the given address.
func (m Message) Build(from string) (*gomail.Msg, error) {
	if len(m.To) == 0 {
		return nil, ErrNoRecipients
	}

	msg := gomail.NewMsg()

	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", from, err)
	}

	if err := msg.To(m.To...); err != nil {
		return nil, fmt.Errorf("invalid recipients: %w", err)
	}

	contentType := gomail.TypeTextPlain
	if m.HTML {
		contentType = gomail.TypeTextHTML
	}

	msg.Subject(m.Subject)
	msg.SetDate()
	msg.SetBodyString(contentType, m.Body)

	return msg, nil
}

type Mailer interface {
	Send(ctx context.Context, msg Message) (err error)
}

type smtpMailer struct {
	config *config.Config
	otel   otel.Otel
}

func New(config *config.Config, otel otel.Otel) Mailer {
	if config.External.SMTP.Host == constant.Empty || config.External.SMTP.Username == constant.Empty {
		log.Warn().Msg("SMTP credentials are not set, confirmation emails will not be sent")
	}

	return &smtpMailer{
		config: config,
		otel:   otel,
	}
}

func (m *smtpMailer) sender() string {
	if m.config.External.SMTP.Sender != constant.Empty {
		return m.config.External.SMTP.Sender
	}

	return m.config.External.SMTP.Username
}

func (m *smtpMailer) client() (*gomail.Client, error) {
	smtpCfg := m.config.External.SMTP

	port := defaultPort
	if smtpCfg.Port != constant.Empty {
		parsed, err := strconv.Atoi(smtpCfg.Port)
		if err != nil {
			return nil, fmt.Errorf("invalid smtp port %q: %w", smtpCfg.Port, err)
		}

		port = parsed
	}

	client, err := gomail.NewClient(smtpCfg.Host,
		gomail.WithPort(port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(smtpCfg.Username),
		gomail.WithPassword(smtpCfg.Password),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return client, nil
}

// Send delivers msg over SMTP, upgrading to TLS when the server offers it. The context deadline
// bounds the whole conversation with the server.
func (m *smtpMailer) Send(ctx context.Context, msg Message) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelMailScopeName, constant.OtelMailScopeName+".Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	smtpCfg := m.config.External.SMTP
	if smtpCfg.Host == constant.Empty || smtpCfg.Username == constant.Empty {
		return ErrNotConfigured
	}

	scope.SetAttributes(map[string]any{
		otelAttrRecipients: strings.Join(msg.To, ","),
		otelAttrSubject:    msg.Subject,
	})

	built, err := msg.Build(m.sender())
	if err != nil {
		return err
	}

	client, err := m.client()
	if err != nil {
		return err
	}

	if err = client.DialAndSendWithContext(ctx, built); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}
