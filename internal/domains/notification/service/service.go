package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"conference/config"
	"conference/infras/kafka"
	"conference/infras/mail"
	"conference/infras/otel"
	bookingModel "conference/internal/domains/booking/model"
	"conference/internal/domains/notification/model"
	"conference/shared/constant"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultTimeout = 10 * time.Second

var ErrNotificationFailed = errors.New("notification could not be sent")

type Notifier interface {
	BookingConfirmed(ctx context.Context, booking bookingModel.Booking, guests []bookingModel.Guest) error
	Publish(ctx context.Context, events ...model.Event) error
}

type serviceImpl struct {
	cfg    *config.Config
	mailer mail.Mailer
	kafka  kafka.Client
	otel   otel.Otel
}

func New(cfg *config.Config, mailer mail.Mailer, kafka kafka.Client, otel otel.Otel) Notifier {
	return &serviceImpl{
		cfg:    cfg,
		mailer: mailer,
		kafka:  kafka,
		otel:   otel,
	}
}

func (s *serviceImpl) timeout() time.Duration {
	if s.cfg.App.Notification.TimeoutSeconds <= 0 {
		return defaultTimeout
	}

	return time.Duration(s.cfg.App.Notification.TimeoutSeconds) * time.Second
}

// BookingConfirmed emails the lawyer and waits at most the configured timeout. The send keeps
// running in the background after a timeout; its outcome is only logged.
func (s *serviceImpl) BookingConfirmed(ctx context.Context, booking bookingModel.Booking, guests []bookingModel.Guest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BookingConfirmed")
	defer scope.End()
	defer scope.TraceIfError(err)

	data := model.Confirmation{
		Conference: s.cfg.App.Conference,
		Booking:    booking,
		Guests:     guests,
	}

	body, err := data.Render()
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to render confirmation email")

		return fmt.Errorf("%w: %w", ErrNotificationFailed, err)
	}

	msg := mail.Message{
		To:      []string{booking.LawyerEmail},
		Subject: data.Subject(),
		Body:    body,
		HTML:    true,
	}

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout())
	result := make(chan error, 1)

	go func() {
		defer cancel()

		result <- s.mailer.Send(sendCtx, msg)
	}()

	select {
	case err = <-result:
	case <-sendCtx.Done():
		err = sendCtx.Err()
	}

	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to send confirmation email")

		return fmt.Errorf("%w: %w", ErrNotificationFailed, err)
	}

	log.Info().Str("booking_id", booking.ID).Msg("confirmation email sent")

	return nil
}

// Publish sends lifecycle events. A disabled broker is not an error.
func (s *serviceImpl) Publish(ctx context.Context, events ...model.Event) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer scope.TraceIfError(err)

	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		messages = append(messages, kafka.Message{Key: event.BookingID, Value: event})
	}

	err = s.kafka.SendMessages(ctx, s.cfg.Kafka.Topic, messages...)
	if errors.Is(err, kafka.ErrDisabled) {
		log.Debug().Int("events", len(events)).Msg("event publishing disabled, skipping")

		return nil
	}

	if err != nil {
		log.Error().Err(err).Int("events", len(events)).Msg("failed to publish booking events")

		return fmt.Errorf("failed to publish booking events: %w", err)
	}

	return nil
}
