package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"conference/config"
	"conference/infras/otel"
	"conference/internal/domains/accommodation/model"
	bookingModel "conference/internal/domains/booking/model"
	bookingRepo "conference/internal/domains/booking/repository"
	"conference/shared/constant"
	"conference/shared/timezone"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Capacity answers how much of the accommodation pool is free. Results are never cached.
type Capacity interface {
	Available(ctx context.Context) (model.Availability, error)
	Guard(units int, now time.Time) bookingRepo.CapacityCheck
}

type serviceImpl struct {
	repo bookingRepo.Booking
	cfg  *config.Config
	otel otel.Otel
}

func New(repo bookingRepo.Booking, cfg *config.Config, otel otel.Otel) Capacity {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) Available(ctx context.Context) (res model.Availability, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Available")
	defer scope.End()
	defer scope.TraceIfError(err)

	now := timezone.Now()

	active, err := s.repo.Active(ctx, now)
	if err != nil {
		log.Error().Err(err).Msg("failed to load active bookings")

		return res, fmt.Errorf("failed to load active bookings: %w", err)
	}

	return model.Calculate(active, s.cfg.App.Capacity.Total, now), nil
}

// Guard builds the check run inside the reservation transaction.
func (s *serviceImpl) Guard(units int, now time.Time) bookingRepo.CapacityCheck {
	return func(active []bookingModel.Booking) error {
		availability := model.Calculate(active, s.cfg.App.Capacity.Total, now)
		if availability.Fits(units) {
			return nil
		}

		log.Warn().
			Int("available", availability.Available).
			Int("requested", units).
			Msg("reservation refused, capacity exhausted")

		return &model.CapacityExceededError{Available: availability.Available, Requested: units}
	}
}
