package sweeper

import (
	"conference/config"
	"conference/infras/otel"
	bookingService "conference/internal/domains/booking/service"
	"conference/shared/constant"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultInterval = 10 * time.Second

// Sweeper cancels lapsed pending holds on a fixed interval so their capacity is released even
// when nobody revisits the booking.
type Sweeper struct {
	bookings bookingService.Booking
	otel     otel.Otel
	interval time.Duration

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func New(bookings bookingService.Booking, cfg *config.Config, otel otel.Otel) *Sweeper {
	interval := time.Duration(cfg.App.Sweeper.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = defaultInterval
	}

	return &Sweeper{
		bookings: bookings,
		otel:     otel,
		interval: interval,
	}
}

// Start launches the loop and returns immediately. Only the first call starts a loop.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		log.Warn().Msg("expiry sweeper already started")

		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.started = true

	go s.loop(ctx, s.done)

	log.Info().Dur("interval", s.interval).Msg("expiry sweeper started")
}

// Stop cancels the loop and waits for the sweep in flight to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done
}

func (s *Sweeper) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("expiry sweeper stopped")

			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Sweeper) tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("expiry sweep panicked")
		}
	}()

	if _, err := s.RunOnce(ctx); err != nil {
		log.Error().Err(err).Msg("expiry sweep failed, retrying next interval")
	}
}

// RunOnce performs a single sweep and reports how many holds it cancelled.
func (s *Sweeper) RunOnce(ctx context.Context) (count int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelSchedulerScopeName, constant.OtelSchedulerScopeName+".RunOnce")
	defer scope.End()
	defer scope.TraceIfError(err)

	count, err = s.bookings.CancelExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired bookings: %w", err)
	}

	if count > 0 {
		log.Info().Int("cancelled", count).Msg("expiry sweep released capacity")
	}

	return count, nil
}
