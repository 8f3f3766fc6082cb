package app

import (
	"conference/infras/otel"
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

const otelShutdownTimeout = 5 * time.Second

// Server serves requests until its context ends.
type Server interface {
	Serve(ctx context.Context) error
}

// Scheduler runs background work between Start and Stop.
type Scheduler interface {
	Start(ctx context.Context)
	Stop()
}

// App runs the HTTP server with the hold expiry sweeper beside it.
type App struct {
	server  Server
	sweeper Scheduler
	otel    otel.Otel
}

func New(server Server, sweeper Scheduler, otel otel.Otel) *App {
	return &App{
		server:  server,
		sweeper: sweeper,
		otel:    otel,
	}
}

// Run blocks until ctx is cancelled and the server has drained. The sweeper is stopped after the
// server so that holds keep expiring while in-flight uploads finish.
func (a *App) Run(ctx context.Context) error {
	a.sweeper.Start(ctx)

	serveErr := a.server.Serve(ctx)

	a.sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer cancel()

	otelErr := a.otel.Shutdown(shutdownCtx)
	if otelErr != nil {
		log.Error().Err(otelErr).Msg("failed to flush traces")
	}

	return errors.Join(serveErr, otelErr)
}
