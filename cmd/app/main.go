package main

import (
	"conference/config"
	"conference/di"
	"conference/shared/logger"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := di.InitializeApp()

	if err := application.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server stopped with an error")
	}
}
