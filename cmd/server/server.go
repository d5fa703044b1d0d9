// Package server implements the long-running HTTP service command.
package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/iqlusioninc/crates-sub000/internal/api"
	"github.com/iqlusioninc/crates-sub000/internal/api/router"
	"github.com/iqlusioninc/crates-sub000/internal/config"
)

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Starts the HTTP key derivation service",
		Run: func(cmd *cobra.Command, _ []string) {
			cfg := config.DefaultServiceConfigFromEnv()
			initLogger(cfg)
			runServer(cfg)
		},
	}
}

func initLogger(cfg config.Server) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(cfg.Logger.Level)
	if cfg.Logger.PrettyPrintConsole {
		log.Logger = log.Output(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.TimeFormat = "15:04:05"
		}))
	}
}

func runServer(cfg config.Server) {
	s, err := api.InitNewServer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server")
	}
	router.Init(s)

	go func() {
		if err := s.Start(); err != nil {
			log.Warn().Err(err).Msg("Server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, err := range s.Shutdown(ctx) {
		log.Error().Err(err).Msg("Error during server shutdown")
	}
}
