// Package command holds shared helpers for cobra subcommands.
package command

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/iqlusioninc/crates-sub000/internal/api"
	"github.com/iqlusioninc/crates-sub000/internal/api/router"
	"github.com/iqlusioninc/crates-sub000/internal/config"
)

// NewSubcommandGroup returns a command that only dispatches to its
// subcommands, printing help when invoked bare.
func NewSubcommandGroup(name string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use: name,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				log.Fatal().Err(err).Msg("Failed to print help")
			}
		},
	}
	cmd.AddCommand(subcommands...)
	return cmd
}

// WithServer initializes a fully wired server, runs f against it and
// tears the server down again. Intended for one-shot CLI tasks that
// need the service's components without the HTTP listener.
func WithServer(ctx context.Context, cfg config.Server, f func(ctx context.Context, s *api.Server) error) error {
	s, err := api.InitNewServer(cfg)
	if err != nil {
		return err
	}
	router.Init(s)

	defer func() {
		for _, err := range s.Shutdown(ctx) {
			log.Error().Err(err).Msg("Error during server shutdown")
		}
	}()

	return f(ctx, s)
}
