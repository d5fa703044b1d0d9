package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"

	"github.com/iqlusioninc/crates-sub000/cmd/db"
	"github.com/iqlusioninc/crates-sub000/cmd/derive"
	"github.com/iqlusioninc/crates-sub000/cmd/probe"
	"github.com/iqlusioninc/crates-sub000/cmd/server"
)

func main() {
	// Local overrides only, the file is absent in deployed containers.
	_ = gotenv.Load(".env.local")

	rootCmd := &cobra.Command{
		Use:   "hdwallet-service",
		Short: "Hierarchical deterministic wallet key service",
	}

	rootCmd.AddCommand(
		server.New(),
		db.New(),
		probe.New(),
		derive.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}
