package db

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/iqlusioninc/crates-sub000/internal/config"
	"github.com/iqlusioninc/crates-sub000/internal/infra/storage"
)

func newMigrate() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Applies the metadata schema",
		Run: func(cmd *cobra.Command, _ []string) {
			cfg := config.DefaultServiceConfigFromEnv()

			db, err := sql.Open("postgres", cfg.Database.ConnectionString())
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to open database")
			}
			defer db.Close()

			ctx := context.Background()
			if err := storage.NewPostgreSQLStore(db).EnsureSchema(ctx); err != nil {
				log.Fatal().Err(err).Msg("Failed to apply schema")
			}

			log.Info().Msg("Schema is up to date")
		},
	}
}
