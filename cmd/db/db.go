// Package db groups the database maintenance commands.
package db

import (
	"github.com/spf13/cobra"

	"github.com/iqlusioninc/crates-sub000/internal/util/command"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("db",
		newMigrate(),
	)
}
