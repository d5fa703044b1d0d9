// Package probe implements the readiness and liveness CLI probes used
// by container orchestration.
package probe

import (
	"github.com/spf13/cobra"

	"github.com/iqlusioninc/crates-sub000/internal/util/command"
)

const (
	verboseFlag string = "verbose"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("probe",
		newLiveness(),
		newReadiness(),
	)
}
