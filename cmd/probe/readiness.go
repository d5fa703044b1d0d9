package probe

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newReadiness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Runs the readiness probe",
		Long: `Runs the readiness probe against the local management
endpoint, exiting non-zero when the service is not ready to serve.`,
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to read verbose flag")
			}
			runProbe(probeReadiness, verbose)
		},
	}
	cmd.Flags().BoolP(verboseFlag, "v", false, "Print the probe response body")
	return cmd
}
