package probe

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/iqlusioninc/crates-sub000/internal/config"
)

func newLiveness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "liveness",
		Short: "Runs the liveness probe",
		Long: `Runs the liveness probe against the local management
endpoint, exiting non-zero when the service reports unhealthy.`,
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to read verbose flag")
			}
			runProbe(probeLiveness, verbose)
		},
	}
	cmd.Flags().BoolP(verboseFlag, "v", false, "Print the probe response body")
	return cmd
}

type probeKind string

const (
	probeLiveness  probeKind = "healthy"
	probeReadiness probeKind = "ready"
)

func runProbe(kind probeKind, verbose bool) {
	cfg := config.DefaultServiceConfigFromEnv()

	endpoint := fmt.Sprintf("http://localhost%s/-/%s", cfg.Echo.ListenAddress, kind)
	timeout := cfg.Mgmt.ReadinessTimeout
	if kind == probeLiveness {
		endpoint += "?mgmt-secret=" + url.QueryEscape(cfg.Mgmt.Secret)
		timeout = cfg.Mgmt.LivenessTimeout
	}

	client := &http.Client{Timeout: timeout}
	res, err := client.Get(endpoint)
	if err != nil {
		log.Fatal().Err(err).Str("probe", string(kind)).Msg("Probe request failed")
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		log.Fatal().Err(err).Str("probe", string(kind)).Msg("Failed to read probe response")
	}

	if verbose {
		fmt.Fprintln(os.Stdout, string(body))
	}

	if res.StatusCode != http.StatusOK {
		log.Fatal().Int("status", res.StatusCode).Str("probe", string(kind)).Msg("Probe failed")
	}
}
