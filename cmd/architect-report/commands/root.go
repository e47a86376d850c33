package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"architect-report/internal/config"
	"architect-report/internal/logging"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose    bool
	reportFile string
	cfg        *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "architect-report",
	Short: "Fact sheet completion per architect for a LeanIX workspace",
	Long: `Queries the LeanIX inventory for fact sheets with a responsible architect subscription,
groups them by architect and completion level and renders a stacked bar chart.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load(reportFile)
		if err != nil {
			return err
		}

		log.Debug().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("command", cmd.Name()).
			Msg("architect-report starting")
		return nil
	},
}

// Execute runs the root command; SIGINT and SIGTERM cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&reportFile, "config", "", "report settings file (default <DATA_PATH>/report.toml)")
}
