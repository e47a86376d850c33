package commands

import (
	"fmt"
	"os"
	"strconv"

	"architect-report/internal/navigation"
	"architect-report/internal/report"

	"github.com/spf13/cobra"
)

var printOnly bool

var navigateCmd = &cobra.Command{
	Use:   "navigate <index>",
	Short: "Open the inventory filtered to the fact sheets of the architect at index",
	Long: `Resolves index against the last rendered report (the order of the chart's x-axis)
and opens the LeanIX inventory with that architect's subscriptions as facet filter.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: %q", report.ErrInvalidPerson, args[0])
		}

		rep, err := report.LoadSnapshot(cfg.CacheDir)
		if err != nil {
			return err
		}

		nav := &navigation.BrowserNavigator{
			BaseURL:   cfg.LeanIX.BaseURL,
			Workspace: cfg.LeanIX.Workspace,
			PrintOnly: printOnly || !cfg.OpenBrowser,
			Out:       os.Stdout,
		}
		_, err = navigation.ToPerson(cmd.Context(), nav, rep, index)
		return err
	},
}

func init() {
	navigateCmd.Flags().BoolVar(&printOnly, "print", false, "print the inventory URL instead of opening a browser")
	rootCmd.AddCommand(navigateCmd)
}
