package commands

import (
	"context"
	"fmt"
	"os"

	"architect-report/internal/leanix"
	"architect-report/internal/navigation"
	"architect-report/internal/pipeline"
	"architect-report/internal/report"
	"architect-report/internal/visuals"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	facetsFile string
	formats    []string
	outDir     string
	title      string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Query the inventory once and render the completion chart",
	RunE: func(cmd *cobra.Command, args []string) error {
		sel, err := selection()
		if err != nil {
			return err
		}

		refresher := pipeline.NewRefresher(cmd.Context(), newInventory())
		defer refresher.Stop()

		rep, err := refresher.Run(cmd.Context(), sel)
		if err != nil {
			return err
		}
		return publish(cmd.Context(), rep)
	},
}

func init() {
	addOutputFlags(reportCmd)
	rootCmd.AddCommand(reportCmd)
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&facetsFile, "facets", "", "JSON facet selection file (overrides the report settings)")
	cmd.Flags().StringSliceVar(&formats, "format", nil, "output formats: mermaid, json, html, xlsx")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory; Mermaid goes to stdout when empty")
	cmd.Flags().StringVar(&title, "title", "", "chart title")
}

func newInventory() *leanix.Inventory {
	return leanix.NewInventory(leanix.NewClient(cfg.LeanIX), cfg.LeanIX.PageSize, newIndicator())
}

// selection returns the facet selection from --facets, falling back to the report settings.
func selection() (leanix.FacetSelection, error) {
	if facetsFile != "" {
		return leanix.LoadSelection(facetsFile)
	}
	return cfg.Report.DefaultSelection(), nil
}

func renderOptions(rep *report.Report) visuals.Options {
	opts := visuals.Options{Title: title}
	if opts.Title == "" {
		opts.Title = cfg.Report.Title
	}
	if opts.Title == "" {
		opts.Title = visuals.DefaultTitle
	}

	if cfg.LeanIX.BaseURL == "" {
		return opts
	}
	opts.Links = make([]string, len(rep.People))
	for i, p := range rep.People {
		link, err := navigation.InventoryURL(cfg.LeanIX.BaseURL, cfg.LeanIX.Workspace, leanix.SubscriptionFilters(p.ID))
		if err != nil {
			log.Warn().Err(err).Msg("Cannot build inventory links")
			return visuals.Options{Title: opts.Title}
		}
		opts.Links[i] = link
	}
	return opts
}

// publish stores the snapshot used by navigate and writes the configured outputs.
func publish(ctx context.Context, rep *report.Report) error {
	if err := report.SaveSnapshot(cfg.CacheDir, rep); err != nil {
		log.Warn().Err(err).Msg("Failed to save report snapshot; navigate will use the previous one")
	}

	dir := outDir
	if dir == "" {
		dir = cfg.Report.OutputDir
	}
	opts := renderOptions(rep)

	if dir == "" {
		data, err := visuals.Render(visuals.FormatMermaid, rep, opts)
		if err != nil {
			return err
		}
		if len(data) == 0 {
			fmt.Fprintln(os.Stdout, "No architect subscriptions found.")
			return nil
		}
		_, err = fmt.Fprintln(os.Stdout, string(data))
		return err
	}

	requested := formats
	if len(requested) == 0 {
		requested = cfg.Report.Formats
	}
	if len(requested) == 0 {
		requested = []string{visuals.FormatHTML}
	}
	parsed, err := visuals.ParseFormats(requested)
	if err != nil {
		return err
	}

	paths, err := visuals.RenderAll(ctx, dir, rep, parsed, opts)
	if err != nil {
		return err
	}
	for _, p := range paths {
		log.Info().Str("path", p).Msg("Report written")
	}
	return nil
}
