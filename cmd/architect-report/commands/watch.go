package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"architect-report/internal/leanix"
	"architect-report/internal/pipeline"
	"architect-report/internal/report"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-render the chart whenever the facet selection file changes",
	Long: `Renders once, then watches the --facets file. Bursts of changes are collapsed
into a single inventory query, and results of superseded queries are discarded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if facetsFile == "" {
			return errors.New("watch requires --facets")
		}
		return watchSelection(cmd.Context(), facetsFile)
	},
}

func init() {
	addOutputFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func watchSelection(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace files on save, so watch the directory.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	refresher := pipeline.NewRefresher(ctx, newInventory(),
		pipeline.WithResultHandler(func(rep *report.Report) {
			if err := publish(ctx, rep); err != nil {
				log.Error().Err(err).Msg("Failed to publish report")
			}
		}),
		pipeline.WithErrorHandler(func(err error) {
			log.Error().Err(err).Msg("Refresh failed")
		}),
	)
	defer refresher.Stop()

	sel, err := leanix.LoadSelection(abs)
	if err != nil {
		return err
	}
	if _, err := refresher.Run(ctx, sel); err != nil {
		log.Error().Err(err).Msg("Initial refresh failed")
	}

	log.Info().Str("path", abs).Msg("Watching facet selection")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != abs || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
					continue
				}
				sel, err := leanix.LoadSelection(abs)
				if err != nil {
					log.Warn().Err(err).Msg("Ignoring invalid facet selection")
					continue
				}
				log.Debug().Str("op", event.Op.String()).Msg("Facet selection changed")
				refresher.Trigger(sel)
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				log.Warn().Err(err).Msg("File watcher error")
			}
		}
	})
	return g.Wait()
}
