package pipeline

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"architect-report/internal/leanix"
	"architect-report/internal/report"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrSuperseded is returned by Run when a newer run started before this one finished.
var ErrSuperseded = errors.New("refresh superseded by a newer request")

// Fetcher supplies architect subscription records for a facet selection.
type Fetcher interface {
	FetchRecords(ctx context.Context, sel leanix.FacetSelection) ([]report.Record, error)
}

// Refresher owns the latest report. Every run takes a monotonic token and only
// the run holding the newest token may publish its report, so an older query
// that resolves late never replaces a fresher result.
type Refresher struct {
	ctx      context.Context
	fetcher  Fetcher
	onResult func(*report.Report)
	onError  func(error)

	seq       atomic.Uint64
	mu        sync.Mutex
	latest    atomic.Pointer[report.Report]
	debouncer *Debouncer[leanix.FacetSelection]
}

// Option configures a Refresher.
type Option func(*refresherOptions)

type refresherOptions struct {
	window   time.Duration
	onResult func(*report.Report)
	onError  func(error)
}

// WithWindow overrides DebounceWindow.
func WithWindow(d time.Duration) Option {
	return func(o *refresherOptions) { o.window = d }
}

// WithResultHandler is called with every published report.
func WithResultHandler(fn func(*report.Report)) Option {
	return func(o *refresherOptions) { o.onResult = fn }
}

// WithErrorHandler is called when a debounced run fails. Superseded runs are not reported.
func WithErrorHandler(fn func(error)) Option {
	return func(o *refresherOptions) { o.onError = fn }
}

// NewRefresher creates a refresher; debounced runs use ctx.
func NewRefresher(ctx context.Context, fetcher Fetcher, opts ...Option) *Refresher {
	o := refresherOptions{window: DebounceWindow}
	for _, opt := range opts {
		opt(&o)
	}

	r := &Refresher{
		ctx:      ctx,
		fetcher:  fetcher,
		onResult: o.onResult,
		onError:  o.onError,
	}
	r.debouncer = NewDebouncer(o.window, func(sel leanix.FacetSelection) {
		if _, err := r.Run(r.ctx, sel); err != nil && !errors.Is(err, ErrSuperseded) && r.onError != nil {
			r.onError(err)
		}
	})
	return r
}

// Trigger schedules a debounced run for sel. Only the last selection of a burst is used.
func (r *Refresher) Trigger(sel leanix.FacetSelection) {
	r.debouncer.Trigger(sel)
}

// Run queries, aggregates and projects immediately, then publishes the report
// unless a newer run has started meanwhile.
func (r *Refresher) Run(ctx context.Context, sel leanix.FacetSelection) (*report.Report, error) {
	token := r.seq.Add(1)
	runID := uuid.NewString()
	logger := log.With().Str("run", runID).Uint64("token", token).Logger()

	start := time.Now()
	logger.Debug().Int("facets", len(sel.Facets)).Msg("Refresh started")

	records, err := r.fetcher.FetchRecords(ctx, sel)
	if err != nil {
		logger.Error().Err(err).Msg("Refresh failed")
		return nil, err
	}
	rep := report.Build(records)

	r.mu.Lock()
	defer r.mu.Unlock()

	if latest := r.seq.Load(); latest != token {
		logger.Info().Uint64("latest", latest).Msg("Discarding superseded refresh")
		return nil, ErrSuperseded
	}
	r.latest.Store(rep)

	logger.Info().
		Int("records", len(records)).
		Int("people", len(rep.People)).
		Int("levels", len(rep.Levels)).
		Dur("elapsed", time.Since(start)).
		Msg("Report refreshed")

	if r.onResult != nil {
		r.onResult(rep)
	}
	return rep, nil
}

// Latest returns the most recently published report, or nil.
func (r *Refresher) Latest() *report.Report {
	return r.latest.Load()
}

// Stop cancels a pending debounced run and waits for running ones.
func (r *Refresher) Stop() {
	r.debouncer.Stop()
}
