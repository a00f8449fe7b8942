package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/precip-summary-service/internal/domain"
	"github.com/couchcryptid/precip-summary-service/internal/observability"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

var (
	// ErrNotLoaded is returned by Current before any run has completed.
	ErrNotLoaded = errors.New("no report has been computed yet")
	// ErrRunInProgress is returned by Refresh while another run holds the
	// pipeline.
	ErrRunInProgress = errors.New("a run is already in progress")
)

// Source fetches the raw summary CSV payload.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	Name() string
}

// Publisher forwards a freshly computed report to a downstream sink.
type Publisher interface {
	Publish(ctx context.Context, report *domain.Report) error
}

// Acker is implemented by sources whose payloads must be acknowledged once
// they have been processed, such as a Kafka consumer committing offsets.
type Acker interface {
	Ack(ctx context.Context) error
}

// Publishers fans a report out to several publishers. Every publisher is
// called; their errors are joined.
type Publishers []Publisher

func (ps Publishers) Publish(ctx context.Context, report *domain.Report) error {
	var errs []error
	for _, p := range ps {
		if err := p.Publish(ctx, report); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Options tunes a Pipeline. The zero value runs once over the default year
// range with the real clock.
type Options struct {
	YearRange       domain.YearRange
	RefreshInterval time.Duration
	// Follow re-fetches as soon as a run finishes. Used with sources that
	// block until new data arrives.
	Follow bool
	Clock  clockwork.Clock
}

// Pipeline orchestrates the fetch-analyze-publish cycle and holds the
// latest report.
type Pipeline struct {
	source    Source
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock
	yearRange domain.YearRange
	refresh   time.Duration
	follow    bool

	report atomic.Pointer[domain.Report]

	// runSem admits one run at a time; waiting on it honours the caller's ctx.
	runSem chan struct{}

	errMu   sync.RWMutex
	lastErr error
}

// New creates a Pipeline. pub may be nil when reports are not forwarded.
func New(src Source, pub Publisher, logger *slog.Logger, metrics *observability.Metrics, opts Options) *Pipeline {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	yr := opts.YearRange
	if yr == (domain.YearRange{}) {
		yr = domain.DefaultYearRange
	}
	return &Pipeline{
		source:    src,
		publisher: pub,
		logger:    logger,
		metrics:   metrics,
		clock:     clock,
		yearRange: yr,
		refresh:   opts.RefreshInterval,
		follow:    opts.Follow,
		runSem:    make(chan struct{}, 1),
	}
}

// YearRange returns the range applied to every run.
func (p *Pipeline) YearRange() domain.YearRange {
	return p.yearRange
}

// Current returns the latest report. Before the first successful run it
// returns the last fetch error, or ErrNotLoaded if no run has finished.
func (p *Pipeline) Current() (*domain.Report, error) {
	if r := p.report.Load(); r != nil {
		return r, nil
	}
	if err := p.LastError(); err != nil {
		return nil, err
	}
	return nil, ErrNotLoaded
}

// LastError returns the error of the most recent run, or nil if it succeeded.
func (p *Pipeline) LastError() error {
	p.errMu.RLock()
	defer p.errMu.RUnlock()
	return p.lastErr
}

// CheckReadiness returns nil once a report is available.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	_, err := p.Current()
	return err
}

// RunOnce fetches the source, computes a new report and swaps it in. On a
// fetch failure the previous report stays in place. It waits for any run in
// progress, giving up when ctx ends.
func (p *Pipeline) RunOnce(ctx context.Context) (*domain.Report, error) {
	select {
	case p.runSem <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("wait for run in progress: %w", ctx.Err())
	}
	defer func() { <-p.runSem }()

	return p.run(ctx)
}

// Refresh runs once if the pipeline is idle and returns ErrRunInProgress
// otherwise. In follow mode the loop is usually parked in Fetch, so an
// on-demand refresh is rejected rather than queued.
func (p *Pipeline) Refresh(ctx context.Context) (*domain.Report, error) {
	select {
	case p.runSem <- struct{}{}:
	default:
		return nil, ErrRunInProgress
	}
	defer func() { <-p.runSem }()

	return p.run(ctx)
}

func (p *Pipeline) run(ctx context.Context) (*domain.Report, error) {
	start := p.clock.Now()
	p.metrics.Fetches.Inc()

	payload, err := p.source.Fetch(ctx)
	if err != nil {
		err = fmt.Errorf("fetch from %s: %w", p.source.Name(), err)
		if ctx.Err() == nil {
			p.metrics.FetchErrors.Inc()
			p.setLastErr(err)
			p.logger.Error("fetch failed", "source", p.source.Name(), "error", err)
		}
		return nil, err
	}

	analysis := domain.Analyze(string(payload), p.yearRange)
	report := &domain.Report{
		RunID:      uuid.NewString(),
		Source:     p.source.Name(),
		ComputedAt: p.clock.Now().UTC(),
		YearRange:  p.yearRange,
		Analysis:   analysis,
	}
	p.report.Store(report)
	p.setLastErr(nil)

	p.metrics.RecordsParsed.Add(float64(analysis.Parsed))
	p.metrics.RecordsRetained.Set(float64(len(analysis.Retained)))
	p.metrics.RunDuration.Observe(p.clock.Since(start).Seconds())

	p.logger.Info("report computed",
		"run_id", report.RunID,
		"source", report.Source,
		"parsed", analysis.Parsed,
		"retained", len(analysis.Retained),
	)

	if p.publisher != nil {
		if err := p.publisher.Publish(ctx, report); err != nil {
			// Leave the payload unacknowledged so it is redelivered.
			p.logger.Warn("publish report failed", "run_id", report.RunID, "error", err)
			return report, nil
		}
	}
	if acker, ok := p.source.(Acker); ok {
		if err := acker.Ack(ctx); err != nil {
			p.logger.Warn("acknowledge payload failed", "run_id", report.RunID, "error", err)
		}
	}
	return report, nil
}

// Run performs one run and then keeps the report fresh until ctx is
// cancelled: on a ticker when a refresh interval is set, or back to back in
// follow mode. Without either it returns after the first run.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started",
		"source", p.source.Name(),
		"year_min", p.yearRange.Min,
		"year_max", p.yearRange.Max,
		"refresh_interval", p.refresh,
		"follow", p.follow,
	)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	switch {
	case p.follow:
		return p.runFollow(ctx)
	case p.refresh > 0:
		return p.runTicker(ctx)
	default:
		_, _ = p.RunOnce(ctx)
		return nil
	}
}

func (p *Pipeline) runTicker(ctx context.Context) error {
	_, _ = p.RunOnce(ctx)

	ticker := p.clock.NewTicker(p.refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			_, _ = p.RunOnce(ctx)
		}
	}
}

// runFollow re-runs continuously. After a failed fetch it waits with
// exponential backoff starting at 200ms and capped at 5s.
func (p *Pipeline) runFollow(ctx context.Context) error {
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		if ctx.Err() != nil {
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		}

		if _, err := p.RunOnce(ctx); err != nil {
			if !p.sleep(ctx, backoff) {
				p.logger.Info("pipeline stopping", "reason", ctx.Err())
				return nil
			}
			backoff = nextBackoff(backoff, maxBackoff)
			continue
		}
		backoff = 200 * time.Millisecond
	}
}

func (p *Pipeline) setLastErr(err error) {
	p.errMu.Lock()
	p.lastErr = err
	p.errMu.Unlock()
}

func (p *Pipeline) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-p.clock.After(d):
		return true
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}
