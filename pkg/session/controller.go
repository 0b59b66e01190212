// Package session owns the collection lifecycle: which page is being
// scanned, whether the scan interval is running, and the operator commands
// that merge and export the collected records.
package session

import (
	"context"
	"sync"
	"time"

	"xfollow/internal/scheduler"
	"xfollow/pkg/collector"
	"xfollow/pkg/document"
	xerrors "xfollow/pkg/errors"
	"xfollow/pkg/export"
	"xfollow/pkg/logger"
)

// Options configures a Controller
type Options struct {
	Namespace    string
	ScanInterval time.Duration
	RowMarker    string
}

// Status is a read-only view of the collection
type Status struct {
	SessionID string
	Following int
	Followers int
	Buffer    int
	Running   bool
	Scans     int
	Source    string
}

// StopReport is returned by Stop
type StopReport struct {
	Stopped    bool
	BufferSize int
}

// OpenResult is returned by Open
type OpenResult struct {
	Resumed bool
	Initial collector.ScanResult
	Status  Status
}

// Controller drives scanning for one collection namespace
type Controller struct {
	opts     Options
	registry *collector.Registry
	exporter *export.Exporter
	ticker   *scheduler.Ticker
	logger   logger.Logger

	mu      sync.Mutex
	state   *collector.State
	resumed bool
	opened  bool
	source  document.Source
	scanner *collector.Scanner
}

// New creates a controller and initializes (or resumes) the namespace's state
func New(opts Options, registry *collector.Registry, exporter *export.Exporter, log logger.Logger) *Controller {
	if log == nil {
		log = logger.GetLogger()
	}
	if opts.ScanInterval <= 0 {
		opts.ScanInterval = 2 * time.Second
	}

	state, resumed := registry.Acquire(opts.Namespace)

	return &Controller{
		opts:     opts,
		registry: registry,
		exporter: exporter,
		ticker:   scheduler.New(opts.ScanInterval, log),
		logger:   log.WithField("namespace", opts.Namespace),
		state:    state,
		resumed:  resumed,
	}
}

// Open points the controller at a new page, resuming the existing state,
// restarts the scan interval and performs one scan right away.
func (c *Controller) Open(ctx context.Context, source document.Source) OpenResult {
	c.mu.Lock()
	// the first page reports how New found the namespace
	resumed := c.resumed
	if c.opened {
		c.state, resumed = c.registry.Acquire(c.opts.Namespace)
	}
	c.opened = true
	state := c.state
	c.source = source
	c.scanner = collector.NewScanner(state, source, c.opts.RowMarker, c.logger)
	c.mu.Unlock()

	c.logger.InfoWithFields("page opened", map[string]interface{}{
		"source":  source.Name(),
		"resumed": resumed,
	})

	if err := c.Start(); err != nil {
		c.logger.WithError(err).Error("failed to start scan interval")
	}
	initial := c.scanNow(ctx)

	return OpenResult{Resumed: resumed, Initial: initial, Status: c.Status()}
}

// Start installs the scan interval, replacing one that is already running
func (c *Controller) Start() error {
	c.mu.Lock()
	scanner := c.scanner
	c.mu.Unlock()

	if scanner == nil {
		return xerrors.New(xerrors.ErrorTypeSource, "no page open")
	}

	c.ticker.Start(func(ctx context.Context) {
		scanner.Scan(ctx)
	})
	return nil
}

// Stop cancels the scan interval. Records already in the buffer are kept.
func (c *Controller) Stop() StopReport {
	stopped := c.ticker.Stop()
	report := StopReport{Stopped: stopped, BufferSize: c.currentState().Sizes().Buffer}

	if stopped {
		c.logger.WithField("buffer", report.BufferSize).Info("scan interval stopped")
	}
	return report
}

// Status reports set sizes without modifying anything
func (c *Controller) Status() Status {
	c.mu.Lock()
	state, source := c.state, c.source
	c.mu.Unlock()

	sizes := state.Sizes()
	status := Status{
		SessionID: state.ID,
		Following: sizes.Following,
		Followers: sizes.Followers,
		Buffer:    sizes.Buffer,
		Running:   c.ticker.Running(),
		Scans:     c.ticker.Ticks(),
	}
	if source != nil {
		status.Source = source.Name()
	}
	return status
}

// SaveFollowing merges the current scan buffer into the following set
func (c *Controller) SaveFollowing() collector.MergeResult {
	return c.currentState().SaveFollowing()
}

// SaveFollowers merges the current scan buffer into the followers set
func (c *Controller) SaveFollowers() collector.MergeResult {
	return c.currentState().SaveFollowers()
}

// ExportFinal reconciles both sets and writes the recovery file
func (c *Controller) ExportFinal() (export.Report, string, error) {
	following, followers := c.currentState().Snapshot()
	return c.exporter.Export(following, followers)
}

// ScanNow runs one scan outside the interval
func (c *Controller) ScanNow(ctx context.Context) collector.ScanResult {
	return c.scanNow(ctx)
}

func (c *Controller) scanNow(ctx context.Context) collector.ScanResult {
	c.mu.Lock()
	scanner := c.scanner
	c.mu.Unlock()

	if scanner == nil {
		return collector.ScanResult{BufferSize: c.currentState().Sizes().Buffer}
	}
	return scanner.Scan(ctx)
}

func (c *Controller) currentState() *collector.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
