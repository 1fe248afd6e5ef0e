package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lumipallolabs/imageinfo/internal/config"
	"github.com/lumipallolabs/imageinfo/internal/imaging"
	"github.com/lumipallolabs/imageinfo/internal/logging"
	"github.com/lumipallolabs/imageinfo/internal/model"
	"github.com/lumipallolabs/imageinfo/internal/scanner"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ExifResult is the outcome of an Exif task
type ExifResult struct {
	Report      *imaging.ExifReport
	SummaryPath string
}

// Controller manages the core application logic without UI dependencies
type Controller struct {
	mu sync.RWMutex

	// State
	roots  []model.Root
	scan   ScanState
	result *model.ScanResult
	err    error

	// Internal services
	scanner  scanner.Scanner
	progress *scanner.LatestSink
	writer   *imaging.ExifWriter
	group    singleflight.Group
	logger   *zap.Logger
}

// Option configures a Controller
type Option func(*Controller)

// WithRoots replaces the host's resolved roots
func WithRoots(roots []model.Root) Option {
	return func(c *Controller) { c.roots = roots }
}

// WithScanner replaces the default aggregator
func WithScanner(s scanner.Scanner) Option {
	return func(c *Controller) { c.scanner = s }
}

// WithExifWriter replaces the default summary writer
func WithExifWriter(w *imaging.ExifWriter) Option {
	return func(c *Controller) { c.writer = w }
}

// NewController creates a new application controller
func NewController(cfg *config.Config, opts ...Option) *Controller {
	if cfg == nil {
		cfg = config.Default()
	}

	c := &Controller{
		progress: &scanner.LatestSink{},
		logger:   logging.Named("controller"),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.roots == nil {
		c.roots = model.ResolveRoots()
	}
	if c.scanner == nil {
		c.scanner = scanner.NewAggregator(
			scanner.WithEnumerator(scanner.NewWalker(cfg.Scan.Workers)),
			scanner.WithSkipLastRoot(cfg.Scan.SkipLastRoot),
		)
	}
	if c.writer == nil {
		c.writer = imaging.NewExifWriter(afero.NewOsFs(), exifOutputDir(cfg, c.roots), cfg.Exif.Format)
	}

	for _, r := range c.roots {
		c.logger.Debug("root", zap.String("name", string(r.Name)), zap.String("path", r.Path))
	}
	return c
}

// exifOutputDir picks the configured directory, then the downloads root,
// then the working directory.
func exifOutputDir(cfg *config.Config, roots []model.Root) string {
	if cfg.Exif.OutputDir != "" {
		return cfg.Exif.OutputDir
	}
	if r, ok := model.FindRoot(roots, model.RootDownloads); ok && r.Resolved() {
		return r.Path
	}
	return "."
}

// State returns a read-only snapshot of the current state
func (c *Controller) State() AppState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return AppState{
		Roots:      c.roots,
		Scan:       c.scan,
		LastResult: c.result,
		Error:      c.err,
	}
}

// Roots returns the scan roots in canonical order
func (c *Controller) Roots() []model.Root {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roots
}

// ScanState returns the current scan state
func (c *Controller) ScanState() ScanState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scan
}

// Progress returns the latest progress of the running or last scan
func (c *Controller) Progress() (model.ProgressEvent, bool) {
	return c.progress.Latest()
}

// StartScan begins an extension scan in the background. Unsupported
// extensions are rejected before any work starts.
func (c *Controller) StartScan(ctx context.Context, ext string) (<-chan Event, error) {
	if !model.IsImageExtension(ext) {
		return nil, fmt.Errorf("%q: %w", ext, model.ErrUnsupportedExtension)
	}

	// Room for every event of one scan so the worker never blocks
	eventCh := make(chan Event, len(c.Roots())+4)

	go c.runScan(ctx, ext, eventCh)

	return eventCh, nil
}

// runScan executes the scan in a goroutine
func (c *Controller) runScan(ctx context.Context, ext string, eventCh chan Event) {
	defer close(eventCh)

	eventCh <- ScanStartedEvent{Extension: ext, Roots: len(c.Roots())}

	sink := scanner.FuncSink(func(p model.ProgressEvent) {
		select {
		case eventCh <- ScanProgressEvent{Progress: p}:
		default:
			// Channel full, drop event
		}
	})

	result, err := c.Scan(ctx, ext, sink)
	if err != nil {
		eventCh <- ErrorEvent{Err: err}
		return
	}
	eventCh <- ScanCompletedEvent{Result: result}
}

// Scan runs an extension scan and waits for it. Concurrent calls for the
// same extension share one walk; only the caller that started it receives
// progress on sink, but every sink is finished.
func (c *Controller) Scan(ctx context.Context, ext string, sink scanner.ProgressSink) (*model.ScanResult, error) {
	if !model.IsImageExtension(ext) {
		if sink != nil {
			sink.Finish()
		}
		return nil, fmt.Errorf("%q: %w", ext, model.ErrUnsupportedExtension)
	}

	ran := false
	v, err, shared := c.group.Do(ext, func() (any, error) {
		ran = true
		return c.scanOnce(ctx, ext, sink)
	})
	if !ran && sink != nil {
		sink.Finish()
	}
	if shared {
		c.logger.Debug("scan shared", zap.String("ext", ext))
	}
	if err != nil {
		return nil, err
	}
	return v.(*model.ScanResult), nil
}

func (c *Controller) scanOnce(ctx context.Context, ext string, sink scanner.ProgressSink) (*model.ScanResult, error) {
	c.mu.Lock()
	c.scan = ScanState{
		Phase:     PhaseScanning,
		Extension: ext,
		StartTime: time.Now(),
	}
	c.err = nil
	roots := c.roots
	c.mu.Unlock()

	c.progress.Reset()
	sinks := scanner.MultiSink{c.progress}
	if sink != nil {
		sinks = append(sinks, sink)
	}

	c.logger.Debug("starting scan", zap.String("ext", ext))
	result, err := c.scanner.Scan(ctx, ext, roots, sinks)

	c.mu.Lock()
	c.scan.EndTime = time.Now()
	if err != nil {
		c.scan.Phase = PhaseIdle
		c.err = err
	} else {
		c.scan.Phase = PhaseComplete
		c.result = result
	}
	elapsed := c.scan.Elapsed()
	c.mu.Unlock()

	if err != nil {
		c.logger.Debug("scan failed", zap.String("ext", ext), zap.Error(err))
		return nil, err
	}
	c.logger.Debug("scan complete",
		zap.String("ext", ext),
		zap.Uint64("files", result.TotalFiles),
		zap.Duration("elapsed", elapsed))
	return result, nil
}

// FinalizeScan returns the controller to idle once the result has been shown
func (c *Controller) FinalizeScan() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scan.Phase = PhaseIdle
}

// Inspect reads dimensions, color model and pixel breakdown of one image
func (c *Controller) Inspect(ctx context.Context, path string) (*imaging.ImageInfo, error) {
	c.logger.Debug("inspect", zap.String("path", path))
	return runTask(ctx, func() (*imaging.ImageInfo, error) {
		return imaging.Inspect(path)
	})
}

// Exif extracts the Exif fields of one image and saves a summary file.
// Nothing is written when extraction fails or ctx is done before writing.
func (c *Controller) Exif(ctx context.Context, path string) (*ExifResult, error) {
	c.logger.Debug("exif", zap.String("path", path))
	return runTask(ctx, func() (*ExifResult, error) {
		report, err := imaging.ExtractExif(path)
		if err != nil {
			return nil, err
		}
		// Nothing is written once the caller has given up
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		summary, err := c.writer.Write(report)
		if err != nil {
			return nil, err
		}
		c.logger.Debug("exif summary written", zap.String("path", summary))
		return &ExifResult{Report: report, SummaryPath: summary}, nil
	})
}

// runTask runs fn on its own goroutine, giving up when ctx is done. fn is
// not started if ctx is already done; once started it runs to completion.
func runTask[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}

	type outcome struct {
		v   T
		err error
	}
	done := make(chan outcome, 1)

	go func() {
		v, err := fn()
		done <- outcome{v, err}
	}()

	select {
	case o := <-done:
		return o.v, o.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
