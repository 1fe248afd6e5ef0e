package scanner

import (
	"context"
	"io/fs"
	"path/filepath"
	"sync/atomic"

	"github.com/lumipallolabs/imageinfo/internal/logging"
	"github.com/lumipallolabs/imageinfo/internal/model"
	"go.uber.org/zap"
)

// Aggregator counts and sizes files with a given extension across roots.
// Roots are walked one after another; entries within a root may be visited
// concurrently, depending on the Enumerator.
type Aggregator struct {
	walker       Enumerator
	skipLastRoot bool
	logger       *zap.Logger
}

// Option configures an Aggregator
type Option func(*Aggregator)

// WithEnumerator sets the directory enumerator (default: fastwalk Walker)
func WithEnumerator(e Enumerator) Option {
	return func(a *Aggregator) { a.walker = e }
}

// WithSkipLastRoot leaves the final root unwalked and reports it as empty.
// Older releases behaved this way for the desktop directory.
func WithSkipLastRoot(skip bool) Option {
	return func(a *Aggregator) { a.skipLastRoot = skip }
}

// WithLogger overrides the aggregator's logger
func WithLogger(l *zap.Logger) Option {
	return func(a *Aggregator) { a.logger = l }
}

// NewAggregator creates an aggregator
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{}
	for _, opt := range opts {
		opt(a)
	}
	if a.walker == nil {
		a.walker = NewWalker(0)
	}
	if a.logger == nil {
		a.logger = logging.Named("scanner")
	}
	return a
}

// Scan implements Scanner. Every root appears in the result in the order
// given, with a zero tally when it is unresolved or missing on disk.
func (a *Aggregator) Scan(ctx context.Context, ext string, roots []model.Root, sink ProgressSink) (*model.ScanResult, error) {
	if sink == nil {
		sink = nopSink{}
	}
	defer sink.Finish()

	a.logger.Debug("scan started", zap.String("ext", ext), zap.Int("roots", len(roots)))

	tallies := make([]model.Tally, len(roots))
	var matches, skipped uint64
	seen := make(map[string]model.RootName, len(roots))

	for i, root := range roots {
		tallies[i].Root = root.Name

		sink.Update(model.ProgressEvent{
			RootsScanned: i,
			RootsTotal:   len(roots),
			MatchesSoFar: matches,
			Root:         root.Name,
			Path:         root.Path,
		})

		if !root.Resolved() {
			a.logger.Debug("root unresolved", zap.String("root", string(root.Name)))
			continue
		}
		if a.skipLastRoot && i == len(roots)-1 {
			a.logger.Debug("skipping last root", zap.String("root", string(root.Name)))
			continue
		}

		dir := filepath.Clean(root.Path)
		if first, ok := seen[dir]; ok {
			tallies[i].SameAs = first
			a.logger.Debug("root shares directory", zap.String("root", string(root.Name)), zap.String("same_as", string(first)))
		} else {
			seen[dir] = root.Name
		}

		files, bytes, skip, err := a.walkRoot(ctx, root.Path, ext)
		if err != nil {
			a.logger.Debug("scan aborted", zap.String("root", string(root.Name)), zap.Error(err))
			return nil, err
		}

		tallies[i].Files = files
		tallies[i].Bytes = bytes
		matches += files
		skipped += skip

		a.logger.Debug("root scanned",
			zap.String("root", string(root.Name)),
			zap.Uint64("files", files),
			zap.Uint64("bytes", bytes),
			zap.Uint64("skipped", skip))
	}

	result := model.NewScanResult(ext, tallies, skipped)
	a.logger.Debug("scan complete",
		zap.Uint64("files", result.TotalFiles),
		zap.Uint64("bytes", result.TotalBytes))
	return result, nil
}

func (a *Aggregator) walkRoot(ctx context.Context, path, ext string) (files, bytes, skipped uint64, err error) {
	var nFiles, nBytes, nSkipped atomic.Uint64

	err = a.walker.Walk(ctx, path, func(p string, d fs.DirEntry) error {
		if !d.Type().IsRegular() {
			return nil
		}
		if model.ExtensionOf(d.Name()) != ext {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			nSkipped.Add(1)
			a.logger.Debug("metadata unreadable", zap.String("path", p), zap.Error(err))
			return nil
		}

		nFiles.Add(1)
		nBytes.Add(uint64(info.Size()))
		return nil
	})
	if err != nil {
		return 0, 0, 0, err
	}

	return nFiles.Load(), nBytes.Load(), nSkipped.Load(), nil
}

// Ensure Aggregator implements Scanner
var _ Scanner = (*Aggregator)(nil)
