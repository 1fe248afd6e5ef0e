package scanner

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/charlievieth/fastwalk"
	"github.com/lumipallolabs/imageinfo/internal/logging"
	"go.uber.org/zap"
)

// Walker implements parallel directory enumeration with fastwalk
type Walker struct {
	workers int
	logger  *zap.Logger
}

// NewWalker creates a new parallel filesystem walker. workers <= 0 uses the
// fastwalk default.
func NewWalker(workers int) *Walker {
	if workers < 0 {
		workers = 0
	}
	return &Walker{
		workers: workers,
		logger:  logging.Named("walker"),
	}
}

// Walk enumerates root using fastwalk
func (w *Walker) Walk(ctx context.Context, root string, fn WalkFunc) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	// Follow a symlinked root itself, but nothing below it
	resolved, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		w.logger.Debug("root not walkable", zap.String("root", absRoot), zap.Error(err))
		return nil
	}

	conf := &fastwalk.Config{
		Follow:     false,
		NumWorkers: w.workers,
	}

	walkErr := fastwalk.Walk(conf, resolved, func(path string, d fs.DirEntry, err error) error {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return nil // Skip entries with errors
		}

		// Skip the root itself
		if path == resolved {
			return nil
		}

		return fn(path, d)
	})

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return walkErr
}

// Ensure Walker implements Enumerator
var _ Enumerator = (*Walker)(nil)
