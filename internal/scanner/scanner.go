package scanner

import (
	"context"
	"io/fs"

	"github.com/lumipallolabs/imageinfo/internal/model"
)

// Scanner defines the interface for extension scans over a set of roots
type Scanner interface {
	// Scan walks roots in order and tallies files whose extension equals ext.
	// Progress is reported to sink once per root, then sink is finished.
	Scan(ctx context.Context, ext string, roots []model.Root, sink ProgressSink) (*model.ScanResult, error)
}

// WalkFunc is called for every entry below a root. It may be called from
// several goroutines at once.
type WalkFunc func(path string, d fs.DirEntry) error

// Enumerator lists every entry reachable from a root. Entries that can't be
// read are skipped; a missing root is an empty tree. Symlinks are not followed.
type Enumerator interface {
	Walk(ctx context.Context, root string, fn WalkFunc) error
}

// ProgressSink receives scan progress
type ProgressSink interface {
	// Update is called once per root, before the root is walked
	Update(event model.ProgressEvent)

	// Finish is called once when the scan ends, successfully or not
	Finish()
}
