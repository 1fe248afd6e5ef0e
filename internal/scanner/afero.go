package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// AferoWalker enumerates an afero filesystem sequentially
type AferoWalker struct {
	fs afero.Fs
}

// NewAferoWalker creates a walker over fsys
func NewAferoWalker(fsys afero.Fs) *AferoWalker {
	return &AferoWalker{fs: fsys}
}

// Walk enumerates root with afero.Walk
func (w *AferoWalker) Walk(ctx context.Context, root string, fn WalkFunc) error {
	root = filepath.Clean(root)
	if _, err := w.fs.Stat(root); err != nil {
		return nil
	}

	return afero.Walk(w.fs, root, func(path string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil || info == nil {
			return nil
		}
		if path == root {
			return nil
		}
		return fn(path, fs.FileInfoToDirEntry(info))
	})
}

var _ Enumerator = (*AferoWalker)(nil)
