package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lumipallolabs/imageinfo/internal/model"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, size int64) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(size))
	require.NoError(t, f.Close())
}

// picturesFixture lays out a pictures root holding three png files totalling
// 2099152 bytes plus files that must not match.
func picturesFixture(t *testing.T) (downloads, pictures string) {
	t.Helper()
	base := t.TempDir()
	downloads = filepath.Join(base, "Downloads")
	pictures = filepath.Join(base, "Pictures")

	require.NoError(t, os.MkdirAll(downloads, 0755))
	writeFile(t, filepath.Join(downloads, "notes.txt"), 10)

	writeFile(t, filepath.Join(pictures, "a.png"), 500)
	writeFile(t, filepath.Join(pictures, "b.png"), 1500)
	writeFile(t, filepath.Join(pictures, "nested", "deep", "c.png"), 2097152)
	writeFile(t, filepath.Join(pictures, "photo.jpg"), 4096)
	writeFile(t, filepath.Join(pictures, "SHOUT.PNG"), 64)
	writeFile(t, filepath.Join(pictures, ".png"), 32)
	require.NoError(t, os.MkdirAll(filepath.Join(pictures, "folder.png"), 0755))

	return downloads, pictures
}

func TestScanPicturesRoot(t *testing.T) {
	downloads, pictures := picturesFixture(t)
	roots := []model.Root{
		{Name: model.RootDownloads, Path: downloads},
		{Name: model.RootDocuments},
		{Name: model.RootPictures, Path: pictures},
	}

	result, err := NewAggregator().Scan(context.Background(), "png", roots, nil)
	require.NoError(t, err)

	assert.Equal(t, "png", result.Extension)
	assert.Equal(t, []model.Tally{
		{Root: model.RootDownloads},
		{Root: model.RootDocuments},
		{Root: model.RootPictures, Files: 3, Bytes: 2099152},
	}, result.PerRoot)
	assert.Equal(t, uint64(3), result.TotalFiles)
	assert.Equal(t, uint64(2099152), result.TotalBytes)
	assert.Zero(t, result.SkippedFiles)
}

func TestScanTotalsEqualPerRootSums(t *testing.T) {
	downloads, pictures := picturesFixture(t)
	writeFile(t, filepath.Join(downloads, "shot.jpg"), 2048)

	roots := []model.Root{
		{Name: model.RootDownloads, Path: downloads},
		{Name: model.RootPictures, Path: pictures},
	}

	result, err := NewAggregator().Scan(context.Background(), "jpg", roots, nil)
	require.NoError(t, err)

	var files, bytes uint64
	for _, tally := range result.PerRoot {
		files += tally.Files
		bytes += tally.Bytes
	}
	assert.Equal(t, files, result.TotalFiles)
	assert.Equal(t, bytes, result.TotalBytes)
	assert.Equal(t, uint64(2), result.TotalFiles)
	assert.Equal(t, uint64(2048+4096), result.TotalBytes)
}

func TestScanMissingAndUnresolvedRoots(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	roots := []model.Root{
		{Name: model.RootVideos, Path: missing},
		{Name: model.RootData},
	}

	result, err := NewAggregator().Scan(context.Background(), "png", roots, nil)
	require.NoError(t, err)

	require.Len(t, result.PerRoot, 2)
	assert.Equal(t, model.RootVideos, result.PerRoot[0].Root)
	assert.Equal(t, model.RootData, result.PerRoot[1].Root)
	assert.True(t, result.NoMatches())
	assert.Zero(t, result.TotalBytes)
}

func TestScanProgressOncePerRoot(t *testing.T) {
	downloads, pictures := picturesFixture(t)
	roots := []model.Root{
		{Name: model.RootPictures, Path: pictures},
		{Name: model.RootDocuments},
		{Name: model.RootDownloads, Path: downloads},
	}

	sink := NewChannelSink(len(roots) + 1)
	_, err := NewAggregator().Scan(context.Background(), "png", roots, sink)
	require.NoError(t, err)

	var events []model.ProgressEvent
	for e := range sink.Progress() {
		events = append(events, e)
	}

	require.Len(t, events, len(roots))
	var last uint64
	for i, e := range events {
		assert.Equal(t, i, e.RootsScanned)
		assert.Equal(t, len(roots), e.RootsTotal)
		assert.Equal(t, roots[i].Name, e.Root)
		assert.Equal(t, roots[i].Path, e.Path)
		assert.GreaterOrEqual(t, e.MatchesSoFar, last)
		last = e.MatchesSoFar
	}
	assert.Equal(t, uint64(0), events[0].MatchesSoFar)
	assert.Equal(t, uint64(3), events[1].MatchesSoFar)
}

func TestScanIsIdempotent(t *testing.T) {
	downloads, pictures := picturesFixture(t)
	roots := []model.Root{
		{Name: model.RootDownloads, Path: downloads},
		{Name: model.RootPictures, Path: pictures},
	}
	agg := NewAggregator(WithEnumerator(NewWalker(4)))

	first, err := agg.Scan(context.Background(), "png", roots, nil)
	require.NoError(t, err)
	second, err := agg.Scan(context.Background(), "png", roots, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScanSkipLastRoot(t *testing.T) {
	_, pictures := picturesFixture(t)
	roots := []model.Root{
		{Name: model.RootPictures, Path: pictures},
		{Name: model.RootDesktop, Path: pictures},
	}

	var seen []model.ProgressEvent
	sink := FuncSink(func(e model.ProgressEvent) { seen = append(seen, e) })

	result, err := NewAggregator(WithSkipLastRoot(true)).Scan(context.Background(), "png", roots, sink)
	require.NoError(t, err)

	assert.Equal(t, uint64(3), result.PerRoot[0].Files)
	assert.Equal(t, model.Tally{Root: model.RootDesktop}, result.PerRoot[1])
	assert.Equal(t, uint64(3), result.TotalFiles)
	assert.Len(t, seen, 2)

	result, err = NewAggregator().Scan(context.Background(), "png", roots, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(6), result.TotalFiles)
}

func TestScanMarksRootsSharingADirectory(t *testing.T) {
	_, pictures := picturesFixture(t)
	roots := []model.Root{
		{Name: model.RootLocalData, Path: pictures},
		{Name: model.RootData, Path: pictures + string(filepath.Separator)},
	}

	result, err := NewAggregator().Scan(context.Background(), "png", roots, nil)
	require.NoError(t, err)

	assert.Empty(t, result.PerRoot[0].SameAs)
	assert.Equal(t, model.RootLocalData, result.PerRoot[1].SameAs)
	assert.Equal(t, uint64(3), result.PerRoot[1].Files)
	assert.Equal(t, uint64(6), result.TotalFiles)
}

func TestScanDoesNotFollowSymlinks(t *testing.T) {
	_, pictures := picturesFixture(t)
	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "linked.png"), 777)

	if err := os.Symlink(outside, filepath.Join(pictures, "link-dir")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(outside, "linked.png"), filepath.Join(pictures, "link.png")))

	roots := []model.Root{{Name: model.RootPictures, Path: pictures}}
	result, err := NewAggregator().Scan(context.Background(), "png", roots, nil)
	require.NoError(t, err)

	assert.Equal(t, uint64(3), result.TotalFiles)
	assert.Equal(t, uint64(2099152), result.TotalBytes)
}

func TestScanCancelledContext(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/pics/a.png", make([]byte, 10), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := &LatestSink{}
	agg := NewAggregator(WithEnumerator(NewAferoWalker(fsys)))
	result, err := agg.Scan(ctx, "png", []model.Root{{Name: model.RootPictures, Path: "/pics"}}, sink)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
	assert.True(t, sink.Done())
}

func TestScanAferoFilesystem(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/home/u/Pictures/a.png", make([]byte, 500), 0644))
	require.NoError(t, afero.WriteFile(fsys, "/home/u/Pictures/2024/b.png", make([]byte, 1500), 0644))
	require.NoError(t, afero.WriteFile(fsys, "/home/u/Pictures/c.gif", make([]byte, 99), 0644))
	require.NoError(t, afero.WriteFile(fsys, "/home/u/Downloads/d.png", make([]byte, 1), 0644))

	roots := []model.Root{
		{Name: model.RootDownloads, Path: "/home/u/Downloads"},
		{Name: model.RootPictures, Path: "/home/u/Pictures"},
		{Name: model.RootDesktop, Path: "/home/u/Desktop"},
	}

	agg := NewAggregator(WithEnumerator(NewAferoWalker(fsys)))
	result, err := agg.Scan(context.Background(), "png", roots, nil)
	require.NoError(t, err)

	assert.Equal(t, []model.Tally{
		{Root: model.RootDownloads, Files: 1, Bytes: 1},
		{Root: model.RootPictures, Files: 2, Bytes: 2000},
		{Root: model.RootDesktop},
	}, result.PerRoot)
	assert.Equal(t, uint64(2001), result.TotalBytes)
}

type fakeInfo struct {
	name string
	size int64
}

func (f fakeInfo) Name() string       { return f.name }
func (f fakeInfo) Size() int64        { return f.size }
func (f fakeInfo) Mode() fs.FileMode  { return 0644 }
func (f fakeInfo) ModTime() time.Time { return time.Time{} }
func (f fakeInfo) IsDir() bool        { return false }
func (f fakeInfo) Sys() any           { return nil }

// vanishingEntry is a file that disappears before its metadata is read
type vanishingEntry struct{ name string }

func (e vanishingEntry) Name() string               { return e.name }
func (e vanishingEntry) IsDir() bool                { return false }
func (e vanishingEntry) Type() fs.FileMode          { return 0 }
func (e vanishingEntry) Info() (fs.FileInfo, error) { return nil, fs.ErrNotExist }

type staticEnumerator map[string][]fs.DirEntry

func (s staticEnumerator) Walk(ctx context.Context, root string, fn WalkFunc) error {
	for _, d := range s[root] {
		if err := fn(filepath.Join(root, d.Name()), d); err != nil {
			return err
		}
	}
	return nil
}

func TestScanSkipsUnreadableMetadata(t *testing.T) {
	enum := staticEnumerator{
		"/pics": {
			fs.FileInfoToDirEntry(fakeInfo{name: "a.png", size: 500}),
			vanishingEntry{name: "gone.png"},
			vanishingEntry{name: "gone.jpg"},
			fs.FileInfoToDirEntry(fakeInfo{name: "b.png", size: 1500}),
		},
	}

	agg := NewAggregator(WithEnumerator(enum))
	result, err := agg.Scan(context.Background(), "png", []model.Root{{Name: model.RootPictures, Path: "/pics"}}, nil)
	require.NoError(t, err)

	assert.Equal(t, uint64(2), result.TotalFiles)
	assert.Equal(t, uint64(2000), result.TotalBytes)
	assert.Equal(t, uint64(1), result.SkippedFiles)
}
