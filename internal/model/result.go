package model

// Tally is the count and byte total of matching files under one root
type Tally struct {
	Root  RootName
	Files uint64
	Bytes uint64

	// SameAs names an earlier root resolving to the same directory; its
	// matches are counted under both roots
	SameAs RootName
}

// ScanResult is the outcome of an extension scan.
// TotalFiles and TotalBytes are always the exact sums over PerRoot.
type ScanResult struct {
	Extension    string
	PerRoot      []Tally // canonical root order
	TotalFiles   uint64
	TotalBytes   uint64
	SkippedFiles uint64 // matching files whose size could not be read
}

// NewScanResult builds a result from per-root tallies, deriving the totals
func NewScanResult(ext string, perRoot []Tally, skipped uint64) *ScanResult {
	r := &ScanResult{
		Extension:    ext,
		PerRoot:      perRoot,
		SkippedFiles: skipped,
	}
	for _, t := range perRoot {
		r.TotalFiles += t.Files
		r.TotalBytes += t.Bytes
	}
	return r
}

// NoMatches reports a completed scan that found nothing
func (r *ScanResult) NoMatches() bool {
	return r.TotalFiles == 0
}

// Tally returns the tally for a root
func (r *ScanResult) Tally(name RootName) (Tally, bool) {
	for _, t := range r.PerRoot {
		if t.Root == name {
			return t, true
		}
	}
	return Tally{}, false
}

// ProgressEvent describes scan state at a root boundary, before the root is walked
type ProgressEvent struct {
	RootsScanned int
	RootsTotal   int
	MatchesSoFar uint64
	Root         RootName
	Path         string // empty for unresolved roots
}

// Fraction returns the share of roots already scanned
func (e ProgressEvent) Fraction() float64 {
	if e.RootsTotal == 0 {
		return 0
	}
	return float64(e.RootsScanned) / float64(e.RootsTotal)
}
