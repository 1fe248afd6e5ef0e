package core

import (
	"time"

	"github.com/lumipallolabs/imageinfo/internal/model"
)

// ScanPhase represents the current phase of scanning
type ScanPhase int

const (
	PhaseIdle ScanPhase = iota
	PhaseScanning
	PhaseComplete
)

// String returns a human-readable phase name
func (p ScanPhase) String() string {
	switch p {
	case PhaseScanning:
		return "Scanning directories"
	case PhaseComplete:
		return "Complete"
	default:
		return ""
	}
}

// ScanState holds the current scan state
type ScanState struct {
	Phase     ScanPhase
	Extension string
	StartTime time.Time
	EndTime   time.Time
}

// IsScanning returns true if a scan is in progress
func (s ScanState) IsScanning() bool {
	return s.Phase == PhaseScanning
}

// Elapsed returns time since the scan started, or its total duration once finished
func (s ScanState) Elapsed() time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}
	if !s.EndTime.IsZero() {
		return s.EndTime.Sub(s.StartTime)
	}
	return time.Since(s.StartTime)
}

// AppState holds the complete application state (read-only view)
type AppState struct {
	Roots      []model.Root
	Scan       ScanState
	LastResult *model.ScanResult
	Error      error
}
