package core

import "github.com/lumipallolabs/imageinfo/internal/model"

// Event represents a state change from the controller
type Event interface {
	isEvent()
}

// ScanStartedEvent is emitted when a scan begins
type ScanStartedEvent struct {
	Extension string
	Roots     int
}

func (ScanStartedEvent) isEvent() {}

// ScanProgressEvent is emitted at each root boundary
type ScanProgressEvent struct {
	Progress model.ProgressEvent
}

func (ScanProgressEvent) isEvent() {}

// ScanCompletedEvent is emitted when scan finishes
type ScanCompletedEvent struct {
	Result *model.ScanResult
}

func (ScanCompletedEvent) isEvent() {}

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Err error
}

func (ErrorEvent) isEvent() {}
