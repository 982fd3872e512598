package models

import (
	"time"
)

// RunResult accumulates the outcome of one synchronization pass.
// It is mutated by the walker while files are processed and handed over
// to the reporter unchanged once the pass completes.
type RunResult struct {
	// RunID identifies the run in logs
	RunID string

	// SourcePath and DestPath are the resolved tree roots
	SourcePath string
	DestPath   string

	// DryRun marks a pass that decided outcomes without writing anything
	DryRun bool

	// Timing
	StartTime time.Time
	EndTime   time.Time

	// New holds destination-relative paths of files copied for the first time
	New []string

	// Overwritten holds destination-relative paths of files replaced
	Overwritten []string

	// Skipped holds destination-relative paths of files left untouched
	Skipped []string

	// Errors holds per-entry failures; the run continues past each one
	Errors []FileError
}

// FileError pairs a source-relative path with the failure message
type FileError struct {
	Path    string
	Message string
}

// NewRunResult creates an empty result with the start time set
func NewRunResult(runID, sourcePath, destPath string) *RunResult {
	return &RunResult{
		RunID:      runID,
		SourcePath: sourcePath,
		DestPath:   destPath,
		StartTime:  time.Now(),
	}
}

// AddNew records a newly copied file
func (r *RunResult) AddNew(relPath string) {
	r.New = append(r.New, relPath)
}

// AddOverwritten records a replaced file
func (r *RunResult) AddOverwritten(relPath string) {
	r.Overwritten = append(r.Overwritten, relPath)
}

// AddSkipped records an untouched file
func (r *RunResult) AddSkipped(relPath string) {
	r.Skipped = append(r.Skipped, relPath)
}

// AddError records a per-entry failure
func (r *RunResult) AddError(relPath string, err error) {
	r.Errors = append(r.Errors, FileError{Path: relPath, Message: err.Error()})
}

// Finish stamps the end time of the pass
func (r *RunResult) Finish() {
	r.EndTime = time.Now()
}

// Duration returns how long the pass took
func (r *RunResult) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// TotalVisited returns the number of entries that produced an outcome.
// Every visited entry lands in exactly one list, so the sum of the four
// counts always equals this value.
func (r *RunResult) TotalVisited() int {
	return len(r.New) + len(r.Overwritten) + len(r.Skipped) + len(r.Errors)
}

// Status derives the overall run status
func (r *RunResult) Status() RunStatus {
	if len(r.Errors) > 0 {
		return StatusCompletedWithErrors
	}
	return StatusCompleted
}

// RunStatus represents the overall result of a completed pass
type RunStatus string

const (
	// StatusCompleted indicates every entry synchronized cleanly
	StatusCompleted RunStatus = "completed"
	// StatusCompletedWithErrors indicates the pass finished but some entries failed
	StatusCompletedWithErrors RunStatus = "completed_with_errors"
)
