package models

import (
	"time"
)

// RunOptions represents the configuration of a single synchronization run
type RunOptions struct {
	// RunID uniquely identifies the run
	RunID string

	// SourcePath is the tree being read from, never modified
	SourcePath string

	// DestPath is the tree being written to
	DestPath string

	// ReportDir is the directory receiving the report file
	ReportDir string

	// ReportName is the base name of the report file
	ReportName string

	// Timezone is the preferred zone for the report date
	Timezone string

	// MaxListItems caps each path list written into the report
	MaxListItems int

	// ExcludePatterns are glob patterns filtering source entries
	ExcludePatterns []string

	// BandwidthLimit caps copy throughput in bytes per second, 0 = unlimited
	BandwidthLimit int64

	// DryRun computes and reports decisions without touching the destination
	DryRun bool

	CreatedAt time.Time
}

// Validate checks if the run configuration is valid
func (o *RunOptions) Validate() error {
	if o.SourcePath == "" {
		return &ValidationError{Field: "SourcePath", Message: "source path is required"}
	}
	if o.DestPath == "" {
		return &ValidationError{Field: "DestPath", Message: "destination path is required"}
	}
	if o.ReportDir == "" {
		return &ValidationError{Field: "ReportDir", Message: "report directory is required"}
	}
	if o.ReportName == "" {
		return &ValidationError{Field: "ReportName", Message: "report name is required"}
	}
	if o.MaxListItems < 1 {
		return &ValidationError{Field: "MaxListItems", Message: "max list items must be at least 1"}
	}
	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
