package output

import (
	"github.com/sdejongh/dirsync/pkg/models"
)

// NullFormatter discards all output
// Used in quiet mode
type NullFormatter struct{}

// NewNullFormatter creates a new null formatter
func NewNullFormatter() *NullFormatter {
	return &NullFormatter{}
}

// Start does nothing
func (f *NullFormatter) Start(sourcePath, destPath string, totalFiles int) error {
	return nil
}

// FileDone does nothing
func (f *NullFormatter) FileDone(decision models.FileDecision, relativePath string) error {
	return nil
}

// Complete does nothing
func (f *NullFormatter) Complete(result *models.RunResult, reportPath string) error {
	return nil
}

// Name returns the formatter name
func (f *NullFormatter) Name() string {
	return "null"
}
