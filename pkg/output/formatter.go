package output

import (
	"github.com/sdejongh/dirsync/pkg/models"
)

// Formatter defines the interface for console output during a run
// Implementations include console, progress bar, and null formatters
type Formatter interface {
	// Start announces the run before the first file is visited
	Start(sourcePath, destPath string, totalFiles int) error

	// FileDone reports the decision taken for a single visited file
	FileDone(decision models.FileDecision, relativePath string) error

	// Complete finalizes output after the report has been written
	Complete(result *models.RunResult, reportPath string) error

	// Name returns the formatter name
	Name() string
}
