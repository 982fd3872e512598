package output

import (
	"os"

	"github.com/cheggaaa/pb/v3"

	"github.com/sdejongh/dirsync/pkg/models"
)

// ProgressFormatter wraps a console formatter with a progress bar.
// The bar is drawn on stderr so the console contract on stdout stays
// machine-readable.
type ProgressFormatter struct {
	console *ConsoleFormatter
	bar     *pb.ProgressBar
}

// NewProgressFormatter creates a progress bar formatter around the
// given console formatter
func NewProgressFormatter(console *ConsoleFormatter) *ProgressFormatter {
	return &ProgressFormatter{console: console}
}

// Start announces the run and starts the bar
func (f *ProgressFormatter) Start(sourcePath, destPath string, totalFiles int) error {
	if err := f.console.Start(sourcePath, destPath, totalFiles); err != nil {
		return err
	}

	f.bar = pb.New(totalFiles)
	f.bar.SetWriter(os.Stderr)
	f.bar.Start()
	return nil
}

// FileDone advances the bar by one file
func (f *ProgressFormatter) FileDone(decision models.FileDecision, relativePath string) error {
	if f.bar != nil {
		f.bar.Increment()
	}
	return nil
}

// Complete stops the bar and prints the final summary
func (f *ProgressFormatter) Complete(result *models.RunResult, reportPath string) error {
	if f.bar != nil {
		f.bar.Finish()
		f.bar = nil
	}
	return f.console.Complete(result, reportPath)
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}
