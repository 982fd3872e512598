package output

import (
	"fmt"
	"io"
	"os"

	"github.com/sdejongh/dirsync/pkg/models"
)

// ConsoleFormatter prints the run banner and final summary to the console
type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
}

// NewConsoleFormatter creates a new console formatter
// A nil writer defaults to stdout
func NewConsoleFormatter(writer io.Writer, verbose bool) *ConsoleFormatter {
	if writer == nil {
		writer = os.Stdout
	}
	return &ConsoleFormatter{writer: writer, verbose: verbose}
}

// Start announces the run
func (f *ConsoleFormatter) Start(sourcePath, destPath string, totalFiles int) error {
	fmt.Fprintf(f.writer, "Copying from: %s\n", sourcePath)
	fmt.Fprintf(f.writer, "Copying to:   %s\n", destPath)
	return nil
}

// FileDone reports a single file decision, only in verbose mode
func (f *ConsoleFormatter) FileDone(decision models.FileDecision, relativePath string) error {
	if f.verbose {
		fmt.Fprintf(f.writer, "  %s: %s\n", decision, relativePath)
	}
	return nil
}

// Complete prints the final summary line and the report location
func (f *ConsoleFormatter) Complete(result *models.RunResult, reportPath string) error {
	fmt.Fprintf(f.writer, "\nDone.\n")
	if result.DryRun {
		fmt.Fprintf(f.writer, "Dry run: no files were copied.\n")
	}
	fmt.Fprintf(f.writer, "Report written to: %s\n", reportPath)
	fmt.Fprintf(f.writer, "New: %d, Overwritten: %d, Skipped: %d, Errors: %d\n",
		len(result.New), len(result.Overwritten), len(result.Skipped), len(result.Errors))
	return nil
}

// Name returns the formatter name
func (f *ConsoleFormatter) Name() string {
	return "console"
}
