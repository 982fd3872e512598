package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sdejongh/dirsync/pkg/logging"
	"github.com/sdejongh/dirsync/pkg/models"
)

const (
	// DefaultFileName is the base name used when no report name is configured
	DefaultFileName = "example"

	// DefaultMaxListItems bounds each path list written into a report
	DefaultMaxListItems = 200
)

// WriterConfig holds the settings for report generation
type WriterConfig struct {
	// Dir is the directory report files are written into
	Dir string

	// FileName is the base name of the report, without date prefix or extension
	FileName string

	// Timezone is the preferred zone for the report date. The header always
	// labels this zone, even when the date falls back to the local clock.
	Timezone string

	// MaxListItems caps each per-category path list in the report body
	MaxListItems int
}

// Writer produces the plain-text report file for a run
type Writer struct {
	config WriterConfig
	logger logging.Logger
}

// NewWriter creates a report writer, applying defaults for unset fields
func NewWriter(config WriterConfig, logger logging.Logger) *Writer {
	if config.FileName == "" {
		config.FileName = DefaultFileName
	}
	if config.MaxListItems < 1 {
		config.MaxListItems = DefaultMaxListItems
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	return &Writer{
		config: config,
		logger: logger,
	}
}

// Path returns the report file path for the given date
func (w *Writer) Path(date string) string {
	return filepath.Join(w.config.Dir, fmt.Sprintf("%s_%s.txt", date, w.config.FileName))
}

// Write renders the result of a completed run into a dated report file.
// The file is overwritten when a report with the same name already exists.
func (w *Writer) Write(ctx context.Context, result *models.RunResult) (*models.ReportRecord, error) {
	date := CurrentReportDate(w.config.Timezone)

	var b strings.Builder
	fmt.Fprintf(&b, "Report date (%s): %s\n", w.config.Timezone, date)
	b.WriteString("Summary:\n")
	fmt.Fprintf(&b, "  New files:         %d\n", len(result.New))
	fmt.Fprintf(&b, "  Overwritten files: %d\n", len(result.Overwritten))
	fmt.Fprintf(&b, "  Skipped files:     %d\n", len(result.Skipped))
	fmt.Fprintf(&b, "  Errors:            %d\n", len(result.Errors))
	b.WriteString("\n")

	w.writeList(&b, "New files", result.New)
	w.writeList(&b, "Overwritten files", result.Overwritten)
	w.writeList(&b, "Skipped files", result.Skipped)
	w.writeErrors(&b, result.Errors)

	b.WriteString("End of report\n")

	path := w.Path(date)
	if err := w.writeFile(path, b.String()); err != nil {
		return nil, err
	}

	w.logger.Info(ctx, "Report written", logging.Fields{
		"path":   path,
		"run_id": result.RunID,
		"status": string(result.Status()),
	})

	return &models.ReportRecord{
		Date:   date,
		Zone:   w.config.Timezone,
		Result: result,
		Path:   path,
	}, nil
}

// WriteError renders a fatal-error report containing a single message.
// It stays independent of run state so it can be produced even when the
// run never started.
func (w *Writer) WriteError(ctx context.Context, message string) (*models.ReportRecord, error) {
	date := CurrentReportDate(w.config.Timezone)

	var b strings.Builder
	fmt.Fprintf(&b, "Report date (%s): %s\n", w.config.Timezone, date)
	b.WriteString("\n")
	b.WriteString("Fatal error:\n")
	fmt.Fprintf(&b, "  %s\n", message)
	b.WriteString("\n")
	b.WriteString("End of report\n")

	path := w.Path(date)
	if err := w.writeFile(path, b.String()); err != nil {
		return nil, err
	}

	w.logger.Info(ctx, "Fatal-error report written", logging.Fields{
		"path": path,
	})

	return &models.ReportRecord{
		Date:       date,
		Zone:       w.config.Timezone,
		FatalError: message,
		Path:       path,
	}, nil
}

// writeList renders one per-category section. Empty categories are left
// out entirely, and long lists are capped with an omitted-count marker.
func (w *Writer) writeList(b *strings.Builder, header string, paths []string) {
	if len(paths) == 0 {
		return
	}

	fmt.Fprintf(b, "%s:\n", header)
	limit := len(paths)
	if limit > w.config.MaxListItems {
		limit = w.config.MaxListItems
	}
	for _, p := range paths[:limit] {
		fmt.Fprintf(b, "  %s\n", p)
	}
	if omitted := len(paths) - limit; omitted > 0 {
		fmt.Fprintf(b, "  ... %d more omitted\n", omitted)
	}
	b.WriteString("\n")
}

// writeErrors renders the errors section as path and message pairs
func (w *Writer) writeErrors(b *strings.Builder, errors []models.FileError) {
	if len(errors) == 0 {
		return
	}

	b.WriteString("Errors:\n")
	limit := len(errors)
	if limit > w.config.MaxListItems {
		limit = w.config.MaxListItems
	}
	for _, e := range errors[:limit] {
		fmt.Fprintf(b, "  %s -> %s\n", e.Path, e.Message)
	}
	if omitted := len(errors) - limit; omitted > 0 {
		fmt.Fprintf(b, "  ... %d more omitted\n", omitted)
	}
	b.WriteString("\n")
}

func (w *Writer) writeFile(path, body string) error {
	if err := os.MkdirAll(w.config.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}

	return nil
}
