package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/sdejongh/dirsync/pkg/compare"
	"github.com/sdejongh/dirsync/pkg/config"
	"github.com/sdejongh/dirsync/pkg/logging"
	"github.com/sdejongh/dirsync/pkg/output"
	"github.com/sdejongh/dirsync/pkg/report"
	"github.com/sdejongh/dirsync/pkg/storage"
	"github.com/sdejongh/dirsync/pkg/sync"
)

// RunFlags holds root command flags
type RunFlags struct {
	ReportDir string
	FileName  string
	Exclude   []string
	Bandwidth string
	DryRun    bool
	Progress  bool
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var runFlags RunFlags

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dirsync <source> <destination>",
		Short: "One-way directory synchronization with a per-run report",
		Long: `dirsync mirrors a source directory into a destination directory.
Files are compared by size: missing files are copied, size mismatches are
overwritten, equal sizes are skipped. Every run writes a dated text report.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}

	addGlobalFlags(cmd)

	cmd.Flags().StringVarP(&runFlags.ReportDir, "report-dir", "r", "", "directory for the report file (default: destination)")
	cmd.Flags().StringVarP(&runFlags.FileName, "file_name", "f", "example", "base name for the report file")
	cmd.Flags().StringSliceVar(&runFlags.Exclude, "exclude", []string{}, "glob patterns to exclude")
	cmd.Flags().StringVarP(&runFlags.Bandwidth, "bandwidth", "b", "", "bandwidth limit (e.g., \"500K\", \"10M\")")
	cmd.Flags().BoolVar(&runFlags.DryRun, "dry-run", false, "decide outcomes without copying anything")
	cmd.Flags().BoolVar(&runFlags.Progress, "progress", false, "show a progress bar")

	// Logging flags
	cmd.Flags().StringVar(&runFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&runFlags.LogFormat, "log-format", "text", "log format: text, json")
	cmd.Flags().StringVar(&runFlags.LogLevel, "log-level", "info", "log level: debug, info, warn, error")

	cmd.AddCommand(NewVersionCommand())
	cmd.AddCommand(NewConfigCommand())

	return cmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	applyFlagsToConfig(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Create logger
	logger, err := createLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	// Build run options from arguments and configuration
	opts, err := createRunOptions(cfg, args[0], args[1])
	if err != nil {
		return err
	}

	writer := report.NewWriter(report.WriterConfig{
		Dir:          opts.ReportDir,
		FileName:     opts.ReportName,
		Timezone:     opts.Timezone,
		MaxListItems: opts.MaxListItems,
	}, logger)

	// From here on failures are fatal: echoed, recorded in an error
	// report, and mapped to a non-zero exit
	if err := validateDirs(opts); err != nil {
		return fatal(ctx, out, writer, err)
	}

	// Create storage backends
	source, err := storage.NewLocal(opts.SourcePath)
	if err != nil {
		return fatal(ctx, out, writer, fmt.Errorf("failed to open source directory: %w", err))
	}
	defer source.Close()

	dest, err := storage.NewLocal(opts.DestPath)
	if err != nil {
		return fatal(ctx, out, writer, fmt.Errorf("failed to open destination directory: %w", err))
	}
	defer dest.Close()

	// Run the synchronization pass
	formatter := createFormatter(cfg, out)
	syncer := sync.NewSyncer(source, dest, compare.NewSizeComparator(), formatter, logger, opts)

	result, err := syncer.Run(ctx)
	if err != nil {
		return fatal(ctx, out, writer, err)
	}

	record, err := writer.Write(ctx, result)
	if err != nil {
		return fatal(ctx, out, writer, err)
	}

	return formatter.Complete(result, record.Path)
}

// createFormatter picks the console surface for the run
func createFormatter(cfg *config.Config, out io.Writer) output.Formatter {
	if cfg.Output.Quiet {
		return output.NewNullFormatter()
	}

	console := output.NewConsoleFormatter(out, global.Verbose)
	if cfg.Output.Progress {
		return output.NewProgressFormatter(console)
	}
	return console
}

// createLogger creates a logger based on configuration
func createLogger(cfg config.LoggingConfig) (logging.Logger, error) {
	// If no log file configured, return null logger
	if cfg.File == "" {
		return logging.NewNullLogger(), nil
	}

	var format logging.Format
	switch cfg.Format {
	case "json":
		format = logging.FormatJSON
	default:
		format = logging.FormatText
	}

	return logging.NewFileLogger(logging.FileLoggerConfig{
		Path:       cfg.File,
		Format:     format,
		Level:      logging.ParseLevel(cfg.Level),
		MaxSize:    10 * 1024 * 1024, // 10 MB
		MaxBackups: 5,
	})
}

// fatal handles a run-aborting failure: echo the message, attempt the
// error report, and hand back an error the caller maps to a non-zero
// exit. When even the error report cannot be written, that failure is
// returned unwrapped in ReportedError so it surfaces directly.
func fatal(ctx context.Context, out io.Writer, writer *report.Writer, err error) error {
	fmt.Fprintf(out, "Fatal error: %v\n", err)

	record, werr := writer.WriteError(ctx, err.Error())
	if werr != nil {
		return fmt.Errorf("failed to write error report: %w", werr)
	}
	fmt.Fprintf(out, "Error report written to: %s\n", record.Path)

	return &ReportedError{Err: err}
}

// ReportedError wraps a fatal error that has already been echoed to the
// console and recorded in the error report. The caller only needs to map
// it to a non-zero exit status.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }

func (e *ReportedError) Unwrap() error { return e.Err }
