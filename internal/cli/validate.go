package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/sdejongh/dirsync/internal/platform"
	"github.com/sdejongh/dirsync/pkg/config"
	"github.com/sdejongh/dirsync/pkg/models"
	"github.com/sdejongh/dirsync/pkg/ratelimit"
)

// validateDirs checks the source and prepares the destination. The
// messages are user-facing: they appear verbatim on the console and in
// the error report.
func validateDirs(opts *models.RunOptions) error {
	info, err := os.Stat(opts.SourcePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("Source directory does not exist: %s", opts.SourcePath)
	}
	if err != nil {
		return fmt.Errorf("Cannot access source directory: %s (%v)", opts.SourcePath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("Source is not a directory: %s", opts.SourcePath)
	}

	// Destination and report directory are created if missing, parents
	// included. Both must be writable before any file is processed.
	if err := os.MkdirAll(opts.DestPath, 0755); err != nil {
		return fmt.Errorf("Cannot create destination directory: %s (%v)", opts.DestPath, err)
	}
	if err := os.MkdirAll(opts.ReportDir, 0755); err != nil {
		return fmt.Errorf("Cannot create report directory: %s (%v)", opts.ReportDir, err)
	}

	return nil
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if global.ConfigFile != "" {
		return config.LoadFromFile(global.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags
func applyFlagsToConfig(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	// Report name
	if flags.Changed("file_name") {
		cfg.Report.FileName = runFlags.FileName
	}

	// Exclude patterns
	if len(runFlags.Exclude) > 0 {
		cfg.Exclude = runFlags.Exclude
	}

	// Logging
	if flags.Changed("log-file") {
		cfg.Logging.File = runFlags.LogFile
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = runFlags.LogFormat
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = runFlags.LogLevel
	}

	// Progress bar
	if runFlags.Progress {
		cfg.Output.Progress = true
	}

	// Quiet mode wins over progress
	if global.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}
}

// createRunOptions builds the run options from positional arguments and
// configuration. Paths are resolved to absolute form so reports and
// console output always show unambiguous locations.
func createRunOptions(cfg *config.Config, sourceArg, destArg string) (*models.RunOptions, error) {
	if err := platform.ValidatePath(sourceArg); err != nil {
		return nil, fmt.Errorf("invalid source path: %w", err)
	}
	if err := platform.ValidatePath(destArg); err != nil {
		return nil, fmt.Errorf("invalid destination path: %w", err)
	}

	sourcePath, err := filepath.Abs(platform.NormalizePath(sourceArg))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source path: %w", err)
	}

	destPath, err := filepath.Abs(platform.NormalizePath(destArg))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve destination path: %w", err)
	}

	// Report directory defaults to the destination
	reportDir := destPath
	if runFlags.ReportDir != "" {
		reportDir, err = filepath.Abs(platform.NormalizePath(runFlags.ReportDir))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve report directory: %w", err)
		}
	}

	bandwidth, err := ratelimit.ParseRate(runFlags.Bandwidth)
	if err != nil {
		return nil, err
	}

	opts := &models.RunOptions{
		RunID:           uuid.New().String(),
		SourcePath:      sourcePath,
		DestPath:        destPath,
		ReportDir:       reportDir,
		ReportName:      cfg.Report.FileName,
		Timezone:        cfg.Report.Timezone,
		MaxListItems:    cfg.Report.MaxListItems,
		ExcludePatterns: cfg.Exclude,
		BandwidthLimit:  bandwidth,
		DryRun:          runFlags.DryRun,
		CreatedAt:       time.Now(),
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return opts, nil
}
