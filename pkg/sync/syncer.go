package sync

import (
	"context"
	"fmt"

	"github.com/sdejongh/dirsync/pkg/compare"
	"github.com/sdejongh/dirsync/pkg/logging"
	"github.com/sdejongh/dirsync/pkg/models"
	"github.com/sdejongh/dirsync/pkg/output"
	"github.com/sdejongh/dirsync/pkg/ratelimit"
	"github.com/sdejongh/dirsync/pkg/storage"
)

// Syncer walks the source tree once and mirrors it into the destination.
// Files are visited sequentially in the order the walk yields them, and
// every visited file lands in exactly one result bucket.
type Syncer struct {
	source     storage.Backend
	dest       storage.Backend
	comparator compare.Comparator
	copier     *Copier
	formatter  output.Formatter
	logger     logging.Logger
	options    *models.RunOptions
}

// NewSyncer creates a new syncer
func NewSyncer(
	source, dest storage.Backend,
	comparator compare.Comparator,
	formatter output.Formatter,
	logger logging.Logger,
	options *models.RunOptions,
) *Syncer {
	return &Syncer{
		source:     source,
		dest:       dest,
		comparator: comparator,
		copier:     NewCopier(source, dest, ratelimit.NewLimiter(options.BandwidthLimit)),
		formatter:  formatter,
		logger:     logger,
		options:    options,
	}
}

// Run executes one synchronization pass and returns the accumulated result.
// Per-entry failures are recorded in the result and the pass continues;
// only failure to enumerate the source tree fails the run as a whole.
func (s *Syncer) Run(ctx context.Context) (*models.RunResult, error) {
	result := models.NewRunResult(s.options.RunID, s.options.SourcePath, s.options.DestPath)
	result.DryRun = s.options.DryRun

	if s.logger != nil {
		s.logger.Info(ctx, "Starting sync run", logging.Fields{
			"run_id":  s.options.RunID,
			"source":  s.options.SourcePath,
			"dest":    s.options.DestPath,
			"dry_run": s.options.DryRun,
		})
	}

	entries, err := s.source.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to scan source directory: %w", err)
	}

	dirs, files, failed := s.partition(ctx, entries)

	if s.formatter != nil {
		s.formatter.Start(s.options.SourcePath, s.options.DestPath, len(files))
	}

	// Entries the walk could not read still land in the error bucket
	for _, e := range failed {
		result.AddError(e.RelativePath, e.Err)
		if s.logger != nil {
			s.logger.Error(ctx, "Failed to read source entry", e.Err, logging.Fields{
				"path": e.RelativePath,
			})
		}
	}

	s.mirrorDirs(ctx, dirs)

	for _, f := range files {
		select {
		case <-ctx.Done():
			result.Finish()
			return result, ctx.Err()
		default:
		}

		s.processFile(ctx, f, result)
	}

	result.Finish()

	if s.logger != nil {
		s.logger.Info(ctx, "Sync run completed", logging.Fields{
			"run_id":      s.options.RunID,
			"status":      string(result.Status()),
			"new":         len(result.New),
			"overwritten": len(result.Overwritten),
			"skipped":     len(result.Skipped),
			"errors":      len(result.Errors),
			"duration":    result.Duration().String(),
		})
	}

	return result, nil
}

// partition splits listed entries into directories, regular files and
// entries that failed to enumerate. Excluded paths are dropped entirely
// and never counted.
func (s *Syncer) partition(ctx context.Context, entries []storage.FileInfo) (dirs, files, failed []storage.FileInfo) {
	for _, e := range entries {
		if e.RelativePath == "." {
			continue
		}

		if shouldExclude(e.RelativePath, s.options.ExcludePatterns) {
			if s.logger != nil {
				s.logger.Debug(ctx, "Path excluded", logging.Fields{"path": e.RelativePath})
			}
			continue
		}

		switch {
		case e.Err != nil:
			failed = append(failed, e)
		case e.IsDir:
			dirs = append(dirs, e)
		default:
			files = append(files, e)
		}
	}

	return dirs, files, failed
}

// mirrorDirs recreates the source directory layout in the destination so
// that empty directories survive the sync. Failures are not counted:
// the write path creates parents again per file, so files beneath an
// unmakeable directory surface their own copy errors.
func (s *Syncer) mirrorDirs(ctx context.Context, dirs []storage.FileInfo) {
	if s.options.DryRun {
		return
	}

	for _, d := range dirs {
		if err := s.dest.MkdirAll(ctx, d.RelativePath); err != nil {
			if s.logger != nil {
				s.logger.Warn(ctx, "Failed to mirror source directory", logging.Fields{
					"path":  d.RelativePath,
					"error": err.Error(),
				})
			}
		}
	}
}

// processFile decides the outcome for a single file and records it
func (s *Syncer) processFile(ctx context.Context, file storage.FileInfo, result *models.RunResult) {
	rel := file.RelativePath

	comparison, err := s.comparator.Compare(ctx, s.source, s.dest, rel, rel)
	if err != nil {
		s.recordError(ctx, result, rel, err)
		return
	}

	switch comparison.Result {
	case compare.Same:
		result.AddSkipped(rel)
		if s.logger != nil {
			s.logger.Debug(ctx, "File skipped", logging.Fields{
				"path":   rel,
				"reason": comparison.Reason,
			})
		}
		s.fileDone(models.DecisionSkipped, rel)

	case compare.SourceOnly:
		if err := s.copyFile(ctx, rel); err != nil {
			s.recordError(ctx, result, rel, err)
			return
		}
		result.AddNew(rel)
		if s.logger != nil {
			s.logger.Debug(ctx, "File copied", logging.Fields{
				"path": rel,
				"size": file.Size,
			})
		}
		s.fileDone(models.DecisionNew, rel)

	case compare.Different:
		if err := s.copyFile(ctx, rel); err != nil {
			s.recordError(ctx, result, rel, err)
			return
		}
		result.AddOverwritten(rel)
		if s.logger != nil {
			s.logger.Debug(ctx, "File overwritten", logging.Fields{
				"path":   rel,
				"size":   file.Size,
				"reason": comparison.Reason,
			})
		}
		s.fileDone(models.DecisionOverwritten, rel)
	}
}

// copyFile performs the copy unless the pass is a dry run
func (s *Syncer) copyFile(ctx context.Context, relativePath string) error {
	if s.options.DryRun {
		return nil
	}
	return s.copier.CopyFile(ctx, relativePath)
}

// recordError records a per-file failure and moves on
func (s *Syncer) recordError(ctx context.Context, result *models.RunResult, relativePath string, err error) {
	result.AddError(relativePath, err)
	if s.logger != nil {
		s.logger.Error(ctx, "Failed to process file", err, logging.Fields{
			"path": relativePath,
		})
	}
	s.fileDone(models.DecisionError, relativePath)
}

// fileDone forwards a decision to the formatter
func (s *Syncer) fileDone(decision models.FileDecision, relativePath string) {
	if s.formatter != nil {
		s.formatter.FileDone(decision, relativePath)
	}
}
