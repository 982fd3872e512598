package sync

import (
	"context"
	"fmt"

	"github.com/sdejongh/dirsync/pkg/ratelimit"
	"github.com/sdejongh/dirsync/pkg/storage"
)

// Copier copies individual files from source to destination
type Copier struct {
	source  storage.Backend
	dest    storage.Backend
	limiter *ratelimit.Limiter
}

// NewCopier creates a new copier. A nil limiter means unlimited
// transfer speed.
func NewCopier(source, dest storage.Backend, limiter *ratelimit.Limiter) *Copier {
	return &Copier{
		source:  source,
		dest:    dest,
		limiter: limiter,
	}
}

// CopyFile copies a file from source to destination, creating missing
// parent directories and preserving timestamps and permissions
func (c *Copier) CopyFile(ctx context.Context, relativePath string) error {
	// Get source metadata to preserve timestamps and permissions
	sourceInfo, err := c.source.Stat(ctx, relativePath)
	if err != nil {
		return fmt.Errorf("failed to get source metadata: %w", err)
	}

	reader, err := c.source.Read(ctx, relativePath)
	if err != nil {
		return fmt.Errorf("failed to read source file: %w", err)
	}
	reader = ratelimit.NewReadCloser(ctx, reader, c.limiter)
	defer reader.Close()

	if err := c.dest.Write(ctx, relativePath, reader, sourceInfo.Size, sourceInfo); err != nil {
		return fmt.Errorf("failed to write destination file: %w", err)
	}

	return nil
}
