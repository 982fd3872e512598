package compare

import (
	"context"

	"github.com/sdejongh/dirsync/pkg/storage"
)

// Result classifies what a comparison found.
type Result string

const (
	Same       Result = "same"        // no copy needed
	Different  Result = "different"   // destination must be overwritten
	SourceOnly Result = "source_only" // destination file does not exist
)

// Comparison reports the outcome of comparing one source file against
// its destination counterpart.
type Comparison struct {
	SourcePath string
	DestPath   string
	Result     Result
	Reason     string
}

// Comparator decides whether a destination file is up to date.
type Comparator interface {
	Compare(ctx context.Context, source, dest storage.Backend, sourcePath, destPath string) (*Comparison, error)

	// Name identifies the comparison method.
	Name() string
}
