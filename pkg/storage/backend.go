// Package storage abstracts tree enumeration and file transfer behind a
// Backend interface so the sync engine never touches the filesystem
// directly.
package storage

import (
	"context"
	"io"
	"time"
)

// FileInfo describes one entry under a backend root. Path is absolute;
// RelativePath is relative to the root the backend was opened with.
type FileInfo struct {
	Path         string
	RelativePath string
	Size         int64
	ModTime      time.Time
	IsDir        bool
	Permissions  uint32

	// Err marks an entry the listing could not read. Only Path and
	// RelativePath are meaningful when Err is set.
	Err error
}

// Backend is the storage abstraction the syncer works against.
type Backend interface {
	// List enumerates every directory and regular file under the given
	// path, recursively. Symlinks and other special files are neither
	// followed nor listed. Unreadable entries come back with Err set
	// instead of failing the whole walk.
	List(ctx context.Context, path string) ([]FileInfo, error)

	// Read opens the file at path for reading.
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// Write creates or replaces the file at path with the reader's
	// content. size is the expected byte count; a shorter stream is an
	// error. When metadata is non-nil its mod time and permissions are
	// applied to the written file.
	Write(ctx context.Context, path string, reader io.Reader, size int64, metadata *FileInfo) error

	// Delete removes path and anything beneath it.
	Delete(ctx context.Context, path string) error

	// Exists reports whether path exists.
	Exists(ctx context.Context, path string) (bool, error)

	// Stat returns metadata for the entry at path.
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// MkdirAll creates the directory at path along with missing parents.
	MkdirAll(ctx context.Context, path string) error

	// Close releases resources held by the backend.
	Close() error
}
