package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Local serves a directory tree on the local filesystem. All relative
// paths are resolved against the root it was opened with.
type Local struct {
	root string
}

// NewLocal opens a local backend rooted at path, which must be an
// existing directory.
func NewLocal(path string) (*Local, error) {
	root, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", root)
	}

	return &Local{root: root}, nil
}

// abs resolves a backend-relative path to an absolute one.
func (l *Local) abs(path string) string {
	return filepath.Join(l.root, path)
}

// describe builds the FileInfo for an absolute path from its stat info.
func (l *Local) describe(p string, info fs.FileInfo) (FileInfo, error) {
	rel, err := filepath.Rel(l.root, p)
	if err != nil {
		return FileInfo{}, err
	}

	return FileInfo{
		Path:         p,
		RelativePath: rel,
		Size:         info.Size(),
		ModTime:      info.ModTime(),
		IsDir:        info.IsDir(),
		Permissions:  uint32(info.Mode().Perm()),
	}, nil
}

// errorEntry records a path the walk could not read.
func (l *Local) errorEntry(p string, err error) FileInfo {
	rel, relErr := filepath.Rel(l.root, p)
	if relErr != nil {
		rel = p
	}
	return FileInfo{Path: p, RelativePath: rel, Err: err}
}

// List walks the tree under path. Directories and regular files become
// entries; symlinks and other special files are skipped. A failure to
// read a single entry is reported on that entry, not as a walk failure.
func (l *Local) List(ctx context.Context, path string) ([]FileInfo, error) {
	var entries []FileInfo

	walkErr := filepath.WalkDir(l.abs(path), func(p string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			entries = append(entries, l.errorEntry(p, err))
			return nil
		}
		if !d.IsDir() && !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			entries = append(entries, l.errorEntry(p, err))
			return nil
		}

		entry, err := l.describe(p, info)
		if err != nil {
			entries = append(entries, l.errorEntry(p, err))
			return nil
		}
		entries = append(entries, entry)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to list files: %w", walkErr)
	}

	return entries, nil
}

// Read opens the file at path.
func (l *Local) Read(ctx context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(l.abs(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open file for reading: %w", err)
	}
	return f, nil
}

// Write streams reader into the file at path, creating parent
// directories first. The written file keeps the source's mod time and
// permissions when metadata is given.
func (l *Local) Write(ctx context.Context, path string, reader io.Reader, size int64, metadata *FileInfo) error {
	target := l.abs(path)

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create parent directories: %w", err)
	}

	if err := writeFile(target, reader, size); err != nil {
		return err
	}

	if metadata == nil {
		return nil
	}
	return applyMetadata(target, metadata)
}

// writeFile copies reader into a freshly created file and verifies the
// byte count.
func writeFile(target string, reader io.Reader, size int64) error {
	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer out.Close()

	n, err := io.Copy(out, reader)
	if err != nil {
		return fmt.Errorf("failed to copy content: %w", err)
	}
	if n != size {
		return fmt.Errorf("short write: got %d of %d bytes", n, size)
	}
	return nil
}

// applyMetadata carries mod time and permissions over to the new file.
func applyMetadata(target string, metadata *FileInfo) error {
	if mt := metadata.ModTime; !mt.IsZero() {
		if err := os.Chtimes(target, mt, mt); err != nil {
			return fmt.Errorf("failed to restore mod time: %w", err)
		}
	}
	if perm := fs.FileMode(metadata.Permissions); perm != 0 {
		if err := os.Chmod(target, perm); err != nil {
			return fmt.Errorf("failed to restore permissions: %w", err)
		}
	}
	return nil
}

// Delete removes path and anything beneath it.
func (l *Local) Delete(ctx context.Context, path string) error {
	if err := os.RemoveAll(l.abs(path)); err != nil {
		return fmt.Errorf("failed to remove path: %w", err)
	}
	return nil
}

// Exists reports whether path exists.
func (l *Local) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(l.abs(path))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("failed to probe path: %w", err)
	}
}

// Stat returns metadata for the entry at path.
func (l *Local) Stat(ctx context.Context, path string) (*FileInfo, error) {
	full := l.abs(path)

	info, err := os.Stat(full)
	if err != nil {
		return nil, fmt.Errorf("failed to stat entry: %w", err)
	}

	entry, err := l.describe(full, info)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// MkdirAll creates the directory at path along with missing parents.
func (l *Local) MkdirAll(ctx context.Context, path string) error {
	if err := os.MkdirAll(l.abs(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// Close is a no-op for the local filesystem.
func (l *Local) Close() error {
	return nil
}
