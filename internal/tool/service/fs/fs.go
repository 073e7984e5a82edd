package fs

import (
	"io"
	"os"
	"path/filepath"
)

// OSFileSystem is the real filesystem behind the filesystem and script
// tools.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OSFileSystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (fs *OSFileSystem) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// ReadDir lists a directory sorted by name.
func (fs *OSFileSystem) ReadDir(path string) ([]os.DirEntry, error) {
	return os.ReadDir(path)
}

// ReadFileLimit reads at most limit bytes from the start of a file.
func (fs *OSFileSystem) ReadFileLimit(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, limit))
}

// WriteFileAtomic writes content through a temp file in the same directory
// and renames it over path, so a crash never leaves a half-written file.
func (fs *OSFileSystem) WriteFileAtomic(path string, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, ".llmx-*")
	if err != nil {
		return &WriteError{Op: OpCreateTemp, Path: dir, Cause: err}
	}
	tmpPath := tmpFile.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(content); err != nil {
		_ = tmpFile.Close()
		return &WriteError{Op: OpWrite, Path: path, Cause: err}
	}
	if err := tmpFile.Close(); err != nil {
		return &WriteError{Op: OpWrite, Path: path, Cause: err}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return &WriteError{Op: OpRename, Path: path, Cause: err}
	}
	committed = true

	if err := os.Chmod(path, perm); err != nil {
		return &WriteError{Op: OpChmod, Path: path, Cause: err}
	}
	return nil
}

// EnsureDirs creates a directory and its parents.
func (fs *OSFileSystem) EnsureDirs(path string) error {
	return os.MkdirAll(path, 0o755)
}
