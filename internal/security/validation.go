// Package security provides file validation utilities shared by the tools.
package security

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

var (
	// ErrInputMissing is returned when an input file does not exist.
	ErrInputMissing = errors.New("file does not exist")

	// ErrInputNotRegular is returned when an input path is not a regular file.
	ErrInputNotRegular = errors.New("not a regular file")

	// ErrOutputExists is returned when an output path is already taken.
	ErrOutputExists = errors.New("file exists")

	// ErrNotExecutable is returned when a tool path has no execute permission.
	ErrNotExecutable = errors.New("not executable")
)

// PathError records a validation failure for a path.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("file %q: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// ValidateInputFile checks that path exists and is a regular file.
// Symlinks are followed.
func ValidateInputFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &PathError{Path: path, Err: ErrInputMissing}
		}
		return &PathError{Path: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return &PathError{Path: path, Err: ErrInputNotRegular}
	}
	return nil
}

// ValidateOutputAbsent checks that nothing exists at path, including
// dangling symlinks.
func ValidateOutputAbsent(path string) error {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return &PathError{Path: path, Err: ErrOutputExists}
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return &PathError{Path: path, Err: err}
	}
}

// ValidateExecutable checks that path is a regular file with an execute bit set.
func ValidateExecutable(path string) error {
	if err := ValidateInputFile(path); err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return &PathError{Path: path, Err: err}
	}
	if info.Mode().Perm()&0o111 == 0 {
		return &PathError{Path: path, Err: ErrNotExecutable}
	}
	return nil
}

// CreateNew creates path for writing, failing with ErrOutputExists if it is
// already present. Unlike a separate check-then-create, no existing file is
// ever truncated.
func CreateNew(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644) // #nosec G304 - User-specified output path, intended to be written
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, &PathError{Path: path, Err: ErrOutputExists}
		}
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, nil
}

// LimitedReader wraps an io.Reader and limits the total bytes that can be read.
// This prevents decompression bombs when reading compressed input.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// ErrSizeLimit is returned once a LimitedReader is exhausted.
var ErrSizeLimit = errors.New("decompression size limit exceeded")

// Read implements io.Reader with size limits.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		return 0, ErrSizeLimit
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}
