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

// SavedFile describes the outcome of FetchFile.
type SavedFile struct {
	Path      string
	SizeBytes int64
	// Skipped is set when the file was already on disk and nothing was fetched.
	Skipped bool
}

// FetchFunc opens the remote body of a file. The caller closes it.
type FetchFunc func(ctx context.Context) (io.ReadCloser, error)

// FetchFile stores the body returned by fetch as dir/filename.
// If that file already exists, fetch is not called.
func FetchFile(ctx context.Context, dir string, filename string, fetch FetchFunc) (SavedFile, error) {
	if dir == "" {
		return SavedFile{}, fmt.Errorf("empty download directory")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return SavedFile{}, fmt.Errorf("create download directory: %w", err)
	}

	fullPath := filepath.Join(dir, filepath.Base(filename))

	info, err := os.Stat(fullPath)
	if err == nil {
		return SavedFile{Path: fullPath, SizeBytes: info.Size(), Skipped: true}, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return SavedFile{}, fmt.Errorf("stat %s: %w", fullPath, err)
	}

	body, err := fetch(ctx)
	if err != nil {
		return SavedFile{}, err
	}
	defer body.Close()

	out, err := os.Create(fullPath)
	if err != nil {
		return SavedFile{}, fmt.Errorf("create file: %w", err)
	}

	n, err := io.Copy(out, body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(fullPath)
		return SavedFile{}, fmt.Errorf("write %s: %w", fullPath, err)
	}

	return SavedFile{Path: fullPath, SizeBytes: n}, nil
}
