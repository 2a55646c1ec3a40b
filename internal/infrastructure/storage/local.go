// Package storage implements the object store behind the media library: a
// local filesystem store addressed by opaque keys, plus an HMAC presigner
// that turns the API itself into the upload target. The URL contract (signed,
// expiring, method-bound PUT) matches what a cloud presigned upload gives a
// browser client.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aiblog/blog-platform/internal/core/domain"
)

// Local stores objects as files under a root directory.
type Local struct {
	root string
}

// NewLocal creates the root directory if needed and returns the store.
func NewLocal(root string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage root: %w", err)
	}
	return &Local{root: root}, nil
}

// Put streams r into the object at key, refusing to write more than
// maxBytes. A partial file from an oversized or failed upload is removed.
func (l *Local) Put(key string, r io.Reader, maxBytes int64) (int64, error) {
	path, err := l.path(key)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("storage mkdir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("storage create: %w", err)
	}

	n, err := io.Copy(f, io.LimitReader(r, maxBytes+1))
	closeErr := f.Close()
	switch {
	case err != nil:
		_ = os.Remove(path)
		return 0, fmt.Errorf("storage write: %w", err)
	case n > maxBytes:
		_ = os.Remove(path)
		return 0, domain.ErrObjectTooLarge
	case closeErr != nil:
		_ = os.Remove(path)
		return 0, fmt.Errorf("storage close: %w", closeErr)
	}
	return n, nil
}

// Open returns a reader over the object and its size.
func (l *Local) Open(key string) (io.ReadCloser, int64, error) {
	path, err := l.path(key)
	if err != nil {
		return nil, 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, err
	}
	return f, info.Size(), nil
}

// Exists reports whether the object is present.
func (l *Local) Exists(key string) bool {
	path, err := l.path(key)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Delete removes the object. Deleting a missing object is not an error.
func (l *Local) Delete(key string) error {
	path, err := l.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage delete: %w", err)
	}
	return nil
}

// path resolves key under the root and rejects traversal outside it.
func (l *Local) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(l.root, clean), nil
}
