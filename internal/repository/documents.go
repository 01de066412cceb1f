package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/atinyakov/docstore/internal/models"
	"github.com/atinyakov/docstore/internal/naming"
)

// FileDocumentRepository stores documents as files in a single flat directory.
// It makes no naming decisions; callers validate names first.
type FileDocumentRepository struct {
	// Dir is the document directory.
	Dir string
}

// NewFileDocumentRepository creates the directory if needed and returns a
// repository rooted at it.
func NewFileDocumentRepository(dir string) (*FileDocumentRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileDocumentRepository{Dir: dir}, nil
}

func (r *FileDocumentRepository) path(name string) string {
	return filepath.Join(r.Dir, name)
}

// List returns the names of all documents.
func (r *FileDocumentRepository) List(_ context.Context) ([]string, error) {
	names, err := naming.ListNames(r.Dir)
	if err != nil {
		return nil, fmt.Errorf("list: %w: %w", models.ErrStorage, err)
	}
	return names, nil
}

// Read returns the document stored under name.
func (r *FileDocumentRepository) Read(_ context.Context, name string) (models.Document, error) {
	content, err := os.ReadFile(r.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return models.Document{}, fmt.Errorf("%s: %w", name, models.ErrNotFound)
	}
	if err != nil {
		return models.Document{}, fmt.Errorf("read %s: %w: %w", name, models.ErrStorage, err)
	}
	return models.Document{Name: name, Content: content}, nil
}

// Create makes an empty file. It never overwrites an existing one.
func (r *FileDocumentRepository) Create(_ context.Context, name string) error {
	f, err := os.OpenFile(r.path(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%s: %w", name, models.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("create %s: %w: %w", name, models.ErrStorage, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w: %w", name, models.ErrStorage, err)
	}
	return nil
}

// Write replaces the full content of an existing document.
func (r *FileDocumentRepository) Write(_ context.Context, name string, content []byte) error {
	info, err := os.Stat(r.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", name, models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w: %w", name, models.ErrStorage, err)
	}
	if err := writeFileAtomic(r.path(name), content, info.Mode().Perm()); err != nil {
		return fmt.Errorf("write %s: %w: %w", name, models.ErrStorage, err)
	}
	return nil
}

// Delete removes the document.
func (r *FileDocumentRepository) Delete(_ context.Context, name string) error {
	err := os.Remove(r.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", name, models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete %s: %w: %w", name, models.ErrStorage, err)
	}
	return nil
}

// Copy copies src into a new document dst. dst must not exist yet.
func (r *FileDocumentRepository) Copy(_ context.Context, src, dst string) error {
	in, err := os.Open(r.path(src))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", src, models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("open %s: %w: %w", src, models.ErrStorage, err)
	}
	defer in.Close()

	out, err := os.OpenFile(r.path(dst), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%s: %w", dst, models.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("create %s: %w: %w", dst, models.ErrStorage, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(r.path(dst))
		return fmt.Errorf("copy %s: %w: %w", src, models.ErrStorage, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(r.path(dst))
		return fmt.Errorf("close %s: %w: %w", dst, models.ErrStorage, err)
	}
	return nil
}
