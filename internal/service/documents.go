package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/atinyakov/docstore/internal/models"
	"github.com/atinyakov/docstore/internal/naming"
)

// DocumentRepository defines the file operations needed by the DocumentService.
type DocumentRepository interface {
	// List returns the names of all documents.
	List(ctx context.Context) ([]string, error)
	// Read returns the named document or models.ErrNotFound.
	Read(ctx context.Context, name string) (models.Document, error)
	// Create makes an empty document; models.ErrAlreadyExists if present.
	Create(ctx context.Context, name string) error
	// Write overwrites an existing document; models.ErrNotFound if absent.
	Write(ctx context.Context, name string, content []byte) error
	// Delete removes a document; models.ErrNotFound if absent.
	Delete(ctx context.Context, name string) error
	// Copy copies src into a new document dst.
	Copy(ctx context.Context, src, dst string) error
}

// DocumentService implements document CRUD over a single directory.
type DocumentService struct {
	repo DocumentRepository
	log  *zap.Logger

	// mu serializes mutations so that reading the directory, choosing a
	// name and writing happen as one step.
	mu sync.Mutex
}

// NewDocumentService constructs a DocumentService with the provided repository.
func NewDocumentService(repo DocumentRepository, log *zap.Logger) *DocumentService {
	if log == nil {
		log = zap.NewNop()
	}
	return &DocumentService{repo: repo, log: log}
}

// List returns the names of all documents.
func (s *DocumentService) List(ctx context.Context) ([]string, error) {
	return s.repo.List(ctx)
}

// Read returns the document called name.
func (s *DocumentService) Read(ctx context.Context, name string) (models.Document, error) {
	if err := existingName(name); err != nil {
		return models.Document{}, err
	}
	return s.repo.Read(ctx, name)
}

// Create validates name and creates an empty document under it.
func (s *DocumentService) Create(ctx context.Context, name string) error {
	if err := naming.ValidateNewName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Create(ctx, name); err != nil {
		return err
	}
	s.log.Info("document created", zap.String("name", name))
	return nil
}

// Write replaces the content of an existing document.
func (s *DocumentService) Write(ctx context.Context, name string, content []byte) error {
	if err := existingName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Write(ctx, name, content); err != nil {
		return err
	}
	s.log.Info("document updated", zap.String("name", name), zap.Int("bytes", len(content)))
	return nil
}

// Delete removes a document.
func (s *DocumentService) Delete(ctx context.Context, name string) error {
	if err := existingName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, name); err != nil {
		return err
	}
	s.log.Info("document deleted", zap.String("name", name))
	return nil
}

// Duplicate copies a document to the first free "<base>(<n>)<ext>" name
// and returns that name.
func (s *DocumentService) Duplicate(ctx context.Context, name string) (string, error) {
	if err := existingName(name); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	names, err := s.repo.List(ctx)
	if err != nil {
		return "", err
	}
	newName := naming.ResolveDuplicateName(name, names)
	if err := s.repo.Copy(ctx, name, newName); err != nil {
		return "", err
	}

	s.log.Info("document duplicated", zap.String("name", name), zap.String("copy", newName))
	return newName, nil
}

// existingName maps names that can never refer to a stored document to
// models.ErrNotFound.
func existingName(name string) error {
	if err := naming.ValidateName(name); err != nil {
		return fmt.Errorf("%w: %w", models.ErrNotFound, err)
	}
	return nil
}
