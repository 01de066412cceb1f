package repository

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/atinyakov/docstore/internal/models"
)

// FileAuthRepository keeps credentials in a YAML file mapping each username
// to its bcrypt hash. The whole file is read and rewritten on every change.
type FileAuthRepository struct {
	// Path is the location of the YAML credential file.
	Path string
}

// NewFileAuthRepository creates a FileAuthRepository backed by path.
// A missing file is treated as an empty credential set.
func NewFileAuthRepository(path string) *FileAuthRepository {
	return &FileAuthRepository{Path: path}
}

// Load reads the full username to hash mapping.
func (r *FileAuthRepository) Load(_ context.Context) (map[string]string, error) {
	data, err := os.ReadFile(r.Path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %w", r.Path, models.ErrStorage, err)
	}

	users := map[string]string{}
	if len(bytes.TrimSpace(data)) == 0 {
		return users, nil
	}
	if err := yaml.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parse %s: %w: %w", r.Path, models.ErrStorage, err)
	}
	return users, nil
}

// PasswordHash returns the stored hash for login.
func (r *FileAuthRepository) PasswordHash(ctx context.Context, login string) (string, bool, error) {
	users, err := r.Load(ctx)
	if err != nil {
		return "", false, err
	}
	hash, ok := users[login]
	return hash, ok, nil
}

// RegisterUser adds login with passwordHash and rewrites the file.
// Returns models.ErrUsernameTaken if login is already present.
func (r *FileAuthRepository) RegisterUser(ctx context.Context, login, passwordHash string) error {
	users, err := r.Load(ctx)
	if err != nil {
		return err
	}
	if _, ok := users[login]; ok {
		return models.ErrUsernameTaken
	}
	users[login] = passwordHash

	data, err := yaml.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode users: %w: %w", models.ErrStorage, err)
	}
	if err := writeFileAtomic(r.Path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w: %w", r.Path, models.ErrStorage, err)
	}
	return nil
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over path.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
