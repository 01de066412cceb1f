package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/docstore/internal/models"
)

func newDocRepo(t *testing.T) *FileDocumentRepository {
	t.Helper()
	repo, err := NewFileDocumentRepository(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	return repo
}

func TestFileDocumentRepository_CreateReadWrite(t *testing.T) {
	repo := newDocRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "notes.md"))

	doc, err := repo.Read(ctx, "notes.md")
	require.NoError(t, err)
	assert.Empty(t, doc.Content)

	require.NoError(t, repo.Write(ctx, "notes.md", []byte("a longer first version")))
	require.NoError(t, repo.Write(ctx, "notes.md", []byte("short")))

	doc, err = repo.Read(ctx, "notes.md")
	require.NoError(t, err)
	assert.Equal(t, "short", string(doc.Content))

	names, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"notes.md"}, names)
}

func TestFileDocumentRepository_CreateExisting(t *testing.T) {
	repo := newDocRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "notes.md"))
	require.NoError(t, repo.Write(ctx, "notes.md", []byte("keep me")))

	err := repo.Create(ctx, "notes.md")
	assert.ErrorIs(t, err, models.ErrAlreadyExists)

	doc, err := repo.Read(ctx, "notes.md")
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(doc.Content))
}

func TestFileDocumentRepository_Missing(t *testing.T) {
	repo := newDocRepo(t)
	ctx := context.Background()

	_, err := repo.Read(ctx, "nofile.txt")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, repo.Write(ctx, "nofile.txt", []byte("x")), models.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "nofile.txt"), models.ErrNotFound)
	assert.ErrorIs(t, repo.Copy(ctx, "nofile.txt", "nofile(2).txt"), models.ErrNotFound)

	_, err = os.Stat(filepath.Join(repo.Dir, "nofile.txt"))
	assert.True(t, os.IsNotExist(err), "Write must not create a missing document")
}

func TestFileDocumentRepository_Delete(t *testing.T) {
	repo := newDocRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "test.txt"))
	require.NoError(t, repo.Delete(ctx, "test.txt"))

	names, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, names, "test.txt")
}

func TestFileDocumentRepository_Copy(t *testing.T) {
	repo := newDocRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "about.md"))
	require.NoError(t, repo.Write(ctx, "about.md", []byte("# Ruby is...")))

	require.NoError(t, repo.Copy(ctx, "about.md", "about(2).md"))
	doc, err := repo.Read(ctx, "about(2).md")
	require.NoError(t, err)
	assert.Equal(t, "# Ruby is...", string(doc.Content))

	err = repo.Copy(ctx, "about.md", "about(2).md")
	assert.ErrorIs(t, err, models.ErrAlreadyExists)
}
