package naming

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/docstore/internal/models"
)

func TestResolveDuplicateName(t *testing.T) {
	tests := []struct {
		name     string
		original string
		existing []string
		want     string
	}{
		{"no copies yet", "about.md", []string{"about.md", "changes.txt"}, "about(2).md"},
		{"second copy", "about.md", []string{"about.md", "about(2).md"}, "about(3).md"},
		{"fills gap", "about.md", []string{"about.md", "about(3).md"}, "about(2).md"},
		{"long run", "a.txt", []string{"a.txt", "a(2).txt", "a(3).txt", "a(4).txt"}, "a(5).txt"},
		{"empty directory", "x.md", nil, "x(2).md"},
		{"no extension", "notes", []string{"notes", "notes(2)"}, "notes(3)"},
		{"copy of a copy", "about(2).md", []string{"about(2).md"}, "about(2)(2).md"},
		{"only last extension", "report.v1.txt", []string{"report.v1.txt"}, "report.v1(2).txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveDuplicateName(tt.original, tt.existing))
		})
	}
}

func TestResolveDuplicateName_NeverTakenAndMinimal(t *testing.T) {
	existing := []string{"doc.md"}
	for i := 0; i < 20; i++ {
		got := ResolveDuplicateName("doc.md", existing)
		assert.NotContains(t, existing, got)
		assert.Equal(t, "doc("+strconv.Itoa(i+2)+").md", got)
		existing = append(existing, got)
	}
}

func TestResolveDuplicateName_DoesNotMutateExisting(t *testing.T) {
	existing := []string{"a.md", "a(2).md"}
	snapshot := append([]string(nil), existing...)

	_ = ResolveDuplicateName("a.md", existing)

	assert.Equal(t, snapshot, existing)
}

func TestValidateNewName(t *testing.T) {
	valid := []string{"notes.md", "changes.txt", "a.md", "with space.txt", "about(2).md"}
	for _, name := range valid {
		assert.NoError(t, ValidateNewName(name), name)
	}

	invalid := []string{"", "notes", ".md", ".txt", "notes.png", "notes.md.bak",
		"../etc/passwd.txt", "dir/notes.md", `dir\notes.md`, "..", ".hidden.md", "nul\x00.md"}
	for _, name := range invalid {
		err := ValidateNewName(name)
		assert.Truef(t, errors.Is(err, models.ErrInvalidName), "ValidateNewName(%q) = %v", name, err)
	}
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("nofile.ext"))
	assert.ErrorIs(t, ValidateName("../users.yml"), models.ErrInvalidName)
	assert.ErrorIs(t, ValidateName(""), models.ErrInvalidName)
}

func TestListNames(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"changes.txt", "about.md", ".tmp-123"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	names, err := ListNames(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"about.md", "changes.txt"}, names)
}

func TestListNames_MissingDir(t *testing.T) {
	_, err := ListNames(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
