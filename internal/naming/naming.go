// Package naming decides document names: which names are acceptable for new
// documents and which name a copy of an existing document receives.
package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/atinyakov/docstore/internal/models"
)

// Extensions lists the recognized document extensions.
var Extensions = []string{".md", ".txt"}

// ListNames returns the base names of the regular files in dir, sorted.
func ListNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		// temp files of in-flight writes
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// ResolveDuplicateName returns the lowest "<base>(<n>)<ext>", n >= 2, that is
// not in existing. existing itself is never modified.
func ResolveDuplicateName(original string, existing []string) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(original, ext)

	taken := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		taken[name] = struct{}{}
	}

	// Each probe either succeeds or hits a distinct member of taken, so at
	// most len(existing)+1 probes are made.
	for n := 2; ; n++ {
		candidate := base + "(" + strconv.Itoa(n) + ")" + ext
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
		taken[candidate] = struct{}{}
	}
}

// ValidateNewName checks that name is acceptable for a new document: it must
// be path-safe, have a non-empty base and end in .md or .txt.
func ValidateNewName(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	for _, ext := range Extensions {
		if strings.HasSuffix(name, ext) && len(name) > len(ext) {
			return nil
		}
	}
	return fmt.Errorf("%q: must be a .md or .txt document: %w", name, models.ErrInvalidName)
}

// ValidateName checks that name refers to a file directly inside the
// document directory.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("empty name: %w", models.ErrInvalidName)
	case name == "." || name == "..":
		return fmt.Errorf("%q: %w", name, models.ErrInvalidName)
	case strings.ContainsAny(name, `/\`+"\x00"):
		return fmt.Errorf("%q: contains a path separator: %w", name, models.ErrInvalidName)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("%q: hidden names are reserved: %w", name, models.ErrInvalidName)
	}
	return nil
}
