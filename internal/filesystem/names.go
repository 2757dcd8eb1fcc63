package filesystem

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmars8047/DSMZip/pkg/models"
)

// EntrySeparator is the canonical separator inside archive entry names
const EntrySeparator = "/"

// EntryName derives the archive entry name of an entry relative to root.
// Directory names end with exactly one separator.
func EntryName(entry *models.FileSystemEntry, root string) (string, error) {
	cleanRoot := filepath.Clean(root)
	path := filepath.Clean(entry.Path)

	if !strings.HasPrefix(path, cleanRoot) {
		return "", fmt.Errorf("path %s is not under %s", entry.Path, root)
	}

	rest := path[len(cleanRoot):]
	if rest != "" && !strings.HasSuffix(cleanRoot, string(filepath.Separator)) &&
		!strings.HasPrefix(rest, string(filepath.Separator)) {
		// Shares a prefix with root but is a sibling, e.g. /docs2 vs /docs
		return "", fmt.Errorf("path %s is not under %s", entry.Path, root)
	}

	name := strings.TrimLeft(filepath.ToSlash(rest), EntrySeparator)
	if name == "" {
		return "", fmt.Errorf("path %s is the traversal root", entry.Path)
	}

	return withKind(name, entry.Kind), nil
}

// BaseEntryName derives the entry name for file-list archives, which keep no
// directory structure
func BaseEntryName(entry *models.FileSystemEntry) string {
	return withKind(filepath.Base(entry.Path), entry.Kind)
}

// ParseEntryName converts an archive entry name into a slash separated
// relative path and its kind. Both "/" and "\" are accepted as separators.
func ParseEntryName(name string) (string, models.EntryKind) {
	name = strings.ReplaceAll(name, `\`, EntrySeparator)

	kind := models.KindFile
	if strings.HasSuffix(name, EntrySeparator) {
		kind = models.KindDirectory
	}

	return strings.Trim(name, EntrySeparator), kind
}

func withKind(name string, kind models.EntryKind) string {
	if kind == models.KindDirectory {
		return strings.TrimRight(name, EntrySeparator) + EntrySeparator
	}
	return name
}
