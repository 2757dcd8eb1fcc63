package archive

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateExtractPath joins a slash separated entry name onto destPath and
// rejects names that would land outside it
func ValidateExtractPath(destPath, name string) (string, error) {
	cleanDestPath := filepath.Clean(destPath)
	path := filepath.Join(cleanDestPath, filepath.FromSlash(name))

	rel, err := filepath.Rel(cleanDestPath, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(name) {
		return "", fmt.Errorf("path outside destination directory: %s", name)
	}

	return path, nil
}
