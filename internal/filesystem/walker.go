package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/dmars8047/DSMZip/internal/config"
	"github.com/dmars8047/DSMZip/pkg/models"
	"go.uber.org/zap"
)

// Walker collects the filesystem entries that make up an archive
type Walker struct {
	config *config.Config
	logger *zap.Logger
	skip   map[string]bool
}

// NewWalker creates a new filesystem walker
func NewWalker(cfg *config.Config, logger *zap.Logger) *Walker {
	return &Walker{
		config: cfg,
		logger: logger,
		skip:   make(map[string]bool),
	}
}

// Skip excludes an exact path from collection, e.g. the archive being written
func (w *Walker) Skip(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		w.skip[abs] = true
	}
}

// Collect returns every file and directory beneath root, ordered by full path.
// The root itself is not part of the result.
func (w *Walker) Collect(root string) ([]*models.FileSystemEntry, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil || !info.IsDir() {
		return nil, models.NotFound("directory", root)
	}

	var entries []*models.FileSystemEntry
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("Error accessing path", zap.String("path", path), zap.Error(err))
			return err
		}

		if path == absRoot {
			return nil
		}

		if w.config.IsExcluded(d.Name()) || w.skip[path] {
			w.logger.Debug("Skipping excluded path", zap.String("path", path))
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		entry, err := w.newEntry(path, d)
		if err != nil {
			return err
		}
		if entry != nil {
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect %s: %w", root, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].SortKey() < entries[j].SortKey()
	})

	w.logger.Debug("Collected directory",
		zap.String("root", absRoot),
		zap.Int("entries", len(entries)))

	return entries, nil
}

// CollectFiles returns one entry per listed file in the order supplied
func (w *Walker) CollectFiles(paths []string) ([]*models.FileSystemEntry, error) {
	entries := make([]*models.FileSystemEntry, 0, len(paths))
	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
		}

		info, err := os.Stat(absPath)
		if err != nil || !info.Mode().IsRegular() {
			return nil, models.NotFound("file", path)
		}

		entries = append(entries, &models.FileSystemEntry{
			Path:    absPath,
			Kind:    models.KindFile,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return entries, nil
}

// newEntry builds an entry for a walked path. Symlinks are followed to
// regular files; links to directories and dangling links are dropped.
func (w *Walker) newEntry(path string, d fs.DirEntry) (*models.FileSystemEntry, error) {
	info, err := os.Stat(path)
	if err != nil {
		if d.Type()&fs.ModeSymlink != 0 {
			w.logger.Warn("Skipping broken symlink", zap.String("path", path), zap.Error(err))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if d.Type()&fs.ModeSymlink != 0 && info.IsDir() {
		w.logger.Warn("Skipping symlinked directory", zap.String("path", path))
		return nil, nil
	}

	if info.IsDir() {
		return &models.FileSystemEntry{
			Path:    path,
			Kind:    models.KindDirectory,
			ModTime: info.ModTime(),
		}, nil
	}

	if !info.Mode().IsRegular() {
		w.logger.Warn("Skipping irregular file", zap.String("path", path))
		return nil, nil
	}

	return &models.FileSystemEntry{
		Path:    path,
		Kind:    models.KindFile,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}
