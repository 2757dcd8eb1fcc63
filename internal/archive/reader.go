package archive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dmars8047/DSMZip/internal/config"
	"github.com/dmars8047/DSMZip/internal/filesystem"
	"github.com/dmars8047/DSMZip/internal/progress"
	"github.com/dmars8047/DSMZip/pkg/models"
	"github.com/klauspost/compress/zip"
	"go.uber.org/zap"
)

// EntryInfo describes one entry of an existing archive
type EntryInfo struct {
	Name           string           // Raw entry name
	Path           string           // Slash separated relative path
	Kind           models.EntryKind // File or directory
	Size           int64            // Uncompressed size
	CompressedSize int64            // Stored size
}

// ExtractStats summarizes an extraction
type ExtractStats struct {
	Entries int   // Entries recreated
	Bytes   int64 // File bytes written
}

// Reader recreates archive entries on disk
type Reader struct {
	config   *config.Config
	logger   *zap.Logger
	buf      []byte
	callback progress.Callback
}

// NewReader creates a new archive reader
func NewReader(cfg *config.Config, logger *zap.Logger) *Reader {
	return &Reader{
		config: cfg,
		logger: logger,
		buf:    make([]byte, bufferSize(cfg)),
	}
}

// SetProgressCallback sets the progress callback function
func (r *Reader) SetProgressCallback(cb progress.Callback) {
	r.callback = cb
}

// IsArchivePath reports whether path carries the zip extension
func IsArchivePath(p string) bool {
	return strings.EqualFold(filepath.Ext(p), Extension)
}

// List returns the entries of an archive sorted by name
func List(archivePath string) ([]EntryInfo, error) {
	rc, err := open(archivePath)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	files := sortedFiles(rc.File)
	entries := make([]EntryInfo, 0, len(files))
	for _, f := range files {
		rel, kind := filesystem.ParseEntryName(f.Name)
		entries = append(entries, EntryInfo{
			Name:           f.Name,
			Path:           rel,
			Kind:           kind,
			Size:           int64(f.UncompressedSize64),
			CompressedSize: int64(f.CompressedSize64),
		})
	}
	return entries, nil
}

// Extract recreates every entry of archivePath under destRoot, which must
// already exist. Entries are processed in ascending name order.
func (r *Reader) Extract(ctx context.Context, archivePath, destRoot, label string) (*ExtractStats, error) {
	rc, err := open(archivePath)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	files := sortedFiles(rc.File)

	var total int64
	for _, f := range files {
		if _, kind := filesystem.ParseEntryName(f.Name); kind == models.KindFile {
			total += int64(f.UncompressedSize64)
		}
	}

	overall := progress.New(progress.ScopeOverall, label, total, r.callback)
	stats := &ExtractStats{}

	for _, f := range files {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		rel, kind := filesystem.ParseEntryName(f.Name)
		if rel == "" {
			continue
		}

		target, err := ValidateExtractPath(destRoot, rel)
		if err != nil {
			r.logger.Warn("Rejected archive entry", zap.String("entry", f.Name), zap.Error(err))
			return stats, models.FormatError("entry", f.Name)
		}

		if kind == models.KindDirectory {
			if err := os.MkdirAll(target, 0755); err != nil {
				return stats, fmt.Errorf("failed to create directory %s: %w", target, err)
			}
			stats.Entries++
			continue
		}

		n, err := r.extractFile(f, target, rel, overall)
		stats.Bytes += n
		if err != nil {
			return stats, err
		}
		stats.Entries++
	}

	overall.Finish()

	return stats, nil
}

// extractFile streams one entry into a truncated destination file
func (r *Reader) extractFile(f *zip.File, target, rel string, overall *progress.Tracker) (n int64, err error) {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return 0, fmt.Errorf("failed to create parent directory for %s: %w", target, err)
	}

	entryReader, err := f.Open()
	if err != nil {
		return 0, fmt.Errorf("failed to open entry %s: %w", f.Name, err)
	}
	defer entryReader.Close()

	outFile, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return 0, fmt.Errorf("failed to create file %s: %w", target, err)
	}
	defer func() {
		if cerr := outFile.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file %s: %w", target, cerr)
		}
	}()

	tracker := progress.New(progress.ScopeItem, path.Base(rel), int64(f.UncompressedSize64), r.callback)

	n, err = copyChunks(outFile, entryReader, r.buf, overall, tracker)
	if err != nil {
		return n, fmt.Errorf("failed to extract %s: %w", f.Name, err)
	}

	tracker.Finish()

	r.logger.Debug("Extracted file",
		zap.String("entry", f.Name),
		zap.Int64("bytes", n))

	return n, nil
}

func open(archivePath string) (*zip.ReadCloser, error) {
	rc, err := zip.OpenReader(archivePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, models.NotFound("archive", archivePath)
		}
		if errors.Is(err, zip.ErrFormat) {
			return nil, models.FormatError("archive", archivePath)
		}
		return nil, fmt.Errorf("failed to open archive %s: %w", archivePath, err)
	}
	return rc, nil
}

func sortedFiles(files []*zip.File) []*zip.File {
	sorted := make([]*zip.File, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}
