package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmars8047/DSMZip/internal/archive"
	"github.com/dmars8047/DSMZip/internal/config"
	"github.com/dmars8047/DSMZip/internal/filesystem"
	"github.com/dmars8047/DSMZip/internal/progress"
	"github.com/dmars8047/DSMZip/pkg/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultArchiveName is used for file-list archives when no name is given
const DefaultArchiveName = "archive"

// State is the lifecycle stage of a single operation
type State string

const (
	StatePlanning  State = "planning"
	StateExecuting State = "executing"
	StateDone      State = "done"
	StateFailed    State = "failed"
)

// DirectoryOptions configures CompressDirectory
type DirectoryOptions struct {
	Source            string // Directory to compress
	ArchiveName       string // Optional archive name, ".zip" appended when missing
	ToParentDirectory bool   // Place the archive beside the source instead of the working directory
}

// FilesOptions configures CompressFiles
type FilesOptions struct {
	Files       []string // Files to compress, stored by base name
	ArchiveName string   // Optional archive name, ".zip" appended when missing
}

// ExtractOptions configures Extract
type ExtractOptions struct {
	ArchivePath       string // Archive to extract
	DestinationName   string // Optional destination folder name
	ToParentDirectory bool   // Extract beside the archive instead of the working directory
	Overwrite         bool   // Replace an existing destination
}

// Archiver composes collection, naming and streaming into the compress and
// extract operations
type Archiver struct {
	config           *config.Config
	logger           *zap.Logger
	workDir          string
	progressCallback progress.Callback
}

// NewArchiver creates a new archiver instance
func NewArchiver(cfg *config.Config, logger *zap.Logger) *Archiver {
	return &Archiver{
		config: cfg,
		logger: logger,
	}
}

// SetProgressCallback sets the progress callback function
func (a *Archiver) SetProgressCallback(cb progress.Callback) {
	a.progressCallback = cb
}

// SetWorkingDirectory overrides the directory relative names resolve against.
// The process working directory is used when unset.
func (a *Archiver) SetWorkingDirectory(dir string) {
	a.workDir = dir
}

// CompressDirectory writes every file and directory beneath opts.Source into
// a new archive. An existing archive at the destination is replaced.
func (a *Archiver) CompressDirectory(ctx context.Context, opts DirectoryOptions) (*models.ArchiveResult, error) {
	start := time.Now()
	a.transition(models.OperationCompress, StatePlanning, zap.String("source", opts.Source))

	if err := a.config.Validate(); err != nil {
		return nil, a.fail(models.OperationCompress, err)
	}

	source, err := filepath.Abs(opts.Source)
	if err != nil {
		return nil, a.fail(models.OperationCompress, fmt.Errorf("failed to resolve %s: %w", opts.Source, err))
	}
	if info, err := os.Stat(source); err != nil || !info.IsDir() {
		return nil, a.fail(models.OperationCompress, models.NotFound("directory", opts.Source))
	}

	base, err := a.baseDirectory(opts.ToParentDirectory, filepath.Dir(source))
	if err != nil {
		return nil, a.fail(models.OperationCompress, err)
	}
	dest := resolve(base, archiveName(opts.ArchiveName, filepath.Base(source)))

	walker := filesystem.NewWalker(a.config, a.logger)
	walker.Skip(dest)

	entries, err := walker.Collect(source)
	if err != nil {
		return nil, a.fail(models.OperationCompress, err)
	}

	items := make([]archive.Item, 0, len(entries))
	for _, entry := range entries {
		name, err := filesystem.EntryName(entry, source)
		if err != nil {
			return nil, a.fail(models.OperationCompress, err)
		}
		items = append(items, archive.Item{Entry: entry, Name: name})
	}

	return a.compress(ctx, dest, items, models.TotalSize(entries), start)
}

// CompressFiles writes the listed files into a new archive without any
// directory structure
func (a *Archiver) CompressFiles(ctx context.Context, opts FilesOptions) (*models.ArchiveResult, error) {
	start := time.Now()
	a.transition(models.OperationCompress, StatePlanning, zap.Strings("files", opts.Files))

	if err := a.config.Validate(); err != nil {
		return nil, a.fail(models.OperationCompress, err)
	}

	if len(opts.Files) == 0 {
		return nil, a.fail(models.OperationCompress, fmt.Errorf("no files to compress"))
	}

	walker := filesystem.NewWalker(a.config, a.logger)
	entries, err := walker.CollectFiles(opts.Files)
	if err != nil {
		return nil, a.fail(models.OperationCompress, err)
	}

	seen := make(map[string]bool)
	items := make([]archive.Item, 0, len(entries))
	for _, entry := range entries {
		name := filesystem.BaseEntryName(entry)
		if seen[name] {
			return nil, a.fail(models.OperationCompress, models.AlreadyExists("entry", name))
		}
		seen[name] = true
		items = append(items, archive.Item{Entry: entry, Name: name})
	}

	base, err := a.baseDirectory(false, "")
	if err != nil {
		return nil, a.fail(models.OperationCompress, err)
	}
	dest := resolve(base, archiveName(opts.ArchiveName, DefaultArchiveName))

	return a.compress(ctx, dest, items, models.TotalSize(entries), start)
}

// compress writes items to a temporary file beside dest and renames it into
// place once the archive is complete
func (a *Archiver) compress(ctx context.Context, dest string, items []archive.Item, total int64, start time.Time) (*models.ArchiveResult, error) {
	a.transition(models.OperationCompress, StateExecuting,
		zap.String("archive", dest),
		zap.Int("entries", len(items)),
		zap.Int64("bytes", total))

	if exists, _ := filesystem.Exists(dest); exists {
		a.logger.Info("Replacing existing archive", zap.String("archive", dest))
	}

	tmp := filepath.Join(filepath.Dir(dest), fmt.Sprintf(".%s.%s.tmp", filepath.Base(dest), uuid.New().String()))
	file, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, a.fail(models.OperationCompress, fmt.Errorf("failed to create archive %s: %w", dest, err))
	}

	writer := archive.NewWriter(a.config, a.logger)
	writer.SetProgressCallback(a.progressCallback)

	_, err = writer.Write(ctx, file, filepath.Base(dest), items)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close archive %s: %w", dest, closeErr)
	}
	if err == nil {
		err = os.Rename(tmp, dest)
	}
	if err != nil {
		a.discard(tmp)
		return nil, a.fail(models.OperationCompress, err)
	}

	info, err := os.Stat(dest)
	if err != nil {
		return nil, a.fail(models.OperationCompress, fmt.Errorf("failed to stat archive %s: %w", dest, err))
	}

	end := time.Now()
	result := &models.ArchiveResult{
		Operation:    models.OperationCompress,
		Name:         filepath.Base(dest),
		Path:         dest,
		Directory:    filepath.Dir(dest),
		Size:         info.Size(),
		OriginalSize: total,
		Entries:      len(items),
		StartTime:    start,
		EndTime:      end,
		Duration:     end.Sub(start),
	}

	a.transition(models.OperationCompress, StateDone,
		zap.String("archive", dest),
		zap.Int64("compressed", result.Size),
		zap.Int64("original", result.OriginalSize))

	return result, nil
}

// Extract recreates the tree stored in an archive. An existing destination is
// only replaced when opts.Overwrite is set.
func (a *Archiver) Extract(ctx context.Context, opts ExtractOptions) (*models.ArchiveResult, error) {
	start := time.Now()
	a.transition(models.OperationExtract, StatePlanning, zap.String("archive", opts.ArchivePath))

	if err := a.config.Validate(); err != nil {
		return nil, a.fail(models.OperationExtract, err)
	}

	archivePath, err := filepath.Abs(opts.ArchivePath)
	if err != nil {
		return nil, a.fail(models.OperationExtract, fmt.Errorf("failed to resolve %s: %w", opts.ArchivePath, err))
	}

	archiveInfo, err := os.Stat(archivePath)
	if err != nil || archiveInfo.IsDir() {
		return nil, a.fail(models.OperationExtract, models.NotFound("archive", opts.ArchivePath))
	}
	if !archive.IsArchivePath(archivePath) {
		return nil, a.fail(models.OperationExtract, models.FormatError("archive", opts.ArchivePath))
	}

	folder := opts.DestinationName
	if folder == "" {
		folder = filesystem.TrimExtension(filepath.Base(archivePath), archive.Extension)
	}

	base, err := a.baseDirectory(opts.ToParentDirectory, filepath.Dir(archivePath))
	if err != nil {
		return nil, a.fail(models.OperationExtract, err)
	}
	dest := resolve(base, folder)

	exists, err := filesystem.Exists(dest)
	if err != nil {
		return nil, a.fail(models.OperationExtract, fmt.Errorf("failed to check %s: %w", dest, err))
	}
	if exists {
		if !opts.Overwrite {
			return nil, a.fail(models.OperationExtract, models.AlreadyExists("destination", dest))
		}
		if within(archivePath, dest) {
			return nil, a.fail(models.OperationExtract, fmt.Errorf("destination %s contains the archive being extracted", dest))
		}
		a.logger.Info("Removing existing destination", zap.String("destination", dest))
		if err := os.RemoveAll(dest); err != nil {
			return nil, a.fail(models.OperationExtract, fmt.Errorf("failed to remove %s: %w", dest, err))
		}
	}

	if err := os.MkdirAll(dest, 0755); err != nil {
		return nil, a.fail(models.OperationExtract, fmt.Errorf("failed to create %s: %w", dest, err))
	}

	a.transition(models.OperationExtract, StateExecuting,
		zap.String("archive", archivePath),
		zap.String("destination", dest))

	reader := archive.NewReader(a.config, a.logger)
	reader.SetProgressCallback(a.progressCallback)

	stats, err := reader.Extract(ctx, archivePath, dest, folder)
	if err != nil {
		a.discard(dest)
		return nil, a.fail(models.OperationExtract, err)
	}

	end := time.Now()
	result := &models.ArchiveResult{
		Operation:    models.OperationExtract,
		Name:         filepath.Base(dest),
		Path:         dest,
		Directory:    filepath.Dir(dest),
		Size:         stats.Bytes,
		OriginalSize: archiveInfo.Size(),
		Entries:      stats.Entries,
		StartTime:    start,
		EndTime:      end,
		Duration:     end.Sub(start),
	}

	a.transition(models.OperationExtract, StateDone,
		zap.String("destination", dest),
		zap.Int64("extracted", result.Size),
		zap.Int64("compressed", result.OriginalSize))

	return result, nil
}

// baseDirectory picks the directory relative destinations resolve against
func (a *Archiver) baseDirectory(toParent bool, parent string) (string, error) {
	if toParent {
		return parent, nil
	}
	if a.workDir != "" {
		return a.workDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return wd, nil
}

// discard removes partial output unless configured to keep it
func (a *Archiver) discard(path string) {
	if a.config.KeepPartial {
		a.logger.Warn("Keeping partial output", zap.String("path", path))
		return
	}
	if err := os.RemoveAll(path); err != nil {
		a.logger.Warn("Failed to remove partial output", zap.String("path", path), zap.Error(err))
	}
}

func (a *Archiver) transition(op models.Operation, state State, fields ...zap.Field) {
	fields = append([]zap.Field{zap.String("operation", string(op)), zap.String("state", string(state))}, fields...)
	a.logger.Debug("Operation state", fields...)
}

func (a *Archiver) fail(op models.Operation, err error) error {
	a.transition(op, StateFailed, zap.Error(err))
	return err
}

// archiveName returns name, or fallback when name is empty, with the archive
// extension appended if missing
func archiveName(name, fallback string) string {
	if name == "" {
		name = fallback
	}
	if !archive.IsArchivePath(name) {
		name += archive.Extension
	}
	return name
}

// resolve joins relative names onto base; absolute names are kept
func resolve(base, name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(base, name)
}

// within reports whether path is dir or lies beneath it
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
