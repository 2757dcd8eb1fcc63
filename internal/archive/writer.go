package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmars8047/DSMZip/internal/config"
	"github.com/dmars8047/DSMZip/internal/progress"
	"github.com/dmars8047/DSMZip/pkg/models"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"go.uber.org/zap"
)

// Extension is the file extension of archives this package reads and writes
const Extension = ".zip"

// Item pairs a collected entry with its name inside the archive
type Item struct {
	Entry *models.FileSystemEntry
	Name  string
}

// Writer streams filesystem entries into a zip container
type Writer struct {
	config   *config.Config
	logger   *zap.Logger
	buf      []byte
	callback progress.Callback
}

// NewWriter creates a new archive writer
func NewWriter(cfg *config.Config, logger *zap.Logger) *Writer {
	return &Writer{
		config: cfg,
		logger: logger,
		buf:    make([]byte, bufferSize(cfg)),
	}
}

// SetProgressCallback sets the progress callback function
func (w *Writer) SetProgressCallback(cb progress.Callback) {
	w.callback = cb
}

// Write writes one archive entry per item, in order, to dst and returns the
// number of uncompressed bytes copied. The zip central directory is flushed
// before Write returns successfully; dst itself is left open.
func (w *Writer) Write(ctx context.Context, dst io.Writer, label string, items []Item) (int64, error) {
	zw := zip.NewWriter(dst)
	method := w.method()
	if method == zip.Deflate {
		level := w.flateLevel()
		zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(out, level)
		})
	}

	var total int64
	for _, item := range items {
		if item.Entry.Kind == models.KindFile {
			total += item.Entry.Size
		}
	}

	overall := progress.New(progress.ScopeOverall, label, total, w.callback)

	var written int64
	for _, item := range items {
		select {
		case <-ctx.Done():
			return written, ctx.Err()
		default:
		}

		if item.Entry.IsDir() {
			if err := w.writeDirectory(zw, item); err != nil {
				return written, err
			}
			continue
		}

		n, err := w.writeFile(zw, item, method, overall)
		written += n
		if err != nil {
			return written, err
		}
	}

	overall.Finish()

	if err := zw.Close(); err != nil {
		return written, fmt.Errorf("failed to finalize archive: %w", err)
	}

	return written, nil
}

// writeDirectory adds a zero-length directory marker entry
func (w *Writer) writeDirectory(zw *zip.Writer, item Item) error {
	header := &zip.FileHeader{
		Name:     item.Name,
		Method:   zip.Store,
		Modified: item.Entry.ModTime,
	}
	header.SetMode(os.ModeDir | 0755)

	if _, err := zw.CreateHeader(header); err != nil {
		return fmt.Errorf("failed to add directory %s: %w", item.Name, err)
	}

	w.logger.Debug("Added directory", zap.String("entry", item.Name))
	return nil
}

// writeFile streams a single source file into a new entry
func (w *Writer) writeFile(zw *zip.Writer, item Item, method uint16, overall *progress.Tracker) (int64, error) {
	source, err := os.Open(item.Entry.Path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", item.Entry.Path, err)
	}
	defer source.Close()

	header := &zip.FileHeader{
		Name:     item.Name,
		Method:   method,
		Modified: item.Entry.ModTime,
	}
	header.SetMode(0644)

	entryWriter, err := zw.CreateHeader(header)
	if err != nil {
		return 0, fmt.Errorf("failed to add entry %s: %w", item.Name, err)
	}

	tracker := progress.New(progress.ScopeItem, filepath.Base(item.Entry.Path), item.Entry.Size, w.callback)

	n, err := copyChunks(entryWriter, source, w.buf, overall, tracker)
	if err != nil {
		return n, fmt.Errorf("failed to compress %s: %w", item.Entry.Path, err)
	}

	tracker.Finish()

	w.logger.Debug("Added file",
		zap.String("entry", item.Name),
		zap.Int64("bytes", n))

	return n, nil
}

func (w *Writer) method() uint16 {
	if w.config.GetCompressionLevel() == config.LevelNone {
		return zip.Store
	}
	return zip.Deflate
}

func (w *Writer) flateLevel() int {
	switch w.config.GetCompressionLevel() {
	case config.LevelFastest:
		return flate.BestSpeed
	case config.LevelSmallest:
		return flate.BestCompression
	default:
		return flate.DefaultCompression
	}
}
