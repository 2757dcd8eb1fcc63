package archive

import (
	"errors"
	"fmt"
	"io"

	"github.com/dmars8047/DSMZip/internal/config"
	"github.com/dmars8047/DSMZip/internal/progress"
)

// bufferSize returns the configured copy chunk size. Invalid values fall back
// to the default; callers validate the config before streaming.
func bufferSize(cfg *config.Config) int {
	size, err := cfg.GetBufferSize()
	if err != nil {
		return config.DefaultBufferSize
	}
	return size
}

// copyChunks copies src to dst one buffer at a time, advancing every tracker
// after each chunk is written
func copyChunks(dst io.Writer, src io.Reader, buf []byte, trackers ...*progress.Tracker) (int64, error) {
	var written int64
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			m, err := dst.Write(buf[:n])
			if err != nil {
				return written, fmt.Errorf("write failed: %w", err)
			}
			if m != n {
				return written, io.ErrShortWrite
			}
			written += int64(n)
			for _, t := range trackers {
				t.Advance(int64(n))
			}
		}
		if errors.Is(readErr, io.EOF) {
			return written, nil
		}
		if readErr != nil {
			return written, fmt.Errorf("read failed: %w", readErr)
		}
	}
}
