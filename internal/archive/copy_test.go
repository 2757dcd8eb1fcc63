package archive

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/dmars8047/DSMZip/internal/config"
	"github.com/dmars8047/DSMZip/internal/progress"
)

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return len(p) - 1, nil
}

func TestCopyChunks(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		bufSize int
	}{
		{"Empty", 0, 8},
		{"Smaller than buffer", 5, 8},
		{"Exact buffer", 8, 8},
		{"Several chunks", 100, 8},
		{"Partial last chunk", 21, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := bytes.Repeat([]byte("x"), tt.size)
			var dst bytes.Buffer

			var events []progress.Event
			tracker := progress.New(progress.ScopeItem, "data", int64(tt.size), func(e progress.Event) {
				events = append(events, e)
			})

			n, err := copyChunks(&dst, bytes.NewReader(data), make([]byte, tt.bufSize), tracker)
			if err != nil {
				t.Fatalf("copyChunks() error = %v", err)
			}
			if n != int64(tt.size) {
				t.Errorf("copyChunks() = %d, want %d", n, tt.size)
			}
			if !bytes.Equal(dst.Bytes(), data) {
				t.Errorf("copied %d bytes, want %d", dst.Len(), tt.size)
			}
			if tracker.Complete() != int64(tt.size) {
				t.Errorf("tracker complete = %d, want %d", tracker.Complete(), tt.size)
			}
			if tt.size > 0 && tracker.Percent() != 100 {
				t.Errorf("tracker percent = %d, want 100", tracker.Percent())
			}
		})
	}
}

func TestCopyChunks_OneByteReader(t *testing.T) {
	src := iotest.OneByteReader(strings.NewReader("hello world"))
	var dst bytes.Buffer

	n, err := copyChunks(&dst, src, make([]byte, 4))
	if err != nil {
		t.Fatalf("copyChunks() error = %v", err)
	}
	if n != 11 || dst.String() != "hello world" {
		t.Errorf("copyChunks() = %d %q", n, dst.String())
	}
}

func TestCopyChunks_Errors(t *testing.T) {
	readErr := errors.New("disk on fire")

	t.Run("Read error", func(t *testing.T) {
		src := io.MultiReader(strings.NewReader("abc"), iotest.ErrReader(readErr))
		var dst bytes.Buffer
		n, err := copyChunks(&dst, src, make([]byte, 2))
		if !errors.Is(err, readErr) {
			t.Errorf("copyChunks() error = %v, want %v", err, readErr)
		}
		if n != 3 {
			t.Errorf("copyChunks() = %d, want 3", n)
		}
	})

	t.Run("Short write", func(t *testing.T) {
		_, err := copyChunks(shortWriter{}, strings.NewReader("abc"), make([]byte, 8))
		if !errors.Is(err, io.ErrShortWrite) {
			t.Errorf("copyChunks() error = %v, want io.ErrShortWrite", err)
		}
	})
}

func TestBufferSize(t *testing.T) {
	tests := []struct {
		value    string
		expected int
	}{
		{"", config.DefaultBufferSize},
		{"4K", 4096},
		{"64K", 65536},
		{"1M", 1024 * 1024},
		{"512", 512},
		{"64KB", 65536},
		{"64M", config.MaxBufferSize},
		{"garbage", config.DefaultBufferSize},
		{"1000000G", config.DefaultBufferSize},
		{"65M", config.DefaultBufferSize},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			cfg := &config.Config{BufferSize: tt.value}
			if got := bufferSize(cfg); got != tt.expected {
				t.Errorf("bufferSize(%q) = %d, want %d", tt.value, got, tt.expected)
			}
		})
	}
}
