package config

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxBufferSize bounds buffer_size
const MaxBufferSize = 64 * 1024 * 1024

// ParseSize parses size string (e.g., "4K", "64KB", "1M") to bytes.
// Units are K, M and G with an optional trailing B; a bare number is bytes.
func ParseSize(sizeStr string) (int64, error) {
	s := strings.ToUpper(strings.TrimSpace(sizeStr))
	if s == "" {
		return 0, fmt.Errorf("empty size")
	}

	s = strings.TrimSuffix(s, "B")

	var multiplier int64 = 1
	switch {
	case strings.HasSuffix(s, "K"):
		multiplier = 1024
	case strings.HasSuffix(s, "M"):
		multiplier = 1024 * 1024
	case strings.HasSuffix(s, "G"):
		multiplier = 1024 * 1024 * 1024
	}
	if multiplier > 1 {
		s = s[:len(s)-1]
	}

	size, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q", sizeStr)
	}
	if size <= 0 {
		return 0, fmt.Errorf("size %q must be positive", sizeStr)
	}
	if size > (1<<62)/multiplier {
		return 0, fmt.Errorf("size %q is too large", sizeStr)
	}

	return size * multiplier, nil
}

// GetBufferSize returns the copy chunk size in bytes. An empty buffer_size
// selects DefaultBufferSize.
func (c *Config) GetBufferSize() (int, error) {
	if c.BufferSize == "" {
		return DefaultBufferSize, nil
	}

	size, err := ParseSize(c.BufferSize)
	if err != nil {
		return 0, fmt.Errorf("buffer_size: %w", err)
	}
	if size > MaxBufferSize {
		return 0, fmt.Errorf("buffer_size: %s exceeds the 64M maximum", c.BufferSize)
	}

	return int(size), nil
}

// Validate checks values that cannot be corrected silently
func (c *Config) Validate() error {
	if _, err := c.GetBufferSize(); err != nil {
		return err
	}
	return nil
}
