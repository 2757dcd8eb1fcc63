package models

import (
	"math"
	"time"
)

// Operation identifies what produced a result
type Operation string

const (
	OperationCompress Operation = "compress"
	OperationExtract  Operation = "extract"
)

// ArchiveResult describes the artifact of a finished operation.
// For compression Size is the archive size on disk and OriginalSize the
// uncompressed total. For extraction Size is the extracted byte total and
// OriginalSize the archive size.
type ArchiveResult struct {
	Operation    Operation     `json:"operation" yaml:"operation"`
	Name         string        `json:"name" yaml:"name"`
	Path         string        `json:"path" yaml:"path"`
	Directory    string        `json:"directory" yaml:"directory"`
	Size         int64         `json:"size" yaml:"size"`
	OriginalSize int64         `json:"original_size" yaml:"original_size"`
	Entries      int           `json:"entries" yaml:"entries"`
	StartTime    time.Time     `json:"start_time" yaml:"start_time"`
	EndTime      time.Time     `json:"end_time" yaml:"end_time"`
	Duration     time.Duration `json:"duration" yaml:"duration"`
}

// CompressedSize returns the size of the archive side of the operation
func (r *ArchiveResult) CompressedSize() int64 {
	if r.Operation == OperationExtract {
		return r.OriginalSize
	}
	return r.Size
}

// UncompressedSize returns the size of the filesystem side of the operation
func (r *ArchiveResult) UncompressedSize() int64 {
	if r.Operation == OperationExtract {
		return r.Size
	}
	return r.OriginalSize
}

// KB converts bytes to kilobytes, rounded to the nearest whole kilobyte
func KB(n int64) int64 {
	return int64(math.Round(float64(n) / 1024))
}
