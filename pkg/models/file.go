package models

import (
	"time"
)

// EntryKind distinguishes files from directories
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDirectory
)

// String returns the kind name
func (k EntryKind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	default:
		return "file"
	}
}

// FileSystemEntry represents a file or directory discovered during traversal
type FileSystemEntry struct {
	Path    string    // Absolute path
	Kind    EntryKind // File or directory
	Size    int64     // Size in bytes (0 for directories)
	ModTime time.Time // Modification time
}

// IsDir reports whether the entry is a directory
func (e *FileSystemEntry) IsDir() bool {
	return e.Kind == KindDirectory
}

// SortKey returns the key entries are ordered by
func (e *FileSystemEntry) SortKey() string {
	return e.Path
}

// TotalSize sums the sizes of all file entries
func TotalSize(entries []*FileSystemEntry) int64 {
	var total int64
	for _, e := range entries {
		if e.Kind == KindFile {
			total += e.Size
		}
	}
	return total
}
