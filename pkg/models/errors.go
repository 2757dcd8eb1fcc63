package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a source directory, file or archive is missing
	ErrNotFound = errors.New("not found")
	// ErrFormat is returned when an archive is not a zip file or holds invalid entries
	ErrFormat = errors.New("invalid archive format")
	// ErrAlreadyExists is returned when a destination already exists
	ErrAlreadyExists = errors.New("already exists")
)

// PathError records the resource an operation failed on
type PathError struct {
	Op   string // What was being resolved: "directory", "file", "archive", "destination", "entry"
	Path string
	Err  error
}

func (e *PathError) Error() string {
	switch {
	case errors.Is(e.Err, ErrNotFound):
		return fmt.Sprintf("the %s '%s' does not exist", e.Op, e.Path)
	case errors.Is(e.Err, ErrAlreadyExists):
		return fmt.Sprintf("the %s '%s' already exists", e.Op, e.Path)
	case errors.Is(e.Err, ErrFormat) && e.Op == "archive":
		return fmt.Sprintf("the %s '%s' does not appear to be a zip file", e.Op, e.Path)
	case errors.Is(e.Err, ErrFormat):
		return fmt.Sprintf("invalid %s '%s'", e.Op, e.Path)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// NotFound builds a PathError wrapping ErrNotFound
func NotFound(op, path string) error {
	return &PathError{Op: op, Path: path, Err: ErrNotFound}
}

// AlreadyExists builds a PathError wrapping ErrAlreadyExists
func AlreadyExists(op, path string) error {
	return &PathError{Op: op, Path: path, Err: ErrAlreadyExists}
}

// FormatError builds a PathError wrapping ErrFormat
func FormatError(op, path string) error {
	return &PathError{Op: op, Path: path, Err: ErrFormat}
}
