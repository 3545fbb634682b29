package storage

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is matched by every read failure that yields no content.
	ErrNotFound = errors.New("no content found")

	// ErrFolderNotRegistered is the cause of reads against a folder the registry does not know.
	ErrFolderNotRegistered = errors.New("folder not registered")
)

// Status classifies the outcome of a storage operation.
type Status int

const (
	StatusOK Status = iota
	StatusNotFound
	StatusIOError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNotFound:
		return "not-found"
	case StatusIOError:
		return "io-error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// StatusOf returns the status of an error returned by this package.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrNotFound):
		return StatusNotFound
	default:
		return StatusIOError
	}
}

// ReadError is returned by read operations that produced no content.
type ReadError struct {
	Path string // file path, or folder name when the folder is not registered
	Err  error  // underlying cause
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrNotFound, e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Is makes every ReadError match ErrNotFound.
func (e *ReadError) Is(target error) bool {
	return target == ErrNotFound
}
