// Package errors defines the error values returned by document operations.
//
// Errors fall into three groups:
//
//   - Addressing: ErrRowOutOfRange, ErrColOutOfRange. A caller passed a
//     position outside the document.
//   - I/O: read, write, sync and rename failures. These are wrapped in a
//     *PathError carrying the operating-system cause.
//   - Policy: ErrNoTargetPath, ErrSessionActive. The operation was refused
//     rather than failed, so callers can react specifically (for example by
//     prompting for a file name).
//
// ErrRecoveryFormat reports a recovery artifact that cannot be used.
package errors

import (
	"errors"
	"fmt"
)

// Addressing errors.
var (
	// ErrRowOutOfRange indicates a row outside [0, LineCount()).
	ErrRowOutOfRange = errors.New("row out of range")

	// ErrColOutOfRange indicates a column outside [0, LineLen(row)].
	ErrColOutOfRange = errors.New("column out of range")
)

// Policy errors.
var (
	// ErrNoTargetPath indicates a save was requested for a document with no file identity.
	ErrNoTargetPath = errors.New("no target path")

	// ErrSessionActive indicates a recovery artifact for the path already exists.
	ErrSessionActive = errors.New("session already active")
)

// Data and file-system errors.
var (
	// ErrRecoveryFormat indicates a malformed recovery artifact.
	ErrRecoveryFormat = errors.New("invalid recovery artifact")

	// ErrIsDirectory indicates a file operation was attempted on a directory.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrClosed indicates the document has been disposed.
	ErrClosed = errors.New("document closed")
)

// PathError records an error and the operation and file path that caused it.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// IsPolicy reports whether err is a refused, rather than failed, operation.
func IsPolicy(err error) bool {
	return errors.Is(err, ErrNoTargetPath) || errors.Is(err, ErrSessionActive)
}
