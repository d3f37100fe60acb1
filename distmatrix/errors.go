// SPDX-License-Identifier: MIT
// Package distmatrix: sentinel error set.
// Every message is prefixed with "distmatrix: ...". Callers match with
// errors.Is; context is added with fmt.Errorf("ctx: %w", ErrX).

package distmatrix

import "errors"

var (
	// ErrNilGraph indicates that a nil graph was passed to Build.
	ErrNilGraph = errors.New("distmatrix: graph is nil")

	// ErrBadShape is returned when a requested shape is negative or too large.
	ErrBadShape = errors.New("distmatrix: invalid shape")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	// Public indexers (At/Set/Row/SetRow) return this, they never panic.
	ErrOutOfRange = errors.New("distmatrix: index out of range")

	// ErrDimensionMismatch indicates a row of the wrong length was supplied.
	ErrDimensionMismatch = errors.New("distmatrix: dimension mismatch")

	// ErrNilMatrix indicates that a nil *Matrix receiver was used.
	ErrNilMatrix = errors.New("distmatrix: nil receiver")

	// ErrFile wraps operating-system failures to open, create, write or
	// rename a matrix file. The underlying *os.PathError stays reachable.
	ErrFile = errors.New("distmatrix: file error")

	// ErrCorrupt indicates a truncated stream or an implausible header.
	ErrCorrupt = errors.New("distmatrix: corrupt matrix data")

	// ErrUnknownCompression indicates an unsupported compression name or id.
	ErrUnknownCompression = errors.New("distmatrix: unknown compression")
)
