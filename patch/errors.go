// SPDX-License-Identifier: MIT
// Package patch: sentinel error set.
// All messages are prefixed with "patch: ..."; callers match with errors.Is.

package patch

import "errors"

var (
	// ErrNilMatrix indicates a nil distance source was passed in.
	ErrNilMatrix = errors.New("patch: distance matrix is nil")

	// ErrBadPatchCount indicates fewer than two patches were requested.
	ErrBadPatchCount = errors.New("patch: patch count must be >= 2")

	// ErrBadRadius indicates a non-finite radius or minRadius > maxRadius.
	ErrBadRadius = errors.New("patch: radii must be finite with min <= max")

	// ErrVertexOutOfRange indicates a center vertex with no row in the matrix.
	ErrVertexOutOfRange = errors.New("patch: vertex out of range")

	// ErrPatchIndex indicates a patch index outside the list.
	ErrPatchIndex = errors.New("patch: patch index out of range")

	// ErrRagged indicates lists of different lengths were given to Save/Write.
	ErrRagged = errors.New("patch: every vertex must have the same number of patches")

	// ErrFile wraps operating-system failures on patch files.
	ErrFile = errors.New("patch: file error")

	// ErrCorrupt indicates a truncated stream or an implausible header.
	ErrCorrupt = errors.New("patch: corrupt patch data")
)
