// SPDX-FileCopyrightText: 2025 Dyne.org foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package sailfishpool

import "errors"

var (
	// ErrInvalidBlockSize is returned by NewPool when the requested block
	// size is not a power of two or is smaller than a native pointer.
	ErrInvalidBlockSize = errors.New("sailfishpool: block size must be a power of two and at least pointer-sized")

	// ErrOutOfMemory is returned when the platform memory provider fails to
	// reserve the arena at NewPool time. Per-call allocation failures on the
	// fallback path are reported by returning a nil pointer, matching the
	// original malloc/free contract — there is no per-call error channel.
	ErrOutOfMemory = errors.New("sailfishpool: out of memory")
)

// IsOutOfMemory reports whether err is, or wraps, ErrOutOfMemory.
func IsOutOfMemory(err error) bool {
	return errors.Is(err, ErrOutOfMemory)
}

// IsInvalidBlockSize reports whether err is, or wraps, ErrInvalidBlockSize.
func IsInvalidBlockSize(err error) bool {
	return errors.Is(err, ErrInvalidBlockSize)
}
