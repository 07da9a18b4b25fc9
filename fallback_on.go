// SPDX-FileCopyrightText: 2025 Dyne.org foundation
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build !sailfishpool_nofallback

package sailfishpool

import "unsafe"

// fallbackEnabled gates use of the host allocator at compile time. Left on
// by default; build with -tags sailfishpool_nofallback for hosts that must
// never touch memory outside the reserved arena.
const fallbackEnabled = true

// fallbackAllocate serves a request the arena cannot, handing the block off
// to the Go heap. The returned pointer is not arena-owned: Contains reports
// false for it, and Release/Resize route it back here rather than onto the
// free list.
func fallbackAllocate(size uintptr) unsafe.Pointer {
	if size == 0 {
		size = 1
	}
	buf := make([]byte, size)
	return unsafe.Pointer(unsafe.SliceData(buf))
}

// fallbackRelease drops a foreign pointer. There is no explicit free for
// heap-backed memory in Go: once the last reference is gone the garbage
// collector reclaims it. This is the Go-native reading of a free() call the
// original contract expects to be a no-op-or-reclaim regardless.
func fallbackRelease(unsafe.Pointer) {}
