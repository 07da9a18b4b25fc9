// SPDX-FileCopyrightText: 2025 Dyne.org foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package sailfishpool

import (
	"unsafe"

	"github.com/dyne/sailfish-pool/internal"
)

// cacheLineSize is the CPU L1 cache line size for the current architecture,
// detected at compile time. The heap-backed arena start is aligned to it,
// and PoolRegistry uses it to spread consecutive slots across cache lines,
// to avoid false sharing between independently owned pools.
const cacheLineSize = internal.CacheLineSize

// alignUp rounds addr up to the nearest multiple of align, which must be a
// power of two.
func alignUp(addr, align uintptr) uintptr {
	return (addr + align - 1) &^ (align - 1)
}

// alignPointer returns p rounded up to the given power-of-two alignment.
func alignPointer(p unsafe.Pointer, align uintptr) unsafe.Pointer {
	addr := uintptr(p)
	return unsafe.Add(p, alignUp(addr, align)-addr)
}

// cacheLineAlignedMem returns a byte slice of the requested size whose
// starting address is aligned to cacheLineSize. Used by the heap-backed
// platform provider fallback, which otherwise gives no alignment guarantee
// beyond what the Go allocator happens to produce.
func cacheLineAlignedMem(size uintptr) []byte {
	buf := make([]byte, size+cacheLineSize-1)
	base := unsafe.Pointer(unsafe.SliceData(buf))
	offset := uintptr(alignPointer(base, cacheLineSize)) - uintptr(base)
	return unsafe.Slice((*byte)(unsafe.Add(base, offset)), size)
}
