// SPDX-FileCopyrightText: 2025 Dyne.org foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package sailfishpool

import "unsafe"

// Resize changes the size of the allocation at ptr and returns a pointer to
// the (possibly relocated) block. It covers five transitions:
//
//   - newSize == 0: equivalent to Release(ptr); returns nil. This includes
//     ptr == nil, which releases nothing and returns nil.
//   - ptr == nil, newSize > 0: equivalent to Allocate(newSize).
//   - ptr in-pool, newSize still fits a block: ptr is returned unchanged.
//   - ptr in-pool, newSize doesn't fit: a new block is obtained via
//     Allocate, the full block_size bytes are copied, and the old block is
//     released. block_size is the only bound the pool can vouch for — it
//     keeps no record of how many of those bytes are actually live.
//   - ptr foreign, regardless of newSize: a new foreign block is obtained
//     directly from the host allocator (never from the pool's free list),
//     content up to min(oldSize, newSize) is copied, and the old foreign
//     pointer is dropped via Release.
//
// oldSize is the size originally requested for ptr. It is only consulted on
// the foreign-pointer path: Go has no equivalent of a system realloc that
// already knows a block's usable size, so the caller must supply it there.
// It is ignored for in-pool pointers, where block_size is the bound.
func (p *Pool) Resize(ptr unsafe.Pointer, oldSize, newSize uintptr) unsafe.Pointer {
	if newSize == 0 {
		p.Release(ptr)
		return nil
	}
	if ptr == nil {
		return p.Allocate(newSize)
	}

	inPool := p.Contains(ptr)
	if inPool && newSize <= p.bSize {
		return ptr
	}

	var next unsafe.Pointer
	if inPool {
		next = p.Allocate(newSize)
	} else {
		// A foreign pointer must stay foreign no matter what newSize is:
		// going through Allocate would let it land back on the free list
		// whenever newSize happens to fit a block and one is free.
		if !fallbackEnabled {
			return nil
		}
		next = fallbackAllocate(newSize)
		if next != nil {
			p.stats.recordMiss(newSize)
		}
	}
	if next == nil {
		// A failed grow leaves the original allocation untouched rather
		// than releasing it out from under the caller.
		return nil
	}

	if inPool {
		copy(unsafe.Slice((*byte)(next), p.bSize), unsafe.Slice((*byte)(ptr), p.bSize))
	} else {
		n := oldSize
		if newSize < n {
			n = newSize
		}
		if n > 0 {
			copy(unsafe.Slice((*byte)(next), n), unsafe.Slice((*byte)(ptr), n))
		}
	}
	p.Release(ptr)
	return next
}
