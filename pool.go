// SPDX-FileCopyrightText: 2025 Dyne.org foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package sailfishpool

import (
	"fmt"
	"io"
	"os"
	"unsafe"
)

const ptrSize = unsafe.Sizeof(uintptr(0))

// Pool is a fixed-size-block memory arena. It hands out blocks of at most
// blockSize bytes in O(1) from a pre-reserved range, and classifies any
// pointer as arena-owned or foreign by comparing it against that range —
// no per-allocation bookkeeping is kept.
//
// A Pool is not safe for concurrent use. A host that needs to serve several
// independent, single-threaded consumers should hand out separate Pool
// values through a PoolRegistry rather than share one Pool across
// goroutines.
type Pool struct {
	_ noCopy

	buffer []byte // keeps the reservation reachable for GC and Teardown
	data   unsafe.Pointer
	bSize  uintptr
	nBlock uint32

	freeList  unsafe.Pointer
	freeCount uint32

	fallbackDisabled bool

	stats statsState
}

// NewPool reserves an arena of blockCount blocks, each blockSize bytes.
// blockSize must be a power of two and at least pointer-sized, matching the
// constraint the free-list link and the alignment guarantees both rely on.
func NewPool(blockCount, blockSize int) (*Pool, error) {
	if blockCount < 1 {
		blockCount = 1
	}
	bSize := uintptr(blockSize)
	if bSize == 0 || bSize&(bSize-1) != 0 || bSize < ptrSize {
		return nil, ErrInvalidBlockSize
	}

	total := bSize * uintptr(blockCount)
	buf, err := platformReserve(total)
	if err != nil {
		return nil, ErrOutOfMemory
	}

	p := &Pool{
		buffer: buf,
		data:   unsafe.Pointer(unsafe.SliceData(buf)),
		bSize:  bSize,
		nBlock: uint32(blockCount),
	}
	p.threadFreeList()
	return p, nil
}

// threadFreeList links every block into a singly-linked free list in
// ascending address order, so the first blocks handed out are the ones
// closest to the start of the arena.
func (p *Pool) threadFreeList() {
	for i := uint32(0); i < p.nBlock; i++ {
		block := unsafe.Add(p.data, uintptr(i)*p.bSize)
		var next unsafe.Pointer
		if i+1 < p.nBlock {
			next = unsafe.Add(p.data, uintptr(i+1)*p.bSize)
		}
		*(*unsafe.Pointer)(block) = next
	}
	p.freeList = p.data
	p.freeCount = p.nBlock
}

// SetFallbackDisabled controls what happens when the arena is saturated
// (every block in use) and a request arrives that would otherwise fit in a
// block: true returns nil instead of spilling to the host allocator.
// Requests larger than the block size still use the host allocator whenever
// the package is built with fallback support, regardless of this setting.
func (p *Pool) SetFallbackDisabled(disabled bool) {
	p.fallbackDisabled = disabled
}

// Teardown releases the arena back to the platform. The Pool must not be
// used afterward; doing so is undefined behavior, same as dereferencing a
// pointer past a C free().
func (p *Pool) Teardown() {
	platformRelease(p.buffer)
	p.buffer = nil
	p.data = nil
	p.freeList = nil
	p.freeCount = 0
}

// Contains reports whether ptr falls within the arena's reserved address
// range. This is the sole mechanism used to classify a pointer as
// arena-owned or foreign — O(1) and independent of allocation history.
func (p *Pool) Contains(ptr unsafe.Pointer) bool {
	if ptr == nil || p.data == nil {
		return false
	}
	addr := uintptr(ptr)
	base := uintptr(p.data)
	return addr >= base && addr < base+uintptr(p.nBlock)*p.bSize
}

// Allocate returns a pointer to a block of at least size bytes. Requests
// that fit within the configured block size are served from the free list
// in O(1); larger requests, and small requests arriving once the free list
// is exhausted (unless SetFallbackDisabled(true) was called), are routed to
// the host allocator. Allocate returns nil when no memory can be produced —
// there is no error return, matching the pointer-returning host allocator
// contract this package is meant to sit behind.
func (p *Pool) Allocate(size uintptr) unsafe.Pointer {
	if size <= p.bSize && p.freeList != nil {
		block := p.freeList
		next := *(*unsafe.Pointer)(block)
		zeroBlock(block, ptrSize) // scrub the stale free-list link before handing it out
		p.freeList = next
		p.freeCount--
		p.stats.recordHit(size)
		return block
	}
	if size <= p.bSize && p.fallbackDisabled {
		return nil
	}
	if !fallbackEnabled {
		return nil
	}
	ptr := fallbackAllocate(size)
	if ptr != nil {
		p.stats.recordMiss(size)
	}
	return ptr
}

// Release returns ptr to the pool. In-pool pointers go back onto the free
// list in O(1); foreign pointers (from the host-allocator fallback, or from
// outside this package entirely) are dropped for the garbage collector to
// reclaim. Release(nil) is a no-op.
func (p *Pool) Release(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	if !p.Contains(ptr) {
		fallbackRelease(ptr)
		p.stats.recordForeignFree()
		return
	}
	if p.bSize > ptrSize {
		zeroBlock(unsafe.Add(ptr, ptrSize), p.bSize-ptrSize)
	}
	*(*unsafe.Pointer)(ptr) = p.freeList
	p.freeList = ptr
	p.freeCount++
	p.stats.recordRelease()
}

// Status writes a short human-readable diagnostic summary to w, reporting
// arena occupancy and the hit/miss counters. The counter line is always
// written; its values are all zero when profiling is compiled out.
func (p *Pool) Status(w io.Writer) {
	used := p.nBlock - p.freeCount
	fmt.Fprintf(w, "sailfishpool: %d/%d blocks used, block size %d, arena %d bytes\n",
		used, p.nBlock, p.bSize, uintptr(p.nBlock)*p.bSize)
	s := p.stats.snapshot()
	fmt.Fprintf(w, "sailfishpool: hits=%d misses=%d releases=%d foreign_frees=%d\n",
		s.Hits, s.Misses, s.Releases, s.ForeignFrees)
}

// PrintStatus writes the Status report to stderr, for interactive debugging
// sessions where wiring up an io.Writer isn't worth the trouble.
func (p *Pool) PrintStatus() {
	p.Status(os.Stderr)
}
