// SPDX-FileCopyrightText: 2025 Dyne.org foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package sailfishpool_test

import (
	"bytes"
	"testing"
	"unsafe"

	sailfishpool "github.com/dyne/sailfish-pool"
)

func mustPool(t *testing.T, blockCount, blockSize int) *sailfishpool.Pool {
	t.Helper()
	p, err := sailfishpool.NewPool(blockCount, blockSize)
	if err != nil {
		t.Fatalf("NewPool(%d, %d): %v", blockCount, blockSize, err)
	}
	t.Cleanup(p.Teardown)
	return p
}

func readBytes(ptr unsafe.Pointer, n uintptr) []byte {
	return bytes.Clone(unsafe.Slice((*byte)(ptr), n))
}

func writeBytes(ptr unsafe.Pointer, n uintptr, v byte) {
	buf := unsafe.Slice((*byte)(ptr), n)
	for i := range buf {
		buf[i] = v
	}
}

// Small round-trip: eight blocks of 128 bytes, allocate all eight with
// 64-byte requests, release in reverse, expect the next allocation to be
// the arena start (LIFO).
func TestPool_SmallRoundTrip(t *testing.T) {
	p := mustPool(t, 8, 128)

	var ptrs []unsafe.Pointer
	seen := make(map[uintptr]bool)
	for i := 0; i < 8; i++ {
		ptr := p.Allocate(64)
		if ptr == nil {
			t.Fatalf("allocation %d returned nil", i)
		}
		if !p.Contains(ptr) {
			t.Fatalf("allocation %d: expected in-pool pointer", i)
		}
		addr := uintptr(ptr)
		if seen[addr] {
			t.Fatalf("allocation %d: pointer %x already returned", i, addr)
		}
		seen[addr] = true
		ptrs = append(ptrs, ptr)
	}

	base := uintptr(ptrs[0])
	for i, ptr := range ptrs {
		want := base + uintptr(i)*128
		if uintptr(ptr) != want {
			t.Fatalf("block %d: got address %x, want %x", i, ptr, want)
		}
	}

	for i := len(ptrs) - 1; i >= 0; i-- {
		p.Release(ptrs[i])
	}

	next := p.Allocate(64)
	if next != ptrs[0] {
		t.Fatalf("post-release allocation: got %x, want %x (LIFO)", next, ptrs[0])
	}
}

// Saturation fallback: two blocks of 64 bytes; a third 32-byte request must
// spill to the host allocator and be reported as foreign.
func TestPool_SaturationFallback(t *testing.T) {
	p := mustPool(t, 2, 64)

	a := p.Allocate(32)
	b := p.Allocate(32)
	c := p.Allocate(32)
	if a == nil || b == nil || c == nil {
		t.Fatal("expected all three allocations to succeed")
	}
	if !p.Contains(a) || !p.Contains(b) {
		t.Fatal("expected first two allocations to be in-pool")
	}
	if p.Contains(c) {
		t.Fatal("expected third allocation to be foreign")
	}

	p.Release(a)
	p.Release(b)
	p.Release(c)

	if got := p.Stats(); got != (sailfishpool.Stats{}) && got.Releases != 2 {
		// Only assert when profiling is compiled in; the zero-value guard
		// keeps this test buildable with -tags sailfishpool_noprofiling.
		t.Fatalf("expected 2 in-pool releases, got %d", got.Releases)
	}
}

// Cross-boundary resize: grow a 32-byte in-pool allocation to 200 bytes.
// The result must be foreign and carry over the written prefix.
func TestPool_CrossBoundaryResize(t *testing.T) {
	p := mustPool(t, 4, 64)

	ptr := p.Allocate(32)
	if ptr == nil || !p.Contains(ptr) {
		t.Fatal("expected an in-pool allocation")
	}
	writeBytes(ptr, 32, 0xAA)

	grown := p.Resize(ptr, 32, 200)
	if grown == nil {
		t.Fatal("expected resize to succeed")
	}
	if p.Contains(grown) {
		t.Fatal("expected the grown allocation to be foreign")
	}
	prefix := readBytes(grown, 32)
	for i, b := range prefix {
		if b != 0xAA {
			t.Fatalf("byte %d: got %#x, want 0xAA", i, b)
		}
	}
}

// Zero resize: resizing an in-pool pointer to zero releases it and returns
// nil.
func TestPool_ZeroResize(t *testing.T) {
	p := mustPool(t, 4, 64)

	ptr := p.Allocate(32)
	if ptr == nil {
		t.Fatal("expected allocation to succeed")
	}
	if got := p.Resize(ptr, 32, 0); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}

	next := p.Allocate(32)
	if next != ptr {
		t.Fatalf("expected the released block to be reused, got %x want %x", next, ptr)
	}
}

// Null resize: resizing nil with a free list available behaves exactly
// like Allocate.
func TestPool_NullResize(t *testing.T) {
	p := mustPool(t, 4, 64)

	got := p.Resize(nil, 0, 48)
	if got == nil || !p.Contains(got) {
		t.Fatal("expected an in-pool allocation")
	}
}

// Foreign release: a pointer the pool never produced is routed to the
// fallback release path, which the ForeignFrees counter records.
func TestPool_ForeignRelease(t *testing.T) {
	p := mustPool(t, 4, 64)

	foreignBuf := make([]byte, 64)
	foreign := unsafe.Pointer(unsafe.SliceData(foreignBuf))
	if p.Contains(foreign) {
		t.Fatal("heap-allocated slice must not collide with the arena")
	}

	before := p.Stats()
	p.Release(foreign)
	after := p.Stats()
	if after != (sailfishpool.Stats{}) && after.ForeignFrees != before.ForeignFrees+1 {
		t.Fatalf("expected ForeignFrees to increase by one, got %d -> %d", before.ForeignFrees, after.ForeignFrees)
	}
}

func TestPool_InvalidBlockSize(t *testing.T) {
	cases := []int{0, 3, 5, int(unsafe.Sizeof(uintptr(0))) / 2}
	for _, bs := range cases {
		if _, err := sailfishpool.NewPool(4, bs); !sailfishpool.IsInvalidBlockSize(err) {
			t.Errorf("block size %d: expected ErrInvalidBlockSize, got %v", bs, err)
		}
	}
}

func TestPool_ReleaseNilIsNoop(t *testing.T) {
	p := mustPool(t, 2, 64)
	p.Release(nil) // must not panic
}

func TestPool_AllocateZeroSize(t *testing.T) {
	p := mustPool(t, 2, 64)
	ptr := p.Allocate(0)
	if ptr == nil {
		t.Fatal("expected a valid pointer for a zero-size request")
	}
}

func TestPool_FallbackDisabledOnSaturation(t *testing.T) {
	p := mustPool(t, 1, 64)
	p.SetFallbackDisabled(true)

	first := p.Allocate(32)
	if first == nil {
		t.Fatal("expected the first allocation to succeed")
	}
	second := p.Allocate(32)
	if second != nil {
		t.Fatal("expected nil once the arena is saturated and fallback is disabled")
	}
}

// A foreign pointer must stay foreign when resized, even when the arena has
// since freed up a slot that would otherwise happily satisfy the request.
func TestPool_ResizeForeignStaysForeign(t *testing.T) {
	p := mustPool(t, 1, 64)

	a := p.Allocate(64) // in-pool, exhausts the arena
	if a == nil || !p.Contains(a) {
		t.Fatal("expected the first allocation to be in-pool")
	}
	f := p.Allocate(32) // saturated, must spill to fallback
	if f == nil || p.Contains(f) {
		t.Fatal("expected the second allocation to be foreign")
	}

	p.Release(a) // free list now has a slot that would fit f's resize

	r := p.Resize(f, 32, 32)
	if r == nil {
		t.Fatal("expected resize to succeed")
	}
	if p.Contains(r) {
		t.Fatal("a foreign pointer must not migrate into the arena on resize")
	}
}

func TestPool_Status(t *testing.T) {
	p := mustPool(t, 4, 64)
	p.Allocate(32)
	var buf bytes.Buffer
	p.Status(&buf)
	if buf.Len() == 0 {
		t.Fatal("expected Status to write a non-empty report")
	}
}
