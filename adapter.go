// SPDX-FileCopyrightText: 2025 Dyne.org foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package sailfishpool

import "unsafe"

// Realloc implements the four-argument allocator shape embedding hosts such
// as Lua expect: given the previous pointer (nil for a fresh allocation),
// its old size, and the requested new size, it returns the pointer to use
// going forward (nil if newSize is zero or the request could not be
// satisfied). The ud parameter is accepted and ignored — this package keeps
// no per-call userdata — so the method value itself can be passed wherever
// a host wants a bound allocator callback.
func (p *Pool) Realloc(ud unsafe.Pointer, ptr unsafe.Pointer, oldSize, newSize uintptr) unsafe.Pointer {
	return p.Resize(ptr, oldSize, newSize)
}

// HostAlloc is the free function form of Realloc, for host APIs that take a
// bare function pointer plus a userdata blob rather than a bound method
// value — the pool itself is threaded through ud.
func HostAlloc(ud unsafe.Pointer, ptr unsafe.Pointer, oldSize, newSize uintptr) unsafe.Pointer {
	p := (*Pool)(ud)
	return p.Resize(ptr, oldSize, newSize)
}
