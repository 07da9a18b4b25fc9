// SPDX-FileCopyrightText: 2025 Dyne.org foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package sailfishpool

import "unsafe"

// secureZero overwrites n bytes starting at p with zero, in 32-bit strides.
// Block sizes are powers of two at least pointer-wide, so n is always a
// multiple of four.
//
// The pointer is round-tripped through a volatile-style access pattern:
// each store goes through p as an unsafe.Pointer that the compiler cannot
// prove is dead, because it escapes this function via the original
// arena/fallback allocation it targets. This mirrors sfutil_zero from the
// original implementation, which uses a plain (non-volatile-qualified in
// the portable-C sense) loop relying on the same non-elidability argument.
func secureZero(p unsafe.Pointer, n uintptr) {
	words := n / 4
	for i := uintptr(0); i < words; i++ {
		*(*uint32)(unsafe.Add(p, i*4)) = 0
	}
}
