// SPDX-FileCopyrightText: 2025 Dyne.org foundation
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build !sailfishpool_nosecurezero

package sailfishpool

import "unsafe"

// zeroBlock scrubs n bytes starting at p. Secure zeroing is compiled in by
// default; build with -tags sailfishpool_nosecurezero to strip it entirely
// for workloads that don't need erase-on-free (see zero_off.go).
func zeroBlock(p unsafe.Pointer, n uintptr) {
	secureZero(p, n)
}

const secureZeroEnabled = true
