// SPDX-FileCopyrightText: 2025 Dyne.org foundation
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build sailfishpool_nosecurezero

package sailfishpool

import "unsafe"

// zeroBlock is a no-op build: secure zeroing costs nothing when the caller
// doesn't need erase-on-free, at the price of leaking stale block contents
// to the next allocation of the same slot.
func zeroBlock(p unsafe.Pointer, n uintptr) {}

const secureZeroEnabled = false
