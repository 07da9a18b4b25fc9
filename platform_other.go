// SPDX-FileCopyrightText: 2025 Dyne.org foundation
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build !unix && !windows

package sailfishpool

// platformReserve falls back to an ordinary heap allocation on platforms
// with no mapping API available to this module (js/wasm, plan9). There is
// no locking and no page alignment beyond what cacheLineAlignedMem adds by
// hand.
func platformReserve(n uintptr) ([]byte, error) {
	return cacheLineAlignedMem(n), nil
}

// platformRelease is a no-op: the arena is ordinary Go-heap memory and is
// reclaimed by the garbage collector once the Pool holding it is dropped.
func platformRelease(buf []byte) {}
