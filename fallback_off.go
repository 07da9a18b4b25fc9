// SPDX-FileCopyrightText: 2025 Dyne.org foundation
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build sailfishpool_nofallback

package sailfishpool

import "unsafe"

const fallbackEnabled = false

// fallbackAllocate never runs: Allocate checks fallbackEnabled before
// reaching here. Present so pool.go compiles identically under both tags.
func fallbackAllocate(size uintptr) unsafe.Pointer { return nil }

func fallbackRelease(unsafe.Pointer) {}
