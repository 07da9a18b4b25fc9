// SPDX-FileCopyrightText: 2025 Dyne.org foundation
// SPDX-License-Identifier: GPL-3.0-or-later

// Package sailfishpool implements a fixed-size-block memory pool allocator
// meant as a drop-in replacement for the allocate/release/resize trio used
// by embedding hosts — scripting-language runtimes in particular — that
// perform many small, short-lived allocations.
//
// # Why a block pool
//
// Small requests are served in constant time from a single pre-reserved
// arena; requests larger than the configured block size transparently fall
// through to the host allocator. No per-allocation metadata is kept: a
// pointer is classified as pool-owned or foreign purely by comparing its
// address against the arena's address range.
//
// # Basic usage
//
//	pool, err := sailfishpool.NewPool(8192, 128) // 8192 blocks of 128 bytes
//	if err != nil {
//	    // reservation failed
//	}
//	defer pool.Teardown()
//
//	p := pool.Allocate(64)          // served from the arena in O(1)
//	p = pool.Resize(p, 64, 256)     // migrates to the host allocator
//	pool.Release(p)                 // routed by address, not by bookkeeping
//
// # Thread safety
//
// Pool is not safe for concurrent use — see the package-level Non-goals in
// the design notes. A host that needs to serve several single-threaded
// interpreters from independent pools should hand them out via
// PoolRegistry, which is safe for concurrent Acquire/Release.
//
// # Compile-time configuration
//
// Secure zeroing, system fallback, and profiling counters are toggled at
// compile time via build tags (sailfishpool_nosecurezero,
// sailfishpool_nofallback, sailfishpool_noprofiling) rather than runtime
// flags, so a disabled feature costs nothing in the compiled binary.
//
// # Platform memory provider
//
// The arena is reserved from the operating system rather than the Go heap
// where possible: anonymous demand-paged mappings on POSIX (locked into
// physical memory when the RLIMIT_MEMLOCK budget allows), committed virtual
// pages on Windows, and an ordinary heap allocation on platforms lacking a
// mapping API (js/wasm, plan9).
package sailfishpool
