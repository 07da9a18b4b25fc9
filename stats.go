// SPDX-FileCopyrightText: 2025 Dyne.org foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package sailfishpool

// Stats is a point-in-time snapshot of a Pool's usage counters. It is the
// zero value when built with -tags sailfishpool_noprofiling.
type Stats struct {
	Hits         uint64 // allocations served from the arena
	Misses       uint64 // allocations routed to the host allocator
	HitBytes     uint64 // bytes requested on hits (not blockSize-rounded)
	MissBytes    uint64 // bytes requested on misses
	Releases     uint64 // in-pool blocks returned to the free list
	ForeignFrees uint64 // foreign pointers dropped for GC reclaim
}

// Stats reports the current counters. Cheap and safe to call at any time;
// a pool built with profiling disabled always returns the zero value.
func (p *Pool) Stats() Stats {
	return p.stats.snapshot()
}
