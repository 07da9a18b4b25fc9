// SPDX-FileCopyrightText: 2025 Dyne.org foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package sailfishpool

import (
	"sync/atomic"
	"unsafe"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/spin"
)

// PoolRegistry hands out exclusive ownership of independently reserved Pool
// instances to concurrent goroutines — for a host running several
// single-threaded interpreters, each wanting its own arena, rather than for
// sharing one Pool's internals across threads. A Pool itself stays
// unsynchronized; PoolRegistry only arbitrates which goroutine currently
// owns which Pool.
//
// PoolRegistry is safe for concurrent Acquire/Release. The underlying
// index-exchange algorithm is the same bounded MPMC ring described in:
//
//	https://nikitakoval.org/publications/ppopp20-queues.pdf
type PoolRegistry struct {
	_ noCopy

	items    []*Pool
	capacity uint32
	mask     uint32

	entries   []atomic.Uint64
	remapM    uint32
	remapN    uint32
	remapMask uint32

	head, tail atomic.Uint32

	nonblocking bool
}

// NewPoolRegistry creates a registry with room for capacity pools. capacity
// must be between 1 and 1<<31 and is rounded up to the next power of two —
// the upper bound keeps that rounded value representable in a uint32, which
// backs every index into entries.
func NewPoolRegistry(capacity int) *PoolRegistry {
	const maxCapacity = 1 << 31
	if capacity < 1 || capacity > maxCapacity {
		panic("capacity must be between 1 and 1<<31")
	}
	capacity--
	capacity |= capacity >> 1
	capacity |= capacity >> 2
	capacity |= capacity >> 4
	capacity |= capacity >> 8
	capacity |= capacity >> 16
	capacity++

	remapM := min(cacheLineSize/unsafe.Sizeof(atomic.Uint64{}), uintptr(capacity))
	remapN := max(1, uintptr(capacity)/remapM)
	remapMask := remapN - 1

	return &PoolRegistry{
		items:     make([]*Pool, 0, capacity),
		capacity:  uint32(capacity),
		mask:      uint32(capacity - 1),
		remapM:    uint32(remapM),
		remapN:    uint32(remapN),
		remapMask: uint32(remapMask),
	}
}

// Fill reserves capacity pools, one per slot, using newFunc. It must be
// called once before Acquire/Release, and stops at the first reservation
// failure so a host can abort startup cleanly rather than run with a
// partially filled registry.
func (r *PoolRegistry) Fill(newFunc func() (*Pool, error)) error {
	for range r.capacity {
		p, err := newFunc()
		if err != nil {
			return err
		}
		r.items = append(r.items, p)
	}
	r.entries = make([]atomic.Uint64, r.capacity)
	for i := range r.entries {
		r.entries[i].Store(uint64(i))
	}
	r.tail.Store(r.capacity)
	return nil
}

// SetNonblock controls whether Acquire/Release return iox.ErrWouldBlock
// immediately (true) or block with adaptive backoff (false, the default)
// when the registry is respectively empty or full.
func (r *PoolRegistry) SetNonblock(nonblocking bool) {
	r.nonblocking = nonblocking
}

// Cap returns the registry's capacity.
func (r *PoolRegistry) Cap() int {
	return int(r.capacity)
}

// Close tears down every pool the registry owns. The registry must not be
// used afterward.
func (r *PoolRegistry) Close() {
	for _, p := range r.items {
		p.Teardown()
	}
}

// PoolLease is a handle to an acquired Pool. Release must be called exactly
// once per successful Acquire to return the Pool to the registry.
type PoolLease struct {
	registry *PoolRegistry
	indirect uint32
}

// Pool returns the leased Pool.
func (l *PoolLease) Pool() *Pool {
	return l.registry.items[l.indirect]
}

// Acquire obtains exclusive ownership of a Pool from the registry, blocking
// with adaptive backoff (unless SetNonblock(true)) if none is currently
// available.
func (r *PoolRegistry) Acquire() (*PoolLease, error) {
	if len(r.items) != int(r.capacity) {
		panic("must Fill the registry before using it")
	}
	var aw iox.Backoff
	for {
		entry, err := r.tryGet()
		if err == nil {
			return &PoolLease{registry: r, indirect: uint32(entry & uint64(r.mask))}, nil
		}
		if err == iox.ErrWouldBlock {
			if r.nonblocking {
				return nil, err
			}
			aw.Wait()
			continue
		}
		return nil, err
	}
}

// Release returns a leased Pool to the registry.
func (r *PoolRegistry) Release(lease *PoolLease) error {
	entry := uint64(lease.indirect)
	var aw iox.Backoff
	for {
		err := r.tryPut(entry)
		if err == nil {
			return nil
		}
		if err == iox.ErrWouldBlock {
			if r.nonblocking {
				return err
			}
			aw.Wait()
			continue
		}
		return err
	}
}

const (
	registryEntryEmpty    = 1 << 62
	registryEntryTurnMask = registryEntryEmpty>>32 - 1
)

func (r *PoolRegistry) tryGet() (entry uint64, err error) {
	sw := spin.Wait{}
	for {
		h, t := r.head.Load(), r.tail.Load()
		hi := r.remap(h & r.mask)
		e := r.entries[hi].Load()

		if h != r.head.Load() {
			sw.Once()
			continue
		}
		if h == t {
			return registryEntryEmpty, iox.ErrWouldBlock
		}

		nextTurn := (h/r.capacity + 1) & registryEntryTurnMask
		if e == r.empty(nextTurn) {
			r.head.CompareAndSwap(h, h+1)
			sw.Once()
			continue
		}
		ok := r.entries[hi].CompareAndSwap(e, r.empty(nextTurn))
		r.head.CompareAndSwap(h, h+1)
		if ok {
			return e, nil
		}
		sw.Once()
	}
}

func (r *PoolRegistry) tryPut(e uint64) error {
	sw := spin.Wait{}
	for {
		h, t := r.head.Load(), r.tail.Load()
		if t != r.tail.Load() {
			sw.Once()
			continue
		}
		if t == h+r.capacity {
			return iox.ErrWouldBlock
		}
		turn, ti := (t/r.capacity)&registryEntryTurnMask, r.remap(t)
		ok := r.entries[ti].CompareAndSwap(r.empty(turn), e)
		r.tail.CompareAndSwap(t, t+1)
		if ok {
			return nil
		}
		sw.Once()
	}
}

func (r *PoolRegistry) remap(cursor uint32) int {
	p, q := cursor/r.remapN, cursor&r.remapMask
	return int(q*r.remapM + p%r.remapM)
}

func (r *PoolRegistry) empty(turn uint32) uint64 {
	return registryEntryEmpty | uint64(turn&registryEntryTurnMask)
}
