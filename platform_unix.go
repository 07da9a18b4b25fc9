// SPDX-FileCopyrightText: 2025 Dyne.org foundation
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build unix

package sailfishpool

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// platformReserve maps an anonymous, demand-paged arena of n bytes. mmap
// returns page-aligned memory, which comfortably satisfies the package's
// cache-line alignment requirement without extra slack.
//
// Where the platform budget allows it the arena is locked into physical
// memory so a later page fault can't hand allocate() a multi-millisecond
// stall: unconditionally on Darwin (mirroring the macOS branch of the
// original secure-allocation routine, which does not gate mlock behind a
// resource-limit check), and gated on RLIMIT_MEMLOCK everywhere else to
// avoid failing the whole reservation on a locked-down POSIX host.
func platformReserve(n uintptr) ([]byte, error) {
	buf, err := unix.Mmap(-1, 0, int(n), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, ErrOutOfMemory
	}
	switch runtime.GOOS {
	case "darwin":
		_ = unix.Mlock(buf)
	default:
		var rlim unix.Rlimit
		if err := unix.Getrlimit(unix.RLIMIT_MEMLOCK, &rlim); err == nil && n <= uintptr(rlim.Cur) {
			_ = unix.Mlock(buf)
		}
	}
	return buf, nil
}

func platformRelease(buf []byte) {
	_ = unix.Munlock(buf)
	_ = unix.Munmap(buf)
}
