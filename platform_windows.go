// SPDX-FileCopyrightText: 2025 Dyne.org foundation
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build windows

package sailfishpool

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// platformReserve commits n bytes of virtual memory. VirtualAlloc returns
// memory aligned to the system allocation granularity, well above the
// package's cache-line alignment requirement.
func platformReserve(n uintptr) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, n, windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil || addr == 0 {
		return nil, ErrOutOfMemory
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), n), nil
}

func platformRelease(buf []byte) {
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	_ = windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}
