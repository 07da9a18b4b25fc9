// SPDX-FileCopyrightText: 2025 Dyne.org foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package sailfishpool

// noCopy is embedded in types that must not be copied after first use — the
// free list and arena pointers it guards are only valid for the original
// value. go vet flags copies of any struct embedding noCopy via the
// sync.Locker interface.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
