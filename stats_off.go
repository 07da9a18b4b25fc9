// SPDX-FileCopyrightText: 2025 Dyne.org foundation
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build sailfishpool_noprofiling

package sailfishpool

// statsState is empty under this build: every method is a no-op the
// compiler inlines away, so profiling costs nothing when disabled.
type statsState struct{}

func (s *statsState) recordHit(size uintptr)    {}
func (s *statsState) recordMiss(size uintptr)   {}
func (s *statsState) recordRelease()            {}
func (s *statsState) recordForeignFree()        {}
func (s *statsState) snapshot() Stats           { return Stats{} }
