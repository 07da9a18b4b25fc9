// SPDX-FileCopyrightText: 2025 Dyne.org foundation
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build riscv64

package internal

// CacheLineSize is the L1 cache line size for RISC-V 64-bit architectures.
// Common implementations (SiFive, T-Head) use 64-byte cache lines.
const CacheLineSize = 64
