// SPDX-FileCopyrightText: 2025 Dyne.org foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package sailfishpool

import "testing"

// TestNoCopy exercises the noCopy sentinel type. noCopy implements
// sync.Locker so go vet flags accidental copies of Pool and PoolRegistry.
func TestNoCopy(t *testing.T) {
	var nc noCopy
	nc.Lock()
	nc.Unlock()
}
