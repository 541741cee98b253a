// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"
	mathrand "math/rand/v2"

	"github.com/holiman/uint256"

	"github.com/corral-labs/corral/corral"
)

func RandomHash() corral.Bytes32 {
	var b32 corral.Bytes32

	rand.Read(b32[:])
	return b32
}

func RandAddress() (addr corral.Address) {
	rand.Read(addr[:])
	return
}

// RandItemID returns a random non-zero item id below 2^32.
func RandItemID() *uint256.Int {
	return uint256.NewInt(uint64(mathrand.Uint32N(1<<31) + 1)) //#nosec G404
}

func RandInt() int {
	return mathrand.Int() //#nosec G404
}

func RandIntN(n int) int {
	return mathrand.N(n) //#nosec G404
}
