// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package corral

import (
	"hash"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/crypto/blake2b"
)

var blake2bPool = sync.Pool{
	New: func() any {
		h, _ := blake2b.New256(nil)
		return h
	},
}

// Blake2b computes blake2b-256 checksum for given data.
// It derives storage positions of mapping entries.
func Blake2b(data ...[]byte) (h Bytes32) {
	if len(data) == 1 {
		return blake2b.Sum256(data[0])
	}
	hasher := blake2bPool.Get().(hash.Hash)
	for _, b := range data {
		hasher.Write(b)
	}
	hasher.Sum(h[:0])
	hasher.Reset()
	blake2bPool.Put(hasher)
	return
}

// Keccak256 computes keccak-256 checksum for given data, the hash used by event signatures.
func Keccak256(data ...[]byte) Bytes32 {
	return Bytes32(crypto.Keccak256Hash(data...))
}
