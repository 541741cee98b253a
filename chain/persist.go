// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/corral-labs/corral/kv"
)

const headStoreName = "chain.head"

var headKey = []byte("head")

type putter interface {
	Put(key, value []byte) error
}

// Head is the persisted tip of the chain.
type Head struct {
	// number of the newest mined block
	Number uint32
	// invocations already executed in the pending block
	PendingTxs uint32
}

func saveRLP(w putter, key []byte, val any) error {
	data, err := rlp.EncodeToBytes(val)
	if err != nil {
		return err
	}
	return w.Put(key, data)
}

func loadRLP(r kv.Getter, key []byte, val any) error {
	data, err := r.Get(key)
	if err != nil {
		return err
	}
	return rlp.DecodeBytes(data, val)
}

func saveHead(w putter, head *Head) error {
	return saveRLP(w, headKey, head)
}

func loadHead(r kv.Getter) (*Head, error) {
	var head Head
	if err := loadRLP(r, headKey, &head); err != nil {
		return nil, err
	}
	return &head, nil
}
