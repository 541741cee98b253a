// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package chain keeps the block counter every invocation is timed against.
package chain

import (
	"math"
	"sync"

	"github.com/pkg/errors"

	"github.com/corral-labs/corral/kv"
	"github.com/corral-labs/corral/log"
)

var logger = log.WithContext("pkg", "chain")

// Chain is a monotonically increasing block counter persisted in kv.
// Invocations execute in the pending block, which is one past the best block.
type Chain struct {
	store kv.GetPutter
	mu    sync.RWMutex
	head  Head
}

// New opens the chain stored in db, starting at block 0 on first use.
func New(db kv.GetPutter) (*Chain, error) {
	store := kv.Bucket(headStoreName).NewGetPutter(db)
	head, err := loadHead(store)
	if err != nil {
		if !store.IsNotFound(err) {
			return nil, errors.Wrap(err, "load head")
		}
		head = &Head{}
		if err := saveHead(store, head); err != nil {
			return nil, errors.Wrap(err, "save head")
		}
	}
	metricBestBlock().Set(int64(head.Number))
	return &Chain{store: store, head: *head}, nil
}

// Head returns a copy of the current head.
func (c *Chain) Head() Head {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.head
}

// BestBlock returns the number of the newest mined block.
func (c *Chain) BestBlock() uint32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.head.Number
}

// PendingBlock returns the number of the block being filled.
func (c *Chain) PendingBlock() uint32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.head.Number + 1
}

// BlockNumber implements the clock of the staking engine.
func (c *Chain) BlockNumber() uint32 {
	return c.PendingBlock()
}

// StageTx reserves the next receipt index in the pending block. The advanced
// head is put into batch, which must write to the store the chain was opened
// on. It takes effect once apply is called after the batch is written.
func (c *Chain) StageTx(batch kv.Batch) (uint32, func(), error) {
	c.mu.RLock()
	head := c.head
	c.mu.RUnlock()

	index := head.PendingTxs
	head.PendingTxs++
	if err := saveHead(kv.Bucket(headStoreName).WrapBatch(batch), &head); err != nil {
		return 0, nil, errors.Wrap(err, "save head")
	}
	return index, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.head = head
	}, nil
}

// Mine seals the pending block and n-1 empty blocks after it, returning the new best block.
func (c *Chain) Mine(n uint32) (uint32, error) {
	if n == 0 {
		return 0, errors.New("nothing to mine")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// the pending block number must stay representable
	if uint64(c.head.Number)+uint64(n) >= math.MaxUint32 {
		return 0, errors.New("block number overflow")
	}
	head := Head{Number: c.head.Number + n}
	if err := saveHead(c.store, &head); err != nil {
		return 0, errors.Wrap(err, "save head")
	}
	c.head = head

	metricBestBlock().Set(int64(head.Number))
	metricMinedBlocks().Add(int64(n))
	logger.Debug("mined", "blocks", n, "best", head.Number)
	return head.Number, nil
}
