// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package health tracks whether the node keeps sealing blocks.
package health

import (
	"context"
	"sync"
	"time"

	"github.com/corral-labs/corral/runtime"
)

type BlockIngestion struct {
	Number    uint32     `json:"number"`
	Timestamp *time.Time `json:"timestamp"`
}

type Status struct {
	Healthy        bool            `json:"healthy"`
	BlockIngestion *BlockIngestion `json:"blockIngestion"`
	OnDemand       bool            `json:"onDemand"`
}

// allowance for a late interval block
const delayBuffer = 5 * time.Second

type Health struct {
	lock         sync.RWMutex
	newBestBlock time.Time
	bestBlock    uint32
	// zero when blocks are sealed on demand
	blockInterval time.Duration
	rt            *runtime.Runtime
}

// New creates a Health for a node mining every blockInterval. A zero interval
// means blocks are only sealed by invocations, so block age says nothing.
func New(rt *runtime.Runtime, blockInterval time.Duration) *Health {
	return &Health{
		newBestBlock:  time.Now(),
		bestBlock:     rt.Chain().BestBlock(),
		blockInterval: blockInterval,
		rt:            rt,
	}
}

// Run follows the best block until ctx is done.
func (h *Health) Run(ctx context.Context) {
	ticker := h.rt.NewTicker()
	for {
		if best := h.rt.Chain().BestBlock(); best != h.best() {
			h.NewBestBlock(best)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
		}
	}
}

func (h *Health) best() uint32 {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return h.bestBlock
}

func (h *Health) Status() *Status {
	h.lock.RLock()
	defer h.lock.RUnlock()

	minedAt := h.newBestBlock
	onDemand := h.blockInterval == 0
	return &Status{
		Healthy: onDemand || time.Since(h.newBestBlock) <= h.blockInterval+delayBuffer,
		BlockIngestion: &BlockIngestion{
			Number:    h.bestBlock,
			Timestamp: &minedAt,
		},
		OnDemand: onDemand,
	}
}

func (h *Health) NewBestBlock(number uint32) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.newBestBlock = time.Now()
	h.bestBlock = number
}
