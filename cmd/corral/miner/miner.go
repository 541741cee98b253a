// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package miner seals blocks on a fixed interval when the node does not automine.
package miner

import (
	"context"
	"time"

	"github.com/beevik/ntp"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/corral-labs/corral/log"
	"github.com/corral-labs/corral/runtime"
)

var logger = log.WithContext("pkg", "miner")

const (
	ntpServer       = "pool.ntp.org"
	clockSyncPeriod = 10 * time.Minute
)

type Options struct {
	BlockInterval time.Duration
	// query an NTP server periodically and warn on local clock drift
	CheckClock bool
}

type Miner struct {
	rt      *runtime.Runtime
	options Options
}

func New(rt *runtime.Runtime, options Options) *Miner {
	return &Miner{
		rt:      rt,
		options: options,
	}
}

// Run mines until ctx is done.
func (m *Miner) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	logger.Info("prepared to mine blocks", "interval", m.options.BlockInterval)
	g.Go(func() error {
		return m.loop(ctx)
	})
	if m.options.CheckClock {
		g.Go(func() error {
			m.clockSync(ctx)
			return nil
		})
	}
	return g.Wait()
}

func (m *Miner) loop(ctx context.Context) error {
	ticker := time.NewTicker(m.options.BlockInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("stopping interval mining service......")
			return nil
		case <-ticker.C:
			head := m.rt.Chain().Head()
			best, err := m.rt.Mine(1)
			if err != nil {
				return err
			}
			logger.Debug("block mined", "number", best, "txs", head.PendingTxs)
		}
	}
}

func (m *Miner) clockSync(ctx context.Context) {
	ticker := time.NewTicker(clockSyncPeriod)
	defer ticker.Stop()

	m.checkClockOffset()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.checkClockOffset()
		}
	}
}

func (m *Miner) checkClockOffset() {
	resp, err := ntp.Query(ntpServer)
	if err != nil {
		logger.Debug("failed to access NTP", "err", err)
		return
	}
	if resp.ClockOffset > m.options.BlockInterval/2 {
		logger.Warn("clock offset detected", "offset", common.PrettyDuration(resp.ClockOffset))
	}
}
