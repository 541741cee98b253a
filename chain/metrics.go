// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import "github.com/corral-labs/corral/metrics"

var (
	metricBestBlock   = metrics.LazyLoadGauge("chain_best_block")
	metricMinedBlocks = metrics.LazyLoadCounter("chain_mined_blocks_count")
)
