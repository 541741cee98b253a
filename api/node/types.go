// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import "github.com/corral-labs/corral/corral"

type Contracts struct {
	Params     corral.Address `json:"params"`
	Collection corral.Address `json:"collection"`
	Token      corral.Address `json:"token"`
	StakeNFT   corral.Address `json:"stakeNFT"`
}

type Info struct {
	Network      string         `json:"network"`
	Owner        corral.Address `json:"owner"`
	BestBlock    uint32         `json:"bestBlock"`
	PendingBlock uint32         `json:"pendingBlock"`
	PendingTxs   uint32         `json:"pendingTxs"`
	Contracts    Contracts      `json:"contracts"`
	DevAPI       bool           `json:"devAPI"`
}
