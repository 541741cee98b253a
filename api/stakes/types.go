// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakes

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/corral-labs/corral/api/utils"
	"github.com/corral-labs/corral/corral"
)

// Invoked methods, signed by callers along with the item id.
const (
	MethodStake   = "stake"
	MethodUnstake = "unstake"
)

// StakeRequest is the body of stake and unstake requests.
type StakeRequest struct {
	utils.Signed
	ItemID *math.HexOrDecimal256 `json:"itemId"`
}

// Stake is the position of one staked item.
type Stake struct {
	Owner     corral.Address        `json:"owner"`
	ItemID    *math.HexOrDecimal256 `json:"itemId"`
	StakedAt  uint32                `json:"stakedAt"`
	LastClaim uint32                `json:"lastClaim"`
	Active    bool                  `json:"active"`
	// unclaimed accrual of this position as of the pending block
	Accrued *math.HexOrDecimal256 `json:"accrued"`
	// first block the position may be withdrawn in
	UnlocksAt uint32 `json:"unlocksAt"`
}

// OwnerStakes lists the active positions of an owner.
type OwnerStakes struct {
	Owner  corral.Address `json:"owner"`
	Block  uint32         `json:"block"`
	Stakes []*Stake       `json:"stakes"`
}
