// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakenft

import (
	"github.com/corral-labs/corral/builtin/params"
	"github.com/corral-labs/corral/builtin/reverts"
)

// Rejections reported to callers. Every one of them leaves positions,
// custody and the reward pool untouched.
var (
	ErrUnauthorized           = reverts.New("Ownable: caller is not the owner")
	ErrStakingPaused          = reverts.New("Staking is paused")
	ErrNotOwnerOrNotApproved  = reverts.New("Caller is not item owner nor approved")
	ErrPositionAlreadyActive  = reverts.New("Item is already staked")
	ErrNoActivePosition       = reverts.New("Item is not staked")
	ErrNoActivePositions      = reverts.New("No staked items")
	ErrUnbondingNotElapsed    = reverts.New("Unstake period not met")
	ErrClaimDelayNotMet       = reverts.New("Claim delay not met")
	ErrInsufficientRewardPool = reverts.New("Insufficient reward pool")

	ErrReentrantCall      = reverts.New("ReentrancyGuard: reentrant call")
	ErrGenesisBlock       = reverts.New("Staking is not available in the genesis block")
	ErrArithmeticOverflow = reverts.New("Reward accrual overflow")
	ErrAlreadyInitialized = params.ErrAlreadyInitialized
	ErrZeroAddress        = params.ErrZeroAddress
)
