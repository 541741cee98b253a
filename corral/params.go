// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package corral

import "github.com/holiman/uint256"

// Keys of admin params.
var (
	KeyRewardRate    = BytesToBytes32([]byte("reward-rate"))
	KeyClaimDelay    = BytesToBytes32([]byte("claim-delay"))
	KeyUnstakePeriod = BytesToBytes32([]byte("unstake-period"))
	KeyStakingPaused = BytesToBytes32([]byte("staking-paused"))
)

// Initial values of admin params, applied by the initializer.
var (
	InitialRewardRate = uint256.NewInt(1e17) // 0.1 token per block per position
)

const (
	InitialClaimDelay    uint32 = 10
	InitialUnstakePeriod uint32 = 10

	// TokenDecimals is the number of decimals of the reward token.
	TokenDecimals = 18
)

// Addresses of builtin contracts.
var (
	ParamsAddress     = BytesToAddress([]byte("Params"))
	CollectionAddress = BytesToAddress([]byte("Collection"))
	TokenAddress      = BytesToAddress([]byte("RewardToken"))
	StakeNFTAddress   = BytesToAddress([]byte("StakeNFT"))
)
