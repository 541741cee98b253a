// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corral-labs/corral/builtin/stakenft"
	"github.com/corral-labs/corral/chain"
	"github.com/corral-labs/corral/corral"
	"github.com/corral-labs/corral/logdb"
	"github.com/corral-labs/corral/lvldb"
	"github.com/corral-labs/corral/runtime"
	"github.com/corral-labs/corral/state"
)

const customYAML = `
name: testnet
owner: "0x00000000000000000000000000000000000000aa"
params:
  rewardRate: "0x2c68af0bb140000"
  claimDelay: 5
  unstakePeriod: 7
  stakingPaused: true
rewardPool: "1000000000000000000000"
balances:
  - address: "0x00000000000000000000000000000000000000bb"
    amount: "42"
items:
  - owner: "0x00000000000000000000000000000000000000bb"
    id: "1"
    approveStaking: true
  - owner: "0x00000000000000000000000000000000000000bb"
    id: "2"
    approveStaking: true
  - owner: "0x00000000000000000000000000000000000000cc"
    id: "0x10"
`

func newRuntime(t *testing.T) *runtime.Runtime {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	logDB, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { logDB.Close() })
	c, err := chain.New(db)
	require.NoError(t, err)
	return runtime.New(state.New(db), c, logDB, true)
}

func TestCustomNet(t *testing.T) {
	gen, err := LoadCustomGenesis(strings.NewReader(customYAML))
	require.NoError(t, err)
	g, err := NewCustomNet(gen)
	require.NoError(t, err)
	assert.Equal(t, "testnet", g.Name())

	owner := corral.MustParseAddress("0x00000000000000000000000000000000000000aa")
	bob := corral.MustParseAddress("0x00000000000000000000000000000000000000bb")
	carol := corral.MustParseAddress("0x00000000000000000000000000000000000000cc")
	assert.Equal(t, owner, g.Owner())

	rt := newRuntime(t)
	applied, err := rt.Genesis(g.Apply)
	require.NoError(t, err)
	require.True(t, applied)

	require.NoError(t, rt.View(func(c *runtime.Contracts) error {
		cfg, err := c.Params.Load()
		require.NoError(t, err)
		assert.Equal(t, owner, cfg.Owner)
		assert.Equal(t, uint256.NewInt(2e17), cfg.RewardRatePerBlock)
		assert.Equal(t, uint32(5), cfg.ClaimDelayBlocks)
		assert.Equal(t, uint32(7), cfg.UnstakePeriodBlocks)
		assert.True(t, cfg.StakingPaused)

		pool, err := c.Token.BalanceOf(c.StakeNFT.Address())
		require.NoError(t, err)
		assert.Equal(t, "1000000000000000000000", pool.Dec())
		bal, err := c.Token.BalanceOf(bob)
		require.NoError(t, err)
		assert.Equal(t, uint256.NewInt(42), bal)

		holder, err := c.Collection.OwnerOf(uint256.NewInt(16))
		require.NoError(t, err)
		assert.Equal(t, carol, holder)
		n, err := c.Collection.BalanceOf(bob)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), n)

		ok, err := c.Collection.IsApprovedForAll(bob, c.StakeNFT.Address())
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = c.Collection.IsApprovedForAll(carol, c.StakeNFT.Address())
		require.NoError(t, err)
		assert.False(t, ok)
		return nil
	}))

	// deposits wait for the owner to resume staking
	_, err = rt.Execute(bob, "stake", func(c *runtime.Contracts) error {
		return c.StakeNFT.Stake(bob, uint256.NewInt(1))
	})
	assert.ErrorIs(t, err, stakenft.ErrStakingPaused)
}

func TestCustomNetInvalid(t *testing.T) {
	for name, doc := range map[string]string{
		"no owner":       `rewardPool: "1"`,
		"unknown field":  "owner: \"0x00000000000000000000000000000000000000aa\"\nfoo: 1",
		"negative pool":  "owner: \"0x00000000000000000000000000000000000000aa\"\nrewardPool: \"-1\"",
		"duplicate item": "owner: \"0x00000000000000000000000000000000000000aa\"\nitems:\n  - {owner: \"0x00000000000000000000000000000000000000bb\", id: \"1\"}\n  - {owner: \"0x00000000000000000000000000000000000000cc\", id: \"1\"}",
		"item no owner":  "owner: \"0x00000000000000000000000000000000000000aa\"\nitems:\n  - {id: \"1\"}",
		"balance no amt": "owner: \"0x00000000000000000000000000000000000000aa\"\nbalances:\n  - {address: \"0x00000000000000000000000000000000000000bb\"}",
		"huge rate":      "owner: \"0x00000000000000000000000000000000000000aa\"\nparams:\n  rewardRate: \"0x1" + strings.Repeat("0", 64) + "\"",
	} {
		t.Run(name, func(t *testing.T) {
			gen, err := LoadCustomGenesis(strings.NewReader(doc))
			if err != nil {
				return
			}
			_, err = NewCustomNet(gen)
			assert.Error(t, err)
		})
	}
}

func TestDevnet(t *testing.T) {
	g := NewDevnet()
	assert.Equal(t, "devnet", g.Name())
	accounts := DevAccounts()
	require.Len(t, accounts, devAccountCount)
	assert.Equal(t, accounts[0].Address, g.Owner())

	rt := newRuntime(t)
	applied, err := rt.Genesis(g.Apply)
	require.NoError(t, err)
	require.True(t, applied)

	staker := accounts[1].Address
	receipt, err := rt.Execute(staker, "stake", func(c *runtime.Contracts) error {
		return c.StakeNFT.Stake(staker, uint256.NewInt(100))
	})
	require.NoError(t, err)
	assert.Equal(t, uint32(1), receipt.BlockNumber)

	// reapplying is a no-op
	applied, err = rt.Genesis(g.Apply)
	require.NoError(t, err)
	assert.False(t, applied)
}
