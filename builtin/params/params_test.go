// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package params

import (
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corral-labs/corral/corral"
	"github.com/corral-labs/corral/lvldb"
	"github.com/corral-labs/corral/state"
	"github.com/corral-labs/corral/test/datagen"
	"github.com/corral-labs/corral/tx"
)

func newParams(t *testing.T) (*Params, *tx.EventJournal) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	journal := &tx.EventJournal{}
	return New(corral.ParamsAddress, state.New(db), journal), journal
}

func TestParamsGetSet(t *testing.T) {
	p, journal := newParams(t)
	key := corral.BytesToBytes32([]byte("key"))

	v, err := p.Get(key)
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	require.NoError(t, p.Set(key, uint256.NewInt(10)))
	v, err = p.Get(key)
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(10), v)

	require.Equal(t, 1, journal.Len())
	ev := journal.Events()[0]
	assert.Equal(t, corral.ParamsAddress, ev.Address)
	assert.Equal(t, eventParamSet.ID(), ev.Topics[0])
	assert.Equal(t, key, ev.Topics[1])

	decoded, err := eventParamSet.Decode(ev.Topics, ev.Data)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(10), decoded["value"])
}

func TestParamsInitialize(t *testing.T) {
	p, journal := newParams(t)
	owner := datagen.RandAddress()

	cfg, err := p.Load()
	require.NoError(t, err)
	assert.True(t, cfg.Owner.IsZero())

	assert.ErrorIs(t, p.Initialize(corral.Address{}), ErrZeroAddress)
	assert.Equal(t, 0, journal.Len())

	require.NoError(t, p.Initialize(owner))
	done, err := p.Initialized()
	require.NoError(t, err)
	assert.True(t, done)
	// ownership transfer plus four params
	assert.Equal(t, 5, journal.Len())

	cfg, err = p.Load()
	require.NoError(t, err)
	assert.Equal(t, &Config{
		RewardRatePerBlock:  corral.InitialRewardRate,
		ClaimDelayBlocks:    corral.InitialClaimDelay,
		UnstakePeriodBlocks: corral.InitialUnstakePeriod,
		StakingPaused:       false,
		Owner:               owner,
	}, cfg)

	assert.ErrorIs(t, p.Initialize(owner), ErrAlreadyInitialized)
}

func TestParamsOwnership(t *testing.T) {
	p, journal := newParams(t)
	first, second := datagen.RandAddress(), datagen.RandAddress()

	require.NoError(t, p.TransferOwnership(first))
	require.NoError(t, p.TransferOwnership(second))
	assert.ErrorIs(t, p.TransferOwnership(corral.Address{}), ErrZeroAddress)

	owner, err := p.Owner()
	require.NoError(t, err)
	assert.Equal(t, second, owner)

	events := journal.Events()
	require.Len(t, events, 2)
	assert.Equal(t, corral.BytesToBytes32(first.Bytes()), events[1].Topics[1])
	assert.Equal(t, corral.BytesToBytes32(second.Bytes()), events[1].Topics[2])
}

func TestParamsLoadOutOfRange(t *testing.T) {
	p, _ := newParams(t)
	require.NoError(t, p.Set(corral.KeyClaimDelay, uint256.NewInt(1<<33)))
	_, err := p.Load()
	assert.Error(t, err)

	require.NoError(t, p.Set(corral.KeyClaimDelay, uint256.NewInt(5)))
	require.NoError(t, p.Set(corral.KeyStakingPaused, uint256.NewInt(1)))
	cfg, err := p.Load()
	require.NoError(t, err)
	assert.Equal(t, uint32(5), cfg.ClaimDelayBlocks)
	assert.True(t, cfg.StakingPaused)
}
