// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corral-labs/corral/builtin/stakenft"
	"github.com/corral-labs/corral/corral"
	"github.com/corral-labs/corral/lvldb"
	"github.com/corral-labs/corral/state"
	"github.com/corral-labs/corral/test/datagen"
	"github.com/corral-labs/corral/tx"
)

func TestAddresses(t *testing.T) {
	assert.Equal(t, corral.ParamsAddress, Params.Address)
	assert.Equal(t, corral.CollectionAddress, Collection.Address)
	assert.Equal(t, corral.TokenAddress, Token.Address)
	assert.Equal(t, corral.StakeNFTAddress, StakeNFT.Address)
	assert.Equal(t, "RewardToken", Token.Name())
}

func TestStakeNFTWith(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	st := state.New(db)
	journal := &tx.EventJournal{}

	owner := datagen.RandAddress()
	alice := datagen.RandAddress()
	id := uint256.NewInt(7)

	engine := StakeNFT.With(st, journal, stakenft.ClockFunc(func() uint32 { return 3 }))
	require.NoError(t, engine.Initialize(owner))
	require.NoError(t, Collection.With(st, journal).Mint(alice, id))
	require.NoError(t, Collection.With(st, journal).SetApprovalForAll(alice, StakeNFT.Address, true))
	require.NoError(t, engine.Stake(alice, id))

	holder, err := Collection.With(st, journal).OwnerOf(id)
	require.NoError(t, err)
	assert.Equal(t, StakeNFT.Address, holder)

	var names []string
	for _, ev := range journal.Events() {
		decoded, err := DecodeEvent(ev)
		require.NoError(t, err)
		names = append(names, decoded.Contract+"."+decoded.Name)
	}
	assert.Equal(t, []string{
		"Params.OwnershipTransferred",
		"Params.ParamSet",
		"Params.ParamSet",
		"Params.ParamSet",
		"Params.ParamSet",
		"Collection.Transfer",
		"Collection.ApprovalForAll",
		"Collection.Transfer",
		"StakeNFT.NFTStaked",
	}, names)

	last, err := DecodeEvent(journal.Events()[len(names)-1])
	require.NoError(t, err)
	assert.Equal(t, common.Address(alice), last.Args["owner"])
	assert.Equal(t, big.NewInt(7), last.Args["tokenId"])
}

func TestDecodeEventErrors(t *testing.T) {
	_, err := DecodeEvent(&tx.Event{Address: Params.Address})
	assert.Error(t, err)

	_, err = DecodeEvent(&tx.Event{Address: datagen.RandAddress(), Topics: []corral.Bytes32{{1}}})
	assert.Error(t, err)

	_, err = DecodeEvent(&tx.Event{Address: Params.Address, Topics: []corral.Bytes32{{1}}})
	assert.Error(t, err)
}

func TestEventID(t *testing.T) {
	id, ok := EventID("RewardsClaimed")
	require.True(t, ok)
	event, ok := StakeNFT.ABI.EventByName("RewardsClaimed")
	require.True(t, ok)
	assert.Equal(t, event.ID(), id)

	_, ok = EventID("Nope")
	assert.False(t, ok)
}
