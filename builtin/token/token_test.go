// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corral-labs/corral/builtin/solidity"
	"github.com/corral-labs/corral/corral"
	"github.com/corral-labs/corral/lvldb"
	"github.com/corral-labs/corral/state"
	"github.com/corral-labs/corral/test/datagen"
	"github.com/corral-labs/corral/tx"
)

func newToken(t *testing.T) (*Token, *tx.EventJournal) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	journal := &tx.EventJournal{}
	return New(corral.TokenAddress, state.New(db), journal), journal
}

func TestTokenMintTransfer(t *testing.T) {
	tok, journal := newToken(t)
	alice, bob := datagen.RandAddress(), datagen.RandAddress()

	bal, err := tok.BalanceOf(alice)
	require.NoError(t, err)
	assert.True(t, bal.IsZero())

	require.NoError(t, tok.Mint(alice, uint256.NewInt(100)))
	require.NoError(t, tok.Transfer(alice, bob, uint256.NewInt(30)))

	bal, _ = tok.BalanceOf(alice)
	assert.Equal(t, uint256.NewInt(70), bal)
	bal, _ = tok.BalanceOf(bob)
	assert.Equal(t, uint256.NewInt(30), bal)

	supply, err := tok.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(100), supply)

	events := journal.Events()
	require.Len(t, events, 2)
	decoded, err := eventTransfer.Decode(events[0].Topics, events[0].Data)
	require.NoError(t, err)
	assert.Equal(t, common.Address{}, decoded["from"])
	assert.Equal(t, alice.Bytes(), events[1].Topics[1][12:])
	assert.Equal(t, bob.Bytes(), events[1].Topics[2][12:])
}

func TestTokenErrors(t *testing.T) {
	tok, journal := newToken(t)
	alice := datagen.RandAddress()

	assert.ErrorIs(t, tok.Mint(corral.Address{}, uint256.NewInt(1)), ErrMintToZero)
	require.NoError(t, tok.Mint(alice, uint256.NewInt(5)))

	assert.ErrorIs(t, tok.Transfer(alice, corral.Address{}, uint256.NewInt(1)), ErrTransferToZero)
	assert.ErrorIs(t, tok.Transfer(alice, datagen.RandAddress(), uint256.NewInt(6)), ErrInsufficientBalance)
	assert.Equal(t, 1, journal.Len())

	// zero amount transfers are allowed
	require.NoError(t, tok.Transfer(alice, datagen.RandAddress(), new(uint256.Int)))

	assert.ErrorIs(t, tok.Mint(alice, new(uint256.Int).SetAllOne()), solidity.ErrUint256Overflow)
	bal, _ := tok.BalanceOf(alice)
	assert.Equal(t, uint256.NewInt(5), bal)
}
