// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements the fungible reward token ledger.
package token

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/corral-labs/corral/abi"
	"github.com/corral-labs/corral/builtin/gen"
	"github.com/corral-labs/corral/builtin/reverts"
	"github.com/corral-labs/corral/builtin/solidity"
	"github.com/corral-labs/corral/corral"
	"github.com/corral-labs/corral/state"
	"github.com/corral-labs/corral/tx"
)

const (
	Name   = "RewardToken"
	Symbol = "RWT"
)

var (
	ErrInsufficientBalance = reverts.New("ERC20: transfer amount exceeds balance")
	ErrTransferToZero      = reverts.New("ERC20: transfer to the zero address")
	ErrMintToZero          = reverts.New("ERC20: mint to the zero address")
)

var (
	slotBalances    = corral.BytesToBytes32([]byte("balances"))
	slotTotalSupply = corral.BytesToBytes32([]byte("total-supply"))

	eventTransfer = abi.MustNew(gen.MustABI("RewardToken")).MustEventByName("Transfer")
)

// Token binder of `RewardToken` contract.
type Token struct {
	context     *solidity.Context
	balances    *solidity.Mapping[corral.Address, *uint256.Int]
	totalSupply *solidity.Uint256
}

func New(addr corral.Address, state *state.State, journal *tx.EventJournal) *Token {
	context := solidity.NewContext(addr, state, journal)
	return &Token{
		context:     context,
		balances:    solidity.NewMapping[corral.Address, *uint256.Int](context, slotBalances),
		totalSupply: solidity.NewUint256(context, slotTotalSupply),
	}
}

// BalanceOf returns the token balance of addr.
func (t *Token) BalanceOf(addr corral.Address) (*uint256.Int, error) {
	bal, err := t.balances.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "get balance")
	}
	return bal, nil
}

// TotalSupply returns the amount of tokens minted so far.
func (t *Token) TotalSupply() (*uint256.Int, error) {
	return t.totalSupply.Get()
}

// Transfer moves amount from one holder to another.
func (t *Token) Transfer(from, to corral.Address, amount *uint256.Int) error {
	if to.IsZero() {
		return ErrTransferToZero
	}
	fromBal, err := t.BalanceOf(from)
	if err != nil {
		return err
	}
	if fromBal.Lt(amount) {
		return ErrInsufficientBalance
	}
	fromBal.Sub(fromBal, amount)
	if err := t.balances.Set(from, fromBal); err != nil {
		return errors.Wrap(err, "set balance")
	}

	toBal, err := t.BalanceOf(to)
	if err != nil {
		return err
	}
	// cannot overflow, the sum of balances is bounded by total supply
	toBal.Add(toBal, amount)
	if err := t.balances.Set(to, toBal); err != nil {
		return errors.Wrap(err, "set balance")
	}
	return t.context.Emit(eventTransfer, from, to, amount)
}

// Mint creates amount new tokens owned by to. Only genesis and dev tooling mint.
func (t *Token) Mint(to corral.Address, amount *uint256.Int) error {
	if to.IsZero() {
		return ErrMintToZero
	}
	if err := t.totalSupply.Add(amount); err != nil {
		return err
	}
	bal, err := t.BalanceOf(to)
	if err != nil {
		return err
	}
	bal.Add(bal, amount)
	if err := t.balances.Set(to, bal); err != nil {
		return errors.Wrap(err, "set balance")
	}
	return t.context.Emit(eventTransfer, corral.Address{}, to, amount)
}
