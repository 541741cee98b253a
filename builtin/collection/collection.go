// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package collection implements the non-fungible item ledger that holds
// the staked assets. Ownership and approvals follow ERC-721 rules.
package collection

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
	Name   = "MockNFT"
	Symbol = "MNFT"
)

var (
	ErrInvalidTokenID     = reverts.New("ERC721: invalid token ID")
	ErrAlreadyMinted      = reverts.New("ERC721: token already minted")
	ErrMintToZero         = reverts.New("ERC721: mint to the zero address")
	ErrTransferToZero     = reverts.New("ERC721: transfer to the zero address")
	ErrIncorrectOwner     = reverts.New("ERC721: transfer from incorrect owner")
	ErrNotOwnerOrApproved = reverts.New("ERC721: caller is not token owner or approved")
	ErrApprovalToOwner    = reverts.New("ERC721: approval to current owner")
	ErrApproveToCaller    = reverts.New("ERC721: approve to caller")
	ErrZeroAddressBalance = reverts.New("ERC721: address zero is not a valid owner")
)

var (
	slotOwners    = corral.BytesToBytes32([]byte("owners"))
	slotBalances  = corral.BytesToBytes32([]byte("balances"))
	slotApprovals = corral.BytesToBytes32([]byte("approvals"))
	slotOperators = corral.BytesToBytes32([]byte("operators"))

	contractABI         = abi.MustNew(gen.MustABI("Collection"))
	eventTransfer       = contractABI.MustEventByName("Transfer")
	eventApproval       = contractABI.MustEventByName("Approval")
	eventApprovalForAll = contractABI.MustEventByName("ApprovalForAll")
)

// Collection binder of `Collection` contract.
type Collection struct {
	context   *solidity.Context
	owners    *solidity.Mapping[*uint256.Int, corral.Address]
	balances  *solidity.Mapping[corral.Address, uint64]
	approvals *solidity.Mapping[*uint256.Int, corral.Address]
	operators *solidity.Mapping[corral.Bytes32, bool]
}

func New(addr corral.Address, state *state.State, journal *tx.EventJournal) *Collection {
	context := solidity.NewContext(addr, state, journal)
	return &Collection{
		context:   context,
		owners:    solidity.NewMapping[*uint256.Int, corral.Address](context, slotOwners),
		balances:  solidity.NewMapping[corral.Address, uint64](context, slotBalances),
		approvals: solidity.NewMapping[*uint256.Int, corral.Address](context, slotApprovals),
		operators: solidity.NewMapping[corral.Bytes32, bool](context, slotOperators),
	}
}

func operatorKey(owner, operator corral.Address) corral.Bytes32 {
	return corral.Blake2b(owner.Bytes(), operator.Bytes())
}

// Exists reports whether id has been minted.
func (c *Collection) Exists(id *uint256.Int) (bool, error) {
	owner, err := c.owners.Get(id)
	if err != nil {
		return false, errors.Wrap(err, "get owner")
	}
	return !owner.IsZero(), nil
}

// OwnerOf returns the holder of id.
func (c *Collection) OwnerOf(id *uint256.Int) (corral.Address, error) {
	owner, err := c.owners.Get(id)
	if err != nil {
		return corral.Address{}, errors.Wrap(err, "get owner")
	}
	if owner.IsZero() {
		return corral.Address{}, ErrInvalidTokenID
	}
	return owner, nil
}

// BalanceOf returns the number of items held by owner.
func (c *Collection) BalanceOf(owner corral.Address) (uint64, error) {
	if owner.IsZero() {
		return 0, ErrZeroAddressBalance
	}
	n, err := c.balances.Get(owner)
	if err != nil {
		return 0, errors.Wrap(err, "get balance")
	}
	return n, nil
}

// GetApproved returns the address allowed to move id, if any.
func (c *Collection) GetApproved(id *uint256.Int) (corral.Address, error) {
	if _, err := c.OwnerOf(id); err != nil {
		return corral.Address{}, err
	}
	return c.approvals.Get(id)
}

// IsApprovedForAll reports whether operator may move every item of owner.
func (c *Collection) IsApprovedForAll(owner, operator corral.Address) (bool, error) {
	return c.operators.Get(operatorKey(owner, operator))
}

// Mint creates id owned by to. Only genesis and dev tooling mint.
func (c *Collection) Mint(to corral.Address, id *uint256.Int) error {
	if to.IsZero() {
		return ErrMintToZero
	}
	exists, err := c.Exists(id)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyMinted
	}
	if err := c.adjustBalance(to, 1); err != nil {
		return err
	}
	if err := c.owners.Set(id, to); err != nil {
		return errors.Wrap(err, "set owner")
	}
	return c.context.Emit(eventTransfer, corral.Address{}, to, id)
}

// Approve lets to move id on behalf of its owner. caller must be the owner or
// one of its operators. A zero to clears the approval.
func (c *Collection) Approve(caller, to corral.Address, id *uint256.Int) error {
	owner, err := c.OwnerOf(id)
	if err != nil {
		return err
	}
	if to == owner {
		return ErrApprovalToOwner
	}
	if caller != owner {
		ok, err := c.IsApprovedForAll(owner, caller)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotOwnerOrApproved
		}
	}
	if err := c.approvals.Set(id, to); err != nil {
		return errors.Wrap(err, "set approval")
	}
	return c.context.Emit(eventApproval, owner, to, id)
}

// SetApprovalForAll grants or revokes operator rights over every item of owner.
func (c *Collection) SetApprovalForAll(owner, operator corral.Address, approved bool) error {
	if owner == operator {
		return ErrApproveToCaller
	}
	if err := c.operators.Set(operatorKey(owner, operator), approved); err != nil {
		return errors.Wrap(err, "set operator")
	}
	return c.context.Emit(eventApprovalForAll, owner, operator, approved)
}

// TransferFrom moves id from its owner to to. operator must be from, the
// approved address of id, or an operator of from. The item approval is cleared.
func (c *Collection) TransferFrom(operator, from, to corral.Address, id *uint256.Int) error {
	owner, err := c.OwnerOf(id)
	if err != nil {
		return err
	}
	if owner != from {
		return ErrIncorrectOwner
	}
	if to.IsZero() {
		return ErrTransferToZero
	}
	if operator != from {
		approved, err := c.approvals.Get(id)
		if err != nil {
			return errors.Wrap(err, "get approval")
		}
		if approved.IsZero() || approved != operator {
			ok, err := c.IsApprovedForAll(from, operator)
			if err != nil {
				return err
			}
			if !ok {
				return ErrNotOwnerOrApproved
			}
		}
	}

	c.approvals.Delete(id)
	if err := c.adjustBalance(from, -1); err != nil {
		return err
	}
	if err := c.adjustBalance(to, 1); err != nil {
		return err
	}
	if err := c.owners.Set(id, to); err != nil {
		return errors.Wrap(err, "set owner")
	}
	return c.context.Emit(eventTransfer, from, to, id)
}

func (c *Collection) adjustBalance(addr corral.Address, delta int) error {
	n, err := c.balances.Get(addr)
	if err != nil {
		return errors.Wrap(err, "get balance")
	}
	if delta < 0 {
		n--
	} else {
		n++
	}
	if err := c.balances.Set(addr, n); err != nil {
		return errors.Wrap(err, "set balance")
	}
	return nil
}
