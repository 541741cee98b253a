// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/holiman/uint256"

	"github.com/corral-labs/corral/builtin/reverts"
	"github.com/corral-labs/corral/corral"
)

var (
	ErrUint256Overflow  = reverts.New("arithmetic overflow")
	ErrUint256Underflow = reverts.New("arithmetic underflow")
)

// Uint256 is a wrapper for storage and retrieval of an uint256. Similar to storing an uint256 in a smart contract.
type Uint256 struct {
	context *Context
	pos     corral.Bytes32
}

func NewUint256(context *Context, pos corral.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: pos}
}

func (u *Uint256) Get() (*uint256.Int, error) {
	storage, err := u.context.state.GetStorage(u.context.address, u.pos)
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes32(storage[:]), nil
}

func (u *Uint256) Set(value *uint256.Int) {
	u.context.state.SetStorage(u.context.address, u.pos, corral.Bytes32(value.Bytes32()))
}

// Add increases the stored value, failing on 256 bit overflow.
func (u *Uint256) Add(value *uint256.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	if _, overflow := storage.AddOverflow(storage, value); overflow {
		return ErrUint256Overflow
	}
	u.Set(storage)
	return nil
}

// Sub decreases the stored value, failing when it would go below zero.
func (u *Uint256) Sub(value *uint256.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	if _, underflow := storage.SubOverflow(storage, value); underflow {
		return ErrUint256Underflow
	}
	u.Set(storage)
	return nil
}
