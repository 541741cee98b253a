// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakenft

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/corral-labs/corral/builtin/solidity"
	"github.com/corral-labs/corral/corral"
)

var (
	slotPositions = nameToSlot("positions")
	slotItems     = nameToSlot("owner-items")
	slotSettled   = nameToSlot("settled-rewards")
	slotGuard     = nameToSlot("reentrancy-guard")
)

func nameToSlot(name string) corral.Bytes32 {
	return corral.BytesToBytes32([]byte(name))
}

func positionKey(owner corral.Address, id *uint256.Int) corral.Bytes32 {
	b := id.Bytes32()
	return corral.Blake2b(owner.Bytes(), b[:])
}

// storage represents the root storage for the StakeNFT contract.
type storage struct {
	positions *solidity.Mapping[corral.Bytes32, *Position]
	items     *solidity.Mapping[corral.Address, []corral.Bytes32] // owner => staked item ids
	settled   *solidity.Mapping[corral.Address, *uint256.Int]    // owner => rewards crystallized at unstake
	guard     *solidity.Raw[bool]
}

func newStorage(context *solidity.Context) *storage {
	return &storage{
		positions: solidity.NewMapping[corral.Bytes32, *Position](context, slotPositions),
		items:     solidity.NewMapping[corral.Address, []corral.Bytes32](context, slotItems),
		settled:   solidity.NewMapping[corral.Address, *uint256.Int](context, slotSettled),
		guard:     solidity.NewRaw[bool](context, slotGuard),
	}
}

func (s *storage) GetPosition(owner corral.Address, id *uint256.Int) (*Position, error) {
	p, err := s.positions.Get(positionKey(owner, id))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get position")
	}
	return p, nil
}

func (s *storage) SetPosition(owner corral.Address, id *uint256.Int, p *Position) error {
	if err := s.positions.Set(positionKey(owner, id), p); err != nil {
		return errors.Wrap(err, "failed to set position")
	}
	return nil
}

// ClearPosition resets the position to the inactive zero value.
func (s *storage) ClearPosition(owner corral.Address, id *uint256.Int) {
	s.positions.Delete(positionKey(owner, id))
}

func (s *storage) GetItems(owner corral.Address) ([]*uint256.Int, error) {
	raw, err := s.items.Get(owner)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get staked items")
	}
	ids := make([]*uint256.Int, 0, len(raw))
	for _, b := range raw {
		ids = append(ids, new(uint256.Int).SetBytes32(b[:]))
	}
	return ids, nil
}

func (s *storage) AddItem(owner corral.Address, id *uint256.Int) error {
	raw, err := s.items.Get(owner)
	if err != nil {
		return errors.Wrap(err, "failed to get staked items")
	}
	raw = append(raw, corral.Bytes32(id.Bytes32()))
	if err := s.items.Set(owner, raw); err != nil {
		return errors.Wrap(err, "failed to set staked items")
	}
	return nil
}

// RemoveItem drops id from the owner index, keeping the order of the rest.
func (s *storage) RemoveItem(owner corral.Address, id *uint256.Int) error {
	raw, err := s.items.Get(owner)
	if err != nil {
		return errors.Wrap(err, "failed to get staked items")
	}
	target := corral.Bytes32(id.Bytes32())
	for i, b := range raw {
		if b == target {
			raw = append(raw[:i], raw[i+1:]...)
			break
		}
	}
	if len(raw) == 0 {
		s.items.Delete(owner)
		return nil
	}
	if err := s.items.Set(owner, raw); err != nil {
		return errors.Wrap(err, "failed to set staked items")
	}
	return nil
}

func (s *storage) GetSettled(owner corral.Address) (*uint256.Int, error) {
	v, err := s.settled.Get(owner)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get settled rewards")
	}
	return v, nil
}

func (s *storage) AddSettled(owner corral.Address, amount *uint256.Int) error {
	if amount.IsZero() {
		return nil
	}
	v, err := s.GetSettled(owner)
	if err != nil {
		return err
	}
	if _, overflow := v.AddOverflow(v, amount); overflow {
		return ErrArithmeticOverflow
	}
	if err := s.settled.Set(owner, v); err != nil {
		return errors.Wrap(err, "failed to set settled rewards")
	}
	return nil
}

func (s *storage) ClearSettled(owner corral.Address) {
	s.settled.Delete(owner)
}
