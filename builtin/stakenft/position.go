// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakenft

import (
	"github.com/holiman/uint256"
)

// Position is the bookkeeping record of a single staked item.
// A zero StakedAt marks an inactive position.
type Position struct {
	StakedAt  uint32
	LastClaim uint32
}

// IsActive reports whether the item is currently staked.
func (p *Position) IsActive() bool {
	return p != nil && p.StakedAt != 0
}

// accrue returns rate * (to - from), zero when the window is empty.
func accrue(rate *uint256.Int, from, to uint32) (*uint256.Int, error) {
	if to <= from || rate.IsZero() {
		return new(uint256.Int), nil
	}
	amount, overflow := new(uint256.Int).MulOverflow(rate, uint256.NewInt(uint64(to-from)))
	if overflow {
		return nil, ErrArithmeticOverflow
	}
	return amount, nil
}

// Accrued returns the rewards of the position not yet claimed at block now.
// Inactive positions never accrue.
func (p *Position) Accrued(rate *uint256.Int, now uint32) (*uint256.Int, error) {
	if !p.IsActive() {
		return new(uint256.Int), nil
	}
	return accrue(rate, p.LastClaim, now)
}
