// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis describes the initial content of the builtin contracts.
package genesis

import (
	"github.com/corral-labs/corral/corral"
	"github.com/corral-labs/corral/runtime"
)

// Genesis is a named setup applied in block 0.
type Genesis struct {
	name  string
	owner corral.Address
	apply func(*runtime.Contracts) error
}

// Name returns the network name.
func (g *Genesis) Name() string {
	return g.name
}

// Owner returns the initial owner of the staking params.
func (g *Genesis) Owner() corral.Address {
	return g.owner
}

// Apply writes the initial content through the bound contracts.
func (g *Genesis) Apply(c *runtime.Contracts) error {
	return g.apply(c)
}
