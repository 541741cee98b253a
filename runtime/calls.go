// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/corral-labs/corral/builtin/solidity"
	"github.com/corral-labs/corral/corral"
	"github.com/corral-labs/corral/state"
)

var (
	// holds the runtime's own storage
	registryAddress = corral.BytesToAddress([]byte("Runtime"))

	slotExecutedCalls = corral.BytesToBytes32([]byte("executed-calls"))
)

// callRegistry tracks the signed calls already executed.
type callRegistry struct {
	executed *solidity.Mapping[corral.Bytes32, bool]
}

func newCallRegistry(st *state.State) *callRegistry {
	ctx := solidity.NewContext(registryAddress, st, nil)
	return &callRegistry{
		executed: solidity.NewMapping[corral.Bytes32, bool](ctx, slotExecutedCalls),
	}
}

func (c *callRegistry) Executed(id corral.Bytes32) (bool, error) {
	return c.executed.Get(id)
}

func (c *callRegistry) Record(id corral.Bytes32) error {
	return c.executed.Set(id, true)
}
