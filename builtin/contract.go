// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"fmt"

	"github.com/corral-labs/corral/abi"
	"github.com/corral-labs/corral/builtin/gen"
	"github.com/corral-labs/corral/corral"
)

type contract struct {
	name    string
	Address corral.Address
	ABI     *abi.ABI
}

func mustLoadContract(name string) *contract {
	abi, err := abi.New(gen.MustABI(name))
	if err != nil {
		panic(fmt.Errorf("load ABI for '%s': %w", name, err))
	}

	return &contract{
		name,
		corral.BytesToAddress([]byte(name)),
		abi,
	}
}

// Name returns the contract name.
func (c *contract) Name() string {
	return c.name
}
