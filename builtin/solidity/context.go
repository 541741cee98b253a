// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/corral-labs/corral/abi"
	"github.com/corral-labs/corral/corral"
	"github.com/corral-labs/corral/state"
	"github.com/corral-labs/corral/tx"
)

// Context binds a builtin contract address to the state and event journal of
// the running invocation.
type Context struct {
	address corral.Address
	state   *state.State
	journal *tx.EventJournal
}

// NewContext creates a context. A nil journal discards emitted events,
// which is what read only callers want.
func NewContext(address corral.Address, state *state.State, journal *tx.EventJournal) *Context {
	return &Context{
		address: address,
		state:   state,
		journal: journal,
	}
}

func (c *Context) Address() corral.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}

// Emit encodes and records an event on behalf of the contract.
func (c *Context) Emit(event *abi.Event, args ...any) error {
	topics, data, err := event.Encode(args...)
	if err != nil {
		return err
	}
	if c.journal != nil {
		c.journal.Emit(&tx.Event{
			Address: c.address,
			Topics:  topics,
			Data:    data,
		})
	}
	return nil
}

// Checkpoint marks a point that state and events can be reverted to.
type Checkpoint struct {
	revision int
	events   int
}

// NewCheckpoint snapshots the shared state and journal.
func (c *Context) NewCheckpoint() Checkpoint {
	cp := Checkpoint{revision: c.state.NewCheckpoint()}
	if c.journal != nil {
		cp.events = c.journal.Len()
	}
	return cp
}

// RevertTo drops every storage write and event recorded after cp.
func (c *Context) RevertTo(cp Checkpoint) {
	c.state.RevertTo(cp.revision)
	if c.journal != nil {
		c.journal.Truncate(cp.events)
	}
}
