// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package abi

import (
	"bytes"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/pkg/errors"

	"github.com/corral-labs/corral/corral"
)

// ABI holds the events of a builtin contract.
type ABI struct {
	nameToEvent map[string]*Event
	events      map[corral.Bytes32]*Event
}

// New create an ABI instance from its json definition.
func New(data []byte) (*ABI, error) {
	parsed, err := ethabi.JSON(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "parse abi")
	}

	abi := &ABI{
		nameToEvent: make(map[string]*Event),
		events:      make(map[corral.Bytes32]*Event),
	}
	for name := range parsed.Events {
		ev := parsed.Events[name]
		event := newEvent(&ev)
		abi.nameToEvent[name] = event
		abi.events[event.ID()] = event
	}
	return abi, nil
}

// MustNew is like New but panics on error.
func MustNew(data []byte) *ABI {
	abi, err := New(data)
	if err != nil {
		panic(err)
	}
	return abi
}

// EventByName find event for the given event name.
func (a *ABI) EventByName(name string) (*Event, bool) {
	e, found := a.nameToEvent[name]
	return e, found
}

// MustEventByName is like EventByName but panics when the event is missing.
func (a *ABI) MustEventByName(name string) *Event {
	e, found := a.nameToEvent[name]
	if !found {
		panic("abi: event " + name + " not found")
	}
	return e
}

// EventByID returns the event for the given event id.
func (a *ABI) EventByID(id corral.Bytes32) (*Event, bool) {
	e, found := a.events[id]
	return e, found
}
