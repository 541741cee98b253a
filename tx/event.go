// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/corral-labs/corral/corral"
)

// Event represents an event emitted by a builtin contract.
type Event struct {
	// address of the contract that emitted the event
	Address corral.Address
	// list of topics provided by the contract, the first one is the event id.
	Topics []corral.Bytes32
	// abi encoded non-indexed arguments
	Data []byte
}

// Events slice of event logs.
type Events []*Event

// EventJournal collects events emitted during an invocation.
// Truncate rolls back events emitted after a checkpoint.
type EventJournal struct {
	events Events
}

// Emit appends an event.
func (j *EventJournal) Emit(ev *Event) {
	j.events = append(j.events, ev)
}

// Len returns the number of events collected.
func (j *EventJournal) Len() int {
	return len(j.events)
}

// Truncate drops events beyond the first n.
func (j *EventJournal) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(j.events) {
		for i := n; i < len(j.events); i++ {
			j.events[i] = nil
		}
		j.events = j.events[:n]
	}
}

// Events returns a copy of collected events.
func (j *EventJournal) Events() Events {
	return append(Events(nil), j.events...)
}

// Reset drops every collected event.
func (j *EventJournal) Reset() {
	j.Truncate(0)
}
