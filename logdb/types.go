// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"github.com/corral-labs/corral/corral"
	"github.com/corral-labs/corral/tx"
)

// Event represents tx.Event that can be stored in db.
type Event struct {
	BlockNumber uint32
	TxIndex     uint32
	Index       uint32
	ReceiptID   corral.Bytes32
	Caller      corral.Address // principal of the invocation
	Method      string
	Address     corral.Address // always a builtin contract address
	Topics      [4]*corral.Bytes32
	Data        []byte
}

// newEvent converts tx.Event to Event.
func newEvent(receipt *tx.Receipt, index uint32, txEvent *tx.Event) *Event {
	ev := &Event{
		BlockNumber: receipt.BlockNumber,
		TxIndex:     receipt.Index,
		Index:       index,
		ReceiptID:   receipt.ID(),
		Caller:      receipt.Caller,
		Method:      receipt.Method,
		Address:     txEvent.Address,
		Data:        txEvent.Data,
	}
	for i := 0; i < len(txEvent.Topics) && i < len(ev.Topics); i++ {
		ev.Topics[i] = &txEvent.Topics[i]
	}
	return ev
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range is an inclusive range of block numbers.
type Range struct {
	From uint32
	To   uint32
}

type Options struct {
	Offset uint64
	Limit  uint64
}

type EventCriteria struct {
	Address *corral.Address
	Topics  [4]*corral.Bytes32
}

// EventFilter selects events matching any of the criteria.
type EventFilter struct {
	CriteriaSet []*EventCriteria
	Range       *Range
	Options     *Options
	Order       Order // default asc
}

// ToTxEvent converts back to tx.Event.
func (e *Event) ToTxEvent() *tx.Event {
	ev := &tx.Event{
		Address: e.Address,
		Data:    e.Data,
	}
	for _, topic := range e.Topics {
		if topic == nil {
			break
		}
		ev.Topics = append(ev.Topics, *topic)
	}
	return ev
}
