// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"github.com/corral-labs/corral/api/utils"
	"github.com/corral-labs/corral/corral"
	"github.com/corral-labs/corral/logdb"
)

type LogMeta struct {
	BlockNumber uint32         `json:"blockNumber"`
	TxIndex     uint32         `json:"txIndex"`
	LogIndex    uint32         `json:"logIndex"`
	ReceiptID   corral.Bytes32 `json:"receiptID"`
	Caller      corral.Address `json:"caller"`
	Method      string         `json:"method"`
}

// FilteredEvent is an event found by a filter, along with where it was emitted.
type FilteredEvent struct {
	*utils.Event
	Meta LogMeta `json:"meta"`
}

// ConvertEvent converts a stored event into its JSON form.
func ConvertEvent(ev *logdb.Event) *FilteredEvent {
	return &FilteredEvent{
		Event: utils.ConvertEvent(ev.ToTxEvent()),
		Meta: LogMeta{
			BlockNumber: ev.BlockNumber,
			TxIndex:     ev.TxIndex,
			LogIndex:    ev.Index,
			ReceiptID:   ev.ReceiptID,
			Caller:      ev.Caller,
			Method:      ev.Method,
		},
	}
}
