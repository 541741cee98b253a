// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import "math"

const (
	txIndexBits    = 16
	eventIndexBits = 15

	// MaxTxIndex is the largest receipt index the sequence can hold.
	MaxTxIndex = 1<<txIndexBits - 1
	// MaxEventIndex is the largest event index inside a receipt.
	MaxEventIndex = 1<<eventIndexBits - 1
)

// sequence orders rows by block, then receipt, then event.
type sequence int64

func newSequence(blockNum uint32, txIndex uint32, eventIndex uint32) sequence {
	if txIndex > MaxTxIndex || eventIndex > MaxEventIndex {
		panic("index too large")
	}
	return (sequence(blockNum) << 31) | sequence(txIndex)<<eventIndexBits | sequence(eventIndex)
}

func (s sequence) BlockNumber() uint32 {
	return uint32(s >> 31)
}

func (s sequence) TxIndex() uint32 {
	return uint32(s&math.MaxInt32) >> eventIndexBits
}

func (s sequence) EventIndex() uint32 {
	return uint32(s & MaxEventIndex)
}
