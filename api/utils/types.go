// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"

	"github.com/corral-labs/corral/builtin"
	"github.com/corral-labs/corral/corral"
	"github.com/corral-labs/corral/tx"
)

// Event is an emitted event, decoded when the emitter is a known contract.
type Event struct {
	Address  corral.Address   `json:"address"`
	Contract string           `json:"contract,omitempty"`
	Name     string           `json:"name,omitempty"`
	Topics   []corral.Bytes32 `json:"topics"`
	Data     hexutil.Bytes    `json:"data"`
	Args     M                `json:"args,omitempty"`
}

// Receipt is the outcome of one invocation.
type Receipt struct {
	ID           corral.Bytes32 `json:"id"`
	BlockNumber  uint32         `json:"blockNumber"`
	Index        uint32         `json:"index"`
	Caller       corral.Address `json:"caller"`
	Method       string         `json:"method"`
	Reverted     bool           `json:"reverted"`
	RevertReason string         `json:"revertReason,omitempty"`
	Events       []*Event       `json:"events"`
}

// ConvertEvent converts a tx.Event into its JSON form.
func ConvertEvent(ev *tx.Event) *Event {
	out := &Event{
		Address: ev.Address,
		Topics:  append([]corral.Bytes32{}, ev.Topics...),
		Data:    ev.Data,
	}
	if out.Data == nil {
		out.Data = hexutil.Bytes{}
	}
	if decoded, err := builtin.DecodeEvent(ev); err == nil {
		out.Contract = decoded.Contract
		out.Name = decoded.Name
		out.Args = make(M, len(decoded.Args))
		for k, v := range decoded.Args {
			out.Args[k] = convertArg(v)
		}
	}
	return out
}

func convertArg(v any) any {
	switch v := v.(type) {
	case common.Address:
		return corral.Address(v).String()
	case *big.Int:
		return (*math.HexOrDecimal256)(v)
	case [32]byte:
		return corral.Bytes32(v).String()
	}
	return v
}

// ConvertReceipt converts a tx.Receipt into its JSON form.
func ConvertReceipt(r *tx.Receipt) *Receipt {
	out := &Receipt{
		ID:           r.ID(),
		BlockNumber:  r.BlockNumber,
		Index:        r.Index,
		Caller:       r.Caller,
		Method:       r.Method,
		Reverted:     r.Reverted,
		RevertReason: r.RevertReason,
		Events:       make([]*Event, 0, len(r.Events)),
	}
	for _, ev := range r.Events {
		out.Events = append(out.Events, ConvertEvent(ev))
	}
	return out
}

// Amount converts u into the JSON form of a 256 bit integer.
func Amount(u *uint256.Int) *math.HexOrDecimal256 {
	if u == nil {
		return (*math.HexOrDecimal256)(new(big.Int))
	}
	return (*math.HexOrDecimal256)(u.ToBig())
}
