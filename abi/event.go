// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package abi

import (
	"fmt"
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/corral-labs/corral/corral"
)

// Event see abi.Event in go-ethereum.
type Event struct {
	id                 corral.Bytes32
	event              *ethabi.Event
	indexed            ethabi.Arguments
	argsWithoutIndexed ethabi.Arguments
}

func newEvent(event *ethabi.Event) *Event {
	var indexed, argsWithoutIndexed ethabi.Arguments
	for _, arg := range event.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		} else {
			argsWithoutIndexed = append(argsWithoutIndexed, arg)
		}
	}
	return &Event{
		corral.Bytes32(event.ID),
		event,
		indexed,
		argsWithoutIndexed,
	}
}

// ID returns event id.
func (e *Event) ID() corral.Bytes32 {
	return e.id
}

// Name returns event name.
func (e *Event) Name() string {
	return e.event.Name
}

// Encode packs args in declaration order. Indexed args become topics after
// the event id, the rest are abi encoded into data.
func (e *Event) Encode(args ...any) (topics []corral.Bytes32, data []byte, err error) {
	if len(args) != len(e.event.Inputs) {
		return nil, nil, fmt.Errorf("abi: event %s expects %d args, got %d", e.Name(), len(e.event.Inputs), len(args))
	}

	topics = append(topics, e.id)
	var values []any
	for i, input := range e.event.Inputs {
		if input.Indexed {
			topic, err := ToTopic(args[i])
			if err != nil {
				return nil, nil, errors.Wrapf(err, "arg %s", input.Name)
			}
			topics = append(topics, topic)
			continue
		}
		values = append(values, toEthValue(args[i]))
	}
	if data, err = e.argsWithoutIndexed.Pack(values...); err != nil {
		return nil, nil, errors.Wrapf(err, "pack %s", e.Name())
	}
	return topics, data, nil
}

// Decode unpacks an emitted event into named values.
// Addresses decode as common.Address and integers as *big.Int.
func (e *Event) Decode(topics []corral.Bytes32, data []byte) (map[string]any, error) {
	if len(topics) == 0 || topics[0] != e.id {
		return nil, errors.New("abi: event id mismatch")
	}
	out := make(map[string]any, len(e.event.Inputs))
	if len(e.argsWithoutIndexed) > 0 {
		if err := e.argsWithoutIndexed.UnpackIntoMap(out, data); err != nil {
			return nil, errors.Wrap(err, "unpack data")
		}
	}
	hashes := make([]common.Hash, 0, len(topics)-1)
	for _, t := range topics[1:] {
		hashes = append(hashes, common.Hash(t))
	}
	if err := ethabi.ParseTopicsIntoMap(out, e.indexed, hashes); err != nil {
		return nil, errors.Wrap(err, "parse topics")
	}
	return out, nil
}

// ToTopic converts a static value into its 32 byte topic form.
func ToTopic(v any) (corral.Bytes32, error) {
	switch v := v.(type) {
	case corral.Bytes32:
		return v, nil
	case corral.Address:
		return corral.BytesToBytes32(v[:]), nil
	case common.Address:
		return corral.BytesToBytes32(v[:]), nil
	case *uint256.Int:
		return corral.Bytes32(v.Bytes32()), nil
	case *big.Int:
		var u uint256.Int
		if u.SetFromBig(v) {
			return corral.Bytes32{}, errors.New("topic value overflows 256 bits")
		}
		return corral.Bytes32(u.Bytes32()), nil
	case bool:
		if v {
			return corral.BytesToBytes32([]byte{1}), nil
		}
		return corral.Bytes32{}, nil
	}
	return corral.Bytes32{}, fmt.Errorf("unsupported topic type %T", v)
}

func toEthValue(v any) any {
	switch v := v.(type) {
	case corral.Address:
		return common.Address(v)
	case corral.Bytes32:
		return [32]byte(v)
	case *uint256.Int:
		return v.ToBig()
	}
	return v
}
