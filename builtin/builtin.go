// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/pkg/errors"

	"github.com/corral-labs/corral/builtin/collection"
	"github.com/corral-labs/corral/builtin/params"
	"github.com/corral-labs/corral/builtin/stakenft"
	"github.com/corral-labs/corral/builtin/token"
	"github.com/corral-labs/corral/corral"
	"github.com/corral-labs/corral/state"
	"github.com/corral-labs/corral/tx"
)

// Builtin contracts binding.
var (
	Params     = &paramsContract{mustLoadContract("Params")}
	Collection = &collectionContract{mustLoadContract("Collection")}
	Token      = &tokenContract{mustLoadContract("RewardToken")}
	StakeNFT   = &stakeNFTContract{mustLoadContract("StakeNFT")}

	contracts = []*contract{Params.contract, Collection.contract, Token.contract, StakeNFT.contract}
)

type (
	paramsContract     struct{ *contract }
	collectionContract struct{ *contract }
	tokenContract      struct{ *contract }
	stakeNFTContract   struct{ *contract }
)

func (p *paramsContract) With(state *state.State, journal *tx.EventJournal) *params.Params {
	return params.New(p.Address, state, journal)
}

func (c *collectionContract) With(state *state.State, journal *tx.EventJournal) *collection.Collection {
	return collection.New(c.Address, state, journal)
}

func (t *tokenContract) With(state *state.State, journal *tx.EventJournal) *token.Token {
	return token.New(t.Address, state, journal)
}

// With binds the engine to the other builtin contracts sharing the same state and journal.
func (s *stakeNFTContract) With(state *state.State, journal *tx.EventJournal, clock stakenft.Clock) *stakenft.StakeNFT {
	return stakenft.New(
		s.Address,
		state,
		journal,
		Params.With(state, journal),
		Collection.With(state, journal),
		Token.With(state, journal),
		clock,
	)
}

// DecodedEvent is an event resolved against the ABI of the builtin contract that emitted it.
type DecodedEvent struct {
	Contract string
	Name     string
	Args     map[string]any
}

// DecodeEvent resolves ev by its emitter address and topic0.
func DecodeEvent(ev *tx.Event) (*DecodedEvent, error) {
	if len(ev.Topics) == 0 {
		return nil, errors.New("anonymous event")
	}
	for _, c := range contracts {
		if c.Address != ev.Address {
			continue
		}
		event, ok := c.ABI.EventByID(ev.Topics[0])
		if !ok {
			return nil, errors.Errorf("unknown event %v of %s", ev.Topics[0], c.name)
		}
		args, err := event.Decode(ev.Topics, ev.Data)
		if err != nil {
			return nil, errors.Wrapf(err, "decode %s.%s", c.name, event.Name())
		}
		return &DecodedEvent{Contract: c.name, Name: event.Name(), Args: args}, nil
	}
	return nil, errors.Errorf("no builtin contract at %v", ev.Address)
}

// EventID returns topic0 of the named event of any builtin contract.
func EventID(name string) (corral.Bytes32, bool) {
	for _, c := range contracts {
		if event, ok := c.ABI.EventByName(name); ok {
			return event.ID(), true
		}
	}
	return corral.Bytes32{}, false
}
