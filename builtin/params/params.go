// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package params

import (
	"math"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/corral-labs/corral/abi"
	"github.com/corral-labs/corral/builtin/gen"
	"github.com/corral-labs/corral/builtin/reverts"
	"github.com/corral-labs/corral/builtin/solidity"
	"github.com/corral-labs/corral/corral"
	"github.com/corral-labs/corral/state"
	"github.com/corral-labs/corral/tx"
)

var (
	ErrAlreadyInitialized = reverts.New("Initializable: contract is already initialized")
	ErrZeroAddress        = reverts.New("Ownable: new owner is the zero address")
)

var (
	slotOwner       = corral.BytesToBytes32([]byte("owner"))
	slotInitialized = corral.BytesToBytes32([]byte("initialized"))

	contractABI               = abi.MustNew(gen.MustABI("Params"))
	eventParamSet             = contractABI.MustEventByName("ParamSet")
	eventOwnershipTransferred = contractABI.MustEventByName("OwnershipTransferred")
)

// Params binder of `Params` contract.
type Params struct {
	context     *solidity.Context
	owner       *solidity.Address
	initialized *solidity.Raw[bool]
}

func New(addr corral.Address, state *state.State, journal *tx.EventJournal) *Params {
	context := solidity.NewContext(addr, state, journal)
	return &Params{
		context:     context,
		owner:       solidity.NewAddress(context, slotOwner),
		initialized: solidity.NewRaw[bool](context, slotInitialized),
	}
}

// Get native way to get param.
func (p *Params) Get(key corral.Bytes32) (*uint256.Int, error) {
	return solidity.NewUint256(p.context, key).Get()
}

// Set native way to set param.
func (p *Params) Set(key corral.Bytes32, value *uint256.Int) error {
	solidity.NewUint256(p.context, key).Set(value)
	return p.context.Emit(eventParamSet, key, value)
}

// Owner returns the privileged principal.
func (p *Params) Owner() (corral.Address, error) {
	return p.owner.Get()
}

// TransferOwnership hands the owner role to newOwner.
func (p *Params) TransferOwnership(newOwner corral.Address) error {
	if newOwner.IsZero() {
		return ErrZeroAddress
	}
	prev, err := p.owner.Get()
	if err != nil {
		return err
	}
	p.owner.Set(newOwner)
	return p.context.Emit(eventOwnershipTransferred, prev, newOwner)
}

// Initialized reports whether Initialize has run.
func (p *Params) Initialized() (bool, error) {
	return p.initialized.Get()
}

// Initialize sets the owner and writes initial values of every param. It can run only once.
func (p *Params) Initialize(owner corral.Address) error {
	done, err := p.initialized.Get()
	if err != nil {
		return err
	}
	if done {
		return ErrAlreadyInitialized
	}
	if owner.IsZero() {
		return ErrZeroAddress
	}
	if err := p.initialized.Upsert(true); err != nil {
		return err
	}
	if err := p.TransferOwnership(owner); err != nil {
		return err
	}

	for _, kv := range []struct {
		key   corral.Bytes32
		value *uint256.Int
	}{
		{corral.KeyRewardRate, corral.InitialRewardRate},
		{corral.KeyClaimDelay, uint256.NewInt(uint64(corral.InitialClaimDelay))},
		{corral.KeyUnstakePeriod, uint256.NewInt(uint64(corral.InitialUnstakePeriod))},
		{corral.KeyStakingPaused, new(uint256.Int)},
	} {
		if err := p.Set(kv.key, kv.value); err != nil {
			return err
		}
	}
	return nil
}

// Config is an immutable snapshot of admin params, taken once per invocation.
type Config struct {
	RewardRatePerBlock  *uint256.Int
	ClaimDelayBlocks    uint32
	UnstakePeriodBlocks uint32
	StakingPaused       bool
	Owner               corral.Address
}

// Load reads every param into a Config.
func (p *Params) Load() (*Config, error) {
	rate, err := p.Get(corral.KeyRewardRate)
	if err != nil {
		return nil, errors.Wrap(err, "reward rate")
	}
	delay, err := p.getUint32(corral.KeyClaimDelay)
	if err != nil {
		return nil, errors.Wrap(err, "claim delay")
	}
	period, err := p.getUint32(corral.KeyUnstakePeriod)
	if err != nil {
		return nil, errors.Wrap(err, "unstake period")
	}
	paused, err := p.Get(corral.KeyStakingPaused)
	if err != nil {
		return nil, errors.Wrap(err, "staking paused")
	}
	owner, err := p.Owner()
	if err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	return &Config{
		RewardRatePerBlock:  rate,
		ClaimDelayBlocks:    delay,
		UnstakePeriodBlocks: period,
		StakingPaused:       !paused.IsZero(),
		Owner:               owner,
	}, nil
}

func (p *Params) getUint32(key corral.Bytes32) (uint32, error) {
	v, err := p.Get(key)
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() || v.Uint64() > math.MaxUint32 {
		return 0, errors.Errorf("value %v exceeds uint32", v)
	}
	return uint32(v.Uint64()), nil
}
