// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakenft

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/corral-labs/corral/abi"
	"github.com/corral-labs/corral/builtin/gen"
	"github.com/corral-labs/corral/builtin/params"
	"github.com/corral-labs/corral/builtin/reverts"
	"github.com/corral-labs/corral/builtin/solidity"
	"github.com/corral-labs/corral/corral"
	"github.com/corral-labs/corral/log"
	"github.com/corral-labs/corral/state"
	"github.com/corral-labs/corral/tx"
)

var (
	logger = log.WithContext("pkg", "stakenft")

	contractABI         = abi.MustNew(gen.MustABI("StakeNFT"))
	eventStaked         = contractABI.MustEventByName("NFTStaked")
	eventUnstaked       = contractABI.MustEventByName("NFTUnstaked")
	eventRewardsClaimed = contractABI.MustEventByName("RewardsClaimed")
)

// Collection is the ledger of the staked items.
type Collection interface {
	OwnerOf(id *uint256.Int) (corral.Address, error)
	TransferFrom(operator, from, to corral.Address, id *uint256.Int) error
}

// RewardPool is the ledger of the reward token.
type RewardPool interface {
	BalanceOf(addr corral.Address) (*uint256.Int, error)
	Transfer(from, to corral.Address, amount *uint256.Int) error
}

// Clock reports the number of the block being executed.
type Clock interface {
	BlockNumber() uint32
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() uint32

func (f ClockFunc) BlockNumber() uint32 { return f() }

// StakeNFT binder of `StakeNFT` contract.
type StakeNFT struct {
	context    *solidity.Context
	storage    *storage
	params     *params.Params
	collection Collection
	rewards    RewardPool
	clock      Clock
}

func New(
	addr corral.Address,
	state *state.State,
	journal *tx.EventJournal,
	params *params.Params,
	collection Collection,
	rewards RewardPool,
	clock Clock,
) *StakeNFT {
	context := solidity.NewContext(addr, state, journal)
	return &StakeNFT{
		context:    context,
		storage:    newStorage(context),
		params:     params,
		collection: collection,
		rewards:    rewards,
		clock:      clock,
	}
}

// Address returns the custody address of the engine.
func (s *StakeNFT) Address() corral.Address {
	return s.context.Address()
}

// execute runs op as a single atomic invocation. The block number and the
// params are read once, before op, and any error rolls back every storage
// write and event emitted by op.
func (s *StakeNFT) execute(op func(now uint32, cfg *params.Config) error) error {
	held, err := s.storage.guard.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get guard")
	}
	if held {
		return ErrReentrantCall
	}
	if err := s.storage.guard.Upsert(true); err != nil {
		return errors.Wrap(err, "failed to set guard")
	}
	defer s.storage.guard.Clear()

	now := s.clock.BlockNumber()
	cfg, err := s.params.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load params")
	}

	cp := s.context.NewCheckpoint()
	if err := op(now, cfg); err != nil {
		s.context.RevertTo(cp)
		return err
	}
	return nil
}

// custodyError converts a rejection of the collection into
// ErrNotOwnerOrNotApproved, keeping its reason.
func custodyError(err error) error {
	if reverts.IsRevertErr(err) {
		return errors.Wrap(ErrNotOwnerOrNotApproved, reverts.Reason(err))
	}
	return errors.Wrap(err, "failed to transfer item")
}

// Stake deposits an item owned (or approved to the engine) by caller and
// opens a position at the current block.
func (s *StakeNFT) Stake(caller corral.Address, id *uint256.Int) error {
	return s.execute(func(now uint32, cfg *params.Config) error {
		if now == 0 {
			return ErrGenesisBlock
		}
		if cfg.StakingPaused {
			return ErrStakingPaused
		}
		pos, err := s.storage.GetPosition(caller, id)
		if err != nil {
			return err
		}
		if pos.IsActive() {
			return ErrPositionAlreadyActive
		}

		if err := s.storage.SetPosition(caller, id, &Position{StakedAt: now, LastClaim: now}); err != nil {
			return err
		}
		if err := s.storage.AddItem(caller, id); err != nil {
			return err
		}
		if err := s.collection.TransferFrom(s.Address(), caller, s.Address(), id); err != nil {
			return custodyError(err)
		}
		if err := s.context.Emit(eventStaked, caller, id); err != nil {
			return err
		}
		logger.Debug("item staked", "owner", caller, "item", id, "block", now)
		return nil
	})
}

// Unstake closes the position once the unstake period has elapsed and
// returns the item to caller. Rewards accrued since the last claim are
// moved into the settled balance of caller.
func (s *StakeNFT) Unstake(caller corral.Address, id *uint256.Int) error {
	return s.execute(func(now uint32, cfg *params.Config) error {
		if now == 0 {
			return ErrGenesisBlock
		}
		pos, err := s.storage.GetPosition(caller, id)
		if err != nil {
			return err
		}
		if !pos.IsActive() {
			return ErrNoActivePosition
		}
		if now < pos.StakedAt || now-pos.StakedAt < cfg.UnstakePeriodBlocks {
			return ErrUnbondingNotElapsed
		}
		accrued, err := pos.Accrued(cfg.RewardRatePerBlock, now)
		if err != nil {
			return err
		}

		if err := s.storage.AddSettled(caller, accrued); err != nil {
			return err
		}
		s.storage.ClearPosition(caller, id)
		if err := s.storage.RemoveItem(caller, id); err != nil {
			return err
		}
		if err := s.collection.TransferFrom(s.Address(), s.Address(), caller, id); err != nil {
			return errors.Wrap(err, "failed to return item")
		}
		if err := s.context.Emit(eventUnstaked, caller, id); err != nil {
			return err
		}
		logger.Debug("item unstaked", "owner", caller, "item", id, "block", now, "settled", accrued)
		return nil
	})
}

// ClaimRewards pays caller the rewards accrued by all active positions plus
// the settled balance, in a single transfer. Either every active position
// passes the claim delay or nothing is paid.
func (s *StakeNFT) ClaimRewards(caller corral.Address) (*uint256.Int, error) {
	var total *uint256.Int
	err := s.execute(func(now uint32, cfg *params.Config) error {
		if now == 0 {
			return ErrGenesisBlock
		}
		ids, err := s.storage.GetItems(caller)
		if err != nil {
			return err
		}
		settled, err := s.storage.GetSettled(caller)
		if err != nil {
			return err
		}
		if len(ids) == 0 && settled.IsZero() {
			return ErrNoActivePositions
		}

		amount := settled.Clone()
		type entry struct {
			id  *uint256.Int
			pos *Position
		}
		positions := make([]entry, 0, len(ids))
		for _, id := range ids {
			pos, err := s.storage.GetPosition(caller, id)
			if err != nil {
				return err
			}
			if !pos.IsActive() {
				continue
			}
			if now < pos.LastClaim || now-pos.LastClaim < cfg.ClaimDelayBlocks {
				return ErrClaimDelayNotMet
			}
			accrued, err := pos.Accrued(cfg.RewardRatePerBlock, now)
			if err != nil {
				return err
			}
			if _, overflow := amount.AddOverflow(amount, accrued); overflow {
				return ErrArithmeticOverflow
			}
			positions = append(positions, entry{id, pos})
		}

		pool, err := s.rewards.BalanceOf(s.Address())
		if err != nil {
			return errors.Wrap(err, "failed to get reward pool")
		}
		if pool.Lt(amount) {
			return ErrInsufficientRewardPool
		}

		for _, e := range positions {
			e.pos.LastClaim = now
			if err := s.storage.SetPosition(caller, e.id, e.pos); err != nil {
				return err
			}
		}
		s.storage.ClearSettled(caller)
		if !amount.IsZero() {
			if err := s.rewards.Transfer(s.Address(), caller, amount); err != nil {
				return errors.Wrap(err, "failed to transfer rewards")
			}
		}
		if err := s.context.Emit(eventRewardsClaimed, caller, amount); err != nil {
			return err
		}
		logger.Debug("rewards claimed", "owner", caller, "amount", amount, "positions", len(positions), "block", now)
		total = amount
		return nil
	})
	if err != nil {
		return nil, err
	}
	return total, nil
}

// GetStake returns the position of (owner, id). Inactive positions are zero valued.
func (s *StakeNFT) GetStake(owner corral.Address, id *uint256.Int) (*Position, error) {
	return s.storage.GetPosition(owner, id)
}

// StakedItems returns the ids of the items owner has staked, in staking order.
func (s *StakeNFT) StakedItems(owner corral.Address) ([]*uint256.Int, error) {
	return s.storage.GetItems(owner)
}

// Settled returns the rewards of closed positions waiting to be claimed.
func (s *StakeNFT) Settled(owner corral.Address) (*uint256.Int, error) {
	return s.storage.GetSettled(owner)
}

// PendingRewards previews what a claim at block now would pay, ignoring the claim delay.
func (s *StakeNFT) PendingRewards(owner corral.Address, now uint32) (*uint256.Int, error) {
	rate, err := s.RewardRate()
	if err != nil {
		return nil, err
	}
	amount, err := s.storage.GetSettled(owner)
	if err != nil {
		return nil, err
	}
	ids, err := s.storage.GetItems(owner)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		pos, err := s.storage.GetPosition(owner, id)
		if err != nil {
			return nil, err
		}
		accrued, err := pos.Accrued(rate, now)
		if err != nil {
			return nil, err
		}
		if _, overflow := amount.AddOverflow(amount, accrued); overflow {
			return nil, ErrArithmeticOverflow
		}
	}
	return amount, nil
}

func (s *StakeNFT) IsStakingPaused() (bool, error) {
	v, err := s.params.Get(corral.KeyStakingPaused)
	if err != nil {
		return false, err
	}
	return !v.IsZero(), nil
}

func (s *StakeNFT) UnstakePeriod() (uint32, error) {
	cfg, err := s.params.Load()
	if err != nil {
		return 0, err
	}
	return cfg.UnstakePeriodBlocks, nil
}

func (s *StakeNFT) ClaimDelay() (uint32, error) {
	cfg, err := s.params.Load()
	if err != nil {
		return 0, err
	}
	return cfg.ClaimDelayBlocks, nil
}

func (s *StakeNFT) RewardRate() (*uint256.Int, error) {
	return s.params.Get(corral.KeyRewardRate)
}

func (s *StakeNFT) Owner() (corral.Address, error) {
	return s.params.Owner()
}
