// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakenft

import (
	"github.com/holiman/uint256"

	"github.com/corral-labs/corral/builtin/params"
	"github.com/corral-labs/corral/corral"
)

func onlyOwner(cfg *params.Config, caller corral.Address) error {
	if cfg.Owner.IsZero() || caller != cfg.Owner {
		return ErrUnauthorized
	}
	return nil
}

// Initialize sets the owner and the default params. It succeeds only once.
func (s *StakeNFT) Initialize(owner corral.Address) error {
	return s.execute(func(_ uint32, _ *params.Config) error {
		if err := s.params.Initialize(owner); err != nil {
			return err
		}
		logger.Info("initialized", "owner", owner)
		return nil
	})
}

// PauseStaking blocks new deposits. Pausing twice is a no-op.
func (s *StakeNFT) PauseStaking(caller corral.Address) error {
	return s.setPaused(caller, true)
}

// ResumeStaking allows new deposits again. Resuming twice is a no-op.
func (s *StakeNFT) ResumeStaking(caller corral.Address) error {
	return s.setPaused(caller, false)
}

func (s *StakeNFT) setPaused(caller corral.Address, paused bool) error {
	return s.execute(func(_ uint32, cfg *params.Config) error {
		if err := onlyOwner(cfg, caller); err != nil {
			return err
		}
		if cfg.StakingPaused == paused {
			return nil
		}
		v := new(uint256.Int)
		if paused {
			v.SetOne()
		}
		if err := s.params.Set(corral.KeyStakingPaused, v); err != nil {
			return err
		}
		logger.Info("staking pause changed", "paused", paused)
		return nil
	})
}

// UpdateRewardRate sets the per-block reward of a position. The new rate
// applies to the whole unclaimed window of every position.
func (s *StakeNFT) UpdateRewardRate(caller corral.Address, rate *uint256.Int) error {
	return s.setParam(caller, corral.KeyRewardRate, rate)
}

func (s *StakeNFT) UpdateClaimDelay(caller corral.Address, blocks uint32) error {
	return s.setParam(caller, corral.KeyClaimDelay, uint256.NewInt(uint64(blocks)))
}

func (s *StakeNFT) UpdateUnstakePeriod(caller corral.Address, blocks uint32) error {
	return s.setParam(caller, corral.KeyUnstakePeriod, uint256.NewInt(uint64(blocks)))
}

func (s *StakeNFT) setParam(caller corral.Address, key corral.Bytes32, value *uint256.Int) error {
	return s.execute(func(_ uint32, cfg *params.Config) error {
		if err := onlyOwner(cfg, caller); err != nil {
			return err
		}
		if err := s.params.Set(key, value); err != nil {
			return err
		}
		logger.Info("param updated", "key", key, "value", value)
		return nil
	})
}

// TransferOwnership hands the owner role to newOwner.
func (s *StakeNFT) TransferOwnership(caller, newOwner corral.Address) error {
	return s.execute(func(_ uint32, cfg *params.Config) error {
		if err := onlyOwner(cfg, caller); err != nil {
			return err
		}
		if err := s.params.TransferOwnership(newOwner); err != nil {
			return err
		}
		logger.Info("ownership transferred", "from", caller, "to", newOwner)
		return nil
	})
}
