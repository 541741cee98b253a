// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/corral-labs/corral/corral"
	"github.com/corral-labs/corral/runtime"
)

// CustomGenesis is user customized genesis.
type CustomGenesis struct {
	Name       string                `yaml:"name"`
	Owner      corral.Address        `yaml:"owner"`
	Params     Params                `yaml:"params"`
	RewardPool *math.HexOrDecimal256 `yaml:"rewardPool"`
	Balances   []Balance             `yaml:"balances"`
	Items      []Item                `yaml:"items"`
}

// Params overrides the default staking params. Unset fields keep their defaults.
type Params struct {
	RewardRate    *math.HexOrDecimal256 `yaml:"rewardRate"`
	ClaimDelay    *uint32               `yaml:"claimDelay"`
	UnstakePeriod *uint32               `yaml:"unstakePeriod"`
	StakingPaused bool                  `yaml:"stakingPaused"`
}

// Balance is a reward token allocation.
type Balance struct {
	Address corral.Address        `yaml:"address"`
	Amount  *math.HexOrDecimal256 `yaml:"amount"`
}

// Item is a collection item minted at genesis.
type Item struct {
	Owner corral.Address        `yaml:"owner"`
	ID    *math.HexOrDecimal256 `yaml:"id"`
	// grant the staking engine operator rights over every item of Owner
	ApproveStaking bool `yaml:"approveStaking"`
}

// LoadCustomGenesis decodes a YAML genesis. Unknown fields are rejected.
func LoadCustomGenesis(r io.Reader) (*CustomGenesis, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var gen CustomGenesis
	if err := dec.Decode(&gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	return &gen, nil
}

func toUint256(v *math.HexOrDecimal256) (*uint256.Int, error) {
	b := (*big.Int)(v)
	if b.Sign() < 0 {
		return nil, errors.New("negative value")
	}
	u, overflow := uint256.FromBig(b)
	if overflow {
		return nil, errors.New("value exceeds 256 bits")
	}
	return u, nil
}

type allocation struct {
	to     corral.Address
	amount *uint256.Int
}

type mint struct {
	owner   corral.Address
	id      *uint256.Int
	approve bool
}

// NewCustomNet create custom network genesis.
func NewCustomNet(gen *CustomGenesis) (*Genesis, error) {
	if gen.Owner.IsZero() {
		return nil, errors.New("owner must be set")
	}
	name := gen.Name
	if name == "" {
		name = "customnet"
	}

	var rate *uint256.Int
	if gen.Params.RewardRate != nil {
		v, err := toUint256(gen.Params.RewardRate)
		if err != nil {
			return nil, errors.Wrap(err, "rewardRate")
		}
		rate = v
	}

	var pool *uint256.Int
	if gen.RewardPool != nil {
		v, err := toUint256(gen.RewardPool)
		if err != nil {
			return nil, errors.Wrap(err, "rewardPool")
		}
		pool = v
	}

	supply := new(uint256.Int)
	if pool != nil {
		supply.Set(pool)
	}
	var allocations []allocation
	for _, b := range gen.Balances {
		if b.Address.IsZero() {
			return nil, errors.New("balance: address must be set")
		}
		if b.Amount == nil {
			return nil, fmt.Errorf("%s: amount must be set", b.Address)
		}
		amount, err := toUint256(b.Amount)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: amount", b.Address)
		}
		if _, overflow := supply.AddOverflow(supply, amount); overflow {
			return nil, errors.New("total supply exceeds 256 bits")
		}
		allocations = append(allocations, allocation{b.Address, amount})
	}

	seen := make(map[uint256.Int]bool)
	var mints []mint
	for _, item := range gen.Items {
		if item.Owner.IsZero() {
			return nil, errors.New("item: owner must be set")
		}
		if item.ID == nil {
			return nil, fmt.Errorf("%s: item id must be set", item.Owner)
		}
		id, err := toUint256(item.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: item id", item.Owner)
		}
		if seen[*id] {
			return nil, fmt.Errorf("item %v minted twice", id)
		}
		seen[*id] = true
		mints = append(mints, mint{item.Owner, id, item.ApproveStaking})
	}

	owner := gen.Owner
	p := gen.Params
	return &Genesis{
		name:  name,
		owner: owner,
		apply: func(c *runtime.Contracts) error {
			engine := c.StakeNFT
			if err := engine.Initialize(owner); err != nil {
				return errors.Wrap(err, "initialize")
			}
			if rate != nil {
				if err := engine.UpdateRewardRate(owner, rate); err != nil {
					return errors.Wrap(err, "rewardRate")
				}
			}
			if p.ClaimDelay != nil {
				if err := engine.UpdateClaimDelay(owner, *p.ClaimDelay); err != nil {
					return errors.Wrap(err, "claimDelay")
				}
			}
			if p.UnstakePeriod != nil {
				if err := engine.UpdateUnstakePeriod(owner, *p.UnstakePeriod); err != nil {
					return errors.Wrap(err, "unstakePeriod")
				}
			}
			if p.StakingPaused {
				if err := engine.PauseStaking(owner); err != nil {
					return errors.Wrap(err, "stakingPaused")
				}
			}

			if pool != nil && !pool.IsZero() {
				if err := c.Token.Mint(engine.Address(), pool); err != nil {
					return errors.Wrap(err, "fund reward pool")
				}
			}
			for _, a := range allocations {
				if err := c.Token.Mint(a.to, a.amount); err != nil {
					return errors.Wrapf(err, "%s: mint tokens", a.to)
				}
			}

			approved := make(map[corral.Address]bool)
			for _, m := range mints {
				if err := c.Collection.Mint(m.owner, m.id); err != nil {
					return errors.Wrapf(err, "mint item %v", m.id)
				}
				if m.approve && !approved[m.owner] {
					if err := c.Collection.SetApprovalForAll(m.owner, engine.Address(), true); err != nil {
						return errors.Wrapf(err, "%s: approve staking", m.owner)
					}
					approved[m.owner] = true
				}
			}
			return nil
		},
	}, nil
}
