// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/corral-labs/corral/api/utils"
	"github.com/corral-labs/corral/builtin/stakenft"
	"github.com/corral-labs/corral/corral"
	"github.com/corral-labs/corral/runtime"
	"github.com/corral-labs/corral/tx"
)

type Stakes struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Stakes {
	return &Stakes{
		rt,
	}
}

func parseStakeRequest(req *http.Request, method string) (*tx.Call, *uint256.Int, error) {
	var body StakeRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return nil, nil, utils.BadRequest(errors.WithMessage(err, "body"))
	}
	id, err := utils.ToUint256(body.ItemID)
	if err != nil {
		return nil, nil, utils.BadRequest(errors.WithMessage(err, "itemId"))
	}
	call, err := body.Call(method, id)
	if err != nil {
		return nil, nil, err
	}
	return call, id, nil
}

func (s *Stakes) handleStake(w http.ResponseWriter, req *http.Request) error {
	call, id, err := parseStakeRequest(req, MethodStake)
	if err != nil {
		return err
	}
	return utils.Invoke(w, s.rt, call, func(c *runtime.Contracts) error {
		return c.StakeNFT.Stake(call.Caller, id)
	})
}

func (s *Stakes) handleUnstake(w http.ResponseWriter, req *http.Request) error {
	call, id, err := parseStakeRequest(req, MethodUnstake)
	if err != nil {
		return err
	}
	return utils.Invoke(w, s.rt, call, func(c *runtime.Contracts) error {
		return c.StakeNFT.Unstake(call.Caller, id)
	})
}

// convertStake builds the view of a position as of block now.
func convertStake(c *runtime.Contracts, owner corral.Address, id *uint256.Int, pos *stakenft.Position, now uint32) (*Stake, error) {
	rate, err := c.StakeNFT.RewardRate()
	if err != nil {
		return nil, err
	}
	period, err := c.StakeNFT.UnstakePeriod()
	if err != nil {
		return nil, err
	}
	accrued, err := pos.Accrued(rate, now)
	if err != nil {
		return nil, err
	}
	stake := &Stake{
		Owner:     owner,
		ItemID:    utils.Amount(id),
		StakedAt:  pos.StakedAt,
		LastClaim: pos.LastClaim,
		Active:    pos.IsActive(),
		Accrued:   utils.Amount(accrued),
	}
	if stake.Active {
		stake.UnlocksAt = pos.StakedAt + period
		if stake.UnlocksAt < pos.StakedAt {
			stake.UnlocksAt = ^uint32(0)
		}
	}
	return stake, nil
}

func (s *Stakes) handleGetStakes(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.ParseAddress(mux.Vars(req)["owner"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "owner"))
	}
	var result *OwnerStakes
	if err := s.rt.View(func(c *runtime.Contracts) error {
		ids, err := c.StakeNFT.StakedItems(owner)
		if err != nil {
			return err
		}
		result = &OwnerStakes{Owner: owner, Block: c.BlockNumber, Stakes: make([]*Stake, 0, len(ids))}
		for _, id := range ids {
			pos, err := c.StakeNFT.GetStake(owner, id)
			if err != nil {
				return err
			}
			stake, err := convertStake(c, owner, id, pos, c.BlockNumber)
			if err != nil {
				return err
			}
			result.Stakes = append(result.Stakes, stake)
		}
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, result)
}

func (s *Stakes) handleGetStake(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.ParseAddress(mux.Vars(req)["owner"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "owner"))
	}
	id, err := utils.ParseItemID(mux.Vars(req)["itemId"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "itemId"))
	}
	var stake *Stake
	if err := s.rt.View(func(c *runtime.Contracts) error {
		pos, err := c.StakeNFT.GetStake(owner, id)
		if err != nil {
			return err
		}
		stake, err = convertStake(c, owner, id, pos, c.BlockNumber)
		return err
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, stake)
}

func (s *Stakes) Mount(root *mux.Router, pathPrefix string) {
	root.Path(pathPrefix).
		Methods(http.MethodPost).
		Name("stakes_stake").
		HandlerFunc(utils.WrapHandlerFunc(s.handleStake))

	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/unstake").
		Methods(http.MethodPost).
		Name("stakes_unstake").
		HandlerFunc(utils.WrapHandlerFunc(s.handleUnstake))
	sub.Path("/{owner}").
		Methods(http.MethodGet).
		Name("stakes_get_stakes").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetStakes))
	sub.Path("/{owner}/{itemId}").
		Methods(http.MethodGet).
		Name("stakes_get_stake").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetStake))
}
