// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package params

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/corral-labs/corral/api/utils"
	"github.com/corral-labs/corral/corral"
	"github.com/corral-labs/corral/runtime"
	"github.com/corral-labs/corral/tx"
)

// Params are the governed parameters of the staking contract.
type Params struct {
	Owner         corral.Address        `json:"owner"`
	StakingPaused bool                  `json:"stakingPaused"`
	RewardRate    *math.HexOrDecimal256 `json:"rewardRate"`
	ClaimDelay    uint32                `json:"claimDelay"`
	UnstakePeriod uint32                `json:"unstakePeriod"`
}

// Invoked methods of the governed parameters.
const (
	MethodPauseStaking        = "pauseStaking"
	MethodResumeStaking       = "resumeStaking"
	MethodUpdateRewardRate    = "updateRewardRate"
	MethodUpdateClaimDelay    = "updateClaimDelay"
	MethodUpdateUnstakePeriod = "updateUnstakePeriod"
	MethodTransferOwnership   = "transferOwnership"
)

// CallerRequest is the body of pause and resume requests.
type CallerRequest struct {
	utils.Signed
}

// UpdateRequest is the body of parameter updates. Value is the new rate,
// delay or period, signed as given.
type UpdateRequest struct {
	utils.Signed
	Value *math.HexOrDecimal256 `json:"value"`
}

// OwnerRequest is the body of ownership transfers. Value is the new owner,
// signed as the zero address when absent.
type OwnerRequest struct {
	utils.Signed
	Value *corral.Address `json:"value"`
}

type Handler struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Handler {
	return &Handler{
		rt,
	}
}

func (h *Handler) handleGetParams(w http.ResponseWriter, _ *http.Request) error {
	var p Params
	if err := h.rt.View(func(c *runtime.Contracts) error {
		var err error
		if p.Owner, err = c.StakeNFT.Owner(); err != nil {
			return err
		}
		if p.StakingPaused, err = c.StakeNFT.IsStakingPaused(); err != nil {
			return err
		}
		rate, err := c.StakeNFT.RewardRate()
		if err != nil {
			return err
		}
		p.RewardRate = utils.Amount(rate)
		if p.ClaimDelay, err = c.StakeNFT.ClaimDelay(); err != nil {
			return err
		}
		p.UnstakePeriod, err = c.StakeNFT.UnstakePeriod()
		return err
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &p)
}

func (h *Handler) handleSetPaused(paused bool) utils.HandlerFunc {
	method := MethodResumeStaking
	if paused {
		method = MethodPauseStaking
	}
	return func(w http.ResponseWriter, req *http.Request) error {
		var body CallerRequest
		if err := utils.ParseJSON(req.Body, &body); err != nil {
			return utils.BadRequest(errors.WithMessage(err, "body"))
		}
		call, err := body.Call(method)
		if err != nil {
			return err
		}
		return utils.Invoke(w, h.rt, call, func(c *runtime.Contracts) error {
			if paused {
				return c.StakeNFT.PauseStaking(call.Caller)
			}
			return c.StakeNFT.ResumeStaking(call.Caller)
		})
	}
}

// parseUpdate returns the signed call of method along with the requested value.
func parseUpdate(req *http.Request, method string) (*tx.Call, *uint256.Int, error) {
	var body UpdateRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return nil, nil, utils.BadRequest(errors.WithMessage(err, "body"))
	}
	v, err := utils.ToUint256(body.Value)
	if err != nil {
		return nil, nil, utils.BadRequest(errors.WithMessage(err, "value"))
	}
	call, err := body.Call(method, v)
	if err != nil {
		return nil, nil, err
	}
	return call, v, nil
}

func (h *Handler) handleUpdateRewardRate(w http.ResponseWriter, req *http.Request) error {
	call, rate, err := parseUpdate(req, MethodUpdateRewardRate)
	if err != nil {
		return err
	}
	return utils.Invoke(w, h.rt, call, func(c *runtime.Contracts) error {
		return c.StakeNFT.UpdateRewardRate(call.Caller, rate)
	})
}

// handleUpdateBlocks serves the updates of block count parameters.
func (h *Handler) handleUpdateBlocks(method string, update func(c *runtime.Contracts, caller corral.Address, blocks uint32) error) utils.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) error {
		call, v, err := parseUpdate(req, method)
		if err != nil {
			return err
		}
		if !v.IsUint64() || v.Uint64() > uint64(^uint32(0)) {
			return utils.BadRequest(errors.New("value: exceeds 32 bits"))
		}
		blocks := uint32(v.Uint64())
		return utils.Invoke(w, h.rt, call, func(c *runtime.Contracts) error {
			return update(c, call.Caller, blocks)
		})
	}
}

func (h *Handler) handleTransferOwnership(w http.ResponseWriter, req *http.Request) error {
	var body OwnerRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	// a zero new owner reverts in the contract
	var newOwner corral.Address
	if body.Value != nil {
		newOwner = *body.Value
	}
	call, err := body.Call(MethodTransferOwnership, newOwner)
	if err != nil {
		return err
	}
	return utils.Invoke(w, h.rt, call, func(c *runtime.Contracts) error {
		return c.StakeNFT.TransferOwnership(call.Caller, newOwner)
	})
}

func (h *Handler) Mount(root *mux.Router, pathPrefix string) {
	root.Path(pathPrefix).
		Methods(http.MethodGet).
		Name("params_get_params").
		HandlerFunc(utils.WrapHandlerFunc(h.handleGetParams))

	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/pause").
		Methods(http.MethodPost).
		Name("params_pause").
		HandlerFunc(utils.WrapHandlerFunc(h.handleSetPaused(true)))
	sub.Path("/resume").
		Methods(http.MethodPost).
		Name("params_resume").
		HandlerFunc(utils.WrapHandlerFunc(h.handleSetPaused(false)))
	sub.Path("/reward-rate").
		Methods(http.MethodPost).
		Name("params_update_reward_rate").
		HandlerFunc(utils.WrapHandlerFunc(h.handleUpdateRewardRate))
	sub.Path("/claim-delay").
		Methods(http.MethodPost).
		Name("params_update_claim_delay").
		HandlerFunc(utils.WrapHandlerFunc(h.handleUpdateBlocks(MethodUpdateClaimDelay,
			func(c *runtime.Contracts, caller corral.Address, blocks uint32) error {
				return c.StakeNFT.UpdateClaimDelay(caller, blocks)
			})))
	sub.Path("/unstake-period").
		Methods(http.MethodPost).
		Name("params_update_unstake_period").
		HandlerFunc(utils.WrapHandlerFunc(h.handleUpdateBlocks(MethodUpdateUnstakePeriod,
			func(c *runtime.Contracts, caller corral.Address, blocks uint32) error {
				return c.StakeNFT.UpdateUnstakePeriod(caller, blocks)
			})))
	sub.Path("/owner").
		Methods(http.MethodPost).
		Name("params_transfer_ownership").
		HandlerFunc(utils.WrapHandlerFunc(h.handleTransferOwnership))
}
