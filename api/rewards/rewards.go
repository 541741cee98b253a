// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/corral-labs/corral/api/utils"
	"github.com/corral-labs/corral/corral"
	"github.com/corral-labs/corral/runtime"
)

const MethodClaim = "claimRewards"

type ClaimRequest struct {
	utils.Signed
}

// Rewards is the reward preview of an owner. Pending includes Settled.
type Rewards struct {
	Owner   corral.Address        `json:"owner"`
	Block   uint32                `json:"block"`
	Pending *math.HexOrDecimal256 `json:"pending"`
	Settled *math.HexOrDecimal256 `json:"settled"`
	// the earliest block a claim of every active position passes the claim delay
	ClaimableAt uint32 `json:"claimableAt"`
}

type Handler struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Handler {
	return &Handler{
		rt,
	}
}

func (h *Handler) handleClaim(w http.ResponseWriter, req *http.Request) error {
	var body ClaimRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	call, err := body.Call(MethodClaim)
	if err != nil {
		return err
	}
	return utils.Invoke(w, h.rt, call, func(c *runtime.Contracts) error {
		_, err := c.StakeNFT.ClaimRewards(call.Caller)
		return err
	})
}

func (h *Handler) handleGetRewards(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.ParseAddress(mux.Vars(req)["owner"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "owner"))
	}
	block, err := utils.ParseUint32(req.URL.Query().Get("block"), 0)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "block"))
	}

	var result *Rewards
	if err := h.rt.View(func(c *runtime.Contracts) error {
		if block == 0 {
			block = c.BlockNumber
		}
		pending, err := c.StakeNFT.PendingRewards(owner, block)
		if err != nil {
			return err
		}
		settled, err := c.StakeNFT.Settled(owner)
		if err != nil {
			return err
		}
		delay, err := c.StakeNFT.ClaimDelay()
		if err != nil {
			return err
		}
		ids, err := c.StakeNFT.StakedItems(owner)
		if err != nil {
			return err
		}
		var claimableAt uint32
		for _, id := range ids {
			pos, err := c.StakeNFT.GetStake(owner, id)
			if err != nil {
				return err
			}
			at := uint64(pos.LastClaim) + uint64(delay)
			if at > uint64(^uint32(0)) {
				at = uint64(^uint32(0))
			}
			claimableAt = max(claimableAt, uint32(at))
		}
		result = &Rewards{
			Owner:       owner,
			Block:       block,
			Pending:     utils.Amount(pending),
			Settled:     utils.Amount(settled),
			ClaimableAt: claimableAt,
		}
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, result)
}

func (h *Handler) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/claim").
		Methods(http.MethodPost).
		Name("rewards_claim").
		HandlerFunc(utils.WrapHandlerFunc(h.handleClaim))
	sub.Path("/{owner}").
		Methods(http.MethodGet).
		Name("rewards_get_rewards").
		HandlerFunc(utils.WrapHandlerFunc(h.handleGetRewards))
}
