// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package collection

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/corral-labs/corral/api/utils"
	"github.com/corral-labs/corral/builtin/collection"
	"github.com/corral-labs/corral/corral"
	"github.com/corral-labs/corral/runtime"
)

type Item struct {
	ID       *math.HexOrDecimal256 `json:"id"`
	Owner    corral.Address        `json:"owner"`
	Approved *corral.Address       `json:"approved"`
}

// Invoked methods of the collection.
const (
	MethodApprove           = "approve"
	MethodSetApprovalForAll = "setApprovalForAll"
)

// ApproveRequest is signed over the approved address, zero when clearing,
// and the item id.
type ApproveRequest struct {
	utils.Signed
	To     *corral.Address       `json:"to"`
	ItemID *math.HexOrDecimal256 `json:"itemId"`
}

// ApprovalForAllRequest is signed over the operator and the approval.
type ApprovalForAllRequest struct {
	utils.Signed
	Operator *corral.Address `json:"operator"`
	Approved bool            `json:"approved"`
}

type MintRequest struct {
	To     *corral.Address        `json:"to"`
	ItemID *math.HexOrDecimal256 `json:"itemId"`
}

type Collection struct {
	rt     *runtime.Runtime
	devAPI bool
}

func New(rt *runtime.Runtime, devAPI bool) *Collection {
	return &Collection{
		rt,
		devAPI,
	}
}

func (c *Collection) handleGetItem(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.ParseItemID(mux.Vars(req)["itemId"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "itemId"))
	}
	item := &Item{ID: utils.Amount(id)}
	if err := c.rt.View(func(contracts *runtime.Contracts) error {
		exists, err := contracts.Collection.Exists(id)
		if err != nil {
			return err
		}
		if !exists {
			return utils.NotFound(collection.ErrInvalidTokenID)
		}
		if item.Owner, err = contracts.Collection.OwnerOf(id); err != nil {
			return err
		}
		approved, err := contracts.Collection.GetApproved(id)
		if err != nil {
			return err
		}
		if !approved.IsZero() {
			item.Approved = &approved
		}
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, item)
}

func (c *Collection) handleApprove(w http.ResponseWriter, req *http.Request) error {
	var body ApproveRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	id, err := utils.ToUint256(body.ItemID)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "itemId"))
	}
	// a missing to clears the approval
	var to corral.Address
	if body.To != nil {
		to = *body.To
	}
	call, err := body.Call(MethodApprove, to, id)
	if err != nil {
		return err
	}
	return utils.Invoke(w, c.rt, call, func(contracts *runtime.Contracts) error {
		return contracts.Collection.Approve(call.Caller, to, id)
	})
}

func (c *Collection) handleSetApprovalForAll(w http.ResponseWriter, req *http.Request) error {
	var body ApprovalForAllRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	operator, err := utils.RequireAddress("operator", body.Operator)
	if err != nil {
		return err
	}
	call, err := body.Call(MethodSetApprovalForAll, operator, body.Approved)
	if err != nil {
		return err
	}
	return utils.Invoke(w, c.rt, call, func(contracts *runtime.Contracts) error {
		return contracts.Collection.SetApprovalForAll(call.Caller, operator, body.Approved)
	})
}

func (c *Collection) handleMint(w http.ResponseWriter, req *http.Request) error {
	var body MintRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	to, err := utils.RequireAddress("to", body.To)
	if err != nil {
		return err
	}
	id, err := utils.ToUint256(body.ItemID)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "itemId"))
	}
	return utils.InvokeUnsigned(w, c.rt, to, "mintItem", func(contracts *runtime.Contracts) error {
		return contracts.Collection.Mint(to, id)
	})
}

func (c *Collection) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/approve").
		Methods(http.MethodPost).
		Name("collection_approve").
		HandlerFunc(utils.WrapHandlerFunc(c.handleApprove))
	sub.Path("/approval-for-all").
		Methods(http.MethodPost).
		Name("collection_set_approval_for_all").
		HandlerFunc(utils.WrapHandlerFunc(c.handleSetApprovalForAll))
	if c.devAPI {
		sub.Path("/mint").
			Methods(http.MethodPost).
			Name("collection_mint").
			HandlerFunc(utils.WrapHandlerFunc(c.handleMint))
	}
	sub.Path("/{itemId}").
		Methods(http.MethodGet).
		Name("collection_get_item").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetItem))
}
