// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blocks

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/corral-labs/corral/api/utils"
	"github.com/corral-labs/corral/runtime"
)

type Head struct {
	Number     uint32 `json:"number"`
	Pending    uint32 `json:"pending"`
	PendingTxs uint32 `json:"pendingTxs"`
}

type MineRequest struct {
	Count *uint32 `json:"count"`
}

type Blocks struct {
	rt     *runtime.Runtime
	devAPI bool
}

func New(rt *runtime.Runtime, devAPI bool) *Blocks {
	return &Blocks{
		rt,
		devAPI,
	}
}

func (b *Blocks) head() *Head {
	head := b.rt.Chain().Head()
	return &Head{
		Number:     head.Number,
		Pending:    head.Number + 1,
		PendingTxs: head.PendingTxs,
	}
}

func (b *Blocks) handleGetBest(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, b.head())
}

func (b *Blocks) handleMine(w http.ResponseWriter, req *http.Request) error {
	var body MineRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	count := uint32(1)
	if body.Count != nil {
		count = *body.Count
	}
	if count == 0 {
		return utils.BadRequest(errors.New("count: must be positive"))
	}
	if _, err := b.rt.Mine(count); err != nil {
		return err
	}
	return utils.WriteJSON(w, b.head())
}

func (b *Blocks) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/best").
		Methods(http.MethodGet).
		Name("blocks_get_best").
		HandlerFunc(utils.WrapHandlerFunc(b.handleGetBest))
	if b.devAPI {
		sub.Path("/mine").
			Methods(http.MethodPost).
			Name("blocks_mine").
			HandlerFunc(utils.WrapHandlerFunc(b.handleMine))
	}
}
