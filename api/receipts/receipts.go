// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package receipts

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/corral-labs/corral/api/utils"
	"github.com/corral-labs/corral/corral"
	"github.com/corral-labs/corral/logdb"
)

type Receipts struct {
	db *logdb.LogDB
}

func New(db *logdb.LogDB) *Receipts {
	return &Receipts{
		db,
	}
}

func (r *Receipts) handleGetReceipt(w http.ResponseWriter, req *http.Request) error {
	id, err := corral.ParseBytes32(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	receipt, err := r.db.GetReceipt(req.Context(), id)
	if err != nil {
		if r.db.IsNotFound(err) {
			return utils.WriteJSON(w, nil)
		}
		return err
	}
	return utils.WriteJSON(w, utils.ConvertReceipt(receipt))
}

func (r *Receipts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{id}").
		Methods(http.MethodGet).
		Name("receipts_get_receipt").
		HandlerFunc(utils.WrapHandlerFunc(r.handleGetReceipt))
}
