// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/corral-labs/corral/api/utils"
	"github.com/corral-labs/corral/health"
)

type API struct {
	healthStatus *health.Health
}

func NewAPI(healthStatus *health.Health) *API {
	return &API{
		healthStatus: healthStatus,
	}
}

func (h *API) handleGetHealth(w http.ResponseWriter, _ *http.Request) error {
	status := h.healthStatus.Status()

	w.Header().Set("Content-Type", utils.JSONContentType)
	if !status.Healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	return utils.WriteJSON(w, status)
}

func (h *API) Mount(root *mux.Router, pathPrefix string) {
	root.Path(pathPrefix).
		Methods(http.MethodGet).
		Name("admin_health").
		HandlerFunc(utils.WrapHandlerFunc(h.handleGetHealth))
}
