// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package admin serves the operator endpoints of a node.
package admin

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/corral-labs/corral/api/admin/apilogs"
	"github.com/corral-labs/corral/api/admin/loglevel"
	"github.com/corral-labs/corral/health"

	healthAPI "github.com/corral-labs/corral/api/admin/health"
)

func NewHTTPHandler(logLevel *slog.LevelVar, health *health.Health, apiLogs *atomic.Bool) http.Handler {
	router := mux.NewRouter()
	sub := router.PathPrefix("/admin").Subrouter()

	loglevel.New(logLevel).Mount(sub, "/loglevel")
	apilogs.New(apiLogs).Mount(sub, "/apilogs")
	healthAPI.NewAPI(health).Mount(sub, "/health")

	return handlers.CompressHandler(router)
}
