// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package api serves the REST interface of the staking ledger.
package api

import (
	"net/http"
	"net/http/pprof"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/corral-labs/corral/api/blocks"
	"github.com/corral-labs/corral/api/collection"
	"github.com/corral-labs/corral/api/events"
	"github.com/corral-labs/corral/api/node"
	"github.com/corral-labs/corral/api/params"
	"github.com/corral-labs/corral/api/receipts"
	"github.com/corral-labs/corral/api/rewards"
	"github.com/corral-labs/corral/api/stakes"
	"github.com/corral-labs/corral/api/subscriptions"
	"github.com/corral-labs/corral/api/token"
	"github.com/corral-labs/corral/log"
	"github.com/corral-labs/corral/logdb"
	"github.com/corral-labs/corral/runtime"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	Network        string
	AllowedOrigins string
	// maximum page size of event queries
	LogsLimit uint64
	// zero disables the request timeout
	Timeout         time.Duration
	EnableDevAPI    bool
	EnableReqLogger *atomic.Bool
	SlowQueries     time.Duration
	EnableMetrics   bool
	PprofOn         bool
}

// New return api router, along with a func closing the subscriptions of hijacked connections.
func New(rt *runtime.Runtime, logDB *logdb.LogDB, opts Options) (http.Handler, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	node.New(rt, opts.Network, opts.EnableDevAPI).
		Mount(router, "/node")
	blocks.New(rt, opts.EnableDevAPI).
		Mount(router, "/blocks")
	stakes.New(rt).
		Mount(router, "/stakes")
	rewards.New(rt).
		Mount(router, "/rewards")
	params.New(rt).
		Mount(router, "/params")
	collection.New(rt, opts.EnableDevAPI).
		Mount(router, "/collection")
	token.New(rt, opts.EnableDevAPI).
		Mount(router, "/token")
	events.New(logDB, opts.LogsLimit).
		Mount(router, "/events")
	receipts.New(logDB).
		Mount(router, "/receipts")
	subs := subscriptions.New(rt, logDB, origins)
	subs.Mount(router, "/subscriptions")

	if opts.PprofOn {
		router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		router.HandleFunc("/debug/pprof/profile", pprof.Profile)
		router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		router.HandleFunc("/debug/pprof/trace", pprof.Trace)
		router.PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index)
	}

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}
	if opts.EnableReqLogger != nil {
		router.Use(RequestLoggerMiddleware(logger, opts.EnableReqLogger, opts.SlowQueries))
	}

	var handler http.Handler = router
	if opts.Timeout > 0 {
		handler = handleAPITimeout(handler, opts.Timeout)
	}
	handler = handlers.CompressHandler(handler)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)
	return handler, subs.Close
}

// handleAPITimeout bounds the handling time of every request except
// subscriptions, whose connections are long lived.
func handleAPITimeout(h http.Handler, timeout time.Duration) http.Handler {
	timed := http.TimeoutHandler(h, timeout, "request timeout")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/subscriptions") {
			h.ServeHTTP(w, r)
			return
		}
		timed.ServeHTTP(w, r)
	})
}
