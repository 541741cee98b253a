// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corral-labs/corral/health"
	"github.com/corral-labs/corral/log"
	"github.com/corral-labs/corral/test/testchain"
)

func TestAdminServer(t *testing.T) {
	tchain, err := testchain.NewDefault()
	require.NoError(t, err)
	t.Cleanup(tchain.Close)

	var logLevel slog.LevelVar
	logLevel.Set(log.LevelWarn)
	var apiLogs atomic.Bool

	ts := httptest.NewServer(NewHTTPHandler(&logLevel, health.New(tchain.Runtime(), 0), &apiLogs))
	t.Cleanup(ts.Close)

	res, err := http.Get(ts.URL + "/admin/health")
	require.NoError(t, err)
	var status health.Status
	require.NoError(t, json.NewDecoder(res.Body).Decode(&status))
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, status.Healthy)
	assert.True(t, status.OnDemand)

	res, err = http.Post(ts.URL+"/admin/loglevel", "application/json", strings.NewReader(`{"level":"debug"}`))
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, log.LevelDebug, logLevel.Level())

	res, err = http.Post(ts.URL+"/admin/apilogs", "application/json", strings.NewReader(`{"enabled":true}`))
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, apiLogs.Load())

	res, err = http.Get(ts.URL + "/admin/unknown")
	require.NoError(t, err)
	io.Copy(io.Discard, res.Body)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
