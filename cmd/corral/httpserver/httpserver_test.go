// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
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
	"github.com/corral-labs/corral/metrics"
	"github.com/corral-labs/corral/test/testchain"
)

func TestAPIServer(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	url, stop, err := StartAPIServer("127.0.0.1:0", handler)
	require.NoError(t, err)
	defer stop()
	assert.True(t, strings.HasPrefix(url, "http://127.0.0.1:"), url)

	res, err := http.Post(url+"stakes", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	rec := httptest.NewRecorder()
	requestBodyLimit(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/stakes", strings.NewReader(strings.Repeat("x", maxBodySize+1))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	_, _, err = StartAPIServer("256.0.0.1:1", handler)
	assert.Error(t, err)
}

func TestMetricsServer(t *testing.T) {
	metrics.InitializePrometheusMetrics()
	metrics.Counter("httpserver_test_count").Add(1)

	url, stop, err := StartMetricsServer("127.0.0.1:0")
	require.NoError(t, err)
	defer stop()

	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), "corral_metrics_httpserver_test_count 1")
}

func TestAdminServer(t *testing.T) {
	tchain, err := testchain.NewDefault()
	require.NoError(t, err)
	t.Cleanup(tchain.Close)

	var logLevel slog.LevelVar
	var apiLogs atomic.Bool
	url, stop, err := StartAdminServer("127.0.0.1:0", &logLevel, health.New(tchain.Runtime(), 0), &apiLogs)
	require.NoError(t, err)
	defer stop()

	res, err := http.Get(url + "/health")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, err = http.Post(url+"/apilogs", "application/json", strings.NewReader(`{"enabled":true}`))
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, apiLogs.Load())
}
