// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	assert.Nil(t, HTTPHandler())

	Counter("noop_count").Add(1)
	CounterVec("noop_count_vec", []string{"op"}).AddWithLabel(1, map[string]string{"whatever": "x"})
	Gauge("noop_gauge").Set(3)
	GaugeVec("noop_gauge_vec", []string{"op"}).SetWithLabel(1, nil)
	Histogram("noop_hist", nil).Observe(10)
	HistogramVec("noop_hist_vec", []string{"op"}, nil).ObserveWithLabels(1, nil)
}

func TestLazyLoad(t *testing.T) {
	calls := 0
	f := LazyLoad(func() int {
		calls++
		return 42
	})
	assert.Equal(t, 0, calls)
	assert.Equal(t, 42, f())
	assert.Equal(t, 42, f())
	assert.Equal(t, 1, calls)
}

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()
	InitializePrometheusMetrics()

	server := httptest.NewServer(HTTPHandler())
	t.Cleanup(server.Close)

	count := Counter("stake_count")
	count.Add(2)
	Counter("stake_count").Add(3)

	pm := metrics.(*prometheusMetrics)
	c, _ := pm.meters.Load("stake_count")
	assert.Equal(t, float64(5), testutil.ToFloat64(c.(*promCountMeter).counter))

	vec := CounterVec("call_count", []string{"method"})
	vec.AddWithLabel(1, map[string]string{"method": "stake"})
	vec.AddWithLabel(2, map[string]string{"method": "stake"})
	vec.AddWithLabel(1, map[string]string{"method": "claim"})

	gauge := Gauge("active_positions")
	gauge.Set(10)
	gauge.Add(-3)

	GaugeVec("pool", []string{"kind"}).SetWithLabel(7, map[string]string{"kind": "reward"})
	Histogram("exec_ms", BucketExecution).Observe(4)
	HistogramVec("http_ms", []string{"code"}, BucketHTTPReqs).ObserveWithLabels(12, map[string]string{"code": "200"})

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(body)

	for _, want := range []string{
		`corral_metrics_stake_count 5`,
		`corral_metrics_call_count{method="stake"} 3`,
		`corral_metrics_call_count{method="claim"} 1`,
		`corral_metrics_active_positions 7`,
		`corral_metrics_pool{kind="reward"} 7`,
		`corral_metrics_exec_ms_count 1`,
		`corral_metrics_http_ms_sum{code="200"} 12`,
	} {
		assert.True(t, strings.Contains(text, want), "missing %q", want)
	}
}
