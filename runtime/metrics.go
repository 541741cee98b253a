// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import "github.com/corral-labs/corral/metrics"

var (
	metricExecutionDuration = metrics.LazyLoadHistogramVec("runtime_execution_duration_ms", []string{"method"}, metrics.BucketExecution)
	metricExecutionCount    = metrics.LazyLoadCounterVec("runtime_execution_count", []string{"method", "status"})
)

func observeExecution(method, status string, elapsedMs int64) {
	metricExecutionDuration().ObserveWithLabels(elapsedMs, map[string]string{"method": method})
	metricExecutionCount().AddWithLabel(1, map[string]string{"method": method, "status": status})
}
