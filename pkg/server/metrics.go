// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Routes label the series instead of raw paths so cardinality stays bounded
// by the registered handlers.
var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "valuetype_http_requests_total",
			Help: "HTTP requests by route and status.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "valuetype_http_request_errors_total",
			Help: "Error replies by route and error code, e.g. MISSING_ATTRIBUTE.",
		},
		[]string{"route", "code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "valuetype_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"route"},
	)

	httpResponseBytes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "valuetype_http_response_bytes_total",
			Help: "Response body bytes by route.",
		},
		[]string{"route"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "valuetype_http_requests_in_flight",
			Help: "Requests currently being handled.",
		},
	)

	rateLimitRejects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "valuetype_rate_limit_rejects_total",
			Help: "Requests rejected by the rate limiter, by route.",
		},
		[]string{"route"},
	)

	panicRecoveries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "valuetype_panic_recoveries_total",
			Help: "Handler panics turned into 500 replies.",
		},
	)
)

func observeRequest(method, route string, ex *exchange, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(ex.status)).Inc()
	httpRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
	httpResponseBytes.WithLabelValues(route).Add(float64(ex.bytes))
	if ex.code != "" {
		httpRequestErrors.WithLabelValues(route, ex.code).Inc()
	}
}
