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

package recipe

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const resultSuccess = "success"

var (
	// Recipe build metrics
	recipeBuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "valuetype_recipe_builds_total",
			Help: "Total number of recipe builds by result (success or error code)",
		},
		[]string{"result"},
	)
	recipeAttributes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "valuetype_recipe_attributes",
			Help:    "Number of attributes in successfully built recipes",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64},
		},
	)
)
