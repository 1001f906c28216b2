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

package instance

import (
	"strings"

	"github.com/tomdalling/value-type/pkg/value"
)

// String renders the instance on one line: #<Cat name="Tom" trained?=false>.
func (i *Instance) String() string {
	var sb strings.Builder
	sb.WriteString("#<")
	sb.WriteString(i.recipe.Name())
	for idx, v := range i.values {
		sb.WriteString(" ")
		sb.WriteString(i.recipe.At(idx).Name())
		sb.WriteString("=")
		sb.WriteString(value.Inspect(v))
	}
	sb.WriteString(">")
	return sb.String()
}

// Inspect implements value.Inspecter so nested instances render inline.
func (i *Instance) Inspect() string { return i.String() }

// Pretty renders the instance with one attribute per indented line.
func (i *Instance) Pretty() string {
	if len(i.values) == 0 {
		return "#<" + i.recipe.Name() + ">"
	}

	var sb strings.Builder
	sb.WriteString("#<")
	sb.WriteString(i.recipe.Name())
	sb.WriteString("\n")
	for idx, v := range i.values {
		sb.WriteString("  ")
		sb.WriteString(i.recipe.At(idx).Name())
		sb.WriteString("=")
		sb.WriteString(value.Inspect(v))
		sb.WriteString("\n")
	}
	sb.WriteString(">")
	return sb.String()
}
