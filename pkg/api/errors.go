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

package api

import (
	stderrors "errors"

	cerrors "github.com/tomdalling/value-type/pkg/errors"
)

// ErrCodeConstructionFailed is reported for errors raised by generators or
// coercions that carry no code of their own.
const ErrCodeConstructionFailed = "CONSTRUCTION_FAILED"

// ErrorDetail is the serializable form of a construction error.
type ErrorDetail struct {
	Code    string         `json:"code,omitempty" yaml:"code,omitempty"`
	Message string         `json:"message" yaml:"message"`
	Context map[string]any `json:"context,omitempty" yaml:"context,omitempty"`
}

// Detail converts err into an ErrorDetail, copying the structured context.
func Detail(err error) *ErrorDetail {
	d := &ErrorDetail{Message: err.Error()}

	var se *cerrors.StructuredError
	if !stderrors.As(err, &se) {
		return d
	}

	d.Code = string(se.Code)
	if len(se.Context) > 0 {
		d.Context = make(map[string]any, len(se.Context))
		for k, v := range se.Context {
			d.Context[k] = v
		}
	}
	return d
}
