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

import "net/http"

// exchange records what a handler sent back so the pipeline can report it:
// the status, the body size and the error code passed to WriteError.
type exchange struct {
	http.ResponseWriter
	status  int
	bytes   int
	code    string
	started bool
}

// record wraps w, reusing an existing exchange so nested wrappers agree.
func record(w http.ResponseWriter) *exchange {
	if ex, ok := w.(*exchange); ok {
		return ex
	}
	return &exchange{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader only honours the first call.
func (ex *exchange) WriteHeader(status int) {
	if ex.started {
		return
	}
	ex.status = status
	ex.started = true
	ex.ResponseWriter.WriteHeader(status)
}

func (ex *exchange) Write(b []byte) (int, error) {
	if !ex.started {
		ex.WriteHeader(http.StatusOK)
	}
	n, err := ex.ResponseWriter.Write(b)
	ex.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (ex *exchange) Unwrap() http.ResponseWriter { return ex.ResponseWriter }
