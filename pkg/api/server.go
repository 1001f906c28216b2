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
	"context"
	"log/slog"

	"github.com/tomdalling/value-type/pkg/declaration"
	"github.com/tomdalling/value-type/pkg/server"
)

const name = "valuetype-api"

// Serve exposes reg over HTTP and blocks until ctx is canceled or the
// process receives SIGINT/SIGTERM.
func Serve(ctx context.Context, reg *declaration.Registry, opts ...server.Option) error {
	h := NewHandler(reg)

	opts = append([]server.Option{
		server.WithName(name),
		server.WithHandler(h.Routes()),
		server.WithReadinessCheck(h.Ready),
	}, opts...)

	s := server.New(opts...)
	slog.Info("serving recipes", "recipes", reg.Names())

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}
