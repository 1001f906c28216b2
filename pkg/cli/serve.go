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

package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/tomdalling/value-type/pkg/api"
	"github.com/tomdalling/value-type/pkg/server"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "serve",
		EnableShellCompletion: true,
		Usage:                 "Serve a RecipeSet over HTTP",
		Description: `Load a RecipeSet and expose it over HTTP: list recipes, export their
JSON Schema and construct instances from JSON or YAML request bodies.

# Endpoints

  GET  /v1/recipes
  GET  /v1/schema?recipe=NAME
  POST /v1/instances?recipe=NAME
  GET  /health, /ready, /metrics

# Examples

  valuetype serve -r pets.yaml --port 8080
  curl -X POST "localhost:8080/v1/instances?recipe=Cat" -d '{"name": "Tom"}'`,
		Flags: []cli.Flag{
			recipesFlag(),
			&cli.StringFlag{
				Name:  "address",
				Usage: "Address to listen on (default: all interfaces)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   8080,
				Usage:   "Port to listen on",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.FloatFlag{
				Name:  "rate-limit",
				Value: 100,
				Usage: "Requests per second allowed on /v1 routes",
			},
			&cli.IntFlag{
				Name:  "rate-burst",
				Value: 200,
				Usage: "Burst size for the rate limiter",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			reg, err := loadRegistry(ctx, cmd)
			if err != nil {
				return err
			}

			slog.Info("starting server", "version", version, "commit", commit, "date", date)

			return api.Serve(ctx, reg,
				server.WithVersion(version),
				server.WithAddress(cmd.String("address"), cmd.Int("port")),
				server.WithRateLimit(rate.Limit(cmd.Float("rate-limit")), cmd.Int("rate-burst")),
			)
		},
	}
}
