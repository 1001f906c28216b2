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
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/tomdalling/value-type/pkg/declaration"
	"github.com/tomdalling/value-type/pkg/serializer"
)

// outputFlag and the other shared flags are built per command so repeated
// runs in one process never share parsed state.
func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("Output format (supported values: %v)", serializer.SupportedFormats()),
		Sources: cli.EnvVars("VALUETYPE_FORMAT"),
	}
}

func recipesFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "recipes",
		Aliases:  []string{"r"},
		Required: true,
		Usage: `Path/URI to a RecipeSet file.
	Supports: file paths and HTTP/HTTPS URLs.`,
	}
}

// parseOutputFormat reads and validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", f)
	}
	return f, nil
}

// loadRegistry loads the RecipeSet named by --recipes.
func loadRegistry(ctx context.Context, cmd *cli.Command) (*declaration.Registry, error) {
	path := cmd.String("recipes")
	slog.Info("loading recipes", "uri", path)

	reg, err := declaration.LoadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes from %q: %w", path, err)
	}
	return reg, nil
}

// write serializes v to --output in the given format.
func write(ctx context.Context, cmd *cli.Command, format serializer.Format, v any) error {
	ser := serializer.NewFileWriterOrStdout(format, cmd.String("output"))
	defer func() {
		if err := ser.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()

	return ser.Serialize(ctx, v)
}
