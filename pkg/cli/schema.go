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

	"github.com/invopop/jsonschema"
	"github.com/urfave/cli/v3"

	"github.com/tomdalling/value-type/pkg/declaration"
	cerrors "github.com/tomdalling/value-type/pkg/errors"
	"github.com/tomdalling/value-type/pkg/schema"
	"github.com/tomdalling/value-type/pkg/serializer"
)

// Schemas returns the JSON Schema of the named recipe, or, when name is
// empty, a document holding every recipe of reg under $defs.
func Schemas(reg *declaration.Registry, name string) (*jsonschema.Schema, error) {
	if name != "" {
		r, ok := reg.Lookup(name)
		if !ok {
			return nil, cerrors.NewWithContext(cerrors.ErrCodeInvalidRequest,
				fmt.Sprintf("unknown recipe %q", name),
				map[string]any{"recipe": name, "available": reg.Names()})
		}
		return schema.For(r), nil
	}

	doc := &jsonschema.Schema{
		Version:     jsonschema.Version,
		Definitions: jsonschema.Definitions{},
	}
	for _, r := range reg.Recipes() {
		s := schema.For(r)
		s.Version = ""
		doc.Definitions[r.Name()] = s
	}
	return doc, nil
}

func schemaCmd() *cli.Command {
	return &cli.Command{
		Name:                  "schema",
		EnableShellCompletion: true,
		Usage:                 "Generate JSON Schema for declared recipes",
		Description: `Generate a JSON Schema document describing the input accepted by a
recipe. Required properties are the attributes without a default, and
additional properties are rejected. Output is always JSON.

# Examples

Schema for a single recipe:
  valuetype schema -r pets.yaml --name Cat

Every recipe under $defs:
  valuetype schema -r pets.yaml -o schema.json`,
		Flags: []cli.Flag{
			recipesFlag(),
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Recipe to describe (default: all recipes)",
			},
			outputFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			reg, err := loadRegistry(ctx, cmd)
			if err != nil {
				return err
			}

			doc, err := Schemas(reg, cmd.String("name"))
			if err != nil {
				return err
			}

			if err := write(ctx, cmd, serializer.FormatJSON, doc); err != nil {
				return fmt.Errorf("failed to serialize schema: %w", err)
			}

			slog.Info("schema generated", "recipe", cmd.String("name"), "recipes", len(reg.Names()))
			return nil
		},
	}
}
