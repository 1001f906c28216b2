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

	"github.com/tomdalling/value-type/pkg/attribute"
	"github.com/tomdalling/value-type/pkg/declaration"
	"github.com/tomdalling/value-type/pkg/header"
	"github.com/tomdalling/value-type/pkg/matcher"
	"github.com/tomdalling/value-type/pkg/recipe"
	"github.com/tomdalling/value-type/pkg/value"
)

// Description lists the recipes of a RecipeSet.
type Description struct {
	header.Header `json:",inline" yaml:",inline"`

	Recipes []RecipeDescription `json:"recipes" yaml:"recipes"`
}

// RecipeDescription describes one recipe.
type RecipeDescription struct {
	Name       string                 `json:"name" yaml:"name"`
	Extends    string                 `json:"extends,omitempty" yaml:"extends,omitempty"`
	Attributes []AttributeDescription `json:"attributes" yaml:"attributes"`
}

// AttributeDescription describes one attribute.
type AttributeDescription struct {
	Name     string `json:"name" yaml:"name"`
	Matcher  string `json:"matcher" yaml:"matcher"`
	Default  string `json:"default,omitempty" yaml:"default,omitempty"`
	Coercion string `json:"coercion,omitempty" yaml:"coercion,omitempty"`
}

// Table implements serializer.Tabular.
func (d *Description) Table() ([]string, [][]string) {
	var rows [][]string
	for _, r := range d.Recipes {
		for _, a := range r.Attributes {
			rows = append(rows, []string{r.Name, a.Name, a.Matcher, dash(a.Default), dash(a.Coercion)})
		}
		if len(r.Attributes) == 0 {
			rows = append(rows, []string{r.Name, "-", "-", "-", "-"})
		}
	}
	return []string{"RECIPE", "ATTRIBUTE", "MATCHER", "DEFAULT", "COERCION"}, rows
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Describe summarizes every recipe in reg.
func Describe(reg *declaration.Registry) *Description {
	d := &Description{}
	d.Init(header.KindDescription, version)

	for _, r := range reg.Recipes() {
		d.Recipes = append(d.Recipes, describeRecipe(r))
	}
	return d
}

func describeRecipe(r *recipe.Recipe) RecipeDescription {
	rd := RecipeDescription{
		Name:       r.Name(),
		Attributes: make([]AttributeDescription, 0, r.Len()),
	}
	if p := r.Parent(); p != nil {
		rd.Extends = p.Name()
	}

	for _, a := range r.Attributes() {
		ad := AttributeDescription{
			Name:    a.Name(),
			Matcher: matcher.Describe(a.Matcher()),
		}
		switch a.DefaultKind() {
		case attribute.LiteralDefault:
			lit, _ := a.Literal()
			ad.Default = value.Inspect(lit)
		case attribute.GeneratorDefault:
			ad.Default = "generated"
		case attribute.NoDefault:
		}
		switch a.CoercionKind() {
		case attribute.NamedHook:
			ad.Coercion = "hook " + a.Hook()
		case attribute.CallableCoercion:
			ad.Coercion = "function"
		case attribute.NoCoercion:
		}
		rd.Attributes = append(rd.Attributes, ad)
	}
	return rd
}

func describeCmd() *cli.Command {
	return &cli.Command{
		Name:                  "describe",
		EnableShellCompletion: true,
		Usage:                 "Describe the recipes declared in a RecipeSet file",
		Description: `Load a RecipeSet file and list each recipe with its attributes in order.

Inherited attributes are listed on the recipe that extends them, in their
inherited position.

# Examples

Show recipes as a table:
  valuetype describe -r pets.yaml -t table

Write the description to a file:
  valuetype describe -r pets.yaml -o pets-description.json -t json`,
		Flags: []cli.Flag{
			recipesFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			reg, err := loadRegistry(ctx, cmd)
			if err != nil {
				return err
			}

			d := Describe(reg)
			if err := write(ctx, cmd, outFormat, d); err != nil {
				return fmt.Errorf("failed to serialize description: %w", err)
			}

			slog.Info("recipes described", "recipes", len(d.Recipes))
			return nil
		},
	}
}
