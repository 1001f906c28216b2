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
	"strconv"
	"time"

	"github.com/urfave/cli/v3"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/sync/errgroup"

	"github.com/tomdalling/value-type/pkg/api"
	"github.com/tomdalling/value-type/pkg/declaration"
	"github.com/tomdalling/value-type/pkg/defaults"
	"github.com/tomdalling/value-type/pkg/header"
)

// CheckStatus is the overall outcome of a check run.
type CheckStatus string

const (
	CheckStatusPass CheckStatus = "pass"
	CheckStatusFail CheckStatus = "fail"
)

// CheckResult reports every instance constructed from a set of data files.
type CheckResult struct {
	header.Header `json:",inline" yaml:",inline"`

	RecipeSource string       `json:"recipeSource" yaml:"recipeSource"`
	Files        []FileResult `json:"files" yaml:"files"`
	Summary      CheckSummary `json:"summary" yaml:"summary"`
}

// FileResult holds the outcome for one data file. Error is set when the file
// itself could not be loaded.
type FileResult struct {
	Source    string           `json:"source" yaml:"source"`
	Error     string           `json:"error,omitempty" yaml:"error,omitempty"`
	Instances []InstanceResult `json:"instances,omitempty" yaml:"instances,omitempty"`
}

// InstanceResult holds either the final values of an instance or the error
// that prevented its construction.
type InstanceResult struct {
	Index  int                                 `json:"index" yaml:"index"`
	Recipe string                              `json:"recipe" yaml:"recipe"`
	Valid  bool                                `json:"valid" yaml:"valid"`
	Values *orderedmap.OrderedMap[string, any] `json:"values,omitempty" yaml:"values,omitempty"`
	Error  *api.ErrorDetail                    `json:"error,omitempty" yaml:"error,omitempty"`

	rendered string
}

// CheckSummary counts the results.
type CheckSummary struct {
	Status     CheckStatus   `json:"status" yaml:"status"`
	Files      int           `json:"files" yaml:"files"`
	FileErrors int           `json:"fileErrors" yaml:"fileErrors"`
	Instances  int           `json:"instances" yaml:"instances"`
	Valid      int           `json:"valid" yaml:"valid"`
	Invalid    int           `json:"invalid" yaml:"invalid"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
}

// Table implements serializer.Tabular.
func (r *CheckResult) Table() ([]string, [][]string) {
	var rows [][]string
	for _, f := range r.Files {
		if f.Error != "" {
			rows = append(rows, []string{f.Source, "-", "-", "error", f.Error})
			continue
		}
		for _, inst := range f.Instances {
			status, detail := "valid", inst.rendered
			if !inst.Valid {
				status, detail = "invalid", inst.Error.Message
			}
			rows = append(rows, []string{f.Source, strconv.Itoa(inst.Index), inst.Recipe, status, detail})
		}
	}
	return []string{"FILE", "#", "RECIPE", "STATUS", "DETAIL"}, rows
}

// Check constructs every instance listed in the data files against reg.
// Files are loaded and checked concurrently; results keep the order of paths.
// Only context cancellation aborts the run, other failures are reported.
func Check(ctx context.Context, reg *declaration.Registry, paths []string) (*CheckResult, error) {
	start := time.Now()

	files := make([]FileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(defaults.CheckConcurrency)

	for i, path := range paths {
		g.Go(func() error {
			files[i] = checkFile(gctx, reg, path)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("check interrupted: %w", err)
	}

	res := &CheckResult{Files: files}
	res.Init(header.KindCheckResult, version)
	res.Summary = summarize(files)
	res.Summary.Duration = time.Since(start)
	return res, nil
}

func checkFile(ctx context.Context, reg *declaration.Registry, path string) FileResult {
	fr := FileResult{Source: path}

	set, err := declaration.LoadInstancesFile(ctx, path)
	if err != nil {
		slog.Warn("failed to load data file", "uri", path, "error", err)
		fr.Error = err.Error()
		return fr
	}

	fr.Instances = make([]InstanceResult, 0, len(set.Instances))
	for i, spec := range set.Instances {
		if ctx.Err() != nil {
			return fr
		}

		ir := InstanceResult{Index: i, Recipe: spec.Recipe}
		inst, err := reg.Construct(spec)
		if err != nil {
			ir.Error = api.Detail(err)
			slog.Debug("instance rejected", "uri", path, "index", i, "error", err)
		} else {
			ir.Valid = true
			ir.Values = inst.Ordered()
			ir.rendered = inst.String()
		}
		fr.Instances = append(fr.Instances, ir)
	}
	return fr
}

func summarize(files []FileResult) CheckSummary {
	s := CheckSummary{Files: len(files), Status: CheckStatusPass}
	for _, f := range files {
		if f.Error != "" {
			s.FileErrors++
		}
		for _, inst := range f.Instances {
			s.Instances++
			if inst.Valid {
				s.Valid++
			} else {
				s.Invalid++
			}
		}
	}
	if s.FileErrors > 0 || s.Invalid > 0 {
		s.Status = CheckStatusFail
	}
	return s
}

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:                  "check",
		EnableShellCompletion: true,
		Usage:                 "Construct the instances in InstanceSet files and report the results",
		ArgsUsage:             "DATA_FILE...",
		Description: `Load a RecipeSet and construct every instance listed in the given
InstanceSet files. Each instance goes through the full constructor: defaults,
coercion and validation. Valid instances are reported with their final values,
invalid ones with the error that stopped them.

# Examples

Check two data files:
  valuetype check -r pets.yaml cats.yaml dogs.yaml

Fail the command if any instance is invalid (useful for CI/CD):
  valuetype check -r pets.yaml cats.yaml --fail-on-error`,
		Flags: []cli.Flag{
			recipesFlag(),
			&cli.BoolFlag{
				Name:  "fail-on-error",
				Usage: "Exit with non-zero status if any instance or file is invalid",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return fmt.Errorf("at least one data file is required")
			}

			reg, err := loadRegistry(ctx, cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CheckTimeout)
			defer cancel()

			slog.Info("checking instances", "recipes", cmd.String("recipes"), "files", len(paths))

			result, err := Check(ctx, reg, paths)
			if err != nil {
				return err
			}
			result.RecipeSource = cmd.String("recipes")

			if err := write(ctx, cmd, outFormat, result); err != nil {
				return fmt.Errorf("failed to serialize check result: %w", err)
			}

			slog.Info("check completed",
				"status", result.Summary.Status,
				"valid", result.Summary.Valid,
				"invalid", result.Summary.Invalid,
				"fileErrors", result.Summary.FileErrors,
				"duration", result.Summary.Duration)

			if cmd.Bool("fail-on-error") && result.Summary.Status == CheckStatusFail {
				return fmt.Errorf("check failed: %d invalid instance(s), %d unreadable file(s)",
					result.Summary.Invalid, result.Summary.FileErrors)
			}
			return nil
		},
	}
}
