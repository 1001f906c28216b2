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

package declaration

import (
	"gopkg.in/yaml.v3"

	"github.com/tomdalling/value-type/pkg/header"
)

// RecipeSet is a document declaring recipes.
type RecipeSet struct {
	header.Header `json:",inline" yaml:",inline"`

	Recipes []RecipeSpec `json:"recipes" yaml:"recipes"`
}

// RecipeSpec declares one recipe.
type RecipeSpec struct {
	// Name is the type name of the recipe.
	Name string `json:"name" yaml:"name"`

	// Extends names the parent recipe in the same set, if any.
	Extends string `json:"extends,omitempty" yaml:"extends,omitempty"`

	// Attributes are declared in order after any inherited ones.
	Attributes []AttributeSpec `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// AttributeSpec declares one attribute. Type, Default and Coerce are kept as
// YAML nodes so that an explicit `default: null` can be told apart from no
// default at all.
type AttributeSpec struct {
	Name             string    `yaml:"name"`
	Define           bool      `yaml:"define,omitempty"` // allow names that are not identifiers
	Type             yaml.Node `yaml:"type,omitempty"`
	Default          yaml.Node `yaml:"default,omitempty"`
	DefaultGenerator string    `yaml:"default_generator,omitempty"`
	Coerce           yaml.Node `yaml:"coerce,omitempty"`
}

// HasDefault reports whether a literal default was written, including null.
func (a *AttributeSpec) HasDefault() bool { return a.Default.Kind != 0 }

// InstanceSet is a document listing instance values.
type InstanceSet struct {
	header.Header `json:",inline" yaml:",inline"`

	Instances []InstanceSpec `json:"instances" yaml:"instances"`
}

// InstanceSpec is the input for one instance.
type InstanceSpec struct {
	Recipe string         `json:"recipe" yaml:"recipe"`
	Values map[string]any `json:"values,omitempty" yaml:"values,omitempty"`
}
