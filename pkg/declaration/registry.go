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
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	cerrors "github.com/tomdalling/value-type/pkg/errors"
	"github.com/tomdalling/value-type/pkg/header"
	"github.com/tomdalling/value-type/pkg/instance"
	"github.com/tomdalling/value-type/pkg/recipe"
	"github.com/tomdalling/value-type/pkg/serializer"
)

// Registry holds the recipes built from a RecipeSet, in declaration order.
// It is immutable and safe for concurrent use.
type Registry struct {
	names   []string
	recipes map[string]*recipe.Recipe
}

// Lookup returns the named recipe.
func (r *Registry) Lookup(name string) (*recipe.Recipe, bool) {
	rec, ok := r.recipes[name]
	return rec, ok
}

// Names returns the recipe names in declaration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Recipes returns the recipes in declaration order.
func (r *Registry) Recipes() []*recipe.Recipe {
	out := make([]*recipe.Recipe, len(r.names))
	for i, name := range r.names {
		out[i] = r.recipes[name]
	}
	return out
}

// Construct builds the instance described by spec.
func (r *Registry) Construct(spec InstanceSpec) (*instance.Instance, error) {
	rec, ok := r.Lookup(spec.Recipe)
	if !ok {
		return nil, cerrors.NewWithContext(cerrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown recipe %q", spec.Recipe),
			map[string]any{cerrors.ContextType: spec.Recipe})
	}
	return instance.Construct(rec, spec.Values)
}

// Load reads a RecipeSet document from r and builds its recipes.
func Load(r io.Reader, opts ...Option) (*Registry, error) {
	reader, err := serializer.NewReader(serializer.FormatYAML, r)
	if err != nil {
		return nil, err
	}
	var set RecipeSet
	if err := reader.Strict().Deserialize(&set); err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidRequest, "invalid recipe set", err)
	}
	return Build(&set, opts...)
}

// LoadFile reads a RecipeSet from a local path or URL.
func LoadFile(ctx context.Context, path string, opts ...Option) (*Registry, error) {
	set, err := serializer.FromFile[RecipeSet](ctx, path)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidRequest, "invalid recipe set", err)
	}
	return Build(set, opts...)
}

// Build turns a decoded RecipeSet into a Registry. Recipes may extend or
// refer to recipes declared later in the set. Attribute types may refer to
// any recipe of the set, the declaring one included; a cycle of extends is a
// configuration error.
func Build(set *RecipeSet, opts ...Option) (*Registry, error) {
	if err := set.Check(header.KindRecipeSet); err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidRequest, "invalid recipe set", err)
	}

	b := &setBuilder{
		specs:    make(map[string]*RecipeSpec, len(set.Recipes)),
		built:    make(map[string]*recipe.Recipe, len(set.Recipes)),
		building: make(map[string]bool),
		vocab:    newVocabulary(opts...),
	}
	b.vocab.known = func(name string) bool {
		_, ok := b.specs[name]
		return ok
	}
	b.vocab.lookup = func(name string) *recipe.Recipe { return b.built[name] }

	reg := &Registry{recipes: b.built}
	for i := range set.Recipes {
		spec := &set.Recipes[i]
		if spec.Name == "" {
			return nil, cerrors.Configuration("", "", fmt.Sprintf("recipe #%d has no name", i+1))
		}
		if _, dup := b.specs[spec.Name]; dup {
			return nil, cerrors.Configuration(spec.Name, "", "is declared more than once")
		}
		b.specs[spec.Name] = spec
		reg.names = append(reg.names, spec.Name)
	}

	for _, name := range reg.names {
		if _, err := b.resolve(name); err != nil {
			return nil, err
		}
	}

	slog.Debug("recipe set loaded", "recipes", len(reg.names))
	return reg, nil
}

type setBuilder struct {
	specs    map[string]*RecipeSpec
	built    map[string]*recipe.Recipe
	building map[string]bool
	vocab    *vocabulary
}

func (b *setBuilder) resolve(name string) (*recipe.Recipe, error) {
	if r, ok := b.built[name]; ok {
		return r, nil
	}
	spec, ok := b.specs[name]
	if !ok {
		return nil, fmt.Errorf("unknown recipe %q", name)
	}
	if b.building[name] {
		return nil, cerrors.Configuration(name, "", "refers to itself through "+b.cycle())
	}

	b.building[name] = true
	defer delete(b.building, name)

	r, err := b.build(spec)
	if err != nil {
		return nil, err
	}
	b.built[name] = r
	return r, nil
}

func (b *setBuilder) cycle() string {
	names := make([]string, 0, len(b.building))
	for n := range b.building {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func (b *setBuilder) build(spec *RecipeSpec) (*recipe.Recipe, error) {
	rb := recipe.NewBuilder(spec.Name)

	if spec.Extends != "" {
		parent, err := b.resolve(spec.Extends)
		if err != nil {
			if cerrors.CodeOf(err) != "" {
				return nil, err
			}
			return nil, cerrors.Configuration(spec.Name, "", "extends "+err.Error())
		}
		rb.Extends(parent)
	}

	for name, fn := range b.vocab.hooks {
		rb.CoercionHook(name, fn)
	}

	for i := range spec.Attributes {
		attr := &spec.Attributes[i]
		if err := b.declare(rb, spec.Name, attr); err != nil {
			return nil, err
		}
	}

	return rb.Build()
}

func (b *setBuilder) declare(rb *recipe.Builder, owner string, attr *AttributeSpec) error {
	fail := func(err error) error {
		if cerrors.CodeOf(err) != "" {
			return err
		}
		return cerrors.Configuration(owner, attr.Name, err.Error())
	}

	m, err := b.vocab.matcher(rb, &attr.Type)
	if err != nil {
		return fail(err)
	}

	opts, err := b.vocab.coercion(&attr.Coerce)
	if err != nil {
		return fail(err)
	}

	if attr.HasDefault() {
		var v any
		if err := attr.Default.Decode(&v); err != nil {
			return fail(err)
		}
		opts = append(opts, recipe.Default(v))
	}
	if attr.DefaultGenerator != "" {
		gen, err := b.vocab.generator(attr.DefaultGenerator)
		if err != nil {
			return fail(err)
		}
		opts = append(opts, recipe.DefaultGenerator(gen))
	}

	if attr.Define {
		rb.Define(attr.Name, m, opts...)
	} else {
		rb.Attribute(attr.Name, m, opts...)
	}
	return nil
}
