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

package recipe

import (
	"log/slog"
	"regexp"

	"github.com/google/uuid"

	"github.com/tomdalling/value-type/pkg/attribute"
	cerrors "github.com/tomdalling/value-type/pkg/errors"
	"github.com/tomdalling/value-type/pkg/matcher"
)

// identifierPattern accepts plain attribute names, with an optional trailing ? or !.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*[?!]?$`)

// Builder accumulates attribute declarations into a Recipe.
//
// Declaration problems are recorded on the builder and reported by Build, so
// a recipe can be declared as one fluent chain. Only the first problem is kept.
type Builder struct {
	name       string
	parent     *Recipe
	decls      []*attribute.Declaration
	declared   map[string]bool
	hooks      map[string]attribute.CoerceFunc
	compatible CompatibilityFunc
	err        error
}

// NewBuilder starts a recipe for the named type.
func NewBuilder(name string) *Builder {
	b := &Builder{
		name:     name,
		declared: make(map[string]bool),
		hooks:    make(map[string]attribute.CoerceFunc),
	}
	if name == "" {
		b.fail(cerrors.Configuration(name, "", "recipe name cannot be empty"))
	}
	return b
}

// Define builds a recipe by handing a fresh builder to fn.
func Define(name string, fn func(b *Builder)) (*Recipe, error) {
	b := NewBuilder(name)
	if fn != nil {
		fn(b)
	}
	return b.Build()
}

// MustDefine is like Define but panics on error. It is meant for
// package-level recipe variables.
func MustDefine(name string, fn func(b *Builder)) *Recipe {
	r, err := Define(name, fn)
	if err != nil {
		panic(err)
	}
	return r
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Err returns the first declaration error recorded so far.
func (b *Builder) Err() error { return b.err }

// Extends makes the recipe a subtype of parent: it starts with the parent's
// attributes, hooks and compatibility rule. Redeclaring an inherited
// attribute replaces it in place.
func (b *Builder) Extends(parent *Recipe) *Builder {
	if parent == nil {
		b.fail(cerrors.Configuration(b.name, "", "parent recipe cannot be nil"))
		return b
	}
	b.parent = parent
	return b
}

// Attribute declares an attribute. The name must be an identifier, optionally
// ending in ? or !; use Define for anything else. A nil matcher means Anything.
func (b *Builder) Attribute(name string, m matcher.Matcher, opts ...attribute.Option) *Builder {
	if !identifierPattern.MatchString(name) {
		b.fail(cerrors.Configuration(b.name, name, "is not a valid attribute name, declare it with Define"))
		return b
	}
	return b.Define(name, m, opts...)
}

// Define declares an attribute under any non-empty name.
func (b *Builder) Define(name string, m matcher.Matcher, opts ...attribute.Option) *Builder {
	if b.err != nil {
		return b
	}
	if b.declared[name] {
		b.fail(cerrors.Configuration(b.name, name, "is declared more than once"))
		return b
	}

	d, err := attribute.NewDeclaration(b.name, name, m, opts...)
	if err != nil {
		b.fail(err)
		return b
	}
	b.declared[name] = true
	b.decls = append(b.decls, d)
	return b
}

// CoercionHook registers a named coercion for CoerceByConvention and
// CoerceWith. Hooks may be registered before or after the attributes using them.
func (b *Builder) CoercionHook(name string, fn attribute.CoerceFunc) *Builder {
	if fn == nil {
		b.fail(cerrors.Configuration(b.name, "", "coercion hook "+name+" cannot be nil"))
		return b
	}
	b.hooks[name] = fn
	return b
}

// Compatible replaces the rule deciding which recipes compare loosely equal.
func (b *Builder) Compatible(fn CompatibilityFunc) *Builder {
	b.compatible = fn
	return b
}

// Anything is matcher.Anything.
func (b *Builder) Anything() matcher.Matcher { return matcher.Anything() }

// Bool is matcher.Bool.
func (b *Builder) Bool() matcher.Matcher { return matcher.Bool() }

// Either is matcher.Either.
func (b *Builder) Either(ms ...matcher.Matcher) matcher.Matcher { return matcher.Either(ms...) }

// ArrayOf is matcher.ArrayOf.
func (b *Builder) ArrayOf(m matcher.Matcher) matcher.Matcher { return matcher.ArrayOf(m) }

// HashOf is matcher.HashOf. A wrong number of pairs is recorded as a
// configuration error and fails Build.
func (b *Builder) HashOf(pairs ...matcher.Pair) matcher.Matcher {
	m, err := matcher.HashOf(pairs...)
	if err != nil {
		b.fail(cerrors.Wrap(cerrors.ErrCodeConfiguration, "recipe "+b.name+": invalid HashOf", err))
		return matcher.Nothing()
	}
	return m
}

func (b *Builder) lookupHook(name string) (attribute.CoerceFunc, bool) {
	if fn, ok := b.hooks[name]; ok {
		return fn, true
	}
	for p := b.parent; p != nil; p = p.parent {
		if fn, ok := p.hooks[name]; ok {
			return fn, true
		}
	}
	return nil, false
}

// Build freezes the declarations into a Recipe.
func (b *Builder) Build() (*Recipe, error) {
	r, err := b.build()
	if err != nil {
		recipeBuilds.WithLabelValues(string(cerrors.CodeOf(err))).Inc()
		slog.Debug("recipe build failed", "recipe", b.name, "error", err)
		return nil, err
	}
	recipeBuilds.WithLabelValues(resultSuccess).Inc()
	recipeAttributes.Observe(float64(r.Len()))
	return r, nil
}

func (b *Builder) build() (*Recipe, error) {
	if b.err != nil {
		return nil, b.err
	}

	r := &Recipe{
		name:       b.name,
		id:         uuid.New(),
		index:      make(map[string]int),
		parent:     b.parent,
		compatible: b.compatible,
		hooks:      make(map[string]attribute.CoerceFunc, len(b.hooks)),
	}
	for k, fn := range b.hooks {
		r.hooks[k] = fn
	}

	if b.parent != nil {
		for _, a := range b.parent.attrs {
			r.index[a.Name()] = len(r.attrs)
			r.attrs = append(r.attrs, a.Clone())
		}
		if r.compatible == nil {
			r.compatible = b.parent.compatible
		}
	}
	if r.compatible == nil {
		r.compatible = Ancestry
	}

	for _, d := range b.decls {
		a, err := d.Build(b.lookupHook)
		if err != nil {
			return nil, err
		}
		if i, inherited := r.index[a.Name()]; inherited {
			r.attrs[i] = a
			continue
		}
		r.index[a.Name()] = len(r.attrs)
		r.attrs = append(r.attrs, a)
	}

	return r, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Recipe {
	r, err := b.Build()
	if err != nil {
		panic(err)
	}
	return r
}
