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
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/tomdalling/value-type/pkg/attribute"
	"github.com/tomdalling/value-type/pkg/coercer"
	cerrors "github.com/tomdalling/value-type/pkg/errors"
	"github.com/tomdalling/value-type/pkg/instance"
	"github.com/tomdalling/value-type/pkg/matcher"
	"github.com/tomdalling/value-type/pkg/recipe"
)

// Option extends the vocabulary available to declarations.
type Option func(*vocabulary)

// WithType makes a named matcher available as `type: name`.
func WithType(name string, m matcher.Matcher) Option {
	return func(v *vocabulary) { v.types[name] = m }
}

// WithCoercer makes a named coercion available as `coerce: name`.
func WithCoercer(name string, fn attribute.CoerceFunc) Option {
	return func(v *vocabulary) { v.coercers[name] = fn }
}

// WithGenerator makes a named generator available as `default_generator: name`.
func WithGenerator(name string, fn attribute.Generator) Option {
	return func(v *vocabulary) { v.generators[name] = fn }
}

// WithHook registers a coercion hook on every recipe, for `coerce: true`
// (hook coerce_<attribute>) and `coerce: {hook: name}`.
func WithHook(name string, fn attribute.CoerceFunc) Option {
	return func(v *vocabulary) { v.hooks[name] = fn }
}

type vocabulary struct {
	types      map[string]matcher.Matcher
	coercers   map[string]attribute.CoerceFunc
	generators map[string]attribute.Generator
	hooks      map[string]attribute.CoerceFunc

	// known reports whether the set declares a recipe; lookup returns it
	// once built. References are resolved at match time so recipes may
	// refer to themselves.
	known  func(name string) bool
	lookup func(name string) *recipe.Recipe
}

func newVocabulary(opts ...Option) *vocabulary {
	v := &vocabulary{
		types: map[string]matcher.Matcher{
			"anything": matcher.Anything(),
			"bool":     matcher.Bool(),
			"string":   matcher.TypeOf[string](),
			"int":      matcher.TypeOf[int](),
			"float":    matcher.TypeOf[float64](),
			"time":     matcher.TypeOf[time.Time](),
			"nil":      matcher.Nil(),
		},
		coercers: map[string]attribute.CoerceFunc{
			"string": coercer.ToString,
			"int":    coercer.ToInt,
			"float":  coercer.ToFloat,
			"bool":   coercer.ToBool,
			"time":   coercer.ToTime,
		},
		generators: map[string]attribute.Generator{
			"now":  func() (any, error) { return time.Now().UTC(), nil },
			"uuid": func() (any, error) { return uuid.NewString(), nil },
		},
		hooks: map[string]attribute.CoerceFunc{},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// matcher translates a `type:` node. An absent node means Anything.
func (v *vocabulary) matcher(b *recipe.Builder, n *yaml.Node) (matcher.Matcher, error) {
	switch n.Kind {
	case 0:
		return matcher.Anything(), nil
	case yaml.ScalarNode:
		if m, ok := v.types[n.Value]; ok {
			return m, nil
		}
		if !v.known(n.Value) {
			return nil, fmt.Errorf("line %d: unknown type %q", n.Line, n.Value)
		}
		return instanceOf(v.ref(n.Value)), nil
	case yaml.MappingNode:
		key, val, err := singleEntry(n)
		if err != nil {
			return nil, err
		}
		switch key {
		case "either":
			if val.Kind != yaml.SequenceNode {
				return nil, fmt.Errorf("line %d: either expects a list of types", val.Line)
			}
			alts := make([]matcher.Matcher, 0, len(val.Content))
			for _, item := range val.Content {
				m, err := v.matcher(b, item)
				if err != nil {
					return nil, err
				}
				alts = append(alts, m)
			}
			return b.Either(alts...), nil
		case "array_of":
			m, err := v.matcher(b, val)
			if err != nil {
				return nil, err
			}
			return b.ArrayOf(m), nil
		case "hash_of":
			if val.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("line %d: hash_of expects a mapping of key type to value type", val.Line)
			}
			pairs := make([]matcher.Pair, 0, len(val.Content)/2)
			for i := 0; i+1 < len(val.Content); i += 2 {
				km, err := v.matcher(b, val.Content[i])
				if err != nil {
					return nil, err
				}
				vm, err := v.matcher(b, val.Content[i+1])
				if err != nil {
					return nil, err
				}
				pairs = append(pairs, matcher.Pair{Key: km, Value: vm})
			}
			// arity is checked by the builder so the error surfaces as a
			// configuration error from Build
			return b.HashOf(pairs...), nil
		case "exact":
			var want any
			if err := val.Decode(&want); err != nil {
				return nil, fmt.Errorf("line %d: %w", val.Line, err)
			}
			return matcher.Exact(want), nil
		default:
			return nil, fmt.Errorf("line %d: unknown type constructor %q", n.Line, key)
		}
	default:
		return nil, fmt.Errorf("line %d: type must be a name or a single-key mapping", n.Line)
	}
}

// coercion translates a `coerce:` node into builder options.
func (v *vocabulary) coercion(n *yaml.Node) ([]attribute.Option, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.ScalarNode:
		if n.Tag == "!!bool" {
			var on bool
			if err := n.Decode(&on); err != nil {
				return nil, err
			}
			if !on {
				return nil, nil
			}
			return []attribute.Option{attribute.CoerceByConvention()}, nil
		}
	case yaml.MappingNode:
		if key, val, err := singleEntry(n); err == nil && key == "hook" {
			return []attribute.Option{attribute.CoerceWith(val.Value)}, nil
		}
	}

	fn, err := v.coercer(n)
	if err != nil {
		return nil, err
	}
	return []attribute.Option{attribute.Coerce(fn)}, nil
}

func (v *vocabulary) coercer(n *yaml.Node) (attribute.CoerceFunc, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if fn, ok := v.coercers[n.Value]; ok {
			return fn, nil
		}
		if !v.known(n.Value) {
			return nil, fmt.Errorf("line %d: unknown coercion %q", n.Line, n.Value)
		}
		return constructFrom(v.ref(n.Value)), nil
	case yaml.MappingNode:
		key, val, err := singleEntry(n)
		if err != nil {
			return nil, err
		}
		switch key {
		case "array_of":
			elem, err := v.coercer(val)
			if err != nil {
				return nil, err
			}
			return attribute.CoerceFunc(coercer.ArrayOf(coercer.Func(elem))), nil
		case "hash_of":
			_, vn, err := singleEntry(val)
			if err != nil {
				return nil, err
			}
			kc, err := v.coercer(val.Content[0])
			if err != nil {
				return nil, err
			}
			vc, err := v.coercer(vn)
			if err != nil {
				return nil, err
			}
			return attribute.CoerceFunc(coercer.HashOf(coercer.Func(kc), coercer.Func(vc))), nil
		default:
			return nil, fmt.Errorf("line %d: unknown coercion constructor %q", n.Line, key)
		}
	default:
		return nil, fmt.Errorf("line %d: coerce must be a name, true, or a single-key mapping", n.Line)
	}
}

func (v *vocabulary) generator(name string) (attribute.Generator, error) {
	fn, ok := v.generators[name]
	if !ok {
		names := make([]string, 0, len(v.generators))
		for n := range v.generators {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("unknown default generator %q, expected one of %v", name, names)
	}
	return fn, nil
}

// singleEntry unpacks a mapping node holding exactly one key.
func singleEntry(n *yaml.Node) (string, *yaml.Node, error) {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return "", nil, fmt.Errorf("line %d: expected a mapping with exactly one key", n.Line)
	}
	return n.Content[0].Value, n.Content[1], nil
}

func (v *vocabulary) ref(name string) recipeRef {
	return recipeRef{name: name, lookup: v.lookup}
}

// recipeRef names a recipe of the set that may not be built yet.
type recipeRef struct {
	name   string
	lookup func(name string) *recipe.Recipe
}

func (r recipeRef) get() (*recipe.Recipe, error) {
	if rec := r.lookup(r.name); rec != nil {
		return rec, nil
	}
	return nil, cerrors.Configuration(r.name, "", "is used before the recipe set finished building")
}

// instanceOf matches instances of the referenced recipe or of recipes
// extending it.
func instanceOf(ref recipeRef) matcher.Matcher {
	return recipeMatcher{ref: ref}
}

type recipeMatcher struct {
	ref recipeRef
}

func (m recipeMatcher) Match(v any) bool {
	inst, ok := v.(*instance.Instance)
	if !ok || inst == nil {
		return false
	}
	r, err := m.ref.get()
	return err == nil && inst.Recipe().IsA(r)
}

func (m recipeMatcher) String() string { return m.ref.name }

// constructFrom builds nested instances of the referenced recipe from
// mappings. Other values, including instances, pass through for the matcher
// to judge.
func constructFrom(ref recipeRef) attribute.CoerceFunc {
	return func(v any) (any, error) {
		switch v.(type) {
		case map[string]any, map[any]any:
			r, err := ref.get()
			if err != nil {
				return nil, err
			}
			return instance.Construct(r, v)
		default:
			return v, nil
		}
	}
}
