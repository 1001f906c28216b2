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

// Package attribute defines a single schema entry of a recipe.
//
// An Attribute is declared in two steps. NewDeclaration applies the options
// and rejects illegal combinations right away; Declaration.Build resolves
// named coercion hooks and freezes the result. Once built an Attribute never
// changes and may be read from any goroutine.
package attribute

import (
	"fmt"

	cerrors "github.com/tomdalling/value-type/pkg/errors"
	"github.com/tomdalling/value-type/pkg/matcher"
)

// DefaultKind tells how an attribute gets a value when input omits it.
type DefaultKind int

const (
	// NoDefault makes the attribute required.
	NoDefault DefaultKind = iota
	// LiteralDefault uses a fixed value.
	LiteralDefault
	// GeneratorDefault calls a producer on every construction.
	GeneratorDefault
)

// String implements fmt.Stringer.
func (k DefaultKind) String() string {
	switch k {
	case LiteralDefault:
		return "literal"
	case GeneratorDefault:
		return "generator"
	default:
		return "none"
	}
}

// CoercionKind tells where an attribute's coercion came from.
type CoercionKind int

const (
	// NoCoercion stores values as given.
	NoCoercion CoercionKind = iota
	// NamedHook uses a coercion hook registered on the recipe builder.
	NamedHook
	// CallableCoercion uses a function given in the declaration.
	CallableCoercion
)

// String implements fmt.Stringer.
func (k CoercionKind) String() string {
	switch k {
	case NamedHook:
		return "hook"
	case CallableCoercion:
		return "callable"
	default:
		return "none"
	}
}

// Generator produces a default value. Its errors reach the caller of the
// constructor unchanged.
type Generator func() (any, error)

// CoerceFunc converts a raw value to its stored form. Its errors reach the
// caller of the constructor unchanged.
type CoerceFunc func(v any) (any, error)

// HookLookup resolves a named coercion hook.
type HookLookup func(name string) (CoerceFunc, bool)

// ConventionHookName is the hook name CoerceByConvention resolves for an attribute.
func ConventionHookName(attribute string) string {
	return "coerce_" + attribute
}

// Attribute is one frozen schema entry.
type Attribute struct {
	name      string
	matcher   matcher.Matcher
	dflt      DefaultKind
	literal   any
	generator Generator
	coercion  CoercionKind
	hook      string
	coerce    CoerceFunc
}

// Name returns the attribute name.
func (a *Attribute) Name() string { return a.name }

// Matcher returns the validating matcher. It is never nil.
func (a *Attribute) Matcher() matcher.Matcher { return a.matcher }

// DefaultKind returns how the attribute is defaulted.
func (a *Attribute) DefaultKind() DefaultKind { return a.dflt }

// HasDefault reports whether input may omit the attribute.
func (a *Attribute) HasDefault() bool { return a.dflt != NoDefault }

// Literal returns the literal default, if the attribute has one.
func (a *Attribute) Literal() (any, bool) {
	return a.literal, a.dflt == LiteralDefault
}

// Default produces the default value. Generators run on every call.
func (a *Attribute) Default() (any, error) {
	switch a.dflt {
	case LiteralDefault:
		return a.literal, nil
	case GeneratorDefault:
		return a.generator()
	default:
		return nil, fmt.Errorf("attribute %s has no default", a.name)
	}
}

// CoercionKind returns where the coercion came from.
func (a *Attribute) CoercionKind() CoercionKind { return a.coercion }

// Hook returns the resolved hook name for NamedHook coercions.
func (a *Attribute) Hook() string { return a.hook }

// Coerce applies the coercion, or returns v unchanged when there is none.
func (a *Attribute) Coerce(v any) (any, error) {
	if a.coerce == nil {
		return v, nil
	}
	return a.coerce(v)
}

// Validate reports whether v satisfies the matcher.
func (a *Attribute) Validate(v any) bool { return a.matcher.Match(v) }

// Clone returns an independent copy, for recipes that inherit attributes.
func (a *Attribute) Clone() *Attribute {
	c := *a
	return &c
}

// String implements fmt.Stringer.
func (a *Attribute) String() string {
	return fmt.Sprintf("%s %s", a.name, matcher.Describe(a.matcher))
}

// Option configures a Declaration.
type Option func(*Declaration)

// Declaration is an attribute that has been declared but not yet built.
type Declaration struct {
	owner     string
	name      string
	matcher   matcher.Matcher
	hasLit    bool
	literal   any
	generator Generator
	coercion  CoercionKind
	hook      string
	coerce    CoerceFunc
}

// Default gives the attribute a literal default. A nil default is allowed.
func Default(v any) Option {
	return func(d *Declaration) {
		d.hasLit = true
		d.literal = v
	}
}

// DefaultGenerator gives the attribute a default produced on every construction.
func DefaultGenerator(fn Generator) Option {
	return func(d *Declaration) {
		d.generator = fn
	}
}

// Coerce coerces values with fn before validation.
func Coerce(fn CoerceFunc) Option {
	return func(d *Declaration) {
		d.coercion = CallableCoercion
		d.coerce = fn
		d.hook = ""
	}
}

// CoerceByConvention coerces values with the hook named coerce_<attribute>.
func CoerceByConvention() Option {
	return func(d *Declaration) {
		d.coercion = NamedHook
		d.hook = ConventionHookName(d.name)
		d.coerce = nil
	}
}

// CoerceWith coerces values with the named hook.
func CoerceWith(hook string) Option {
	return func(d *Declaration) {
		d.coercion = NamedHook
		d.hook = hook
		d.coerce = nil
	}
}

// NewDeclaration applies opts and checks that they are consistent.
// A nil matcher means Anything.
func NewDeclaration(owner, name string, m matcher.Matcher, opts ...Option) (*Declaration, error) {
	if name == "" {
		return nil, cerrors.Configuration(owner, "", "attribute name cannot be empty")
	}
	if m == nil {
		m = matcher.Anything()
	}

	d := &Declaration{
		owner:   owner,
		name:    name,
		matcher: m,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}

	if d.hasLit && d.generator != nil {
		return nil, cerrors.Configuration(owner, name, "can not have both a default and a default generator")
	}
	if d.coercion == CallableCoercion && d.coerce == nil {
		return nil, cerrors.Configuration(owner, name, "coercion function cannot be nil")
	}
	if d.coercion == NamedHook && d.hook == "" {
		return nil, cerrors.Configuration(owner, name, "coercion hook name cannot be empty")
	}

	return d, nil
}

// Name returns the declared attribute name.
func (d *Declaration) Name() string { return d.name }

// Build resolves named hooks through lookup and freezes the attribute.
func (d *Declaration) Build(lookup HookLookup) (*Attribute, error) {
	a := &Attribute{
		name:      d.name,
		matcher:   d.matcher,
		literal:   d.literal,
		generator: d.generator,
		coercion:  d.coercion,
		hook:      d.hook,
		coerce:    d.coerce,
	}

	switch {
	case d.hasLit:
		a.dflt = LiteralDefault
	case d.generator != nil:
		a.dflt = GeneratorDefault
	}

	if d.coercion == NamedHook {
		var fn CoerceFunc
		var ok bool
		if lookup != nil {
			fn, ok = lookup(d.hook)
		}
		if !ok || fn == nil {
			return nil, cerrors.Configuration(d.owner, d.name,
				fmt.Sprintf("coerces with hook %q, which is not defined", d.hook))
		}
		a.coerce = fn
	}

	return a, nil
}
