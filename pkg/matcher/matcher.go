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

package matcher

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/tomdalling/value-type/pkg/value"
)

// Matcher is a predicate over attribute values.
type Matcher interface {
	Match(v any) bool
}

// Func adapts an ordinary function to a Matcher.
type Func func(v any) bool

// Match calls f(v).
func (f Func) Match(v any) bool { return f(v) }

// String implements fmt.Stringer.
func (f Func) String() string { return "Func" }

type anything struct{}

func (anything) Match(any) bool { return true }
func (anything) String() string { return "Anything" }

// Anything matches every value, including nil.
func Anything() Matcher { return anything{} }

type nothing struct{}

func (nothing) Match(any) bool { return false }
func (nothing) String() string { return "Nothing" }

// Nothing matches no value.
func Nothing() Matcher { return nothing{} }

type boolean struct{}

func (boolean) Match(v any) bool {
	_, ok := v.(bool)
	return ok
}

func (boolean) String() string { return "Bool" }

// Bool matches exactly true or false.
func Bool() Matcher { return boolean{} }

type nilMatcher struct{}

func (nilMatcher) Match(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	//nolint:exhaustive // only nilable kinds
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

func (nilMatcher) String() string { return "nil" }

// Nil matches nil and typed nil pointers, maps and slices.
func Nil() Matcher { return nilMatcher{} }

type typeOf struct {
	typ reflect.Type
}

func (m typeOf) Match(v any) bool {
	if v == nil {
		return false
	}
	t := reflect.TypeOf(v)
	if m.typ.Kind() == reflect.Interface {
		return t.Implements(m.typ)
	}
	return t == m.typ
}

func (m typeOf) String() string { return m.typ.String() }

// Type returns the Go type being matched.
func (m typeOf) Type() reflect.Type { return m.typ }

// TypeOf matches values whose dynamic type is exactly T, or implements T
// when T is an interface type.
func TypeOf[T any]() Matcher {
	return typeOf{typ: reflect.TypeFor[T]()}
}

type exact struct {
	want any
}

func (m exact) Match(v any) bool { return value.Equal(m.want, v) }
func (m exact) String() string   { return value.Inspect(m.want) }

// Value returns the value being matched against.
func (m exact) Value() any { return m.want }

// Exact matches values equal to want.
func Exact(want any) Matcher { return exact{want: want} }

type not struct {
	m Matcher
}

func (n not) Match(v any) bool { return !n.m.Match(v) }
func (n not) String() string   { return "Not(" + Describe(n.m) + ")" }

// Inverted returns the matcher being negated.
func (n not) Inverted() Matcher { return n.m }

// Not inverts m.
func Not(m Matcher) Matcher { return not{m: m} }

type either struct {
	subs []Matcher
}

func (e either) Match(v any) bool {
	for _, m := range e.subs {
		if m.Match(v) {
			return true
		}
	}
	return false
}

func (e either) String() string { return "Either(" + describeAll(e.subs) + ")" }

// Alternatives returns a copy of the sub-matchers.
func (e either) Alternatives() []Matcher { return append([]Matcher(nil), e.subs...) }

// Either matches when any of the given matchers matches.
// With no arguments it matches nothing.
func Either(ms ...Matcher) Matcher {
	return either{subs: append([]Matcher(nil), ms...)}
}

// Describe renders m for humans: built-ins render as their constructor call,
// other matchers use fmt.Stringer or their Go type.
func Describe(m Matcher) string {
	if m == nil {
		return "Anything"
	}
	if s, ok := m.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", m)
}

func describeAll(ms []Matcher) string {
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = Describe(m)
	}
	return strings.Join(parts, ", ")
}
