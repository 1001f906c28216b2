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

package schema

import (
	"reflect"

	"github.com/invopop/jsonschema"

	"github.com/tomdalling/value-type/pkg/matcher"
	"github.com/tomdalling/value-type/pkg/recipe"
)

// Describer is implemented by matchers that know their own JSON Schema.
type Describer interface {
	JSONSchema() *jsonschema.Schema
}

// For builds the JSON Schema of the values r accepts.
func For(r *recipe.Recipe) *jsonschema.Schema {
	props := jsonschema.NewProperties()
	var required []string

	for _, attr := range r.Attributes() {
		s := ForMatcher(attr.Matcher())
		if lit, ok := attr.Literal(); ok {
			s.Default = lit
		}
		props.Set(attr.Name(), s)
		if !attr.HasDefault() {
			required = append(required, attr.Name())
		}
	}

	return &jsonschema.Schema{
		Version:              jsonschema.Version,
		Title:                r.Name(),
		Type:                 "object",
		Properties:           props,
		Required:             required,
		AdditionalProperties: jsonschema.FalseSchema,
	}
}

type (
	alternatives interface{ Alternatives() []matcher.Matcher }
	element      interface{ Element() matcher.Matcher }
	keyValue     interface {
		KeyValue() (matcher.Matcher, matcher.Matcher)
	}
	typed    interface{ Type() reflect.Type }
	exact    interface{ Value() any }
	inverted interface{ Inverted() matcher.Matcher }
)

// ForMatcher translates a single matcher. It always returns a fresh schema.
func ForMatcher(m matcher.Matcher) *jsonschema.Schema {
	if m == nil {
		return &jsonschema.Schema{}
	}
	if d, ok := m.(Describer); ok {
		return d.JSONSchema()
	}

	switch mm := m.(type) {
	case alternatives:
		alts := mm.Alternatives()
		if len(alts) == 0 {
			return &jsonschema.Schema{Not: &jsonschema.Schema{}}
		}
		s := &jsonschema.Schema{}
		for _, alt := range alts {
			s.AnyOf = append(s.AnyOf, ForMatcher(alt))
		}
		return s
	case element:
		return &jsonschema.Schema{Type: "array", Items: ForMatcher(mm.Element())}
	case keyValue:
		k, v := mm.KeyValue()
		return &jsonschema.Schema{
			Type:                 "object",
			PropertyNames:        ForMatcher(k),
			AdditionalProperties: ForMatcher(v),
		}
	case typed:
		return forType(mm.Type())
	case exact:
		return &jsonschema.Schema{Const: mm.Value()}
	case inverted:
		return &jsonschema.Schema{Not: ForMatcher(mm.Inverted())}
	}

	switch matcher.Describe(m) {
	case "Bool":
		return &jsonschema.Schema{Type: "boolean"}
	case "nil":
		return &jsonschema.Schema{Type: "null"}
	case "Nothing":
		return &jsonschema.Schema{Not: &jsonschema.Schema{}}
	default:
		return &jsonschema.Schema{}
	}
}

var reflector = &jsonschema.Reflector{
	Anonymous:      true,
	DoNotReference: true,
}

func forType(t reflect.Type) *jsonschema.Schema {
	if t.Kind() == reflect.Interface {
		return &jsonschema.Schema{}
	}
	s := reflector.ReflectFromType(t)
	s.Version = ""
	return s
}
