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

package instance

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	cerrors "github.com/tomdalling/value-type/pkg/errors"
	"github.com/tomdalling/value-type/pkg/recipe"
	"github.com/tomdalling/value-type/pkg/value"
)

// Mappable is implemented by inputs that can convert themselves to attribute
// values. Errors from ToMap reach the caller of Construct unchanged.
type Mappable interface {
	ToMap() (map[string]any, error)
}

// Instance is an immutable value built from a Recipe.
type Instance struct {
	recipe *recipe.Recipe
	values []any // aligned with recipe attribute order
}

// Construct builds a validated Instance of r from input.
//
// Input may be nil (no attributes supplied), a map with string keys, an
// ordered map, or a Mappable. The input is never modified. For each
// attribute in recipe order the supplied value is used, or else its default;
// the value is then coerced and validated. Keys left over once every
// attribute has been processed are reported together, sorted.
func Construct(r *recipe.Recipe, input any) (*Instance, error) {
	inst, err := construct(r, input)
	if err != nil {
		code := cerrors.CodeOf(err)
		if code == "" {
			code = resultPassthrough
		}
		constructions.WithLabelValues(string(code)).Inc()
		slog.Debug("instance construction failed", "recipe", typeName(r), "error", err)
		return nil, err
	}
	constructions.WithLabelValues(resultSuccess).Inc()
	return inst, nil
}

// MustConstruct is like Construct but panics on error.
func MustConstruct(r *recipe.Recipe, input any) *Instance {
	inst, err := Construct(r, input)
	if err != nil {
		panic(err)
	}
	return inst
}

func construct(r *recipe.Recipe, input any) (*Instance, error) {
	if r == nil {
		return nil, cerrors.New(cerrors.ErrCodeInvalidRequest, "recipe cannot be nil")
	}

	remaining, err := toMap(r, input)
	if err != nil {
		return nil, err
	}

	values := make([]any, r.Len())
	for i := range values {
		attr := r.At(i)

		v, supplied := remaining[attr.Name()]
		if supplied {
			delete(remaining, attr.Name())
		} else {
			if !attr.HasDefault() {
				return nil, cerrors.MissingAttribute(r.Name(), attr.Name())
			}
			if v, err = attr.Default(); err != nil {
				return nil, err
			}
		}

		if v, err = attr.Coerce(v); err != nil {
			return nil, err
		}
		if !attr.Validate(v) {
			return nil, cerrors.InvalidValue(r.Name(), attr.Name(), value.Inspect(v))
		}
		values[i] = v
	}

	if len(remaining) > 0 {
		unknown := make([]string, 0, len(remaining))
		for k := range remaining {
			unknown = append(unknown, k)
		}
		sort.Strings(unknown)
		return nil, cerrors.UnrecognizedAttributes(r.Name(), unknown)
	}

	return &Instance{recipe: r, values: values}, nil
}

// toMap copies input into a fresh map the constructor may consume.
func toMap(r *recipe.Recipe, input any) (map[string]any, error) {
	switch in := input.(type) {
	case nil:
		return map[string]any{}, nil
	case Mappable:
		m, err := in.ToMap()
		if err != nil {
			return nil, err
		}
		return copyMap(m), nil
	case map[string]any:
		return copyMap(in), nil
	case *orderedmap.OrderedMap[string, any]:
		out := make(map[string]any, in.Len())
		for pair := in.Oldest(); pair != nil; pair = pair.Next() {
			out[pair.Key] = pair.Value
		}
		return out, nil
	}

	rv := reflect.ValueOf(input)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, nil
	}

	return nil, cerrors.InputShape(r.Name(), fmt.Sprintf("%T", input))
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func typeName(r *recipe.Recipe) string {
	if r == nil {
		return ""
	}
	return r.Name()
}
