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
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	cerrors "github.com/tomdalling/value-type/pkg/errors"
	"github.com/tomdalling/value-type/pkg/recipe"
	"github.com/tomdalling/value-type/pkg/value"
)

// Recipe returns the recipe the instance was built from.
func (i *Instance) Recipe() *recipe.Recipe { return i.recipe }

// Get returns the value of the named attribute.
func (i *Instance) Get(name string) (any, error) {
	idx := i.recipe.IndexOf(name)
	if idx < 0 {
		return nil, cerrors.UnrecognizedAttribute(i.recipe.Name(), name)
	}
	return i.values[idx], nil
}

// Value returns the named attribute as a T.
func Value[T any](i *Instance, name string) (T, error) {
	var zero T
	v, err := i.Get(name)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("attribute %q of %s is a %T, not a %T", name, i.recipe.Name(), v, zero)
	}
	return t, nil
}

// MustValue is like Value but panics on error. Host types use it for
// accessors whose matcher already guarantees the type.
func MustValue[T any](i *Instance, name string) T {
	t, err := Value[T](i, name)
	if err != nil {
		panic(err)
	}
	return t
}

// GetString retrieves a string attribute.
func (i *Instance) GetString(name string) (string, error) { return Value[string](i, name) }

// GetBool retrieves a bool attribute.
func (i *Instance) GetBool(name string) (bool, error) { return Value[bool](i, name) }

// GetInt retrieves an int attribute.
func (i *Instance) GetInt(name string) (int, error) { return Value[int](i, name) }

// GetFloat64 retrieves a float64 attribute.
func (i *Instance) GetFloat64(name string) (float64, error) { return Value[float64](i, name) }

// ToMap returns a fresh map of attribute names to values. It never fails;
// the error makes *Instance a Mappable so instances can seed other instances.
func (i *Instance) ToMap() (map[string]any, error) {
	if i == nil {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(i.values))
	for idx, v := range i.values {
		out[i.recipe.At(idx).Name()] = v
	}
	return out, nil
}

// Ordered returns a fresh map of attribute names to values in recipe order.
func (i *Instance) Ordered() *orderedmap.OrderedMap[string, any] {
	om := orderedmap.New[string, any]()
	for idx, v := range i.values {
		om.Set(i.recipe.At(idx).Name(), v)
	}
	return om
}

// With returns a new instance of the same recipe with some attributes
// replaced. The merged attributes go through the full constructor again, so
// unchanged values are re-coerced and re-validated too.
func (i *Instance) With(changes map[string]any) (*Instance, error) {
	merged, _ := i.ToMap()
	for k, v := range changes {
		merged[k] = v
	}
	return Construct(i.recipe, merged)
}

// instance lets host types that embed *Instance be unwrapped wherever an
// instance is compared.
func (i *Instance) instance() *Instance { return i }

type wrapper interface{ instance() *Instance }

func unwrap(v any) *Instance {
	w, ok := v.(wrapper)
	if !ok {
		return nil
	}
	return w.instance()
}

// Equal reports loose equality: other is an instance (or a host type
// embedding one) of a compatible recipe with the same attribute names and
// equal values.
func (i *Instance) Equal(other any) bool {
	o := unwrap(other)
	if i == nil || o == nil {
		return false
	}
	if i == o {
		return true
	}
	if !i.recipe.Compatible(o.recipe) || len(i.values) != len(o.values) {
		return false
	}
	for idx, v := range i.values {
		oidx := o.recipe.IndexOf(i.recipe.At(idx).Name())
		if oidx < 0 || !value.Equal(v, o.values[oidx]) {
			return false
		}
	}
	return true
}

// StrictEqual reports whether other was built from the very same recipe and
// holds strictly equal values, nested instances included. Subtype and
// supertype instances are never strictly equal.
func (i *Instance) StrictEqual(other any) bool {
	o := unwrap(other)
	if i == nil || o == nil {
		return i == nil && o == nil
	}
	if i.recipe != o.recipe {
		return false
	}
	for idx, v := range i.values {
		if !value.StrictEqual(v, o.values[idx]) {
			return false
		}
	}
	return true
}

// Hash combines the recipe identity with every attribute value. Strictly
// equal instances hash identically.
func (i *Instance) Hash() uint64 {
	id := i.recipe.ID()
	h := value.Hash(id[:])
	for _, v := range i.values {
		h = value.Combine(h, value.Hash(v))
	}
	return h
}

// MarshalJSON encodes the attributes as an object in recipe order.
func (i *Instance) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.Ordered())
}

// MarshalYAML encodes the attributes as a mapping in recipe order.
func (i *Instance) MarshalYAML() (any, error) {
	return i.Ordered(), nil
}
