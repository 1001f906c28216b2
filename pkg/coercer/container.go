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

package coercer

import (
	"reflect"
)

// ArrayOf coerces every element of a slice or array with elem, producing a
// []any. Non-sequences are returned unchanged. The first element error is
// returned as-is.
func ArrayOf(elem Func) Func {
	if elem == nil {
		elem = Identity
	}
	return func(v any) (any, error) {
		if v == nil {
			return v, nil
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return v, nil
		}
		out := make([]any, rv.Len())
		for i := range out {
			c, err := elem(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	}
}

// HashOf coerces every key and value of a map. The result is a
// map[string]any when every coerced key is a string, otherwise a
// map[any]any. Non-maps are returned unchanged.
func HashOf(key, val Func) Func {
	if key == nil {
		key = Identity
	}
	if val == nil {
		val = Identity
	}
	return func(v any) (any, error) {
		if v == nil {
			return v, nil
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Map {
			return v, nil
		}

		keys := make([]any, 0, rv.Len())
		vals := make([]any, 0, rv.Len())
		allStrings := true
		iter := rv.MapRange()
		for iter.Next() {
			k, err := key(iter.Key().Interface())
			if err != nil {
				return nil, err
			}
			cv, err := val(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			if _, ok := k.(string); !ok {
				allStrings = false
			}
			keys = append(keys, k)
			vals = append(vals, cv)
		}

		if allStrings {
			out := make(map[string]any, len(keys))
			for i, k := range keys {
				out[k.(string)] = vals[i]
			}
			return out, nil
		}
		out := make(map[any]any, len(keys))
		for i, k := range keys {
			if k != nil && !reflect.TypeOf(k).Comparable() {
				return v, nil
			}
			out[k] = vals[i]
		}
		return out, nil
	}
}
