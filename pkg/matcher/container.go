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
)

type arrayOf struct {
	elem Matcher
}

func (a arrayOf) Match(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return false
	}
	for i := 0; i < rv.Len(); i++ {
		if !a.elem.Match(rv.Index(i).Interface()) {
			return false
		}
	}
	return true
}

func (a arrayOf) String() string { return "ArrayOf(" + Describe(a.elem) + ")" }

// Element returns the element matcher.
func (a arrayOf) Element() Matcher { return a.elem }

// ArrayOf matches slices and arrays whose every element matches elem.
// Empty sequences always match.
func ArrayOf(elem Matcher) Matcher {
	if elem == nil {
		elem = Anything()
	}
	return arrayOf{elem: elem}
}

// Pair is one key/value matcher pair given to HashOf.
type Pair struct {
	Key   Matcher
	Value Matcher
}

type hashOf struct {
	key Matcher
	val Matcher
}

func (h hashOf) Match(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return false
	}
	iter := rv.MapRange()
	for iter.Next() {
		if !h.key.Match(iter.Key().Interface()) || !h.val.Match(iter.Value().Interface()) {
			return false
		}
	}
	return true
}

func (h hashOf) String() string {
	return "HashOf(" + Describe(h.key) + " => " + Describe(h.val) + ")"
}

// KeyValue returns the key and value matchers.
func (h hashOf) KeyValue() (Matcher, Matcher) { return h.key, h.val }

// ErrHashOfArity is returned by HashOf when not given exactly one pair.
type ErrHashOfArity struct {
	Got int
}

func (e *ErrHashOfArity) Error() string {
	return fmt.Sprintf("HashOf expects exactly one key/value matcher pair, got %d", e.Got)
}

// HashOf matches maps whose every key matches the pair's Key matcher and
// every value matches its Value matcher. It fails unless given exactly one pair.
func HashOf(pairs ...Pair) (Matcher, error) {
	if len(pairs) != 1 {
		return nil, &ErrHashOfArity{Got: len(pairs)}
	}
	p := pairs[0]
	if p.Key == nil {
		p.Key = Anything()
	}
	if p.Value == nil {
		p.Value = Anything()
	}
	return hashOf{key: p.Key, val: p.Value}, nil
}
