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
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tomdalling/value-type/pkg/attribute"
)

// CompatibilityFunc decides whether instances of two recipes may compare
// loosely equal.
type CompatibilityFunc func(a, b *Recipe) bool

// Ancestry is the default compatibility: either recipe extends the other,
// directly or transitively, or they are the same recipe.
func Ancestry(a, b *Recipe) bool {
	return a.IsA(b) || b.IsA(a)
}

// Recipe is the frozen, ordered schema of one value type.
// A Recipe is never modified after Build and is safe for concurrent use.
type Recipe struct {
	name       string
	id         uuid.UUID
	attrs      []*attribute.Attribute
	index      map[string]int
	parent     *Recipe
	compatible CompatibilityFunc
	hooks      map[string]attribute.CoerceFunc
}

// Name returns the type name instances report in errors and renderings.
func (r *Recipe) Name() string { return r.name }

// ID identifies this recipe; two builds of the same declarations get different IDs.
func (r *Recipe) ID() uuid.UUID { return r.id }

// Parent returns the recipe this one extends, or nil.
func (r *Recipe) Parent() *Recipe { return r.parent }

// Len returns the number of attributes.
func (r *Recipe) Len() int { return len(r.attrs) }

// Attributes returns the attributes in declaration order.
// The slice is a copy; the attributes themselves are immutable.
func (r *Recipe) Attributes() []*attribute.Attribute {
	out := make([]*attribute.Attribute, len(r.attrs))
	copy(out, r.attrs)
	return out
}

// At returns the attribute at position i in declaration order.
func (r *Recipe) At(i int) *attribute.Attribute { return r.attrs[i] }

// Attribute looks up an attribute by name.
func (r *Recipe) Attribute(name string) (*attribute.Attribute, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.attrs[i], true
}

// IndexOf returns the position of the named attribute, or -1.
func (r *Recipe) IndexOf(name string) int {
	if i, ok := r.index[name]; ok {
		return i
	}
	return -1
}

// Names returns the attribute names in declaration order.
func (r *Recipe) Names() []string {
	names := make([]string, len(r.attrs))
	for i, a := range r.attrs {
		names[i] = a.Name()
	}
	return names
}

// IsA reports whether r is other or extends it.
func (r *Recipe) IsA(other *Recipe) bool {
	if other == nil {
		return false
	}
	for cur := r; cur != nil; cur = cur.parent {
		if cur == other {
			return true
		}
	}
	return false
}

// Compatible reports whether instances of r and other may compare loosely equal.
func (r *Recipe) Compatible(other *Recipe) bool {
	if r == nil || other == nil {
		return false
	}
	if r == other {
		return true
	}
	return r.compatible(r, other)
}

// String implements fmt.Stringer.
func (r *Recipe) String() string {
	parts := make([]string, len(r.attrs))
	for i, a := range r.attrs {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", r.name, strings.Join(parts, ", "))
}
