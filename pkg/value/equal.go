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

package value

import (
	"encoding/binary"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// Equaler is implemented by values with their own notion of equality.
type Equaler interface {
	Equal(other any) bool
}

// StrictEqualer is implemented by values whose Equal is looser than identity
// of kind, such as instances of related recipes. StrictEqual prefers it.
type StrictEqualer interface {
	StrictEqual(other any) bool
}

// Hasher is implemented by values with their own stable hash.
// Values that are equal under StrictEqual must hash identically.
type Hasher interface {
	Hash() uint64
}

// Equal reports whether a and b are equal attribute values.
func Equal(a, b any) bool {
	return equal(a, b, false)
}

// StrictEqual is like Equal but compares nested StrictEqualers strictly.
// It is the equality Hash agrees with.
func StrictEqual(a, b any) bool {
	return equal(a, b, true)
}

func equal(a, b any, strict bool) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	if strict {
		if se, ok := a.(StrictEqualer); ok {
			return se.StrictEqual(b)
		}
	}
	if eq, ok := a.(Equaler); ok {
		return eq.Equal(b)
	}
	return equalValue(reflect.ValueOf(a), reflect.ValueOf(b), strict)
}

func equalValue(a, b reflect.Value, strict bool) bool {
	if a.Type() != b.Type() {
		return false
	}

	//nolint:exhaustive // containers recurse, everything else is DeepEqual
	switch a.Kind() {
	case reflect.Slice, reflect.Array:
		if a.Kind() == reflect.Slice && a.IsNil() != b.IsNil() {
			return false
		}
		if a.Len() != b.Len() {
			return false
		}
		for i := 0; i < a.Len(); i++ {
			if !equal(a.Index(i).Interface(), b.Index(i).Interface(), strict) {
				return false
			}
		}
		return true
	case reflect.Map:
		if a.IsNil() != b.IsNil() || a.Len() != b.Len() {
			return false
		}
		iter := a.MapRange()
		for iter.Next() {
			bv := b.MapIndex(iter.Key())
			if !bv.IsValid() || !equal(iter.Value().Interface(), bv.Interface(), strict) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a.Interface(), b.Interface())
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	return isNilValue(reflect.ValueOf(v))
}

func isNilValue(rv reflect.Value) bool {
	//nolint:exhaustive // only nilable kinds matter
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

var nilHash = xxhash.Sum64String("nil")

// Hash returns a stable hash of v, consistent with StrictEqual.
func Hash(v any) uint64 {
	if isNil(v) {
		return nilHash
	}
	return hashValue(reflect.ValueOf(v), nil)
}

// hashValue walks rv structurally so that values reflect.DeepEqual treats as
// equal hash the same, including pointers held in unexported struct fields.
func hashValue(rv reflect.Value, seen map[uintptr]bool) uint64 {
	if !rv.IsValid() || isNilValue(rv) {
		return nilHash
	}
	if rv.CanInterface() {
		if h, ok := rv.Interface().(Hasher); ok {
			return h.Hash()
		}
	}

	d := xxhash.New()
	_, _ = d.WriteString(rv.Type().String())
	_, _ = d.Write([]byte{0})

	//nolint:exhaustive // Invalid returns early
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			writeUint64(d, hashValue(rv.Index(i), seen))
		}
	case reflect.Map:
		// entries are summed so iteration order does not matter
		var sum uint64
		iter := rv.MapRange()
		for iter.Next() {
			sum += Combine(hashValue(iter.Key(), seen), hashValue(iter.Value(), seen))
		}
		writeUint64(d, sum)
	case reflect.Struct:
		for i := 0; i < rv.NumField(); i++ {
			writeUint64(d, hashValue(rv.Field(i), seen))
		}
	case reflect.Pointer:
		// a pointer back into the value being hashed ends the walk
		p := rv.Pointer()
		if seen[p] {
			break
		}
		if seen == nil {
			seen = map[uintptr]bool{}
		}
		seen[p] = true
		writeUint64(d, hashValue(rv.Elem(), seen))
		delete(seen, p)
	case reflect.Interface:
		writeUint64(d, hashValue(rv.Elem(), seen))
	case reflect.Bool:
		if rv.Bool() {
			_, _ = d.Write([]byte{1})
		} else {
			_, _ = d.Write([]byte{0})
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		writeUint64(d, uint64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		writeUint64(d, rv.Uint())
	case reflect.Float32, reflect.Float64:
		writeUint64(d, floatBits(rv.Float()))
	case reflect.Complex64, reflect.Complex128:
		c := rv.Complex()
		writeUint64(d, floatBits(real(c)))
		writeUint64(d, floatBits(imag(c)))
	case reflect.String:
		_, _ = d.WriteString(rv.String())
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		// compared by identity
		writeUint64(d, uint64(rv.Pointer()))
	}
	return d.Sum64()
}

// floatBits folds -0 into 0, which compare equal.
func floatBits(f float64) uint64 {
	if f == 0 {
		return 0
	}
	return math.Float64bits(f)
}

// Combine mixes two hashes in an order-dependent way.
func Combine(a, b uint64) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], a)
	binary.LittleEndian.PutUint64(buf[8:], b)
	return xxhash.Sum64(buf[:])
}

func writeUint64(d *xxhash.Digest, n uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], n)
	_, _ = d.Write(buf[:])
}
