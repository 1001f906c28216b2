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

// Package coercer provides ready-made coercions for attribute declarations.
//
// A coercion turns loose input into the canonical stored form before the
// attribute matcher sees it. Every coercer here leaves values it does not
// understand untouched, so the matcher is the one that rejects them and the
// resulting error reports the original value.
package coercer

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Func is the signature shared by all coercions.
type Func func(v any) (any, error)

// Identity returns v unchanged.
func Identity(v any) (any, error) { return v, nil }

// ToString converts numbers, booleans, byte slices and fmt.Stringers to strings.
func ToString(v any) (any, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case []byte:
		return string(val), nil
	case bool:
		return strconv.FormatBool(val), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), nil
	case fmt.Stringer:
		return val.String(), nil
	default:
		return v, nil
	}
}

// ToInt converts integer kinds, integral floats and numeric strings to int.
func ToInt(v any) (any, error) {
	if v == nil {
		return v, nil
	}
	if s, ok := v.(string); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return v, nil
		}
		return n, nil
	}

	rv := reflect.ValueOf(v)
	//nolint:exhaustive // non-numeric kinds pass through
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		if n < math.MinInt || n > math.MaxInt {
			return v, nil
		}
		return int(n), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n := rv.Uint()
		if n > math.MaxInt {
			return v, nil
		}
		return int(n), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || f < math.MinInt || f > math.MaxInt {
			return v, nil
		}
		return int(f), nil
	default:
		return v, nil
	}
}

// ToFloat converts numeric kinds and numeric strings to float64.
func ToFloat(v any) (any, error) {
	if v == nil {
		return v, nil
	}
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return v, nil
		}
		return f, nil
	}

	rv := reflect.ValueOf(v)
	//nolint:exhaustive // non-numeric kinds pass through
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	default:
		return v, nil
	}
}

// ToBool converts the usual textual spellings of booleans.
func ToBool(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return v, nil
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "on", "1":
		return true, nil
	case "false", "no", "n", "off", "0":
		return false, nil
	default:
		return v, nil
	}
}

// ToTime converts RFC 3339 strings and unix seconds to time.Time in UTC.
func ToTime(v any) (any, error) {
	switch val := v.(type) {
	case string:
		ts, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(val))
		if err != nil {
			return v, nil
		}
		return ts.UTC(), nil
	case int:
		return time.Unix(int64(val), 0).UTC(), nil
	case int64:
		return time.Unix(val, 0).UTC(), nil
	default:
		return v, nil
	}
}
