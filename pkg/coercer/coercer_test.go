package coercer

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarCoercers(t *testing.T) {
	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	tests := []struct {
		name string
		fn   Func
		in   any
		want any
	}{
		{"string from int", ToString, 12, "12"},
		{"string from float", ToString, 1.5, "1.5"},
		{"string from bool", ToString, true, "true"},
		{"string from bytes", ToString, []byte("hi"), "hi"},
		{"string from stringer", ToString, time.Second, "1s"},
		{"string passthrough", ToString, "x", "x"},
		{"string leaves nil", ToString, nil, nil},
		{"int from string", ToInt, " 42 ", 42},
		{"int from bad string", ToInt, "4x", "4x"},
		{"int from int64", ToInt, int64(7), 7},
		{"int from uint8", ToInt, uint8(7), 7},
		{"int from integral float", ToInt, 3.0, 3},
		{"int from fractional float", ToInt, 3.5, 3.5},
		{"int leaves bool", ToInt, true, true},
		{"float from int", ToFloat, 2, 2.0},
		{"float from string", ToFloat, "2.5", 2.5},
		{"float from bad string", ToFloat, "abc", "abc"},
		{"bool from yes", ToBool, "yes", true},
		{"bool from 0", ToBool, "0", false},
		{"bool from other", ToBool, "maybe", "maybe"},
		{"bool leaves int", ToBool, 1, 1},
		{"time from rfc3339", ToTime, "2024-05-06T07:08:09Z", ts},
		{"time from unix", ToTime, int(ts.Unix()), ts},
		{"time from bad string", ToTime, "yesterday", "yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArrayOf(t *testing.T) {
	c := ArrayOf(ToInt)

	got, err := c([]string{"1", "2"})
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2}, got)

	got, err = c("not a slice")
	require.NoError(t, err)
	assert.Equal(t, "not a slice", got)

	got, err = ArrayOf(nil)([2]int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2}, got)
}

func TestArrayOfPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	c := ArrayOf(func(any) (any, error) { return nil, boom })

	_, err := c([]int{1})
	assert.Same(t, boom, err)
}

func TestHashOf(t *testing.T) {
	c := HashOf(ToString, ToBool)

	got, err := c(map[int]string{1: "yes", 2: "no"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"1": true, "2": false}, got)

	got, err = HashOf(nil, ToInt)(map[bool]string{true: "1"})
	require.NoError(t, err)
	assert.Equal(t, map[any]any{true: 1}, got)

	got, err = c([]int{1})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, got)
}

func TestHashOfPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	c := HashOf(nil, func(any) (any, error) { return nil, boom })

	_, err := c(map[string]int{"a": 1})
	assert.Same(t, boom, err)
}
