package recipe

import (
	"github.com/tomdalling/value-type/pkg/attribute"
)

// Declaration options, re-exported so a recipe can be declared with this
// package alone.
var (
	// Default gives an attribute a literal default.
	Default = attribute.Default
	// DefaultGenerator gives an attribute a default produced per construction.
	DefaultGenerator = attribute.DefaultGenerator
	// Coerce coerces an attribute with a function.
	Coerce = attribute.Coerce
	// CoerceByConvention coerces an attribute with the hook named coerce_<attribute>.
	CoerceByConvention = attribute.CoerceByConvention
	// CoerceWith coerces an attribute with a named hook.
	CoerceWith = attribute.CoerceWith
)
