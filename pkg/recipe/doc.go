// Package recipe provides the declarative builder for value-type schemas.
//
// # Overview
//
// A Recipe is the ordered, immutable list of attributes that describes one
// value type. It is built once, usually into a package-level variable, and
// then shared read-only by every instance of the type.
//
// # Core Types
//
// Recipe: frozen schema
//
//	type Recipe struct {
//	    name   string                 // type name used in errors and renderings
//	    id     uuid.UUID              // identity used for strict equality and hashing
//	    attrs  []*attribute.Attribute // declaration order
//	    parent *Recipe                // optional supertype
//	}
//
// Builder: accumulates declarations and reports the first problem on Build.
//
// # Usage
//
//	var catRecipe = recipe.MustDefine("Cat", func(b *recipe.Builder) {
//	    b.Attribute("name", matcher.TypeOf[string]())
//	    b.Attribute("trained?", b.Bool(), recipe.Default(false))
//	    b.Attribute("toys", b.ArrayOf(matcher.TypeOf[string]()),
//	        recipe.Default([]string{}),
//	        recipe.Coerce(coercer.ArrayOf(coercer.ToString)))
//	    b.Attribute("born_at", matcher.TypeOf[time.Time](),
//	        recipe.DefaultGenerator(func() (any, error) { return time.Now(), nil }))
//	    b.Define("owner-id", nil, recipe.Default(nil))
//	})
//
// Names that are not plain identifiers (owner-id above) must be declared with
// Define. Named coercion hooks are registered with CoercionHook and resolved
// when the recipe is built, so construction never looks anything up by name:
//
//	b.CoercionHook("coerce_name", func(v any) (any, error) {
//	    s, _ := v.(string)
//	    return strings.TrimSpace(s), nil
//	})
//	b.Attribute("name", matcher.TypeOf[string](), recipe.CoerceByConvention())
//
// # Subtypes
//
// Extends starts a recipe from another recipe's attributes. Instances of a
// subtype compare loosely equal to instances of its supertype with the same
// data; Compatible swaps that rule for a custom one.
//
// # Errors
//
// Every declaration problem is an ErrCodeConfiguration StructuredError: a
// default combined with a default generator, a HashOf without exactly one
// key/value pair, duplicate names, invalid names, unresolved hooks.
//
// # Metrics
//
//	valuetype_recipe_builds_total{result}   builds by result
//	valuetype_recipe_attributes             attribute count histogram
package recipe
