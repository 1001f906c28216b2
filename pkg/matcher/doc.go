// Package matcher provides the predicates used to validate attribute values.
//
// A Matcher answers one question: does this value satisfy me? Built-in
// matchers cover the common shapes and compose freely:
//
//	matcher.Either(matcher.TypeOf[string](), matcher.Nil())
//	matcher.ArrayOf(matcher.TypeOf[int]())
//	matcher.HashOf(matcher.Pair{Key: matcher.TypeOf[string](), Value: matcher.Bool()})
//
// Any user type with a Match(any) bool method is a Matcher too, and plain
// functions can be adapted with Func.
package matcher
