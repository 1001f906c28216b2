// Package schema exports recipes as JSON Schema documents.
//
// Each attribute becomes a property, in recipe order. Attributes without a
// default are required and unknown properties are rejected, mirroring what
// instance construction accepts before coercion.
//
// Built-in matchers are translated structurally; TypeOf matchers are reflected
// from their Go type. Custom matchers can implement Describer to contribute
// their own schema, anything else is unconstrained.
package schema
