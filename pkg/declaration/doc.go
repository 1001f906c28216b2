// Package declaration loads recipes and instance data from YAML documents.
//
// A RecipeSet document declares recipes without Go code:
//
//	kind: RecipeSet
//	apiVersion: valuetype/v1
//	recipes:
//	  - name: Cat
//	    attributes:
//	      - name: name
//	        type: string
//	      - name: trained?
//	        type: bool
//	        default: false
//	      - name: tags
//	        type: {array_of: string}
//	        coerce: {array_of: string}
//	        default: []
//	  - name: Kitten
//	    extends: Cat
//
// Types are anything, bool, string, int, float, time, nil, the name of another
// recipe in the set, or one of {either: [...]}, {array_of: T},
// {hash_of: {K: V}} and {exact: v}. Coercions use the same names plus
// {array_of: c} and {hash_of: {kc: vc}}; `coerce: true` and
// `coerce: {hook: name}` refer to hooks registered with WithHook. Default
// generators are now and uuid, plus any registered with WithGenerator.
//
// Attribute names must be identifiers unless the attribute sets
// `define: true`. A type naming a recipe is resolved when values are checked,
// so a recipe may refer to itself:
//
//	  - name: Node
//	    attributes:
//	      - {name: next, type: {either: [nil, Node]}, coerce: Node, default: null}
//
// An InstanceSet document lists values to construct against a registry:
//
//	kind: InstanceSet
//	apiVersion: valuetype/v1
//	instances:
//	  - recipe: Cat
//	    values: {name: Tom}
package declaration
