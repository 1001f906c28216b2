// Package instance constructs and operates on immutable values described by a
// recipe.
//
// Construct turns an unordered set of attribute values into a validated
// Instance. Each attribute, in recipe order, takes its supplied value or its
// default, is coerced, and is then checked against its matcher. Unknown keys
// are rejected once every attribute has been processed.
//
// Instances support loose and strict equality, hashing, non-destructive
// update with With, and conversion back to a mapping.
//
// Host types embed *Instance to gain value semantics:
//
//	var catRecipe = recipe.MustDefine("Cat", func(b *recipe.Builder) {
//		b.Attribute("name", matcher.TypeOf[string]())
//		b.Attribute("trained?", b.Bool(), recipe.Default(false))
//	})
//
//	type Cat struct{ *instance.Instance }
//
//	func NewCat(attrs map[string]any) (Cat, error) {
//		inst, err := instance.Construct(catRecipe, attrs)
//		return Cat{inst}, err
//	}
//
//	func (c Cat) Name() string { return instance.MustValue[string](c.Instance, "name") }
package instance
