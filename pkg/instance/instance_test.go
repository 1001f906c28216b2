package instance

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
	"pgregory.net/rapid"

	"github.com/tomdalling/value-type/pkg/coercer"
	cerrors "github.com/tomdalling/value-type/pkg/errors"
	"github.com/tomdalling/value-type/pkg/matcher"
	"github.com/tomdalling/value-type/pkg/recipe"
	"github.com/tomdalling/value-type/pkg/value"
)

var catRecipe = recipe.MustDefine("Cat", func(b *recipe.Builder) {
	b.Attribute("name", matcher.TypeOf[string]())
	b.Attribute("trained?", b.Bool())
})

var kittenRecipe = recipe.MustDefine("Kitten", func(b *recipe.Builder) {
	b.Extends(catRecipe)
})

type Cat struct{ *Instance }

func NewCat(attrs map[string]any) (Cat, error) {
	inst, err := Construct(catRecipe, attrs)
	return Cat{inst}, err
}

func (c Cat) Name() string { return MustValue[string](c.Instance, "name") }

type mappable struct {
	m   map[string]any
	err error
}

func (m mappable) ToMap() (map[string]any, error) { return m.m, m.err }

func tom(t *testing.T) *Instance {
	t.Helper()
	inst, err := Construct(catRecipe, map[string]any{"name": "Tom", "trained?": false})
	require.NoError(t, err)
	return inst
}

func TestConstruct(t *testing.T) {
	inst := tom(t)

	assert.Same(t, catRecipe, inst.Recipe())
	name, err := inst.GetString("name")
	require.NoError(t, err)
	assert.Equal(t, "Tom", name)
	trained, err := inst.GetBool("trained?")
	require.NoError(t, err)
	assert.False(t, trained)
}

func TestHostTypeEmbedding(t *testing.T) {
	c, err := NewCat(map[string]any{"name": "Garfield", "trained?": true})
	require.NoError(t, err)
	assert.Equal(t, "Garfield", c.Name())
	assert.Equal(t, `#<Cat name="Garfield" trained?=true>`, c.String())

	same, err := NewCat(map[string]any{"name": "Garfield", "trained?": true})
	require.NoError(t, err)
	other, err := NewCat(map[string]any{"name": "Garfield", "trained?": false})
	require.NoError(t, err)

	assert.True(t, c.Equal(same))
	assert.True(t, c.StrictEqual(same))
	assert.True(t, c.Equal(same.Instance))
	assert.True(t, c.Instance.Equal(same))
	assert.Equal(t, c.Hash(), same.Hash())
	assert.False(t, c.Equal(other))
	assert.False(t, c.StrictEqual(other))

	assert.True(t, value.Equal(c, same))
	assert.True(t, value.StrictEqual([]Cat{c}, []Cat{same}))
	assert.Equal(t, value.Hash([]Cat{c}), value.Hash([]Cat{same}))
}

func TestConstructDoesNotMutateInput(t *testing.T) {
	input := map[string]any{"name": "Tom", "trained?": false}
	_, err := Construct(catRecipe, input)
	require.NoError(t, err)
	assert.Len(t, input, 2)

	_, err = Construct(catRecipe, map[string]any{"name": "Tom", "trained?": false, "meow": 1})
	require.Error(t, err)
}

func TestMissingAttribute(t *testing.T) {
	_, err := Construct(catRecipe, map[string]any{"name": "Tom"})
	require.Error(t, err)
	assert.True(t, cerrors.Is(err, cerrors.ErrCodeMissingAttribute))
	assert.Contains(t, err.Error(), "trained?")
}

func TestUnrecognizedAttributesSorted(t *testing.T) {
	_, err := Construct(catRecipe, map[string]any{
		"name": "Tom", "trained?": false, "moo": 1, "meow": 2,
	})
	require.Error(t, err)
	assert.True(t, cerrors.Is(err, cerrors.ErrCodeUnrecognizedAttribute))
	assert.Contains(t, err.Error(), "Cat does not define attributes: `meow`, `moo`")
}

func TestInputShape(t *testing.T) {
	_, err := Construct(catRecipe, 42)
	require.Error(t, err)
	assert.True(t, cerrors.Is(err, cerrors.ErrCodeInputShape))
	assert.Contains(t, err.Error(), "int")

	_, err = Construct(catRecipe, map[int]any{1: "x"})
	require.Error(t, err)
	assert.True(t, cerrors.Is(err, cerrors.ErrCodeInputShape))
}

func TestInputForms(t *testing.T) {
	type key string

	om := orderedmap.New[string, any]()
	om.Set("name", "Tom")
	om.Set("trained?", false)

	inputs := map[string]any{
		"map":         map[string]any{"name": "Tom", "trained?": false},
		"ordered map": om,
		"named keys":  map[key]any{"name": "Tom", "trained?": false},
		"mappable":    mappable{m: map[string]any{"name": "Tom", "trained?": false}},
		"instance":    tom(t),
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			inst, err := Construct(catRecipe, input)
			require.NoError(t, err)
			assert.True(t, inst.StrictEqual(tom(t)))
		})
	}
}

func TestNilInputIsEmpty(t *testing.T) {
	empty := recipe.MustDefine("Empty", nil)
	inst, err := Construct(empty, nil)
	require.NoError(t, err)
	assert.Equal(t, "#<Empty>", inst.String())

	_, err = Construct(catRecipe, nil)
	assert.True(t, cerrors.Is(err, cerrors.ErrCodeMissingAttribute))
}

func TestNilRecipe(t *testing.T) {
	_, err := Construct(nil, map[string]any{})
	assert.True(t, cerrors.Is(err, cerrors.ErrCodeInvalidRequest))
}

func TestToMapErrorPassesThrough(t *testing.T) {
	boom := errors.New("boom")
	_, err := Construct(catRecipe, mappable{err: boom})
	assert.Same(t, boom, err)
}

func TestDefaults(t *testing.T) {
	calls := 0
	r := recipe.MustDefine("Post", func(b *recipe.Builder) {
		b.Attribute("title", matcher.TypeOf[string](), recipe.Default("untitled"))
		b.Attribute("created_at", matcher.TypeOf[time.Time](), recipe.DefaultGenerator(func() (any, error) {
			calls++
			return time.Unix(int64(calls), 0).UTC(), nil
		}))
		b.Attribute("tag", b.Either(matcher.TypeOf[string](), matcher.Nil()), recipe.Default("misc"))
	})

	a, err := Construct(r, map[string]any{"tag": nil})
	require.NoError(t, err)
	b, err := Construct(r, nil)
	require.NoError(t, err)

	assert.Equal(t, "untitled", MustValue[string](a, "title"))
	assert.Equal(t, 2, calls)
	assert.NotEqual(t, MustValue[time.Time](a, "created_at"), MustValue[time.Time](b, "created_at"))

	tag, err := a.Get("tag")
	require.NoError(t, err)
	assert.Nil(t, tag, "explicit nil is supplied, not defaulted")
	assert.Equal(t, "misc", MustValue[string](b, "tag"))
}

func TestGeneratorErrorPassesThrough(t *testing.T) {
	boom := errors.New("clock broke")
	r := recipe.MustDefine("Stamp", func(b *recipe.Builder) {
		b.Attribute("at", nil, recipe.DefaultGenerator(func() (any, error) { return nil, boom }))
	})
	_, err := Construct(r, nil)
	assert.Same(t, boom, err)
}

func TestCoercionPrecedesValidation(t *testing.T) {
	r := recipe.MustDefine("Doubler", func(b *recipe.Builder) {
		b.Attribute("value", matcher.TypeOf[string](), recipe.CoerceByConvention())
		b.CoercionHook("coerce_value", func(v any) (any, error) {
			if n, ok := v.(int); ok {
				return n * 2, nil
			}
			return v, nil
		})
	})

	_, err := Construct(r, map[string]any{"value": 6})
	require.Error(t, err)
	assert.True(t, cerrors.Is(err, cerrors.ErrCodeInvalidValue))
	assert.Contains(t, err.Error(), "attribute `Doubler#value` is invalid: 12")
}

func TestCoercionRunsOnDefaults(t *testing.T) {
	r := recipe.MustDefine("Counter", func(b *recipe.Builder) {
		b.Attribute("count", matcher.TypeOf[int](), recipe.Default("7"), recipe.Coerce(coercer.ToInt))
	})
	inst, err := Construct(r, nil)
	require.NoError(t, err)
	n, err := inst.GetInt("count")
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestCoercionErrorPassesThrough(t *testing.T) {
	boom := errors.New("cannot coerce")
	r := recipe.MustDefine("Strict", func(b *recipe.Builder) {
		b.Attribute("x", nil, recipe.Coerce(func(any) (any, error) { return nil, boom }))
	})
	_, err := Construct(r, map[string]any{"x": 1})
	assert.Same(t, boom, err)
}

func TestGet(t *testing.T) {
	inst := tom(t)

	_, err := inst.Get("meow")
	require.Error(t, err)
	assert.True(t, cerrors.Is(err, cerrors.ErrCodeUnrecognizedAttribute))
	assert.Contains(t, err.Error(), "Cat does not define attribute `meow`")

	_, err = inst.GetInt("name")
	assert.Error(t, err)

	assert.Panics(t, func() { MustValue[int](inst, "name") })
}

func TestToMapIsFresh(t *testing.T) {
	inst := tom(t)

	m, err := inst.ToMap()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Tom", "trained?": false}, m)

	m["name"] = "Jerry"
	assert.Equal(t, "Tom", MustValue[string](inst, "name"))
}

func TestOrdered(t *testing.T) {
	om := tom(t).Ordered()

	var keys []string
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"name", "trained?"}, keys)
}

func TestWith(t *testing.T) {
	inst := tom(t)

	trained, err := inst.With(map[string]any{"trained?": true})
	require.NoError(t, err)
	assert.True(t, MustValue[bool](trained, "trained?"))
	assert.False(t, MustValue[bool](inst, "trained?"))
	assert.Same(t, catRecipe, trained.Recipe())

	_, err = inst.With(map[string]any{"trained?": "yes"})
	assert.True(t, cerrors.Is(err, cerrors.ErrCodeInvalidValue))

	_, err = inst.With(map[string]any{"meow": 1})
	assert.True(t, cerrors.Is(err, cerrors.ErrCodeUnrecognizedAttribute))
}

func TestWithEmptyIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.String().Draw(t, "name")
		trained := rapid.Bool().Draw(t, "trained")

		x, err := Construct(catRecipe, map[string]any{"name": name, "trained?": trained})
		if err != nil {
			t.Fatalf("construct: %v", err)
		}
		y, err := x.With(map[string]any{})
		if err != nil {
			t.Fatalf("with: %v", err)
		}

		xm, _ := x.ToMap()
		ym, _ := y.ToMap()
		if !assert.ObjectsAreEqual(xm, ym) {
			t.Fatalf("mappings differ: %v != %v", xm, ym)
		}
		if !x.Equal(y) || !x.StrictEqual(y) || x.Hash() != y.Hash() {
			t.Fatalf("%v and %v should be equal", x, y)
		}
	})
}

func TestLooseAndStrictEquality(t *testing.T) {
	attrs := map[string]any{"name": "Tom", "trained?": false}
	cat := MustConstruct(catRecipe, attrs)
	kitten := MustConstruct(kittenRecipe, attrs)

	assert.True(t, cat.Equal(kitten))
	assert.True(t, kitten.Equal(cat))
	assert.False(t, cat.StrictEqual(kitten))
	assert.False(t, kitten.StrictEqual(cat))
	assert.NotEqual(t, cat.Hash(), kitten.Hash())

	same := MustConstruct(catRecipe, attrs)
	assert.True(t, cat.StrictEqual(same))
	assert.Equal(t, cat.Hash(), same.Hash())

	other := MustConstruct(catRecipe, map[string]any{"name": "Tom", "trained?": true})
	assert.False(t, cat.Equal(other))
	assert.False(t, cat.StrictEqual(other))
}

func TestEqualityAcrossUnrelatedRecipes(t *testing.T) {
	dog := recipe.MustDefine("Dog", func(b *recipe.Builder) {
		b.Attribute("name", matcher.TypeOf[string]())
		b.Attribute("trained?", b.Bool())
	})
	attrs := map[string]any{"name": "Tom", "trained?": false}

	assert.False(t, MustConstruct(catRecipe, attrs).Equal(MustConstruct(dog, attrs)))
	assert.False(t, tom(t).Equal("Tom"))
	assert.False(t, tom(t).Equal(nil))
	assert.False(t, tom(t).StrictEqual(nil))
}

func TestNestedInstancesCompareByValue(t *testing.T) {
	owner := recipe.MustDefine("Owner", func(b *recipe.Builder) {
		b.Attribute("pets", b.ArrayOf(matcher.TypeOf[*Instance]()))
	})

	a := MustConstruct(owner, map[string]any{"pets": []*Instance{tom(t)}})
	b := MustConstruct(owner, map[string]any{"pets": []*Instance{tom(t)}})
	assert.True(t, a.StrictEqual(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, `#<Owner pets=[#<Cat name="Tom" trained?=false>]>`, a.String())
}

func TestNestedSubtypeInstancesAreNotStrictlyEqual(t *testing.T) {
	owner := recipe.MustDefine("Owner", func(b *recipe.Builder) {
		b.Attribute("pet", b.Anything())
	})
	attrs := map[string]any{"name": "Tom", "trained?": false}

	withCat := MustConstruct(owner, map[string]any{"pet": MustConstruct(catRecipe, attrs)})
	withKitten := MustConstruct(owner, map[string]any{"pet": MustConstruct(kittenRecipe, attrs)})
	withCatAgain := MustConstruct(owner, map[string]any{"pet": MustConstruct(catRecipe, attrs)})

	assert.True(t, withCat.Equal(withKitten))
	assert.False(t, withCat.StrictEqual(withKitten))
	assert.NotEqual(t, withCat.Hash(), withKitten.Hash())

	assert.True(t, withCat.StrictEqual(withCatAgain))
	assert.Equal(t, withCat.Hash(), withCatAgain.Hash())
}

type collar struct {
	Size  *int
	owner *Instance
}

func TestStructValuedAttributesHashByContent(t *testing.T) {
	pet := recipe.MustDefine("Pet", func(b *recipe.Builder) {
		b.Attribute("collar", matcher.TypeOf[collar]())
	})
	x, y := 3, 3

	a := MustConstruct(pet, map[string]any{"collar": collar{Size: &x, owner: tom(t)}})
	b := MustConstruct(pet, map[string]any{"collar": collar{Size: &y, owner: tom(t)}})
	assert.True(t, a.StrictEqual(b))
	assert.Equal(t, a.Hash(), b.Hash())
}

func TestStrictEqualImpliesSameHash(t *testing.T) {
	owner := recipe.MustDefine("Owner", func(b *recipe.Builder) {
		b.Attribute("pets", b.ArrayOf(b.Anything()))
		b.Attribute("collar", b.Anything())
	})

	pets := func(t *rapid.T, label string) []any {
		n := rapid.IntRange(0, 3).Draw(t, label+" count")
		out := make([]any, n)
		for i := range out {
			r := rapid.SampledFrom([]*recipe.Recipe{catRecipe, kittenRecipe}).Draw(t, label+" recipe")
			out[i] = MustConstruct(r, map[string]any{
				"name":     rapid.SampledFrom([]string{"Tom", "Felix"}).Draw(t, label+" name"),
				"trained?": rapid.Bool().Draw(t, label+" trained"),
			})
		}
		return out
	}
	collarOf := func(t *rapid.T, label string) collar {
		size := rapid.IntRange(0, 2).Draw(t, label+" size")
		return collar{Size: &size}
	}

	rapid.Check(t, func(t *rapid.T) {
		a := MustConstruct(owner, map[string]any{"pets": pets(t, "a"), "collar": collarOf(t, "a")})
		b := MustConstruct(owner, map[string]any{"pets": pets(t, "b"), "collar": collarOf(t, "b")})

		if a.StrictEqual(b) && a.Hash() != b.Hash() {
			t.Fatalf("%v and %v are strictly equal but hash differently", a, b)
		}
		if !a.StrictEqual(a) {
			t.Fatalf("%v is not strictly equal to itself", a)
		}
		if !a.Equal(b) && a.StrictEqual(b) {
			t.Fatalf("%v and %v are strictly but not loosely equal", a, b)
		}
	})
}

func TestRendering(t *testing.T) {
	inst := tom(t)

	assert.Equal(t, `#<Cat name="Tom" trained?=false>`, inst.String())
	assert.Equal(t, inst.String(), inst.Inspect())
	assert.Equal(t, strings.Join([]string{
		"#<Cat",
		`  name="Tom"`,
		"  trained?=false",
		">",
	}, "\n"), inst.Pretty())
}

func TestMarshal(t *testing.T) {
	inst := tom(t)

	data, err := inst.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Tom","trained?":false}`, string(data))
	assert.True(t, strings.Index(string(data), "name") < strings.Index(string(data), "trained?"))

	out, err := yaml.Marshal(inst)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, map[string]any{"name": "Tom", "trained?": false}, decoded)
	assert.True(t, strings.Index(string(out), "name") < strings.Index(string(out), "trained?"))
}

func TestConcurrentConstruction(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inst, err := Construct(catRecipe, map[string]any{"name": "Tom", "trained?": i%2 == 0})
			assert.NoError(t, err)
			assert.Equal(t, "Tom", MustValue[string](inst, "name"))
		}()
	}
	wg.Wait()
}
