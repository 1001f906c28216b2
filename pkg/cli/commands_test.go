package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomdalling/value-type/pkg/declaration"
	cerrors "github.com/tomdalling/value-type/pkg/errors"
	"github.com/tomdalling/value-type/pkg/header"
)

const (
	petsRecipes = "../declaration/testdata/pets.yaml"
	petsData    = "../declaration/testdata/pets-data.yaml"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := filepath.Join(t.TempDir(), "out")
	argv := append([]string{name, "--log-level", "error"}, args...)
	argv = append(argv, "-o", out)

	err := newRootCmd().Run(context.Background(), argv)
	data, readErr := os.ReadFile(out)
	if readErr != nil && err == nil {
		t.Fatalf("no output written: %v", readErr)
	}
	return string(data), err
}

func loadPets(t *testing.T) *declaration.Registry {
	t.Helper()
	reg, err := declaration.LoadFile(context.Background(), petsRecipes)
	require.NoError(t, err)
	return reg
}

func TestDescribe(t *testing.T) {
	d := Describe(loadPets(t))
	assert.Equal(t, header.KindDescription, d.Kind)
	require.Len(t, d.Recipes, 3)

	var kitten RecipeDescription
	for _, r := range d.Recipes {
		if r.Name == "Kitten" {
			kitten = r
		}
	}
	assert.Equal(t, "Cat", kitten.Extends)

	names := make([]string, 0, len(kitten.Attributes))
	for _, a := range kitten.Attributes {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"name", "trained?", "tags", "nickname", "id", "age"}, names)
	assert.Equal(t, "false", kitten.Attributes[1].Default)
	assert.Equal(t, "generated", kitten.Attributes[4].Default)
	assert.Equal(t, "function", kitten.Attributes[5].Coercion)

	hdr, rows := d.Table()
	assert.Equal(t, []string{"RECIPE", "ATTRIBUTE", "MATCHER", "DEFAULT", "COERCION"}, hdr)
	assert.NotEmpty(t, rows)
}

func TestDescribeCommand(t *testing.T) {
	out, err := run(t, "describe", "-r", petsRecipes, "-t", "json")
	require.NoError(t, err)

	var d Description
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, header.KindDescription, d.Kind)
	assert.Len(t, d.Recipes, 3)
}

func TestDescribeCommandTable(t *testing.T) {
	out, err := run(t, "describe", "-r", petsRecipes, "-t", "table")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "RECIPE"))
	assert.Contains(t, out, "trained?")
}

func TestDescribeCommandErrors(t *testing.T) {
	_, err := run(t, "describe", "-r", petsRecipes, "-t", "xml")
	assert.Error(t, err)

	_, err = run(t, "describe", "-r", "testdata/missing.yaml")
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	res, err := Check(context.Background(), loadPets(t), []string{petsData, "testdata/missing.yaml"})
	require.NoError(t, err)

	assert.Equal(t, header.KindCheckResult, res.Kind)
	require.Len(t, res.Files, 2)
	assert.Equal(t, petsData, res.Files[0].Source)
	assert.NotEmpty(t, res.Files[1].Error)

	insts := res.Files[0].Instances
	require.Len(t, insts, 4)
	for i, inst := range insts {
		assert.Equal(t, i, inst.Index)
	}

	assert.True(t, insts[0].Valid)
	tags, ok := insts[0].Values.Get("tags")
	require.True(t, ok)
	assert.Equal(t, []any{"grumpy", "7"}, tags)

	assert.True(t, insts[1].Valid)
	age, _ := insts[1].Values.Get("age")
	assert.Equal(t, 2, age)

	assert.False(t, insts[3].Valid)
	require.NotNil(t, insts[3].Error)
	assert.Equal(t, string(cerrors.ErrCodeUnrecognizedAttribute), insts[3].Error.Code)
	assert.Contains(t, insts[3].Error.Message, "meow")

	s := res.Summary
	assert.Equal(t, CheckStatusFail, s.Status)
	assert.Equal(t, 2, s.Files)
	assert.Equal(t, 1, s.FileErrors)
	assert.Equal(t, 4, s.Instances)
	assert.Equal(t, 3, s.Valid)
	assert.Equal(t, 1, s.Invalid)

	_, rows := res.Table()
	assert.Len(t, rows, 5)
	assert.Equal(t, "error", rows[4][3])
}

func TestCheckCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Check(ctx, loadPets(t), []string{petsData})
	assert.Error(t, err)
}

func TestCheckCommand(t *testing.T) {
	out, err := run(t, "check", "-r", petsRecipes, "-t", "json", petsData)
	require.NoError(t, err)

	var res CheckResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, petsRecipes, res.RecipeSource)
	assert.Equal(t, 1, res.Summary.Invalid)

	_, err = run(t, "check", "-r", petsRecipes, "--fail-on-error", petsData)
	assert.ErrorContains(t, err, "1 invalid instance")

	_, err = run(t, "check", "-r", petsRecipes)
	assert.ErrorContains(t, err, "data file is required")
}

func TestSchemaCommand(t *testing.T) {
	out, err := run(t, "schema", "-r", petsRecipes, "--name", "Cat")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Cat", doc["title"])
	assert.Equal(t, []any{"name"}, doc["required"])
	assert.Equal(t, false, doc["additionalProperties"])

	out, err = run(t, "schema", "-r", petsRecipes)
	require.NoError(t, err)
	doc = nil
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	defs, ok := doc["$defs"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, defs, 3)
	owner := defs["Owner"].(map[string]any)
	assert.Equal(t, []any{"name", "pets"}, owner["required"])
}

func TestSchemasUnknownRecipe(t *testing.T) {
	_, err := Schemas(loadPets(t), "Dog")
	assert.True(t, cerrors.Is(err, cerrors.ErrCodeInvalidRequest))
}
