package schema_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malloydata/motly/interp"
	"github.com/malloydata/motly/parser"
	"github.com/malloydata/motly/schema"
	"github.com/malloydata/motly/tree"
)

func build(t *testing.T, src string) *tree.Node {
	t.Helper()
	stmts, syntaxErr := parser.ParseProgram([]byte(src))
	require.Nil(t, syntaxErr)
	root := tree.Root()
	require.Empty(t, interp.Apply(root, stmts))
	return root
}

type diagish struct {
	code string
	path string
}

func flatten(t *testing.T, target, schemaRoot *tree.Node) []diagish {
	t.Helper()
	var out []diagish
	for _, d := range schema.Validate(target, schemaRoot) {
		out = append(out, diagish{code: string(d.Code), path: joinPath(d.Path)})
	}
	return out
}

func joinPath(path []string) string {
	s := ""
	for i, p := range path {
		if i > 0 {
			s += "."
		}
		s += p
	}
	return s
}

// Scenario: schema with a bare-array enum sub-type, a string-array
// required field, and an unknown additional property.
func TestScenarioSchemaEnumAndArrayAndUnknown(t *testing.T) {
	schemaSrc := `
Types.Lv = [debug, info, warn]
Required { name = string, items = "string[]" }
Optional { level = Lv }
`
	schemaRoot := build(t, schemaSrc)

	target := build(t, `
name = "ok"
items = [a, 3]
level = "trace"
extra = 1
`)

	diags := flatten(t, target, schemaRoot)
	var found = map[string]bool{}
	for _, d := range diags {
		found[d.code+"@"+d.path] = true
	}
	require.True(t, found["wrong-type@items.[1]"], "%v", diags)
	require.True(t, found["invalid-enum-value@level"], "%v", diags)
	require.True(t, found["unknown-property@extra"], "%v", diags)
}

func TestRequiredMissingReportsOnce(t *testing.T) {
	schemaRoot := build(t, `Required { name = string }`)
	target := build(t, `other = 1`)
	diags := flatten(t, target, schemaRoot)
	require.Len(t, diags, 2) // missing-required name + unknown-property other
}

func TestOptionalAbsentIsFine(t *testing.T) {
	schemaRoot := build(t, `Optional { nickname = string }`)
	target := build(t, ``)
	diags := flatten(t, target, schemaRoot)
	require.Empty(t, diags)
}

func TestAdditionalAllowPermitsExtras(t *testing.T) {
	schemaRoot := build(t, `
Required { name = string }
Additional = allow
`)
	target := build(t, `
name = "ok"
anything = 1
`)
	diags := flatten(t, target, schemaRoot)
	require.Empty(t, diags)
}

func TestAdditionalNamedTypeChecksExtras(t *testing.T) {
	schemaRoot := build(t, `
Required { name = string }
Additional = number
`)
	target := build(t, `
name = "ok"
count = "nope"
`)
	diags := flatten(t, target, schemaRoot)
	require.Len(t, diags, 1)
	require.Equal(t, "wrong-type", string(diags[0].code))
}

func TestOneOfMatchesFirstSatisfiedBranch(t *testing.T) {
	schemaRoot := build(t, `Required.value: { oneOf = [string, number] }`)

	ok := build(t, `value = "x"`)
	require.Empty(t, flatten(t, ok, schemaRoot))

	ok2 := build(t, `value = 1`)
	require.Empty(t, flatten(t, ok2, schemaRoot))

	bad := build(t, `value = true`)
	diags := flatten(t, bad, schemaRoot)
	require.Len(t, diags, 1)
	require.Equal(t, "wrong-type", string(diags[0].code))
}

func TestMatchesPattern(t *testing.T) {
	schemaRoot := build(t, `Required.code: { matches = "^[A-Z]{3}$" }`)

	ok := build(t, `code = "ABC"`)
	require.Empty(t, flatten(t, ok, schemaRoot))

	bad := build(t, `code = "abc"`)
	diags := flatten(t, bad, schemaRoot)
	require.Len(t, diags, 1)
	require.Equal(t, "pattern-mismatch", string(diags[0].code))
}

func TestNestedSchemaRecurses(t *testing.T) {
	schemaRoot := build(t, `
Required.address { Required { city = string } }
`)
	ok := build(t, `address { city = "NYC" }`)
	require.Empty(t, flatten(t, ok, schemaRoot))

	bad := build(t, `address { }`)
	diags := flatten(t, bad, schemaRoot)
	require.Len(t, diags, 1)
	require.Equal(t, "missing-required", string(diags[0].code))
}

func TestUnknownTypeNameSuggestsClosestMatch(t *testing.T) {
	schemaRoot := build(t, `
Types.Status = [up, down]
Required.state = Statuss
`)
	target := build(t, `state = "up"`)
	diags := flatten(t, target, schemaRoot)
	require.Len(t, diags, 1)
	require.Contains(t, diags[0].path, "state")
	require.Contains(t, schema.Validate(target, schemaRoot)[0].Message, `did you mean "Status"`)
}
