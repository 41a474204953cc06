package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malloydata/motly/ast"
	"github.com/malloydata/motly/parser"
	"github.com/malloydata/motly/tree"
)

func parse(t *testing.T, src string) []ast.Statement {
	t.Helper()
	stmts, err := parser.ParseProgram([]byte(src))
	require.Nil(t, err, "unexpected syntax error: %v", err)
	return stmts
}

func TestParsesAllSixStatementKinds(t *testing.T) {
	stmts := parse(t, `
a = 1
b := 2
c: { x = 1 }
d { y = 1 }
e
-f
-...
`)
	require.Len(t, stmts, 7)
	require.Equal(t, ast.SetValue, stmts[0].Kind)
	require.Equal(t, ast.AssignBoth, stmts[1].Kind)
	require.Equal(t, ast.ReplaceProperties, stmts[2].Kind)
	require.Equal(t, ast.MergeProperties, stmts[3].Kind)
	require.Equal(t, ast.Define, stmts[4].Kind)
	require.False(t, stmts[4].Deleted)
	require.Equal(t, ast.Define, stmts[5].Kind)
	require.True(t, stmts[5].Deleted)
	require.Equal(t, ast.ClearAll, stmts[6].Kind)
}

func TestDottedAndBacktickPaths(t *testing.T) {
	stmts := parse(t, "a.b.`c d` = 1")
	require.Equal(t, []string{"a", "b", "c d"}, stmts[0].Path)
}

func TestEqualsFollowedByBraceIsRejected(t *testing.T) {
	_, err := parser.ParseProgram([]byte(`a = { x = 1 }`))
	require.NotNil(t, err)
}

func TestArrayLiteralWithTrailingComma(t *testing.T) {
	stmts := parse(t, `a = [1, 2, 3,]`)
	require.Equal(t, tree.KindArray, stmts[0].Value.Kind)
	require.Len(t, stmts[0].Value.Array, 3)
}

func TestAtFormsTrueFalseNoneEnv(t *testing.T) {
	stmts := parse(t, `
a = @true
b = @false
c = @none
d = @env.HOME
`)
	require.Equal(t, tree.Bool(true), stmts[0].Value)
	require.Equal(t, tree.Bool(false), stmts[1].Value)
	require.True(t, stmts[2].Value.IsAbsent())
	require.Equal(t, tree.KindEnv, stmts[3].Value.Kind)
	require.Equal(t, "HOME", stmts[3].Value.Str)
}

func TestUnterminatedBlockIsSyntaxError(t *testing.T) {
	_, err := parser.ParseProgram([]byte(`a { x = 1`))
	require.NotNil(t, err)
}

func TestNestedBlockOnAssignBoth(t *testing.T) {
	stmts := parse(t, `a := $b { x = 1 }`)
	require.Equal(t, ast.AssignBoth, stmts[0].Kind)
	require.Len(t, stmts[0].Properties, 1)
}

func TestCommentsAreSkippedAsTrivia(t *testing.T) {
	stmts := parse(t, `
# a leading comment
a = 1 # trailing
`)
	require.Len(t, stmts, 1)
}
