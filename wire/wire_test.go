package wire_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malloydata/motly/interp"
	"github.com/malloydata/motly/parser"
	"github.com/malloydata/motly/tree"
	"github.com/malloydata/motly/wire"
)

func build(t *testing.T, src string) *tree.Node {
	t.Helper()
	stmts, syntaxErr := parser.ParseProgram([]byte(src))
	require.Nil(t, syntaxErr)
	root := tree.Root()
	require.Empty(t, interp.Apply(root, stmts))
	return root
}

func TestRoundTripScalars(t *testing.T) {
	root := build(t, `
s = "hi"
n = 3.5
b = @true
d = @2024-01-02
`)
	out, err := wire.Encode(root)
	require.NoError(t, err)

	back, err := wire.Decode(out)
	require.NoError(t, err)
	require.True(t, tree.Equal(root, back))
}

func TestRoundTripArraysAndNested(t *testing.T) {
	root := build(t, `
items = [1, "two", @false]
nested { a { b = 1 } }
`)
	out, err := wire.Encode(root)
	require.NoError(t, err)

	back, err := wire.Decode(out)
	require.NoError(t, err)
	require.True(t, tree.Equal(root, back))
}

func TestRoundTripLinkAndEnv(t *testing.T) {
	root := build(t, `
a = 1
b = $a
c = @env.HOME
`)
	out, err := wire.Encode(root)
	require.NoError(t, err)

	back, err := wire.Decode(out)
	require.NoError(t, err)
	require.True(t, tree.Equal(root, back))
}

func TestPropertyOrderDoesNotAffectEquality(t *testing.T) {
	a := build(t, `x = 1
y = 2`)
	b := build(t, `y = 2
x = 1`)
	require.True(t, tree.Equal(a, b))
}

func TestDecodeRejectsNonObjectRoot(t *testing.T) {
	_, err := wire.Decode([]byte(`"not an object"`))
	require.Error(t, err)
}

func TestDecodeRejectsBadDate(t *testing.T) {
	_, err := wire.Decode([]byte(`{"eq": {"$date": "not-a-date"}}`))
	require.Error(t, err)
}
