package diag_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malloydata/motly/diag"
)

func TestSemanticFormatsPathInString(t *testing.T) {
	d := diag.Semantic(diag.CodeUnknownProperty, []string{"a", "[1]", "b"}, "unknown property %q", "b")
	require.Equal(t, `unknown-property: unknown property "b" (at a.[1].b)`, d.String())
}

func TestSyntaxHasNoPath(t *testing.T) {
	d := diag.Syntax(diag.Span{}, "boom")
	require.Equal(t, "tag-parse-syntax-error: boom", d.String())
}

func TestSemanticCopiesPathSlice(t *testing.T) {
	path := []string{"a"}
	d := diag.Semantic(diag.CodeWrongType, path, "x")
	path[0] = "mutated"
	require.Equal(t, "a", d.Path[0])
}
