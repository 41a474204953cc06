package tree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malloydata/motly/lexer"
	"github.com/malloydata/motly/tree"
)

func TestEqualIsOrderIndependentOnProperties(t *testing.T) {
	a := tree.New()
	a.Properties.Set("x", &tree.Node{Value: tree.Number(1), Properties: tree.NewProperties()})
	a.Properties.Set("y", &tree.Node{Value: tree.Number(2), Properties: tree.NewProperties()})

	b := tree.New()
	b.Properties.Set("y", &tree.Node{Value: tree.Number(2), Properties: tree.NewProperties()})
	b.Properties.Set("x", &tree.Node{Value: tree.Number(1), Properties: tree.NewProperties()})

	require.True(t, tree.Equal(a, b))
}

func TestEqualOrderMattersOnArrays(t *testing.T) {
	a := tree.New()
	a.Value = tree.Array([]*tree.Node{
		{Value: tree.Number(1), Properties: tree.NewProperties()},
		{Value: tree.Number(2), Properties: tree.NewProperties()},
	})
	b := tree.New()
	b.Value = tree.Array([]*tree.Node{
		{Value: tree.Number(2), Properties: tree.NewProperties()},
		{Value: tree.Number(1), Properties: tree.NewProperties()},
	})
	require.False(t, tree.Equal(a, b))
}

func TestDeepCopyIsFullyDetached(t *testing.T) {
	n := tree.New()
	n.Properties.Set("x", &tree.Node{Value: tree.Number(1), Properties: tree.NewProperties()})

	cp := n.DeepCopy()
	child, _ := cp.Properties.Get("x")
	child.Value = tree.Number(99)

	orig, _ := n.Properties.Get("x")
	require.Equal(t, tree.Number(1), orig.Value)
}

func TestSanitizeCloneBoundaryErasesEscapingRelativeLink(t *testing.T) {
	root := tree.New()
	inner := &tree.Node{Value: tree.Link(lexer.LinkRef{Ups: 2}), Properties: tree.NewProperties()}
	root.Properties.Set("child", inner)

	escapes := tree.SanitizeCloneBoundary(root)
	require.Len(t, escapes, 1)
	require.Equal(t, []string{"child"}, escapes[0])
	require.True(t, inner.Value.IsAbsent())
}

func TestSanitizeCloneBoundaryKeepsInBoundsLink(t *testing.T) {
	root := tree.New()
	inner := &tree.Node{Value: tree.Link(lexer.LinkRef{Ups: 1}), Properties: tree.NewProperties()}
	root.Properties.Set("child", inner)

	escapes := tree.SanitizeCloneBoundary(root)
	require.Empty(t, escapes)
	require.Equal(t, tree.KindLink, inner.Value.Kind)
}

func TestSanitizeCloneBoundaryKeepsAbsoluteLink(t *testing.T) {
	root := tree.New()
	inner := &tree.Node{Value: tree.Link(lexer.LinkRef{Ups: 0}), Properties: tree.NewProperties()}
	root.Properties.Set("child", inner)

	escapes := tree.SanitizeCloneBoundary(root)
	require.Empty(t, escapes)
	require.Equal(t, tree.KindLink, inner.Value.Kind)
}

func TestPropertiesSetPreservesPositionOnOverwrite(t *testing.T) {
	p := tree.NewProperties()
	p.Set("a", tree.New())
	p.Set("b", tree.New())
	p.Set("a", &tree.Node{Value: tree.Number(5), Properties: tree.NewProperties()})

	require.Equal(t, []string{"a", "b"}, p.Keys())
}

func TestPropertiesDelete(t *testing.T) {
	p := tree.NewProperties()
	p.Set("a", tree.New())
	p.Set("b", tree.New())
	p.Delete("a")

	require.Equal(t, []string{"b"}, p.Keys())
	require.Equal(t, 1, p.Len())
}
