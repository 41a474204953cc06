// Package ref implements the reference-resolution post-pass: a preorder
// walk over the finished tree that checks every link value resolves,
// without substituting anything (MOTLY references are non-substituting —
// this pass only validates).
package ref

import (
	"errors"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/malloydata/motly/diag"
	"github.com/malloydata/motly/lexer"
	"github.com/malloydata/motly/tree"
)

// Resolve walks root in preorder, tracking an ancestor stack, and reports
// one unresolved-reference diagnostic per link value that fails to
// resolve. It never mutates the tree.
func Resolve(root *tree.Node) []diag.Diagnostic {
	var diags []diag.Diagnostic
	var walk func(n *tree.Node, ancestors []*tree.Node, path []string)
	walk = func(n *tree.Node, ancestors []*tree.Node, path []string) {
		if n == nil {
			return
		}
		if n.Value.Kind == tree.KindLink {
			if err := check(root, ancestors, n.Value.Link); err != nil {
				diags = append(diags, diag.Semantic(diag.CodeUnresolvedReference, path, "%s", err.Error()))
			}
			return
		}
		nextAncestors := append(append([]*tree.Node(nil), ancestors...), n)
		if n.Value.Kind == tree.KindArray {
			for i, el := range n.Value.Array {
				walk(el, nextAncestors, appendIndex(path, i))
			}
		}
		if n.Properties != nil {
			for _, k := range n.Properties.Keys() {
				child, _ := n.Properties.Get(k)
				walk(child, nextAncestors, append(append([]string(nil), path...), k))
			}
		}
	}
	walk(root, nil, nil)
	return diags
}

func check(root *tree.Node, ancestors []*tree.Node, ref lexer.LinkRef) error {
	var start *tree.Node
	if ref.Ups == 0 {
		start = root
	} else {
		if ref.Ups > len(ancestors) {
			return errors.New("relative reference ascends above the root")
		}
		start = ancestors[len(ancestors)-ref.Ups]
	}

	cur := start
	for _, seg := range ref.Segments {
		if cur.Value.Kind == tree.KindLink {
			return errors.New("cannot follow path through a link")
		}
		child, ok := cur.Properties.Get(seg.Name)
		if !ok {
			return errors.New("no property named " + quote(seg.Name) + suggestion(seg.Name, cur.Properties.Keys()))
		}
		if seg.HasIndex {
			if child.Value.Kind != tree.KindArray || seg.Index < 0 || seg.Index >= len(child.Value.Array) {
				return errors.New("array index out of bounds")
			}
			child = child.Value.Array[seg.Index]
		}
		cur = child
	}
	return nil
}

func appendIndex(path []string, i int) []string {
	return append(append([]string(nil), path...), "["+itoa(i)+"]")
}

func quote(s string) string { return "\"" + s + "\"" }

// suggestion enriches a missing-property error with a did-you-mean hint
// against the sibling names actually present.
func suggestion(name string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) == 0 {
		// A typo that adds letters ("colour" for "color") only matches in
		// the other direction: the candidate inside the missing name.
		for _, c := range candidates {
			if fuzzy.MatchFold(c, name) {
				return " (did you mean " + quote(c) + "?)"
			}
		}
		return ""
	}
	return " (did you mean " + quote(ranks[0].Target) + "?)"
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var buf [20]byte
	pos := len(buf)
	n := i
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}
