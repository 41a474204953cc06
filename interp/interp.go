// Package interp implements MOTLY's interpreter: applying a parsed
// []ast.Statement to a mutable tree.Node root. Every statement kind's
// semantics (SetValue/AssignBoth/ReplaceProperties/MergeProperties/Define/
// ClearAll), auto-vivification, and clone-by-reference with clone-boundary
// sanitation live here.
package interp

import (
	"errors"

	"github.com/malloydata/motly/ast"
	"github.com/malloydata/motly/diag"
	"github.com/malloydata/motly/lexer"
	"github.com/malloydata/motly/tree"
)

// Interpreter applies statements to one owned tree, accumulating
// non-fatal semantic diagnostics as it goes: only syntax errors abort
// the pipeline.
type Interpreter struct {
	root  *tree.Node
	diags []diag.Diagnostic
}

// Apply runs stmts against root in source order and returns the
// accumulated diagnostics. root is mutated in place.
func Apply(root *tree.Node, stmts []ast.Statement) []diag.Diagnostic {
	it := &Interpreter{root: root}
	it.applyStatements(root, nil, stmts)
	return it.diags
}

func (it *Interpreter) applyStatements(scope *tree.Node, scopePath []string, stmts []ast.Statement) {
	for _, s := range stmts {
		it.applyStatement(scope, scopePath, s)
	}
}

func (it *Interpreter) applyStatement(scope *tree.Node, scopePath []string, s ast.Statement) {
	if s.Kind == ast.ClearAll {
		scope.Value = tree.Absent()
		scope.EnsureProperties()
		scope.Properties.Clear()
		return
	}

	parent, parentPath := autoVivify(scope, scopePath, s.Path[:len(s.Path)-1])
	key := s.Path[len(s.Path)-1]
	finalPath := append(append([]string(nil), parentPath...), key)

	switch s.Kind {
	case ast.SetValue:
		it.applySetValue(parent, key, finalPath, s)
	case ast.AssignBoth:
		it.applyAssignBoth(parent, parentPath, key, finalPath, s)
	case ast.ReplaceProperties:
		it.applyReplaceProperties(parent, key, finalPath, s)
	case ast.MergeProperties:
		it.applyMergeProperties(parent, key, finalPath, s)
	case ast.Define:
		it.applyDefine(parent, key, s)
	}
}

// autoVivify walks segments under node (already at scopePath), creating
// empty intermediate nodes as needed, and replacing any intermediate link
// occupant with an empty node (links are opaque and cannot be mutated
// through). It returns the node that directly owns the final segment's
// property slot, and the path to it.
func autoVivify(node *tree.Node, path []string, segments []string) (*tree.Node, []string) {
	cur := node
	curPath := append([]string(nil), path...)
	for _, seg := range segments {
		normalizeContainer(cur)
		child, ok := cur.Properties.Get(seg)
		if !ok {
			child = tree.New()
			cur.Properties.Set(seg, child)
		}
		cur = child
		curPath = append(curPath, seg)
	}
	normalizeContainer(cur)
	return cur, curPath
}

// normalizeContainer ensures n can hold properties: if it's currently
// link-occupied, the link is discarded in favor of an empty node.
func normalizeContainer(n *tree.Node) {
	if n.Value.Kind == tree.KindLink {
		n.Value = tree.Absent()
	}
	n.EnsureProperties()
}

func (it *Interpreter) applySetValue(parent *tree.Node, key string, finalPath []string, s ast.Statement) {
	if s.Value.Kind == tree.KindLink {
		parent.Properties.Set(key, &tree.Node{Value: s.Value})
		if len(s.Properties) > 0 {
			it.diags = append(it.diags, diag.Semantic(diag.CodeRefWithProperties, finalPath,
				"a reference value cannot carry a properties block; the block was ignored"))
		}
		return
	}

	existing, ok := parent.Properties.Get(key)
	var node *tree.Node
	if ok && existing.Value.Kind != tree.KindLink {
		node = existing
	} else {
		node = tree.New()
	}
	node.Value = s.Value
	node.Deleted = false
	parent.Properties.Set(key, node)
	if len(s.Properties) > 0 {
		it.applyStatements(node, finalPath, s.Properties)
	}
}

func (it *Interpreter) applyReplaceProperties(parent *tree.Node, key string, finalPath []string, s ast.Statement) {
	existing, ok := parent.Properties.Get(key)
	node := tree.New()
	if ok && existing.Value.Kind != tree.KindLink {
		node.Value = existing.Value
	}
	parent.Properties.Set(key, node)
	it.applyStatements(node, finalPath, s.Properties)
}

func (it *Interpreter) applyMergeProperties(parent *tree.Node, key string, finalPath []string, s ast.Statement) {
	existing, ok := parent.Properties.Get(key)
	var node *tree.Node
	if ok && existing.Value.Kind != tree.KindLink {
		node = existing
	} else {
		node = tree.New()
		parent.Properties.Set(key, node)
	}
	it.applyStatements(node, finalPath, s.Properties)
}

func (it *Interpreter) applyDefine(parent *tree.Node, key string, s ast.Statement) {
	if s.Deleted {
		parent.Properties.Set(key, tree.NewTombstone())
		return
	}
	if _, ok := parent.Properties.Get(key); !ok {
		parent.Properties.Set(key, tree.New())
	}
	// Idempotent: an existing node (or link) is left untouched.
}

var (
	errAscendsPastRoot  = errors.New("relative reference ascends above the root")
	errIntermediateLink = errors.New("path passes through a link, which cannot be followed transitively")
	errSegmentNotFound  = errors.New("path segment does not resolve")
	errBadArrayIndex    = errors.New("array index is out of range or not an array")
)

func (it *Interpreter) applyAssignBoth(parent *tree.Node, parentPath []string, key string, finalPath []string, s ast.Statement) {
	if s.Value.Kind != tree.KindLink {
		node := tree.New()
		node.Value = s.Value
		parent.Properties.Set(key, node)
		if len(s.Properties) > 0 {
			it.applyStatements(node, finalPath, s.Properties)
		}
		return
	}

	resolved, err := resolveLink(it.root, parentPath, s.Value.Link)
	if err != nil {
		it.diags = append(it.diags, diag.Semantic(diag.CodeUnresolvedCloneRef, finalPath,
			"cannot clone %s: %s", s.Value.Link.String(), err.Error()))
		parent.Properties.Set(key, tree.New())
		return
	}

	clone := resolved.DeepCopy()
	for _, relPath := range tree.SanitizeCloneBoundary(clone) {
		it.diags = append(it.diags, diag.Semantic(diag.CodeCloneRefOutOfScope,
			append(append([]string(nil), finalPath...), relPath...),
			"relative reference escapes the cloned subtree and was removed"))
	}

	parent.Properties.Set(key, clone)
	if len(s.Properties) > 0 {
		it.applyStatements(clone, finalPath, s.Properties)
	}
}

// resolveLink resolves a link reference issued from the context of
// parentPath (the path to the parent of the writeKey the AssignBoth
// statement targets): Ups carets ascend Ups levels above that parent
// before the segment walk begins; Ups == 0 starts the walk at root.
func resolveLink(root *tree.Node, parentPath []string, ref lexer.LinkRef) (*tree.Node, error) {
	var start *tree.Node
	if ref.Ups == 0 {
		start = root
	} else {
		if ref.Ups > len(parentPath) {
			return nil, errAscendsPastRoot
		}
		start = navigate(root, parentPath[:len(parentPath)-ref.Ups])
		if start == nil {
			return nil, errSegmentNotFound
		}
	}

	cur := start
	for _, seg := range ref.Segments {
		if cur.Value.Kind == tree.KindLink {
			return nil, errIntermediateLink
		}
		child, ok := cur.Properties.Get(seg.Name)
		if !ok {
			return nil, errSegmentNotFound
		}
		if seg.HasIndex {
			if child.Value.Kind != tree.KindArray || seg.Index < 0 || seg.Index >= len(child.Value.Array) {
				return nil, errBadArrayIndex
			}
			child = child.Value.Array[seg.Index]
		}
		cur = child
	}
	return cur, nil
}

// navigate walks a path of plain property names from root. It never
// follows links and never indexes arrays: it is only ever called with a
// scope path this interpreter itself built via autoVivify.
func navigate(root *tree.Node, path []string) *tree.Node {
	cur := root
	for _, seg := range path {
		child, ok := cur.Properties.Get(seg)
		if !ok {
			return nil
		}
		cur = child
	}
	return cur
}
