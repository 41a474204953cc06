package tree

// SanitizeCloneBoundary walks a freshly deep-copied subtree and erases any
// relative (ups > 0) link whose ups count exceeds the depth at which it
// appears, relative to root (root itself is depth 0; each property or
// array-element hop adds one). An absolute link (ups == 0) is always kept.
//
// Each erased link's slot becomes an empty node (absent value, empty
// properties), and its path relative to root is recorded so the caller can
// build a clone-reference-out-of-scope diagnostic at the installed path.
//
// This is the second half of clone-by-reference: a clone must be a
// self-contained snapshot, so a relative pointer that would have reached
// outside the cloned data is unsound and is dropped rather than silently
// re-bound to something semantically unrelated.
func SanitizeCloneBoundary(root *Node) [][]string {
	var escapes [][]string
	var walk func(n *Node, depth int, path []string)
	walk = func(n *Node, depth int, path []string) {
		if n == nil {
			return
		}
		if n.Value.Kind == KindLink {
			if n.Value.Link.Ups > depth {
				n.Value = Absent()
				n.EnsureProperties()
				escapes = append(escapes, append([]string(nil), path...))
			}
			return
		}
		if n.Value.Kind == KindArray {
			for i, el := range n.Value.Array {
				walk(el, depth+1, appendPath(path, indexSegment(i)))
			}
		}
		if n.Properties != nil {
			for _, k := range n.Properties.Keys() {
				child, _ := n.Properties.Get(k)
				walk(child, depth+1, appendPath(path, k))
			}
		}
	}
	walk(root, 0, nil)
	return escapes
}

func appendPath(path []string, seg string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = seg
	return out
}

func indexSegment(i int) string {
	return "[" + itoa(i) + "]"
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}
