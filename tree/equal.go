package tree

// Equal compares two nodes structurally: values compare strictly (see
// Value.Equal), array elements compare in order, and properties compare
// order-independently (same key set, each key's node Equal) — property
// insertion order is bookkeeping only, while value-array order is
// significant.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Deleted != b.Deleted {
		return false
	}
	if !a.Value.Equal(b.Value) {
		return false
	}
	return propertiesEqual(a.Properties, b.Properties)
}

// EqualUnordered is an alias for Equal for callers that want to be
// explicit that property order doesn't matter; Equal already ignores it.
func EqualUnordered(a, b *Node) bool { return Equal(a, b) }

func propertiesEqual(a, b *Properties) bool {
	if a.Len() != b.Len() {
		return false
	}
	for _, k := range a.Keys() {
		av, _ := a.Get(k)
		bv, ok := b.Get(k)
		if !ok || !Equal(av, bv) {
			return false
		}
	}
	return true
}
