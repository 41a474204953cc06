package tree

// Properties is an insertion-ordered map from property name to child Node.
// Writing to an existing key keeps that key's original position; equality
// between two Properties is defined order-independently by package-level
// Equal / EqualUnordered.
type Properties struct {
	keys []string
	m    map[string]*Node
}

// NewProperties returns an empty property map.
func NewProperties() *Properties {
	return &Properties{m: make(map[string]*Node)}
}

// Get looks up a property by name.
func (p *Properties) Get(key string) (*Node, bool) {
	if p == nil {
		return nil, false
	}
	n, ok := p.m[key]
	return n, ok
}

// Set installs or overwrites a property. If key already exists its
// position in iteration order is preserved; new keys are appended.
func (p *Properties) Set(key string, n *Node) {
	if _, exists := p.m[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.m[key] = n
}

// Delete removes a property entirely. Define(deleted=true) does not use it:
// it tombstones in place instead.
func (p *Properties) Delete(key string) {
	if _, exists := p.m[key]; !exists {
		return
	}
	delete(p.m, key)
	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the property names in insertion order. The returned slice
// is a copy; callers may not mutate it to affect the map.
func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len returns the number of properties.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Clone deep-copies the map and every child node it holds.
func (p *Properties) Clone() *Properties {
	cp := NewProperties()
	if p == nil {
		return cp
	}
	for _, k := range p.keys {
		cp.Set(k, p.m[k].DeepCopy())
	}
	return cp
}

// Clear removes every property, in place.
func (p *Properties) Clear() {
	p.keys = nil
	p.m = make(map[string]*Node)
}
