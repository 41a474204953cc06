// Package tree implements MOTLY's in-memory configuration tree: the Node
// type with its two orthogonal slots (value and properties), the
// insertion-ordered-but-order-independent-equality property map, and the
// structural operations (deep copy, clone-boundary sanitation, equality)
// the interpreter and tests build on.
package tree

import "github.com/malloydata/motly/lexer"

// Kind tags the variant held in a Value.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindString
	KindNumber
	KindBool
	KindDate
	KindArray
	KindLink
	KindEnv
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindDate:
		return "date"
	case KindArray:
		return "array"
	case KindLink:
		return "link"
	case KindEnv:
		return "env"
	default:
		return "unknown"
	}
}

// Value is the tagged union occupying a Node's value slot: exactly one of
// absent, string, number, boolean, date, array-of-children, link reference,
// or env reference.
type Value struct {
	Kind Kind

	Str  string // KindString; the env name for KindEnv
	Num  float64
	Bool bool
	Date lexer.Date

	Array []*Node // KindArray; never raw scalars, always child nodes

	Link lexer.LinkRef // KindLink
}

func Absent() Value                { return Value{Kind: KindAbsent} }
func String(s string) Value        { return Value{Kind: KindString, Str: s} }
func Number(n float64) Value       { return Value{Kind: KindNumber, Num: n} }
func Bool(b bool) Value            { return Value{Kind: KindBool, Bool: b} }
func DateValue(d lexer.Date) Value { return Value{Kind: KindDate, Date: d} }
func Array(elems []*Node) Value    { return Value{Kind: KindArray, Array: elems} }
func Link(ref lexer.LinkRef) Value { return Value{Kind: KindLink, Link: ref} }
func Env(name string) Value        { return Value{Kind: KindEnv, Str: name} }

// IsAbsent reports whether the value slot holds nothing.
func (v Value) IsAbsent() bool { return v.Kind == KindAbsent }

// IsLink reports whether this value occupies its slot as a link reference
// (mutually exclusive with having properties, per the tree invariant).
func (v Value) IsLink() bool { return v.Kind == KindLink }

// Equal is strict, non-enum structural equality: dates compare by their raw
// source text, not by instant. Schema `eq` enum comparison uses a separate,
// epoch-aware comparison (see package schema), since enum matching treats
// two dates naming the same instant as equal even when written differently.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindAbsent:
		return true
	case KindString, KindEnv:
		return v.Str == o.Str
	case KindNumber:
		return v.Num == o.Num
	case KindBool:
		return v.Bool == o.Bool
	case KindDate:
		return v.Date.Raw == o.Date.Raw
	case KindArray:
		if len(v.Array) != len(o.Array) {
			return false
		}
		for i := range v.Array {
			if !Equal(v.Array[i], o.Array[i]) {
				return false
			}
		}
		return true
	case KindLink:
		return v.Link.String() == o.Link.String()
	default:
		return false
	}
}
