// Package wire implements MOTLY's JSON wire form for a tree.Node:
// {"eq", "properties", "deleted"} with $date/linkTo/env value tags
// disambiguating the non-JSON-native value kinds.
package wire

import (
	"encoding/json"
	"fmt"

	"github.com/malloydata/motly/lexer"
	"github.com/malloydata/motly/tree"
)

// Encode renders n as pretty-printed wire JSON.
func Encode(n *tree.Node) ([]byte, error) {
	return json.MarshalIndent(toWire(n), "", "  ")
}

// Decode parses wire JSON into a tree.Node. Property iteration order is
// not recoverable across a round trip (JSON objects are unordered), which
// is harmless: tree.Equal compares properties order-independently.
func Decode(data []byte) (*tree.Node, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("wire: expected a JSON object at the root")
	}
	return fromWire(m)
}

func toWire(n *tree.Node) map[string]any {
	out := map[string]any{}
	if n.Deleted {
		out["deleted"] = true
	}
	if !n.Value.IsAbsent() {
		out["eq"] = toWireValue(n.Value)
	}
	if n.Properties != nil && n.Properties.Len() > 0 {
		props := map[string]any{}
		for _, k := range n.Properties.Keys() {
			child, _ := n.Properties.Get(k)
			props[k] = toWire(child)
		}
		out["properties"] = props
	}
	return out
}

func toWireValue(v tree.Value) any {
	switch v.Kind {
	case tree.KindString:
		return v.Str
	case tree.KindNumber:
		return v.Num
	case tree.KindBool:
		return v.Bool
	case tree.KindDate:
		return map[string]any{"$date": v.Date.Raw}
	case tree.KindArray:
		arr := make([]any, len(v.Array))
		for i, el := range v.Array {
			arr[i] = toWire(el)
		}
		return arr
	case tree.KindLink:
		return map[string]any{"linkTo": v.Link.String()}
	case tree.KindEnv:
		return map[string]any{"env": v.Str}
	default:
		return nil
	}
}

func fromWire(m map[string]any) (*tree.Node, error) {
	n := tree.New()
	if d, ok := m["deleted"]; ok {
		b, ok := d.(bool)
		if !ok {
			return nil, fmt.Errorf("wire: \"deleted\" must be a boolean")
		}
		n.Deleted = b
	}
	if eq, ok := m["eq"]; ok {
		v, err := fromWireValue(eq)
		if err != nil {
			return nil, err
		}
		n.Value = v
	}
	if raw, ok := m["properties"]; ok {
		pm, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("wire: \"properties\" must be an object")
		}
		for key, rawChild := range pm {
			childMap, ok := rawChild.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("wire: property %q must be an object", key)
			}
			child, err := fromWire(childMap)
			if err != nil {
				return nil, err
			}
			n.Properties.Set(key, child)
		}
	}
	return n, nil
}

func fromWireValue(raw any) (tree.Value, error) {
	switch val := raw.(type) {
	case nil:
		return tree.Absent(), nil
	case string:
		return tree.String(val), nil
	case float64:
		return tree.Number(val), nil
	case bool:
		return tree.Bool(val), nil
	case []any:
		elems := make([]*tree.Node, len(val))
		for i, el := range val {
			m, ok := el.(map[string]any)
			if !ok {
				return tree.Value{}, fmt.Errorf("wire: array element %d must be an object", i)
			}
			child, err := fromWire(m)
			if err != nil {
				return tree.Value{}, err
			}
			elems[i] = child
		}
		return tree.Array(elems), nil
	case map[string]any:
		if tagged, ok := val["$date"]; ok {
			s, ok := tagged.(string)
			if !ok {
				return tree.Value{}, fmt.Errorf("wire: \"$date\" must be a string")
			}
			return decodeDate(s)
		}
		if tagged, ok := val["linkTo"]; ok {
			s, ok := tagged.(string)
			if !ok {
				return tree.Value{}, fmt.Errorf("wire: \"linkTo\" must be a string")
			}
			return decodeLink(s)
		}
		if tagged, ok := val["env"]; ok {
			s, ok := tagged.(string)
			if !ok {
				return tree.Value{}, fmt.Errorf("wire: \"env\" must be a string")
			}
			return tree.Env(s), nil
		}
		return tree.Value{}, fmt.Errorf("wire: unrecognized value object")
	default:
		return tree.Value{}, fmt.Errorf("wire: unsupported JSON value type %T", raw)
	}
}

func decodeDate(s string) (tree.Value, error) {
	c := lexer.NewCursor([]byte(s))
	d, err := lexer.ReadDate(c, 0)
	if err != nil {
		return tree.Value{}, fmt.Errorf("wire: invalid $date %q: %w", s, err)
	}
	if !c.Eof() {
		return tree.Value{}, fmt.Errorf("wire: trailing characters in $date %q", s)
	}
	return tree.DateValue(d), nil
}

func decodeLink(s string) (tree.Value, error) {
	c := lexer.NewCursor([]byte(s))
	if !c.Consume("$") {
		return tree.Value{}, fmt.Errorf("wire: linkTo %q must start with '$'", s)
	}
	ref, err := lexer.ReadReference(c, 0)
	if err != nil {
		return tree.Value{}, fmt.Errorf("wire: invalid linkTo %q: %w", s, err)
	}
	if !c.Eof() {
		return tree.Value{}, fmt.Errorf("wire: trailing characters in linkTo %q", s)
	}
	return tree.Link(ref), nil
}
