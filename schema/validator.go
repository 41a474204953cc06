// Package schema implements MOTLY's schema validator: schema specs and
// type specs checked against a value tree.
package schema

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/malloydata/motly/diag"
	"github.com/malloydata/motly/tree"
)

// Validator runs one schema check. Its schemaRoot supplies the Types
// registry for custom-type lookup (custom types are root-only, no
// nesting).
type Validator struct {
	schemaRoot *tree.Node
	patterns   *patternCache
	diags      []diag.Diagnostic
}

// Validate checks target against schemaRoot, interpreted as a schema
// spec, and returns the accumulated diagnostics.
func Validate(target *tree.Node, schemaRoot *tree.Node) []diag.Diagnostic {
	v := &Validator{schemaRoot: schemaRoot, patterns: newPatternCache(64)}
	v.validateSchema(target, schemaRoot, nil)
	return v.diags
}

func (v *Validator) errf(code diag.Code, path []string, format string, args ...any) {
	v.diags = append(v.diags, diag.Semantic(code, path, format, args...))
}

func getChild(n *tree.Node, name string) (*tree.Node, bool) {
	if n == nil || n.Properties == nil {
		return nil, false
	}
	return n.Properties.Get(name)
}

func appendSeg(path []string, seg string) []string {
	return append(append([]string(nil), path...), seg)
}

// validateSchema applies a schema spec's Required/Optional/Additional
// policy to target, which must be a node (not a link).
func (v *Validator) validateSchema(target *tree.Node, spec *tree.Node, path []string) {
	if target == nil || target.Value.Kind == tree.KindLink {
		v.errf(diag.CodeWrongType, path, "expected a node, found a link")
		return
	}

	required, _ := getChild(spec, "Required")
	optional, _ := getChild(spec, "Optional")
	additional, hasAdditional := getChild(spec, "Additional")

	known := map[string]bool{}

	if required != nil && required.Properties != nil {
		for _, key := range required.Properties.Keys() {
			known[key] = true
			fieldSpec, _ := required.Properties.Get(key)
			child, ok := getChild(target, key)
			if !ok {
				v.errf(diag.CodeMissingRequired, appendSeg(path, key), "missing required property %q", key)
				continue
			}
			v.validateTypeSpec(child, fieldSpec, appendSeg(path, key))
		}
	}

	if optional != nil && optional.Properties != nil {
		for _, key := range optional.Properties.Keys() {
			known[key] = true
			fieldSpec, _ := optional.Properties.Get(key)
			child, ok := getChild(target, key)
			if !ok {
				continue
			}
			v.validateTypeSpec(child, fieldSpec, appendSeg(path, key))
		}
	}

	if target.Properties == nil {
		return
	}
	for _, key := range target.Properties.Keys() {
		if known[key] {
			continue
		}
		v.checkAdditional(target, key, additional, hasAdditional, requiredOptionalNames(required, optional), path)
	}
}

func requiredOptionalNames(required, optional *tree.Node) []string {
	var out []string
	if required != nil && required.Properties != nil {
		out = append(out, required.Properties.Keys()...)
	}
	if optional != nil && optional.Properties != nil {
		out = append(out, optional.Properties.Keys()...)
	}
	return out
}

func (v *Validator) checkAdditional(target *tree.Node, key string, additional *tree.Node, hasAdditional bool, knownNames []string, path []string) {
	child, _ := getChild(target, key)
	childPath := appendSeg(path, key)

	if !hasAdditional {
		v.unknownProperty(key, knownNames, childPath)
		return
	}
	if additional.Value.Kind == tree.KindAbsent {
		return // present but no value -> allow
	}
	if additional.Value.Kind != tree.KindString {
		v.unknownProperty(key, knownNames, childPath)
		return
	}
	switch additional.Value.Str {
	case "allow":
		return
	case "reject":
		v.unknownProperty(key, knownNames, childPath)
	default:
		v.validateNamedType(child, additional.Value.Str, childPath)
	}
}

func (v *Validator) unknownProperty(key string, knownNames []string, path []string) {
	v.errf(diag.CodeUnknownProperty, path, "unknown property %q%s", key, suggestion(key, knownNames))
}

// validateTypeSpec dispatches across the type-spec priority order:
// oneOf > eq > matches > named type > nested schema.
func (v *Validator) validateTypeSpec(target *tree.Node, spec *tree.Node, path []string) {
	if oneOf, ok := getChild(spec, "oneOf"); ok && oneOf.Value.Kind == tree.KindArray {
		v.validateOneOf(target, oneOf, path)
		return
	}
	if eq, ok := getChild(spec, "eq"); ok && eq.Value.Kind == tree.KindArray {
		v.validateEq(target, eq, path)
		return
	}
	// A type spec whose own value is directly an array is the same enum
	// shape written as sugar: `Lv = [debug, info, warn]` reads the same
	// as `Lv: { eq = [debug, info, warn] }`.
	if spec.Value.Kind == tree.KindArray {
		v.validateEq(target, spec, path)
		return
	}
	if matches, ok := getChild(spec, "matches"); ok && matches.Value.Kind == tree.KindString {
		v.validateMatches(target, spec, matches.Value.Str, path)
		return
	}
	if spec.Value.Kind == tree.KindString {
		v.validateNamedType(target, spec.Value.Str, path)
		return
	}
	v.validateSchema(target, spec, path)
}

func (v *Validator) validateOneOf(target *tree.Node, oneOf *tree.Node, path []string) {
	var names []string
	for _, elem := range oneOf.Value.Array {
		if elem.Value.Kind != tree.KindString {
			continue
		}
		names = append(names, elem.Value.Str)
		probe := &Validator{schemaRoot: v.schemaRoot, patterns: v.patterns}
		probe.validateNamedType(target, elem.Value.Str, path)
		if len(probe.diags) == 0 {
			return
		}
	}
	v.errf(diag.CodeWrongType, path, "value does not match any of [%s]", strings.Join(names, ", "))
}

func (v *Validator) validateEq(target *tree.Node, eq *tree.Node, path []string) {
	for _, elem := range eq.Value.Array {
		if valuesEqual(target.Value, elem.Value) {
			return
		}
	}
	v.errf(diag.CodeInvalidEnumValue, path, "value is not one of the allowed enum values")
}

func valuesEqual(a, b tree.Value) bool {
	if a.Kind == tree.KindDate && b.Kind == tree.KindDate {
		return a.Date.EpochSeconds() == b.Date.EpochSeconds()
	}
	return a.Equal(b)
}

func (v *Validator) validateMatches(target *tree.Node, spec *tree.Node, pattern string, path []string) {
	if spec.Value.Kind == tree.KindString && spec.Value.Str != "" {
		v.validateNamedType(target, spec.Value.Str, path)
	}
	re, err := v.patterns.compile(pattern)
	if err != nil {
		v.errf(diag.CodeInvalidSchema, path, "invalid regular expression %q: %s", pattern, err.Error())
		return
	}
	if target.Value.Kind != tree.KindString || !re.MatchString(target.Value.Str) {
		v.errf(diag.CodePatternMismatch, path, "value does not match pattern %q", pattern)
	}
}

func (v *Validator) validateNamedType(target *tree.Node, name string, path []string) {
	if name != "any" && target.Value.Kind == tree.KindLink {
		v.errf(diag.CodeWrongType, path, "expected %s, found a link", name)
		return
	}

	switch name {
	case "any":
		return
	case "flag":
		return
	case "tag":
		return
	case "string":
		if target.Value.Kind != tree.KindString {
			v.errf(diag.CodeWrongType, path, "expected string, found %s", target.Value.Kind)
		}
		return
	case "number":
		if target.Value.Kind != tree.KindNumber {
			v.errf(diag.CodeWrongType, path, "expected number, found %s", target.Value.Kind)
		}
		return
	case "boolean":
		if target.Value.Kind != tree.KindBool {
			v.errf(diag.CodeWrongType, path, "expected boolean, found %s", target.Value.Kind)
		}
		return
	case "date":
		if target.Value.Kind != tree.KindDate {
			v.errf(diag.CodeWrongType, path, "expected date, found %s", target.Value.Kind)
		}
		return
	}

	if strings.HasSuffix(name, "[]") {
		elemType := strings.TrimSuffix(name, "[]")
		if target.Value.Kind != tree.KindArray {
			v.errf(diag.CodeWrongType, path, "expected %s, found %s", name, target.Value.Kind)
			return
		}
		for i, elem := range target.Value.Array {
			v.validateNamedType(elem, elemType, appendSeg(path, "["+itoa(i)+"]"))
		}
		return
	}

	types, _ := getChild(v.schemaRoot, "Types")
	if fieldSpec, ok := getChild(types, name); ok {
		v.validateTypeSpec(target, fieldSpec, path)
		return
	}

	var registered []string
	if types != nil && types.Properties != nil {
		registered = types.Properties.Keys()
	}
	v.errf(diag.CodeInvalidSchema, path, "unknown type %q%s", name, suggestion(name, registered))
}

func suggestion(name string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) == 0 {
		// A typo that adds letters ("Statuss" for "Status") only matches in
		// the other direction: the candidate inside the unknown name.
		for _, c := range candidates {
			if fuzzy.MatchFold(c, name) {
				return " (did you mean " + "\"" + c + "\"?)"
			}
		}
		return ""
	}
	return " (did you mean " + "\"" + ranks[0].Target + "\"?)"
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
