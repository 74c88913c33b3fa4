package style

import "strings"

// maxCustomPropertyDepth bounds var() substitution recursion so a
// long (but acyclic) dependency chain terminates deterministically
// instead of growing the call stack unbounded.
const maxCustomPropertyDepth = 32

// splitVarArgs splits the inside of `var(...)` into the property name
// and an optional fallback, at the first top-level comma (a comma
// nested inside a further var(...) fallback doesn't count).
func splitVarArgs(args string) (name, fallback string, hasFallback bool) {
	depth := 0
	for i, r := range args {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				return strings.TrimSpace(args[:i]), strings.TrimSpace(args[i+1:]), true
			}
		}
	}
	return strings.TrimSpace(args), "", false
}

// findVarCall locates the next `var(` call in value starting at or
// after from, returning the byte range of its balanced argument list
// (the text between the parens) and whether one was found.
func findVarCall(value string, from int) (argStart, argEnd int, found bool) {
	idx := strings.Index(value[from:], "var(")
	if idx < 0 {
		return 0, 0, false
	}
	start := from + idx + len("var(")
	depth := 1
	for i := start; i < len(value); i++ {
		switch value[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return start, i, true
			}
		}
	}
	return 0, 0, false
}

// replaceVarRefs substitutes every `var(--name[, fallback])` call in
// value using lookup, which supplies the current text of a custom
// property (ok=false if it is undefined or was dropped for being
// cyclic). A var() reference with no lookup hit falls back to its
// fallback argument if present, otherwise the whole declaration is
// invalid and replaceVarRefs reports ok=false (CSS Custom Properties
// §4's guaranteed-invalid value rule).
func replaceVarRefs(value string, lookup func(name string) (string, bool)) (string, bool) {
	var b strings.Builder
	pos := 0
	for {
		argStart, argEnd, found := findVarCall(value, pos)
		if !found {
			b.WriteString(value[pos:])
			return b.String(), true
		}
		callStart := strings.LastIndex(value[:argStart], "var(")
		b.WriteString(value[pos:callStart])

		name, fallback, hasFallback := splitVarArgs(value[argStart:argEnd])
		resolved, ok := lookup(name)
		switch {
		case ok:
			b.WriteString(resolved)
		case hasFallback:
			sub, subOk := replaceVarRefs(fallback, lookup)
			if !subOk {
				return "", false
			}
			b.WriteString(sub)
		default:
			return "", false
		}
		pos = argEnd + 1
	}
}

// resolveCustomProp resolves a single custom property's value to a
// var()-free string, detecting cycles via visiting (shared, mutated
// across the recursion so mutual cycles like --a:var(--b); --b:
// var(--a) are caught from either entry point) and bailing out past
// maxCustomPropertyDepth.
func resolveCustomProp(raw map[string]string, name string, visiting, cyclic map[string]bool, depth int) (string, bool) {
	if cyclic[name] {
		return "", false
	}
	if visiting[name] {
		cyclic[name] = true
		return "", false
	}
	value, defined := raw[name]
	if !defined {
		return "", false
	}
	if depth > maxCustomPropertyDepth {
		cyclic[name] = true
		return "", false
	}

	visiting[name] = true
	resolved, ok := replaceVarRefs(value, func(dep string) (string, bool) {
		return resolveCustomProp(raw, dep, visiting, cyclic, depth+1)
	})
	delete(visiting, name)

	if !ok {
		cyclic[name] = true
		return "", false
	}
	return resolved, true
}

// ResolveCustomProperties rewrites style.CustomProperties in place,
// substituting every var() reference to another custom property and
// dropping (per CSS Custom Properties §4's guaranteed-invalid rule)
// any property whose value is cyclic or references an undefined
// property with no usable fallback.
func ResolveCustomProperties(style *ComputedStyle) {
	raw := make(map[string]string, len(style.CustomProperties))
	for k, v := range style.CustomProperties {
		raw[k] = v
	}

	visiting := make(map[string]bool)
	cyclic := make(map[string]bool)
	resolved := make(map[string]string, len(raw))

	for name := range raw {
		if v, ok := resolveCustomProp(raw, name, visiting, cyclic, 0); ok {
			resolved[name] = v
		}
	}

	style.CustomProperties = resolved
}

// ApplyCustomProperty records a `--name: value` declaration's raw
// text; substitution happens later, in one pass, via
// ResolveCustomProperties.
func ApplyCustomProperty(style *ComputedStyle, name, value string) {
	style.CustomProperties[name] = value
}

// SubstituteVarsInValue resolves var() references in an ordinary
// (non-custom-property) declaration's value against the custom
// properties recorded on style so far, for use while applying a
// declaration during cascade. Those values are still raw text
// (ResolveCustomProperties runs after every declaration is applied), so
// a var() inside a substituted value is not expanded. Returns ok=false
// if the value is left guaranteed-invalid.
func SubstituteVarsInValue(style *ComputedStyle, value string) (string, bool) {
	if !strings.Contains(value, "var(") {
		return value, true
	}
	return replaceVarRefs(value, func(name string) (string, bool) {
		v, ok := style.CustomProperties[name]
		return v, ok
	})
}
