package dom

import (
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// NoteDeclaredEncoding records a charset label observed by the tree
// builder in a <meta charset="..."> or <meta http-equiv="Content-Type"
// content="...; charset=..."> tag. It resolves the label against the
// WHATWG encoding registry (via golang.org/x/text/encoding/htmlindex)
// to a canonical encoding name, but never decodes anything itself —
// byte-level decoding is an external collaborator's job (this module
// §6). The first recognized label wins; later ones are ignored, which
// mirrors how a real pre-scan of <head> behaves.
func (d *Document) NoteDeclaredEncoding(label string) {
	if d.DeclaredEncoding != "" {
		return
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		d.DeclaredEncodingLabel = label
		return
	}
	canonical, err := htmlindex.Name(enc)
	if err != nil {
		canonical = label
	}
	d.DeclaredEncodingLabel = label
	d.DeclaredEncoding = canonical
}

// MetaCharsetAttr extracts a charset label from a <meta> element's
// attributes, following the same two forms the HTML standard
// recognizes: a bare charset attribute, or a http-equiv Content-Type
// with a charset= parameter in its content.
func MetaCharsetAttr(attrs []Attribute) (string, bool) {
	var httpEquiv, content, charset string
	for _, a := range attrs {
		switch strings.ToLower(a.Name) {
		case "charset":
			charset = a.Value
		case "http-equiv":
			httpEquiv = strings.ToLower(strings.TrimSpace(a.Value))
		case "content":
			content = a.Value
		}
	}
	if charset != "" {
		return charset, true
	}
	if httpEquiv == "content-type" && content != "" {
		return extractCharsetParam(content)
	}
	return "", false
}

// extractCharsetParam implements the "algorithm for extracting a
// character encoding from a meta element" well enough for conformant
// inputs: case-insensitive search for "charset", skip whitespace/'=',
// then read a quoted or bare token.
func extractCharsetParam(content string) (string, bool) {
	lower := strings.ToLower(content)
	idx := strings.Index(lower, "charset")
	if idx == -1 {
		return "", false
	}
	rest := content[idx+len("charset"):]
	i := 0
	for i < len(rest) && isHTMLSpace(rest[i]) {
		i++
	}
	if i >= len(rest) || rest[i] != '=' {
		return "", false
	}
	i++
	for i < len(rest) && isHTMLSpace(rest[i]) {
		i++
	}
	if i >= len(rest) {
		return "", false
	}
	if rest[i] == '"' || rest[i] == '\'' {
		quote := rest[i]
		i++
		start := i
		for i < len(rest) && rest[i] != quote {
			i++
		}
		if i > start {
			return rest[start:i], true
		}
		return "", false
	}
	start := i
	for i < len(rest) && !isHTMLSpace(rest[i]) && rest[i] != ';' {
		i++
	}
	if i > start {
		return rest[start:i], true
	}
	return "", false
}

func isHTMLSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}
