package dom

import (
	"fmt"
	"io"
	"strings"
)

// PrintTree writes the stable debug tree dump for the subtree rooted
// at n, two spaces per indentation level. Attributes appear in
// `<tag k="v" k2="v2">` form when non-empty, in source order (the
// attribute list is ordered, and the tokenizer already dropped
// duplicates); text node data is quoted with spaces rendered as U+00B7
// and newlines as `\n`; comments render as `<!-- data -->`.
func (d *Document) PrintTree(w io.Writer, n Index, indent int) {
	node := d.Node(n)
	prefix := strings.Repeat("  ", indent)

	switch node.Kind {
	case KindDocument:
		fmt.Fprintf(w, "%sDocument\n", prefix)
	case KindElement:
		fmt.Fprintf(w, "%s<%s%s>\n", prefix, node.TagName, formatAttrs(node.Attrs))
	case KindText:
		fmt.Fprintf(w, "%s%s\n", prefix, quoteTextData(node.Data))
	case KindComment:
		fmt.Fprintf(w, "%s<!-- %s -->\n", prefix, node.Data)
	}

	for _, c := range d.Children(n) {
		d.PrintTree(w, c, indent+1)
	}
}

// TreeDump returns PrintTree's output as a string, for tests that want
// to diff it directly.
func (d *Document) TreeDump(n Index) string {
	var sb strings.Builder
	d.PrintTree(&sb, n, 0)
	return sb.String()
}

func formatAttrs(attrs []Attribute) string {
	if len(attrs) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, a := range attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Name)
		sb.WriteString(`="`)
		sb.WriteString(a.Value)
		sb.WriteByte('"')
	}
	return sb.String()
}

func quoteTextData(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case ' ':
			sb.WriteRune('·')
		case '\n':
			sb.WriteString(`\n`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
