package html

import (
	"testing"

	"github.com/AlvinKuruvilla/koala/dom"
)

func parse(t *testing.T, input string) *dom.Document {
	t.Helper()
	doc, issues := ParseHTML([]rune(input))
	for _, iss := range issues {
		if iss.IsError {
			t.Logf("parse issue at token %d: %s", iss.TokenIndex, iss.Message)
		}
	}
	return doc
}

// htmlElement returns the document's <html> element (the parser
// synthesizes one when the source has none), or NoIndex if there is none.
func htmlElement(doc *dom.Document) dom.Index {
	for _, c := range doc.Children(dom.ROOT) {
		if doc.TagName(c) == "html" {
			return c
		}
	}
	return dom.NoIndex
}

func childByTag(doc *dom.Document, parent dom.Index, tag string) (dom.Index, bool) {
	for _, c := range doc.Children(parent) {
		if doc.TagName(c) == tag {
			return c, true
		}
	}
	return dom.NoIndex, false
}

func textContent(doc *dom.Document, idx dom.Index) string {
	var out string
	var walk func(dom.Index)
	walk = func(n dom.Index) {
		node := doc.Node(n)
		if node.Kind == dom.KindText {
			out += node.Data
			return
		}
		for _, c := range doc.Children(n) {
			walk(c)
		}
	}
	walk(idx)
	return out
}

func TestParseAlwaysSynthesizesHtmlHeadBody(t *testing.T) {
	doc := parse(t, "<p>Hello</p>")

	html := htmlElement(doc)
	if html == dom.NoIndex {
		t.Fatalf("expected synthesized <html> element")
	}
	if _, ok := childByTag(doc, html, "head"); !ok {
		t.Fatalf("expected synthesized <head> element")
	}
	body, ok := childByTag(doc, html, "body")
	if !ok {
		t.Fatalf("expected synthesized <body> element")
	}
	p, ok := childByTag(doc, body, "p")
	if !ok {
		t.Fatalf("expected <p> inside body")
	}
	if got := textContent(doc, p); got != "Hello" {
		t.Errorf("expected text %q, got %q", "Hello", got)
	}
}

func TestParseDoctypeAndAttributes(t *testing.T) {
	doc := parse(t, `<!DOCTYPE html><div id="main" class="container active">`)

	if !doc.Doctype.Present {
		t.Fatalf("expected doctype to be recorded")
	}
	if doc.Doctype.Name != "html" {
		t.Errorf("expected doctype name %q, got %q", "html", doc.Doctype.Name)
	}

	html := htmlElement(doc)
	body, ok := childByTag(doc, html, "body")
	if !ok {
		t.Fatalf("expected <body>")
	}
	div, ok := childByTag(doc, body, "div")
	if !ok {
		t.Fatalf("expected <div>")
	}
	node := doc.Node(div)
	if v, _ := node.GetAttribute("id"); v != "main" {
		t.Errorf("expected id=main, got %q", v)
	}
	if v, _ := node.GetAttribute("class"); v != "container active" {
		t.Errorf("expected class='container active', got %q", v)
	}
}

func TestParseVoidElementsDoNotNest(t *testing.T) {
	doc := parse(t, "<div><img src='test.jpg'><p>Text</p></div>")

	html := htmlElement(doc)
	body, _ := childByTag(doc, html, "body")
	div, ok := childByTag(doc, body, "div")
	if !ok {
		t.Fatalf("expected <div>")
	}

	children := doc.Children(div)
	if len(children) != 2 {
		t.Fatalf("expected 2 children of div (img, p), got %d", len(children))
	}
	img := doc.Node(children[0])
	if img.TagName != "img" {
		t.Errorf("expected img, got %s", img.TagName)
	}
	if len(doc.Children(children[0])) != 0 {
		t.Errorf("expected img to have no children")
	}
	if doc.Node(children[1]).TagName != "p" {
		t.Errorf("expected p, got %s", doc.Node(children[1]).TagName)
	}
}

// TestParseRAWTEXTContainment exercises the tokenizer's RAWTEXT state
// switch driven through the Text insertion mode: everything between
// <style> and its matching end tag, including markup-shaped text, is
// a single text node under <style>, not an element.
func TestParseRAWTEXTContainment(t *testing.T) {
	doc := parse(t, "<style><div>Z</div></style>")

	html := htmlElement(doc)
	head, ok := childByTag(doc, html, "head")
	if !ok {
		t.Fatalf("expected <head>")
	}
	style, ok := childByTag(doc, head, "style")
	if !ok {
		t.Fatalf("expected <style> in head")
	}
	children := doc.Children(style)
	if len(children) != 1 {
		t.Fatalf("expected style to contain exactly one text node, got %d children", len(children))
	}
	if doc.Node(children[0]).Kind != dom.KindText {
		t.Fatalf("expected style's child to be a text node")
	}
	if got := doc.Node(children[0]).Data; got != "<div>Z</div>" {
		t.Errorf("expected raw text %q, got %q", "<div>Z</div>", got)
	}
}

// TestParseFosterParenting exercises §13.2.6.1's table foster
// parenting: character data appearing where only table content is
// allowed is relocated to just before the table rather than being
// inserted into it.
func TestParseFosterParenting(t *testing.T) {
	doc := parse(t, "<table>X<tr><td>Y</td></tr></table>")

	html := htmlElement(doc)
	body, _ := childByTag(doc, html, "body")

	var tableIdx dom.Index = dom.NoIndex
	var fosteredText string
	for _, c := range doc.Children(body) {
		node := doc.Node(c)
		if node.Kind == dom.KindText {
			fosteredText += node.Data
		}
		if node.TagName == "table" {
			tableIdx = c
		}
	}
	if tableIdx == dom.NoIndex {
		t.Fatalf("expected <table> as a child of body")
	}
	if fosteredText != "X" {
		t.Errorf("expected foster-parented text %q as a sibling of table, got %q", "X", fosteredText)
	}

	tbody, ok := childByTag(doc, tableIdx, "tbody")
	if !ok {
		t.Fatalf("expected synthesized <tbody>")
	}
	tr, ok := childByTag(doc, tbody, "tr")
	if !ok {
		t.Fatalf("expected <tr>")
	}
	td, ok := childByTag(doc, tr, "td")
	if !ok {
		t.Fatalf("expected <td>")
	}
	if got := textContent(doc, td); got != "Y" {
		t.Errorf("expected cell text %q, got %q", "Y", got)
	}
}

// TestParseAdoptionAgency exercises the mis-nested formatting element
// case that §13.2.6.4.7's adoption agency algorithm exists to handle:
// <b> opened, <i> opened inside it, </b> closes out of order, then
// more content follows inside what should still be <i>.
func TestParseAdoptionAgency(t *testing.T) {
	doc := parse(t, "<p>1<b>2<i>3</b>4</i>5</p>")

	html := htmlElement(doc)
	body, _ := childByTag(doc, html, "body")
	p, ok := childByTag(doc, body, "p")
	if !ok {
		t.Fatalf("expected <p>")
	}

	if got := textContent(doc, p); got != "12345" {
		t.Errorf("expected full text %q inside <p>, got %q", "12345", got)
	}

	b, ok := childByTag(doc, p, "b")
	if !ok {
		t.Fatalf("expected <b> as a child of <p>")
	}
	if got := textContent(doc, b); got != "23" {
		t.Errorf("expected <b> text %q, got %q", "23", got)
	}

	// The adoption agency algorithm splits the original <i> in two: one
	// copy nested inside <b> (holding "3"), and a second copy that is a
	// sibling of <b> inside <p> (holding "4"), per the reparenting rules.
	iInB, ok := childByTag(doc, b, "i")
	if !ok {
		t.Fatalf("expected <i> nested inside <b>")
	}
	if got := textContent(doc, iInB); got != "3" {
		t.Errorf("expected inner <i> text %q, got %q", "3", got)
	}

	iAfterB, ok := childByTag(doc, p, "i")
	if !ok {
		t.Fatalf("expected a second <i> as a sibling of <b> inside <p>")
	}
	if got := textContent(doc, iAfterB); got != "4" {
		t.Errorf("expected outer <i> text %q, got %q", "4", got)
	}
}

func TestParseMixedContent(t *testing.T) {
	doc := parse(t, "<p>Hello <strong>World</strong>!</p>")

	html := htmlElement(doc)
	body, _ := childByTag(doc, html, "body")
	p, ok := childByTag(doc, body, "p")
	if !ok {
		t.Fatalf("expected <p>")
	}

	children := doc.Children(p)
	if len(children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(children))
	}
	if doc.Node(children[0]).Data != "Hello " {
		t.Errorf("expected %q, got %q", "Hello ", doc.Node(children[0]).Data)
	}
	strong := children[1]
	if doc.Node(strong).TagName != "strong" {
		t.Errorf("expected strong, got %s", doc.Node(strong).TagName)
	}
	if got := textContent(doc, strong); got != "World" {
		t.Errorf("expected %q, got %q", "World", got)
	}
	if doc.Node(children[2]).Data != "!" {
		t.Errorf("expected %q, got %q", "!", doc.Node(children[2]).Data)
	}
}

// checkWellFormed verifies the arena invariants for the subtree under
// idx: every child's parent link points back at idx, each child appears
// exactly once in the chain, and the doubly-linked sibling chain is
// consistent with the parent's first/last child.
func checkWellFormed(t *testing.T, doc *dom.Document, idx dom.Index) {
	t.Helper()
	kids := doc.Children(idx)
	for i, c := range kids {
		if p, ok := doc.Parent(c); !ok || p != idx {
			t.Errorf("node %d: parent link does not point at %d", c, idx)
		}
		seen := 0
		for _, c2 := range kids {
			if c2 == c {
				seen++
			}
		}
		if seen != 1 {
			t.Errorf("node %d appears %d times in its parent's child chain", c, seen)
		}
		if i > 0 && doc.Node(c).PrevSibling != kids[i-1] {
			t.Errorf("node %d: prev-sibling link inconsistent", c)
		}
		if i < len(kids)-1 && doc.Node(c).NextSibling != kids[i+1] {
			t.Errorf("node %d: next-sibling link inconsistent", c)
		}
	}
	if len(kids) > 0 {
		if doc.Node(idx).FirstChild != kids[0] || doc.Node(idx).LastChild != kids[len(kids)-1] {
			t.Errorf("node %d: first/last child links inconsistent", idx)
		}
	}
	for _, c := range kids {
		checkWellFormed(t, doc, c)
	}
}

// TestParseTreeWellFormedness checks the sibling/parent link invariants
// hold after the repair paths most likely to corrupt them: the adoption
// agency algorithm and foster parenting both unlink and reattach
// subtrees mid-parse.
func TestParseTreeWellFormedness(t *testing.T) {
	inputs := []string{
		"<p>1<b>2<i>3</b>4</i>5</p>",
		"<table>X<tr><td>Y",
		"<div><b>bold <i>both</b> italic</i></div>",
		"<ul><li>a<li>b<li>c</ul>",
		"<b><p>block splits formatting</p></b>",
	}
	for _, src := range inputs {
		doc, _ := ParseHTML([]rune(src))
		checkWellFormed(t, doc, dom.ROOT)
	}
}

// TestParseNoscriptInHead exercises the InHeadNoscript insertion mode
// (scripting is never enabled here, so <noscript> contents parse as
// ordinary markup rather than raw text).
func TestParseNoscriptInHead(t *testing.T) {
	doc := parse(t, `<head><noscript><link rel="stylesheet" href="a.css"></noscript></head>`)

	html := htmlElement(doc)
	head, ok := childByTag(doc, html, "head")
	if !ok {
		t.Fatalf("expected <head>")
	}
	noscript, ok := childByTag(doc, head, "noscript")
	if !ok {
		t.Fatalf("expected <noscript> in head")
	}
	if _, ok := childByTag(doc, noscript, "link"); !ok {
		t.Errorf("expected <link> inside <noscript>")
	}
}

func TestParseNoscriptInBodyHoldsOrdinaryContent(t *testing.T) {
	doc := parse(t, "<body><noscript><p>enable scripts</p></noscript><div>after</div></body>")

	html := htmlElement(doc)
	body, _ := childByTag(doc, html, "body")
	noscript, ok := childByTag(doc, body, "noscript")
	if !ok {
		t.Fatalf("expected <noscript> in body")
	}
	p, ok := childByTag(doc, noscript, "p")
	if !ok {
		t.Fatalf("expected <p> inside <noscript>")
	}
	if got := textContent(doc, p); got != "enable scripts" {
		t.Errorf("expected noscript paragraph text, got %q", got)
	}
	if _, ok := childByTag(doc, body, "div"); !ok {
		t.Errorf("expected <div> after noscript to stay in body")
	}
}

func TestParseMetaCharsetIsRecorded(t *testing.T) {
	doc := parse(t, `<head><meta charset="utf-8"></head>`)
	if doc.DeclaredEncodingLabel != "utf-8" {
		t.Errorf("expected declared encoding label %q, got %q", "utf-8", doc.DeclaredEncodingLabel)
	}
}
