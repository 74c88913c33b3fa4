package html

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/AlvinKuruvilla/koala/dom"
)

// countElements walks our own arena tree counting element nodes by
// tag name, for comparison against a reference tree's element counts.
func countElements(doc *dom.Document, idx dom.Index, counts map[string]int) {
	node := doc.Node(idx)
	if node.Kind == dom.KindElement {
		counts[node.TagName]++
	}
	for _, c := range doc.Children(idx) {
		countElements(doc, c, counts)
	}
}

// countReferenceElements does the same walk over an x/net/html tree.
func countReferenceElements(n *html.Node, counts map[string]int) {
	if n.Type == html.ElementNode {
		counts[n.Data]++
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		countReferenceElements(c, counts)
	}
}

// conformanceDocs are ordinary, well-formed-ish documents: the value
// of a differential check is in agreeing with a mature tree builder
// on the tag-soup cases (unclosed <p>, implied <tbody>, misnested
// formatting elements), not just on documents any parser gets right.
var conformanceDocs = []struct {
	name string
	src  string
}{
	{"unclosed-p", `<!DOCTYPE html><html><head><title>T</title></head><body><p>one<p>two</body></html>`},
	{"implied-tbody", `<table><tr><td>a</td><td>b</td></tr></table>`},
	{"misnested-formatting", `<div><b>bold <i>both</b> italic</i></div>`},
	{"unclosed-li-list", `<ul><li>a<li>b<li>c</ul>`},
	{"sibling-paragraphs", `<p>Hello <b>world</b>!</p><p>Second paragraph.</p>`},
	{"id-and-class", `<div id="main" class="container"><span>text</span></div>`},
}

func TestConformanceElementCountsMatchReferenceParser(t *testing.T) {
	for _, tt := range conformanceDocs {
		src := tt.src
		t.Run(tt.name, func(t *testing.T) {
			ours, issues := ParseHTML([]rune(src))
			for _, iss := range issues {
				if iss.IsError {
					t.Logf("parse issue: %s", iss.Message)
				}
			}
			ourCounts := make(map[string]int)
			countElements(ours, dom.ROOT, ourCounts)

			refRoot, err := html.Parse(strings.NewReader(src))
			if err != nil {
				t.Fatalf("reference parser failed: %v", err)
			}
			refCounts := make(map[string]int)
			countReferenceElements(refRoot, refCounts)

			if diff := cmp.Diff(refCounts, ourCounts); diff != "" {
				t.Errorf("element counts differ from reference parser (-reference +ours):\n%s", diff)
			}
		})
	}
}

// TestConformanceTextContentMatchesGoquery cross-checks extracted text
// content against goquery (x/net/html + cascadia) for documents with
// no tag-soup ambiguity, where exact text agreement is expected.
func TestConformanceTextContentMatchesGoquery(t *testing.T) {
	src := `<div id="main"><p>Hello <b>world</b>!</p><p>Second paragraph.</p></div>`

	ours, _ := ParseHTML([]rune(src))
	mainIdx, ok := findByID(ours, dom.ROOT, "main")
	if !ok {
		t.Fatal("expected to find #main in our tree")
	}
	ourText := strings.Join(strings.Fields(textContent(ours, mainIdx)), " ")

	gq, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("goquery parse failed: %v", err)
	}
	refText := strings.Join(strings.Fields(gq.Find("#main").Text()), " ")

	if ourText != refText {
		t.Errorf("text content mismatch: ours=%q goquery=%q", ourText, refText)
	}
}

func findByID(doc *dom.Document, idx dom.Index, id string) (dom.Index, bool) {
	node := doc.Node(idx)
	if node.Kind == dom.KindElement {
		if v, ok := node.GetAttribute("id"); ok && v == id {
			return idx, true
		}
	}
	for _, c := range doc.Children(idx) {
		if found, ok := findByID(doc, c, id); ok {
			return found, true
		}
	}
	return dom.NoIndex, false
}

