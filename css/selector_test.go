package css

import (
	"testing"

	"github.com/AlvinKuruvilla/koala/dom"
)

func elem(doc *dom.Document, tag string, attrs ...dom.Attribute) dom.Index {
	return doc.Alloc(dom.Node{Kind: dom.KindElement, TagName: tag, Attrs: attrs})
}

// buildDivPSpan builds: div.a > p.b > span (used across combinator tests).
func buildDivPSpan(t *testing.T) (*dom.Document, dom.Index, dom.Index, dom.Index) {
	t.Helper()
	doc := dom.NewDocument()
	div := elem(doc, "div", dom.Attribute{Name: "class", Value: "a"})
	doc.AppendChild(dom.ROOT, div)
	p := elem(doc, "p", dom.Attribute{Name: "class", Value: "b"})
	doc.AppendChild(div, p)
	span := elem(doc, "span")
	doc.AppendChild(p, span)
	return doc, div, p, span
}

func TestMatchesTypeSelector(t *testing.T) {
	doc, _, p, _ := buildDivPSpan(t)
	sel, ok := ParseSelector("p")
	if !ok {
		t.Fatal("expected selector to parse")
	}
	if !Matches(sel, doc, p) {
		t.Error("expected 'p' to match the p element")
	}
}

func TestMatchesClassAndID(t *testing.T) {
	doc := dom.NewDocument()
	el := elem(doc, "div", dom.Attribute{Name: "id", Value: "main"}, dom.Attribute{Name: "class", Value: "foo bar"})
	doc.AppendChild(dom.ROOT, el)

	for _, text := range []string{"#main", ".foo", ".bar", "div#main.foo.bar"} {
		sel, ok := ParseSelector(text)
		if !ok {
			t.Fatalf("expected %q to parse", text)
		}
		if !Matches(sel, doc, el) {
			t.Errorf("expected %q to match", text)
		}
	}

	sel, _ := ParseSelector(".missing")
	if Matches(sel, doc, el) {
		t.Error("did not expect '.missing' to match")
	}
}

func TestMatchesUniversal(t *testing.T) {
	doc, _, p, _ := buildDivPSpan(t)
	sel, _ := ParseSelector("*")
	if !Matches(sel, doc, p) {
		t.Error("expected '*' to match any element")
	}
}

func TestMatchesDescendantCombinator(t *testing.T) {
	doc, _, _, span := buildDivPSpan(t)
	sel, _ := ParseSelector(".a span")
	if !Matches(sel, doc, span) {
		t.Error("expected '.a span' to match span (descendant of div.a)")
	}
	sel2, _ := ParseSelector(".missing span")
	if Matches(sel2, doc, span) {
		t.Error("did not expect '.missing span' to match")
	}
}

func TestMatchesChildCombinator(t *testing.T) {
	doc, _, _, span := buildDivPSpan(t)
	if sel, _ := ParseSelector(".b > span"); !Matches(sel, doc, span) {
		t.Error("expected '.b > span' to match (direct child)")
	}
	if sel, _ := ParseSelector(".a > span"); Matches(sel, doc, span) {
		t.Error("did not expect '.a > span' to match (span is a grandchild, not a child)")
	}
}

func TestMatchesNextSiblingCombinator(t *testing.T) {
	doc := dom.NewDocument()
	h1 := elem(doc, "h1")
	doc.AppendChild(dom.ROOT, h1)
	p := elem(doc, "p")
	doc.AppendChild(dom.ROOT, p)

	if sel, _ := ParseSelector("h1 + p"); !Matches(sel, doc, p) {
		t.Error("expected 'h1 + p' to match p immediately following h1")
	}

	// Insert a span between them; '+' should no longer match.
	doc2 := dom.NewDocument()
	h1b := elem(doc2, "h1")
	doc2.AppendChild(dom.ROOT, h1b)
	span := elem(doc2, "span")
	doc2.AppendChild(dom.ROOT, span)
	pb := elem(doc2, "p")
	doc2.AppendChild(dom.ROOT, pb)

	if sel, _ := ParseSelector("h1 + p"); Matches(sel, doc2, pb) {
		t.Error("did not expect 'h1 + p' to match when a sibling intervenes")
	}
}

func TestMatchesSubsequentSiblingCombinator(t *testing.T) {
	doc := dom.NewDocument()
	h1 := elem(doc, "h1")
	doc.AppendChild(dom.ROOT, h1)
	span := elem(doc, "span")
	doc.AppendChild(dom.ROOT, span)
	p := elem(doc, "p")
	doc.AppendChild(dom.ROOT, p)

	if sel, _ := ParseSelector("h1 ~ p"); !Matches(sel, doc, p) {
		t.Error("expected 'h1 ~ p' to match p anywhere after h1")
	}
	if sel, _ := ParseSelector("span ~ h1"); Matches(sel, doc, h1) {
		t.Error("did not expect 'span ~ h1' to match (h1 precedes span)")
	}
}

func TestSpecificityMonotonicity(t *testing.T) {
	// Monotonicity property: adding an extra Id simple
	// selector strictly increases specificity.
	s1, _ := ParseSelector("div.a")
	s2, _ := ParseSelector("div.a#x")

	spec1 := ComputeSpecificity(s1)
	spec2 := ComputeSpecificity(s2)

	if spec2.Compare(spec1) <= 0 {
		t.Errorf("expected #x to raise specificity: %+v vs %+v", spec2, spec1)
	}
}

func TestSpecificityDescendantBeatsLoneClass(t *testing.T) {
	// ".a p" (0,1,1) beats ".b" (0,1,0): the extra type selector on the
	// descendant chain breaks the class-count tie.
	aDescendantP, _ := ParseSelector(".a p")
	dotB, _ := ParseSelector(".b")

	specAP := ComputeSpecificity(aDescendantP)
	specB := ComputeSpecificity(dotB)

	if specAP != (Specificity{A: 0, B: 1, C: 1}) {
		t.Errorf("expected (0,1,1) for '.a p', got %+v", specAP)
	}
	if specB != (Specificity{A: 0, B: 1, C: 0}) {
		t.Errorf("expected (0,1,0) for '.b', got %+v", specB)
	}
	if specAP.Compare(specB) <= 0 {
		t.Error("expected '.a p' to win over '.b'")
	}
}

func TestParseSelectorRejectsTrailingGarbage(t *testing.T) {
	if _, ok := ParseSelector("div{"); ok {
		t.Error("expected ParseSelector to reject trailing '{'")
	}
}
