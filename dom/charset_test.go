package dom

import "testing"

func TestMetaCharsetAttrBareForm(t *testing.T) {
	label, ok := MetaCharsetAttr([]Attribute{{Name: "charset", Value: "utf-8"}})
	if !ok || label != "utf-8" {
		t.Fatalf("expected utf-8, got %q ok=%v", label, ok)
	}
}

func TestMetaCharsetAttrHTTPEquivForm(t *testing.T) {
	attrs := []Attribute{
		{Name: "http-equiv", Value: "Content-Type"},
		{Name: "content", Value: "text/html; charset=ISO-8859-1"},
	}
	label, ok := MetaCharsetAttr(attrs)
	if !ok || label != "ISO-8859-1" {
		t.Fatalf("expected ISO-8859-1, got %q ok=%v", label, ok)
	}
}

func TestMetaCharsetAttrQuoted(t *testing.T) {
	attrs := []Attribute{
		{Name: "http-equiv", Value: "content-type"},
		{Name: "content", Value: `text/html; charset="utf-8"`},
	}
	label, ok := MetaCharsetAttr(attrs)
	if !ok || label != "utf-8" {
		t.Fatalf("expected utf-8, got %q ok=%v", label, ok)
	}
}

func TestMetaCharsetAttrAbsent(t *testing.T) {
	if _, ok := MetaCharsetAttr([]Attribute{{Name: "name", Value: "viewport"}}); ok {
		t.Fatal("expected no charset found")
	}
}

func TestNoteDeclaredEncodingCanonicalizes(t *testing.T) {
	doc := NewDocument()
	doc.NoteDeclaredEncoding("utf8")
	if doc.DeclaredEncoding == "" {
		t.Fatal("expected a canonical encoding to be recorded")
	}
}

func TestNoteDeclaredEncodingFirstWins(t *testing.T) {
	doc := NewDocument()
	doc.NoteDeclaredEncoding("utf-8")
	first := doc.DeclaredEncoding
	doc.NoteDeclaredEncoding("iso-8859-1")
	if doc.DeclaredEncoding != first {
		t.Fatalf("expected first declared encoding to win, got %q", doc.DeclaredEncoding)
	}
}
