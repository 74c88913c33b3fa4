package html

import "testing"

func collectTokens(input string) []Token {
	var issues []ParseIssue
	tok := NewTokenizer([]rune(input), &issues)
	var toks []Token
	for {
		tk := tok.Next()
		toks = append(toks, tk)
		if tk.Type == EndOfFileToken {
			break
		}
	}
	return toks
}

func TestTokenizerCharacterData(t *testing.T) {
	toks := collectTokens("Hi")
	if len(toks) != 3 {
		t.Fatalf("expected 2 chars + EOF, got %d: %+v", len(toks), toks)
	}
	if toks[0].Type != CharacterToken || toks[0].Char != 'H' {
		t.Errorf("got %+v", toks[0])
	}
	if toks[1].Type != CharacterToken || toks[1].Char != 'i' {
		t.Errorf("got %+v", toks[1])
	}
	if toks[2].Type != EndOfFileToken {
		t.Errorf("expected EOF, got %+v", toks[2])
	}
}

func TestTokenizerSimpleTag(t *testing.T) {
	toks := collectTokens("<div>")
	if toks[0].Type != StartTagToken || toks[0].Name != "div" {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestTokenizerEndTag(t *testing.T) {
	toks := collectTokens("</div>")
	if toks[0].Type != EndTagToken || toks[0].Name != "div" {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestTokenizerSelfClosingTag(t *testing.T) {
	toks := collectTokens("<br/>")
	if toks[0].Type != StartTagToken || toks[0].Name != "br" || !toks[0].SelfClosing {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestTokenizerAttributes(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"double quoted", `<div id="main" class="container">`},
		{"single quoted", `<div id='main' class='container'>`},
		{"unquoted", `<div id=main class=container>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := collectTokens(tt.input)
			tok := toks[0]
			if tok.Type != StartTagToken {
				t.Fatalf("got %+v", tok)
			}
			id, _ := tok.GetAttribute("id")
			class, _ := tok.GetAttribute("class")
			if id != "main" || class != "container" {
				t.Errorf("got id=%q class=%q", id, class)
			}
		})
	}
}

func TestTokenizerValuelessAttributes(t *testing.T) {
	toks := collectTokens(`<input disabled type="checkbox" checked>`)
	tok := toks[0]
	if tok.Type != StartTagToken || tok.Name != "input" {
		t.Fatalf("got %+v", tok)
	}
	if len(tok.Attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %+v", tok.Attrs)
	}
	if v, ok := tok.GetAttribute("disabled"); !ok || v != "" {
		t.Errorf("expected empty-valued disabled attribute, got %q ok=%v", v, ok)
	}
	if v, ok := tok.GetAttribute("checked"); !ok || v != "" {
		t.Errorf("expected empty-valued checked attribute, got %q ok=%v", v, ok)
	}
	if v, _ := tok.GetAttribute("type"); v != "checkbox" {
		t.Errorf("expected type=checkbox, got %q", v)
	}
}

func TestTokenizerDuplicateAttributeDropped(t *testing.T) {
	toks := collectTokens(`<div id="a" id="b">`)
	tok := toks[0]
	if len(tok.Attrs) != 1 {
		t.Fatalf("expected 1 attribute, got %+v", tok.Attrs)
	}
	if tok.Attrs[0].Value != "a" {
		t.Errorf("expected first occurrence to win, got %q", tok.Attrs[0].Value)
	}
	var issues []ParseIssue
	tz := NewTokenizer([]rune(`<div id="a" id="b">`), &issues)
	for {
		tk := tz.Next()
		if tk.Type == EndOfFileToken {
			break
		}
	}
	found := false
	for _, is := range issues {
		if is.Message == ErrDuplicateAttribute {
			found = true
		}
	}
	if !found {
		t.Errorf("expected duplicate-attribute parse issue")
	}
}

func TestTokenizerComment(t *testing.T) {
	toks := collectTokens("<!-- This is a comment -->")
	if toks[0].Type != CommentToken || toks[0].Data != " This is a comment " {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestTokenizerDoctype(t *testing.T) {
	toks := collectTokens("<!DOCTYPE html>")
	if toks[0].Type != DoctypeToken {
		t.Fatalf("got %+v", toks[0])
	}
	if toks[0].DoctypeName != "html" {
		t.Errorf("expected doctype name html, got %q", toks[0].DoctypeName)
	}
}

func TestTokenizerMultipleTokens(t *testing.T) {
	toks := collectTokens("<html><body></body></html>")
	want := []struct {
		typ  TokenType
		name string
	}{
		{StartTagToken, "html"},
		{StartTagToken, "body"},
		{EndTagToken, "body"},
		{EndTagToken, "html"},
	}
	for i, w := range want {
		if toks[i].Type != w.typ || toks[i].Name != w.name {
			t.Errorf("token %d: got %+v, want type=%v name=%q", i, toks[i], w.typ, w.name)
		}
	}
}

func TestTokenizerRawtextContainsLiteralAngleBrackets(t *testing.T) {
	toks := collectTokens("<style>a < b</style>")
	if toks[0].Type != StartTagToken || toks[0].Name != "style" {
		t.Fatalf("got %+v", toks[0])
	}
	var text []rune
	i := 1
	for ; toks[i].Type == CharacterToken; i++ {
		text = append(text, toks[i].Char)
	}
	if string(text) != "a < b" {
		t.Errorf("expected raw style content 'a < b', got %q", string(text))
	}
	if toks[i].Type != EndTagToken || toks[i].Name != "style" {
		t.Fatalf("expected closing style tag, got %+v", toks[i])
	}
}

func TestTokenizerRCDATADecodesEntities(t *testing.T) {
	toks := collectTokens("<title>A &amp; B</title>")
	var text []rune
	i := 1
	for ; toks[i].Type == CharacterToken; i++ {
		text = append(text, toks[i].Char)
	}
	if string(text) != "A & B" {
		t.Errorf("expected decoded title text 'A & B', got %q", string(text))
	}
}

func TestTokenizerNamedEntityWithoutSemicolonInAttributeIsLiteral(t *testing.T) {
	toks := collectTokens(`<a href="?a&copy=1">`)
	tok := toks[0]
	href, _ := tok.GetAttribute("href")
	if href != "?a&copy=1" {
		t.Errorf("expected literal '?a&copy=1', got %q", href)
	}
}

func TestTokenizerNamedEntityWithoutSemicolonInTextIsDecoded(t *testing.T) {
	toks := collectTokens("a&copyb")
	var text []rune
	for _, tk := range toks {
		if tk.Type == CharacterToken {
			text = append(text, tk.Char)
		}
	}
	if string(text) != "a©b" {
		t.Errorf("expected decoded copyright sign, got %q", string(text))
	}
}

func TestTokenizerNumericCharacterReferenceHex(t *testing.T) {
	toks := collectTokens("&#x41;")
	if toks[0].Type != CharacterToken || toks[0].Char != 'A' {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestTokenizerNumericCharacterReferenceControlSubstitution(t *testing.T) {
	toks := collectTokens("&#128;")
	if toks[0].Type != CharacterToken || toks[0].Char != '€' {
		t.Fatalf("expected euro sign substitution, got %+v", toks[0])
	}
}

func TestTokenizerNullCharacterReplaced(t *testing.T) {
	toks := collectTokens("a\x00b")
	if toks[1].Char != 0xFFFD {
		t.Errorf("expected U+FFFD replacement, got %+v", toks[1])
	}
}
