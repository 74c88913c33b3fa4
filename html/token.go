package html

import "github.com/AlvinKuruvilla/koala/dom"

// TokenType tags the Token sum type's active variant.
type TokenType int

const (
	StartTagToken TokenType = iota
	EndTagToken
	CommentToken
	DoctypeToken
	CharacterToken
	EndOfFileToken
)

func (t TokenType) String() string {
	switch t {
	case StartTagToken:
		return "StartTag"
	case EndTagToken:
		return "EndTag"
	case CommentToken:
		return "Comment"
	case DoctypeToken:
		return "Doctype"
	case CharacterToken:
		return "Character"
	case EndOfFileToken:
		return "EndOfFile"
	default:
		return "Unknown"
	}
}

// Token is the tokenizer's output unit: a StartTag/EndTag carries a
// name, an ordered attribute list (already lowercased and
// duplicate-dropped per spec), and a self-closing flag; Comment
// carries raw data; Doctype carries optional name/public/system
// identifiers and a force-quirks flag; Character carries exactly one
// code point (the tree builder coalesces runs of characters where
// useful); EndOfFile carries nothing.
type Token struct {
	Type TokenType

	Name        string
	Attrs       []dom.Attribute
	SelfClosing bool

	Data string

	DoctypeName    string
	HasDoctypeName bool
	PublicID       string
	HasPublicID    bool
	SystemID       string
	HasSystemID    bool
	ForceQuirks    bool

	Char rune
}

// GetAttribute looks up an attribute on a Start/EndTag token.
func (t *Token) GetAttribute(name string) (string, bool) {
	for _, a := range t.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Clone returns a deep copy of t, used by the active formatting
// elements list to keep an original token around for replay during the
// adoption agency algorithm.
func (t *Token) Clone() *Token {
	c := *t
	c.Attrs = append([]dom.Attribute(nil), t.Attrs...)
	return &c
}
