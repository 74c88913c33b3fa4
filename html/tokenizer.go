// Package html implements the tokenizer and tree-construction stages
// of the WHATWG HTML parsing algorithm:
// https://html.spec.whatwg.org/multipage/parsing.html
package html

import (
	"strings"

	"github.com/AlvinKuruvilla/koala/dom"
	"github.com/AlvinKuruvilla/koala/log"
)

// State names a tokenizer state. The states below are a faithful
// working subset of the ~80 states the full HTML standard defines —
// the same scope the reference "koala" tokenizer implements. Three
// families (RCDATA/RAWTEXT/ScriptData) share one generalized set of
// less-than-sign/end-tag-open/end-tag-name states instead of three
// separate copies each, since scripting-mode tokenizer differences are
// explicitly not required (spec non-goal); the shared states are
// parametrized by textContentKind instead.
type State int

const (
	DataState State = iota
	RCDATAState
	RAWTEXTState
	ScriptDataState
	PlaintextState

	TagOpenState
	EndTagOpenState
	TagNameState

	TextLessThanSignState
	TextEndTagOpenState
	TextEndTagNameState

	BeforeAttributeNameState
	AttributeNameState
	AfterAttributeNameState
	BeforeAttributeValueState
	AttributeValueDoubleQuotedState
	AttributeValueSingleQuotedState
	AttributeValueUnquotedState
	AfterAttributeValueQuotedState
	SelfClosingStartTagState

	BogusCommentState
	MarkupDeclarationOpenState

	CommentStartState
	CommentStartDashState
	CommentState
	CommentLessThanSignState
	CommentLessThanSignBangState
	CommentLessThanSignBangDashState
	CommentLessThanSignBangDashDashState
	CommentEndDashState
	CommentEndState
	CommentEndBangState

	DoctypeState
	BeforeDoctypeNameState
	DoctypeNameState
	AfterDoctypeNameState
	AfterDoctypePublicKeywordState
	BeforeDoctypePublicIdentifierState
	DoctypePublicIdentifierDoubleQuotedState
	DoctypePublicIdentifierSingleQuotedState
	AfterDoctypePublicIdentifierState
	BetweenDoctypePublicAndSystemIdentifiersState
	AfterDoctypeSystemKeywordState
	BeforeDoctypeSystemIdentifierState
	DoctypeSystemIdentifierDoubleQuotedState
	DoctypeSystemIdentifierSingleQuotedState
	AfterDoctypeSystemIdentifierState
	BogusDoctypeState

	CharacterReferenceState
	NamedCharacterReferenceState
	AmbiguousAmpersandState
	NumericCharacterReferenceState
	HexadecimalCharacterReferenceStartState
	DecimalCharacterReferenceStartState
	HexadecimalCharacterReferenceState
	DecimalCharacterReferenceState
	NumericCharacterReferenceEndState
)

// textContentKind distinguishes which of the RCDATA/RAWTEXT/ScriptData
// families the generalized Text* states are currently serving.
type textContentKind int

const (
	textRCDATA textContentKind = iota
	textRAWTEXT
	textScriptData
)

// c1ReplacementTable maps the windows-1252 C1 control code points the
// numeric-character-reference-end state must substitute, per the HTML
// standard's explicit table.
var c1ReplacementTable = map[rune]rune{
	0x80: 0x20AC, 0x82: 0x201A, 0x83: 0x0192, 0x84: 0x201E,
	0x85: 0x2026, 0x86: 0x2020, 0x87: 0x2021, 0x88: 0x02C6,
	0x89: 0x2030, 0x8A: 0x0160, 0x8B: 0x2039, 0x8C: 0x0152,
	0x8E: 0x017D, 0x91: 0x2018, 0x92: 0x2019, 0x93: 0x201C,
	0x94: 0x201D, 0x95: 0x2022, 0x96: 0x2013, 0x97: 0x2014,
	0x98: 0x02DC, 0x99: 0x2122, 0x9A: 0x0161, 0x9B: 0x203A,
	0x9C: 0x0153, 0x9E: 0x017E, 0x9F: 0x0178,
}

// rcdataTags / rawtextTags / scriptDataTags name the start tags whose
// emission switches the tokenizer's content state, implemented here as
// the tokenizer's own convenience on emit rather than pushed in by the
// parser (either direction is conforming).
var rcdataTags = map[string]bool{"title": true, "textarea": true}
var rawtextTags = map[string]bool{"style": true, "xmp": true, "iframe": true, "noembed": true, "noframes": true}
var scriptDataTags = map[string]bool{"script": true}

func isASCIIAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isASCIIHexDigit(r rune) bool {
	return isASCIIDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func hexVal(r rune) int64 {
	switch {
	case r >= '0' && r <= '9':
		return int64(r - '0')
	case r >= 'a' && r <= 'f':
		return int64(r-'a') + 10
	default:
		return int64(r-'A') + 10
	}
}

func isSurrogate(r rune) bool {
	return r >= 0xD800 && r <= 0xDFFF
}

func isNoncharacter(r rune) bool {
	if r >= 0xFDD0 && r <= 0xFDEF {
		return true
	}
	switch r & 0xFFFF {
	case 0xFFFE, 0xFFFF:
		return true
	}
	return false
}

// Tokenizer converts a code point sequence into a Token stream, pulled
// one token at a time via Next.
type Tokenizer struct {
	input []rune
	pos   int

	reconsume     bool
	reconsumeRune rune

	state             State
	returnState       State
	overrideNextState State
	textKind          textContentKind

	buf []rune // tag name / comment data / doctype field under construction

	tagIsEndTag    bool
	tagSelfClosing bool
	tagAttrs       []dom.Attribute
	attrSeen       map[string]bool
	curAttrName    []rune
	curAttrValue   []rune

	pendingAttrName string
	pendingDrop     bool

	doctypeTok *Token

	lastStartTagName string

	charRefInAttr bool
	charRefCode   int64

	queue []Token
	done  bool

	issues       *[]ParseIssue
	tokenCounter uint64
}

// NewTokenizer creates a Tokenizer over input, recording diagnostics
// into issues (may be nil to discard them).
func NewTokenizer(input []rune, issues *[]ParseIssue) *Tokenizer {
	return &Tokenizer{input: input, state: DataState, issues: issues}
}

func (t *Tokenizer) parseError(msg string) {
	log.Debugf("html tokenizer: %s at token %d", msg, t.tokenCounter)
	if t.issues != nil {
		*t.issues = append(*t.issues, ParseIssue{Message: msg, TokenIndex: t.tokenCounter, IsError: true})
	}
}

func (t *Tokenizer) consume() (rune, bool) {
	if t.reconsume {
		t.reconsume = false
		return t.reconsumeRune, true
	}
	if t.pos >= len(t.input) {
		return 0, false
	}
	r := t.input[t.pos]
	t.pos++
	return r, true
}

func (t *Tokenizer) setReconsume(r rune) {
	t.reconsume = true
	t.reconsumeRune = r
}

func (t *Tokenizer) emit(tok Token) {
	t.queue = append(t.queue, tok)
}

func (t *Tokenizer) emitChar(r rune) {
	t.emit(Token{Type: CharacterToken, Char: r})
}

func (t *Tokenizer) emitString(s string) {
	for _, r := range s {
		t.emitChar(r)
	}
}

// Next returns the next token. Once EndOfFile has been emitted, every
// subsequent call keeps returning EndOfFile.
func (t *Tokenizer) Next() Token {
	for len(t.queue) == 0 {
		if !t.step() {
			break
		}
	}
	if len(t.queue) == 0 {
		return Token{Type: EndOfFileToken}
	}
	tok := t.queue[0]
	t.queue = t.queue[1:]
	t.tokenCounter++
	return tok
}

// step executes exactly one state-machine transition. It returns false
// once EOF has been fully handled (an EndOfFile token queued and no
// further progress possible).
func (t *Tokenizer) step() bool {
	if t.done {
		return false
	}
	switch t.state {
	case DataState:
		return t.stepData()
	case RCDATAState:
		return t.stepRCDATA()
	case RAWTEXTState:
		return t.stepRAWTEXT()
	case ScriptDataState:
		return t.stepScriptData()
	case PlaintextState:
		return t.stepPlaintext()
	case TagOpenState:
		return t.stepTagOpen()
	case EndTagOpenState:
		return t.stepEndTagOpen()
	case TagNameState:
		return t.stepTagName()
	case TextLessThanSignState:
		return t.stepTextLessThanSign()
	case TextEndTagOpenState:
		return t.stepTextEndTagOpen()
	case TextEndTagNameState:
		return t.stepTextEndTagName()
	case BeforeAttributeNameState:
		return t.stepBeforeAttributeName()
	case AttributeNameState:
		return t.stepAttributeName()
	case AfterAttributeNameState:
		return t.stepAfterAttributeName()
	case BeforeAttributeValueState:
		return t.stepBeforeAttributeValue()
	case AttributeValueDoubleQuotedState:
		return t.stepAttributeValueQuoted('"')
	case AttributeValueSingleQuotedState:
		return t.stepAttributeValueQuoted('\'')
	case AttributeValueUnquotedState:
		return t.stepAttributeValueUnquoted()
	case AfterAttributeValueQuotedState:
		return t.stepAfterAttributeValueQuoted()
	case SelfClosingStartTagState:
		return t.stepSelfClosingStartTag()
	case BogusCommentState:
		return t.stepBogusComment()
	case MarkupDeclarationOpenState:
		return t.stepMarkupDeclarationOpen()
	case CommentStartState:
		return t.stepCommentStart()
	case CommentStartDashState:
		return t.stepCommentStartDash()
	case CommentState:
		return t.stepComment()
	case CommentLessThanSignState:
		return t.stepCommentLessThanSign()
	case CommentLessThanSignBangState:
		return t.stepCommentLessThanSignBang()
	case CommentLessThanSignBangDashState:
		return t.stepCommentLessThanSignBangDash()
	case CommentLessThanSignBangDashDashState:
		return t.stepCommentLessThanSignBangDashDash()
	case CommentEndDashState:
		return t.stepCommentEndDash()
	case CommentEndState:
		return t.stepCommentEnd()
	case CommentEndBangState:
		return t.stepCommentEndBang()
	case DoctypeState:
		return t.stepDoctype()
	case BeforeDoctypeNameState:
		return t.stepBeforeDoctypeName()
	case DoctypeNameState:
		return t.stepDoctypeName()
	case AfterDoctypeNameState:
		return t.stepAfterDoctypeName()
	case AfterDoctypePublicKeywordState:
		return t.stepAfterDoctypePublicKeyword()
	case BeforeDoctypePublicIdentifierState:
		return t.stepBeforeDoctypePublicIdentifier()
	case DoctypePublicIdentifierDoubleQuotedState:
		return t.stepDoctypePublicIdentifierQuoted('"')
	case DoctypePublicIdentifierSingleQuotedState:
		return t.stepDoctypePublicIdentifierQuoted('\'')
	case AfterDoctypePublicIdentifierState:
		return t.stepAfterDoctypePublicIdentifier()
	case BetweenDoctypePublicAndSystemIdentifiersState:
		return t.stepBetweenDoctypePublicAndSystemIdentifiers()
	case AfterDoctypeSystemKeywordState:
		return t.stepAfterDoctypeSystemKeyword()
	case BeforeDoctypeSystemIdentifierState:
		return t.stepBeforeDoctypeSystemIdentifier()
	case DoctypeSystemIdentifierDoubleQuotedState:
		return t.stepDoctypeSystemIdentifierQuoted('"')
	case DoctypeSystemIdentifierSingleQuotedState:
		return t.stepDoctypeSystemIdentifierQuoted('\'')
	case AfterDoctypeSystemIdentifierState:
		return t.stepAfterDoctypeSystemIdentifier()
	case BogusDoctypeState:
		return t.stepBogusDoctype()
	case CharacterReferenceState:
		return t.stepCharacterReference()
	case NamedCharacterReferenceState:
		return t.stepNamedCharacterReference()
	case AmbiguousAmpersandState:
		return t.stepAmbiguousAmpersand()
	case NumericCharacterReferenceState:
		return t.stepNumericCharacterReference()
	case HexadecimalCharacterReferenceStartState:
		return t.stepHexadecimalCharacterReferenceStart()
	case DecimalCharacterReferenceStartState:
		return t.stepDecimalCharacterReferenceStart()
	case HexadecimalCharacterReferenceState:
		return t.stepHexadecimalCharacterReference()
	case DecimalCharacterReferenceState:
		return t.stepDecimalCharacterReference()
	case NumericCharacterReferenceEndState:
		return t.stepNumericCharacterReferenceEnd()
	}
	panic("html: unhandled tokenizer state")
}

func (t *Tokenizer) eof() {
	t.emit(Token{Type: EndOfFileToken})
	t.done = true
}

// --- Data / RCDATA / RAWTEXT / ScriptData / PLAINTEXT ---

func (t *Tokenizer) stepData() bool {
	r, ok := t.consume()
	if !ok {
		t.eof()
		return false
	}
	switch r {
	case '&':
		t.returnState = DataState
		t.charRefInAttr = false
		t.state = CharacterReferenceState
	case '<':
		t.state = TagOpenState
	case 0:
		t.parseError(ErrUnexpectedNullCharacter)
		t.emitChar(0xFFFD)
	default:
		t.emitChar(r)
	}
	return true
}

func (t *Tokenizer) stepRCDATA() bool {
	r, ok := t.consume()
	if !ok {
		t.eof()
		return false
	}
	switch r {
	case '&':
		t.returnState = RCDATAState
		t.charRefInAttr = false
		t.state = CharacterReferenceState
	case '<':
		t.textKind = textRCDATA
		t.buf = nil
		t.state = TextLessThanSignState
	case 0:
		t.parseError(ErrUnexpectedNullCharacter)
		t.emitChar(0xFFFD)
	default:
		t.emitChar(r)
	}
	return true
}

func (t *Tokenizer) stepRAWTEXT() bool {
	r, ok := t.consume()
	if !ok {
		t.eof()
		return false
	}
	switch r {
	case '<':
		t.textKind = textRAWTEXT
		t.buf = nil
		t.state = TextLessThanSignState
	case 0:
		t.parseError(ErrUnexpectedNullCharacter)
		t.emitChar(0xFFFD)
	default:
		t.emitChar(r)
	}
	return true
}

func (t *Tokenizer) stepScriptData() bool {
	r, ok := t.consume()
	if !ok {
		t.eof()
		return false
	}
	switch r {
	case '<':
		t.textKind = textScriptData
		t.buf = nil
		t.state = TextLessThanSignState
	case 0:
		t.parseError(ErrUnexpectedNullCharacter)
		t.emitChar(0xFFFD)
	default:
		t.emitChar(r)
	}
	return true
}

func (t *Tokenizer) stepPlaintext() bool {
	r, ok := t.consume()
	if !ok {
		t.eof()
		return false
	}
	if r == 0 {
		t.parseError(ErrUnexpectedNullCharacter)
		t.emitChar(0xFFFD)
		return true
	}
	t.emitChar(r)
	return true
}

// stepTextLessThanSign handles '<' seen while inside RCDATA/RAWTEXT/
// ScriptData content.
func (t *Tokenizer) stepTextLessThanSign() bool {
	r, ok := t.consume()
	if ok && r == '/' {
		t.buf = nil
		t.state = TextEndTagOpenState
		return true
	}
	t.emitChar('<')
	if ok {
		t.setReconsume(r)
	}
	t.state = t.homeStateFor(t.textKind)
	return true
}

func (t *Tokenizer) stepTextEndTagOpen() bool {
	r, ok := t.consume()
	if ok && isASCIIAlpha(r) {
		t.tagIsEndTag = true
		t.buf = nil
		t.attrSeen = nil
		t.tagAttrs = nil
		t.tagSelfClosing = false
		t.setReconsume(r)
		t.state = TextEndTagNameState
		return true
	}
	t.emitChar('<')
	t.emitChar('/')
	if ok {
		t.setReconsume(r)
	}
	t.state = t.homeStateFor(t.textKind)
	return true
}

func (t *Tokenizer) stepTextEndTagName() bool {
	r, ok := t.consume()
	if ok {
		switch {
		case isWhitespace(r) && t.isAppropriateEndTag():
			t.state = BeforeAttributeNameState
			return true
		case r == '/' && t.isAppropriateEndTag():
			t.state = SelfClosingStartTagState
			return true
		case r == '>' && t.isAppropriateEndTag():
			t.finishTag()
			t.applyOverrideState()
			return true
		case isASCIIAlpha(r):
			t.buf = append(t.buf, r)
			return true
		}
	}
	// Not an appropriate end tag (or EOF): flush literally.
	t.emitChar('<')
	t.emitChar('/')
	t.emitString(string(t.buf))
	if ok {
		t.setReconsume(r)
	}
	t.state = t.homeStateFor(t.textKind)
	return true
}

func (t *Tokenizer) isAppropriateEndTag() bool {
	return t.lastStartTagName != "" && strings.EqualFold(string(t.buf), t.lastStartTagName)
}

func (t *Tokenizer) homeStateFor(k textContentKind) State {
	switch k {
	case textRCDATA:
		return RCDATAState
	case textRAWTEXT:
		return RAWTEXTState
	default:
		return ScriptDataState
	}
}

// --- Tag open / names ---

func (t *Tokenizer) stepTagOpen() bool {
	r, ok := t.consume()
	if !ok {
		t.parseError(ErrEOFBeforeTagName)
		t.emitChar('<')
		t.eof()
		return false
	}
	switch {
	case r == '!':
		t.state = MarkupDeclarationOpenState
	case r == '/':
		t.state = EndTagOpenState
	case isASCIIAlpha(r):
		t.tagIsEndTag = false
		t.buf = nil
		t.attrSeen = nil
		t.tagAttrs = nil
		t.tagSelfClosing = false
		t.setReconsume(r)
		t.state = TagNameState
	case r == '?':
		t.parseError(ErrIncorrectlyOpenedComment)
		t.buf = nil
		t.setReconsume(r)
		t.state = BogusCommentState
	default:
		t.emitChar('<')
		t.setReconsume(r)
		t.state = DataState
	}
	return true
}

func (t *Tokenizer) stepEndTagOpen() bool {
	r, ok := t.consume()
	if !ok {
		t.parseError(ErrEOFBeforeTagName)
		t.emitChar('<')
		t.emitChar('/')
		t.eof()
		return false
	}
	switch {
	case isASCIIAlpha(r):
		t.tagIsEndTag = true
		t.buf = nil
		t.attrSeen = nil
		t.tagAttrs = nil
		t.tagSelfClosing = false
		t.setReconsume(r)
		t.state = TagNameState
	case r == '>':
		t.parseError(ErrMissingEndTagName)
		t.state = DataState
	default:
		t.buf = nil
		t.setReconsume(r)
		t.state = BogusCommentState
	}
	return true
}

func (t *Tokenizer) stepTagName() bool {
	r, ok := t.consume()
	if !ok {
		t.parseError(ErrEOFInTag)
		t.eof()
		return false
	}
	switch {
	case isWhitespace(r):
		t.state = BeforeAttributeNameState
	case r == '/':
		t.state = SelfClosingStartTagState
	case r == '>':
		t.finishTag()
		t.applyOverrideState()
	case r == 0:
		t.parseError(ErrUnexpectedNullCharacter)
		t.buf = append(t.buf, 0xFFFD)
	default:
		t.buf = append(t.buf, toASCIILower(r))
	}
	return true
}

func toASCIILower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// finishTag constructs and emits the current Start/EndTag token from
// the accumulated name/attributes, and records which content state
// applyOverrideState should move into next (RCDATA/RAWTEXT/ScriptData/
// Plaintext/Data), per rcdataTags/rawtextTags/scriptDataTags.
func (t *Tokenizer) finishTag() {
	t.commitAttrValue()
	name := string(t.buf)
	tok := Token{
		Name:        name,
		Attrs:       t.tagAttrs,
		SelfClosing: t.tagSelfClosing,
	}
	if t.tagIsEndTag {
		tok.Type = EndTagToken
	} else {
		tok.Type = StartTagToken
	}
	t.emit(tok)

	if t.tagIsEndTag {
		t.overrideNextState = DataState
		return
	}
	t.lastStartTagName = name
	switch {
	case rcdataTags[name]:
		t.overrideNextState = RCDATAState
	case rawtextTags[name]:
		t.overrideNextState = RAWTEXTState
	case scriptDataTags[name]:
		t.overrideNextState = ScriptDataState
	case name == "plaintext":
		t.overrideNextState = PlaintextState
	default:
		t.overrideNextState = DataState
	}
}

// applyOverrideState moves the tokenizer into the content state
// finishTag selected.
func (t *Tokenizer) applyOverrideState() {
	t.state = t.overrideNextState
}

func (t *Tokenizer) stepBeforeAttributeName() bool {
	r, ok := t.consume()
	if !ok {
		t.parseError(ErrEOFInTag)
		t.eof()
		return false
	}
	switch {
	case isWhitespace(r):
		return true
	case r == '/' || r == '>':
		t.setReconsume(r)
		t.state = AfterAttributeNameState
	case r == '=':
		t.parseError(ErrUnexpectedCharacterInAttributeName)
		t.startAttr()
		t.curAttrName = append(t.curAttrName, r)
		t.state = AttributeNameState
	default:
		t.startAttr()
		t.setReconsume(r)
		t.state = AttributeNameState
	}
	return true
}

func (t *Tokenizer) startAttr() {
	t.commitAttrValue()
	t.curAttrName = nil
	t.curAttrValue = nil
}

func (t *Tokenizer) stepAttributeName() bool {
	r, ok := t.consume()
	if !ok {
		t.finishAttrName()
		t.parseError(ErrEOFInTag)
		t.eof()
		return false
	}
	switch {
	case isWhitespace(r) || r == '/' || r == '>':
		t.finishAttrName()
		t.setReconsume(r)
		t.state = AfterAttributeNameState
	case r == '=':
		t.finishAttrName()
		t.state = BeforeAttributeValueState
	case r == 0:
		t.parseError(ErrUnexpectedNullCharacter)
		t.curAttrName = append(t.curAttrName, 0xFFFD)
	case r == '"' || r == '\'' || r == '<':
		t.parseError(ErrUnexpectedCharacterInAttributeName)
		t.curAttrName = append(t.curAttrName, r)
	default:
		t.curAttrName = append(t.curAttrName, toASCIILower(r))
	}
	return true
}

func (t *Tokenizer) finishAttrName() {
	if t.attrSeen == nil {
		t.attrSeen = make(map[string]bool)
	}
	name := string(t.curAttrName)
	if t.attrSeen[name] {
		t.parseError(ErrDuplicateAttribute)
		t.pendingDrop = true
		t.pendingAttrName = ""
		return
	}
	t.attrSeen[name] = true
	t.pendingDrop = false
	t.pendingAttrName = name
}

func (t *Tokenizer) stepAfterAttributeName() bool {
	r, ok := t.consume()
	if !ok {
		t.parseError(ErrEOFInTag)
		t.eof()
		return false
	}
	switch {
	case isWhitespace(r):
		return true
	case r == '/':
		t.state = SelfClosingStartTagState
	case r == '=':
		t.state = BeforeAttributeValueState
	case r == '>':
		t.finishTag()
		t.applyOverrideState()
	default:
		t.startAttr()
		t.setReconsume(r)
		t.state = AttributeNameState
	}
	return true
}

func (t *Tokenizer) stepBeforeAttributeValue() bool {
	r, ok := t.consume()
	if !ok {
		t.state = AttributeValueUnquotedState
		return true
	}
	switch {
	case isWhitespace(r):
		return true
	case r == '"':
		t.state = AttributeValueDoubleQuotedState
	case r == '\'':
		t.state = AttributeValueSingleQuotedState
	case r == '>':
		t.parseError(ErrMissingAttributeValue)
		t.finishTag()
		t.applyOverrideState()
	default:
		t.setReconsume(r)
		t.state = AttributeValueUnquotedState
	}
	return true
}

func (t *Tokenizer) stepAttributeValueQuoted(quote rune) bool {
	r, ok := t.consume()
	if !ok {
		t.parseError(ErrEOFInTag)
		t.eof()
		return false
	}
	switch {
	case r == quote:
		t.commitAttrValue()
		t.state = AfterAttributeValueQuotedState
	case r == '&':
		t.returnState = t.state
		t.charRefInAttr = true
		t.state = CharacterReferenceState
	case r == 0:
		t.parseError(ErrUnexpectedNullCharacter)
		t.curAttrValue = append(t.curAttrValue, 0xFFFD)
	default:
		t.curAttrValue = append(t.curAttrValue, r)
	}
	return true
}

func (t *Tokenizer) stepAttributeValueUnquoted() bool {
	r, ok := t.consume()
	if !ok {
		t.parseError(ErrEOFInTag)
		t.eof()
		return false
	}
	switch {
	case isWhitespace(r):
		t.commitAttrValue()
		t.state = BeforeAttributeNameState
	case r == '&':
		t.returnState = t.state
		t.charRefInAttr = true
		t.state = CharacterReferenceState
	case r == '>':
		t.commitAttrValue()
		t.finishTag()
		t.applyOverrideState()
	case r == 0:
		t.parseError(ErrUnexpectedNullCharacter)
		t.curAttrValue = append(t.curAttrValue, 0xFFFD)
	default:
		t.curAttrValue = append(t.curAttrValue, r)
	}
	return true
}

func (t *Tokenizer) commitAttrValue() {
	if t.pendingDrop || t.pendingAttrName == "" {
		t.pendingAttrName = ""
		return
	}
	t.tagAttrs = append(t.tagAttrs, dom.Attribute{Name: t.pendingAttrName, Value: string(t.curAttrValue)})
	t.pendingAttrName = ""
}

func (t *Tokenizer) stepAfterAttributeValueQuoted() bool {
	r, ok := t.consume()
	if !ok {
		t.parseError(ErrEOFInTag)
		t.eof()
		return false
	}
	switch {
	case isWhitespace(r):
		t.state = BeforeAttributeNameState
	case r == '/':
		t.state = SelfClosingStartTagState
	case r == '>':
		t.finishTag()
		t.applyOverrideState()
	default:
		t.parseError(ErrMissingWhitespaceBetweenAttributes)
		t.setReconsume(r)
		t.state = BeforeAttributeNameState
	}
	return true
}

func (t *Tokenizer) stepSelfClosingStartTag() bool {
	r, ok := t.consume()
	if !ok {
		t.parseError(ErrEOFInTag)
		t.eof()
		return false
	}
	switch r {
	case '>':
		t.tagSelfClosing = true
		t.finishTag()
		t.applyOverrideState()
	default:
		t.parseError(ErrUnexpectedSolidusInTag)
		t.setReconsume(r)
		t.state = BeforeAttributeNameState
	}
	return true
}

// --- Bogus comment / markup declaration ---

func (t *Tokenizer) stepBogusComment() bool {
	r, ok := t.consume()
	if !ok {
		t.emit(Token{Type: CommentToken, Data: string(t.buf)})
		t.eof()
		return false
	}
	switch r {
	case '>':
		t.emit(Token{Type: CommentToken, Data: string(t.buf)})
		t.state = DataState
	case 0:
		t.buf = append(t.buf, 0xFFFD)
	default:
		t.buf = append(t.buf, r)
	}
	return true
}

func (t *Tokenizer) stepMarkupDeclarationOpen() bool {
	rest := string(t.input[t.pos:])
	if strings.HasPrefix(rest, "--") {
		t.pos += 2
		t.buf = nil
		t.state = CommentStartState
		return true
	}
	if len(rest) >= 7 && strings.EqualFold(rest[:7], "DOCTYPE") {
		t.pos += 7
		t.state = DoctypeState
		return true
	}
	if strings.HasPrefix(rest, "[CDATA[") {
		t.pos += len("[CDATA[")
		// CDATA sections are only valid in foreign content, which is
		// out of scope; fall back to the spec's bogus-comment handling
		// for CDATA seen outside foreign content.
		t.parseError(ErrIncorrectlyOpenedComment)
		t.buf = []rune("[CDATA[")
		t.state = BogusCommentState
		return true
	}
	t.parseError(ErrIncorrectlyOpenedComment)
	t.buf = nil
	t.state = BogusCommentState
	return true
}

// --- Comment ---

func (t *Tokenizer) stepCommentStart() bool {
	r, ok := t.consume()
	if ok && r == '-' {
		t.state = CommentStartDashState
		return true
	}
	if ok && r == '>' {
		t.parseError(ErrAbruptClosingOfEmptyComment)
		t.emit(Token{Type: CommentToken, Data: string(t.buf)})
		t.state = DataState
		return true
	}
	if ok {
		t.setReconsume(r)
	}
	t.state = CommentState
	return true
}

func (t *Tokenizer) stepCommentStartDash() bool {
	r, ok := t.consume()
	if !ok {
		t.parseError(ErrEOFInComment)
		t.emit(Token{Type: CommentToken, Data: string(t.buf)})
		t.eof()
		return false
	}
	switch r {
	case '-':
		t.state = CommentEndState
	case '>':
		t.parseError(ErrAbruptClosingOfEmptyComment)
		t.emit(Token{Type: CommentToken, Data: string(t.buf)})
		t.state = DataState
	default:
		t.buf = append(t.buf, '-')
		t.setReconsume(r)
		t.state = CommentState
	}
	return true
}

func (t *Tokenizer) stepComment() bool {
	r, ok := t.consume()
	if !ok {
		t.parseError(ErrEOFInComment)
		t.emit(Token{Type: CommentToken, Data: string(t.buf)})
		t.eof()
		return false
	}
	switch r {
	case '<':
		t.buf = append(t.buf, r)
		t.state = CommentLessThanSignState
	case '-':
		t.state = CommentEndDashState
	case 0:
		t.parseError(ErrUnexpectedNullCharacter)
		t.buf = append(t.buf, 0xFFFD)
	default:
		t.buf = append(t.buf, r)
	}
	return true
}

func (t *Tokenizer) stepCommentLessThanSign() bool {
	r, ok := t.consume()
	if ok && r == '!' {
		t.buf = append(t.buf, r)
		t.state = CommentLessThanSignBangState
		return true
	}
	if ok && r == '<' {
		t.buf = append(t.buf, r)
		return true
	}
	if ok {
		t.setReconsume(r)
	}
	t.state = CommentState
	return true
}

func (t *Tokenizer) stepCommentLessThanSignBang() bool {
	r, ok := t.consume()
	if ok && r == '-' {
		t.state = CommentLessThanSignBangDashState
		return true
	}
	if ok {
		t.setReconsume(r)
	}
	t.state = CommentState
	return true
}

func (t *Tokenizer) stepCommentLessThanSignBangDash() bool {
	r, ok := t.consume()
	if ok && r == '-' {
		t.state = CommentLessThanSignBangDashDashState
		return true
	}
	if ok {
		t.setReconsume(r)
	}
	t.state = CommentEndDashState
	return true
}

func (t *Tokenizer) stepCommentLessThanSignBangDashDash() bool {
	r, ok := t.consume()
	if ok && r == '>' {
		t.setReconsume(r)
	} else if ok {
		t.parseError(ErrNestedComment)
		t.setReconsume(r)
	}
	t.state = CommentEndState
	return true
}

func (t *Tokenizer) stepCommentEndDash() bool {
	r, ok := t.consume()
	if !ok {
		t.parseError(ErrEOFInComment)
		t.emit(Token{Type: CommentToken, Data: string(t.buf)})
		t.eof()
		return false
	}
	if r == '-' {
		t.state = CommentEndState
		return true
	}
	t.buf = append(t.buf, '-')
	t.setReconsume(r)
	t.state = CommentState
	return true
}

func (t *Tokenizer) stepCommentEnd() bool {
	r, ok := t.consume()
	if !ok {
		t.parseError(ErrEOFInComment)
		t.emit(Token{Type: CommentToken, Data: string(t.buf)})
		t.eof()
		return false
	}
	switch r {
	case '>':
		t.emit(Token{Type: CommentToken, Data: string(t.buf)})
		t.state = DataState
	case '!':
		t.state = CommentEndBangState
	case '-':
		t.buf = append(t.buf, '-')
	default:
		t.buf = append(t.buf, '-', '-')
		t.setReconsume(r)
		t.state = CommentState
	}
	return true
}

func (t *Tokenizer) stepCommentEndBang() bool {
	r, ok := t.consume()
	if !ok {
		t.parseError(ErrEOFInComment)
		t.emit(Token{Type: CommentToken, Data: string(t.buf)})
		t.eof()
		return false
	}
	switch r {
	case '-':
		t.buf = append(t.buf, '-', '-', '!')
		t.state = CommentEndDashState
	case '>':
		t.parseError(ErrIncorrectlyOpenedComment)
		t.emit(Token{Type: CommentToken, Data: string(t.buf)})
		t.state = DataState
	default:
		t.buf = append(t.buf, '-', '-', '!')
		t.setReconsume(r)
		t.state = CommentState
	}
	return true
}

// --- DOCTYPE ---

func (t *Tokenizer) newDoctype() {
	t.doctypeTok = &Token{Type: DoctypeToken, ForceQuirks: false}
}

func (t *Tokenizer) emitDoctype() {
	t.emit(*t.doctypeTok)
	t.doctypeTok = nil
}

func (t *Tokenizer) stepDoctype() bool {
	r, ok := t.consume()
	if !ok {
		t.parseError(ErrEOFInDoctype)
		t.newDoctype()
		t.doctypeTok.ForceQuirks = true
		t.emitDoctype()
		t.eof()
		return false
	}
	switch {
	case isWhitespace(r):
		t.state = BeforeDoctypeNameState
	case r == '>':
		t.setReconsume(r)
		t.state = BeforeDoctypeNameState
	default:
		t.parseError(ErrMissingWhitespaceBeforeDoctypeName)
		t.setReconsume(r)
		t.state = BeforeDoctypeNameState
	}
	return true
}

func (t *Tokenizer) stepBeforeDoctypeName() bool {
	r, ok := t.consume()
	if !ok {
		t.parseError(ErrEOFInDoctype)
		t.newDoctype()
		t.doctypeTok.ForceQuirks = true
		t.emitDoctype()
		t.eof()
		return false
	}
	switch {
	case isWhitespace(r):
		return true
	case r == 0:
		t.parseError(ErrUnexpectedNullCharacter)
		t.newDoctype()
		t.buf = []rune{0xFFFD}
		t.doctypeTok.HasDoctypeName = true
		t.state = DoctypeNameState
	case r == '>':
		t.parseError(ErrMissingDoctypeName)
		t.newDoctype()
		t.doctypeTok.ForceQuirks = true
		t.emitDoctype()
		t.state = DataState
	default:
		t.newDoctype()
		t.buf = []rune{toASCIILower(r)}
		t.doctypeTok.HasDoctypeName = true
		t.state = DoctypeNameState
	}
	return true
}

func (t *Tokenizer) stepDoctypeName() bool {
	r, ok := t.consume()
	if !ok {
		t.parseError(ErrEOFInDoctype)
		t.doctypeTok.DoctypeName = string(t.buf)
		t.doctypeTok.ForceQuirks = true
		t.emitDoctype()
		t.eof()
		return false
	}
	switch {
	case isWhitespace(r):
		t.doctypeTok.DoctypeName = string(t.buf)
		t.state = AfterDoctypeNameState
	case r == '>':
		t.doctypeTok.DoctypeName = string(t.buf)
		t.emitDoctype()
		t.state = DataState
	case r == 0:
		t.parseError(ErrUnexpectedNullCharacter)
		t.buf = append(t.buf, 0xFFFD)
	default:
		t.buf = append(t.buf, toASCIILower(r))
	}
	return true
}

func (t *Tokenizer) stepAfterDoctypeName() bool {
	r, ok := t.consume()
	if !ok {
		t.parseError(ErrEOFInDoctype)
		t.doctypeTok.ForceQuirks = true
		t.emitDoctype()
		t.eof()
		return false
	}
	switch {
	case isWhitespace(r):
		return true
	case r == '>':
		t.emitDoctype()
		t.state = DataState
	default:
		rest := string(t.input[t.pos-1:])
		if len(rest) >= 6 && strings.EqualFold(rest[:6], "PUBLIC") {
			t.pos += 5
			t.state = AfterDoctypePublicKeywordState
			return true
		}
		if len(rest) >= 6 && strings.EqualFold(rest[:6], "SYSTEM") {
			t.pos += 5
			t.state = AfterDoctypeSystemKeywordState
			return true
		}
		t.parseError(ErrMissingQuoteBeforeDoctypePublicID)
		t.doctypeTok.ForceQuirks = true
		t.setReconsume(r)
		t.state = BogusDoctypeState
	}
	return true
}

func (t *Tokenizer) stepAfterDoctypePublicKeyword() bool {
	r, ok := t.consume()
	if !ok {
		t.parseError(ErrEOFInDoctype)
		t.doctypeTok.ForceQuirks = true
		t.emitDoctype()
		t.eof()
		return false
	}
	switch {
	case isWhitespace(r):
		t.state = BeforeDoctypePublicIdentifierState
	case r == '"':
		t.doctypeTok.HasPublicID = true
		t.buf = nil
		t.state = DoctypePublicIdentifierDoubleQuotedState
	case r == '\'':
		t.doctypeTok.HasPublicID = true
		t.buf = nil
		t.state = DoctypePublicIdentifierSingleQuotedState
	case r == '>':
		t.parseError(ErrMissingQuoteBeforeDoctypePublicID)
		t.doctypeTok.ForceQuirks = true
		t.emitDoctype()
		t.state = DataState
	default:
		t.parseError(ErrMissingQuoteBeforeDoctypePublicID)
		t.doctypeTok.ForceQuirks = true
		t.setReconsume(r)
		t.state = BogusDoctypeState
	}
	return true
}

func (t *Tokenizer) stepBeforeDoctypePublicIdentifier() bool {
	r, ok := t.consume()
	if !ok {
		t.parseError(ErrEOFInDoctype)
		t.doctypeTok.ForceQuirks = true
		t.emitDoctype()
		t.eof()
		return false
	}
	switch {
	case isWhitespace(r):
		return true
	case r == '"':
		t.doctypeTok.HasPublicID = true
		t.buf = nil
		t.state = DoctypePublicIdentifierDoubleQuotedState
	case r == '\'':
		t.doctypeTok.HasPublicID = true
		t.buf = nil
		t.state = DoctypePublicIdentifierSingleQuotedState
	case r == '>':
		t.parseError(ErrMissingQuoteBeforeDoctypePublicID)
		t.doctypeTok.ForceQuirks = true
		t.emitDoctype()
		t.state = DataState
	default:
		t.parseError(ErrMissingQuoteBeforeDoctypePublicID)
		t.doctypeTok.ForceQuirks = true
		t.setReconsume(r)
		t.state = BogusDoctypeState
	}
	return true
}

func (t *Tokenizer) stepDoctypePublicIdentifierQuoted(quote rune) bool {
	r, ok := t.consume()
	if !ok {
		t.parseError(ErrEOFInDoctype)
		t.doctypeTok.PublicID = string(t.buf)
		t.doctypeTok.ForceQuirks = true
		t.emitDoctype()
		t.eof()
		return false
	}
	switch {
	case r == quote:
		t.doctypeTok.PublicID = string(t.buf)
		t.state = AfterDoctypePublicIdentifierState
	case r == 0:
		t.parseError(ErrUnexpectedNullCharacter)
		t.buf = append(t.buf, 0xFFFD)
	case r == '>':
		t.parseError(ErrMissingQuoteBeforeDoctypePublicID)
		t.doctypeTok.PublicID = string(t.buf)
		t.doctypeTok.ForceQuirks = true
		t.emitDoctype()
		t.state = DataState
	default:
		t.buf = append(t.buf, r)
	}
	return true
}

func (t *Tokenizer) stepAfterDoctypePublicIdentifier() bool {
	r, ok := t.consume()
	if !ok {
		t.parseError(ErrEOFInDoctype)
		t.doctypeTok.ForceQuirks = true
		t.emitDoctype()
		t.eof()
		return false
	}
	switch {
	case isWhitespace(r):
		t.state = BetweenDoctypePublicAndSystemIdentifiersState
	case r == '>':
		t.emitDoctype()
		t.state = DataState
	case r == '"':
		t.doctypeTok.HasSystemID = true
		t.buf = nil
		t.state = DoctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		t.doctypeTok.HasSystemID = true
		t.buf = nil
		t.state = DoctypeSystemIdentifierSingleQuotedState
	default:
		t.parseError(ErrMissingQuoteBeforeDoctypeSystemID)
		t.doctypeTok.ForceQuirks = true
		t.setReconsume(r)
		t.state = BogusDoctypeState
	}
	return true
}

func (t *Tokenizer) stepBetweenDoctypePublicAndSystemIdentifiers() bool {
	r, ok := t.consume()
	if !ok {
		t.parseError(ErrEOFInDoctype)
		t.doctypeTok.ForceQuirks = true
		t.emitDoctype()
		t.eof()
		return false
	}
	switch {
	case isWhitespace(r):
		return true
	case r == '>':
		t.emitDoctype()
		t.state = DataState
	case r == '"':
		t.doctypeTok.HasSystemID = true
		t.buf = nil
		t.state = DoctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		t.doctypeTok.HasSystemID = true
		t.buf = nil
		t.state = DoctypeSystemIdentifierSingleQuotedState
	default:
		t.parseError(ErrMissingQuoteBeforeDoctypeSystemID)
		t.doctypeTok.ForceQuirks = true
		t.setReconsume(r)
		t.state = BogusDoctypeState
	}
	return true
}

func (t *Tokenizer) stepAfterDoctypeSystemKeyword() bool {
	r, ok := t.consume()
	if !ok {
		t.parseError(ErrEOFInDoctype)
		t.doctypeTok.ForceQuirks = true
		t.emitDoctype()
		t.eof()
		return false
	}
	switch {
	case isWhitespace(r):
		t.state = BeforeDoctypeSystemIdentifierState
	case r == '"':
		t.doctypeTok.HasSystemID = true
		t.buf = nil
		t.state = DoctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		t.doctypeTok.HasSystemID = true
		t.buf = nil
		t.state = DoctypeSystemIdentifierSingleQuotedState
	case r == '>':
		t.parseError(ErrMissingQuoteBeforeDoctypeSystemID)
		t.doctypeTok.ForceQuirks = true
		t.emitDoctype()
		t.state = DataState
	default:
		t.parseError(ErrMissingQuoteBeforeDoctypeSystemID)
		t.doctypeTok.ForceQuirks = true
		t.setReconsume(r)
		t.state = BogusDoctypeState
	}
	return true
}

func (t *Tokenizer) stepBeforeDoctypeSystemIdentifier() bool {
	r, ok := t.consume()
	if !ok {
		t.parseError(ErrEOFInDoctype)
		t.doctypeTok.ForceQuirks = true
		t.emitDoctype()
		t.eof()
		return false
	}
	switch {
	case isWhitespace(r):
		return true
	case r == '"':
		t.doctypeTok.HasSystemID = true
		t.buf = nil
		t.state = DoctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		t.doctypeTok.HasSystemID = true
		t.buf = nil
		t.state = DoctypeSystemIdentifierSingleQuotedState
	case r == '>':
		t.parseError(ErrMissingQuoteBeforeDoctypeSystemID)
		t.doctypeTok.ForceQuirks = true
		t.emitDoctype()
		t.state = DataState
	default:
		t.parseError(ErrMissingQuoteBeforeDoctypeSystemID)
		t.doctypeTok.ForceQuirks = true
		t.setReconsume(r)
		t.state = BogusDoctypeState
	}
	return true
}

func (t *Tokenizer) stepDoctypeSystemIdentifierQuoted(quote rune) bool {
	r, ok := t.consume()
	if !ok {
		t.parseError(ErrEOFInDoctype)
		t.doctypeTok.SystemID = string(t.buf)
		t.doctypeTok.ForceQuirks = true
		t.emitDoctype()
		t.eof()
		return false
	}
	switch {
	case r == quote:
		t.doctypeTok.SystemID = string(t.buf)
		t.state = AfterDoctypeSystemIdentifierState
	case r == 0:
		t.parseError(ErrUnexpectedNullCharacter)
		t.buf = append(t.buf, 0xFFFD)
	case r == '>':
		t.parseError(ErrMissingQuoteBeforeDoctypeSystemID)
		t.doctypeTok.SystemID = string(t.buf)
		t.doctypeTok.ForceQuirks = true
		t.emitDoctype()
		t.state = DataState
	default:
		t.buf = append(t.buf, r)
	}
	return true
}

func (t *Tokenizer) stepAfterDoctypeSystemIdentifier() bool {
	r, ok := t.consume()
	if !ok {
		t.parseError(ErrEOFInDoctype)
		t.doctypeTok.ForceQuirks = true
		t.emitDoctype()
		t.eof()
		return false
	}
	switch {
	case isWhitespace(r):
		return true
	case r == '>':
		t.emitDoctype()
		t.state = DataState
	default:
		t.parseError(ErrIncorrectlyOpenedComment)
		t.setReconsume(r)
		t.state = BogusDoctypeState
	}
	return true
}

func (t *Tokenizer) stepBogusDoctype() bool {
	r, ok := t.consume()
	if !ok {
		t.emitDoctype()
		t.eof()
		return false
	}
	switch r {
	case '>':
		t.emitDoctype()
		t.state = DataState
	case 0:
		t.parseError(ErrUnexpectedNullCharacter)
	}
	return true
}

// --- Character references ---

func (t *Tokenizer) flushAsCharacters(rs []rune) {
	if t.charRefInAttr {
		t.curAttrValue = append(t.curAttrValue, rs...)
		return
	}
	for _, r := range rs {
		t.emitChar(r)
	}
}

func (t *Tokenizer) stepCharacterReference() bool {
	r, ok := t.consume()
	if ok && isASCIIAlpha(r) {
		// The named-reference lookup reads t.input from t.pos, so step
		// back over r instead of holding it in the reconsume slot.
		t.pos--
		t.state = NamedCharacterReferenceState
		return true
	}
	if ok && r == '#' {
		t.state = NumericCharacterReferenceState
		t.buf = []rune{'#'}
		return true
	}
	t.flushAsCharacters([]rune{'&'})
	if ok {
		t.setReconsume(r)
	}
	t.state = t.returnState
	return true
}

func (t *Tokenizer) stepNamedCharacterReference() bool {
	matchLen, cps, endsWithSemi, found := lookupNamedCharacterReference(t.input, t.pos)
	if !found {
		t.flushAsCharacters([]rune{'&'})
		t.state = AmbiguousAmpersandState
		return true
	}
	matched := t.input[t.pos : t.pos+matchLen]
	t.pos += matchLen

	var next rune
	hasNext := t.pos < len(t.input)
	if hasNext {
		next = t.input[t.pos]
	}

	if t.charRefInAttr && !endsWithSemi && hasNext && (next == '=' || isASCIIAlpha(next) || isASCIIDigit(next)) {
		t.flushAsCharacters(append([]rune{'&'}, matched...))
		t.state = t.returnState
		return true
	}
	if !endsWithSemi {
		t.parseError(ErrMissingSemicolonAfterCharacterRef)
	}
	t.flushAsCharacters(cps)
	t.state = t.returnState
	return true
}

func (t *Tokenizer) stepAmbiguousAmpersand() bool {
	r, ok := t.consume()
	if ok && isASCIIAlnum(r) {
		t.flushAsCharacters([]rune{r})
		return true
	}
	if ok && r == ';' {
		t.parseError(ErrUnknownNamedCharacterReference)
	}
	if ok {
		t.setReconsume(r)
	}
	t.state = t.returnState
	return true
}

func isASCIIAlnum(r rune) bool {
	return isASCIIAlpha(r) || isASCIIDigit(r)
}

func (t *Tokenizer) stepNumericCharacterReference() bool {
	t.charRefCode = 0
	r, ok := t.consume()
	if ok && (r == 'x' || r == 'X') {
		t.buf = append(t.buf, r)
		t.state = HexadecimalCharacterReferenceStartState
		return true
	}
	if ok {
		t.setReconsume(r)
	}
	t.state = DecimalCharacterReferenceStartState
	return true
}

func (t *Tokenizer) stepHexadecimalCharacterReferenceStart() bool {
	r, ok := t.consume()
	if ok && isASCIIHexDigit(r) {
		t.setReconsume(r)
		t.state = HexadecimalCharacterReferenceState
		return true
	}
	t.parseError(ErrAbsenceOfDigitsInNumericCharacterRef)
	t.flushAsCharacters(t.buf)
	if ok {
		t.setReconsume(r)
	}
	t.state = t.returnState
	return true
}

func (t *Tokenizer) stepDecimalCharacterReferenceStart() bool {
	r, ok := t.consume()
	if ok && isASCIIDigit(r) {
		t.setReconsume(r)
		t.state = DecimalCharacterReferenceState
		return true
	}
	t.parseError(ErrAbsenceOfDigitsInNumericCharacterRef)
	t.flushAsCharacters(t.buf)
	if ok {
		t.setReconsume(r)
	}
	t.state = t.returnState
	return true
}

func (t *Tokenizer) stepHexadecimalCharacterReference() bool {
	r, ok := t.consume()
	if ok && isASCIIHexDigit(r) {
		t.charRefCode = t.charRefCode*16 + hexVal(r)
		return true
	}
	if ok && r == ';' {
		t.state = NumericCharacterReferenceEndState
		return true
	}
	t.parseError(ErrMissingSemicolonAfterCharacterRef)
	if ok {
		t.setReconsume(r)
	}
	t.state = NumericCharacterReferenceEndState
	return true
}

func (t *Tokenizer) stepDecimalCharacterReference() bool {
	r, ok := t.consume()
	if ok && isASCIIDigit(r) {
		t.charRefCode = t.charRefCode*10 + int64(r-'0')
		return true
	}
	if ok && r == ';' {
		t.state = NumericCharacterReferenceEndState
		return true
	}
	t.parseError(ErrMissingSemicolonAfterCharacterRef)
	if ok {
		t.setReconsume(r)
	}
	t.state = NumericCharacterReferenceEndState
	return true
}

func (t *Tokenizer) stepNumericCharacterReferenceEnd() bool {
	cp := t.charRefCode
	replacement, hasReplacement := c1ReplacementTable[rune(cp)]

	switch {
	case cp == 0:
		t.parseError(ErrNullCharacterReference)
		cp = 0xFFFD
	case cp > 0x10FFFF:
		t.parseError(ErrCharacterReferenceOutsideRange)
		cp = 0xFFFD
	case isSurrogate(rune(cp)):
		t.parseError(ErrSurrogateCharacterReference)
		cp = 0xFFFD
	case hasReplacement:
		t.parseError(ErrControlCharacterReference)
		cp = int64(replacement)
	case isNoncharacter(rune(cp)):
		// Recorded but left unmodified, per the standard.
		t.parseError("noncharacter-character-reference")
	case cp == 0x0D || (cp < 0x20 && cp != 0x09 && cp != 0x0A && cp != 0x0C):
		t.parseError(ErrControlCharacterReference)
	}
	t.flushAsCharacters([]rune{rune(cp)})
	t.state = t.returnState
	return true
}
