package html

// ParseIssue is the structured side channel for tokenizer and tree
// builder diagnostics: a human-readable message, the index of the
// token being processed, and an error/warning flag. Issues never abort
// parsing; they are collected and returned alongside the finished
// Document.
type ParseIssue struct {
	Message    string
	TokenIndex uint64
	IsError    bool
}

// Named parse error taxonomy. These are the message strings recorded
// in ParseIssue.Message for the well-known error conditions the
// tokenizer and tree builder recognize; no stable numeric codes are
// required by the contract.
const (
	ErrUnexpectedNullCharacter             = "unexpected-null-character"
	ErrEOFInTag                            = "eof-in-tag"
	ErrEOFInComment                        = "eof-in-comment"
	ErrEOFInDoctype                        = "eof-in-doctype"
	ErrEOFBeforeTagName                    = "eof-before-tag-name"
	ErrMissingSemicolonAfterCharacterRef   = "missing-semicolon-after-character-reference"
	ErrUnknownNamedCharacterReference      = "unknown-named-character-reference"
	ErrAbsenceOfDigitsInNumericCharacterRef = "absence-of-digits-in-numeric-character-reference"
	ErrNullCharacterReference              = "null-character-reference"
	ErrCharacterReferenceOutsideRange      = "character-reference-outside-unicode-range"
	ErrSurrogateCharacterReference         = "surrogate-character-reference"
	ErrControlCharacterReference           = "control-character-reference"
	ErrDuplicateAttribute                  = "duplicate-attribute"
	ErrMissingAttributeValue               = "missing-attribute-value"
	ErrMissingEndTagName                   = "missing-end-tag-name"
	ErrUnexpectedCharacterInAttributeName  = "unexpected-character-in-attribute-name"
	ErrUnexpectedSolidusInTag              = "unexpected-solidus-in-tag"
	ErrMissingWhitespaceBetweenAttributes  = "missing-whitespace-between-attributes"
	ErrIncorrectlyOpenedComment            = "incorrectly-opened-comment"
	ErrAbruptClosingOfEmptyComment         = "abrupt-closing-of-empty-comment"
	ErrNestedComment                       = "nested-comment"
	ErrMissingDoctypeName                  = "missing-doctype-name"
	ErrMissingWhitespaceBeforeDoctypeName  = "missing-whitespace-before-doctype-name"
	ErrMissingQuoteBeforeDoctypePublicID   = "missing-quote-before-doctype-public-identifier"
	ErrMissingQuoteBeforeDoctypeSystemID   = "missing-quote-before-doctype-system-identifier"

	ErrUnexpectedEndTag          = "unexpected-end-tag"
	ErrStrayStartTag             = "stray-start-tag"
	ErrUnexpectedDoctype         = "unexpected-doctype"
	ErrHeadingInHeading          = "heading-inside-heading"
	ErrUnclosedElements          = "unclosed-elements-at-eof"
	ErrUnimplementedInsertionMode = "unimplemented-insertion-mode"
)
