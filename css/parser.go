package css

// Stylesheet represents a CSS stylesheet.
// CSS 2.1 §4 Syntax and basic data types
type Stylesheet struct {
	Rules []*Rule
}

// Rule represents a CSS rule: a comma-separated selector list sharing
// one declaration block.
// CSS 2.1 §4.1.7 Rule sets, declaration blocks, and selectors
type Rule struct {
	Selectors    []*ComplexSelector
	Declarations []*Declaration
}

// Declaration represents a CSS declaration.
// CSS 2.1 §4.1.8 Declarations and properties
type Declaration struct {
	Property string
	Value    string
}

// Parser parses CSS stylesheets.
type Parser struct {
	tokenizer *Tokenizer
}

// NewParser creates a new CSS parser.
func NewParser(input string) *Parser {
	return &Parser{
		tokenizer: NewTokenizer(input),
	}
}

// Parse parses the CSS input and returns a stylesheet.
func (p *Parser) Parse() *Stylesheet {
	stylesheet := &Stylesheet{
		Rules: make([]*Rule, 0),
	}

	for {
		p.tokenizer.SkipWhitespace()
		token := p.tokenizer.Peek()
		if token.Type == EOFToken {
			break
		}

		// Skip @-rules (media queries, imports, etc.)
		// CSS 2.1 §4.1.5 At-rules - not implementing for simplicity
		if token.Type == AtKeywordToken {
			p.skipAtRule()
			continue
		}

		rule := p.parseRule()
		if rule != nil {
			stylesheet.Rules = append(stylesheet.Rules, rule)
		}
	}

	return stylesheet
}

// skipAtRule skips an @-rule (like @media, @import, @keyframes).
// CSS 2.1 §4.1.5 At-rules
// We skip these because we don't implement them, but we need to properly
// parse past them to avoid infinite loops.
func (p *Parser) skipAtRule() {
	// Consume the @keyword token
	p.tokenizer.Next()

	// Skip tokens until we find either a semicolon (for simple @rules like @import)
	// or a block (for complex @rules like @media)
	braceDepth := 0
	for {
		token := p.tokenizer.Next()
		if token.Type == EOFToken {
			break
		}
		if token.Type == SemicolonToken && braceDepth == 0 {
			break
		}
		if token.Type == LeftBraceToken {
			braceDepth++
		}
		if token.Type == RightBraceToken {
			braceDepth--
			if braceDepth <= 0 {
				break
			}
		}
	}
}

// parseRule parses a CSS rule.
// CSS 2.1 §4.1.7 Rule sets
func (p *Parser) parseRule() *Rule {
	selectors := p.parseSelectors()
	if len(selectors) == 0 {
		// Still consume through the rule's block (or to the next
		// statement) so a malformed selector doesn't desync the rest
		// of the stylesheet.
		p.tokenizer.SkipWhitespace()
		if p.tokenizer.Peek().Type == LeftBraceToken {
			p.tokenizer.Next()
			p.parseDeclarations()
			p.tokenizer.SkipWhitespace()
			if p.tokenizer.Peek().Type == RightBraceToken {
				p.tokenizer.Next()
			}
		}
		return nil
	}

	p.tokenizer.SkipWhitespace()

	// Expect '{'
	token := p.tokenizer.Next()
	if token.Type != LeftBraceToken {
		return nil
	}

	declarations := p.parseDeclarations()

	p.tokenizer.SkipWhitespace()

	// Expect '}'
	token = p.tokenizer.Next()
	if token.Type != RightBraceToken {
		// Error recovery: skip to next '}'
		for token.Type != RightBraceToken && token.Type != EOFToken {
			token = p.tokenizer.Next()
		}
	}

	return &Rule{
		Selectors:    selectors,
		Declarations: declarations,
	}
}

// parseSelectors parses a comma-separated list of complex selectors.
// CSS 2.1 §5.2 Selector syntax
func (p *Parser) parseSelectors() []*ComplexSelector {
	var selectors []*ComplexSelector

	for {
		p.tokenizer.SkipWhitespace()

		selector := parseComplexSelector(p.tokenizer)
		if selector != nil {
			selectors = append(selectors, selector)
		}

		p.tokenizer.SkipWhitespace()
		token := p.tokenizer.Peek()

		if token.Type == CommaToken {
			p.tokenizer.Next() // consume comma
			continue
		}

		break
	}

	return selectors
}

// parseDeclarations parses declarations within a rule.
// CSS 2.1 §4.1.8 Declarations and properties
func (p *Parser) parseDeclarations() []*Declaration {
	declarations := make([]*Declaration, 0)

	for {
		p.tokenizer.SkipWhitespace()

		token := p.tokenizer.Peek()
		if token.Type == RightBraceToken || token.Type == EOFToken {
			break
		}

		decl := p.parseDeclaration()
		if decl != nil {
			declarations = append(declarations, decl)
		}

		p.tokenizer.SkipWhitespace()

		// Expect ';' or '}'
		token = p.tokenizer.Peek()
		if token.Type == SemicolonToken {
			p.tokenizer.Next()
		} else if token.Type == RightBraceToken {
			break
		}
	}

	return declarations
}

// parseDeclaration parses a single declaration.
// CSS 2.1 §4.1.8 Declarations and properties
func (p *Parser) parseDeclaration() *Declaration {
	p.tokenizer.SkipWhitespace()

	// Property name
	token := p.tokenizer.Next()
	if token.Type != IdentToken {
		return nil
	}
	property := token.Value

	p.tokenizer.SkipWhitespace()

	// Expect ':'
	token = p.tokenizer.Next()
	if token.Type != ColonToken {
		return nil
	}

	p.tokenizer.SkipWhitespace()

	// Parse value (simplified - just concatenate tokens until ';' or '}')
	value := ""
	for {
		token = p.tokenizer.Peek()
		if token.Type == SemicolonToken || token.Type == RightBraceToken || token.Type == EOFToken {
			break
		}

		p.tokenizer.Next()

		switch token.Type {
		case WhitespaceToken:
			if value != "" {
				value += " "
			}
		case HashToken:
			// Re-attach the '#' the tokenizer strips, so hex colors
			// survive into the declaration value.
			value += "#" + token.Value
		default:
			value += token.Value
		}
	}

	return &Declaration{
		Property: property,
		Value:    value,
	}
}

// Parse is a convenience function to parse CSS.
func Parse(input string) *Stylesheet {
	parser := NewParser(input)
	return parser.Parse()
}

// ParseInlineStyle parses the contents of an HTML `style="..."`
// attribute as a bare declaration list (no selector, no braces).
// CSS 2.1 §6.4.3: inline styles carry the highest cascade precedence.
func ParseInlineStyle(text string) []*Declaration {
	if text == "" {
		return nil
	}
	p := NewParser(text)
	return p.parseDeclarations()
}
