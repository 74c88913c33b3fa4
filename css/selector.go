// Selector grammar and matching: type, class, id, universal simple
// selectors, compounded into CompoundSelector, chained right-to-left
// by a Combinator into ComplexSelector.
//
// Spec references:
// - CSS 2.1 §5 Selectors: https://www.w3.org/TR/CSS21/selector.html
// - Selectors Level 4 §8.3 Combinators: https://www.w3.org/TR/selectors-4/#combinators
package css

import "github.com/AlvinKuruvilla/koala/dom"

// SimpleSelectorKind tags the variant of a SimpleSelector.
type SimpleSelectorKind int

const (
	// TypeSelectorKind matches an element by tag name.
	TypeSelectorKind SimpleSelectorKind = iota
	// ClassSelectorKind matches an element carrying the named class.
	ClassSelectorKind
	// IDSelectorKind matches an element by its id attribute.
	IDSelectorKind
	// UniversalSelectorKind ('*') matches any element.
	UniversalSelectorKind
)

// SimpleSelector is one atomic test within a CompoundSelector.
// Value is the tag/class/id name; empty and unused for Universal.
type SimpleSelector struct {
	Kind  SimpleSelectorKind
	Value string
}

// CompoundSelector is an unordered set of SimpleSelectors that must
// all match the same element (e.g. "div#main.container" is a type,
// an id, and a class selector compounded together).
type CompoundSelector struct {
	Simple []SimpleSelector
}

// Combinator names the relationship between a CompoundSelector and
// the one before it in a ComplexSelector's right-to-left chain.
type Combinator int

const (
	// Descendant ("A B"): B is any descendant of A.
	Descendant Combinator = iota
	// Child ("A > B"): B is a direct child of A.
	Child
	// NextSibling ("A + B"): B immediately follows A as a sibling.
	NextSibling
	// SubsequentSibling ("A ~ B"): B follows A among its siblings.
	SubsequentSibling
)

// CombinatorStep is one link in a ComplexSelector's ancestor chain:
// the Combinator relating Compound to the selector immediately to its
// right (the Subject, or the previous step's Compound).
type CombinatorStep struct {
	Combinator Combinator
	Compound   CompoundSelector
}

// ComplexSelector is a subject compound selector plus a right-to-left
// chain of (Combinator, CompoundSelector) pairs.
// Ancestors[0] is the step closest to Subject; later entries walk
// further left/up the chain.
type ComplexSelector struct {
	Subject   CompoundSelector
	Ancestors []CombinatorStep
}

// ParseSelector parses a single complex selector (no comma list) and
// reports whether the entire input was consumed as one selector. It
// is the standalone single-selector entry point;
// parseComplexSelector is the same grammar reused while reading
// a stylesheet's comma-separated selector list.
func ParseSelector(text string) (*ComplexSelector, bool) {
	tz := NewTokenizer(text)
	sel := parseComplexSelector(tz)
	if sel == nil {
		return nil, false
	}
	tz.SkipWhitespace()
	if tz.Peek().Type != EOFToken {
		return nil, false
	}
	return sel, true
}

// parseComplexSelector consumes one complex selector from tz, stopping
// at a comma, a '{', or EOF. Returns nil if no selector could be
// parsed at all (an empty or malformed selector returns absent).
func parseComplexSelector(tz *Tokenizer) *ComplexSelector {
	var compounds []CompoundSelector
	var combinators []Combinator

	for {
		tz.SkipWhitespace()
		compound := parseCompoundSelector(tz)
		if compound == nil {
			break
		}
		compounds = append(compounds, *compound)

		hadSpace := false
		for tz.Peek().Type == WhitespaceToken {
			tz.Next()
			hadSpace = true
		}

		next := tz.Peek()
		switch next.Type {
		case GreaterToken:
			tz.Next()
			tz.SkipWhitespace()
			combinators = append(combinators, Child)
			continue
		case PlusToken:
			tz.Next()
			tz.SkipWhitespace()
			combinators = append(combinators, NextSibling)
			continue
		case TildeToken:
			tz.Next()
			tz.SkipWhitespace()
			combinators = append(combinators, SubsequentSibling)
			continue
		case IdentToken, HashToken, DotToken, StarToken:
			if hadSpace {
				combinators = append(combinators, Descendant)
				continue
			}
		}
		break
	}

	if len(compounds) == 0 {
		return nil
	}

	sel := &ComplexSelector{Subject: compounds[len(compounds)-1]}
	for i := len(compounds) - 2; i >= 0; i-- {
		sel.Ancestors = append(sel.Ancestors, CombinatorStep{
			Combinator: combinators[i],
			Compound:   compounds[i],
		})
	}
	return sel
}

// parseCompoundSelector reads one run of simple selectors with no
// combinator between them: an optional type-or-universal selector
// followed by any number of class/id selectors. Attribute selectors
// and pseudo-classes/elements are outside this module's selector grammar
// (not in scope); they are consumed and dropped so a
// stylesheet containing them still parses the rest of its rules.
func parseCompoundSelector(tz *Tokenizer) *CompoundSelector {
	var simple []SimpleSelector

	for {
		tok := tz.Peek()
		switch tok.Type {
		case IdentToken:
			tz.Next()
			simple = append(simple, SimpleSelector{Kind: TypeSelectorKind, Value: tok.Value})
		case StarToken:
			tz.Next()
			simple = append(simple, SimpleSelector{Kind: UniversalSelectorKind})
		case HashToken:
			tz.Next()
			simple = append(simple, SimpleSelector{Kind: IDSelectorKind, Value: tok.Value})
		case DotToken:
			tz.Next()
			name := tz.Next()
			if name.Type == IdentToken {
				simple = append(simple, SimpleSelector{Kind: ClassSelectorKind, Value: name.Value})
			}
		case LeftBracketToken:
			tz.Next()
			for {
				t := tz.Next()
				if t.Type == RightBracketToken || t.Type == EOFToken {
					break
				}
			}
		case ColonToken:
			tz.Next()
			if tz.Peek().Type == ColonToken {
				tz.Next() // pseudo-element '::'
			}
			tz.Next() // pseudo-class/element name
			if tz.Peek().Type == LeftParenToken {
				tz.Next()
				depth := 1
				for depth > 0 {
					t := tz.Next()
					if t.Type == EOFToken {
						break
					}
					if t.Type == LeftParenToken {
						depth++
					}
					if t.Type == RightParenToken {
						depth--
					}
				}
			}
		default:
			if len(simple) == 0 {
				return nil
			}
			return &CompoundSelector{Simple: simple}
		}
	}
}

// Matches reports whether selector matches node, walking the
// right-to-left combinator chain: Descendant
// searches ancestors, Child checks the immediate parent, NextSibling
// checks the immediately preceding element sibling, and
// SubsequentSibling searches preceding element siblings.
func Matches(selector *ComplexSelector, doc *dom.Document, node dom.Index) bool {
	if !compoundMatches(doc, node, selector.Subject) {
		return false
	}
	return matchAncestors(doc, node, selector.Ancestors)
}

func matchAncestors(doc *dom.Document, node dom.Index, steps []CombinatorStep) bool {
	if len(steps) == 0 {
		return true
	}
	step := steps[0]
	rest := steps[1:]

	switch step.Combinator {
	case Child:
		parent, ok := doc.Parent(node)
		if !ok {
			return false
		}
		return compoundMatches(doc, parent, step.Compound) && matchAncestors(doc, parent, rest)
	case Descendant:
		for _, ancestor := range doc.Ancestors(node) {
			if compoundMatches(doc, ancestor, step.Compound) && matchAncestors(doc, ancestor, rest) {
				return true
			}
		}
		return false
	case NextSibling:
		sib, ok := previousElementSibling(doc, node)
		if !ok {
			return false
		}
		return compoundMatches(doc, sib, step.Compound) && matchAncestors(doc, sib, rest)
	case SubsequentSibling:
		for _, sib := range doc.PrecedingSiblings(node) {
			if doc.Node(sib).Kind != dom.KindElement {
				continue
			}
			if compoundMatches(doc, sib, step.Compound) && matchAncestors(doc, sib, rest) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func previousElementSibling(doc *dom.Document, node dom.Index) (dom.Index, bool) {
	for _, sib := range doc.PrecedingSiblings(node) {
		if doc.Node(sib).Kind == dom.KindElement {
			return sib, true
		}
	}
	return dom.NoIndex, false
}

func compoundMatches(doc *dom.Document, node dom.Index, compound CompoundSelector) bool {
	el, ok := doc.AsElement(node)
	if !ok {
		return false
	}
	for _, s := range compound.Simple {
		switch s.Kind {
		case TypeSelectorKind:
			if el.TagName != s.Value {
				return false
			}
		case IDSelectorKind:
			if elementID(el) != s.Value {
				return false
			}
		case ClassSelectorKind:
			if !hasClass(el, s.Value) {
				return false
			}
		case UniversalSelectorKind:
			// always matches
		}
	}
	return true
}

func elementID(el *dom.Node) string {
	v, _ := el.GetAttribute("id")
	return v
}

// hasClass reports whether el carries class in its whitespace-
// separated "class" attribute.
func hasClass(el *dom.Node, class string) bool {
	v, ok := el.GetAttribute("class")
	if !ok {
		return false
	}
	start := -1
	for i := 0; i <= len(v); i++ {
		if i == len(v) || v[i] == ' ' || v[i] == '\t' || v[i] == '\n' || v[i] == '\r' || v[i] == '\f' {
			if start >= 0 && v[start:i] == class {
				return true
			}
			start = -1
		} else if start < 0 {
			start = i
		}
	}
	return false
}
