package css

import "testing"

func TestParseSimpleRule(t *testing.T) {
	input := "div { color: red; }"
	stylesheet := Parse(input)

	if len(stylesheet.Rules) != 1 {
		t.Fatalf("Expected 1 rule, got %d", len(stylesheet.Rules))
	}

	rule := stylesheet.Rules[0]
	if len(rule.Selectors) != 1 {
		t.Fatalf("Expected 1 selector, got %d", len(rule.Selectors))
	}

	selector := rule.Selectors[0]
	if len(selector.Ancestors) != 0 {
		t.Fatalf("Expected no ancestor compounds, got %d", len(selector.Ancestors))
	}
	if len(selector.Subject.Simple) != 1 || selector.Subject.Simple[0].Kind != TypeSelectorKind || selector.Subject.Simple[0].Value != "div" {
		t.Errorf("Expected subject type selector 'div', got %+v", selector.Subject)
	}

	if len(rule.Declarations) != 1 {
		t.Fatalf("Expected 1 declaration, got %d", len(rule.Declarations))
	}

	decl := rule.Declarations[0]
	if decl.Property != "color" {
		t.Errorf("Expected property 'color', got %v", decl.Property)
	}
	if decl.Value != "red" {
		t.Errorf("Expected value 'red', got %v", decl.Value)
	}
}

func TestParseIDSelector(t *testing.T) {
	input := "#header { font-size: 20px; }"
	stylesheet := Parse(input)

	if len(stylesheet.Rules) != 1 {
		t.Fatalf("Expected 1 rule, got %d", len(stylesheet.Rules))
	}

	subject := stylesheet.Rules[0].Selectors[0].Subject
	if len(subject.Simple) != 1 || subject.Simple[0].Kind != IDSelectorKind || subject.Simple[0].Value != "header" {
		t.Errorf("Expected ID 'header', got %+v", subject)
	}
}

func TestParseClassSelector(t *testing.T) {
	input := ".container { width: 100px; }"
	stylesheet := Parse(input)

	if len(stylesheet.Rules) != 1 {
		t.Fatalf("Expected 1 rule, got %d", len(stylesheet.Rules))
	}

	subject := stylesheet.Rules[0].Selectors[0].Subject
	if len(subject.Simple) != 1 || subject.Simple[0].Kind != ClassSelectorKind || subject.Simple[0].Value != "container" {
		t.Errorf("Expected class 'container', got %+v", subject)
	}
}

func TestParseCombinedSelector(t *testing.T) {
	input := "div#main.container { margin: 10px; }"
	stylesheet := Parse(input)

	if len(stylesheet.Rules) != 1 {
		t.Fatalf("Expected 1 rule, got %d", len(stylesheet.Rules))
	}

	subject := stylesheet.Rules[0].Selectors[0].Subject
	if len(subject.Simple) != 3 {
		t.Fatalf("Expected 3 simple selectors, got %d: %+v", len(subject.Simple), subject)
	}
	if subject.Simple[0].Kind != TypeSelectorKind || subject.Simple[0].Value != "div" {
		t.Errorf("Expected type 'div', got %+v", subject.Simple[0])
	}
	if subject.Simple[1].Kind != IDSelectorKind || subject.Simple[1].Value != "main" {
		t.Errorf("Expected ID 'main', got %+v", subject.Simple[1])
	}
	if subject.Simple[2].Kind != ClassSelectorKind || subject.Simple[2].Value != "container" {
		t.Errorf("Expected class 'container', got %+v", subject.Simple[2])
	}
}

func TestParseMultipleClasses(t *testing.T) {
	input := ".container.active { display: block; }"
	stylesheet := Parse(input)

	if len(stylesheet.Rules) != 1 {
		t.Fatalf("Expected 1 rule, got %d", len(stylesheet.Rules))
	}

	subject := stylesheet.Rules[0].Selectors[0].Subject
	if len(subject.Simple) != 2 {
		t.Fatalf("Expected 2 classes, got %d", len(subject.Simple))
	}
	if subject.Simple[0].Value != "container" {
		t.Errorf("Expected first class 'container', got %v", subject.Simple[0].Value)
	}
	if subject.Simple[1].Value != "active" {
		t.Errorf("Expected second class 'active', got %v", subject.Simple[1].Value)
	}
}

func TestParseDescendantSelector(t *testing.T) {
	input := "div p { color: blue; }"
	stylesheet := Parse(input)

	selector := stylesheet.Rules[0].Selectors[0]
	if len(selector.Ancestors) != 1 {
		t.Fatalf("Expected 1 ancestor compound, got %d", len(selector.Ancestors))
	}
	if selector.Ancestors[0].Combinator != Descendant {
		t.Errorf("Expected Descendant combinator, got %v", selector.Ancestors[0].Combinator)
	}
	if selector.Ancestors[0].Compound.Simple[0].Value != "div" {
		t.Errorf("Expected ancestor 'div', got %v", selector.Ancestors[0].Compound.Simple[0].Value)
	}
	if selector.Subject.Simple[0].Value != "p" {
		t.Errorf("Expected subject 'p', got %v", selector.Subject.Simple[0].Value)
	}
}

func TestParseChildCombinator(t *testing.T) {
	input := "div > p { color: blue; }"
	stylesheet := Parse(input)

	selector := stylesheet.Rules[0].Selectors[0]
	if len(selector.Ancestors) != 1 || selector.Ancestors[0].Combinator != Child {
		t.Fatalf("Expected 1 Child ancestor, got %+v", selector.Ancestors)
	}
	if selector.Ancestors[0].Compound.Simple[0].Value != "div" {
		t.Errorf("Expected ancestor 'div', got %v", selector.Ancestors[0].Compound.Simple[0].Value)
	}
}

func TestParseAdjacentSiblingCombinator(t *testing.T) {
	input := "h1 + p { margin-top: 0; }"
	stylesheet := Parse(input)

	selector := stylesheet.Rules[0].Selectors[0]
	if len(selector.Ancestors) != 1 || selector.Ancestors[0].Combinator != NextSibling {
		t.Fatalf("Expected 1 NextSibling ancestor, got %+v", selector.Ancestors)
	}
}

func TestParseGeneralSiblingCombinator(t *testing.T) {
	input := "h1 ~ p { color: gray; }"
	stylesheet := Parse(input)

	selector := stylesheet.Rules[0].Selectors[0]
	if len(selector.Ancestors) != 1 || selector.Ancestors[0].Combinator != SubsequentSibling {
		t.Fatalf("Expected 1 SubsequentSibling ancestor, got %+v", selector.Ancestors)
	}
}

func TestParseUniversalSelector(t *testing.T) {
	input := "* { box-sizing: border-box; }"
	stylesheet := Parse(input)

	subject := stylesheet.Rules[0].Selectors[0].Subject
	if len(subject.Simple) != 1 || subject.Simple[0].Kind != UniversalSelectorKind {
		t.Errorf("Expected universal selector, got %+v", subject)
	}
}

func TestParseMultipleSelectors(t *testing.T) {
	input := "h1, h2, h3 { font-weight: bold; }"
	stylesheet := Parse(input)

	if len(stylesheet.Rules) != 1 {
		t.Fatalf("Expected 1 rule, got %d", len(stylesheet.Rules))
	}

	rule := stylesheet.Rules[0]
	if len(rule.Selectors) != 3 {
		t.Fatalf("Expected 3 selectors, got %d", len(rule.Selectors))
	}

	tags := []string{"h1", "h2", "h3"}
	for i, tag := range tags {
		if rule.Selectors[i].Subject.Simple[0].Value != tag {
			t.Errorf("Expected selector %d to be '%s', got %v", i, tag, rule.Selectors[i].Subject.Simple[0].Value)
		}
	}
}

func TestParseMultipleDeclarations(t *testing.T) {
	input := "div { color: red; background: blue; margin: 10px; }"
	stylesheet := Parse(input)

	if len(stylesheet.Rules) != 1 {
		t.Fatalf("Expected 1 rule, got %d", len(stylesheet.Rules))
	}

	rule := stylesheet.Rules[0]
	if len(rule.Declarations) != 3 {
		t.Fatalf("Expected 3 declarations, got %d", len(rule.Declarations))
	}

	expected := map[string]string{
		"color":      "red",
		"background": "blue",
		"margin":     "10px",
	}

	for _, decl := range rule.Declarations {
		expectedValue, ok := expected[decl.Property]
		if !ok {
			t.Errorf("Unexpected property: %v", decl.Property)
			continue
		}
		if decl.Value != expectedValue {
			t.Errorf("Property %v: expected value %v, got %v", decl.Property, expectedValue, decl.Value)
		}
	}
}

func TestParseMultipleRules(t *testing.T) {
	input := `
		div { color: red; }
		p { font-size: 14px; }
		.container { width: 100%; }
	`
	stylesheet := Parse(input)

	if len(stylesheet.Rules) != 3 {
		t.Fatalf("Expected 3 rules, got %d", len(stylesheet.Rules))
	}
}

func TestParseComplexValue(t *testing.T) {
	input := "div { border: 1px solid black; }"
	stylesheet := Parse(input)

	if len(stylesheet.Rules) != 1 {
		t.Fatalf("Expected 1 rule, got %d", len(stylesheet.Rules))
	}

	decl := stylesheet.Rules[0].Declarations[0]
	if decl.Property != "border" {
		t.Errorf("Expected property 'border', got %v", decl.Property)
	}
	if decl.Value != "1px solid black" {
		t.Errorf("Expected value '1px solid black', got %v", decl.Value)
	}
}

func TestParseHexColorValue(t *testing.T) {
	stylesheet := Parse("div { color: #ff0000; border: 1px solid #00ff00; }")

	decls := stylesheet.Rules[0].Declarations
	if decls[0].Value != "#ff0000" {
		t.Errorf("Expected value '#ff0000', got %v", decls[0].Value)
	}
	if decls[1].Value != "1px solid #00ff00" {
		t.Errorf("Expected value '1px solid #00ff00', got %v", decls[1].Value)
	}
}

// TestParseAttributeSelector tests that attribute selectors are skipped gracefully.
// CSS 2.1 §5.8 Attribute selectors
func TestParseAttributeSelector(t *testing.T) {
	input := `
input[type='submit'] { font-family: Verdana; }
.class { color: red; }
`
	stylesheet := Parse(input)

	// Should parse successfully and have at least the .class rule
	if len(stylesheet.Rules) < 1 {
		t.Errorf("Expected at least 1 rule, got %d", len(stylesheet.Rules))
	}

	// The .class rule should be parsed correctly
	foundClassRule := false
	for _, rule := range stylesheet.Rules {
		if len(rule.Selectors) > 0 {
			for _, s := range rule.Selectors[0].Subject.Simple {
				if s.Kind == ClassSelectorKind && s.Value == "class" {
					foundClassRule = true
				}
			}
		}
	}

	if !foundClassRule {
		t.Error("Expected .class rule to be parsed")
	}
}

// TestParseAtRule tests that @-rules are skipped gracefully.
// CSS 2.1 §4.1.5 At-rules
func TestParseAtRule(t *testing.T) {
	input := `
body { color: black; }
@media screen and (max-width: 600px) {
body { color: blue; }
}
.test { color: red; }
`
	stylesheet := Parse(input)

	// Should parse successfully and have the body and .test rules
	if len(stylesheet.Rules) < 2 {
		t.Errorf("Expected at least 2 rules, got %d", len(stylesheet.Rules))
	}

	foundBody := false
	foundTest := false
	for _, rule := range stylesheet.Rules {
		if len(rule.Selectors) == 0 {
			continue
		}
		for _, s := range rule.Selectors[0].Subject.Simple {
			if s.Kind == TypeSelectorKind && s.Value == "body" {
				foundBody = true
			}
			if s.Kind == ClassSelectorKind && s.Value == "test" {
				foundTest = true
			}
		}
	}

	if !foundBody {
		t.Error("Expected body rule to be parsed")
	}
	if !foundTest {
		t.Error("Expected .test rule to be parsed")
	}
}

func TestParsePseudoClassesStripped(t *testing.T) {
	// CSS 2.1 §5.11 Pseudo-classes are not in the selector grammar;
	// the compound parser consumes and drops them so the rest of the
	// compound (and stylesheet) still parses.
	input := "a:hover { color: red; } p:first-child { margin-top: 0; }"
	stylesheet := Parse(input)

	if len(stylesheet.Rules) != 2 {
		t.Fatalf("Expected 2 rules, got %d", len(stylesheet.Rules))
	}
	if stylesheet.Rules[0].Selectors[0].Subject.Simple[0].Value != "a" {
		t.Errorf("Expected subject 'a', got %+v", stylesheet.Rules[0].Selectors[0].Subject)
	}
}

func TestParsePseudoElementsStripped(t *testing.T) {
	input := "p::before { content: 'x'; }"
	stylesheet := Parse(input)

	if len(stylesheet.Rules) != 1 {
		t.Fatalf("Expected 1 rule, got %d", len(stylesheet.Rules))
	}
	if stylesheet.Rules[0].Selectors[0].Subject.Simple[0].Value != "p" {
		t.Errorf("Expected subject 'p', got %+v", stylesheet.Rules[0].Selectors[0].Subject)
	}
}

// TestParseInlineStyle tests parsing of inline style attributes.
// CSS 2.1 §6.4.3: Inline styles have the highest specificity.
func TestParseInlineStyle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []*Declaration
	}{
		{
			name:  "single declaration",
			input: "color: red",
			expected: []*Declaration{
				{Property: "color", Value: "red"},
			},
		},
		{
			name:  "single declaration with semicolon",
			input: "color: red;",
			expected: []*Declaration{
				{Property: "color", Value: "red"},
			},
		},
		{
			name:  "multiple declarations",
			input: "color: red; font-size: 16px",
			expected: []*Declaration{
				{Property: "color", Value: "red"},
				{Property: "font-size", Value: "16px"},
			},
		},
		{
			name:  "multiple declarations with trailing semicolon",
			input: "color: red; font-size: 16px;",
			expected: []*Declaration{
				{Property: "color", Value: "red"},
				{Property: "font-size", Value: "16px"},
			},
		},
		{
			name:  "multiple declarations with spaces",
			input: "  color: red;  font-size: 16px;  background: blue;  ",
			expected: []*Declaration{
				{Property: "color", Value: "red"},
				{Property: "font-size", Value: "16px"},
				{Property: "background", Value: "blue"},
			},
		},
		{
			name:  "complex values",
			input: "margin: 10px 20px 30px 40px; padding: 5px;",
			expected: []*Declaration{
				{Property: "margin", Value: "10px 20px 30px 40px"},
				{Property: "padding", Value: "5px"},
			},
		},
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "whitespace only",
			input:    "   ",
			expected: []*Declaration{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			declarations := ParseInlineStyle(tt.input)

			if tt.expected == nil {
				if declarations != nil {
					t.Errorf("Expected nil, got %v", declarations)
				}
				return
			}

			if len(declarations) != len(tt.expected) {
				t.Errorf("Expected %d declarations, got %d", len(tt.expected), len(declarations))
				return
			}

			for i, expected := range tt.expected {
				if declarations[i].Property != expected.Property {
					t.Errorf("Declaration %d: expected property '%s', got '%s'",
						i, expected.Property, declarations[i].Property)
				}
				if declarations[i].Value != expected.Value {
					t.Errorf("Declaration %d: expected value '%s', got '%s'",
						i, expected.Value, declarations[i].Value)
				}
			}
		})
	}
}
