package style

import (
	"sort"
	"strconv"
	"strings"

	"github.com/AlvinKuruvilla/koala/css"
	"github.com/AlvinKuruvilla/koala/dom"
)

// matchedRule pairs a rule's declarations with the specificity and
// source position needed to order them during cascade: declarations
// are applied in increasing order of specificity, ties broken by
// source order.
type matchedRule struct {
	declarations []*css.Declaration
	specificity  css.Specificity
	sourceOrder  int
}

// matchRulesInSheet finds every rule in sheet that matches node, in
// document order (a rule with several comma-separated selectors is
// counted once per matching selector, each at that selector's own
// specificity).
func matchRulesInSheet(doc *dom.Document, node dom.Index, sheet *css.Stylesheet, order *int) []matchedRule {
	var matched []matchedRule
	for _, rule := range sheet.Rules {
		for _, sel := range rule.Selectors {
			if css.Matches(sel, doc, node) {
				matched = append(matched, matchedRule{
					declarations: rule.Declarations,
					specificity:  css.ComputeSpecificity(sel),
					sourceOrder:  *order,
				})
				*order++
			}
		}
	}
	return matched
}

// StyleDocument computes a ComputedStyle for every element in doc,
// cascading the given stylesheets in the order given (earlier sheets
// are lower precedence, so callers pass the user-agent sheet first
// and author sheets after, per CSS 2.1 §6.4.1's origin ordering)
// plus each element's inline `style` attribute, which always wins.
func StyleDocument(doc *dom.Document, sheets ...*css.Stylesheet) map[dom.Index]*ComputedStyle {
	result := make(map[dom.Index]*ComputedStyle)
	order := 0
	styleElement(doc, dom.ROOT, sheets, nil, &order, result)
	return result
}

func styleElement(doc *dom.Document, idx dom.Index, sheets []*css.Stylesheet, parent *ComputedStyle, order *int, result map[dom.Index]*ComputedStyle) {
	node := doc.Node(idx)
	computed := inheritFrom(parent)

	if node.Kind == dom.KindElement {
		applyPresentationalHints(node, computed)

		var matched []matchedRule
		for _, sheet := range sheets {
			matched = append(matched, matchRulesInSheet(doc, idx, sheet, order)...)
		}
		sort.SliceStable(matched, func(i, j int) bool {
			cmp := matched[i].specificity.Compare(matched[j].specificity)
			if cmp != 0 {
				return cmp < 0
			}
			return matched[i].sourceOrder < matched[j].sourceOrder
		})

		for _, m := range matched {
			ApplyDeclarations(computed, m.declarations, m.sourceOrder)
		}

		if styleAttr, ok := node.GetAttribute("style"); ok && styleAttr != "" {
			inlineDecls := css.ParseInlineStyle(styleAttr)
			ApplyDeclarations(computed, inlineDecls, *order)
			*order++
		}

		ResolveCustomProperties(computed)
		result[idx] = computed
	}

	for _, child := range doc.Children(idx) {
		styleElement(doc, child, sheets, computed, order, result)
	}
}

// ApplyDeclarations applies a single rule's (or the inline style
// attribute's) declarations to computed, expanding shorthands and
// substituting var() references against whatever custom properties
// have been seen on this element so far. order is the declaration
// block's cascade source order, which the margin logical-property
// group competes on.
func ApplyDeclarations(computed *ComputedStyle, decls []*css.Declaration, order int) {
	for _, decl := range decls {
		property := strings.ToLower(strings.TrimSpace(decl.Property))
		value := strings.TrimSpace(decl.Value)

		if strings.HasPrefix(property, "--") {
			ApplyCustomProperty(computed, property, value)
			continue
		}

		if resolved, ok := SubstituteVarsInValue(computed, value); ok {
			value = resolved
		} else {
			continue // guaranteed-invalid value: CSS Custom Properties §4
		}

		applyLonghandOrShorthand(computed, property, value, order)
	}
}

func applyLonghandOrShorthand(computed *ComputedStyle, property, value string, order int) {
	if ApplyLogicalMarginProperty(computed, property, value, order) {
		return
	}

	switch property {
	case "margin":
		ApplyMarginShorthand(computed, value, order)
	case "margin-top":
		ApplyMarginSide(computed, SideTop, value, order)
	case "margin-right":
		ApplyMarginSide(computed, SideRight, value, order)
	case "margin-bottom":
		ApplyMarginSide(computed, SideBottom, value, order)
	case "margin-left":
		ApplyMarginSide(computed, SideLeft, value, order)
	case "padding":
		ApplyPaddingShorthand(computed, value)
	case "padding-top":
		assignLength(computed, &computed.PaddingTop, property, value)
	case "padding-right":
		assignLength(computed, &computed.PaddingRight, property, value)
	case "padding-bottom":
		assignLength(computed, &computed.PaddingBottom, property, value)
	case "padding-left":
		assignLength(computed, &computed.PaddingLeft, property, value)
	case "border":
		ApplyBorderShorthand(computed, value)
	case "border-width":
		ApplyBorderWidthShorthand(computed, value)
	case "border-style":
		ApplyBorderStyleShorthand(computed, value)
	case "border-color":
		ApplyBorderColorShorthand(computed, value)
	case "border-top", "border-right", "border-bottom", "border-left":
		applyBorderSideShorthand(computed, property, value)
	case "border-top-width":
		assignLength(computed, &computed.BorderTopWidth, property, value)
	case "border-right-width":
		assignLength(computed, &computed.BorderRightWidth, property, value)
	case "border-bottom-width":
		assignLength(computed, &computed.BorderBottomWidth, property, value)
	case "border-left-width":
		assignLength(computed, &computed.BorderLeftWidth, property, value)
	case "border-top-style":
		computed.BorderTopStyle = value
	case "border-right-style":
		computed.BorderRightStyle = value
	case "border-bottom-style":
		computed.BorderBottomStyle = value
	case "border-left-style":
		computed.BorderLeftStyle = value
	case "border-top-color":
		computed.BorderTopColor = value
	case "border-right-color":
		computed.BorderRightColor = value
	case "border-bottom-color":
		computed.BorderBottomColor = value
	case "border-left-color":
		computed.BorderLeftColor = value
	case "flex":
		ApplyFlexShorthand(computed, value)
	case "flex-grow":
		computed.FlexGrow = value
	case "flex-shrink":
		computed.FlexShrink = value
	case "flex-basis":
		assignLength(computed, &computed.FlexBasis, property, value)
	case "flex-direction":
		computed.FlexDirection = value
	case "flex-wrap":
		computed.FlexWrap = value
	case "gap":
		applyGapShorthand(computed, value)
	case "row-gap":
		assignLength(computed, &computed.RowGap, property, value)
	case "column-gap":
		assignLength(computed, &computed.ColumnGap, property, value)
	case "grid-template-columns":
		computed.GridTemplateColumns = value
	case "grid-template-rows":
		computed.GridTemplateRows = value
	case "grid-template-areas":
		computed.GridTemplateAreas = value
	case "grid-column":
		computed.GridColumn = value
	case "grid-row":
		computed.GridRow = value
	case "display":
		computed.Display = value
	case "position":
		computed.Position = value
	case "top":
		assignLength(computed, &computed.InsetTop, property, value)
	case "right":
		assignLength(computed, &computed.InsetRight, property, value)
	case "bottom":
		assignLength(computed, &computed.InsetBottom, property, value)
	case "left":
		assignLength(computed, &computed.InsetLeft, property, value)
	case "float":
		computed.Float = value
	case "clear":
		computed.Clear = value
	case "overflow":
		computed.OverflowX = value
		computed.OverflowY = value
	case "overflow-x":
		computed.OverflowX = value
	case "overflow-y":
		computed.OverflowY = value
	case "box-sizing":
		computed.BoxSizing = value
	case "white-space":
		computed.WhiteSpace = value
	case "visibility":
		computed.Visibility = value
	case "opacity":
		computed.Opacity = value
	case "box-shadow":
		computed.BoxShadow = value
	case "list-style-type":
		computed.ListStyleType = value
	case "width":
		assignLength(computed, &computed.Width, property, value)
	case "height":
		assignLength(computed, &computed.Height, property, value)
	case "min-width":
		assignLength(computed, &computed.MinWidth, property, value)
	case "min-height":
		assignLength(computed, &computed.MinHeight, property, value)
	case "max-width":
		assignLength(computed, &computed.MaxWidth, property, value)
	case "max-height":
		assignLength(computed, &computed.MaxHeight, property, value)
	case "color":
		computed.Color = value
	case "background-color":
		computed.BackgroundColor = value
	case "font-family":
		computed.FontFamily = value
	case "font-size":
		assignLength(computed, &computed.FontSize, property, value)
	case "font-weight":
		computed.FontWeight = value
	case "font-style":
		computed.FontStyle = value
	case "line-height":
		computed.LineHeight = value
	case "text-align":
		computed.TextAlign = value
	case "writing-mode":
		computed.WritingMode = value
	default:
		warnUnknownProperty(property)
	}
}

func applyBorderSideShorthand(computed *ComputedStyle, property, value string) {
	var side PhysicalSide
	switch property {
	case "border-top":
		side = SideTop
	case "border-right":
		side = SideRight
	case "border-bottom":
		side = SideBottom
	default:
		side = SideLeft
	}
	var width, styleTok, color string
	for _, tok := range splitWhitespace(value) {
		lower := strings.ToLower(tok)
		switch {
		case borderStyleKeywords[lower]:
			styleTok = tok
		case borderWidthKeywords[lower] || looksLikeLength(lower):
			width = tok
		default:
			color = tok
		}
	}
	if width != "" {
		*computed.borderWidthSide(side) = parseLengthFor(computed, width)
	}
	if styleTok != "" {
		*computed.borderStyleSide(side) = styleTok
	}
	if color != "" {
		*computed.borderColorSide(side) = color
	}
}

// applyGapShorthand expands `gap: <row> <column>?` (CSS Box Alignment
// §7.1); a single value sets both axes.
func applyGapShorthand(computed *ComputedStyle, value string) {
	parts := splitWhitespace(value)
	if len(parts) == 0 {
		return
	}
	computed.RowGap = parseLengthFor(computed, parts[0])
	if len(parts) >= 2 {
		computed.ColumnGap = parseLengthFor(computed, parts[1])
	} else {
		computed.ColumnGap = computed.RowGap
	}
}

// applyPresentationalHints converts HTML presentational attributes to
// computed-style fields (HTML5 §2.4.4), generalizing style.go's
// version (font color, bgcolor) onto the typed ComputedStyle and its
// lower cascade precedence than any author or user-agent rule, since
// it runs before rule matching.
func applyPresentationalHints(node *dom.Node, computed *ComputedStyle) {
	if node.TagName == "font" {
		if color, ok := node.GetAttribute("color"); ok && color != "" {
			computed.Color = color
		}
	}
	if bgcolor, ok := node.GetAttribute("bgcolor"); ok && bgcolor != "" {
		computed.BackgroundColor = bgcolor
	}
	if widthAttr, ok := node.GetAttribute("width"); ok && widthAttr != "" {
		if l, ok := parseDimensionAttr(computed, widthAttr); ok {
			computed.Width = l
		}
	}
	if heightAttr, ok := node.GetAttribute("height"); ok && heightAttr != "" {
		if l, ok := parseDimensionAttr(computed, heightAttr); ok {
			computed.Height = l
		}
	}
	if align, ok := node.GetAttribute("align"); ok && align != "" {
		computed.TextAlign = align
	}
}

// parseDimensionAttr maps an HTML width/height presentational
// attribute to a length: a bare number means pixels, a percentage is
// kept unresolved (its Raw text carried forward) since it depends on
// the containing block.
func parseDimensionAttr(computed *ComputedStyle, v string) (css.Length, bool) {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		if _, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64); err == nil {
			return css.Length{Raw: v}, true
		}
		return css.Length{}, false
	}
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return css.ParseLength(v+"px", computed.fontSizePx()), true
	}
	return css.Length{}, false
}
