package style

import (
	"strings"

	"github.com/AlvinKuruvilla/koala/css"
)

// splitWhitespace splits s on CSS whitespace: CSS 2.1 §8.3's 1-4 value
// shorthand patterns all split on plain whitespace before assigning to
// sides.
func splitWhitespace(s string) []string {
	var result []string
	var current string
	for _, ch := range s {
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			if current != "" {
				result = append(result, current)
				current = ""
			}
		} else {
			current += string(ch)
		}
	}
	if current != "" {
		result = append(result, current)
	}
	return result
}

// fourSides expands a CSS 2.1 §8.3-style 1-4 value list into
// top/right/bottom/left following the clockwise shorthand rule margin
// and padding both use.
func fourSides(values []string) (top, right, bottom, left string, ok bool) {
	switch len(values) {
	case 1:
		return values[0], values[0], values[0], values[0], true
	case 2:
		return values[0], values[1], values[0], values[1], true
	case 3:
		return values[0], values[1], values[2], values[1], true
	case 4:
		return values[0], values[1], values[2], values[3], true
	default:
		return "", "", "", "", false
	}
}

// expandFourSidedLength expands a margin/padding/border-width
// shorthand and applies each side through apply, which is given the
// PhysicalSide and the longhand value text.
func expandFourSidedLength(value string, order int, apply func(side PhysicalSide, v string)) {
	top, right, bottom, left, ok := fourSides(splitWhitespace(value))
	if !ok {
		return
	}
	apply(SideTop, top)
	apply(SideRight, right)
	apply(SideBottom, bottom)
	apply(SideLeft, left)
}

// ApplyMarginShorthand expands `margin: ...` (CSS 2.1 §8.3) into the
// four physical sides, honoring the same source-order competition
// ApplyMarginSide uses for `margin-top` and the logical margin
// properties (logical.go), since all three can target the same side.
func ApplyMarginShorthand(style *ComputedStyle, value string, order int) {
	expandFourSidedLength(value, order, func(side PhysicalSide, v string) {
		ApplyMarginSide(style, side, v, order)
	})
}

// ApplyPaddingShorthand expands `padding: ...` (CSS 2.1 §8.4).
func ApplyPaddingShorthand(style *ComputedStyle, value string) {
	expandFourSidedLength(value, 0, func(side PhysicalSide, v string) {
		*style.paddingSide(side) = parseLengthFor(style, v)
	})
}

// ApplyBorderWidthShorthand expands `border-width: ...` (CSS 2.1 §8.5.3).
func ApplyBorderWidthShorthand(style *ComputedStyle, value string) {
	expandFourSidedLength(value, 0, func(side PhysicalSide, v string) {
		*style.borderWidthSide(side) = parseLengthFor(style, v)
	})
}

// ApplyBorderStyleShorthand expands `border-style: ...` (CSS 2.1 §8.5.3).
func ApplyBorderStyleShorthand(style *ComputedStyle, value string) {
	top, right, bottom, left, ok := fourSides(splitWhitespace(value))
	if !ok {
		return
	}
	*style.borderStyleSide(SideTop) = top
	*style.borderStyleSide(SideRight) = right
	*style.borderStyleSide(SideBottom) = bottom
	*style.borderStyleSide(SideLeft) = left
}

// ApplyBorderColorShorthand expands `border-color: ...` (CSS 2.1 §8.5.3).
func ApplyBorderColorShorthand(style *ComputedStyle, value string) {
	top, right, bottom, left, ok := fourSides(splitWhitespace(value))
	if !ok {
		return
	}
	*style.borderColorSide(SideTop) = top
	*style.borderColorSide(SideRight) = right
	*style.borderColorSide(SideBottom) = bottom
	*style.borderColorSide(SideLeft) = left
}

// ApplyBorderShorthand expands the combined `border: <width> <style>
// <color>` shorthand (CSS 2.1 §8.5.3) onto all four sides. Components
// may appear in any order and any may be omitted; each token is
// classified by shape (a border-style keyword, a width, or else
// treated as a color).
var borderStyleKeywords = map[string]bool{
	"none": true, "hidden": true, "dotted": true, "dashed": true,
	"solid": true, "double": true, "groove": true, "ridge": true,
	"inset": true, "outset": true,
}

var borderWidthKeywords = map[string]bool{"thin": true, "medium": true, "thick": true}

func ApplyBorderShorthand(style *ComputedStyle, value string) {
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
		ApplyBorderWidthShorthand(style, width)
	}
	if styleTok != "" {
		ApplyBorderStyleShorthand(style, styleTok)
	}
	if color != "" {
		ApplyBorderColorShorthand(style, color)
	}
}

func looksLikeLength(s string) bool {
	for _, suffix := range []string{"px", "pt", "em", "vw", "vh", "%"} {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return s != "" && (s[0] == '-' || (s[0] >= '0' && s[0] <= '9'))
}

// ApplyFlexShorthand expands the `flex` shorthand's special cases
// (CSS Flexible Box Layout §7.1): `none` zeroes grow/shrink and fixes
// basis at auto; `initial` gives grow 0, shrink 1 and an auto basis;
// `auto` sets grow/shrink to 1 with an auto basis; a bare number sets
// flex-grow and implies `flex-basis: 0%`. Any other value is split on
// whitespace and its first three parts are stored as grow, shrink and
// basis in that order, without validation.
func ApplyFlexShorthand(style *ComputedStyle, value string) {
	trimmed := strings.TrimSpace(value)
	switch trimmed {
	case "none":
		style.FlexGrow = "0"
		style.FlexShrink = "0"
		style.FlexBasis = parseLengthFor(style, "auto")
		return
	case "initial":
		style.FlexGrow = "0"
		style.FlexShrink = "1"
		style.FlexBasis = parseLengthFor(style, "auto")
		return
	case "auto":
		style.FlexGrow = "1"
		style.FlexShrink = "1"
		style.FlexBasis = parseLengthFor(style, "auto")
		return
	}

	parts := splitWhitespace(trimmed)
	if len(parts) == 1 && isNumeric(parts[0]) {
		style.FlexGrow = parts[0]
		style.FlexShrink = "1"
		style.FlexBasis = parseLengthFor(style, "0%")
		return
	}
	if len(parts) >= 1 {
		style.FlexGrow = parts[0]
	}
	if len(parts) >= 2 {
		style.FlexShrink = parts[1]
	}
	if len(parts) >= 3 {
		style.FlexBasis = parseLengthFor(style, parts[2])
	}
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r == '.' || r == '-' {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseLengthFor resolves value against style's current font-size,
// the same em-resolution context computed.go's fontSizePx provides
// for any other length-valued longhand.
func parseLengthFor(style *ComputedStyle, value string) css.Length {
	return css.ParseLength(value, style.fontSizePx())
}
