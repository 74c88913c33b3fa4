package style

import "github.com/AlvinKuruvilla/koala/css"

// ApplyMarginSide writes a margin length to one physical side,
// honoring the logical-property-group source-order rule CSS Logical Properties
// requires: physical (`margin-top`) and logical (`margin-block-start`)
// declarations targeting the same physical side compete by source
// order, not by specificity, so a later declaration always wins
// regardless of which form it used. An assignment is applied only
// when order >= the side's current stamp.
func ApplyMarginSide(style *ComputedStyle, side PhysicalSide, value string, order int) {
	cur := style.marginSide(side)
	if order < cur.SourceOrder {
		return
	}
	cur.Value = css.ParseLength(value, style.fontSizePx())
	cur.SourceOrder = order
}

// logicalAxis distinguishes the block axis (the direction paragraphs
// stack) from the inline axis (the direction text flows within a
// line), per CSS Logical Properties' mapping onto writing-mode.
type logicalAxis int

const (
	blockAxis logicalAxis = iota
	inlineAxis
)

// physicalSidesForLogical maps a (writing-mode, axis, "start"/"end")
// logical position to the physical side it resolves to. horizontal-tb
// is the common case (block=vertical, inline=horizontal); the
// vertical writing modes swap the axes, and vertical-rl runs the block
// axis from right to left.
func physicalSidesForLogical(writingMode string, axis logicalAxis, start bool) PhysicalSide {
	switch writingMode {
	case "vertical-rl":
		if axis == blockAxis {
			if start {
				return SideRight
			}
			return SideLeft
		}
		if start {
			return SideTop
		}
		return SideBottom
	case "vertical-lr":
		if axis == blockAxis {
			if start {
				return SideLeft
			}
			return SideRight
		}
		if start {
			return SideTop
		}
		return SideBottom
	default: // horizontal-tb
		if axis == blockAxis {
			if start {
				return SideTop
			}
			return SideBottom
		}
		if start {
			return SideLeft
		}
		return SideRight
	}
}

// ApplyLogicalMarginProperty resolves a `margin-block-start`-family
// property name to its physical side under the element's writing-mode
// and applies it through ApplyMarginSide. Returns false if name isn't
// a logical margin property this resolver recognizes.
func ApplyLogicalMarginProperty(style *ComputedStyle, name, value string, order int) bool {
	var axis logicalAxis
	var start bool
	switch name {
	case "margin-block-start":
		axis, start = blockAxis, true
	case "margin-block-end":
		axis, start = blockAxis, false
	case "margin-inline-start":
		axis, start = inlineAxis, true
	case "margin-inline-end":
		axis, start = inlineAxis, false
	default:
		return false
	}
	side := physicalSidesForLogical(style.WritingMode, axis, start)
	ApplyMarginSide(style, side, value, order)
	return true
}
