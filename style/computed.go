// Package style implements the CSS cascade engine and computed-style
// record produced by the cascade engine: matching selectors against an
// arena DOM, ordering declarations, and populating a typed
// ComputedStyle per element.
package style

import "github.com/AlvinKuruvilla/koala/css"

// PhysicalSide names one of the four box sides a margin/padding/
// border property can apply to.
type PhysicalSide int

const (
	SideTop PhysicalSide = iota
	SideRight
	SideBottom
	SideLeft
)

// MarginSide holds a physical margin side's resolved length plus the
// source_order stamp needed so logical and physical
// margin declarations can compete within the same logical-property
// group: an assignment wins iff its declaration's source order is >=
// the stamp already recorded here.
type MarginSide struct {
	Value       css.Length
	SourceOrder int
}

// ComputedStyle is the per-element record the cascade engine produces: every
// property is optional in spirit (the zero value means "inherit or
// initial"); each recognized property gets one typed field apiece.
// Custom properties (`--*`) live in CustomProperties rather than as a
// field, since their names are open-ended.
type ComputedStyle struct {
	Display     string
	WritingMode string
	Color       string
	FontFamily  string
	FontSize    css.Length
	FontWeight  string
	FontStyle   string
	LineHeight  string
	TextAlign   string

	BackgroundColor string

	MarginTop    MarginSide
	MarginRight  MarginSide
	MarginBottom MarginSide
	MarginLeft   MarginSide

	PaddingTop    css.Length
	PaddingRight  css.Length
	PaddingBottom css.Length
	PaddingLeft   css.Length

	BorderTopWidth    css.Length
	BorderRightWidth  css.Length
	BorderBottomWidth css.Length
	BorderLeftWidth   css.Length

	BorderTopStyle    string
	BorderRightStyle  string
	BorderBottomStyle string
	BorderLeftStyle   string

	BorderTopColor    string
	BorderRightColor  string
	BorderBottomColor string
	BorderLeftColor   string

	Width     css.Length
	Height    css.Length
	MinWidth  css.Length
	MinHeight css.Length
	MaxWidth  css.Length
	MaxHeight css.Length

	FlexGrow      string
	FlexShrink    string
	FlexBasis     css.Length
	FlexDirection string
	FlexWrap      string

	GridTemplateColumns string
	GridTemplateRows    string
	GridColumn          string
	GridRow             string
	GridTemplateAreas   string

	Position   string
	InsetTop   css.Length
	InsetRight css.Length
	InsetBottom css.Length
	InsetLeft  css.Length

	Float    string
	Clear    string
	OverflowX string
	OverflowY string

	BoxSizing  string
	WhiteSpace string
	Visibility string
	Opacity    string
	BoxShadow  string

	ListStyleType string

	RowGap    css.Length
	ColumnGap css.Length

	CustomProperties map[string]string
}

// NewComputedStyle returns a zero-valued ComputedStyle with its
// custom-property map initialized.
func NewComputedStyle() *ComputedStyle {
	return &ComputedStyle{CustomProperties: make(map[string]string)}
}

// marginSide returns a pointer to the MarginSide for side, so
// ApplyMarginSide (logical.go) and the shorthand expander can address
// any of the four physical sides uniformly.
func (s *ComputedStyle) marginSide(side PhysicalSide) *MarginSide {
	switch side {
	case SideTop:
		return &s.MarginTop
	case SideRight:
		return &s.MarginRight
	case SideBottom:
		return &s.MarginBottom
	default:
		return &s.MarginLeft
	}
}

func (s *ComputedStyle) paddingSide(side PhysicalSide) *css.Length {
	switch side {
	case SideTop:
		return &s.PaddingTop
	case SideRight:
		return &s.PaddingRight
	case SideBottom:
		return &s.PaddingBottom
	default:
		return &s.PaddingLeft
	}
}

func (s *ComputedStyle) borderWidthSide(side PhysicalSide) *css.Length {
	switch side {
	case SideTop:
		return &s.BorderTopWidth
	case SideRight:
		return &s.BorderRightWidth
	case SideBottom:
		return &s.BorderBottomWidth
	default:
		return &s.BorderLeftWidth
	}
}

func (s *ComputedStyle) borderStyleSide(side PhysicalSide) *string {
	switch side {
	case SideTop:
		return &s.BorderTopStyle
	case SideRight:
		return &s.BorderRightStyle
	case SideBottom:
		return &s.BorderBottomStyle
	default:
		return &s.BorderLeftStyle
	}
}

func (s *ComputedStyle) borderColorSide(side PhysicalSide) *string {
	switch side {
	case SideTop:
		return &s.BorderTopColor
	case SideRight:
		return &s.BorderRightColor
	case SideBottom:
		return &s.BorderBottomColor
	default:
		return &s.BorderLeftColor
	}
}

// inheritFrom seeds a new element's ComputedStyle with the properties
// CSS 2.1 §6.2 inherits from parent to child by default, before rule
// matching begins.
func inheritFrom(parent *ComputedStyle) *ComputedStyle {
	child := NewComputedStyle()
	if parent == nil {
		return child
	}
	child.Color = parent.Color
	child.FontFamily = parent.FontFamily
	child.FontSize = parent.FontSize
	child.FontWeight = parent.FontWeight
	child.FontStyle = parent.FontStyle
	child.LineHeight = parent.LineHeight
	child.TextAlign = parent.TextAlign
	child.WhiteSpace = parent.WhiteSpace
	child.Visibility = parent.Visibility
	child.ListStyleType = parent.ListStyleType
	child.WritingMode = parent.WritingMode
	return child
}

// fontSizePx returns the style's resolved font-size in pixels, falling
// back to css.DefaultFontSizePx if none has been computed yet, for
// resolving `em` lengths on this element.
func (s *ComputedStyle) fontSizePx() float64 {
	if s.FontSize.Resolved {
		return s.FontSize.Px
	}
	return css.DefaultFontSizePx
}
