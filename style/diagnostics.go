package style

import (
	"strings"
	"sync"

	"github.com/AlvinKuruvilla/koala/css"
	"github.com/AlvinKuruvilla/koala/log"
)

// warnedUnknown and warnedBadValue track which property names have already produced a
// diagnostic, so a stylesheet repeating the same mistake on every
// element logs once per property name, not once per declaration
// applied.
var (
	warnMu         sync.Mutex
	warnedUnknown  = map[string]bool{}
	warnedBadValue = map[string]bool{}
)

// warnUnknownProperty logs the first time property is seen applied by
// applyLonghandOrShorthand's default case, i.e. a name this cascade
// engine doesn't recognize at all.
func warnUnknownProperty(property string) {
	warnMu.Lock()
	defer warnMu.Unlock()
	if warnedUnknown[property] {
		return
	}
	warnedUnknown[property] = true
	log.Warnf("css: unknown property %q", property)
}

// warnUnparseableValue logs the first time a value for property fails
// to parse; the caller ignores the declaration, leaving the property's
// previous value in place (CSS 2.1 §4.2).
func warnUnparseableValue(property string) {
	warnMu.Lock()
	defer warnMu.Unlock()
	if warnedBadValue[property] {
		return
	}
	warnedBadValue[property] = true
	log.Warnf("css: unparseable value for property %q", property)
}

// deferredLengthKeywords are values ParseLength leaves Resolved=false
// on that are not parse failures: recognized non-length keywords a
// later layout pass still needs to see verbatim.
var deferredLengthKeywords = map[string]bool{
	"auto": true, "inherit": true, "initial": true, "unset": true, "normal": true,
}

// assignLength parses value as a length for property and writes it to
// *dest, warning once per property name and leaving *dest untouched
// when the value is neither a resolvable length, a deferred viewport
// unit (vw/vh), nor a recognized deferred keyword.
func assignLength(computed *ComputedStyle, dest *css.Length, property, value string) {
	parsed := parseLengthFor(computed, value)
	if parsed.Resolved {
		*dest = parsed
		return
	}
	lower := strings.ToLower(strings.TrimSpace(value))
	if deferredLengthKeywords[lower] || strings.HasSuffix(lower, "vw") || strings.HasSuffix(lower, "vh") {
		*dest = parsed
		return
	}
	warnUnparseableValue(property)
}
