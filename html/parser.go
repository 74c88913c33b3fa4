package html

import (
	"github.com/AlvinKuruvilla/koala/dom"
	"github.com/AlvinKuruvilla/koala/log"
)

// InsertionMode names one of the WHATWG tree construction phases
// (§13.2.4.1). Of the 23 modes, 15 are fully implemented; the other 8
// (InCaption, InColumnGroup, InSelect, InSelectInTable, InTemplate and
// the frameset family) fall back to "act as in body" with a recorded
// parse error.
type InsertionMode int

const (
	Initial InsertionMode = iota
	BeforeHTML
	BeforeHead
	InHead
	InHeadNoscript
	AfterHead
	InBody
	Text
	InTable
	InTableText
	InCaption
	InColumnGroup
	InTableBody
	InRow
	InCell
	InSelect
	InSelectInTable
	InTemplate
	AfterBody
	InFrameset
	AfterFrameset
	AfterAfterBody
	AfterAfterFrameset
)

// afEntry is one slot in the list of active formatting elements
// (§13.2.4.3): either a formatting element (with the token that
// created it, kept around so reconstruction can recreate it) or a
// scope marker.
type afEntry struct {
	isMarker bool
	node     dom.Index
	token    *Token
}

var defaultScope = []string{"applet", "caption", "html", "table", "td", "th", "marquee", "object", "template"}
var buttonScope = append(append([]string(nil), defaultScope...), "button")
var listItemScope = append(append([]string(nil), defaultScope...), "ol", "ul")
var tableScope = []string{"html", "table", "template"}

var impliedEndTagElements = map[string]bool{
	"dd": true, "dt": true, "li": true, "optgroup": true, "option": true,
	"p": true, "rb": true, "rp": true, "rt": true, "rtc": true,
}

var formattingElements = map[string]bool{
	"a": true, "b": true, "big": true, "code": true, "em": true, "font": true,
	"i": true, "nobr": true, "s": true, "small": true, "strike": true,
	"strong": true, "tt": true, "u": true,
}

var specialElements = map[string]bool{
	"address": true, "applet": true, "area": true, "article": true, "aside": true,
	"base": true, "basefont": true, "bgsound": true, "blockquote": true, "body": true,
	"br": true, "button": true, "caption": true, "center": true, "col": true,
	"colgroup": true, "dd": true, "details": true, "dir": true, "div": true,
	"dl": true, "dt": true, "embed": true, "fieldset": true, "figcaption": true,
	"figure": true, "footer": true, "form": true, "frame": true, "frameset": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"head": true, "header": true, "hgroup": true, "hr": true, "html": true,
	"iframe": true, "img": true, "input": true, "keygen": true, "li": true,
	"link": true, "listing": true, "main": true, "marquee": true, "menu": true,
	"meta": true, "nav": true, "noembed": true, "noframes": true, "noscript": true,
	"object": true, "ol": true, "p": true, "param": true, "plaintext": true,
	"pre": true, "script": true, "search": true, "section": true, "select": true,
	"source": true, "style": true, "summary": true, "table": true, "tbody": true,
	"td": true, "template": true, "textarea": true, "tfoot": true, "th": true,
	"thead": true, "title": true, "tr": true, "track": true, "ul": true,
	"wbr": true, "xmp": true,
}

func isWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

// Parser builds a dom.Document from a token stream by running the
// WHATWG tree construction algorithm. Fields mirror the state the
// algorithm's prose assumes a conforming implementation tracks
// (§13.2.4): the insertion mode, the stack of open elements, the list
// of active formatting elements, and the handful of named element
// pointers and flags the per-mode rules consult.
type Parser struct {
	doc *dom.Document

	mode         InsertionMode
	originalMode InsertionMode
	hasOriginal  bool

	openElements     []dom.Index
	activeFormatting []afEntry

	headElement dom.Index
	formElement dom.Index

	fosterParenting             bool
	pendingTableCharacterTokens []Token

	stopped bool

	issues []ParseIssue
	tokIdx uint64
}

// ParseHTML tokenizes codePoints and runs tree construction over the
// result, returning the built document together with every parse
// issue either stage recorded.
func ParseHTML(codePoints []rune) (*dom.Document, []ParseIssue) {
	var issues []ParseIssue
	tz := NewTokenizer(codePoints, &issues)

	p := &Parser{
		doc:         dom.NewDocument(),
		mode:        Initial,
		headElement: dom.NoIndex,
		formElement: dom.NoIndex,
	}

	for !p.stopped {
		tok := tz.Next()
		p.tokIdx++
		p.process(&tok)
		if tok.Type == EndOfFileToken {
			break
		}
	}

	p.issues = append(p.issues, issues...)
	return p.doc, p.issues
}

func (p *Parser) reportError(msg string) {
	log.Debugf("html tree builder: %s in mode %d at token %d", msg, p.mode, p.tokIdx)
	p.issues = append(p.issues, ParseIssue{Message: msg, TokenIndex: p.tokIdx, IsError: true})
}

// process dispatches a token to the handler for the current insertion
// mode (§13.2.6, the "tree construction dispatcher").
func (p *Parser) process(tok *Token) {
	switch p.mode {
	case Initial:
		p.inInitial(tok)
	case BeforeHTML:
		p.inBeforeHTML(tok)
	case BeforeHead:
		p.inBeforeHead(tok)
	case InHead:
		p.inInHead(tok)
	case InHeadNoscript:
		p.inInHeadNoscript(tok)
	case AfterHead:
		p.inAfterHead(tok)
	case InBody:
		p.inInBody(tok)
	case Text:
		p.inText(tok)
	case InTable:
		p.inInTable(tok)
	case InTableText:
		p.inInTableText(tok)
	case InTableBody:
		p.inInTableBody(tok)
	case InRow:
		p.inInRow(tok)
	case InCell:
		p.inInCell(tok)
	case AfterBody:
		p.inAfterBody(tok)
	case AfterAfterBody:
		p.inAfterAfterBody(tok)
	default:
		// InCaption, InColumnGroup, InSelect, InSelectInTable, InTemplate,
		// InFrameset, AfterFrameset, AfterAfterFrameset have no handler of
		// their own (InCaption and InColumnGroup are entered from InTable
		// on <caption>/<colgroup>/<col>). Fall back to in-body rules rather
		// than dropping the token silently.
		p.reportError(ErrUnimplementedInsertionMode)
		p.inInBody(tok)
	}
}

func (p *Parser) reprocess(tok *Token) { p.process(tok) }

func (p *Parser) currentNode() dom.Index {
	if len(p.openElements) == 0 {
		return dom.NoIndex
	}
	return p.openElements[len(p.openElements)-1]
}

func (p *Parser) tagName(idx dom.Index) string {
	if idx == dom.NoIndex {
		return ""
	}
	return p.doc.TagName(idx)
}

func (p *Parser) currentTagName() string { return p.tagName(p.currentNode()) }

// --- node creation / insertion -------------------------------------

func (p *Parser) createElement(name string, attrs []dom.Attribute) dom.Index {
	return p.doc.Alloc(dom.Node{Kind: dom.KindElement, TagName: name, Attrs: append([]dom.Attribute(nil), attrs...)})
}

// fosterParentLocation implements §13.2.6.1's foster-parenting target:
// just before the last table in its parent, or inside the element
// above it on the stack if the table has no parent yet.
func (p *Parser) fosterParentLocation() (parent dom.Index, before dom.Index) {
	lastTable := dom.NoIndex
	lastTablePos := -1
	for i := len(p.openElements) - 1; i >= 0; i-- {
		if p.tagName(p.openElements[i]) == "table" {
			lastTable = p.openElements[i]
			lastTablePos = i
			break
		}
	}
	if lastTable == dom.NoIndex {
		if len(p.openElements) > 0 {
			return p.openElements[0], dom.NoIndex
		}
		return dom.ROOT, dom.NoIndex
	}
	if tableParent, ok := p.doc.Parent(lastTable); ok {
		return tableParent, lastTable
	}
	return p.openElements[lastTablePos-1], dom.NoIndex
}

// adjustedInsertionLocation returns the appropriate place to insert
// nodes (§13.2.6.1), accounting for the foster parenting flag.
func (p *Parser) adjustedInsertionLocation() (parent dom.Index, before dom.Index) {
	target := p.currentNode()
	if p.fosterParenting {
		switch p.tagName(target) {
		case "table", "tbody", "tfoot", "thead", "tr":
			return p.fosterParentLocation()
		}
	}
	if target == dom.NoIndex {
		target = dom.ROOT
	}
	return target, dom.NoIndex
}

func (p *Parser) insertAt(parent, before, node dom.Index) {
	if before == dom.NoIndex {
		p.doc.AppendChild(parent, node)
	} else {
		p.doc.InsertBefore(parent, node, before)
	}
}

func (p *Parser) insertCharacter(c rune) {
	parent, before := p.adjustedInsertionLocation()

	var adjacentText dom.Index = dom.NoIndex
	if before != dom.NoIndex {
		n := p.doc.Node(before)
		if n.PrevSibling != dom.NoIndex && p.doc.Node(n.PrevSibling).Kind == dom.KindText {
			adjacentText = n.PrevSibling
		}
	} else {
		n := p.doc.Node(parent)
		if n.LastChild != dom.NoIndex && p.doc.Node(n.LastChild).Kind == dom.KindText {
			adjacentText = n.LastChild
		}
	}

	if adjacentText != dom.NoIndex {
		node := p.doc.Node(adjacentText)
		node.Data += string(c)
		return
	}

	textIdx := p.doc.Alloc(dom.Node{Kind: dom.KindText, Data: string(c)})
	p.insertAt(parent, before, textIdx)
}

func (p *Parser) insertComment(data string) {
	parent, before := p.adjustedInsertionLocation()
	idx := p.doc.Alloc(dom.Node{Kind: dom.KindComment, Data: data})
	p.insertAt(parent, before, idx)
}

func (p *Parser) insertCommentToDocument(data string) {
	idx := p.doc.Alloc(dom.Node{Kind: dom.KindComment, Data: data})
	p.doc.AppendChild(dom.ROOT, idx)
}

// insertHTMLElement implements "insert an HTML element for the token"
// (§13.2.6.1): create, place at the adjusted insertion location, push
// onto the stack of open elements.
func (p *Parser) insertHTMLElement(tok *Token) dom.Index {
	elem := p.createElement(tok.Name, tok.Attrs)
	parent, before := p.adjustedInsertionLocation()
	p.insertAt(parent, before, elem)
	p.openElements = append(p.openElements, elem)
	return elem
}

// insertSyntheticElement inserts an element for a tag name with no
// attributes, the pattern the spec uses for implied tbody/colgroup/tr
// elements.
func (p *Parser) insertSyntheticElement(name string) dom.Index {
	return p.insertHTMLElement(&Token{Type: StartTagToken, Name: name})
}

// --- stack of open elements ------------------------------------------------

func (p *Parser) popCurrent() dom.Index {
	if len(p.openElements) == 0 {
		return dom.NoIndex
	}
	n := len(p.openElements) - 1
	node := p.openElements[n]
	p.openElements = p.openElements[:n]
	return node
}

func (p *Parser) popUntilTag(name string) {
	for len(p.openElements) > 0 {
		node := p.popCurrent()
		if p.tagName(node) == name {
			return
		}
	}
}

func (p *Parser) popUntilOneOf(names ...string) {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	for len(p.openElements) > 0 {
		node := p.popCurrent()
		if set[p.tagName(node)] {
			return
		}
	}
}

func (p *Parser) hasElementInSpecificScope(name string, markers []string) bool {
	markerSet := make(map[string]bool, len(markers))
	for _, m := range markers {
		markerSet[m] = true
	}
	for i := len(p.openElements) - 1; i >= 0; i-- {
		tag := p.tagName(p.openElements[i])
		if tag == name {
			return true
		}
		if markerSet[tag] {
			return false
		}
	}
	return false
}

func (p *Parser) hasElementInScope(name string) bool        { return p.hasElementInSpecificScope(name, defaultScope) }
func (p *Parser) hasElementInButtonScope(name string) bool   { return p.hasElementInSpecificScope(name, buttonScope) }
func (p *Parser) hasElementInListItemScope(name string) bool { return p.hasElementInSpecificScope(name, listItemScope) }
func (p *Parser) hasElementInTableScope(name string) bool    { return p.hasElementInSpecificScope(name, tableScope) }

func (p *Parser) clearStackBackToTableContext() {
	for len(p.openElements) > 0 {
		switch p.currentTagName() {
		case "table", "template", "html":
			return
		}
		p.popCurrent()
	}
}

func (p *Parser) clearStackBackToTableBodyContext() {
	for len(p.openElements) > 0 {
		switch p.currentTagName() {
		case "tbody", "tfoot", "thead", "template", "html":
			return
		}
		p.popCurrent()
	}
}

func (p *Parser) clearStackBackToTableRowContext() {
	for len(p.openElements) > 0 {
		switch p.currentTagName() {
		case "tr", "template", "html":
			return
		}
		p.popCurrent()
	}
}

func (p *Parser) closeTheCell() {
	p.generateImpliedEndTags()
	p.popUntilOneOf("td", "th")
	p.clearActiveFormattingElementsToLastMarker()
	p.mode = InRow
}

// generateImpliedEndTags pops elements in the implied-end-tag category
// (§13.2.6.2), optionally excluding one tag name from the process.
func (p *Parser) generateImpliedEndTags() { p.generateImpliedEndTagsExcluding("") }

func (p *Parser) generateImpliedEndTagsExcluding(exclude string) {
	for len(p.openElements) > 0 {
		tag := p.currentTagName()
		if impliedEndTagElements[tag] && tag != exclude {
			p.popCurrent()
			continue
		}
		break
	}
}

// closeElementIfInScope closes a <p>/other element implicitly the way
// the many "if has an element in scope, close it" rules in §13.2.6.4.7
// require. <p> is checked in button scope; everything else in default
// scope.
func (p *Parser) closeElementIfInScope(name string) {
	var inScope bool
	if name == "p" {
		inScope = p.hasElementInButtonScope(name)
	} else {
		inScope = p.hasElementInScope(name)
	}
	if !inScope {
		return
	}
	p.generateImpliedEndTagsExcluding(name)
	p.popUntilTag(name)
}

// resetInsertionModeAppropriately implements §13.2.4.1's 10-branch
// algorithm, consulted whenever a subtree's mode needs to be
// recomputed from the stack of open elements (e.g. after popping out
// of a table).
func (p *Parser) resetInsertionModeAppropriately() {
	last := false
	for i := len(p.openElements) - 1; i >= 0; i-- {
		node := p.openElements[i]
		if i == 0 {
			last = true
		}
		switch p.tagName(node) {
		case "td", "th":
			if !last {
				p.mode = InCell
				return
			}
		case "tr":
			p.mode = InRow
			return
		case "tbody", "thead", "tfoot":
			p.mode = InTableBody
			return
		case "caption":
			p.mode = InCaption
			return
		case "colgroup":
			p.mode = InColumnGroup
			return
		case "table":
			p.mode = InTable
			return
		case "template":
			p.mode = InTemplate
			return
		case "head":
			if !last {
				p.mode = InHead
				return
			}
		case "body":
			p.mode = InBody
			return
		case "html":
			if p.headElement == dom.NoIndex {
				p.mode = BeforeHead
			} else {
				p.mode = AfterHead
			}
			return
		}
		if last {
			p.mode = InBody
			return
		}
	}
	p.mode = InBody
}

// --- active formatting elements --------------------------------------------

// reconstructActiveFormattingElements implements §13.2.4.3's
// rewind/create algorithm: walk back to the nearest marker or
// still-open element, then re-insert every formatting element after it
// in order, replacing each list entry with the freshly created node.
func (p *Parser) reconstructActiveFormattingElements() {
	if len(p.activeFormatting) == 0 {
		return
	}
	last := p.activeFormatting[len(p.activeFormatting)-1]
	if last.isMarker || p.isOnStack(last.node) {
		return
	}

	entryIdx := len(p.activeFormatting) - 1
	for entryIdx > 0 {
		entryIdx--
		entry := p.activeFormatting[entryIdx]
		if entry.isMarker || p.isOnStack(entry.node) {
			entryIdx++
			break
		}
	}

	for {
		entry := p.activeFormatting[entryIdx]
		newNode := p.insertHTMLElement(entry.token)
		p.activeFormatting[entryIdx] = afEntry{node: newNode, token: entry.token}
		entryIdx++
		if entryIdx >= len(p.activeFormatting) {
			break
		}
	}
}

func (p *Parser) isOnStack(node dom.Index) bool {
	for _, n := range p.openElements {
		if n == node {
			return true
		}
	}
	return false
}

// pushActiveFormattingElement implements §13.2.4.3's Noah's Ark clause:
// if 3+ entries since the last marker already share this tag name and
// attribute set, drop the earliest before pushing the new one.
func (p *Parser) pushActiveFormattingElement(node dom.Index, tok *Token) {
	var matches []int
	for i := len(p.activeFormatting) - 1; i >= 0; i-- {
		entry := p.activeFormatting[i]
		if entry.isMarker {
			break
		}
		if entry.token.Name == tok.Name && sameAttrs(entry.token.Attrs, tok.Attrs) {
			matches = append(matches, i)
		}
	}
	if len(matches) >= 3 {
		earliest := matches[len(matches)-1]
		p.activeFormatting = append(p.activeFormatting[:earliest], p.activeFormatting[earliest+1:]...)
	}
	p.activeFormatting = append(p.activeFormatting, afEntry{node: node, token: tok.Clone()})
}

func sameAttrs(a, b []dom.Attribute) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (p *Parser) clearActiveFormattingElementsToLastMarker() {
	for len(p.activeFormatting) > 0 {
		n := len(p.activeFormatting) - 1
		entry := p.activeFormatting[n]
		p.activeFormatting = p.activeFormatting[:n]
		if entry.isMarker {
			return
		}
	}
}

func (p *Parser) pushMarker() {
	p.activeFormatting = append(p.activeFormatting, afEntry{isMarker: true})
}

// anyOtherEndTag implements the "any other end tag" fallback
// (§13.2.6.4.7): walk the stack looking for a matching element, bail
// out (ignoring the token) the moment a special element is crossed.
func (p *Parser) anyOtherEndTag(name string) {
	for i := len(p.openElements) - 1; i >= 0; i-- {
		node := p.openElements[i]
		tag := p.tagName(node)
		if tag == name {
			p.generateImpliedEndTagsExcluding(name)
			p.openElements = p.openElements[:i]
			return
		}
		if specialElements[tag] {
			return
		}
	}
}

// runAdoptionAgency implements §13.2.6.4.7's adoption agency
// algorithm for mis-nested formatting elements (e.g. `<b>1<i>2</b>3`),
// including the bookmark bookkeeping for active-formatting-element
// removals inside the inner loop.
func (p *Parser) runAdoptionAgency(subject string) {
	if cur := p.currentNode(); p.tagName(cur) == subject {
		inAFL := false
		for _, e := range p.activeFormatting {
			if !e.isMarker && e.node == cur {
				inAFL = true
				break
			}
		}
		if !inAFL {
			p.popCurrent()
			return
		}
	}

	for outer := 0; outer < 8; outer++ {
		afIdx := -1
		for i := len(p.activeFormatting) - 1; i >= 0; i-- {
			e := p.activeFormatting[i]
			if e.isMarker {
				break
			}
			if e.token.Name == subject {
				afIdx = i
				break
			}
		}
		if afIdx == -1 {
			p.anyOtherEndTag(subject)
			return
		}
		formattingNode := p.activeFormatting[afIdx].node

		stackIdx := -1
		for i, n := range p.openElements {
			if n == formattingNode {
				stackIdx = i
				break
			}
		}
		if stackIdx == -1 {
			p.activeFormatting = append(p.activeFormatting[:afIdx], p.activeFormatting[afIdx+1:]...)
			return
		}

		if !p.hasElementInScope(subject) {
			return
		}

		furthestBlockIdx := -1
		for i := stackIdx + 1; i < len(p.openElements); i++ {
			if specialElements[p.tagName(p.openElements[i])] {
				furthestBlockIdx = i
				break
			}
		}

		if furthestBlockIdx == -1 {
			p.openElements = p.openElements[:stackIdx]
			p.activeFormatting = append(p.activeFormatting[:afIdx], p.activeFormatting[afIdx+1:]...)
			return
		}
		furthestBlock := p.openElements[furthestBlockIdx]
		commonAncestor := p.openElements[stackIdx-1]

		bookmark := afIdx
		nodeStackIdx := furthestBlockIdx
		lastNode := furthestBlock

		for innerLoop := 0; ; {
			innerLoop++
			nodeStackIdx--
			node := p.openElements[nodeStackIdx]

			if node == formattingNode {
				break
			}

			nodeAFIdx := p.findAF(node)
			if innerLoop > 3 && nodeAFIdx != -1 {
				p.activeFormatting = append(p.activeFormatting[:nodeAFIdx], p.activeFormatting[nodeAFIdx+1:]...)
				if bookmark > nodeAFIdx {
					bookmark--
				}
				nodeAFIdx = p.findAF(node)
			}

			if nodeAFIdx == -1 {
				p.openElements = append(p.openElements[:nodeStackIdx], p.openElements[nodeStackIdx+1:]...)
				continue
			}

			nodeToken := p.activeFormatting[nodeAFIdx].token
			newNode := p.createElementForToken(nodeToken)
			p.activeFormatting[nodeAFIdx] = afEntry{node: newNode, token: nodeToken}
			p.openElements[nodeStackIdx] = newNode
			node = newNode

			if lastNode == furthestBlock {
				bookmark = nodeAFIdx + 1
			}

			if parent, ok := p.doc.Parent(lastNode); ok {
				p.doc.RemoveChild(parent, lastNode)
			}
			p.doc.AppendChild(node, lastNode)
			lastNode = node
		}

		if parent, ok := p.doc.Parent(lastNode); ok {
			p.doc.RemoveChild(parent, lastNode)
		}
		p.appendOrFosterParent(commonAncestor, lastNode)

		formattingToken := p.activeFormatting[afIdx].token
		newFormattingNode := p.createElementForToken(formattingToken)

		p.doc.MoveChildren(furthestBlock, newFormattingNode)
		p.doc.AppendChild(furthestBlock, newFormattingNode)

		p.activeFormatting = append(p.activeFormatting[:afIdx], p.activeFormatting[afIdx+1:]...)
		if bookmark > afIdx {
			bookmark--
		}
		if bookmark > len(p.activeFormatting) {
			bookmark = len(p.activeFormatting)
		}
		p.activeFormatting = append(p.activeFormatting, afEntry{})
		copy(p.activeFormatting[bookmark+1:], p.activeFormatting[bookmark:])
		p.activeFormatting[bookmark] = afEntry{node: newFormattingNode, token: formattingToken}

		for i, n := range p.openElements {
			if n == formattingNode {
				p.openElements = append(p.openElements[:i], p.openElements[i+1:]...)
				break
			}
		}
		for i, n := range p.openElements {
			if n == furthestBlock {
				tail := append([]dom.Index(nil), p.openElements[i+1:]...)
				p.openElements = append(p.openElements[:i+1], newFormattingNode)
				p.openElements = append(p.openElements, tail...)
				break
			}
		}
	}
}

// appendOrFosterParent places node under target, foster-parenting it
// when target is a table-family element that cannot directly hold
// reparented content (the adoption agency's common ancestor can be a
// table section when formatting elements straddle a table).
func (p *Parser) appendOrFosterParent(target, node dom.Index) {
	switch p.tagName(target) {
	case "table", "tbody", "tfoot", "thead", "tr":
		parent, before := p.fosterParentLocation()
		p.insertAt(parent, before, node)
	default:
		p.doc.AppendChild(target, node)
	}
}

func (p *Parser) findAF(node dom.Index) int {
	for i, e := range p.activeFormatting {
		if !e.isMarker && e.node == node {
			return i
		}
	}
	return -1
}

func (p *Parser) createElementForToken(tok *Token) dom.Index {
	return p.createElement(tok.Name, tok.Attrs)
}

// --- Initial, BeforeHTML, BeforeHead, InHead, InHeadNoscript, AfterHead ----

func (p *Parser) inInitial(tok *Token) {
	switch {
	case tok.Type == CharacterToken && isWhitespace(tok.Char):
		return
	case tok.Type == CommentToken:
		p.insertCommentToDocument(tok.Data)
	case tok.Type == DoctypeToken:
		p.doc.Doctype = dom.DoctypeInfo{
			Name:        tok.DoctypeName,
			PublicID:    tok.PublicID,
			SystemID:    tok.SystemID,
			ForceQuirks: tok.ForceQuirks,
			Present:     true,
		}
		p.mode = BeforeHTML
	default:
		p.mode = BeforeHTML
		p.reprocess(tok)
	}
}

func (p *Parser) inBeforeHTML(tok *Token) {
	switch {
	case tok.Type == DoctypeToken:
		p.reportError(ErrUnexpectedDoctype)
	case tok.Type == CommentToken:
		p.insertCommentToDocument(tok.Data)
	case tok.Type == CharacterToken && isWhitespace(tok.Char):
	case tok.Type == StartTagToken && tok.Name == "html":
		idx := p.createElement(tok.Name, tok.Attrs)
		p.doc.AppendChild(dom.ROOT, idx)
		p.openElements = append(p.openElements, idx)
		p.mode = BeforeHead
	case tok.Type == EndTagToken && (tok.Name == "head" || tok.Name == "body" || tok.Name == "html" || tok.Name == "br"):
		p.beforeHTMLAnythingElse(tok)
	case tok.Type == EndTagToken:
		p.reportError(ErrUnexpectedEndTag)
	default:
		p.beforeHTMLAnythingElse(tok)
	}
}

func (p *Parser) beforeHTMLAnythingElse(tok *Token) {
	idx := p.createElement("html", nil)
	p.doc.AppendChild(dom.ROOT, idx)
	p.openElements = append(p.openElements, idx)
	p.mode = BeforeHead
	p.reprocess(tok)
}

func (p *Parser) inBeforeHead(tok *Token) {
	switch {
	case tok.Type == CharacterToken && isWhitespace(tok.Char):
	case tok.Type == CommentToken:
		p.insertComment(tok.Data)
	case tok.Type == StartTagToken && tok.Name == "html":
		p.inInBody(tok)
	case tok.Type == StartTagToken && tok.Name == "head":
		idx := p.insertHTMLElement(tok)
		p.headElement = idx
		p.mode = InHead
	case tok.Type == EndTagToken && (tok.Name == "head" || tok.Name == "body" || tok.Name == "html" || tok.Name == "br"):
		p.beforeHeadAnythingElse(tok)
	case tok.Type == DoctypeToken:
		p.reportError(ErrUnexpectedDoctype)
	case tok.Type == EndTagToken:
		p.reportError(ErrUnexpectedEndTag)
	default:
		p.beforeHeadAnythingElse(tok)
	}
}

func (p *Parser) beforeHeadAnythingElse(tok *Token) {
	idx := p.insertSyntheticElement("head")
	p.headElement = idx
	p.mode = InHead
	p.reprocess(tok)
}

func (p *Parser) inInHead(tok *Token) {
	switch {
	case tok.Type == CharacterToken && isWhitespace(tok.Char):
		p.insertCharacter(tok.Char)
	case tok.Type == CommentToken:
		p.insertComment(tok.Data)
	case tok.Type == EndTagToken && tok.Name == "head":
		p.popCurrent()
		p.mode = AfterHead
	case tok.Type == EndTagToken && (tok.Name == "body" || tok.Name == "html" || tok.Name == "br"):
		p.inHeadAnythingElse(tok)
	case tok.Type == DoctypeToken:
		p.reportError(ErrUnexpectedDoctype)
	case tok.Type == EndTagToken:
		p.reportError(ErrUnexpectedEndTag)
	case tok.Type == StartTagToken && tok.Name == "html":
		p.inInBody(tok)
	case tok.Type == StartTagToken && (tok.Name == "base" || tok.Name == "basefont" || tok.Name == "bgsound" || tok.Name == "link" || tok.Name == "meta"):
		p.insertHTMLElement(tok)
		p.popCurrent()
		if tok.Name == "meta" {
			if label, ok := dom.MetaCharsetAttr(tok.Attrs); ok {
				p.doc.NoteDeclaredEncoding(label)
			}
		}
	case tok.Type == StartTagToken && tok.Name == "title":
		p.insertHTMLElement(tok)
		p.originalMode, p.hasOriginal = p.mode, true
		p.mode = Text
	case tok.Type == StartTagToken && (tok.Name == "style" || tok.Name == "noframes"):
		p.insertHTMLElement(tok)
		p.originalMode, p.hasOriginal = p.mode, true
		p.mode = Text
	case tok.Type == StartTagToken && tok.Name == "noscript":
		p.insertHTMLElement(tok)
		p.mode = InHeadNoscript
	case tok.Type == StartTagToken && tok.Name == "script":
		p.insertHTMLElement(tok)
		p.originalMode, p.hasOriginal = p.mode, true
		p.mode = Text
	case tok.Type == StartTagToken && tok.Name == "template":
		p.insertHTMLElement(tok)
		p.pushMarker()
	case tok.Type == EndTagToken && tok.Name == "template":
		p.popUntilTag("template")
		p.clearActiveFormattingElementsToLastMarker()
	default:
		p.inHeadAnythingElse(tok)
	}
}

func (p *Parser) inHeadAnythingElse(tok *Token) {
	p.popCurrent()
	p.mode = AfterHead
	p.reprocess(tok)
}

func (p *Parser) inInHeadNoscript(tok *Token) {
	switch {
	case tok.Type == StartTagToken && tok.Name == "html":
		p.inInBody(tok)
	case tok.Type == EndTagToken && tok.Name == "noscript":
		p.popCurrent()
		p.mode = InHead
	case tok.Type == CharacterToken && isWhitespace(tok.Char):
		p.inInHead(tok)
	case tok.Type == CommentToken:
		p.inInHead(tok)
	case tok.Type == StartTagToken && (tok.Name == "basefont" || tok.Name == "bgsound" || tok.Name == "link" || tok.Name == "meta" || tok.Name == "noframes" || tok.Name == "style"):
		p.inInHead(tok)
	case tok.Type == EndTagToken && tok.Name == "br":
		p.popCurrent()
		p.mode = InHead
		p.reprocess(tok)
	case tok.Type == StartTagToken && (tok.Name == "head" || tok.Name == "noscript"):
		p.reportError(ErrStrayStartTag)
	case tok.Type == DoctypeToken:
		p.reportError(ErrUnexpectedDoctype)
	case tok.Type == EndTagToken:
		p.reportError(ErrUnexpectedEndTag)
	default:
		p.popCurrent()
		p.mode = InHead
		p.reprocess(tok)
	}
}

func (p *Parser) inAfterHead(tok *Token) {
	switch {
	case tok.Type == CharacterToken && isWhitespace(tok.Char):
		p.insertCharacter(tok.Char)
	case tok.Type == CommentToken:
		p.insertComment(tok.Data)
	case tok.Type == StartTagToken && tok.Name == "html":
		p.inInBody(tok)
	case tok.Type == StartTagToken && tok.Name == "body":
		p.insertHTMLElement(tok)
		p.mode = InBody
	case tok.Type == StartTagToken && tok.Name == "head":
		// parse error, ignore
	case tok.Type == EndTagToken && (tok.Name == "body" || tok.Name == "html" || tok.Name == "br"):
		p.afterHeadAnythingElse(tok)
	case tok.Type == DoctypeToken:
		p.reportError(ErrUnexpectedDoctype)
	case tok.Type == EndTagToken:
		p.reportError(ErrUnexpectedEndTag)
	default:
		p.afterHeadAnythingElse(tok)
	}
}

func (p *Parser) afterHeadAnythingElse(tok *Token) {
	p.insertSyntheticElement("body")
	p.mode = InBody
	p.reprocess(tok)
}

// --- Text -------------------------------------------------------------

func (p *Parser) inText(tok *Token) {
	switch tok.Type {
	case CharacterToken:
		p.insertCharacter(tok.Char)
	default: // EndTagToken, EndOfFileToken
		p.popCurrent()
		p.mode = p.resolveOriginal()
	}
}

func (p *Parser) resolveOriginal() InsertionMode {
	if p.hasOriginal {
		p.hasOriginal = false
		return p.originalMode
	}
	return InBody
}

// --- InBody -------------------------------------------------------------

var closeablePWithBlockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true, "center": true,
	"details": true, "dialog": true, "dir": true, "div": true, "dl": true, "fieldset": true,
	"figcaption": true, "figure": true, "footer": true, "header": true, "hgroup": true,
	"main": true, "menu": true, "nav": true, "ol": true, "search": true, "section": true,
	"summary": true, "ul": true,
}

var blockEndTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true, "button": true,
	"center": true, "details": true, "dialog": true, "dir": true, "div": true, "dl": true,
	"fieldset": true, "figcaption": true, "figure": true, "footer": true, "header": true,
	"hgroup": true, "listing": true, "main": true, "menu": true, "nav": true, "ol": true,
	"pre": true, "search": true, "section": true, "summary": true, "ul": true,
}

var headingTags = map[string]bool{"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true}

var basicFormattingStartTags = map[string]bool{
	"b": true, "big": true, "code": true, "em": true, "font": true, "i": true,
	"s": true, "small": true, "strike": true, "strong": true, "tt": true, "u": true, "nobr": true,
}

var otherInlineStartTags = map[string]bool{
	"span": true, "label": true, "abbr": true, "cite": true, "dfn": true, "kbd": true,
	"mark": true, "q": true, "ruby": true, "samp": true, "sub": true, "sup": true,
	"time": true, "var": true, "bdi": true, "bdo": true, "data": true,
}

var otherInlineEndTags = map[string]bool{
	"span": true, "label": true, "cite": true, "q": true, "dfn": true, "abbr": true,
	"ruby": true, "rt": true, "rp": true, "data": true, "time": true, "var": true,
	"samp": true, "kbd": true, "sub": true, "sup": true, "mark": true, "bdi": true,
	"bdo": true, "wbr": true,
}

var voidStartTags = map[string]bool{
	"area": true, "br": true, "embed": true, "img": true, "keygen": true, "wbr": true,
	"input": true, "hr": true,
}

var headDelegatedStartTags = map[string]bool{
	"base": true, "basefont": true, "bgsound": true, "link": true, "meta": true,
	"noframes": true, "script": true, "style": true, "template": true, "title": true,
}

func (p *Parser) inInBody(tok *Token) {
	switch {
	case tok.Type == CharacterToken && tok.Char == '\x00':
		p.reportError(ErrUnexpectedNullCharacter)
	case tok.Type == DoctypeToken:
		p.reportError(ErrUnexpectedDoctype)
	case tok.Type == CharacterToken:
		p.reconstructActiveFormattingElements()
		p.insertCharacter(tok.Char)
	case tok.Type == CommentToken:
		p.insertComment(tok.Data)

	case tok.Type == StartTagToken && tok.Name == "html":
		// parse error, attribute merge skipped

	case tok.Type == StartTagToken && closeablePWithBlockTags[tok.Name]:
		p.closeElementIfInScope("p")
		p.insertHTMLElement(tok)

	case tok.Type == StartTagToken && tok.Name == "p":
		p.closeElementIfInScope("p")
		p.insertHTMLElement(tok)

	case tok.Type == StartTagToken && tok.Name == "form":
		if p.formElement != dom.NoIndex {
			p.reportError(ErrStrayStartTag)
		} else {
			p.closeElementIfInScope("p")
			idx := p.insertHTMLElement(tok)
			p.formElement = idx
		}

	case tok.Type == StartTagToken && (tok.Name == "pre" || tok.Name == "listing"):
		p.closeElementIfInScope("p")
		p.insertHTMLElement(tok)

	case tok.Type == StartTagToken && headingTags[tok.Name]:
		p.closeElementIfInScope("p")
		if headingTags[p.currentTagName()] {
			p.reportError(ErrHeadingInHeading)
			p.popCurrent()
		}
		p.insertHTMLElement(tok)

	case tok.Type == StartTagToken && tok.Name == "a":
		var existingA dom.Index = dom.NoIndex
		for i := len(p.activeFormatting) - 1; i >= 0; i-- {
			e := p.activeFormatting[i]
			if e.isMarker {
				break
			}
			if e.token.Name == "a" {
				existingA = e.node
				break
			}
		}
		if existingA != dom.NoIndex {
			p.runAdoptionAgency("a")
			p.removeFromAFL(existingA)
			p.removeFromStack(existingA)
		}
		p.reconstructActiveFormattingElements()
		elem := p.insertHTMLElement(tok)
		p.pushActiveFormattingElement(elem, tok)

	case tok.Type == StartTagToken && basicFormattingStartTags[tok.Name]:
		p.reconstructActiveFormattingElements()
		elem := p.insertHTMLElement(tok)
		p.pushActiveFormattingElement(elem, tok)

	case tok.Type == StartTagToken && otherInlineStartTags[tok.Name]:
		p.reconstructActiveFormattingElements()
		p.insertHTMLElement(tok)

	case tok.Type == StartTagToken && tok.Name == "li":
		p.startLi()
		p.insertHTMLElement(tok)

	case tok.Type == StartTagToken && (tok.Name == "dd" || tok.Name == "dt"):
		p.startDdDt()
		p.insertHTMLElement(tok)

	case tok.Type == StartTagToken && tok.Name == "button":
		if p.hasElementInScope("button") {
			p.popUntilTag("button")
		}
		p.reconstructActiveFormattingElements()
		p.insertHTMLElement(tok)

	case tok.Type == StartTagToken && (tok.Name == "applet" || tok.Name == "marquee" || tok.Name == "object"):
		p.reconstructActiveFormattingElements()
		p.insertHTMLElement(tok)
		p.pushMarker()

	case tok.Type == StartTagToken && tok.Name == "select":
		p.reconstructActiveFormattingElements()
		p.insertHTMLElement(tok)

	case tok.Type == StartTagToken && (tok.Name == "optgroup" || tok.Name == "option"):
		if p.currentTagName() == "option" {
			p.popCurrent()
		}
		p.reconstructActiveFormattingElements()
		p.insertHTMLElement(tok)

	case tok.Type == StartTagToken && tok.Name == "iframe":
		p.insertHTMLElement(tok)
		p.originalMode, p.hasOriginal = p.mode, true
		p.mode = Text

	case tok.Type == StartTagToken && tok.Name == "textarea":
		p.insertHTMLElement(tok)
		p.originalMode, p.hasOriginal = p.mode, true
		p.mode = Text

	case tok.Type == EndTagToken && tok.Name == "li":
		if p.hasElementInListItemScope("li") {
			p.generateImpliedEndTagsExcluding("li")
			p.popUntilTag("li")
		}

	case tok.Type == EndTagToken && (tok.Name == "dd" || tok.Name == "dt"):
		if p.hasElementInScope(tok.Name) {
			p.generateImpliedEndTagsExcluding(tok.Name)
			p.popUntilTag(tok.Name)
		}

	case tok.Type == StartTagToken && tok.Name == "table":
		p.closeElementIfInScope("p")
		p.insertHTMLElement(tok)
		p.mode = InTable

	case tok.Type == StartTagToken && voidStartTags[tok.Name]:
		p.reconstructActiveFormattingElements()
		p.insertHTMLElement(tok)
		p.popCurrent()

	case tok.Type == StartTagToken && headDelegatedStartTags[tok.Name]:
		p.inInHead(tok)

	case tok.Type == EndTagToken && blockEndTags[tok.Name]:
		if p.hasElementInScope(tok.Name) {
			p.generateImpliedEndTags()
			p.popUntilTag(tok.Name)
		}

	case tok.Type == EndTagToken && headingTags[tok.Name]:
		p.popUntilOneOf("h1", "h2", "h3", "h4", "h5", "h6")

	case tok.Type == EndTagToken && tok.Name == "p":
		if !p.hasElementInButtonScope("p") {
			p.insertSyntheticElement("p")
			p.reprocess(tok)
		} else {
			p.generateImpliedEndTagsExcluding("p")
			p.popUntilTag("p")
		}

	case tok.Type == EndTagToken && (tok.Name == "applet" || tok.Name == "marquee" || tok.Name == "object"):
		if p.hasElementInScope(tok.Name) {
			p.generateImpliedEndTags()
			p.popUntilTag(tok.Name)
			p.clearActiveFormattingElementsToLastMarker()
		}

	case tok.Type == EndTagToken && tok.Name == "template":
		p.inInHead(tok)

	case tok.Type == EndTagToken && tok.Name == "select":
		if p.hasElementInScope("select") {
			p.popUntilTag("select")
			p.resetInsertionModeAppropriately()
		}

	case tok.Type == EndTagToken && (tok.Name == "optgroup" || tok.Name == "option"):
		if p.hasElementInScope(tok.Name) {
			p.popUntilTag(tok.Name)
		}

	case tok.Type == EndTagToken && (tok.Name == "iframe" || tok.Name == "noembed" || tok.Name == "noframes" || tok.Name == "noscript"):
		if p.hasElementInScope(tok.Name) {
			p.popUntilTag(tok.Name)
		}

	case tok.Type == EndTagToken && (tok.Name == "svg" || tok.Name == "math"):
		if p.hasElementInScope(tok.Name) {
			p.popUntilTag(tok.Name)
		}

	case tok.Type == EndTagToken && formattingElements[tok.Name]:
		p.runAdoptionAgency(tok.Name)

	case tok.Type == EndTagToken && otherInlineEndTags[tok.Name]:
		p.anyOtherEndTag(tok.Name)

	case tok.Type == EndTagToken && tok.Name == "form":
		formIdx := p.formElement
		p.formElement = dom.NoIndex
		if formIdx != dom.NoIndex && p.isOnStack(formIdx) {
			p.generateImpliedEndTags()
			p.removeFromStack(formIdx)
		}

	case tok.Type == EndTagToken && tok.Name == "body":
		p.mode = AfterBody

	case tok.Type == EndTagToken && tok.Name == "html":
		p.mode = AfterBody
		p.reprocess(tok)

	case tok.Type == EndOfFileToken:
		p.stopped = true

	case tok.Type == StartTagToken && (tok.Name == "svg" || tok.Name == "math"):
		p.reconstructActiveFormattingElements()
		p.insertHTMLElement(tok)

	case tok.Type == StartTagToken:
		p.reconstructActiveFormattingElements()
		p.insertHTMLElement(tok)

	case tok.Type == EndTagToken:
		p.anyOtherEndTag(tok.Name)
	}
}

func (p *Parser) startLi() {
	for i := len(p.openElements) - 1; i >= 0; i-- {
		tag := p.tagName(p.openElements[i])
		if tag == "li" {
			p.generateImpliedEndTagsExcluding("li")
			p.popUntilTag("li")
			break
		}
		if specialElements[tag] && tag != "address" && tag != "div" && tag != "p" {
			break
		}
	}
	p.closeElementIfInScope("p")
}

func (p *Parser) startDdDt() {
	for i := len(p.openElements) - 1; i >= 0; i-- {
		tag := p.tagName(p.openElements[i])
		if tag == "dd" || tag == "dt" {
			p.generateImpliedEndTagsExcluding(tag)
			p.popUntilTag(tag)
			break
		}
		if specialElements[tag] && tag != "address" && tag != "div" && tag != "p" {
			break
		}
	}
	p.closeElementIfInScope("p")
}

func (p *Parser) removeFromAFL(node dom.Index) {
	for i, e := range p.activeFormatting {
		if !e.isMarker && e.node == node {
			p.activeFormatting = append(p.activeFormatting[:i], p.activeFormatting[i+1:]...)
			return
		}
	}
}

func (p *Parser) removeFromStack(node dom.Index) {
	for i, n := range p.openElements {
		if n == node {
			p.openElements = append(p.openElements[:i], p.openElements[i+1:]...)
			return
		}
	}
}

// --- table family ---------------------------------------------------------

var tableStructureEndTags = map[string]bool{
	"body": true, "caption": true, "col": true, "colgroup": true, "html": true,
	"tbody": true, "td": true, "tfoot": true, "th": true, "thead": true, "tr": true,
}

func eqFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

func (p *Parser) inInTable(tok *Token) {
	switch {
	case tok.Type == CharacterToken:
		switch p.currentTagName() {
		case "table", "tbody", "tfoot", "thead", "tr":
			p.pendingTableCharacterTokens = nil
			p.originalMode, p.hasOriginal = p.mode, true
			p.mode = InTableText
			p.reprocess(tok)
		default:
			p.inTableAnythingElse(tok)
		}
	case tok.Type == CommentToken:
		p.insertComment(tok.Data)
	case tok.Type == DoctypeToken:
		p.reportError(ErrUnexpectedDoctype)
	case tok.Type == StartTagToken && tok.Name == "caption":
		p.clearStackBackToTableContext()
		p.pushMarker()
		p.insertHTMLElement(tok)
		p.mode = InCaption
	case tok.Type == StartTagToken && tok.Name == "colgroup":
		p.clearStackBackToTableContext()
		p.insertHTMLElement(tok)
		p.mode = InColumnGroup
	case tok.Type == StartTagToken && tok.Name == "col":
		p.clearStackBackToTableContext()
		p.insertSyntheticElement("colgroup")
		p.mode = InColumnGroup
		p.reprocess(tok)
	case tok.Type == StartTagToken && (tok.Name == "tbody" || tok.Name == "tfoot" || tok.Name == "thead"):
		p.clearStackBackToTableContext()
		p.insertHTMLElement(tok)
		p.mode = InTableBody
	case tok.Type == StartTagToken && (tok.Name == "td" || tok.Name == "th" || tok.Name == "tr"):
		p.clearStackBackToTableContext()
		p.insertSyntheticElement("tbody")
		p.mode = InTableBody
		p.reprocess(tok)
	case tok.Type == StartTagToken && tok.Name == "table":
		if p.hasElementInTableScope("table") {
			p.popUntilTag("table")
			p.resetInsertionModeAppropriately()
			p.reprocess(tok)
		}
	case tok.Type == EndTagToken && tok.Name == "table":
		if p.hasElementInTableScope("table") {
			p.popUntilTag("table")
			p.resetInsertionModeAppropriately()
		}
	case tok.Type == EndTagToken && tableStructureEndTags[tok.Name]:
		// parse error, ignore
	case tok.Type == StartTagToken && (tok.Name == "style" || tok.Name == "script" || tok.Name == "template"):
		p.inInHead(tok)
	case tok.Type == EndTagToken && tok.Name == "template":
		p.inInHead(tok)
	case tok.Type == StartTagToken && tok.Name == "input":
		isHidden := false
		if v, ok := tok.GetAttribute("type"); ok && eqFold(v, "hidden") {
			isHidden = true
		}
		if isHidden {
			p.reportError(ErrStrayStartTag)
			p.insertHTMLElement(tok)
			p.popCurrent()
		} else {
			p.inTableAnythingElse(tok)
		}
	case tok.Type == StartTagToken && tok.Name == "form":
		hasTemplate := false
		for _, n := range p.openElements {
			if p.tagName(n) == "template" {
				hasTemplate = true
				break
			}
		}
		if hasTemplate || p.formElement != dom.NoIndex {
			// parse error, ignore
		} else {
			idx := p.insertHTMLElement(tok)
			p.formElement = idx
			p.popCurrent()
		}
	case tok.Type == EndOfFileToken:
		p.inInBody(tok)
	default:
		p.inTableAnythingElse(tok)
	}
}

func (p *Parser) inTableAnythingElse(tok *Token) {
	p.fosterParenting = true
	p.inInBody(tok)
	p.fosterParenting = false
}

func (p *Parser) inInTableText(tok *Token) {
	if tok.Type == CharacterToken {
		if tok.Char == '\x00' {
			p.reportError(ErrUnexpectedNullCharacter)
			return
		}
		p.pendingTableCharacterTokens = append(p.pendingTableCharacterTokens, *tok)
		return
	}

	if len(p.pendingTableCharacterTokens) > 0 {
		pending := p.pendingTableCharacterTokens
		p.pendingTableCharacterTokens = nil

		allWhitespace := true
		for _, t := range pending {
			if !isWhitespace(t.Char) {
				allWhitespace = false
				break
			}
		}
		if allWhitespace {
			for _, t := range pending {
				p.insertCharacter(t.Char)
			}
		} else {
			p.fosterParenting = true
			for i := range pending {
				p.inInBody(&pending[i])
			}
			p.fosterParenting = false
		}
	}

	p.mode = p.resolveOriginal()
	p.reprocess(tok)
}

func (p *Parser) hasAnyTableBodyInScope() bool {
	return p.hasElementInTableScope("tbody") || p.hasElementInTableScope("thead") || p.hasElementInTableScope("tfoot")
}

func (p *Parser) inInTableBody(tok *Token) {
	switch {
	case tok.Type == StartTagToken && tok.Name == "tr":
		p.clearStackBackToTableBodyContext()
		p.insertHTMLElement(tok)
		p.mode = InRow
	case tok.Type == StartTagToken && (tok.Name == "th" || tok.Name == "td"):
		p.clearStackBackToTableBodyContext()
		p.insertSyntheticElement("tr")
		p.mode = InRow
		p.reprocess(tok)
	case tok.Type == EndTagToken && (tok.Name == "tbody" || tok.Name == "tfoot" || tok.Name == "thead"):
		if p.hasElementInTableScope(tok.Name) {
			p.clearStackBackToTableBodyContext()
			p.popCurrent()
			p.mode = InTable
		}
	case tok.Type == StartTagToken && (tok.Name == "caption" || tok.Name == "col" || tok.Name == "colgroup" || tok.Name == "tbody" || tok.Name == "tfoot" || tok.Name == "thead"):
		if p.hasAnyTableBodyInScope() {
			p.clearStackBackToTableBodyContext()
			p.popCurrent()
			p.mode = InTable
			p.reprocess(tok)
		}
	case tok.Type == EndTagToken && tok.Name == "table":
		if p.hasAnyTableBodyInScope() {
			p.clearStackBackToTableBodyContext()
			p.popCurrent()
			p.mode = InTable
			p.reprocess(tok)
		}
	case tok.Type == EndTagToken && (tok.Name == "body" || tok.Name == "caption" || tok.Name == "col" || tok.Name == "colgroup" || tok.Name == "html" || tok.Name == "td" || tok.Name == "th" || tok.Name == "tr"):
		// parse error, ignore
	default:
		p.inInTable(tok)
	}
}

func (p *Parser) inInRow(tok *Token) {
	switch {
	case tok.Type == StartTagToken && (tok.Name == "th" || tok.Name == "td"):
		p.clearStackBackToTableRowContext()
		p.insertHTMLElement(tok)
		p.mode = InCell
		p.pushMarker()
	case tok.Type == EndTagToken && tok.Name == "tr":
		if p.hasElementInTableScope("tr") {
			p.clearStackBackToTableRowContext()
			p.popCurrent()
			p.mode = InTableBody
		}
	case tok.Type == StartTagToken && (tok.Name == "caption" || tok.Name == "col" || tok.Name == "colgroup" || tok.Name == "tbody" || tok.Name == "tfoot" || tok.Name == "thead" || tok.Name == "tr"):
		if p.hasElementInTableScope("tr") {
			p.clearStackBackToTableRowContext()
			p.popCurrent()
			p.mode = InTableBody
			p.reprocess(tok)
		}
	case tok.Type == EndTagToken && tok.Name == "table":
		if p.hasElementInTableScope("tr") {
			p.clearStackBackToTableRowContext()
			p.popCurrent()
			p.mode = InTableBody
			p.reprocess(tok)
		}
	case tok.Type == EndTagToken && (tok.Name == "tbody" || tok.Name == "tfoot" || tok.Name == "thead"):
		if !p.hasElementInTableScope(tok.Name) {
			// ignore
		} else if !p.hasElementInTableScope("tr") {
			// ignore
		} else {
			p.clearStackBackToTableRowContext()
			p.popCurrent()
			p.mode = InTableBody
			p.reprocess(tok)
		}
	case tok.Type == EndTagToken && (tok.Name == "body" || tok.Name == "caption" || tok.Name == "col" || tok.Name == "colgroup" || tok.Name == "html" || tok.Name == "td" || tok.Name == "th"):
		// parse error, ignore
	default:
		p.inInTable(tok)
	}
}

func (p *Parser) inInCell(tok *Token) {
	switch {
	case tok.Type == EndTagToken && (tok.Name == "td" || tok.Name == "th"):
		if p.hasElementInTableScope(tok.Name) {
			p.generateImpliedEndTags()
			p.popUntilTag(tok.Name)
			p.clearActiveFormattingElementsToLastMarker()
			p.mode = InRow
		}
	case tok.Type == StartTagToken && (tok.Name == "caption" || tok.Name == "col" || tok.Name == "colgroup" ||
		tok.Name == "tbody" || tok.Name == "td" || tok.Name == "tfoot" || tok.Name == "th" || tok.Name == "thead" || tok.Name == "tr"):
		if p.hasElementInTableScope("td") || p.hasElementInTableScope("th") {
			p.closeTheCell()
			p.reprocess(tok)
		}
	case tok.Type == EndTagToken && (tok.Name == "body" || tok.Name == "caption" || tok.Name == "col" || tok.Name == "colgroup" || tok.Name == "html"):
		// parse error, ignore
	case tok.Type == EndTagToken && (tok.Name == "table" || tok.Name == "tbody" || tok.Name == "tfoot" || tok.Name == "thead" || tok.Name == "tr"):
		if p.hasElementInTableScope(tok.Name) {
			p.closeTheCell()
			p.reprocess(tok)
		}
	default:
		p.inInBody(tok)
	}
}

// --- AfterBody, AfterAfterBody ---------------------------------------------

func (p *Parser) inAfterBody(tok *Token) {
	switch {
	case tok.Type == CharacterToken && isWhitespace(tok.Char):
		p.inInBody(tok)
	case tok.Type == CommentToken:
		if len(p.openElements) > 0 {
			idx := p.doc.Alloc(dom.Node{Kind: dom.KindComment, Data: tok.Data})
			p.doc.AppendChild(p.openElements[0], idx)
		}
	case tok.Type == DoctypeToken:
		p.reportError(ErrUnexpectedDoctype)
	case tok.Type == StartTagToken && tok.Name == "html":
		p.inInBody(tok)
	case tok.Type == EndTagToken && tok.Name == "html":
		p.mode = AfterAfterBody
	case tok.Type == EndOfFileToken:
		p.stopped = true
	default:
		p.mode = InBody
		p.reprocess(tok)
	}
}

func (p *Parser) inAfterAfterBody(tok *Token) {
	switch {
	case tok.Type == CommentToken:
		p.insertCommentToDocument(tok.Data)
	case tok.Type == DoctypeToken:
		p.inInBody(tok)
	case tok.Type == CharacterToken && isWhitespace(tok.Char):
		p.inInBody(tok)
	case tok.Type == StartTagToken && tok.Name == "html":
		p.inInBody(tok)
	case tok.Type == EndOfFileToken:
		p.stopped = true
	default:
		p.mode = InBody
		p.reprocess(tok)
	}
}
