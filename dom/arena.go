// Package dom provides the index-addressed DOM arena described in the
// core specification: a flat, parent/sibling-linked node pool, narrowed
// to Document/Element/Text/Comment variants.
//
// Spec references:
// - DOM Level 2 Core: https://www.w3.org/TR/DOM-Level-2-Core/
// - WHATWG DOM: https://dom.spec.whatwg.org/
package dom

// Index addresses a node in a Document's arena. Indices are stable for
// the lifetime of the Document; removal unlinks a node but never
// reuses its index, so stacks built during parsing (the HTML tree
// builder's stack of open elements, the list of active formatting
// elements) can hold indices safely across mutations.
type Index int32

// NoIndex is the absent-link sentinel used for parent/sibling/child
// fields that have no value.
const NoIndex Index = -1

// ROOT is the reserved index of the Document node, allocated first by
// NewDocument.
const ROOT Index = 0

// NodeKind tags the variant stored in a Node.
type NodeKind int

const (
	KindDocument NodeKind = iota
	KindElement
	KindText
	KindComment
)

func (k NodeKind) String() string {
	switch k {
	case KindDocument:
		return "Document"
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComment:
		return "Comment"
	default:
		return "Unknown"
	}
}

// Attribute is an ordered (name, value) pair. The HTML tokenizer
// lowercases names and drops duplicates before they reach the arena, so
// a Node's Attrs slice is already the final, order-preserving list.
type Attribute struct {
	Name  string
	Value string
}

// Node is a single entry in a Document's arena. Only the fields that
// apply to Kind are meaningful: TagName/Attrs for Element, Data for
// Text/Comment.
type Node struct {
	Kind NodeKind

	TagName string
	Attrs   []Attribute

	Data string

	Parent      Index
	FirstChild  Index
	LastChild   Index
	PrevSibling Index
	NextSibling Index
}

// GetAttribute returns the value of an attribute, or ("", false) if the
// node has no such attribute (or isn't an element).
func (n *Node) GetAttribute(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// DoctypeInfo records the most recently parsed DOCTYPE token. The
// arena has no DocumentType node kind; the single DOCTYPE a conforming
// document may carry is tracked on the Document itself instead of
// burning an arena slot on it.
type DoctypeInfo struct {
	Name        string
	PublicID    string
	SystemID    string
	ForceQuirks bool
	Present     bool
}

// Document owns the arena exclusively: every Node, and every link
// between them, lives in this one pool.
type Document struct {
	nodes []Node

	Doctype DoctypeInfo

	// DeclaredEncodingLabel/DeclaredEncoding are populated by
	// dom.NoteDeclaredEncoding when the tree builder observes a <meta
	// charset> / <meta http-equiv=Content-Type> hint in the head. See
	// charset.go. The core never decodes bytes itself; this
	// is purely a recorded hint for an external decoder to consult.
	DeclaredEncodingLabel string
	DeclaredEncoding      string
}

// NewDocument creates a Document containing only the root Document
// node at ROOT.
func NewDocument() *Document {
	d := &Document{nodes: make([]Node, 0, 64)}
	d.nodes = append(d.nodes, Node{
		Kind:        KindDocument,
		Parent:      NoIndex,
		FirstChild:  NoIndex,
		LastChild:   NoIndex,
		PrevSibling: NoIndex,
		NextSibling: NoIndex,
	})
	return d
}

// Alloc appends a new node to the arena and returns its index. The
// node's link fields are reset to NoIndex regardless of what the
// caller passed in; callers attach it with AppendChild/InsertBefore.
func (d *Document) Alloc(n Node) Index {
	n.Parent = NoIndex
	n.FirstChild = NoIndex
	n.LastChild = NoIndex
	n.PrevSibling = NoIndex
	n.NextSibling = NoIndex
	idx := Index(len(d.nodes))
	d.nodes = append(d.nodes, n)
	return idx
}

// Node returns a mutable pointer to the node at idx.
func (d *Document) Node(idx Index) *Node {
	return &d.nodes[idx]
}

// AsElement returns the node at idx and true if it is an Element.
func (d *Document) AsElement(idx Index) (*Node, bool) {
	n := &d.nodes[idx]
	if n.Kind != KindElement {
		return nil, false
	}
	return n, true
}

// Parent returns the parent of idx, or (NoIndex, false) if idx is
// unlinked (the root, or a node removed but not yet reattached).
func (d *Document) Parent(idx Index) (Index, bool) {
	p := d.nodes[idx].Parent
	return p, p != NoIndex
}

// AppendChild links child as the last child of parent. child must
// currently be unlinked (Parent == NoIndex); violating this is an
// internal invariant error, not a recoverable input error.
func (d *Document) AppendChild(parent, child Index) {
	if d.nodes[child].Parent != NoIndex {
		panic("dom: AppendChild called on a node that is still linked")
	}
	d.nodes[child].Parent = parent

	p := &d.nodes[parent]
	if p.LastChild == NoIndex {
		p.FirstChild = child
		p.LastChild = child
		d.nodes[child].PrevSibling = NoIndex
		d.nodes[child].NextSibling = NoIndex
		return
	}
	oldLast := p.LastChild
	d.nodes[oldLast].NextSibling = child
	d.nodes[child].PrevSibling = oldLast
	d.nodes[child].NextSibling = NoIndex
	p.LastChild = child
}

// InsertBefore links node as a child of parent immediately before
// refChild, which must already be a child of parent. node must
// currently be unlinked.
func (d *Document) InsertBefore(parent, node, refChild Index) {
	if d.nodes[node].Parent != NoIndex {
		panic("dom: InsertBefore called on a node that is still linked")
	}
	if refChild == NoIndex {
		d.AppendChild(parent, node)
		return
	}
	prev := d.nodes[refChild].PrevSibling

	d.nodes[node].Parent = parent
	d.nodes[node].PrevSibling = prev
	d.nodes[node].NextSibling = refChild
	d.nodes[refChild].PrevSibling = node

	if prev == NoIndex {
		d.nodes[parent].FirstChild = node
	} else {
		d.nodes[prev].NextSibling = node
	}
}

// RemoveChild unlinks child from parent. The index stays valid and may
// be reattached elsewhere (AppendChild/InsertBefore) — this is how the
// adoption agency algorithm and foster parenting relocate nodes without
// allocating new ones.
func (d *Document) RemoveChild(parent, child Index) {
	n := &d.nodes[child]
	prev, next := n.PrevSibling, n.NextSibling

	if prev != NoIndex {
		d.nodes[prev].NextSibling = next
	} else {
		d.nodes[parent].FirstChild = next
	}
	if next != NoIndex {
		d.nodes[next].PrevSibling = prev
	} else {
		d.nodes[parent].LastChild = prev
	}

	n.Parent = NoIndex
	n.PrevSibling = NoIndex
	n.NextSibling = NoIndex
}

// MoveChildren re-parents every child of src onto the end of dst's
// child list, in order, leaving src with no children. Used by the
// adoption agency algorithm (HTML §13.2.6.4.7) to relocate an entire
// subtree atomically.
func (d *Document) MoveChildren(src, dst Index) {
	child := d.nodes[src].FirstChild
	for child != NoIndex {
		next := d.nodes[child].NextSibling
		d.RemoveChild(src, child)
		d.AppendChild(dst, child)
		child = next
	}
}

// Children returns the children of n as a freshly built slice, in
// document order.
func (d *Document) Children(n Index) []Index {
	var out []Index
	for c := d.nodes[n].FirstChild; c != NoIndex; c = d.nodes[c].NextSibling {
		out = append(out, c)
	}
	return out
}

// Ancestors returns the ancestors of n, nearest first, not including n
// itself.
func (d *Document) Ancestors(n Index) []Index {
	var out []Index
	for p := d.nodes[n].Parent; p != NoIndex; p = d.nodes[p].Parent {
		out = append(out, p)
	}
	return out
}

// PrecedingSiblings returns the siblings before n, nearest first.
func (d *Document) PrecedingSiblings(n Index) []Index {
	var out []Index
	for s := d.nodes[n].PrevSibling; s != NoIndex; s = d.nodes[s].PrevSibling {
		out = append(out, s)
	}
	return out
}

// TagName returns the tag name of an element node, or "" for anything
// else.
func (d *Document) TagName(idx Index) string {
	n := &d.nodes[idx]
	if n.Kind != KindElement {
		return ""
	}
	return n.TagName
}
