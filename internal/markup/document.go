package markup

// Document is a parsed page. Path is slash-separated and relative to the
// workspace root; an empty Path marks an in-memory document with no
// location on disk.
type Document struct {
	Path    string
	Content string
	Root    *Element

	nodes     []Node
	valueAttr map[*AttributeValue]*Attribute
	attrElem  map[*Attribute]*Element
	owned     map[Node]struct{}
}

// NewDocument returns an empty document. Add registers nodes on it.
func NewDocument(path, content string) *Document {
	return &Document{
		Path:      path,
		Content:   content,
		valueAttr: make(map[*AttributeValue]*Attribute),
		attrElem:  make(map[*Attribute]*Element),
		owned:     make(map[Node]struct{}),
	}
}

// Add registers an element and its attributes under parent (nil for the
// root) and returns the element.
func (d *Document) Add(parent, e *Element) *Element {
	if parent == nil {
		if d.Root == nil {
			d.Root = e
		}
	} else {
		parent.Children = append(parent.Children, e)
	}
	d.track(e)
	for _, a := range e.Attrs {
		d.attrElem[a] = e
		d.track(a)
		if a.Value != nil {
			d.valueAttr[a.Value] = a
			d.track(a.Value)
		}
	}
	return e
}

// AddOther registers a non-element node under parent.
func (d *Document) AddOther(parent *Element, o *Other) *Other {
	if parent != nil {
		parent.Children = append(parent.Children, o)
	}
	d.track(o)
	return o
}

func (d *Document) track(n Node) {
	d.nodes = append(d.nodes, n)
	d.owned[n] = struct{}{}
}

// Nodes returns every node in document order: each element is followed by
// its attributes, their values, then its children.
func (d *Document) Nodes() []Node {
	return d.nodes
}

// Walk calls fn for every node in document order until fn returns false.
func (d *Document) Walk(fn func(Node) bool) {
	for _, n := range d.nodes {
		if !fn(n) {
			return
		}
	}
}

// OwningAttribute returns the attribute v belongs to.
func (d *Document) OwningAttribute(v *AttributeValue) (*Attribute, bool) {
	a, ok := d.valueAttr[v]
	return a, ok
}

// OwningElement returns the element a belongs to.
func (d *Document) OwningElement(a *Attribute) (*Element, bool) {
	e, ok := d.attrElem[a]
	return e, ok
}

// ContainingDocument returns d when n is one of its nodes.
func (d *Document) ContainingDocument(n Node) (*Document, bool) {
	if _, ok := d.owned[n]; !ok {
		return nil, false
	}
	return d, true
}

// InMemory reports whether the document has no location on disk.
func (d *Document) InMemory() bool {
	return d.Path == ""
}
