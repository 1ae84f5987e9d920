// Package markup models a parsed Jelly (XML) page as a small tree of
// elements, attributes, attribute values and other nodes, each carrying the
// byte span it occupies in the source text.
package markup

// Kind identifies the category of a Node.
type Kind int

const (
	KindOther Kind = iota
	KindElement
	KindAttribute
	KindAttributeValue
)

func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindAttribute:
		return "attribute"
	case KindAttributeValue:
		return "attribute-value"
	}
	return "other"
}

// Span is a byte range [Start, Start+Length).
type Span struct {
	Start  int
	Length int
}

// End returns the exclusive end offset.
func (s Span) End() int { return s.Start + s.Length }

// Contains reports whether offset falls inside the span. The end offset is
// included so a cursor placed right after the last character still matches.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset <= s.End()
}

// Shift returns the span moved by delta bytes.
func (s Span) Shift(delta int) Span {
	return Span{Start: s.Start + delta, Length: s.Length}
}

// Node is implemented by *Element, *Attribute, *AttributeValue and *Other.
type Node interface {
	Kind() Kind
	Span() Span
	node()
}

// Element is a markup tag.
type Element struct {
	// Name is the tag name as written, including any prefix ("st:include").
	Name string
	// Local is the name without prefix ("include").
	Local string
	// Namespace is the resolved namespace URI ("jelly:stapler").
	Namespace string
	Attrs     []*Attribute
	Children  []Node
	span      Span
}

func (e *Element) Kind() Kind { return KindElement }
func (e *Element) Span() Span { return e.span }
func (e *Element) node()      {}

// Attribute returns the attribute with the given name as written.
func (e *Element) Attribute(name string) (*Attribute, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// Attribute is a name="value" pair on an Element.
type Attribute struct {
	Name  string
	Value *AttributeValue
	span  Span
}

func (a *Attribute) Kind() Kind { return KindAttribute }
func (a *Attribute) Span() Span { return a.span }
func (a *Attribute) node()      {}

// AttributeValue is the quoted literal of an attribute.
type AttributeValue struct {
	// Raw is the source text including both quote characters.
	Raw string
	// Value is the decoded text between the quotes.
	Value string
	span  Span
}

func (v *AttributeValue) Kind() Kind { return KindAttributeValue }
func (v *AttributeValue) Span() Span { return v.span }
func (v *AttributeValue) node()      {}

// TextLength returns the length of the raw, quoted text.
func (v *AttributeValue) TextLength() int { return len(v.Raw) }

// Other covers character data, comments, processing instructions and
// directives.
type Other struct {
	Text string
	span Span
}

func (o *Other) Kind() Kind { return KindOther }
func (o *Other) Span() Span { return o.span }
func (o *Other) node()      {}

// NewElement builds a detached element. Used by callers that assemble trees
// by hand; Parse sets spans from the source.
func NewElement(name, local, namespace string, span Span, attrs ...*Attribute) *Element {
	return &Element{Name: name, Local: local, Namespace: namespace, Attrs: attrs, span: span}
}

// NewAttribute builds a detached attribute whose value spans raw at offset.
func NewAttribute(name, raw, value string, offset int) *Attribute {
	v := &AttributeValue{Raw: raw, Value: value, span: Span{Start: offset, Length: len(raw)}}
	return &Attribute{
		Name:  name,
		Value: v,
		span:  Span{Start: offset - len(name) - 1, Length: len(name) + 1 + len(raw)},
	}
}

// NewOther builds a detached non-element node.
func NewOther(text string, span Span) *Other {
	return &Other{Text: text, span: span}
}
